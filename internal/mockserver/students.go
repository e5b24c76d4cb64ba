package mockserver

import (
	"fmt"
	"os"
	"sync"

	"github.com/muurk/campuspass/internal/studentapi"
	"gopkg.in/yaml.v3"
)

// SeedStudents is the directory served when no students file is given.
var SeedStudents = []studentapi.Student{
	{FullName: "Ada Obi", StudentID: "20231145", SchLevel: "200", Gender: "female", IsEnrolled: true},
	{FullName: "Tunde Bakare", StudentID: "20219987", SchLevel: "400", Gender: "male", IsEnrolled: true},
	{FullName: "Chioma Eze", StudentID: "20240001", SchLevel: "100", Gender: "female", IsEnrolled: true},
	{FullName: "Musa Bello", StudentID: "20185512", SchLevel: "500", Gender: "male", IsEnrolled: false},
}

// studentsFile is the YAML layout accepted by LoadStudents.
type studentsFile struct {
	Students []studentapi.Student `yaml:"students"`
}

// Directory holds student records and which user each ID is bound to.
type Directory struct {
	mu       sync.Mutex
	records  map[string]studentapi.Student
	bindings map[string]string // student ID -> user ID
}

// NewDirectory creates a directory from records. Later duplicates win.
func NewDirectory(records []studentapi.Student) *Directory {
	d := &Directory{
		records:  make(map[string]studentapi.Student, len(records)),
		bindings: make(map[string]string),
	}
	for _, r := range records {
		d.records[r.StudentID] = r
	}
	return d
}

// LoadStudents reads a students YAML file.
func LoadStudents(path string) ([]studentapi.Student, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read students file: %w", err)
	}

	var f studentsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse students file: %w", err)
	}

	for i, s := range f.Students {
		if err := studentapi.ValidateStudentID(s.StudentID, studentapi.StudentIDLength); err != nil {
			return nil, fmt.Errorf("student %d: %w", i, err)
		}
	}
	return f.Students, nil
}

// Len returns the number of records.
func (d *Directory) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.records)
}

// Verify decides the outcome of a verification request.
func (d *Directory) Verify(userID, studentID string) studentapi.VerifyResult {
	d.mu.Lock()
	defer d.mu.Unlock()

	rec, ok := d.records[studentID]
	if !ok {
		return studentapi.VerifyResult{
			Status:  studentapi.StatusFailed,
			Message: "no student record found",
		}
	}

	switch owner, bound := d.bindings[studentID]; {
	case bound && owner == userID:
		return studentapi.VerifyResult{
			Success: true,
			Status:  studentapi.StatusAlreadyMatched,
			Student: &rec,
			Message: "student ID already matched to this account",
		}
	case bound:
		return studentapi.VerifyResult{
			Status:  studentapi.StatusFailed,
			Message: "student ID is linked to another account",
		}
	}

	return studentapi.VerifyResult{
		Success: true,
		Status:  studentapi.StatusNeedsConfirmation,
		Student: &rec,
		Message: "confirm these details are yours",
	}
}

// Confirm binds studentID to userID.
func (d *Directory) Confirm(userID, studentID string) studentapi.ConfirmResult {
	d.mu.Lock()
	defer d.mu.Unlock()

	rec, ok := d.records[studentID]
	if !ok {
		return studentapi.ConfirmResult{Message: "no student record found"}
	}
	if owner, bound := d.bindings[studentID]; bound && owner != userID {
		return studentapi.ConfirmResult{Message: "student ID is linked to another account"}
	}

	d.bindings[studentID] = userID
	return studentapi.ConfirmResult{
		Success: true,
		Student: &rec,
		Message: "student ID verified",
	}
}
