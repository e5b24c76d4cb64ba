package config

import (
	"time"

	"github.com/google/uuid"
)

// RegistryVersion is the on-disk schema version.
const RegistryVersion = 1

// Registry represents the entire user configuration file.
// It stores the local profile, preferences, and backends seen on the network.
type Registry struct {
	Version     int                 `yaml:"version"`
	Profile     *Profile            `yaml:"profile"`
	Preferences *Preferences        `yaml:"preferences,omitempty"`
	Backends    map[string]*Backend `yaml:"backends,omitempty"` // Keyed by mDNS instance name

	path string
}

// Profile is the local user's onboarding state.
type Profile struct {
	UserID     string         `yaml:"user_id"`
	Email      string         `yaml:"email,omitempty"`
	Role       string         `yaml:"role"`
	StudentID  string         `yaml:"student_id,omitempty"`
	Student    *StudentRecord `yaml:"student,omitempty"`
	VerifiedAt time.Time      `yaml:"verified_at,omitempty"`

	TutorialsCompleted []string `yaml:"tutorials_completed,omitempty"`
}

// StudentRecord is the verified record as shown to the user.
type StudentRecord struct {
	FullName   string `yaml:"full_name"`
	StudentID  string `yaml:"student_id"`
	SchLevel   string `yaml:"sch_level,omitempty"`
	Gender     string `yaml:"gender,omitempty"`
	IsEnrolled bool   `yaml:"is_enrolled"`
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	Notifications bool   `yaml:"notifications"`     // Show notices after email/verification events
	APIURL        string `yaml:"api_url,omitempty"` // Overrides the api_url setting when set
}

// Backend is a collaborator backend found by discovery.
type Backend struct {
	URL      string    `yaml:"url"`
	LastSeen time.Time `yaml:"last_seen,omitempty"`
}

func newProfile() *Profile {
	return &Profile{
		UserID: uuid.NewString(),
		Role:   "student",
	}
}

func defaultPreferences() *Preferences {
	return &Preferences{Notifications: true}
}

// NewRegistry creates a new Registry with a fresh profile.
func NewRegistry() *Registry {
	return &Registry{
		Version:     RegistryVersion,
		Profile:     newProfile(),
		Preferences: defaultPreferences(),
		Backends:    make(map[string]*Backend),
	}
}

// Verified reports whether the profile has a confirmed student ID.
func (p *Profile) Verified() bool {
	return p != nil && p.StudentID != ""
}

// SetVerifiedStudent records a successful verification.
func (r *Registry) SetVerifiedStudent(studentID string, record *StudentRecord) {
	r.Profile.StudentID = studentID
	r.Profile.Student = record
	r.Profile.VerifiedAt = time.Now()
}

// SetEmail records a confirmed email address.
func (r *Registry) SetEmail(email string) {
	r.Profile.Email = email
}

// MarkTutorialComplete records a finished tutorial. Repeated calls are no-ops.
func (r *Registry) MarkTutorialComplete(id string) {
	if r.TutorialComplete(id) {
		return
	}
	r.Profile.TutorialsCompleted = append(r.Profile.TutorialsCompleted, id)
}

// TutorialComplete reports whether id has been finished.
func (r *Registry) TutorialComplete(id string) bool {
	for _, done := range r.Profile.TutorialsCompleted {
		if done == id {
			return true
		}
	}
	return false
}

// SetNotifications toggles notices.
func (r *Registry) SetNotifications(on bool) {
	r.Preferences.Notifications = on
}

// SignOut discards the profile and starts a new one with a fresh user ID.
// Preferences and known backends are kept.
func (r *Registry) SignOut() {
	r.Profile = newProfile()
}

// UpdateBackendLastSeen records a discovered backend.
func (r *Registry) UpdateBackendLastSeen(name, url string) {
	if r.Backends == nil {
		r.Backends = make(map[string]*Backend)
	}
	r.Backends[name] = &Backend{URL: url, LastSeen: time.Now()}
}

// normalize fills sections missing from an older or hand-edited file.
func (r *Registry) normalize() {
	if r.Profile == nil {
		r.Profile = newProfile()
	}
	if r.Profile.UserID == "" {
		r.Profile.UserID = uuid.NewString()
	}
	if r.Profile.Role == "" {
		r.Profile.Role = "student"
	}
	if r.Preferences == nil {
		r.Preferences = defaultPreferences()
	}
	if r.Backends == nil {
		r.Backends = make(map[string]*Backend)
	}
}
