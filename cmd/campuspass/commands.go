package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/campuspass/internal/config"
	"github.com/muurk/campuspass/internal/discovery"
	"github.com/muurk/campuspass/internal/logging"
	"github.com/muurk/campuspass/internal/responsive"
	"github.com/muurk/campuspass/internal/studentapi"
	"github.com/muurk/campuspass/internal/tui"
	"github.com/muurk/campuspass/internal/ui"
)

// Command flags
var (
	layoutWidth     int
	layoutHeight    int
	confirmMatch    bool
	discoverTimeout time.Duration
	discoverUse     bool
)

func init() {
	rootCmd.AddCommand(layoutCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(sendVerificationCmd)
	rootCmd.AddCommand(confirmEmailCmd)
	rootCmd.AddCommand(resetPasswordCmd)
	rootCmd.AddCommand(discoverCmd)
}

func newClient(registry *config.Registry) *studentapi.Client {
	client := studentapi.NewClient(settings.EffectiveAPIURL(registry.Preferences))
	client.SetTimeout(settings.Timeout)
	client.SetRetry(settings.Retries, studentapi.DefaultRetryDelay)
	return client
}

// setup initializes logging and loads the profile for one-shot commands.
func setup() (*config.Registry, *ui.Printer, error) {
	if err := logging.Initialize(settings.LogLevel); err != nil {
		return nil, nil, err
	}
	registry, err := config.LoadRegistry()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return registry, ui.NewPrinter(nil), nil
}

// hints turns a troubleshooting hint into bullet items.
func hints(err error) []string {
	var out []string
	for _, line := range strings.Split(studentapi.TroubleshootingHint(err), "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "•"))
		if line != "" && line != "Troubleshooting:" {
			out = append(out, line)
		}
	}
	return out
}

// fail prints err and returns it so cobra exits non-zero.
func fail(p *ui.Printer, title string, err error) error {
	p.PrintError(title, err, hints(err))
	return err
}

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Show the responsive layout for a terminal size",
	Long: `Print the breakpoint and the sizes every screen uses at a terminal size.

Defaults to the current terminal. Columns and rows are converted into
viewport units using the layout settings.`,
	Example: `  # Current terminal
  campuspass layout

  # A narrow phone-sized terminal
  campuspass layout --width 60 --height 24`,
	Args: cobra.NoArgs,
	RunE: runLayout,
}

func init() {
	layoutCmd.Flags().IntVar(&layoutWidth, "width", 0, "Terminal columns (default: current terminal)")
	layoutCmd.Flags().IntVar(&layoutHeight, "height", 0, "Terminal rows (default: current terminal)")
}

func runLayout(cmd *cobra.Command, args []string) error {
	l := settings.Layout
	vp := responsive.TerminalViewport(l.UnitsPerColumn, l.UnitsPerRow)
	cols, rows := vp.Columns, vp.Rows
	if layoutWidth > 0 {
		cols = layoutWidth
	}
	if layoutHeight > 0 {
		rows = layoutHeight
	}
	vp = responsive.FromCells(cols, rows, l.UnitsPerColumn, l.UnitsPerRow)

	p := ui.NewPrinter(nil)
	p.PrintHeader("Responsive layout", cmd.CommandPath(),
		ui.Field{Key: "Terminal", Value: fmt.Sprintf("%dx%d", cols, rows)},
		ui.Field{Key: "Viewport", Value: vp.String()},
		ui.Field{Key: "Breakpoint", Value: vp.Label().String()},
	)

	var table [][]string
	for _, screen := range tui.LayoutScreens {
		m := tui.Layout(screen, vp)
		slot := "-"
		if m.SlotWidth > 0 {
			slot = strconv.Itoa(m.SlotWidth)
		}
		table = append(table, []string{
			string(screen),
			strconv.Itoa(m.Padding),
			strconv.Itoa(m.Gap),
			strconv.Itoa(m.ContentWidth),
			slot,
			strconv.FormatBool(m.Compact),
		})
	}
	p.PrintTable([]string{"Screen", "Padding", "Gap", "Content", "Slot", "Compact"}, table)
	return nil
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the local profile and backend health",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, p, err := setup()
		if err != nil {
			return err
		}
		defer logging.Sync()

		url := settings.EffectiveAPIURL(registry.Preferences)
		p.PrintHeader("Status", cmd.CommandPath(), ui.Field{Key: "Backend", Value: url})

		profile := registry.Profile
		details := []ui.Field{
			{Key: "User ID", Value: profile.UserID},
			{Key: "Email", Value: orNone(profile.Email)},
			{Key: "Student ID", Value: orNone(profile.StudentID)},
		}
		if profile.Student != nil {
			details = append(details, ui.Field{Key: "Name", Value: profile.Student.FullName})
		}
		details = append(details, ui.Field{
			Key:   "Tutorials",
			Value: fmt.Sprintf("%d completed", len(profile.TutorialsCompleted)),
		})

		if err := newClient(registry).Ping(cmd.Context()); err != nil {
			p.PrintWarning("Backend unreachable", append(details, ui.Field{Key: "Error", Value: studentapi.ShortMessage(err)})...)
			return nil
		}
		p.PrintSuccess("Backend reachable", details...)
		return nil
	},
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

var verifyCmd = &cobra.Command{
	Use:   "verify <student-id>",
	Short: "Verify an 8-digit student ID",
	Long: `Match a student ID to the local profile.

When the service finds a record that still needs confirming, pass
--confirm to link it to this profile.`,
	Example: `  campuspass verify 20231145
  campuspass verify 20231145 --confirm`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().BoolVar(&confirmMatch, "confirm", false, "Confirm the record if the service asks")
}

func runVerify(cmd *cobra.Command, args []string) error {
	registry, p, err := setup()
	if err != nil {
		return err
	}
	defer logging.Sync()

	id := strings.TrimSpace(args[0])
	p.PrintHeader("Verify student ID", cmd.CommandPath()+" "+id,
		ui.Field{Key: "Backend", Value: settings.EffectiveAPIURL(registry.Preferences)})

	if err := studentapi.ValidateStudentID(id, studentapi.StudentIDLength); err != nil {
		return fail(p, "Invalid student ID", err)
	}

	client := newClient(registry)
	userID := registry.Profile.UserID
	result, err := client.Verify(cmd.Context(), userID, id, studentapi.RoleStudent)
	if err != nil {
		return fail(p, "Verification failed", err)
	}

	student := result.Student
	switch result.Outcome() {
	case studentapi.OutcomeNeedsConfirmation:
		if !confirmMatch {
			p.PrintWarning("Confirmation needed", studentFields(student)...)
			p.PrintNote("Run again with --confirm if this is you.")
			return nil
		}
		confirmed, err := client.Confirm(cmd.Context(), userID, id)
		if err != nil {
			return fail(p, "Confirmation failed", err)
		}
		if !confirmed.Success {
			return fail(p, "Confirmation failed", studentapi.NewValidationError(confirmed.Message))
		}
		if confirmed.Student != nil {
			student = confirmed.Student
		}
	case studentapi.OutcomeFailed:
		msg := result.Message
		if msg == "" {
			msg = "verification failed"
		}
		return fail(p, "Verification failed", studentapi.NewValidationError(msg))
	}

	registry.SetVerifiedStudent(id, studentRecord(student))
	if err := registry.Save(); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	p.PrintSuccess("Student ID verified", studentFields(student)...)
	return nil
}

func studentFields(s *studentapi.Student) []ui.Field {
	if s == nil {
		return nil
	}
	enrolled := "Not enrolled"
	if s.IsEnrolled {
		enrolled = "Enrolled"
	}
	return []ui.Field{
		{Key: "Name", Value: s.FullName},
		{Key: "Student ID", Value: s.StudentID},
		{Key: "Level", Value: s.SchLevel},
		{Key: "Status", Value: enrolled},
	}
}

func studentRecord(s *studentapi.Student) *config.StudentRecord {
	if s == nil {
		return nil
	}
	return &config.StudentRecord{
		FullName:   s.FullName,
		StudentID:  s.StudentID,
		SchLevel:   s.SchLevel,
		Gender:     s.Gender,
		IsEnrolled: s.IsEnrolled,
	}
}

var sendVerificationCmd = &cobra.Command{
	Use:     "send-verification <email>",
	Short:   "Send a one-time code to an email address",
	Example: `  campuspass send-verification ada@uni.edu.ng`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, p, err := setup()
		if err != nil {
			return err
		}
		defer logging.Sync()

		email := strings.TrimSpace(args[0])
		p.PrintHeader("Send verification code", cmd.CommandPath()+" "+email)
		if err := studentapi.ValidateEmail(email); err != nil {
			return fail(p, "Invalid email", err)
		}

		sent, err := newClient(registry).SendVerification(cmd.Context(), email)
		if err != nil {
			return fail(p, "Could not send code", err)
		}
		if !sent {
			p.PrintWarning("Code not sent", ui.Field{Key: "Email", Value: email})
			return nil
		}
		p.PrintSuccess("Code sent", ui.Field{Key: "Email", Value: email})
		p.PrintNote(fmt.Sprintf("Run 'campuspass confirm-email %s <code>' with the %d-digit code.", email, studentapi.OTPLength))
		return nil
	},
}

var confirmEmailCmd = &cobra.Command{
	Use:     "confirm-email <email> <code>",
	Short:   "Confirm an email address with its one-time code",
	Example: `  campuspass confirm-email ada@uni.edu.ng 123456`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, p, err := setup()
		if err != nil {
			return err
		}
		defer logging.Sync()

		email, code := strings.TrimSpace(args[0]), strings.TrimSpace(args[1])
		p.PrintHeader("Confirm email", cmd.CommandPath()+" "+email)
		if err := studentapi.ValidateEmail(email); err != nil {
			return fail(p, "Invalid email", err)
		}
		if err := studentapi.ValidateOTP(code, studentapi.OTPLength); err != nil {
			return fail(p, "Invalid code", err)
		}

		ok, err := newClient(registry).ConfirmEmail(cmd.Context(), registry.Profile.UserID, email, code)
		if err != nil {
			return fail(p, "Confirmation failed", err)
		}
		if !ok {
			return fail(p, "Confirmation failed", studentapi.NewValidationError("the code is not valid or has expired"))
		}

		registry.SetEmail(email)
		if err := registry.Save(); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
		p.PrintSuccess("Email confirmed", ui.Field{Key: "Email", Value: email})
		return nil
	},
}

var resetPasswordCmd = &cobra.Command{
	Use:     "reset-password <email>",
	Short:   "Request a password reset link",
	Example: `  campuspass reset-password ada@uni.edu.ng`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, p, err := setup()
		if err != nil {
			return err
		}
		defer logging.Sync()

		email := strings.TrimSpace(args[0])
		p.PrintHeader("Reset password", cmd.CommandPath()+" "+email)
		if err := studentapi.ValidateEmail(email); err != nil {
			return fail(p, "Invalid email", err)
		}

		sent, err := newClient(registry).RequestPasswordReset(cmd.Context(), email)
		if err != nil {
			return fail(p, "Could not request reset", err)
		}
		if !sent {
			p.PrintWarning("Reset link not sent", ui.Field{Key: "Email", Value: email})
			return nil
		}
		p.PrintSuccess("Check your inbox", ui.Field{Key: "Email", Value: email})
		return nil
	},
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find campuspass backends on the local network",
	Long: `Browse mDNS for campuspass backends and remember the ones found.

With --use, the first backend found becomes this profile's backend.`,
	Example: `  # Scan for 5 seconds (default)
  campuspass discover

  # Scan longer and switch to the first backend
  campuspass discover --timeout 10s --use`,
	Args: cobra.NoArgs,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().DurationVar(&discoverTimeout, "timeout", discovery.DefaultScanTimeout, "How long to browse")
	discoverCmd.Flags().BoolVar(&discoverUse, "use", false, "Use the first backend found")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	registry, p, err := setup()
	if err != nil {
		return err
	}
	defer logging.Sync()

	p.PrintHeader("Discover backends", cmd.CommandPath(),
		ui.Field{Key: "Service", Value: discovery.ServiceType + "." + discovery.ServiceDomain},
		ui.Field{Key: "Timeout", Value: discoverTimeout.String()},
	)
	p.PrintPleaseWait("Browsing the local network", discoverTimeout.String())

	backends, err := discovery.ScanForBackends(cmd.Context(), discoverTimeout)
	if err != nil {
		return fail(p, "Discovery failed", err)
	}
	if len(backends) == 0 {
		p.PrintError("No backends found", nil, []string{
			"Start one with 'campuspass-mock serve'",
			"Check that this machine and the backend share a network",
			"Try a longer --timeout",
		})
		return nil
	}

	rows := make([][]string, len(backends))
	for i, b := range backends {
		rows[i] = []string{b.Instance, b.BaseURL(), b.Version}
		registry.UpdateBackendLastSeen(b.Instance, b.BaseURL())
	}
	p.PrintTable([]string{"Instance", "URL", "Version"}, rows)

	if discoverUse {
		registry.Preferences.APIURL = backends[0].BaseURL()
	}
	if err := registry.Save(); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	if discoverUse {
		p.PrintSuccess("Backend selected", ui.Field{Key: "URL", Value: registry.Preferences.APIURL})
	}
	return nil
}
