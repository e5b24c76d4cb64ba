package urls

// Help and legal pages linked from account settings and CLI output.
// All URLs point to the documentation site at https://muurk.github.io/campuspass/

// GettingStarted is the quick start guide for new students.
const GettingStarted = "https://muurk.github.io/campuspass/getting-started/"

// StudentIDHelp explains where to find the 8-digit student ID.
const StudentIDHelp = "https://muurk.github.io/campuspass/help/student-id/"

// EmailHelp covers verification codes that never arrive.
const EmailHelp = "https://muurk.github.io/campuspass/help/email/"

// MockBackend documents running campuspass-mock for local development.
const MockBackend = "https://muurk.github.io/campuspass/development/mock-backend/"

// Privacy is the privacy notice.
const Privacy = "https://muurk.github.io/campuspass/legal/privacy/"

// Terms is the terms of use.
const Terms = "https://muurk.github.io/campuspass/legal/terms/"

// Link is a labelled URL for menus.
type Link struct {
	Label string
	URL   string
}

// SettingsLinks lists the links shown under account settings, in order.
var SettingsLinks = []Link{
	{Label: "Getting started", URL: GettingStarted},
	{Label: "Finding your student ID", URL: StudentIDHelp},
	{Label: "Email verification help", URL: EmailHelp},
	{Label: "Privacy", URL: Privacy},
	{Label: "Terms of use", URL: Terms},
}
