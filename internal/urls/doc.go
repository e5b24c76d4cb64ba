// Package urls provides centralized constants for all documentation URLs used
// throughout the application.
//
// All help and legal URLs are defined here so they can be updated in a single
// location before release.
//
// Usage:
//
//	import "github.com/muurk/campuspass/internal/urls"
//
//	fmt.Printf("Can't find your ID? See: %s\n", urls.StudentIDHelp)
package urls
