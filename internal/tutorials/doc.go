// Package tutorials holds the markdown guides shown on the tutorials
// screen. Each file under content/ starts with YAML front matter giving its
// title, summary and position in the list.
package tutorials
