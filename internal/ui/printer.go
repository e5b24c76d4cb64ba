package ui

import (
	"fmt"
	"io"
	"os"
)

// Printer writes command output to a writer at a fixed width.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a Printer. A nil w writes to os.Stdout.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{out: w, width: GetTerminalWidth()}
}

// WithWidth returns a copy of p that renders at width.
func (p *Printer) WithWidth(width int) *Printer {
	c := *p
	c.width = width
	return &c
}

// Width returns the rendering width
func (p *Printer) Width() int {
	return p.width
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// Printf writes formatted content
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintHeader prints a command header box
func (p *Printer) PrintHeader(title, command string, params ...Field) {
	p.Println(NewHeader(title, command, params...).SetWidth(p.width).Render())
	p.Newline()
}

// PrintSuccess prints a success result box
func (p *Printer) PrintSuccess(title string, details ...Field) {
	p.Println(NewSuccessResult(title, details...).SetWidth(p.width).Render())
}

// PrintWarning prints a warning result box
func (p *Printer) PrintWarning(title string, details ...Field) {
	p.Println(NewWarningResult(title, details...).SetWidth(p.width).Render())
}

// PrintError prints a failure box with troubleshooting tips
func (p *Printer) PrintError(title string, err error, troubleshooting []string) {
	p.Println(NewFailureResult(title, err, troubleshooting).SetWidth(p.width).Render())
}

// PrintTable prints a bordered table
func (p *Printer) PrintTable(headers []string, rows [][]string) {
	p.Println(RenderTable(headers, rows, 0))
}

// PrintNote prints a muted line
func (p *Printer) PrintNote(text string) {
	p.Println(NoteStyle.Render(text))
}

// PrintPleaseWait prints a notice before a blocking step.
func (p *Printer) PrintPleaseWait(message, durationHint string) {
	line := WarningTitleStyle.Render("  ● " + message)
	if durationHint != "" {
		line += " " + NoteStyle.Render("("+durationHint+")")
	}
	p.Println(line)
}
