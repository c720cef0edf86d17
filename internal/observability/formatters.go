// Package observability provides formatted terminal output for the chat REPL.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-grader/internal/controller"
	"github.com/jonathan/resume-grader/internal/session"
)

// boxWidth is the default width for formatted output boxes
const boxWidth = 72

// Printer handles formatted output for the interactive session.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// PrintResult renders a controller result: a report box, an informational
// line, or a failure box, always followed by the next-step prompt.
func (p *Printer) PrintResult(res *controller.Result) {
	switch {
	case res.Failed():
		p.printBox("ERROR ("+controller.ErrorKind(res.Err)+")", controller.UserMessage(res.Err))
	case res.Report != nil:
		p.printBox(strings.ToUpper(res.Report.Mode.Title()), res.Report.Text)
	case res.Info != "":
		fmt.Fprintf(p.out, "%s\n", res.Info)
	}

	if prompt := res.Prompt(); prompt != "" {
		fmt.Fprintf(p.out, "\n%s\n", prompt)
	}
	if len(res.ValidActions) > 0 {
		fmt.Fprintf(p.out, "Actions: %s\n", joinActions(res.ValidActions))
	}
}

// PrintReport renders a single analysis report box without the next-step
// prompt, for one-shot output.
func (p *Printer) PrintReport(report session.Report) {
	p.printBox(strings.ToUpper(report.Mode.Title()), report.Text)
}

// PrintSession renders the current session status and any cached reports.
func (p *Printer) PrintSession(sess *session.Session) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("State:  %s\n", sess.State()))
	if name := sess.ResumeName(); name != "" {
		sb.WriteString(fmt.Sprintf("Resume: %s\n", name))
	}
	if source := sess.JobSource(); source != "" {
		sb.WriteString(fmt.Sprintf("Job:    %s\n", source))
	}

	reports := sess.CachedReports()
	if len(reports) > 0 {
		sb.WriteString("\nCached reports:\n")
		for _, r := range reports {
			sb.WriteString(fmt.Sprintf("  - %s (%s)\n", r.Mode.Title(), r.GeneratedAt.Format("15:04:05")))
		}
	}

	p.printBox("SESSION", strings.TrimSuffix(sb.String(), "\n"))
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		for _, chunk := range wrapLine(line, boxWidth-4) {
			fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, chunk)
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// wrapLine splits a line into chunks that fit the box interior.
func wrapLine(line string, width int) []string {
	if line == "" {
		return []string{""}
	}
	var chunks []string
	runes := []rune(line)
	for len(runes) > width {
		cut := width
		// Prefer breaking at a space
		for i := width; i > width/2; i-- {
			if runes[i-1] == ' ' {
				cut = i
				break
			}
		}
		chunks = append(chunks, strings.TrimRight(string(runes[:cut]), " "))
		runes = runes[cut:]
	}
	chunks = append(chunks, string(runes))
	return chunks
}

// joinActions renders an action list for display.
func joinActions(actions []controller.Action) string {
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = string(a)
	}
	return strings.Join(parts, ", ")
}
