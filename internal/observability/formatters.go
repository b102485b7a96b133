// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-builder/internal/tab"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// descriptionLines is how many description lines an open entry shows
	descriptionLines = 3
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func check(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

// PrintEducationTab outputs the education tab: the section toggle and
// heading, one line per entry, the fields of open entries and the add panel.
func (p *Printer) PrintEducationTab(view tab.TabView) {
	var sb strings.Builder

	enabled, _ := view.Enable.Value.(bool)
	heading, _ := view.Heading.Value.(string)
	sb.WriteString(fmt.Sprintf("%s Enabled   Heading: %s\n", check(enabled), heading))

	if len(view.Items) == 0 {
		sb.WriteString("\nNo entries yet.\n")
	}
	for _, item := range view.Items {
		sb.WriteString("\n")
		p.writeItem(&sb, item)
	}

	sb.WriteString("\n")
	marker := "+"
	if view.Add.Open {
		marker = "-"
	}
	sb.WriteString(fmt.Sprintf("%s %s\n", marker, view.Add.Title))
	if view.Add.Open {
		writeFields(&sb, view.Add.Fields)
	}

	title := strings.ToUpper(heading)
	if title == "" {
		title = "EDUCATION"
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

func (p *Printer) writeItem(sb *strings.Builder, item tab.ItemView) {
	enabled, _ := item.Enable.Value.(bool)
	title := item.Title
	if title == "" {
		title = "(untitled)"
	}

	moves := ""
	if item.CanMoveUp {
		moves += "↑"
	}
	if item.CanMoveDown {
		moves += "↓"
	}
	sb.WriteString(fmt.Sprintf("%d. %s %s %s\n", item.Index+1, check(enabled), title, moves))

	if item.Open {
		writeFields(sb, item.Fields)
	}
}

func writeFields(sb *strings.Builder, fields []tab.Field) {
	for _, f := range fields {
		value, _ := f.Value.(string)
		if f.Kind == tab.KindTextArea {
			sb.WriteString(fmt.Sprintf("   %s:\n", f.Label))
			lines := strings.Split(value, "\n")
			for i, line := range lines {
				if i == descriptionLines {
					sb.WriteString(fmt.Sprintf("     ... and %d more lines\n", len(lines)-descriptionLines))
					break
				}
				sb.WriteString(fmt.Sprintf("     %s\n", line))
			}
			continue
		}
		if value == "" {
			value = "-"
		}
		sb.WriteString(fmt.Sprintf("   %-11s %s\n", f.Label+":", value))
	}
}
