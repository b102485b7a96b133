package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/tab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTab(entries ...*resume.EducationEntry) *tab.EducationTab {
	doc := resume.NewDocument("r1")
	doc.Education.Items = entries
	return tab.NewEducationTab(store.New(doc), tab.WithIDFactory(func() string { return "draft" }))
}

func TestPrintEducationTab(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	et := newTab(
		&resume.EducationEntry{ID: "a", Enable: true, Name: "Harvard University", Major: "CS", Description: "one\ntwo\nthree\nfour\nfive"},
		&resume.EducationEntry{ID: "b", Name: "MIT"},
	)
	item, err := et.Item(0)
	require.NoError(t, err)
	item.Toggle()

	p.PrintEducationTab(et.View())
	output := buf.String()

	assert.Contains(t, output, "EDUCATION")
	assert.Contains(t, output, "1. [x] Harvard University ↓")
	assert.Contains(t, output, "2. [ ] MIT ↑")
	assert.Contains(t, output, "Major:")
	assert.Contains(t, output, "... and 2 more lines")
	assert.NotContains(t, output, "four")
	assert.Contains(t, output, "+ Add Education")
}

func TestPrintEducationTab_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	et := newTab()
	et.AddPanel().Toggle()
	p.PrintEducationTab(et.View())
	output := buf.String()

	assert.Contains(t, output, "No entries yet.")
	assert.Contains(t, output, "- Add Education")
	assert.Contains(t, output, "Name:")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 100))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)))
	}
	assert.Contains(t, buf.String(), "...")
}
