package tab

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestView_Layout(t *testing.T) {
	tab, _ := newTestTab(t, &resume.EducationEntry{
		ID: "a", Enable: true, Name: "Harvard", Major: "CS", Grade: "4.0",
	})

	view := tab.View()

	assert.Equal(t, resume.EducationEnablePath, view.Enable.Path)
	assert.Equal(t, KindCheckbox, view.Enable.Kind)
	assert.Equal(t, "Heading", view.Heading.Placeholder)
	assert.Equal(t, "Education", view.Heading.Value)

	require.Len(t, view.Items, 1)
	item := view.Items[0]
	assert.Equal(t, "Harvard", item.Title)
	assert.False(t, item.Open)
	assert.False(t, item.CanMoveUp)
	assert.False(t, item.CanMoveDown)
	assert.Equal(t, "education.items[0].enable", item.Enable.Path)

	want := []Field{
		{Kind: KindText, Name: "name", Label: "Name", Placeholder: "Harvard University", Path: "education.items[0].name", Value: "Harvard"},
		{Kind: KindText, Name: "major", Label: "Major", Placeholder: "Masters in Computer Science", Path: "education.items[0].major", Value: "CS"},
		{Kind: KindText, Name: "grade", Label: "Grade", Placeholder: "7.2 CGPA", Path: "education.items[0].grade", Value: "4.0"},
		{Kind: KindText, Name: "start", Label: "Start Date", Placeholder: "March 2018", Path: "education.items[0].start", Value: ""},
		{Kind: KindText, Name: "end", Label: "End Date", Placeholder: "May 2020", Path: "education.items[0].end", Value: ""},
		{
			Kind: KindTextArea, Name: "description", Label: "Description",
			Placeholder: "You can write about projects or special credit classes that you took while studying at this school.",
			Path:        "education.items[0].description", Value: "", Rows: 5,
		},
	}
	if diff := cmp.Diff(want, item.Fields); diff != "" {
		t.Errorf("item fields mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "Add Education", view.Add.Title)
	assert.Equal(t, "draft-1", view.Add.DraftID)
	for _, f := range view.Add.Fields {
		assert.Empty(t, f.Path, "draft field %s must not be bound to the document", f.Name)
	}
}

func TestView_TracksOpenStateAndPrunesDeleted(t *testing.T) {
	ctx := context.Background()
	tab, _ := newTestTab(t, entry("a"), entry("b"))

	a, err := tab.Item(0)
	require.NoError(t, err)
	a.Toggle()
	tab.AddPanel().Toggle()

	view := tab.View()
	assert.True(t, view.Items[0].Open)
	assert.False(t, view.Items[1].Open)
	assert.True(t, view.Add.Open)

	require.NoError(t, a.Delete(ctx))
	view = tab.View()
	require.Len(t, view.Items, 1)
	assert.Equal(t, "b", view.Items[0].ID)
	assert.Empty(t, tab.open)
}

func TestView_JSON(t *testing.T) {
	tab, _ := newTestTab(t, entry("a"))

	data, err := json.Marshal(tab.View())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "items")
	assert.Contains(t, decoded, "add")
	items := decoded["items"].([]any)
	assert.Equal(t, "a", items[0].(map[string]any)["id"])
}
