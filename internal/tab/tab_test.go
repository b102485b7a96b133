package tab

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	*store.Store
	dispatches int
}

func (c *countingStore) Dispatch(ctx context.Context, action store.Action) error {
	c.dispatches++
	return c.Store.Dispatch(ctx, action)
}

func newTestTab(t *testing.T, entries ...*resume.EducationEntry) (*EducationTab, *countingStore) {
	t.Helper()
	doc := resume.NewDocument("doc-1")
	doc.Education.Items = append(doc.Education.Items, entries...)
	src := &countingStore{Store: store.New(doc)}
	return NewEducationTab(src, WithIDFactory(sequence("draft"))), src
}

func sequence(prefix string) IDFactory {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func entry(id string) *resume.EducationEntry {
	return &resume.EducationEntry{ID: id, Enable: true, Name: "School " + id, Major: "Major " + id}
}

func itemIDs(tab *EducationTab) []string {
	var out []string
	for _, it := range tab.Items() {
		out = append(out, it.ID())
	}
	return out
}

func TestAddPanel_SubmitAppendsDraft(t *testing.T) {
	ctx := context.Background()
	tab, src := newTestTab(t, &resume.EducationEntry{ID: "a", Name: "X", Major: "Y"})
	panel := tab.AddPanel()
	panel.Toggle()

	require.NoError(t, panel.SetField(resume.EducationName, "Harvard"))
	require.NoError(t, panel.SetField(resume.EducationMajor, "CS"))
	require.NoError(t, panel.Submit(ctx))

	items := src.State().Education.Items
	require.Len(t, items, 2)
	assert.Equal(t, "Harvard", items[1].Name)
	assert.Equal(t, "CS", items[1].Major)
	assert.Equal(t, "draft-1", items[1].ID)
	assert.True(t, items[1].Enable)
	assert.Equal(t, 1, src.dispatches)

	assert.False(t, panel.IsOpen(), "panel collapses after a successful submit")
	assert.Equal(t, resume.EducationEntry{ID: "draft-2", Enable: true}, panel.Draft())
}

func TestAddPanel_SubmitRequiresNameAndMajor(t *testing.T) {
	tests := []struct {
		name    string
		setName string
		major   string
		missing []string
	}{
		{name: "both empty", missing: []string{"name", "major"}},
		{name: "name empty", major: "CS", missing: []string{"name"}},
		{name: "major empty", setName: "Harvard", missing: []string{"major"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tab, src := newTestTab(t, entry("a"))
			before := src.State()
			panel := tab.AddPanel()
			panel.Toggle()
			require.NoError(t, panel.SetField(resume.EducationName, tt.setName))
			require.NoError(t, panel.SetField(resume.EducationMajor, tt.major))
			require.NoError(t, panel.SetField(resume.EducationGrade, "4.0"))

			err := panel.Submit(context.Background())

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.missing, verr.Fields)
			assert.True(t, IsValidationError(err))

			assert.Equal(t, 0, src.dispatches)
			assert.Same(t, before, src.State())
			assert.True(t, panel.IsOpen())
			assert.Equal(t, "4.0", panel.Draft().Grade, "draft is kept for correction")
			assert.Equal(t, "draft-1", panel.Draft().ID)
		})
	}
}

func TestAddPanel_SuccessiveSubmitsGetFreshIDs(t *testing.T) {
	ctx := context.Background()
	tab, src := newTestTab(t)
	panel := tab.AddPanel()

	for _, name := range []string{"MIT", "Stanford"} {
		require.NoError(t, panel.SetField(resume.EducationName, name))
		require.NoError(t, panel.SetField(resume.EducationMajor, "Physics"))
		require.NoError(t, panel.Submit(ctx))
	}

	assert.Equal(t, []string{"draft-1", "draft-2"}, itemIDs(tab))
	assert.Equal(t, 2, src.dispatches)
}

func TestAddPanel_DefaultIDFactory(t *testing.T) {
	doc := resume.NewDocument("doc-1")
	tab := NewEducationTab(store.New(doc))

	first := tab.AddPanel().Draft().ID
	assert.Len(t, first, 36)

	other := NewEducationTab(store.New(doc)).AddPanel().Draft().ID
	assert.NotEqual(t, first, other)
}

func TestAddPanel_SetFieldRejectsUnknownField(t *testing.T) {
	tab, _ := newTestTab(t)
	err := tab.AddPanel().SetField("school", "x")
	assert.Error(t, err)
}

func TestItem_MoveBoundariesDoNotDispatch(t *testing.T) {
	ctx := context.Background()
	tab, src := newTestTab(t, entry("a"), entry("b"), entry("c"))

	first, err := tab.Item(0)
	require.NoError(t, err)
	last, err := tab.Item(2)
	require.NoError(t, err)

	assert.False(t, first.CanMoveUp())
	assert.True(t, first.CanMoveDown())
	assert.True(t, last.CanMoveUp())
	assert.False(t, last.CanMoveDown())

	require.NoError(t, first.MoveUp(ctx))
	require.NoError(t, last.MoveDown(ctx))
	assert.Equal(t, 0, src.dispatches)
	assert.Equal(t, []string{"a", "b", "c"}, itemIDs(tab))
}

func TestItem_MoveUpThenDownRestoresOrder(t *testing.T) {
	ctx := context.Background()

	for i := 1; i < 4; i++ {
		tab, _ := newTestTab(t, entry("a"), entry("b"), entry("c"), entry("d"))
		original := itemIDs(tab)

		it, err := tab.Item(i)
		require.NoError(t, err)
		require.NoError(t, it.MoveUp(ctx))
		assert.Equal(t, original[i], itemIDs(tab)[i-1])

		back, err := tab.Item(i - 1)
		require.NoError(t, err)
		require.NoError(t, back.MoveDown(ctx))
		assert.Equal(t, original, itemIDs(tab))
	}
}

func TestItem_DeletePreservesOrder(t *testing.T) {
	tab, src := newTestTab(t, entry("a"), entry("b"), entry("c"), entry("d"))
	before := src.State().Education.Items

	it, err := tab.Item(2)
	require.NoError(t, err)
	require.NoError(t, it.Delete(context.Background()))

	after := src.State().Education.Items
	assert.Equal(t, []string{"a", "b", "d"}, itemIDs(tab))
	assert.Same(t, before[0], after[0])
	assert.Same(t, before[1], after[1])
	assert.Same(t, before[3], after[2])
}

func TestItem_SetFieldTouchesOnlyThatEntry(t *testing.T) {
	tab, src := newTestTab(t, entry("a"), entry("b"), entry("c"))
	prev := src.State()

	it, err := tab.Item(1)
	require.NoError(t, err)
	assert.Equal(t, "education.items[1].major", it.Path(resume.EducationMajor))
	require.NoError(t, it.SetField(context.Background(), resume.EducationMajor, "Mathematics"))

	next := src.State()
	assert.Equal(t, "Mathematics", next.Education.Items[1].Major)
	assert.Same(t, prev.Education.Items[0], next.Education.Items[0])
	assert.Same(t, prev.Education.Items[2], next.Education.Items[2])
	assert.Same(t, prev.Profile, next.Profile)
	assert.Same(t, prev.Work, next.Work)

	want := *prev.Education.Items[1]
	want.Major = "Mathematics"
	if diff := cmp.Diff(&want, next.Education.Items[1]); diff != "" {
		t.Errorf("entry mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Major b", prev.Education.Items[1].Major, "previous root is untouched")
}

func TestItem_OutOfRange(t *testing.T) {
	tab, _ := newTestTab(t, entry("a"))
	_, err := tab.Item(1)
	assert.ErrorIs(t, err, ErrNoSuchItem)
	_, err = tab.Item(-1)
	assert.ErrorIs(t, err, ErrNoSuchItem)
}

func TestItem_OpenStateIsViewLocal(t *testing.T) {
	ctx := context.Background()
	tab, src := newTestTab(t, entry("a"), entry("b"))
	before := src.State()

	b, err := tab.Item(1)
	require.NoError(t, err)
	b.Toggle()
	assert.True(t, b.IsOpen())
	assert.Equal(t, 0, src.dispatches)
	assert.Same(t, before, src.State())

	// Open state follows the entry id, not its index.
	require.NoError(t, b.MoveUp(ctx))
	moved, err := tab.Item(0)
	require.NoError(t, err)
	assert.Equal(t, "b", moved.ID())
	assert.True(t, moved.IsOpen())

	other, err := tab.Item(1)
	require.NoError(t, err)
	assert.False(t, other.IsOpen())

	moved.Toggle()
	assert.False(t, moved.IsOpen())
}

func TestEducationTab_SectionToggleAndHeading(t *testing.T) {
	ctx := context.Background()
	tab, src := newTestTab(t, entry("a"))

	require.NoError(t, tab.SetEnable(ctx, false))
	require.NoError(t, tab.SetHeading(ctx, "Academics"))
	require.NoError(t, tab.OnChange(ctx, "data.education.heading", "Studies"))

	assert.False(t, src.State().Education.Enable)
	assert.Equal(t, "Studies", src.State().Education.Heading)
	assert.Equal(t, 3, src.dispatches)
}

func TestEducationTab_MissingSection(t *testing.T) {
	doc := resume.NewDocument("doc-1")
	doc.Education = nil
	tab := NewEducationTab(store.New(doc))

	assert.Empty(t, tab.Items())
	view := tab.View()
	assert.Empty(t, view.Items)
	assert.Equal(t, false, view.Enable.Value)

	require.NoError(t, tab.SetHeading(context.Background(), "Education"))
	assert.Equal(t, "Education", tab.Section().Heading)
}

func TestEducationTab_Watch(t *testing.T) {
	ctx := context.Background()
	s := store.New(resume.NewDocument("doc-1"))
	tab := NewEducationTab(s)

	var renders []TabView
	stop := tab.Watch(s, func(v TabView) { renders = append(renders, v) })

	require.NoError(t, store.SetField(ctx, s, "profile.firstName", "Ada"))
	assert.Empty(t, renders, "changes outside the section do not re-render")

	require.NoError(t, tab.SetHeading(ctx, "Schools"))
	require.Len(t, renders, 1)
	assert.Equal(t, "Schools", renders[0].Heading.Value)

	stop()
	require.NoError(t, tab.SetHeading(ctx, "Again"))
	assert.Len(t, renders, 1)
}
