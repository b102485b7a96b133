package tab

import "github.com/jonathan/resume-builder/internal/resume"

// TabView is a serialisable snapshot of the tab.
type TabView struct {
	Enable  Field      `json:"enable"`
	Heading Field      `json:"heading"`
	Items   []ItemView `json:"items"`
	Add     AddView    `json:"add"`
}

// ItemView describes one entry editor.
type ItemView struct {
	ID          string  `json:"id"`
	Index       int     `json:"index"`
	Title       string  `json:"title"`
	Open        bool    `json:"open"`
	Fields      []Field `json:"fields"`
	Enable      Field   `json:"enable"`
	CanMoveUp   bool    `json:"canMoveUp"`
	CanMoveDown bool    `json:"canMoveDown"`
}

// AddView describes the add panel. Draft fields carry no path: they edit
// the panel's draft, not the document.
type AddView struct {
	Title   string  `json:"title"`
	Open    bool    `json:"open"`
	DraftID string  `json:"draftId"`
	Fields  []Field `json:"fields"`
}

// View renders the current state of the tab.
func (t *EducationTab) View() TabView {
	section := t.Section()
	t.prune(section.Items)

	items := t.Items()
	view := TabView{
		Enable: Field{
			Kind:  KindCheckbox,
			Name:  "enable",
			Path:  resume.EducationEnablePath,
			Value: section.Enable,
		},
		Heading: Field{
			Kind:        KindText,
			Name:        "heading",
			Placeholder: "Heading",
			Path:        resume.EducationHeadingPath,
			Value:       section.Heading,
		},
		Items: make([]ItemView, 0, len(items)),
		Add:   t.add.view(),
	}
	for _, it := range items {
		view.Items = append(view.Items, it.view())
	}
	return view
}

func (it *Item) view() ItemView {
	return ItemView{
		ID:     it.entry.ID,
		Index:  it.index,
		Title:  it.entry.Name,
		Open:   it.IsOpen(),
		Fields: formFields(it.entry, it.Path),
		Enable: Field{
			Kind:  KindCheckbox,
			Name:  string(resume.EducationEnable),
			Label: "Enable",
			Path:  it.Path(resume.EducationEnable),
			Value: it.entry.Enable,
		},
		CanMoveUp:   it.CanMoveUp(),
		CanMoveDown: it.CanMoveDown(),
	}
}

func (p *AddPanel) view() AddView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return AddView{
		Title:   "Add Education",
		Open:    p.open,
		DraftID: p.draft.ID,
		Fields:  formFields(p.draft, func(resume.EducationField) string { return "" }),
	}
}
