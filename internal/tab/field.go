package tab

import "github.com/jonathan/resume-builder/internal/resume"

// FieldKind selects the widget used to edit a field.
type FieldKind string

// Widget kinds.
const (
	KindText     FieldKind = "text"
	KindTextArea FieldKind = "textarea"
	KindCheckbox FieldKind = "checkbox"
)

// Field describes one controlled input: its widget, labels, the path its
// edits are dispatched to and the current value.
type Field struct {
	Kind        FieldKind `json:"kind"`
	Name        string    `json:"name"`
	Label       string    `json:"label,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Path        string    `json:"path,omitempty"`
	Value       any       `json:"value"`
	Rows        int       `json:"rows,omitempty"`
}

type fieldSpec struct {
	field       resume.EducationField
	kind        FieldKind
	label       string
	placeholder string
	rows        int
}

// educationForm is the editor layout shared by entry editors and the add panel.
var educationForm = []fieldSpec{
	{field: resume.EducationName, kind: KindText, label: "Name", placeholder: "Harvard University"},
	{field: resume.EducationMajor, kind: KindText, label: "Major", placeholder: "Masters in Computer Science"},
	{field: resume.EducationGrade, kind: KindText, label: "Grade", placeholder: "7.2 CGPA"},
	{field: resume.EducationStart, kind: KindText, label: "Start Date", placeholder: "March 2018"},
	{field: resume.EducationEnd, kind: KindText, label: "End Date", placeholder: "May 2020"},
	{
		field:       resume.EducationDescription,
		kind:        KindTextArea,
		label:       "Description",
		placeholder: "You can write about projects or special credit classes that you took while studying at this school.",
		rows:        5,
	},
}

func fieldValue(e *resume.EducationEntry, f resume.EducationField) any {
	switch f {
	case resume.EducationEnable:
		return e.Enable
	case resume.EducationName:
		return e.Name
	case resume.EducationMajor:
		return e.Major
	case resume.EducationStart:
		return e.Start
	case resume.EducationEnd:
		return e.End
	case resume.EducationGrade:
		return e.Grade
	case resume.EducationDescription:
		return e.Description
	}
	return nil
}

// formFields renders educationForm for entry. pathOf returns the bound path
// of each field, or "" for fields that are not bound to the document.
func formFields(e *resume.EducationEntry, pathOf func(resume.EducationField) string) []Field {
	fields := make([]Field, 0, len(educationForm))
	for _, spec := range educationForm {
		fields = append(fields, Field{
			Kind:        spec.kind,
			Name:        string(spec.field),
			Label:       spec.label,
			Placeholder: spec.placeholder,
			Path:        pathOf(spec.field),
			Value:       fieldValue(e, spec.field),
			Rows:        spec.rows,
		})
	}
	return fields
}
