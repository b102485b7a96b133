package resume

import "fmt"

// EducationField names one editable field of an EducationEntry. The value is
// the field's JSON key, so it doubles as the last path segment.
type EducationField string

// Education entry fields.
const (
	EducationEnable      EducationField = "enable"
	EducationName        EducationField = "name"
	EducationMajor       EducationField = "major"
	EducationStart       EducationField = "start"
	EducationEnd         EducationField = "end"
	EducationGrade       EducationField = "grade"
	EducationDescription EducationField = "description"
)

// Section-level paths of the education section.
const (
	EducationEnablePath  = "education.enable"
	EducationHeadingPath = "education.heading"
)

// EducationItemPrefix returns the path of the entry at index.
func EducationItemPrefix(index int) string {
	return fmt.Sprintf("education.items[%d]", index)
}

// EducationItemPath returns the path of one field of the entry at index.
func EducationItemPath(index int, field EducationField) string {
	return EducationItemPrefix(index) + "." + string(field)
}

// SectionItemsPath returns the path of a section's item list.
func SectionItemsPath(section string) string {
	return section + ".items"
}
