// Package resume defines the resume document tree edited by the builder.
//
// A Document is treated as immutable once it has been handed to a store:
// mutations go through the docpath package, which copies every container on
// the mutated path and keeps all other subtrees pointer-identical.
package resume

import "slices"

// Section keys addressable by list operations.
const (
	SectionEducation = "education"
	SectionWork      = "work"
	SectionSkills    = "skills"
)

// SectionKeys lists every section that holds an ordered list of entries.
var SectionKeys = []string{SectionEducation, SectionWork, SectionSkills}

// IsSection reports whether key names a list-bearing section.
func IsSection(key string) bool {
	return slices.Contains(SectionKeys, key)
}

// Document is the root of a resume.
type Document struct {
	ID        string                   `json:"id"`
	Profile   *Profile                 `json:"profile"`
	Education *Section[EducationEntry] `json:"education"`
	Work      *Section[WorkEntry]      `json:"work"`
	Skills    *Section[SkillEntry]     `json:"skills"`
}

// Profile holds contact information.
type Profile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Subtitle  string `json:"subtitle"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Website   string `json:"website"`
	Address   string `json:"address"`
}

// Section is a named, independently toggleable part of the document.
// Display order is storage order.
type Section[T any] struct {
	Enable  bool   `json:"enable"`
	Heading string `json:"heading"`
	Items   []*T   `json:"items"`
}

// EducationEntry is one degree or school record.
type EducationEntry struct {
	ID          string `json:"id"`
	Enable      bool   `json:"enable"`
	Name        string `json:"name"`
	Major       string `json:"major"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Grade       string `json:"grade"`
	Description string `json:"description"`
}

// WorkEntry is one employment record.
type WorkEntry struct {
	ID          string `json:"id"`
	Enable      bool   `json:"enable"`
	Title       string `json:"title"`
	Role        string `json:"role"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Description string `json:"description"`
}

// SkillEntry is a single skill line.
type SkillEntry struct {
	ID     string `json:"id"`
	Enable bool   `json:"enable"`
	Skill  string `json:"skill"`
}

// Identifiable is implemented by every section entry.
type Identifiable interface {
	ItemID() string
}

// ItemID implements Identifiable.
func (e *EducationEntry) ItemID() string { return e.ID }

// ItemID implements Identifiable.
func (e *WorkEntry) ItemID() string { return e.ID }

// ItemID implements Identifiable.
func (e *SkillEntry) ItemID() string { return e.ID }

// NewDocument returns an empty document with every section enabled and
// default headings.
func NewDocument(id string) *Document {
	return &Document{
		ID:      id,
		Profile: &Profile{},
		Education: &Section[EducationEntry]{
			Enable:  true,
			Heading: "Education",
			Items:   []*EducationEntry{},
		},
		Work: &Section[WorkEntry]{
			Enable:  true,
			Heading: "Work Experience",
			Items:   []*WorkEntry{},
		},
		Skills: &Section[SkillEntry]{
			Enable:  true,
			Heading: "Skills",
			Items:   []*SkillEntry{},
		},
	}
}
