package store

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/jonathan/resume-builder/internal/docpath"
	"github.com/jonathan/resume-builder/internal/listops"
	"github.com/jonathan/resume-builder/internal/resume"
)

// errNoChange signals a list action that leaves the list as it is.
var errNoChange = errors.New("no change")

// Reduce applies action to doc and returns the next document. doc is never
// modified. Actions that change nothing (boundary moves, out-of-range
// deletes) return doc itself.
func Reduce(doc *resume.Document, action Action) (*resume.Document, error) {
	switch a := action.(type) {
	case SetFieldAction:
		if err := checkWritable(a.Path); err != nil {
			return doc, err
		}
		return docpath.Set(doc, a.Path, a.Value)

	case AddItemAction:
		return updateList(doc, a.Section, func(list reflect.Value) (reflect.Value, error) {
			item, err := docpath.Convert(list.Type().Elem(), a.Item)
			if err != nil {
				return list, &docpath.PathError{
					Path:   resume.SectionItemsPath(a.Section),
					Reason: "invalid " + a.Section + " item",
					Cause:  err,
				}
			}
			id := itemID(item)
			if id == "" {
				return list, ErrMissingID
			}
			for i := 0; i < list.Len(); i++ {
				if itemID(list.Index(i)) == id {
					return list, fmt.Errorf("%w: %s", ErrDuplicateID, id)
				}
			}
			return listops.AppendValue(list, item), nil
		})

	case DeleteItemAction:
		return updateList(doc, a.Section, func(list reflect.Value) (reflect.Value, error) {
			return changed(listops.DeleteValue(list, a.Index))
		})

	case MoveItemUpAction:
		return updateList(doc, a.Section, func(list reflect.Value) (reflect.Value, error) {
			return changed(listops.MoveUpValue(list, a.Index))
		})

	case MoveItemDownAction:
		return updateList(doc, a.Section, func(list reflect.Value) (reflect.Value, error) {
			return changed(listops.MoveDownValue(list, a.Index))
		})

	case ImportDocumentAction:
		if a.Document == nil {
			return doc, fmt.Errorf("import: document is nil")
		}
		next := *a.Document
		if doc != nil {
			next.ID = doc.ID
		}
		return &next, nil

	case ResetDocumentAction:
		id := ""
		if doc != nil {
			id = doc.ID
		}
		return resume.NewDocument(id), nil

	default:
		return doc, &UnsupportedActionError{Action: action}
	}
}

// checkWritable rejects paths that set the document id. The id names the
// resume in its repository, so it only changes by creating a new resume.
func checkWritable(path string) error {
	segs, err := docpath.Parse(path)
	if err != nil {
		return err
	}
	if len(segs) > 1 && !segs[0].IsIndex && segs[0].Key == "data" {
		segs = segs[1:]
	}
	if len(segs) > 0 && !segs[0].IsIndex && segs[0].Key == "id" {
		return &docpath.PathError{Path: path, Segment: "id", Reason: "document id is read-only"}
	}
	return nil
}

func updateList(doc *resume.Document, section string, fn docpath.LeafFunc) (*resume.Document, error) {
	if !resume.IsSection(section) {
		return doc, fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
	next, err := docpath.Update(doc, resume.SectionItemsPath(section), fn)
	if errors.Is(err, errNoChange) {
		return doc, nil
	}
	return next, err
}

func changed(list reflect.Value, ok bool) (reflect.Value, error) {
	if !ok {
		return list, errNoChange
	}
	return list, nil
}

func itemID(v reflect.Value) string {
	if !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil()) {
		return ""
	}
	if item, ok := v.Interface().(resume.Identifiable); ok {
		return item.ItemID()
	}
	return ""
}
