// Package docpath implements path-addressed, copy-on-write updates of a
// document tree.
//
// Paths use dot and bracket notation: "education.items[0].major". Each
// update returns a new root; every container along the path is shallow
// copied and every subtree off the path keeps its identity, so unaffected
// branches can be compared by pointer.
package docpath

import (
	"strconv"
	"strings"
)

// Segment is one step of a parsed path: either a key (struct field or map
// key) or a list index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

func (s Segment) String() string {
	if s.IsIndex {
		return "[" + strconv.Itoa(s.Index) + "]"
	}
	return s.Key
}

// Parse splits a path into segments. Keys are separated by dots and indexes
// are written in brackets directly after a key or another index.
func Parse(path string) ([]Segment, error) {
	if strings.TrimSpace(path) == "" {
		return nil, &PathError{Path: path, Reason: "path is empty"}
	}

	var segs []Segment
	i := 0
	expectKey := true
	for i < len(path) {
		switch c := path[i]; {
		case c == '.':
			if expectKey {
				return nil, &PathError{Path: path, Reason: "empty key at offset " + strconv.Itoa(i)}
			}
			expectKey = true
			i++
		case c == '[':
			end := strings.IndexByte(path[i:], ']')
			if end < 0 {
				return nil, &PathError{Path: path, Reason: "unterminated index"}
			}
			raw := path[i+1 : i+end]
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				return nil, &PathError{Path: path, Segment: "[" + raw + "]", Reason: "index must be a non-negative integer"}
			}
			if expectKey && len(segs) > 0 {
				return nil, &PathError{Path: path, Reason: "empty key before index at offset " + strconv.Itoa(i)}
			}
			segs = append(segs, Segment{Index: n, IsIndex: true})
			expectKey = false
			i += end + 1
		case c == ']':
			return nil, &PathError{Path: path, Reason: "unexpected ']' at offset " + strconv.Itoa(i)}
		default:
			if !expectKey {
				return nil, &PathError{Path: path, Reason: "missing '.' at offset " + strconv.Itoa(i)}
			}
			end := strings.IndexAny(path[i:], ".[]")
			if end < 0 {
				end = len(path) - i
			}
			segs = append(segs, Segment{Key: path[i : i+end]})
			expectKey = false
			i += end
		}
	}
	if expectKey {
		return nil, &PathError{Path: path, Reason: "path ends with '.'"}
	}
	return segs, nil
}

// Join renders segments back to path notation.
func Join(segs []Segment) string {
	var sb strings.Builder
	for i, s := range segs {
		if !s.IsIndex && i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(s.String())
	}
	return sb.String()
}
