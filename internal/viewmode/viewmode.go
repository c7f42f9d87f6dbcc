// Package viewmode maps a hub-relative URL path to the dashboard view mode.
package viewmode

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

type Kind int

const (
	List Kind = iota
	Create
	View
	Edit
	Bulk
)

func (k Kind) String() string {
	switch k {
	case List:
		return "list"
	case Create:
		return "create"
	case View:
		return "view"
	case Edit:
		return "edit"
	case Bulk:
		return "bulk"
	default:
		return "unknown"
	}
}

// MarshalText lets a Kind appear as its name in JSON.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

const (
	segNew  = "new"
	segBulk = "bulk"
	segEdit = "edit"
)

var ErrUnknownPath = errors.New("viewmode: unknown path")

// Mode is the parsed view. ID is set only for View and Edit.
type Mode struct {
	Kind Kind   `json:"kind"`
	ID   string `json:"id,omitempty"`
}

func ListMode() Mode { return Mode{Kind: List} }
func CreateMode() Mode { return Mode{Kind: Create} }
func BulkMode() Mode { return Mode{Kind: Bulk} }
func ViewMode(id string) Mode { return Mode{Kind: View, ID: id} }
func EditMode(id string) Mode { return Mode{Kind: Edit, ID: id} }

// Parse accepts paths relative to the hub root:
//
//	"" or "/"      list
//	/new           create
//	/bulk          bulk
//	/{id}          view
//	/{id}/edit     edit
func Parse(path string) (Mode, error) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return ListMode(), nil
	}

	segs := strings.Split(trimmed, "/")
	for i, s := range segs {
		u, err := url.PathUnescape(s)
		if err != nil || strings.TrimSpace(u) == "" {
			return Mode{}, fmt.Errorf("%w: %q", ErrUnknownPath, path)
		}
		segs[i] = u
	}

	switch len(segs) {
	case 1:
		switch segs[0] {
		case segNew:
			return CreateMode(), nil
		case segBulk:
			return BulkMode(), nil
		case segEdit:
			return Mode{}, fmt.Errorf("%w: %q", ErrUnknownPath, path)
		}
		return ViewMode(segs[0]), nil
	case 2:
		if segs[1] == segEdit && !reserved(segs[0]) {
			return EditMode(segs[0]), nil
		}
	}
	return Mode{}, fmt.Errorf("%w: %q", ErrUnknownPath, path)
}

// Path is the inverse of Parse.
func (m Mode) Path() string {
	switch m.Kind {
	case Create:
		return "/" + segNew
	case Bulk:
		return "/" + segBulk
	case View:
		return "/" + url.PathEscape(m.ID)
	case Edit:
		return "/" + url.PathEscape(m.ID) + "/" + segEdit
	default:
		return "/"
	}
}

func (m Mode) String() string {
	if m.ID != "" {
		return m.Kind.String() + "(" + m.ID + ")"
	}
	return m.Kind.String()
}

func reserved(s string) bool {
	return s == segNew || s == segBulk || s == segEdit
}
