// Package menu implements the page tree shown on the display and the
// navigator that moves through it with three buttons.
//
// Pages live in an arena (Tree) addressed by PageID. Each page records its
// parent id, so "back" needs no pointers. Entry behavior is a closed set of
// Action kinds dispatched by the navigator.
package menu

// PageID indexes a page in a Tree.
type PageID uint8

// NoPage is the parent of the root page and the "stay here" result of an action.
const NoPage PageID = 0xFF

// Reason tells an action why it is being run.
type Reason uint8

const (
	// ReasonHover runs when the entry becomes the displayed one.
	ReasonHover Reason = iota
	// ReasonSelect runs when the select button is clicked on the entry.
	ReasonSelect
	// ReasonPre runs once when a page is entered.
	ReasonPre
)

func (r Reason) String() string {
	switch r {
	case ReasonHover:
		return "hover"
	case ReasonSelect:
		return "select"
	case ReasonPre:
		return "pre"
	default:
		return "?"
	}
}

// ActionKind enumerates what an entry can do.
type ActionKind uint8

const (
	// ActNone does nothing; the label is static.
	ActNone ActionKind = iota
	// ActSelectSource switches to source Arg on hover, opens Page on select.
	ActSelectSource
	// ActSetBrightness applies and stores level Arg on hover, returns to the parent on select.
	ActSetBrightness
	// ActSetMeter stores meter Arg and returns to the parent on select.
	ActSetMeter
	// ActGotoChild opens Page on select.
	ActGotoChild
	// ActGotoParent returns to the page's parent on select.
	ActGotoParent
	// ActVersion shows the firmware version and opens Page on select.
	ActVersion
	// ActReboot requests a system reset on select.
	ActReboot
	// ActProbe shows live diagnostic Arg.
	ActProbe
)

// Action is the behavior of an entry.
type Action struct {
	Kind ActionKind
	Arg  uint8
	Page PageID
}

// Entry is one selectable item of a page.
type Entry struct {
	Label  string
	Action Action
}

// PreKind is the behavior of a page when it is entered.
type PreKind uint8

const (
	PreNone PreKind = iota
	// PreSource re-applies the stored source and points at it.
	PreSource
	// PreBrightness re-applies the stored brightness and points at it.
	PreBrightness
)

// Page is a screen of entries.
type Page struct {
	Name    string
	Parent  PageID
	Pre     PreKind
	Entries []Entry
	// Live pages refresh on every 50 ms flag.
	Live bool
}

// Tree is the arena of pages. Index 0 is not special; the navigator is told
// where to start.
type Tree []Page

func (t Tree) page(id PageID) *Page {
	if int(id) >= len(t) {
		return nil
	}
	return &t[id]
}
