package menu

import (
	"manageaudio/firmware/input"
	"manageaudio/firmware/render"
	"manageaudio/firmware/system"
	"manageaudio/hal"
)

// Clicker reports debounced button clicks, consuming them.
type Clicker interface {
	Clicked(b input.Button) bool
}

// Navigator tracks the current page and entry and runs entry actions.
type Navigator struct {
	tree    Tree
	page    PageID
	index   int
	refresh bool
	log     hal.Logger
}

// NewNavigator returns a navigator positioned on start. Call Enter to run the
// start page's pre action.
func NewNavigator(tree Tree, start PageID, log hal.Logger) *Navigator {
	return &Navigator{tree: tree, page: start, log: log}
}

func (n *Navigator) Page() PageID {
	if n == nil {
		return NoPage
	}
	return n.page
}

func (n *Navigator) Index() int {
	if n == nil {
		return 0
	}
	return n.index
}

func (n *Navigator) current() *Page {
	if n == nil {
		return nil
	}
	return n.tree.page(n.page)
}

func (n *Navigator) entry() *Entry {
	p := n.current()
	if p == nil || n.index < 0 || n.index >= len(p.Entries) {
		return nil
	}
	return &p.Entries[n.index]
}

// Enter switches to page id: the index resets to 0, the page's pre action
// runs once and a refresh is scheduled. Unknown ids are ignored.
func (n *Navigator) Enter(ctx *Context, id PageID) {
	if n == nil {
		return
	}
	p := n.tree.page(id)
	if p == nil {
		return
	}
	n.page = id
	n.index = 0
	n.refresh = true
	n.pre(ctx, p)
	if n.log != nil {
		n.log.WriteLineString("menu: page=" + p.Name)
	}
}

// pre runs the page's entry action. Pages that edit a stored value point the
// cursor at it, so the hover that follows does not overwrite it.
func (n *Navigator) pre(ctx *Context, p *Page) {
	if ctx == nil {
		return
	}
	switch p.Pre {
	case PreSource:
		src := ctx.Settings.Source
		ctx.setRelays(SourceSelect(src))
		if int(src) < len(p.Entries) {
			n.index = int(src)
		}
	case PreBrightness:
		lvl := ctx.Settings.Brightness
		ctx.applyBrightness(lvl, false)
		if int(lvl) < len(p.Entries) {
			n.index = int(lvl)
		}
	}
}

// Prev moves to the previous entry. It is a no-op on the first entry.
func (n *Navigator) Prev() {
	if n == nil || n.index <= 0 {
		return
	}
	n.index--
	n.refresh = true
}

// Next moves to the next entry. It is a no-op on the last entry.
func (n *Navigator) Next() {
	p := n.current()
	if p == nil || n.index >= len(p.Entries)-1 {
		return
	}
	n.index++
	n.refresh = true
}

// Activate runs the current entry's select action and follows the page it
// returns.
func (n *Navigator) Activate(ctx *Context) {
	if next := n.run(ctx, ReasonSelect); next != NoPage {
		n.Enter(ctx, next)
	}
}

// Invalidate schedules a refresh.
func (n *Navigator) Invalidate() {
	if n != nil {
		n.refresh = true
	}
}

// Periodic handles at most one click (previous, then next, then select) and
// performs a pending refresh: the current entry's hover action runs and its
// label is drawn. Live pages also refresh on every 50 ms flag. It reports
// whether a refresh happened.
func (n *Navigator) Periodic(ctx *Context, in Clicker, flags system.Flags) bool {
	p := n.current()
	if p == nil || ctx == nil {
		return false
	}
	if in != nil {
		switch {
		case in.Clicked(input.ButtonPrev):
			n.Prev()
		case in.Clicked(input.ButtonNext):
			n.Next()
		case in.Clicked(input.ButtonSelect):
			n.Activate(ctx)
		}
	}
	if n.current().Live && flags.Tick50ms {
		n.refresh = true
	}
	if !n.refresh {
		return false
	}
	n.refresh = false
	n.run(ctx, ReasonHover)
	n.draw(ctx)
	return true
}

// run dispatches the current entry's action and returns the page to switch
// to, or NoPage.
func (n *Navigator) run(ctx *Context, reason Reason) PageID {
	e := n.entry()
	if e == nil || ctx == nil {
		return NoPage
	}
	p := n.current()
	a := e.Action
	switch a.Kind {
	case ActSelectSource:
		switch reason {
		case ReasonHover:
			ctx.selectSource(a.Arg)
		case ReasonSelect:
			return a.Page
		}
	case ActSetBrightness:
		switch reason {
		case ReasonHover:
			ctx.applyBrightness(a.Arg, true)
		case ReasonSelect:
			return p.Parent
		}
	case ActSetMeter:
		if reason == ReasonSelect {
			ctx.setMeter(render.MeterType(a.Arg))
			return p.Parent
		}
	case ActGotoChild, ActVersion:
		if reason == ReasonSelect {
			return a.Page
		}
	case ActGotoParent:
		if reason == ReasonSelect {
			return p.Parent
		}
	case ActReboot:
		if reason == ReasonSelect {
			ctx.ResetRequested = true
			ctx.logLine("menu: reboot requested")
		}
	}
	return NoPage
}

// Label returns the text of the current entry.
func (n *Navigator) Label(ctx *Context) string {
	e := n.entry()
	if e == nil {
		return ""
	}
	if ctx != nil {
		switch e.Action.Kind {
		case ActVersion:
			return ctx.Version
		case ActProbe:
			return ctx.probe(e.Action.Arg)
		}
	}
	return e.Label
}

// draw shows the current label centered on the first row.
func (n *Navigator) draw(ctx *Context) {
	d := ctx.Display
	if d == nil {
		return
	}
	label := n.Label(ctx)
	cols := d.Cols()
	if len(label) > cols {
		label = label[:cols]
	}
	d.Clear()
	d.SetCursor(0, (cols-len(label))/2)
	d.WriteString(label)
}
