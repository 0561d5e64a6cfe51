package menu

import "manageaudio/firmware/render"

// Pages of the product menu.
const (
	PageSource PageID = iota
	PageSettings
	PageDisplay
	PageBrightness
	PageMeter
	PageTools
	PageDebug

	NumPages
)

// Debug probes.
const (
	ProbeCycle uint8 = iota
	ProbeConversions
	ProbeResetReason
	ProbeLeft
	ProbeRight
	ProbeMeter
)

// SourceNames labels the audio inputs in relay order.
var SourceNames = [...]string{"AUX", "RADIO", "CD", "TAPE"}

// Intensities maps brightness levels to display intensity.
var Intensities = [...]uint8{48, 96, 144, 192, 240}

var back = Entry{Label: "BACK", Action: Action{Kind: ActGotoParent}}

// DefaultTree returns the product menu.
func DefaultTree() Tree {
	t := make(Tree, NumPages)

	source := make([]Entry, len(SourceNames))
	for i, name := range SourceNames {
		source[i] = Entry{Label: name, Action: Action{Kind: ActSelectSource, Arg: uint8(i), Page: PageSettings}}
	}
	t[PageSource] = Page{Name: "source", Parent: NoPage, Pre: PreSource, Entries: source}

	t[PageSettings] = Page{Name: "settings", Parent: PageSource, Entries: []Entry{
		{Label: "Display", Action: Action{Kind: ActGotoChild, Page: PageDisplay}},
		{Label: "Tools", Action: Action{Kind: ActGotoChild, Page: PageTools}},
		back,
	}}

	t[PageDisplay] = Page{Name: "display", Parent: PageSettings, Entries: []Entry{
		{Label: "Meter", Action: Action{Kind: ActGotoChild, Page: PageMeter}},
		{Label: "Brightness", Action: Action{Kind: ActGotoChild, Page: PageBrightness}},
		back,
	}}

	levels := make([]Entry, len(Intensities))
	for i := range Intensities {
		levels[i] = Entry{Label: string(rune('1' + i)), Action: Action{Kind: ActSetBrightness, Arg: uint8(i)}}
	}
	t[PageBrightness] = Page{Name: "brightness", Parent: PageDisplay, Pre: PreBrightness, Entries: levels}

	meters := make([]Entry, 0, render.NumMeters+1)
	for m := render.MeterType(0); m < render.NumMeters; m++ {
		meters = append(meters, Entry{Label: m.String(), Action: Action{Kind: ActSetMeter, Arg: uint8(m)}})
	}
	t[PageMeter] = Page{Name: "meter", Parent: PageDisplay, Entries: append(meters, back)}

	t[PageTools] = Page{Name: "tools", Parent: PageSettings, Entries: []Entry{
		{Action: Action{Kind: ActVersion, Page: PageDebug}},
		{Label: "Reboot", Action: Action{Kind: ActReboot}},
		back,
	}}

	t[PageDebug] = Page{Name: "debug", Parent: PageTools, Live: true, Entries: []Entry{
		{Action: Action{Kind: ActProbe, Arg: ProbeCycle}},
		{Action: Action{Kind: ActProbe, Arg: ProbeConversions}},
		{Action: Action{Kind: ActProbe, Arg: ProbeResetReason}},
		{Action: Action{Kind: ActProbe, Arg: ProbeLeft}},
		{Action: Action{Kind: ActProbe, Arg: ProbeRight}},
		{Action: Action{Kind: ActProbe, Arg: ProbeMeter}},
		back,
	}}
	return t
}

// SourceSelect returns the relay mask for source id. Sources 0..2 close one
// relay each; source 3 closes relays 2 and 3 together. Unknown ids open all
// relays.
func SourceSelect(id uint8) uint8 {
	switch id {
	case 0:
		return 0b001
	case 1:
		return 0b010
	case 2:
		return 0b100
	case 3:
		return 0b110
	default:
		return 0
	}
}
