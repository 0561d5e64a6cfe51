package menu

import (
	"testing"

	"manageaudio/firmware/input"
	"manageaudio/firmware/render"
	"manageaudio/firmware/settings"
	"manageaudio/firmware/system"
	"manageaudio/hal/vfd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clicks map[input.Button]bool

func (c clicks) Clicked(b input.Button) bool {
	v := c[b]
	delete(c, b)
	return v
}

type recordingStore struct {
	saved []settings.Settings
}

func (s *recordingStore) Save(v settings.Settings) error {
	s.saved = append(s.saved, v)
	return nil
}

func newContext(t *testing.T) (*Context, *vfd.Controller, *recordingStore) {
	t.Helper()
	d := vfd.New(1, 10, nil)
	require.NoError(t, d.Init())
	store := &recordingStore{}
	return &Context{
		Settings: settings.Defaults(),
		Store:    store,
		Display:  d,
		Ops:      &system.Operational{},
		Version:  "v1.2.3",
	}, d, store
}

// smallTree is used to check navigation rules independently of
// the product menu.
func smallTree() Tree {
	return Tree{
		{Name: "root", Parent: NoPage, Entries: []Entry{
			{Label: "A", Action: Action{Kind: ActGotoChild, Page: 1}},
			{Label: "B"},
			{Label: "C"},
			{Label: "BACK", Action: Action{Kind: ActGotoParent}},
		}},
		{Name: "child", Parent: 0, Entries: []Entry{
			{Label: "X"},
			{Label: "BACK", Action: Action{Kind: ActGotoParent}},
		}},
	}
}

func TestNextStopsAtLastEntry(t *testing.T) {
	n := NewNavigator(smallTree(), 0, nil)
	n.Next()
	n.Next()
	require.Equal(t, 2, n.Index())

	n.Next()
	assert.Equal(t, 3, n.Index())
	n.Next()
	assert.Equal(t, 3, n.Index(), "boundary")
}

func TestPrevStopsAtFirstEntry(t *testing.T) {
	n := NewNavigator(smallTree(), 0, nil)
	n.Prev()
	assert.Equal(t, 0, n.Index())
	n.Next()
	n.Prev()
	n.Prev()
	assert.Equal(t, 0, n.Index())
}

func TestBackFromRootIsNoOp(t *testing.T) {
	ctx, _, _ := newContext(t)
	n := NewNavigator(smallTree(), 0, nil)
	for i := 0; i < 3; i++ {
		n.Next()
	}
	n.Activate(ctx)
	assert.Equal(t, PageID(0), n.Page())
	assert.Equal(t, 3, n.Index())
}

func TestChildTransitionResetsIndex(t *testing.T) {
	ctx, d, _ := newContext(t)
	n := NewNavigator(smallTree(), 0, nil)

	n.Activate(ctx)
	assert.Equal(t, PageID(1), n.Page())
	assert.Equal(t, 0, n.Index())

	assert.True(t, n.Periodic(ctx, nil, system.Flags{}))
	assert.Equal(t, "    X     ", d.Text(0))
	assert.False(t, n.Periodic(ctx, nil, system.Flags{}), "refresh is consumed")

	n.Next()
	n.Activate(ctx)
	assert.Equal(t, PageID(0), n.Page())
	assert.Equal(t, 0, n.Index())
}

func TestSourcePreRestoresStoredSource(t *testing.T) {
	ctx, _, _ := newContext(t)
	ctx.Settings.Source = 3
	n := NewNavigator(DefaultTree(), PageSettings, nil)

	ctx.Ops.Relays = 0
	n.Enter(ctx, PageSource)
	assert.Equal(t, SourceSelect(3), ctx.Ops.Relays)
	assert.Equal(t, 3, n.Index(), "cursor starts on the stored source")

	ctx.Ops.Relays = 0
	n.Periodic(ctx, nil, system.Flags{Tick50ms: true})
	n.Periodic(ctx, nil, system.Flags{Tick50ms: true})
	assert.Equal(t, SourceSelect(3), ctx.Ops.Relays, "set again by hover, not by pre")
}

func TestPeriodicClickPriority(t *testing.T) {
	ctx, _, _ := newContext(t)
	n := NewNavigator(smallTree(), 0, nil)
	n.Next()

	in := clicks{input.ButtonPrev: true, input.ButtonNext: true, input.ButtonSelect: true}
	n.Periodic(ctx, in, system.Flags{})
	assert.Equal(t, 0, n.Index())
	assert.True(t, in[input.ButtonNext] || in[input.ButtonSelect], "lower-priority clicks stay latched")

	n.Periodic(ctx, in, system.Flags{})
	assert.Equal(t, 1, n.Index())
	n.Periodic(ctx, in, system.Flags{})
	assert.Equal(t, PageID(0), n.Page(), "select on a plain entry stays")
}

func TestHoverSelectsSource(t *testing.T) {
	ctx, d, store := newContext(t)
	n := NewNavigator(DefaultTree(), PageSource, nil)
	n.Enter(ctx, PageSource)
	n.Periodic(ctx, nil, system.Flags{})
	assert.Equal(t, "   AUX    ", d.Text(0))

	n.Periodic(ctx, clicks{input.ButtonNext: true}, system.Flags{})
	assert.Equal(t, "  RADIO   ", d.Text(0))
	assert.Equal(t, uint8(1), ctx.Settings.Source)
	assert.Equal(t, uint8(0b010), ctx.Ops.Relays)
	require.NotEmpty(t, store.saved)
	assert.Equal(t, uint8(1), store.saved[len(store.saved)-1].Source)

	n.Periodic(ctx, clicks{input.ButtonSelect: true}, system.Flags{})
	assert.Equal(t, PageSettings, n.Page())
	assert.Equal(t, " Display  ", d.Text(0))
}

func TestBrightnessPage(t *testing.T) {
	ctx, d, _ := newContext(t)
	ctx.Settings.Brightness = 2
	n := NewNavigator(DefaultTree(), PageDisplay, nil)
	n.Next()
	n.Activate(ctx)
	require.Equal(t, PageBrightness, n.Page())
	assert.Equal(t, Intensities[2], d.Intensity())
	assert.Equal(t, 2, n.Index())

	n.Periodic(ctx, clicks{input.ButtonNext: true}, system.Flags{})
	assert.Equal(t, Intensities[3], d.Intensity())
	assert.Equal(t, uint8(3), ctx.Settings.Brightness)

	n.Periodic(ctx, clicks{input.ButtonSelect: true}, system.Flags{})
	assert.Equal(t, PageDisplay, n.Page())
}

func TestMeterSelectionPersistsAndReturns(t *testing.T) {
	ctx, _, store := newContext(t)
	n := NewNavigator(DefaultTree(), PageMeter, nil)
	n.Next()
	n.Next()
	n.Activate(ctx)
	assert.Equal(t, render.MeterHarrow, ctx.Settings.Meter)
	assert.Equal(t, PageDisplay, n.Page())
	require.Len(t, store.saved, 1)
	assert.Equal(t, render.MeterHarrow, store.saved[0].Meter)
}

func TestToolsVersionAndReboot(t *testing.T) {
	ctx, d, _ := newContext(t)
	n := NewNavigator(DefaultTree(), PageTools, nil)
	n.Invalidate()
	n.Periodic(ctx, nil, system.Flags{})
	assert.Equal(t, "  v1.2.3  ", d.Text(0))

	n.Next()
	n.Activate(ctx)
	assert.True(t, ctx.ResetRequested)
	assert.Equal(t, PageTools, n.Page())

	n.Prev()
	n.Activate(ctx)
	assert.Equal(t, PageDebug, n.Page())
}

func TestDebugPageIsLive(t *testing.T) {
	ctx, d, _ := newContext(t)
	n := NewNavigator(DefaultTree(), PageDebug, nil)
	n.Enter(ctx, PageDebug)
	ctx.Ops.CycleMicros = 120
	assert.True(t, n.Periodic(ctx, nil, system.Flags{}))
	assert.Equal(t, "CYC 120us ", d.Text(0))

	ctx.Ops.CycleMicros = 95
	assert.False(t, n.Periodic(ctx, nil, system.Flags{Tick10ms: true}))
	assert.True(t, n.Periodic(ctx, nil, system.Flags{Tick10ms: true, Tick50ms: true}))
	assert.Equal(t, " CYC 95us ", d.Text(0))
}

func TestProbeLabels(t *testing.T) {
	ctx, _, _ := newContext(t)
	ctx.Ops.Conversions = 12345678
	ctx.Ops.ResetReason = 4
	ctx.Ops.Levels.Left = 512
	ctx.Ops.Levels.Right = 16384
	ctx.Settings.Meter = render.MeterVULines

	assert.Equal(t, "ADC 345678", ctx.probe(ProbeConversions))
	assert.Equal(t, "RST 4", ctx.probe(ProbeResetReason))
	assert.Equal(t, "L 512", ctx.probe(ProbeLeft))
	assert.Equal(t, "R 16384", ctx.probe(ProbeRight))
	assert.Equal(t, "MTR VU-Horiz", ctx.probe(ProbeMeter))
	assert.Equal(t, "?", ctx.probe(99))
}

func TestNilNavigator(t *testing.T) {
	var n *Navigator
	n.Prev()
	n.Next()
	n.Activate(nil)
	n.Invalidate()
	n.Enter(nil, 0)
	assert.False(t, n.Periodic(nil, nil, system.Flags{}))
	assert.Equal(t, NoPage, n.Page())
	assert.Equal(t, "", n.Label(nil))
}

type countingDisplay struct {
	*vfd.Controller
	intensities []uint8
}

func (d *countingDisplay) SetIntensity(level uint8) {
	d.intensities = append(d.intensities, level)
	d.Controller.SetIntensity(level)
}

func TestEnteringPageRunsPreOnce(t *testing.T) {
	ctx, d, _ := newContext(t)
	disp := &countingDisplay{Controller: d}
	ctx.Display = disp
	ctx.Settings.Brightness = 2

	n := NewNavigator(DefaultTree(), PageDisplay, nil)
	n.Next()
	n.Activate(ctx)
	require.Equal(t, PageBrightness, n.Page())
	assert.Equal(t, []uint8{Intensities[2]}, disp.intensities, "activate")

	disp.intensities = nil
	n.Enter(ctx, PageBrightness)
	assert.Equal(t, []uint8{Intensities[2]}, disp.intensities, "enter")
	assert.Equal(t, 2, n.Index())
}
