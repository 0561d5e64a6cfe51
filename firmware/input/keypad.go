package input

// Button identifies one of the front-panel buttons.
type Button uint8

const (
	ButtonPrev Button = iota
	ButtonNext
	ButtonSelect

	NumButtons
)

func (b Button) String() string {
	switch b {
	case ButtonPrev:
		return "prev"
	case ButtonNext:
		return "next"
	case ButtonSelect:
		return "select"
	default:
		return "?"
	}
}

// DefaultDebounceMicros is the button debounce time.
const DefaultDebounceMicros = 50000

// Keypad debounces the buttons and latches press edges until consumed.
type Keypad struct {
	filters [NumButtons]*Debounce
	raw     [NumButtons]bool
	pressed [NumButtons]bool
	clicks  [NumButtons]bool
}

// NewKeypad returns a keypad whose buttons share timeout (µs).
func NewKeypad(timeout uint64) *Keypad {
	k := &Keypad{}
	for i := range k.filters {
		k.filters[i] = NewDebounce(timeout)
	}
	return k
}

// Set records the raw pressed state of b for the next Periodic call.
func (k *Keypad) Set(b Button, pressed bool) {
	if k == nil || b >= NumButtons {
		return
	}
	k.raw[b] = pressed
}

// Periodic debounces every button at now (µs) and latches new presses.
func (k *Keypad) Periodic(now uint64) {
	if k == nil {
		return
	}
	for i := range k.filters {
		stable := k.filters[i].Update(k.raw[i], now)
		if stable && !k.pressed[i] {
			k.clicks[i] = true
		}
		k.pressed[i] = stable
	}
}

// Clicked reports and clears a latched press of b.
func (k *Keypad) Clicked(b Button) bool {
	if k == nil || b >= NumButtons {
		return false
	}
	c := k.clicks[b]
	k.clicks[b] = false
	return c
}

// Pressed reports the debounced state of b.
func (k *Keypad) Pressed(b Button) bool {
	if k == nil || b >= NumButtons {
		return false
	}
	return k.pressed[b]
}

// Flush drops any latched clicks.
func (k *Keypad) Flush() {
	if k == nil {
		return
	}
	k.clicks = [NumButtons]bool{}
}
