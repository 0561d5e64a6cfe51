package app

import "manageaudio/firmware/system"

// recoverFatal turns a panic inside a cycle into a fatal halt.
func (a *App) recoverFatal() {
	if r := recover(); r != nil {
		a.halt.Fatal(a.disp, a.log, system.DiagPanic, r)
	}
}
