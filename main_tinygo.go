//go:build tinygo

package main

import (
	"manageaudio/app"
	"manageaudio/hal"
)

func main() {
	app.Run(hal.New(), app.DefaultConfig())
}
