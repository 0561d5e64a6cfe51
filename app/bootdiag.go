//go:build !(tinygo && bootdebug)

package app

import "manageaudio/hal"

func bootStep(hal.HAL, string) {}

func bootDiagStart(hal.HAL) {}
