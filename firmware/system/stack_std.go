//go:build !tinygo

package system

import "runtime/debug"

func captureStack() []byte {
	return debug.Stack()
}
