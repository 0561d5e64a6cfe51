//go:build tinygo

package system

func captureStack() []byte {
	return nil
}
