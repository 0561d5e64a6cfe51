//go:build tinygo && baremetal && (rp2040 || rp2350)

package hal

import (
	"fmt"
	"machine"
)

// rp2Flash exposes the flash data area that follows the program image.
type rp2Flash struct {
	size  uint32
	block uint32
}

func newRP2Flash() Flash {
	return rp2Flash{
		size:  clampU32(machine.Flash.Size()),
		block: clampU32(machine.Flash.EraseBlockSize()),
	}
}

func clampU32(v int64) uint32 {
	if v <= 0 {
		return 0
	}
	if v > int64(^uint32(0)) {
		return ^uint32(0)
	}
	return uint32(v)
}

func (f rp2Flash) SizeBytes() uint32       { return f.size }
func (f rp2Flash) EraseBlockBytes() uint32 { return f.block }

func (f rp2Flash) ReadAt(p []byte, off uint32) (int, error) {
	n, err := machine.Flash.ReadAt(p, int64(off))
	if err != nil {
		return n, fmt.Errorf("flash read at %d: %w", off, err)
	}
	return n, nil
}

func (f rp2Flash) WriteAt(p []byte, off uint32) (int, error) {
	n, err := machine.Flash.WriteAt(p, int64(off))
	if err != nil {
		return n, fmt.Errorf("flash write at %d: %w", off, err)
	}
	return n, nil
}

func (f rp2Flash) Erase(off, size uint32) error {
	if size == 0 {
		return nil
	}
	if f.block == 0 {
		return ErrNotImplemented
	}
	if off%f.block != 0 || size%f.block != 0 {
		return fmt.Errorf("flash erase off=%d size=%d: unaligned", off, size)
	}
	return machine.Flash.EraseBlocks(int64(off/f.block), int64(size/f.block))
}
