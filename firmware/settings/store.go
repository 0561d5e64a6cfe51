package settings

import (
	"errors"
	"fmt"

	"manageaudio/hal"
)

// Store reads and writes the settings record at a fixed flash offset.
type Store struct {
	flash hal.Flash
	off   uint32

	last     Settings
	haveLast bool
	log      hal.Logger
}

// NewStore returns a store for the record at off. off should be aligned to
// the flash erase block.
func NewStore(flash hal.Flash, off uint32, log hal.Logger) *Store {
	return &Store{flash: flash, off: off, log: log}
}

// Load reads the record. A missing or corrupt record yields Defaults together
// with an error wrapping ErrCorrupt; callers normally continue with the
// defaults.
func (s *Store) Load() (Settings, error) {
	if s == nil || s.flash == nil {
		return Defaults(), hal.ErrNotImplemented
	}
	var buf [RecordSize]byte
	n, err := s.flash.ReadAt(buf[:], s.off)
	if err != nil {
		return Defaults(), fmt.Errorf("settings: load: %w", err)
	}
	v, err := Decode(buf[:n])
	if err != nil {
		s.logLine("settings: " + err.Error() + ", using defaults")
		return v, err
	}
	s.last, s.haveLast = v, true
	return v, nil
}

// Save writes v unless it equals the last loaded or saved value.
func (s *Store) Save(v Settings) error {
	if s == nil || s.flash == nil {
		return hal.ErrNotImplemented
	}
	if s.haveLast && s.last == v {
		return nil
	}
	if bs := s.flash.EraseBlockBytes(); bs > 0 {
		start := s.off - s.off%bs
		if err := s.flash.Erase(start, bs); err != nil {
			return fmt.Errorf("settings: erase: %w", err)
		}
	}
	rec := Encode(v)
	n, err := s.flash.WriteAt(rec[:], s.off)
	if err != nil {
		return fmt.Errorf("settings: write: %w", err)
	}
	if n != RecordSize {
		return fmt.Errorf("settings: short write %d", n)
	}
	s.last, s.haveLast = v, true
	s.logLine("settings: saved " + v.String())
	return nil
}

// IsCorrupt reports whether err came from an invalid record.
func IsCorrupt(err error) bool {
	return errors.Is(err, ErrCorrupt)
}

func (s *Store) logLine(line string) {
	if s.log != nil {
		s.log.WriteLineString(line)
	}
}
