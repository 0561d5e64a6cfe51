package settings

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"manageaudio/firmware/render"
)

// Record layout:
//
//	[0:2] magic "MA"
//	[2]   version
//	[3]   brightness
//	[4]   source
//	[5]   meter type
//	[6:10] CRC-32 (IEEE, little-endian) of bytes 0..5
const (
	RecordSize    = 10
	RecordVersion = 1

	payloadSize = 6
)

var magic = [2]byte{'M', 'A'}

// Encode serializes s into a record.
func Encode(s Settings) [RecordSize]byte {
	var b [RecordSize]byte
	b[0], b[1] = magic[0], magic[1]
	b[2] = RecordVersion
	b[3] = s.Brightness
	b[4] = s.Source
	b[5] = uint8(s.Meter)
	binary.LittleEndian.PutUint32(b[payloadSize:], crc32.ChecksumIEEE(b[:payloadSize]))
	return b
}

// Decode parses a record. The meter type is clamped to the known meters;
// brightness and source are returned as stored.
func Decode(b []byte) (Settings, error) {
	if len(b) < RecordSize {
		return Defaults(), fmt.Errorf("short record (%d bytes): %w", len(b), ErrCorrupt)
	}
	if b[0] != magic[0] || b[1] != magic[1] {
		return Defaults(), fmt.Errorf("bad magic %q: %w", b[:2], ErrCorrupt)
	}
	if b[2] != RecordVersion {
		return Defaults(), fmt.Errorf("version %d: %w", b[2], ErrCorrupt)
	}
	want := binary.LittleEndian.Uint32(b[payloadSize:])
	if got := crc32.ChecksumIEEE(b[:payloadSize]); got != want {
		return Defaults(), fmt.Errorf("crc %08x != %08x: %w", got, want, ErrCorrupt)
	}
	return Settings{
		Brightness: b[3],
		Source:     b[4],
		Meter:      render.MeterType(b[5]).Clamp(),
	}, nil
}
