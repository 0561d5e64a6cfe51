// Package glyph defines the custom character format of the dot-matrix display
// and the glyph sets loaded by the meters.
//
// A glyph is a 5x7 dot matrix packed into the low 35 bits of a Bitmap. The bit
// for a dot is row*5 + (4-col), where row 0 is the top row and col 0 is the
// leftmost column:
//
//	col:     0  1  2  3  4
//	row 0:   4  3  2  1  0
//	row 1:   9  8  7  6  5
//	...
//	row 6:  34 33 32 31 30
//
// Glyphs are declared as seven row strings ('#' lit, anything else dark) and
// packed once with FromRows.
package glyph

import "strings"

const (
	Width  = 5
	Height = 7

	// Slots is the number of programmable characters the display holds.
	// Character codes 0..Slots-1 select them.
	Slots = 7
)

// Mask covers the 35 meaningful bits of a Bitmap.
const Mask Bitmap = 1<<(Width*Height) - 1

// Bitmap is a packed 5x7 glyph.
type Bitmap uint64

// Rows is the declarative form of a glyph, top row first.
type Rows [Height]string

// FromRows packs a row table into a Bitmap. Characters past column 4 are ignored.
func FromRows(rows Rows) Bitmap {
	var b Bitmap
	for row, line := range rows {
		for col := 0; col < Width && col < len(line); col++ {
			if line[col] == '#' {
				b |= 1 << bitIndex(row, col)
			}
		}
	}
	return b
}

func bitIndex(row, col int) uint {
	return uint(row*Width + (Width - 1 - col))
}

// At reports whether the dot at row, col is lit. Out-of-range positions are dark.
func (b Bitmap) At(row, col int) bool {
	if row < 0 || row >= Height || col < 0 || col >= Width {
		return false
	}
	return b&(1<<bitIndex(row, col)) != 0
}

// Rows unpacks the bitmap back into its declarative form.
func (b Bitmap) Rows() Rows {
	var out Rows
	for row := 0; row < Height; row++ {
		var sb strings.Builder
		for col := 0; col < Width; col++ {
			if b.At(row, col) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		out[row] = sb.String()
	}
	return out
}

func (b Bitmap) String() string {
	rows := b.Rows()
	return strings.Join(rows[:], "\n")
}
