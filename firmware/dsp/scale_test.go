package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBTableDescending(t *testing.T) {
	require.Len(t, dBTable, CellsVULines)
	assert.Equal(t, uint16(FullScale), dBTable[0])
	for i := 1; i < len(dBTable); i++ {
		assert.Less(t, dBTable[i], dBTable[i-1], "index %d", i)
	}
}

func TestDisplayCellsMonotonicAndBounded(t *testing.T) {
	for _, cells := range []int{CellsVULines, CellsHarrow, CellsBars} {
		prev := 0
		for v := uint32(0); v <= 2*FullScale; v += 7 {
			got := DisplayCells(v, cells)
			require.GreaterOrEqual(t, got, prev, "cells=%d value=%d", cells, v)
			require.GreaterOrEqual(t, got, 0)
			require.LessOrEqual(t, got, cells)
			prev = got
		}
		assert.Equal(t, cells, prev, "full scale lights every cell (cells=%d)", cells)
	}
}

func TestDisplayCellsEdges(t *testing.T) {
	tests := []struct {
		name  string
		value uint32
		cells int
		want  int
	}{
		{"silence", 0, CellsVULines, 0},
		{"full scale", FullScale, CellsVULines, 50},
		{"just below full scale", FullScale - 1, CellsVULines, 49},
		{"bottom threshold", 121, CellsVULines, 1},
		{"below bottom threshold", 120, CellsVULines, 0},
		{"harrow stride", uint32(dBTable[5]), CellsHarrow, 9},
		{"harrow between strides", uint32(dBTable[4]), CellsHarrow, 9},
		{"bars stride", uint32(dBTable[7]), CellsBars, 6},
		{"bars last stride", uint32(dBTable[42]), CellsBars, 1},
		{"unsupported count", FullScale, 16, 0},
		{"zero cells", FullScale, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayCells(tt.value, tt.cells))
		})
	}
}
