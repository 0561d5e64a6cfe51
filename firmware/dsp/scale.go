// Package dsp holds the fixed-function audio analysis of the meter: the
// spectrum of a capture buffer, the per-channel RMS envelope with its
// low-pass smoothing, and the mapping of a magnitude to display cells.
package dsp

// Cell counts supported by DisplayCells.
const (
	CellsVULines = 50
	CellsHarrow  = 10
	CellsBars    = 7
)

// dBTable holds one threshold per 0.87 dB step below full scale (16384),
// covering 43.52 dB. It must stay strictly descending.
var dBTable = [...]uint16{
	16384, 14822, 13408, 12130, 10973, 9927, 8980, 8124, 7350, 6649,
	6015, 5441, 4922, 4453, 4028, 3644, 3297, 2982, 2698, 2441,
	2208, 1998, 1807, 1635, 1479, 1338, 1210, 1095, 991, 896,
	811, 733, 663, 600, 543, 491, 444, 402, 364, 329,
	298, 269, 244, 220, 199, 180, 163, 148, 133, 121,
}

// FullScale is the magnitude at which every cell is lit.
const FullScale = 16384

// DisplayCells re-quantizes the logarithmic threshold table into cells display
// cells and returns how many of them value lights. Only 50, 10 and 7 cells are
// supported; any other count lights nothing.
func DisplayCells(value uint32, cells int) int {
	switch cells {
	case CellsVULines, CellsHarrow, CellsBars:
	default:
		return 0
	}

	stride := len(dBTable) / cells
	n := cells
	for i := 0; i < cells; i++ {
		if value >= uint32(dBTable[i*stride]) {
			return n
		}
		n--
	}
	return n
}
