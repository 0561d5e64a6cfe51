package glyph

// Vertical bars for the spectrum meter. Slot k holds a column k+1 dots tall,
// so a level of n (1..7) is drawn with character code n-1.
var VerticalBars = [Slots]Bitmap{
	FromRows(Rows{".....", ".....", ".....", ".....", ".....", ".....", "#####"}),
	FromRows(Rows{".....", ".....", ".....", ".....", ".....", "#####", "#####"}),
	FromRows(Rows{".....", ".....", ".....", ".....", "#####", "#####", "#####"}),
	FromRows(Rows{".....", ".....", ".....", "#####", "#####", "#####", "#####"}),
	FromRows(Rows{".....", ".....", "#####", "#####", "#####", "#####", "#####"}),
	FromRows(Rows{".....", "#####", "#####", "#####", "#####", "#####", "#####"}),
	FromRows(Rows{"#####", "#####", "#####", "#####", "#####", "#####", "#####"}),
}

// Horizontal bar sets for the line VU meter. Each set holds four partial cells
// (1..4 columns lit) followed by the full cell.
const (
	HorizontalPerCell = Width
	HorizontalFull    = 4
)

// HorizontalUpper draws in the top three rows (left channel).
var HorizontalUpper = [Width]Bitmap{
	FromRows(Rows{"#....", "#....", "#....", ".....", ".....", ".....", "....."}),
	FromRows(Rows{"##...", "##...", "##...", ".....", ".....", ".....", "....."}),
	FromRows(Rows{"###..", "###..", "###..", ".....", ".....", ".....", "....."}),
	FromRows(Rows{"####.", "####.", "####.", ".....", ".....", ".....", "....."}),
	FromRows(Rows{"#####", "#####", "#####", ".....", ".....", ".....", "....."}),
}

// HorizontalLower draws in the bottom three rows (right channel).
var HorizontalLower = [Width]Bitmap{
	FromRows(Rows{".....", ".....", ".....", ".....", "#....", "#....", "#...."}),
	FromRows(Rows{".....", ".....", ".....", ".....", "##...", "##...", "##..."}),
	FromRows(Rows{".....", ".....", ".....", ".....", "###..", "###..", "###.."}),
	FromRows(Rows{".....", ".....", ".....", ".....", "####.", "####.", "####."}),
	FromRows(Rows{".....", ".....", ".....", ".....", "#####", "#####", "#####"}),
}

// Harrow meter slots.
const (
	HarrowRight = iota
	HarrowLeft
	HarrowBoth
)

// Harrows holds the arrow cells of the harrow meter, indexed by HarrowRight,
// HarrowLeft and HarrowBoth. The left channel points along the top rows, the
// right channel along the bottom rows.
var Harrows = [3]Bitmap{
	HarrowRight: FromRows(Rows{".....", ".....", ".....", ".....", "##...", ".###.", "##..."}),
	HarrowLeft:  FromRows(Rows{"##...", ".###.", "##...", ".....", ".....", ".....", "....."}),
	HarrowBoth:  FromRows(Rows{"##...", ".###.", "##...", ".....", "##...", ".###.", "##..."}),
}
