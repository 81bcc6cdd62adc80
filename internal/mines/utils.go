package mines

import "github.com/sirupsen/logrus"

var Log = logrus.New()

// offsets8 lists the 8-neighborhood, row by row.
var offsets8 = [8]Point{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// offsets4 lists the orthogonal neighborhood used by flood fill.
var offsets4 = [4]Point{
	{0, -1}, {-1, 0}, {1, 0}, {0, 1},
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
