package notation

import (
	"strings"

	"github.com/SeamusWaldron/gocube_sim"
)

// Plain-language names, viewed with white on top and green in front.
// Index 0 is the clockwise quarter, index 1 the counter-clockwise one.
var descriptions = map[gocube.Face][2]string{
	gocube.FaceR: {"R up", "R down"},
	gocube.FaceL: {"L down", "L up"},
	gocube.FaceU: {"T rotate right", "T rotate left"},
	gocube.FaceD: {"B rotate right", "B rotate left"},
	gocube.FaceF: {"F rotate clockwise", "F rotate anti-clockwise"},
	gocube.FaceB: {"Back rotate clockwise", "Back rotate anti-clockwise"},
}

// Describe returns a plain-language description of m, e.g. "R up" for R.
func Describe(m gocube.Move) string {
	d, ok := descriptions[m.Face]
	if !ok {
		return m.Notation()
	}
	switch m.Turn {
	case gocube.CCW:
		return d[1]
	case gocube.Double:
		return d[0] + " x 2"
	default:
		return d[0]
	}
}

// DescribeSequence joins the descriptions of moves with commas.
func DescribeSequence(moves []gocube.Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = Describe(m)
	}
	return strings.Join(parts, ", ")
}
