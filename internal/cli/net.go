package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/gocube_sim"
)

// Styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	moveStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var stickerColors = map[gocube.Color]lipgloss.Color{
	gocube.White:  lipgloss.Color("255"),
	gocube.Yellow: lipgloss.Color("226"),
	gocube.Green:  lipgloss.Color("34"),
	gocube.Blue:   lipgloss.Color("27"),
	gocube.Red:    lipgloss.Color("196"),
	gocube.Orange: lipgloss.Color("208"),
}

// renderNet draws the facelets as a colored unfolded net with the same
// layout as gocube.FormatNet.
func renderNet(facelets [6][9]gocube.Color) string {
	var b strings.Builder

	sticker := func(c gocube.Color) string {
		return lipgloss.NewStyle().Background(stickerColors[c]).Render("  ")
	}
	writeRow := func(face gocube.CubeFace, row int) {
		for col := 0; col < 3; col++ {
			b.WriteString(sticker(facelets[face][row*3+col]))
		}
		b.WriteString(" ")
	}
	pad := strings.Repeat(" ", 7)

	for row := 0; row < 3; row++ {
		b.WriteString(pad)
		writeRow(gocube.CubeFaceU, row)
		b.WriteString("\n")
	}
	for row := 0; row < 3; row++ {
		for _, face := range []gocube.CubeFace{gocube.CubeFaceL, gocube.CubeFaceF, gocube.CubeFaceR, gocube.CubeFaceB} {
			writeRow(face, row)
		}
		b.WriteString("\n")
	}
	for row := 0; row < 3; row++ {
		b.WriteString(pad)
		writeRow(gocube.CubeFaceD, row)
		b.WriteString("\n")
	}

	return b.String()
}
