// GoCube Simulator - CLI application for turning, shuffling and solving a
// virtual Rubik's Cube.
package main

import (
	"github.com/SeamusWaldron/gocube_sim/internal/cli"
)

func main() {
	cli.Execute()
}
