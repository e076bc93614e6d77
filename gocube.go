// Package gocube is the notation and reference-model layer of a virtual
// 3x3x3 cube simulator.
//
// # Notation
//
// Moves use standard face notation:
//
//	moves, invalid := gocube.ParseMoves("F B2 L' D")
//	fmt.Println(gocube.FormatMoves(gocube.InvertMoves(moves)))
//
// Unrecognized tokens are reported back rather than failing the whole
// sequence.
//
// # Reference Cube
//
// Cube is a facelet model that knows nothing about piece geometry. Solvers
// replay a scramble on it to work out a solution:
//
//	cube := gocube.NewCube()
//	cube.ApplyMoves(gocube.SexyMove)
//	fmt.Println("Solved:", cube.IsSolved())
//	fmt.Print(cube)
//
// The geometric engine that animates layers of 27 pieces lives in the
// internal packages and is driven through the gocube command.
package gocube
