package gocube

// Predefined moves for convenience.
//
// Example:
//
//	cube.ApplyMoves([]gocube.Move{gocube.R, gocube.U, gocube.RPrime, gocube.UPrime})
var (
	R      = Move{Face: FaceR, Turn: CW}
	RPrime = Move{Face: FaceR, Turn: CCW}
	R2     = Move{Face: FaceR, Turn: Double}

	L      = Move{Face: FaceL, Turn: CW}
	LPrime = Move{Face: FaceL, Turn: CCW}
	L2     = Move{Face: FaceL, Turn: Double}

	U      = Move{Face: FaceU, Turn: CW}
	UPrime = Move{Face: FaceU, Turn: CCW}
	U2     = Move{Face: FaceU, Turn: Double}

	D      = Move{Face: FaceD, Turn: CW}
	DPrime = Move{Face: FaceD, Turn: CCW}
	D2     = Move{Face: FaceD, Turn: Double}

	F      = Move{Face: FaceF, Turn: CW}
	FPrime = Move{Face: FaceF, Turn: CCW}
	F2     = Move{Face: FaceF, Turn: Double}

	B      = Move{Face: FaceB, Turn: CW}
	BPrime = Move{Face: FaceB, Turn: CCW}
	B2     = Move{Face: FaceB, Turn: Double}
)

// SexyMove is R U R' U'. Six repetitions return to the start.
var SexyMove = []Move{R, U, RPrime, UPrime}

// TPerm swaps two edges and two corners of the top layer.
var TPerm = []Move{R, U, RPrime, UPrime, RPrime, F, R2, UPrime, RPrime, UPrime, R, U, RPrime, FPrime}
