package gocube

import (
	"errors"
	"testing"
)

func TestParseMove(t *testing.T) {
	tests := []struct {
		in   string
		want Move
	}{
		{"R", R},
		{"R'", RPrime},
		{"R2", R2},
		{" U' ", UPrime},
		{"B2'", B2},
		{"F′", FPrime},
	}

	for _, tt := range tests {
		got, err := ParseMove(tt.in)
		if err != nil {
			t.Errorf("ParseMove(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMove(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseMoveInvalid(t *testing.T) {
	for _, in := range []string{"", "X", "M", "R3", "r", "Uw"} {
		if _, err := ParseMove(in); !errors.Is(err, ErrInvalidNotation) {
			t.Errorf("ParseMove(%q) err = %v, want ErrInvalidNotation", in, err)
		}
	}
}

func TestParseMovesSkipsInvalid(t *testing.T) {
	moves, invalid := ParseMoves("R X U' Q2 F2")
	if got := FormatMoves(moves); got != "R U' F2" {
		t.Errorf("FormatMoves = %q, want %q", got, "R U' F2")
	}
	if len(invalid) != 2 || invalid[0] != "X" || invalid[1] != "Q2" {
		t.Errorf("invalid = %v, want [X Q2]", invalid)
	}
}

func TestInverse(t *testing.T) {
	if R.Inverse() != RPrime {
		t.Error("R inverse should be R'")
	}
	if RPrime.Inverse() != R {
		t.Error("R' inverse should be R")
	}
	if R2.Inverse() != R2 {
		t.Error("R2 inverse should be R2")
	}
}

func TestMerge(t *testing.T) {
	merged, ok := R.Merge(R)
	if !ok || merged == nil || *merged != R2 {
		t.Errorf("R+R = %v, want R2", merged)
	}

	merged, ok = R.Merge(RPrime)
	if !ok || merged != nil {
		t.Errorf("R+R' should cancel, got %v", merged)
	}

	merged, ok = R2.Merge(R)
	if !ok || merged == nil || *merged != RPrime {
		t.Errorf("R2+R = %v, want R'", merged)
	}

	if _, ok := R.Merge(U); ok {
		t.Error("R and U should not merge")
	}
}

func TestSimplifyMoves(t *testing.T) {
	moves, _ := ParseMoves("R U U' R' F F F D")
	got := FormatMoves(SimplifyMoves(moves))
	if got != "F' D" {
		t.Errorf("SimplifyMoves = %q, want %q", got, "F' D")
	}
}

func TestInvertMoves(t *testing.T) {
	moves, _ := ParseMoves("R U2 F'")
	if got := FormatMoves(InvertMoves(moves)); got != "F U2 R'" {
		t.Errorf("InvertMoves = %q, want %q", got, "F U2 R'")
	}
}
