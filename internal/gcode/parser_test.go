package gcode

import (
	"math"
	"testing"
)

func TestParseGCode_Empty(t *testing.T) {
	moves := ParseGCode("")
	if len(moves) != 0 {
		t.Errorf("expected 0 moves for empty input, got %d", len(moves))
	}
}

func TestParseGCode_CommentsOnly(t *testing.T) {
	code := `; SheetQuote cutting program
( Plasma header (nested) )
`
	moves := ParseGCode(code)
	if len(moves) != 0 {
		t.Errorf("expected 0 moves for comments-only input, got %d", len(moves))
	}
}

func TestParseGCode_RapidAndFeed(t *testing.T) {
	code := "G0 X1.000 Y2.000\nG1 X5.000 Y2.000 F300.000\n"
	moves := ParseGCode(code)
	if len(moves) != 2 {
		t.Fatalf("expected 2 moves, got %d", len(moves))
	}
	if moves[0].Type != MoveRapid {
		t.Errorf("expected MoveRapid, got %d", moves[0].Type)
	}
	m := moves[1]
	if m.Type != MoveFeed {
		t.Errorf("expected MoveFeed, got %d", m.Type)
	}
	if m.FromX != 1 || m.ToX != 5 {
		t.Errorf("expected X from 1 to 5, got %.3f to %.3f", m.FromX, m.ToX)
	}
	if m.FeedRate != 300 {
		t.Errorf("expected feed rate 300, got %.1f", m.FeedRate)
	}
	if m.Length() != 4 {
		t.Errorf("expected length 4, got %f", m.Length())
	}
}

func TestParseGCode_TorchHeightMoves(t *testing.T) {
	code := "G0 Z0.5000\nG0 X1.0 Y1.0\nG0 Z0.1500\nM3\nG1 Z0.0600 F200\nG1 X2.0 Y1.0\nM5\nG0 Z0.5000\n"
	moves := ParseGCode(code)
	want := []MoveType{MoveRetract, MoveRapid, MoveRapid, MovePlunge, MoveFeed, MoveRetract}
	if len(moves) != len(want) {
		t.Fatalf("expected %d moves, got %d", len(want), len(moves))
	}
	for i, w := range want {
		if moves[i].Type != w {
			t.Errorf("move %d: expected type %d, got %d", i, w, moves[i].Type)
		}
	}
}

func TestParseGCode_InlineComment(t *testing.T) {
	code := "G1 X5.000 Y5.000 F300 ; cutting move\nG1 X6.000 (trailing) Y6.000\n"
	moves := ParseGCode(code)
	if len(moves) != 2 {
		t.Fatalf("expected 2 moves, got %d", len(moves))
	}
	if moves[1].ToX != 6 || moves[1].ToY != 6 {
		t.Errorf("expected to (6,6), got (%.3f, %.3f)", moves[1].ToX, moves[1].ToY)
	}
}

func TestParseGCode_NonMovementLines(t *testing.T) {
	code := `G90
G20
M4
G4 P0.50
G0 X0.000 Y0.000
G1 X1.000 Y0.000 F300
M5
`
	moves := ParseGCode(code)
	if len(moves) != 2 {
		t.Errorf("expected 2 moves (only G0/G1 lines), got %d", len(moves))
	}
}

func TestParseGCode_FeedRateSticky(t *testing.T) {
	code := "G1 X1.000 Y1.000 F300.0\nG1 X2.000 Y2.000\n"
	moves := ParseGCode(code)
	if len(moves) != 2 {
		t.Fatalf("expected 2 moves, got %d", len(moves))
	}
	if moves[1].FeedRate != 300 {
		t.Errorf("expected sticky feed rate 300, got %.1f", moves[1].FeedRate)
	}
}

func TestParseGCode_NegativeCoordinates(t *testing.T) {
	moves := ParseGCode("G0 X-0.125 Y-3\n")
	if len(moves) != 1 {
		t.Fatalf("expected 1 move, got %d", len(moves))
	}
	if moves[0].ToX != -0.125 || moves[0].ToY != -3 {
		t.Errorf("expected to (-0.125,-3), got (%.3f, %.3f)", moves[0].ToX, moves[0].ToY)
	}
}

func TestMotionCommand(t *testing.T) {
	tests := []struct {
		line        string
		rapid, feed bool
	}{
		{"G0 X1", true, false},
		{"G00", true, false},
		{"G1 X1", false, true},
		{"G01 Y2", false, true},
		{"G17", false, false},
		{"G4 P0.5", false, false},
		{"M4", false, false},
	}
	for _, tt := range tests {
		rapid, feed := motionCommand(tt.line)
		if rapid != tt.rapid || feed != tt.feed {
			t.Errorf("motionCommand(%q) = %v, %v; want %v, %v", tt.line, rapid, feed, tt.rapid, tt.feed)
		}
	}
}

func TestClassifyMove(t *testing.T) {
	tests := []struct {
		name    string
		isRapid bool
		fromZ   float64
		toZ     float64
		fromX   float64
		fromY   float64
		toX     float64
		toY     float64
		want    MoveType
	}{
		{"rapid XY", true, 0.5, 0.5, 0, 0, 1, 2, MoveRapid},
		{"rapid torch down", true, 0.5, 0.15, 1, 2, 1, 2, MoveRapid},
		{"rapid torch up", true, 0.06, 0.5, 1, 2, 1, 2, MoveRetract},
		{"feed XY", false, 0.06, 0.06, 0, 0, 10, 0, MoveFeed},
		{"plunge to cut height", false, 0.15, 0.06, 1, 2, 1, 2, MovePlunge},
		{"feed retract", false, 0.06, 0.5, 1, 2, 1, 2, MoveRetract},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyMove(tt.isRapid, tt.fromZ, tt.toZ, tt.fromX, tt.fromY, tt.toX, tt.toY)
			if got != tt.want {
				t.Errorf("classifyMove() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCutLengthAndPierces(t *testing.T) {
	code := `G0 X0 Y0
M4
G1 X3 Y0 F300
G1 X3 Y4
G1 X0 Y0
M5
G0 X10 Y10
M4
G1 X11 Y10
M5
`
	moves := ParseGCode(code)
	if got := CutLength(moves); math.Abs(got-13) > 1e-9 {
		t.Errorf("expected cut length 13, got %f", got)
	}
	if got := PierceCount(moves); got != 2 {
		t.Errorf("expected 2 pierces, got %d", got)
	}
	if got := EstimateCutTime(moves, 0); math.Abs(got-13.0/300*60) > 1e-9 {
		t.Errorf("expected %f seconds, got %f", 13.0/300*60, got)
	}
}

func TestEstimateCutTime_FallbackFeed(t *testing.T) {
	moves := ParseGCode("G1 X10 Y0\n")
	if got := EstimateCutTime(moves, 600); math.Abs(got-1) > 1e-9 {
		t.Errorf("expected 1 second at 600 in/min, got %f", got)
	}
	if got := EstimateCutTime(moves, 0); got != 0 {
		t.Errorf("expected 0 seconds without a feed rate, got %f", got)
	}
}
