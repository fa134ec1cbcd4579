package gcode

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// MoveType represents the type of toolpath movement.
type MoveType int

const (
	MoveRapid   MoveType = iota // G0: rapid positioning, beam off
	MoveFeed                    // G1 in the XY plane: cutting
	MovePlunge                  // G1 with Z decreasing: torch down to cut height
	MoveRetract                 // G0/G1 with Z increasing: torch up
)

// GCodeMove represents a single parsed movement from GCode.
type GCodeMove struct {
	Type     MoveType
	FromX    float64
	FromY    float64
	FromZ    float64
	ToX      float64
	ToY      float64
	ToZ      float64
	FeedRate float64 // in/min
}

// Length returns the XY distance travelled by the move.
func (m GCodeMove) Length() float64 {
	return math.Hypot(m.ToX-m.FromX, m.ToY-m.FromY)
}

var coordRe = regexp.MustCompile(`([XYZF])(-?\d+\.?\d*)`)

// ParseGCode parses a GCode string into a slice of structured moves.
// It tracks absolute position state and classifies each G0/G1 command
// by its movement characteristics.
func ParseGCode(code string) []GCodeMove {
	var moves []GCodeMove
	curX, curY, curZ, curFeed := 0.0, 0.0, 0.0, 0.0

	for _, line := range strings.Split(code, "\n") {
		upper := strings.ToUpper(stripComment(line))
		rapid, feed := motionCommand(upper)
		if !rapid && !feed {
			continue
		}

		newX, newY, newZ, newFeed := curX, curY, curZ, curFeed
		for _, m := range coordRe.FindAllStringSubmatch(upper, -1) {
			val, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				continue
			}
			switch m[1] {
			case "X":
				newX = val
			case "Y":
				newY = val
			case "Z":
				newZ = val
			case "F":
				newFeed = val
			}
		}

		moves = append(moves, GCodeMove{
			Type:     classifyMove(rapid, curZ, newZ, curX, curY, newX, newY),
			FromX:    curX,
			FromY:    curY,
			FromZ:    curZ,
			ToX:      newX,
			ToY:      newY,
			ToZ:      newZ,
			FeedRate: newFeed,
		})
		curX, curY, curZ, curFeed = newX, newY, newZ, newFeed
	}
	return moves
}

// stripComment removes semicolon and parenthetical comments from a line.
func stripComment(line string) string {
	if idx := strings.Index(line, ";"); idx >= 0 {
		line = line[:idx]
	}
	if idx := strings.Index(line, "("); idx >= 0 {
		if end := strings.LastIndex(line, ")"); end > idx {
			line = line[:idx] + line[end+1:]
		} else {
			line = line[:idx]
		}
	}
	return strings.TrimSpace(line)
}

// motionCommand reports whether a line is a rapid (G0) or feed (G1) move.
func motionCommand(upper string) (rapid, feed bool) {
	word := upper
	if idx := strings.IndexByte(upper, ' '); idx >= 0 {
		word = upper[:idx]
	}
	switch word {
	case "G0", "G00":
		return true, false
	case "G1", "G01":
		return false, true
	}
	return false, false
}

// classifyMove determines the MoveType based on movement characteristics.
func classifyMove(isRapid bool, fromZ, toZ, fromX, fromY, toX, toY float64) MoveType {
	zDelta := toZ - fromZ
	hasXY := fromX != toX || fromY != toY

	switch {
	case isRapid:
		if zDelta > 0 {
			return MoveRetract
		}
		return MoveRapid
	case zDelta < -0.0001 && !hasXY:
		return MovePlunge
	case zDelta > 0.0001 && !hasXY:
		return MoveRetract
	default:
		return MoveFeed
	}
}

// CutLength sums the XY length of every cutting move.
func CutLength(moves []GCodeMove) float64 {
	var total float64
	for _, m := range moves {
		if m.Type == MoveFeed {
			total += m.Length()
		}
	}
	return total
}

// EstimateCutTime returns the seconds spent on cutting moves. Each move uses
// its own programmed feed rate; feedRate (in/min) covers moves without one.
func EstimateCutTime(moves []GCodeMove, feedRate float64) float64 {
	var seconds float64
	for _, m := range moves {
		if m.Type != MoveFeed {
			continue
		}
		f := m.FeedRate
		if f <= 0 {
			f = feedRate
		}
		if f <= 0 {
			continue
		}
		seconds += m.Length() / f * 60
	}
	return seconds
}

// PierceCount counts how many times the program starts a cut.
func PierceCount(moves []GCodeMove) int {
	count := 0
	cutting := false
	for _, m := range moves {
		switch m.Type {
		case MoveFeed:
			if !cutting && m.Length() > 0 {
				count++
			}
			cutting = true
		case MoveRapid, MoveRetract:
			cutting = false
		}
	}
	return count
}
