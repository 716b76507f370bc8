package gcode

import (
	"regexp"
	"strconv"
	"strings"
)

// MoveKind classifies a parsed program motion.
type MoveKind int

const (
	MoveTravel MoveKind = iota // G0 positioning above the glass
	MoveScore                  // G1 across the glass with the head down
	MoveLower                  // head dropping onto the glass
	MoveRaise                  // head lifting off the glass
)

// Move is one parsed motion with absolute start and end positions.
type Move struct {
	Kind  MoveKind
	FromX float64
	FromY float64
	FromZ float64
	ToX   float64
	ToY   float64
	ToZ   float64
	Feed  float64
}

// Segment is the XY span of a single score.
type Segment struct {
	X0, Y0, X1, Y1 float64
}

var wordRe = regexp.MustCompile(`([XYZF])(-?\d+\.?\d*)`)

// ParseMoves reads a program back into classified moves. The parser
// tracks absolute position, strips comments and ignores everything
// that is not a G0/G1 motion, which is enough to verify generated
// programs and preview cut paths.
func ParseMoves(program string) []Move {
	var moves []Move

	curX, curY, curZ := 0.0, 0.0, 0.0
	curFeed := 0.0

	for _, line := range strings.Split(program, "\n") {
		line = stripComments(line)
		if line == "" {
			continue
		}

		upper := strings.ToUpper(line)
		isRapid := hasCommand(upper, "G0") || hasCommand(upper, "G00")
		isFeed := hasCommand(upper, "G1") || hasCommand(upper, "G01")
		if !isRapid && !isFeed {
			continue
		}

		newX, newY, newZ, newFeed := curX, curY, curZ, curFeed
		for _, m := range wordRe.FindAllStringSubmatch(upper, -1) {
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

		moves = append(moves, Move{
			Kind:  classifyMove(isRapid, curX, curY, curZ, newX, newY, newZ),
			FromX: curX,
			FromY: curY,
			FromZ: curZ,
			ToX:   newX,
			ToY:   newY,
			ToZ:   newZ,
			Feed:  newFeed,
		})

		curX, curY, curZ, curFeed = newX, newY, newZ, newFeed
	}

	return moves
}

// ScoreSegments returns just the scored spans of a program, in order.
func ScoreSegments(program string) []Segment {
	var segments []Segment
	for _, m := range ParseMoves(program) {
		if m.Kind == MoveScore {
			segments = append(segments, Segment{X0: m.FromX, Y0: m.FromY, X1: m.ToX, Y1: m.ToY})
		}
	}
	return segments
}

// stripComments removes semicolon and parenthetical comments.
func stripComments(line string) string {
	if idx := strings.Index(line, ";"); idx >= 0 {
		line = line[:idx]
	}
	if idx := strings.Index(line, "("); idx >= 0 {
		if end := strings.Index(line, ")"); end > idx {
			line = line[:idx] + line[end+1:]
		} else {
			line = line[:idx]
		}
	}
	return strings.TrimSpace(line)
}

// hasCommand reports whether the line is the given G command, avoiding
// prefix confusion between G0/G00 and e.g. G90.
func hasCommand(upper, cmd string) bool {
	return upper == cmd || strings.HasPrefix(upper, cmd+" ")
}

// classifyMove types a motion by what the head is doing. Pure Z moves
// are lowering or raising; XY moves score when fed and travel when
// rapid.
func classifyMove(isRapid bool, fromX, fromY, fromZ, toX, toY, toZ float64) MoveKind {
	const eps = 0.001
	hasXY := fromX != toX || fromY != toY

	switch {
	case !hasXY && toZ < fromZ-eps:
		return MoveLower
	case !hasXY && toZ > fromZ+eps:
		return MoveRaise
	case isRapid:
		return MoveTravel
	default:
		return MoveScore
	}
}
