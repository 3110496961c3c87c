package terrain

import "fmt"

// Classification selects the sprite for a tile based on its neighbours.
type Classification uint8

// Classifications. Interior is the plain fill sprite.
const (
	Interior Classification = iota
	TopEdge
	CornerTR
	CornerTL
	BottomEdge
	CornerBR
	CornerBL
	RightEdge
	LeftEdge
	CurveTL
	CurveBL
	CurveTR
	CurveBR

	numClassifications
)

var classificationNames = [numClassifications]string{
	Interior:   "Grass",
	TopEdge:    "TopEdge",
	CornerTR:   "CornerTR",
	CornerTL:   "CornerTL",
	BottomEdge: "BottomEdge",
	CornerBR:   "CornerBR",
	CornerBL:   "CornerBL",
	RightEdge:  "RightEdge",
	LeftEdge:   "LeftEdge",
	CurveTL:    "CurveTL",
	CurveBL:    "CurveBL",
	CurveTR:    "CurveTR",
	CurveBR:    "CurveBR",
}

// String returns the tileset sprite name.
func (c Classification) String() string {
	if c >= numClassifications {
		return fmt.Sprintf("Classification(%d)", c)
	}
	return classificationNames[c]
}

// IsBoundary reports whether the tile sits on an edge, corner or curve.
func (c Classification) IsBoundary() bool {
	return c != Interior && c < numClassifications
}

// Classifications returns every classification in declaration order.
func Classifications() []Classification {
	out := make([]Classification, numClassifications)
	for i := range out {
		out[i] = Classification(i)
	}
	return out
}

// Classify picks a classification from the 8 neighbour states.
// Checks run top edge, bottom edge, right, left, then the diagonal
// curves; the first match wins.
func Classify(n Neighborhood) Classification {
	switch {
	case n.Empty(North):
		switch {
		case n.Empty(East):
			return CornerTR
		case n.Empty(West):
			return CornerTL
		}
		return TopEdge
	case n.Empty(South):
		switch {
		case n.Empty(East):
			return CornerBR
		case n.Empty(West):
			return CornerBL
		}
		return BottomEdge
	case n.Empty(East):
		return RightEdge
	case n.Empty(West):
		return LeftEdge
	case n.Empty(SouthEast):
		return CurveTL
	case n.Empty(NorthEast):
		return CurveBL
	case n.Empty(SouthWest):
		return CurveTR
	case n.Empty(NorthWest):
		return CurveBR
	}
	return Interior
}
