package db

// Row is one result row keyed by column label.
type Row map[string]any

type Shape int

const (
	ShapeNoRows Shape = iota
	ShapeSingleRow
	ShapeSingleSet
	ShapeMultipleSets
)

func (s Shape) String() string {
	switch s {
	case ShapeNoRows:
		return "no_rows"
	case ShapeSingleRow:
		return "single_row"
	case ShapeSingleSet:
		return "single_set"
	case ShapeMultipleSets:
		return "multiple_sets"
	default:
		return "unknown"
	}
}

// ResultSets is the output of one statement, classified once so callers never
// have to sniff the driver's shape again.
type ResultSets struct {
	shape Shape
	sets  [][]Row
}

func NewResultSets(sets ...[]Row) ResultSets {
	kept := make([][]Row, 0, len(sets))
	rowCount := 0
	for _, set := range sets {
		if set == nil {
			continue
		}
		kept = append(kept, set)
		rowCount += len(set)
	}

	rs := ResultSets{sets: kept}
	switch {
	case rowCount == 0:
		rs.shape = ShapeNoRows
	case len(kept) > 1:
		rs.shape = ShapeMultipleSets
	case rowCount == 1:
		rs.shape = ShapeSingleRow
	default:
		rs.shape = ShapeSingleSet
	}
	return rs
}

func (r ResultSets) Shape() Shape {
	return r.shape
}

// FirstRow returns the first row of the first set.
func (r ResultSets) FirstRow() (Row, bool) {
	if len(r.sets) == 0 || len(r.sets[0]) == 0 {
		return nil, false
	}
	return r.sets[0][0], true
}

// Primary is the first set whose first row carries marker, falling back to the
// first set.
func (r ResultSets) Primary(marker string) []Row {
	for _, set := range r.sets {
		if len(set) == 0 {
			continue
		}
		if _, ok := set[0][marker]; ok {
			return set
		}
	}
	if len(r.sets) == 0 {
		return nil
	}
	return r.sets[0]
}
