package pattern

// TypedPattern maps each cell type to its ordered point set, all bound to one
// shared observation window. Built once per image and never mutated.
type TypedPattern struct {
	window *Window
	byType map[CellType][]Point
}

// BuildReport summarizes label classification for one input, including the
// rows dropped because their labels matched no known type.
type BuildReport struct {
	Total           int
	Matched         int
	Dropped         int
	UnmatchedLabels map[string]int
}

// Build classifies raw labeled centroids, drops unmatched rows (reported, not
// fatal), normalizes the surviving coordinates into the unit square and
// partitions them by type. A type with zero points is valid; downstream
// statistics handle empty sets explicitly. Points may sit exactly on the
// window boundary; no clipping is performed.
func Build(raw []LabeledPoint) (*TypedPattern, *BuildReport, error) {
	report := &BuildReport{
		Total:           len(raw),
		UnmatchedLabels: make(map[string]int),
	}

	kept := make([]Point, 0, len(raw))
	for _, lp := range raw {
		t, ok := StandardizeLabel(lp.Label)
		if !ok {
			report.Dropped++
			report.UnmatchedLabels[lp.Label]++
			continue
		}
		kept = append(kept, Point{X: lp.X, Y: lp.Y, Type: t})
	}
	report.Matched = len(kept)

	normalized, err := Normalize(kept)
	if err != nil {
		return nil, report, err
	}

	tp := &TypedPattern{
		window: UnitSquare(),
		byType: make(map[CellType][]Point, len(Types())),
	}
	for _, t := range Types() {
		tp.byType[t] = nil
	}
	for _, p := range normalized {
		tp.byType[p.Type] = append(tp.byType[p.Type], p)
	}
	return tp, report, nil
}

// NewTypedPattern assembles a pattern from already-normalized points on the
// unit square. Intended for tests and for callers that normalize upstream.
func NewTypedPattern(points []Point) *TypedPattern {
	tp := &TypedPattern{
		window: UnitSquare(),
		byType: make(map[CellType][]Point, len(Types())),
	}
	for _, p := range points {
		tp.byType[p.Type] = append(tp.byType[p.Type], p)
	}
	return tp
}

// Window returns the shared observation window
func (tp *TypedPattern) Window() *Window {
	return tp.window
}

// Points returns the ordered point set of one type. The returned slice is the
// pattern's backing storage; callers must not modify it.
func (tp *TypedPattern) Points(t CellType) []Point {
	return tp.byType[t]
}

// Count returns the number of points of one type
func (tp *TypedPattern) Count(t CellType) int {
	return len(tp.byType[t])
}

// Total returns the number of points across all types
func (tp *TypedPattern) Total() int {
	n := 0
	for _, pts := range tp.byType {
		n += len(pts)
	}
	return n
}
