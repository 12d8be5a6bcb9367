package pattern

// MarkedUnion is the superposition of two type subsets of one pattern, each
// point keeping its original coordinates and type mark. All cross-type
// statistics share one union per pair, so mark exclusivity and window
// consistency are validated once here instead of at every call site.
type MarkedUnion struct {
	A, B   CellType
	window *Window
	a, b   []Point
}

// NewMarkedUnion builds the marked superposition of types a and b.
// Returns ErrSameType when a == b. Empty subsets are permitted; cross-type
// statistics decide their own minimum-count policy.
func NewMarkedUnion(tp *TypedPattern, a, b CellType) (*MarkedUnion, error) {
	if a == b {
		return nil, ErrSameType
	}
	return &MarkedUnion{
		A:      a,
		B:      b,
		window: tp.Window(),
		a:      tp.Points(a),
		b:      tp.Points(b),
	}, nil
}

// Window returns the shared observation window
func (mu *MarkedUnion) Window() *Window {
	return mu.window
}

// PointsA returns the points carrying the first mark
func (mu *MarkedUnion) PointsA() []Point {
	return mu.a
}

// PointsB returns the points carrying the second mark
func (mu *MarkedUnion) PointsB() []Point {
	return mu.b
}

// All returns the superimposed point sequence, first-mark points followed by
// second-mark points, preserving per-type order.
func (mu *MarkedUnion) All() []Point {
	all := make([]Point, 0, len(mu.a)+len(mu.b))
	all = append(all, mu.a...)
	all = append(all, mu.b...)
	return all
}

// CountA returns the number of first-mark points
func (mu *MarkedUnion) CountA() int { return len(mu.a) }

// CountB returns the number of second-mark points
func (mu *MarkedUnion) CountB() int { return len(mu.b) }
