package annotate

// Store holds the ordered annotation list plus the single pending point for
// one session. Mutation is single-goroutine: every interaction handler runs
// on the event loop, mutates, then triggers a repaint.
type Store struct {
	annotations []Annotation
	pending     Point
	hasPending  bool
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Add appends a labeled point with a generated timestamp. An empty label is
// silently ignored and reported with a false return.
func (s *Store) Add(x, y float64, label string) bool {
	if label == "" {
		return false
	}
	s.annotations = append(s.annotations, Annotation{X: x, Y: y, Label: label, Timestamp: timestamp()})
	return true
}

// Append adds an already-formed annotation, preserving its timestamp. Used
// when reloading an exported CSV.
func (s *Store) Append(a Annotation) {
	s.annotations = append(s.annotations, a)
}

// RemoveLast deletes the most recent annotation. No-op on an empty list.
func (s *Store) RemoveLast() {
	if len(s.annotations) == 0 {
		return
	}
	s.annotations = s.annotations[:len(s.annotations)-1]
}

// Clear empties the list.
func (s *Store) Clear() {
	s.annotations = s.annotations[:0]
}

// Len reports the number of stored annotations.
func (s *Store) Len() int {
	return len(s.annotations)
}

// Annotations returns a copy of the list in insertion order.
func (s *Store) Annotations() []Annotation {
	out := make([]Annotation, len(s.annotations))
	copy(out, s.annotations)
	return out
}

// SetPending records a point awaiting a label, replacing any previous one.
func (s *Store) SetPending(x, y float64) {
	s.pending = Point{X: x, Y: y}
	s.hasPending = true
}

// Pending returns the point awaiting a label, if any.
func (s *Store) Pending() (Point, bool) {
	return s.pending, s.hasPending
}

// ClearPending drops the pending point without committing it.
func (s *Store) ClearPending() {
	s.pending = Point{}
	s.hasPending = false
}

// Commit turns the pending point into an annotation with the given label.
// With no pending point, or an empty label, nothing is added; the pending
// point survives an empty label so the user can retry.
func (s *Store) Commit(label string) bool {
	if !s.hasPending {
		return false
	}
	if !s.Add(s.pending.X, s.pending.Y, label) {
		return false
	}
	s.ClearPending()
	return true
}
