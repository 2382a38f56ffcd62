package engine

// RevisitTracker remembers the first seq at which each diagram ID was
// reached in a session.
//
// Translations cycle back after n steps and a commutation is its own
// inverse, so returning to an earlier layout is common; the tracker lets
// the session report it.
type RevisitTracker struct {
	first map[string]int64
}

// NewRevisitTracker creates an empty tracker.
func NewRevisitTracker() *RevisitTracker {
	return &RevisitTracker{first: make(map[string]int64)}
}

// Observe records that id was reached at seq. If id had been reached
// before, it returns the earlier seq and true.
func (r *RevisitTracker) Observe(id string, seq int64) (int64, bool) {
	if prev, ok := r.first[id]; ok {
		return prev, true
	}
	r.first[id] = seq
	return seq, false
}

// Distinct returns the number of distinct layouts observed.
func (r *RevisitTracker) Distinct() int {
	return len(r.first)
}
