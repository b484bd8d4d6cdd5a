package routing

// validFlags is the same lazily-cleared bitset pkg/ch uses for its witness
// search: a monotonic generation tag per node instead of a real zeroing pass,
// since a query resets all of its state on every call to CalcPath.
type validFlags struct {
	tags    []uint32
	current uint32
}

func newValidFlags(n int) *validFlags {
	return &validFlags{
		tags:    make([]uint32, n),
		current: 1,
	}
}

func (f *validFlags) isValid(n NodeId) bool {
	return f.tags[n] == f.current
}

func (f *validFlags) setValid(n NodeId) {
	f.tags[n] = f.current
}

func (f *validFlags) invalidateAll() {
	if f.current == ^uint32(0) {
		for i := range f.tags {
			f.tags[i] = 0
		}
		f.current = 1
		return
	}
	f.current++
}
