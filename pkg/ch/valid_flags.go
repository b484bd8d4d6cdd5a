package ch

// ValidFlags is a lazily-cleared bitset: instead of zeroing an array of N
// booleans before every search, it bumps a monotonic tag and treats any slot
// not carrying the current tag as false. This makes "clear everything" an
// O(1) operation, which matters because a witness search or a CH query clears
// its state on every single invocation.
type ValidFlags struct {
	tags    []uint32
	current uint32
}

// NewValidFlags creates a ValidFlags for n nodes, all initially invalid.
func NewValidFlags(n int) *ValidFlags {
	return &ValidFlags{
		tags:    make([]uint32, n),
		current: 1,
	}
}

// IsValid reports whether n was set valid since the last InvalidateAll.
func (f *ValidFlags) IsValid(n NodeId) bool {
	return f.tags[n] == f.current
}

// SetValid marks n valid for the current generation.
func (f *ValidFlags) SetValid(n NodeId) {
	f.tags[n] = f.current
}

// InvalidateAll clears every slot in O(1) by advancing the generation tag. On
// the rare occasion the tag wraps around uint32, it falls back to a real
// zeroing pass and restarts the tag at 1.
func (f *ValidFlags) InvalidateAll() {
	if f.current == ^uint32(0) {
		for i := range f.tags {
			f.tags[i] = 0
		}
		f.current = 1
		return
	}
	f.current++
}
