package triggers

// NameSet tracks trigger names already claimed during a merge. It is passed
// explicitly through Merge and Disambiguate rather than held globally.
type NameSet struct {
	used map[string]struct{}
}

// NewNameSet returns a set seeded with names.
func NewNameSet(names ...string) *NameSet {
	s := &NameSet{used: make(map[string]struct{}, len(names))}
	for _, name := range names {
		s.used[name] = struct{}{}
	}
	return s
}

// Has reports whether name is already claimed.
func (s *NameSet) Has(name string) bool {
	_, ok := s.used[name]
	return ok
}

// Claim records name and reports true if it was not yet in use.
func (s *NameSet) Claim(name string) bool {
	if s.Has(name) {
		return false
	}
	s.used[name] = struct{}{}
	return true
}

// Len returns the number of claimed names.
func (s *NameSet) Len() int {
	return len(s.used)
}
