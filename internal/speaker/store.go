package speaker

import "sort"

// Store holds the session's speaker profiles with get-or-create semantics.
// Profiles live for the session lifetime; memory is bounded by the number of
// distinct speaker ids, not token volume.
type Store struct {
	profiles map[int]*Profile
}

// NewStore creates an empty profile store.
func NewStore() *Store {
	return &Store{profiles: map[int]*Profile{}}
}

// Get returns the profile for id, creating it on first reference.
func (s *Store) Get(id int) *Profile {
	profile, ok := s.profiles[id]
	if !ok {
		profile = NewProfile(id)
		s.profiles[id] = profile
	}
	return profile
}

// Lookup returns the profile for id without creating one.
func (s *Store) Lookup(id int) (*Profile, bool) {
	profile, ok := s.profiles[id]
	return profile, ok
}

// Len returns the number of known speakers.
func (s *Store) Len() int {
	return len(s.profiles)
}

// IDs returns speaker ids sorted ascending for stable display ordering.
func (s *Store) IDs() []int {
	ids := make([]int, 0, len(s.profiles))
	for id := range s.profiles {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Put installs a restored profile, replacing any existing entry.
func (s *Store) Put(profile *Profile) {
	if profile == nil {
		return
	}
	s.profiles[profile.ID] = profile
}
