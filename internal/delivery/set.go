package delivery

// mapZipSet implements ZipSet using a map for O(1) lookups.
type mapZipSet struct {
	zips map[string]struct{}
}

// NewMapZipSet creates a new map-based zip set.
func NewMapZipSet(capacity int) ZipSet {
	return &mapZipSet{
		zips: make(map[string]struct{}, capacity),
	}
}

// Contains checks if a zip code is covered.
func (s *mapZipSet) Contains(zipCode string) bool {
	_, exists := s.zips[zipCode]
	return exists
}

// Size returns the number of zip codes in the set.
func (s *mapZipSet) Size() int {
	return len(s.zips)
}

// Add adds a zip code to the set.
func (s *mapZipSet) Add(zipCode string) {
	s.zips[zipCode] = struct{}{}
}
