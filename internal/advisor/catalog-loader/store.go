package catalogloader

import "sync"

// RegionStore holds the current state → districts mapping. Initialize is
// the only writer; change handlers read it.
type RegionStore struct {
	mu      sync.RWMutex
	regions []string
	mapping map[string][]string
	source  Source
}

func NewRegionStore() *RegionStore {
	return &RegionStore{mapping: map[string][]string{}}
}

// Replace swaps in a whole catalog. The store keeps its own copies.
func (s *RegionStore) Replace(c RegionCatalog) {
	mapping := make(map[string][]string, len(c.Mapping))
	for k, v := range c.Mapping {
		mapping[k] = append([]string(nil), v...)
	}

	s.mu.Lock()
	s.regions = append([]string(nil), c.Regions...)
	s.mapping = mapping
	s.source = c.Source
	s.mu.Unlock()
}

// SubRegions returns a copy of the districts for key.
func (s *RegionStore) SubRegions(key string) ([]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	subs, ok := s.mapping[key]
	if !ok {
		return nil, false
	}
	return append([]string(nil), subs...), true
}

func (s *RegionStore) Snapshot() RegionCatalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	mapping := make(map[string][]string, len(s.mapping))
	for k, v := range s.mapping {
		mapping[k] = append([]string(nil), v...)
	}
	return RegionCatalog{
		Regions: append([]string(nil), s.regions...),
		Mapping: mapping,
		Source:  s.source,
	}
}
