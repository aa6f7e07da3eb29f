package scan

import "sync"

// dedupSet tracks (address, category) pairs already admitted during the
// current session so repeat advertisements are suppressed.
type dedupSet struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func newDedupSet() *dedupSet {
	return &dedupSet{seen: make(map[string]struct{})}
}

// add inserts the pair and reports whether it was newly admitted.
func (s *dedupSet) add(ip, category string) bool {
	key := ip + "|" + category

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = struct{}{}
	return true
}

// clear discards all admitted pairs.
func (s *dedupSet) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen = make(map[string]struct{})
}
