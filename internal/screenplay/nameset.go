package screenplay

import "encoding/json"

// NameSet is a de-duplicating collection of character names that preserves
// first-appearance order. Iteration and JSON output are deterministic.
type NameSet struct {
	names []string
	index map[string]struct{}
}

func NewNameSet() *NameSet {
	return &NameSet{index: make(map[string]struct{})}
}

// Add inserts a name if not already present. Returns true if it was new.
func (s *NameSet) Add(name string) bool {
	if _, ok := s.index[name]; ok {
		return false
	}
	s.index[name] = struct{}{}
	s.names = append(s.names, name)
	return true
}

func (s *NameSet) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

func (s *NameSet) Len() int {
	return len(s.names)
}

// Names returns the names in first-appearance order.
func (s *NameSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// MarshalJSON renders the set as an ordered array, never null.
func (s *NameSet) MarshalJSON() ([]byte, error) {
	names := s.names
	if names == nil {
		names = []string{}
	}
	return json.Marshal(names)
}

func (s *NameSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	s.names = nil
	s.index = make(map[string]struct{}, len(names))
	for _, n := range names {
		s.Add(n)
	}
	return nil
}
