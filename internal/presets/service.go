// Package presets holds the named shortcuts used for quick-add expenses.
package presets

import "strings"

// Service provides lookup over quick-add names.
type Service struct {
	names []string
	byKey map[string]string
}

// NewService creates a Service from names. Blank and duplicate names
// (ignoring case) are dropped; the first spelling wins.
func NewService(names []string) *Service {
	s := &Service{byKey: make(map[string]string, len(names))}
	for _, n := range names {
		key := normalize(n)
		if key == "" {
			continue
		}
		if _, dup := s.byKey[key]; dup {
			continue
		}
		s.byKey[key] = n
		s.names = append(s.names, n)
	}
	return s
}

// Default returns a Service over DefaultNames.
func Default() *Service {
	return NewService(DefaultNames())
}

// All returns every preset name in order.
func (s *Service) All() []string {
	return s.names
}

// Lookup returns the preset spelled like name, ignoring case and
// surrounding whitespace.
func (s *Service) Lookup(name string) (string, bool) {
	n, ok := s.byKey[normalize(name)]
	return n, ok
}

func normalize(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
