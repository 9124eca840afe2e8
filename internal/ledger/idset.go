package ledger

import "slices"

// IDSet is a set of transaction ids. The zero value is an empty, read-only set.
type IDSet map[string]struct{}

func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}

	return s
}

func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) Add(id string) {
	s[id] = struct{}{}
}

func (s IDSet) Len() int {
	return len(s)
}

// Union returns a new set holding the members of s and o.
func (s IDSet) Union(o IDSet) IDSet {
	u := make(IDSet, len(s)+len(o))
	for id := range s {
		u[id] = struct{}{}
	}

	for id := range o {
		u[id] = struct{}{}
	}

	return u
}

// Sorted returns the members in lexical order.
func (s IDSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	return ids
}
