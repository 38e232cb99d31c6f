package dataflow

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mpyw/liveness/internal/ir"
)

// SlotSet is a set of slots.
// The zero value is not usable; create sets with NewSlotSet.
type SlotSet map[ir.SlotID]struct{}

// NewSlotSet returns a set holding the given slots.
func NewSlotSet(slots ...ir.SlotID) SlotSet {
	s := make(SlotSet, len(slots))
	for _, id := range slots {
		s.Add(id)
	}
	return s
}

// Add inserts id and reports whether it was absent.
func (s SlotSet) Add(id ir.SlotID) bool {
	if _, ok := s[id]; ok {
		return false
	}
	s[id] = struct{}{}
	return true
}

// Has reports whether id is in the set.
func (s SlotSet) Has(id ir.SlotID) bool {
	_, ok := s[id]
	return ok
}

// Clone returns an independent copy.
func (s SlotSet) Clone() SlotSet {
	rs := make(SlotSet, len(s))
	for id := range s {
		rs[id] = struct{}{}
	}
	return rs
}

// AddAll inserts every element of o.
func (s SlotSet) AddAll(o SlotSet) {
	for id := range o {
		s[id] = struct{}{}
	}
}

// AddDifference inserts every element of a that is not in b.
func (s SlotSet) AddDifference(a, b SlotSet) {
	for id := range a {
		if !b.Has(id) {
			s[id] = struct{}{}
		}
	}
}

// HasAnyNotIn reports whether s contains an element absent from o.
func (s SlotSet) HasAnyNotIn(o SlotSet) bool {
	for id := range s {
		if !o.Has(id) {
			return true
		}
	}
	return false
}

// SubsetOf reports whether every element of s is in o.
func (s SlotSet) SubsetOf(o SlotSet) bool {
	return !s.HasAnyNotIn(o)
}

// Equal reports whether both sets hold the same slots.
func (s SlotSet) Equal(o SlotSet) bool {
	return len(s) == len(o) && s.SubsetOf(o)
}

// Sorted returns the elements ordered by slot ID.
func (s SlotSet) Sorted() []ir.SlotID {
	ids := make([]ir.SlotID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})
	return ids
}

// Names renders the elements as slot names of fn, ordered by slot ID.
func (s SlotSet) Names(fn *ir.Function) []string {
	ids := s.Sorted()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = fn.Slot(id).Name
	}
	return names
}

func (s SlotSet) String() string {
	ids := s.Sorted()
	rs := make([]string, len(ids))
	for i, id := range ids {
		rs[i] = fmt.Sprintf("%%%d", id)
	}
	return fmt.Sprintf("{%s}", strings.Join(rs, ", "))
}
