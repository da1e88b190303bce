package tunemill

import "sort"

// PropertySet is a simple Target that stores the last value written to each
// property. Hosts read it back when drawing.
type PropertySet struct {
	values map[Property]Value
}

// NewPropertySet returns an empty set.
func NewPropertySet() *PropertySet {
	return &PropertySet{values: make(map[Property]Value, 4)}
}

// SetProperty implements Target.
func (s *PropertySet) SetProperty(p Property, v Value) {
	s.values[p] = v
}

// Get returns the value of p and whether it was ever set.
func (s *PropertySet) Get(p Property) (Value, bool) {
	v, ok := s.values[p]
	return v, ok
}

// Color returns p as a color, or def when p was never set.
func (s *PropertySet) Color(p Property, def Color) Color {
	if v, ok := s.values[p]; ok {
		return v.Color()
	}
	return def
}

// Scalar returns p as a scalar, or def when p was never set.
func (s *PropertySet) Scalar(p Property, def float64) float64 {
	if v, ok := s.values[p]; ok {
		return v.Scalar()
	}
	return def
}

// Targets is an in-memory Resolver keyed by TargetID. Removing a target
// makes every animation bound to it drop on the next tick.
type Targets struct {
	sets map[TargetID]*PropertySet
}

// NewTargets returns an empty registry.
func NewTargets() *Targets {
	return &Targets{sets: make(map[TargetID]*PropertySet)}
}

// Register returns the set for id, creating it if needed.
func (t *Targets) Register(id TargetID) *PropertySet {
	if s, ok := t.sets[id]; ok {
		return s
	}
	s := NewPropertySet()
	t.sets[id] = s
	return s
}

// Remove deletes id.
func (t *Targets) Remove(id TargetID) {
	delete(t.sets, id)
}

// Get returns the set for id.
func (t *Targets) Get(id TargetID) (*PropertySet, bool) {
	s, ok := t.sets[id]
	return s, ok
}

// IDs returns the registered identifiers in sorted order.
func (t *Targets) IDs() []TargetID {
	ids := make([]TargetID, 0, len(t.sets))
	for id := range t.sets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Resolve implements Resolver.
func (t *Targets) Resolve(id TargetID) (Target, bool) {
	s, ok := t.sets[id]
	if !ok {
		return nil, false
	}
	return s, true
}
