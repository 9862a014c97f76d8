package entity

import (
	"fmt"
	"sort"
)

// Well-known collision layers
const (
	LayerGround LayerMask = 1 << iota
	LayerPlatform
	LayerPlayer
)

// LayerRegistry maps layer names used in configuration to mask bits
type LayerRegistry struct {
	names map[string]LayerMask
	next  uint
}

// NewLayerRegistry creates a registry pre-populated with the built-in layers
func NewLayerRegistry() *LayerRegistry {
	return &LayerRegistry{
		names: map[string]LayerMask{
			"ground":   LayerGround,
			"platform": LayerPlatform,
			"player":   LayerPlayer,
		},
		next: 3,
	}
}

// Register adds a named layer and returns its bit
func (r *LayerRegistry) Register(name string) (LayerMask, error) {
	if m, ok := r.names[name]; ok {
		return m, nil
	}
	if r.next >= 32 {
		return 0, fmt.Errorf("layer %q: no free layer bits", name)
	}
	m := LayerMask(1) << r.next
	r.next++
	r.names[name] = m
	return m, nil
}

// Lookup returns the bit for a layer name
func (r *LayerRegistry) Lookup(name string) (LayerMask, bool) {
	m, ok := r.names[name]
	return m, ok
}

// Mask combines the bits of several layers. Unknown names are returned
// separately and contribute nothing to the mask.
func (r *LayerRegistry) Mask(names ...string) (LayerMask, []string) {
	var mask LayerMask
	var unknown []string
	for _, n := range names {
		m, ok := r.names[n]
		if !ok {
			unknown = append(unknown, n)
			continue
		}
		mask |= m
	}
	return mask, unknown
}

// Names returns the registered layer names whose bits are set in mask, sorted
func (r *LayerRegistry) Names(mask LayerMask) []string {
	var names []string
	for n, m := range r.names {
		if mask.Has(m) {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}
