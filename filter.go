/*
 * filter.go, part of closepairs.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package closepairs

// FilterFunc adapts a function to the PairFilter interface.
type FilterFunc func(a, b int) bool

func (f FilterFunc) Excluded(a, b int) bool { return f(a, b) }

// FilterChain is an ordered list of filters. A pair is dropped if any
// filter excludes it. The zero FilterChain excludes nothing.
type FilterChain struct {
	filters []PairFilter
}

// NewFilterChain returns a chain with the given filters.
func NewFilterChain(f ...PairFilter) *FilterChain {
	F := new(FilterChain)
	for _, v := range f {
		F.Add(v)
	}
	return F
}

// Add appends f to the chain. A nil f is ignored.
func (F *FilterChain) Add(f PairFilter) {
	if f != nil {
		F.filters = append(F.filters, f)
	}
}

// Len returns the number of filters in the chain.
func (F *FilterChain) Len() int {
	if F == nil {
		return 0
	}
	return len(F.filters)
}

// Excluded tells whether some filter in the chain excludes the pair.
func (F *FilterChain) Excluded(a, b int) bool {
	if F == nil {
		return false
	}
	for _, f := range F.filters {
		if f.Excluded(a, b) {
			return true
		}
	}
	return false
}

// Apply removes from P, in place, the pairs the chain excludes, and
// returns the shortened slice.
func (F *FilterChain) Apply(P Pairs) Pairs {
	if F.Len() == 0 {
		return P
	}
	out := P[:0]
	for _, p := range P {
		if !F.Excluded(p.A, p.B) {
			out = append(out, p)
		}
	}
	return out
}

// SameClusterFilter excludes the pairs whose two spheres belong to the
// same cluster of src.
func SameClusterFilter(src SphereSource) PairFilter {
	return FilterFunc(func(a, b int) bool {
		ca, oka := src.ClusterOf(a)
		cb, okb := src.ClusterOf(b)
		return oka && okb && ca.ID == cb.ID
	})
}

// ExclusionList excludes an explicit set of pairs.
type ExclusionList struct {
	set map[Pair]struct{}
}

// NewExclusionList returns a list excluding the given pairs, in any order.
func NewExclusionList(p ...Pair) *ExclusionList {
	E := &ExclusionList{set: make(map[Pair]struct{}, len(p))}
	E.Add(p...)
	return E
}

// Add adds pairs to the list.
func (E *ExclusionList) Add(p ...Pair) {
	for _, v := range p {
		E.set[NewPair(v.A, v.B)] = struct{}{}
	}
}

func (E *ExclusionList) Excluded(a, b int) bool {
	_, ok := E.set[NewPair(a, b)]
	return ok
}

// Len returns the number of excluded pairs.
func (E *ExclusionList) Len() int {
	return len(E.set)
}
