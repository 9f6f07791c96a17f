/*
 * pair.go, part of closepairs.
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

import (
	"fmt"
	"sort"
)

// Pair is an unordered pair of object IDs, stored with A < B.
type Pair struct {
	A, B int
}

// NewPair returns the canonical pair for a and b.
func NewPair(a, b int) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{a, b}
}

func (p Pair) String() string { return fmt.Sprintf("(%d,%d)", p.A, p.B) }

// Pairs is a list of pairs.
type Pairs []Pair

func (P Pairs) Len() int      { return len(P) }
func (P Pairs) Swap(i, j int) { P[i], P[j] = P[j], P[i] }
func (P Pairs) Less(i, j int) bool { return lessPair(P[i], P[j]) }

// Canonical sorts P in place, drops duplicates and self pairs, and
// returns the resulting slice, which shares storage with P.
func (P Pairs) Canonical() Pairs {
	for i, p := range P {
		P[i] = NewPair(p.A, p.B)
	}
	sort.Sort(P)
	out := P[:0]
	for _, p := range P {
		if p.A == p.B {
			continue
		}
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Contains tells whether p (in any order) is in P, which must be canonical.
func (P Pairs) Contains(p Pair) bool {
	p = NewPair(p.A, p.B)
	i := sort.Search(len(P), func(i int) bool { return !lessPair(P[i], p) })
	return i < len(P) && P[i] == p
}

func lessPair(a, b Pair) bool {
	if a.A != b.A {
		return a.A < b.A
	}
	return a.B < b.B
}

// Set returns the pairs of P as a set.
func (P Pairs) Set() map[Pair]struct{} {
	ret := make(map[Pair]struct{}, len(P))
	for _, p := range P {
		ret[NewPair(p.A, p.B)] = struct{}{}
	}
	return ret
}

// Missing returns the pairs of want that are not in P, in canonical order.
func (P Pairs) Missing(want Pairs) Pairs {
	have := P.Set()
	var ret Pairs
	for _, p := range want {
		if _, ok := have[NewPair(p.A, p.B)]; !ok {
			ret = append(ret, NewPair(p.A, p.B))
		}
	}
	return ret.Canonical()
}

// canonicalIndexPairs sorts and deduplicates index pairs, putting the
// smaller index first when sym is true.
func canonicalIndexPairs(p [][2]int, sym bool) [][2]int {
	if sym {
		for i, v := range p {
			if v[0] > v[1] {
				p[i] = [2]int{v[1], v[0]}
			}
		}
	}
	sort.Slice(p, func(i, j int) bool {
		if p[i][0] != p[j][0] {
			return p[i][0] < p[j][0]
		}
		return p[i][1] < p[j][1]
	})
	out := p[:0]
	for _, v := range p {
		if sym && v[0] == v[1] {
			continue
		}
		if len(out) > 0 && out[len(out)-1] == v {
			continue
		}
		out = append(out, v)
	}
	return out
}
