/*
 * rigid.go, part of closepairs.
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

// RigidFinder finds close pairs among loose spheres and the members of
// rigid clusters. Each cluster is replaced by its bounding sphere, the base
// finder runs over the loose and bounding spheres, and each hit that
// involves a cluster is expanded by descending its ClusterTree. Pairs
// inside one cluster are never reported.
type RigidFinder struct {
	base    Finder
	trees   *TreeCache
	filters *FilterChain
}

// NewRigidFinder returns a RigidFinder over base, or over the finder O
// asks for if base is nil. O may be nil.
func NewRigidFinder(base Finder, O *Options) (*RigidFinder, error) {
	if O == nil {
		O = DefaultOptions()
	}
	if err := O.Check(); err != nil {
		return nil, errDecorate(err, "NewRigidFinder")
	}
	var err error
	if base == nil {
		if base, err = NewFinder(O); err != nil {
			return nil, errDecorate(err, "NewRigidFinder")
		}
	}
	trees, err := NewTreeCache(O.leafSize)
	if err != nil {
		return nil, errDecorate(err, "NewRigidFinder")
	}
	return &RigidFinder{base: base, trees: trees, filters: NewFilterChain()}, nil
}

func (R *RigidFinder) Distance() float64 {
	return R.base.Distance()
}

func (R *RigidFinder) SetDistance(d float64) error {
	return errDecorate(R.base.SetDistance(d), "RigidFinder.SetDistance")
}

// Base returns the finder used on the coarse spheres.
func (R *RigidFinder) Base() Finder {
	return R.base
}

// Trees returns the cache of cluster trees.
func (R *RigidFinder) Trees() *TreeCache {
	return R.trees
}

// AddFilter appends f to the filters applied to every reported pair.
func (R *RigidFinder) AddFilter(f PairFilter) {
	R.filters.Add(f)
}

// coarseSet is one side of a query, with loose spheres and clusters each
// standing for one coarse sphere.
type coarseSet struct {
	spheres  []Sphere
	loose    []Sphere
	clusters []*RigidCluster
	in       []map[int]bool //members of the cluster in the query, nil for all
}

// divide builds the coarse set for s. The coarse sphere k gets the ID
// k+offset.
func divide(s []Sphere, src SphereSource, offset int) coarseSet {
	var cs coarseSet
	byCluster := make(map[int]int)
	for _, v := range s {
		C, ok := src.ClusterOf(v.ID)
		if !ok {
			cs.loose = append(cs.loose, v)
			cs.clusters = append(cs.clusters, nil)
			cs.in = append(cs.in, nil)
			v.ID = len(cs.spheres) + offset
			cs.spheres = append(cs.spheres, v)
			continue
		}
		k, seen := byCluster[C.ID]
		if !seen {
			k = len(cs.spheres)
			byCluster[C.ID] = k
			b := C.BoundingSphere()
			b.Radius += roundingMargin(b)
			b.ID = k + offset
			cs.spheres = append(cs.spheres, b)
			cs.loose = append(cs.loose, Sphere{})
			cs.clusters = append(cs.clusters, C)
			cs.in = append(cs.in, make(map[int]bool))
		}
		cs.in[k][v.ID] = true
	}
	for k, C := range cs.clusters {
		if C != nil && len(cs.in[k]) == C.Len() {
			cs.in[k] = nil
		}
	}
	return cs
}

func (cs *coarseSet) has(k, member int) bool {
	return cs.in[k] == nil || cs.in[k][member]
}

func (cs *coarseSet) nclusters() int {
	n := 0
	for _, C := range cs.clusters {
		if C != nil {
			n++
		}
	}
	return n
}

// ClosePairs returns the close pairs among all the spheres of src.
func (R *RigidFinder) ClosePairs(src SphereSource) (Pairs, error) {
	return R.ClosePairsOf(src.Spheres(), src)
}

// ClosePairsOf returns the close pairs among the spheres of s, which
// src tells apart as loose or cluster members.
func (R *RigidFinder) ClosePairsOf(s []Sphere, src SphereSource) (Pairs, error) {
	if err := checkSpheres("RigidFinder.ClosePairsOf", s); err != nil {
		return nil, err
	}
	cs := divide(s, src, 0)
	hits, err := R.base.ClosePairs(cs.spheres)
	if err != nil {
		return nil, errDecorate(err, "RigidFinder.ClosePairsOf")
	}
	var out Pairs
	for _, h := range hits {
		if out, err = R.expand(&cs, h.A, &cs, h.B, out); err != nil {
			return nil, errDecorate(err, "RigidFinder.ClosePairsOf")
		}
	}
	out = R.filters.Apply(out.Canonical())
	Diagf("rigid: %d loose, %d clusters, %d coarse hits, %d pairs", len(cs.spheres)-cs.nclusters(), cs.nclusters(), len(hits), len(out))
	return out, nil
}

// BipartiteClosePairs returns the close pairs with one sphere in a and
// the other in b.
func (R *RigidFinder) BipartiteClosePairs(a, b []Sphere, src SphereSource) (Pairs, error) {
	if err := checkSpheres("RigidFinder.BipartiteClosePairs", a); err != nil {
		return nil, err
	}
	if err := checkSpheres("RigidFinder.BipartiteClosePairs", b); err != nil {
		return nil, err
	}
	ca := divide(a, src, 0)
	off := len(ca.spheres)
	cb := divide(b, src, off)
	hits, err := R.base.BipartiteClosePairs(ca.spheres, cb.spheres)
	if err != nil {
		return nil, errDecorate(err, "RigidFinder.BipartiteClosePairs")
	}
	var out Pairs
	for _, h := range hits {
		if out, err = R.expand(&ca, h.A, &cb, h.B-off, out); err != nil {
			return nil, errDecorate(err, "RigidFinder.BipartiteClosePairs")
		}
	}
	return R.filters.Apply(out.Canonical()), nil
}

// expand appends the fine pairs behind the coarse hit (i in x, j in y).
func (R *RigidFinder) expand(x *coarseSet, i int, y *coarseSet, j int, out Pairs) (Pairs, error) {
	d := R.base.Distance()
	cx, cy := x.clusters[i], y.clusters[j]
	add := func(a, b int) {
		if a != b {
			out = append(out, NewPair(a, b))
		}
	}
	switch {
	case cx == nil && cy == nil:
		add(x.loose[i].ID, y.loose[j].ID)
	case cx == nil || cy == nil:
		s, C, cs, k := x.loose[i], cy, y, j
		if cy == nil {
			s, C, cs, k = y.loose[j], cx, x, i
		}
		t, err := R.trees.Tree(C)
		if err != nil {
			return out, err
		}
		t.ApplyToNearbySphere(s, d, func(m int) {
			if cs.has(k, m) {
				add(s.ID, m)
			}
		})
	case cx.ID != cy.ID:
		ta, err := R.trees.Tree(cx)
		if err != nil {
			return out, err
		}
		tb, err := R.trees.Tree(cy)
		if err != nil {
			return out, err
		}
		ApplyToNearby(ta, tb, d, func(ma, mb int) {
			if x.has(i, ma) && y.has(j, mb) {
				add(ma, mb)
			}
		})
	}
	return out, nil
}
