/*
 * bondfilter.go, part of closepairs.
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
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

// BondGraphFilter excludes the pairs of spheres joined by a path of at
// most depth bonds. With depth 1 it excludes bonded pairs, with depth 2
// it also excludes pairs bonded to a common sphere, and so on.
type BondGraphFilter struct {
	g     *simple.UndirectedGraph
	depth int
	near  map[int64]map[int64]bool
}

// NewBondGraphFilter builds the bond graph from bonds, pairs of sphere IDs.
func NewBondGraphFilter(bonds []Pair, depth int) (*BondGraphFilter, error) {
	if depth < 1 {
		return nil, newConfigError("NewBondGraphFilter", "depth must be at least 1, got %d", depth)
	}
	B := &BondGraphFilter{g: simple.NewUndirectedGraph(), depth: depth, near: make(map[int64]map[int64]bool)}
	for _, b := range bonds {
		if b.A == b.B {
			return nil, newConfigError("NewBondGraphFilter", "sphere %d is bonded to itself", b.A)
		}
		B.g.SetEdge(B.g.NewEdge(simple.Node(b.A), simple.Node(b.B)))
	}
	return B, nil
}

// Bonds returns the number of bonds in the graph.
func (B *BondGraphFilter) Bonds() int {
	return B.g.Edges().Len()
}

func (B *BondGraphFilter) Excluded(a, b int) bool {
	if B.g.Node(int64(a)) == nil || B.g.Node(int64(b)) == nil {
		return false
	}
	return B.within(int64(a))[int64(b)]
}

// within returns the spheres at most depth bonds away from id. The result
// is kept, since the same sphere shows up in many pairs.
func (B *BondGraphFilter) within(id int64) map[int64]bool {
	if s, ok := B.near[id]; ok {
		return s
	}
	s := make(map[int64]bool)
	var bf traverse.BreadthFirst
	bf.Walk(B.g, simple.Node(id), func(n graph.Node, d int) bool {
		if d > B.depth {
			return true
		}
		if n.ID() != id {
			s[n.ID()] = true
		}
		return false
	})
	B.near[id] = s
	return s
}
