/*
 * tree.go, part of closepairs.
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
	"container/heap"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// treeNode is a node of a ClusterTree. Its sphere is in the local frame
// of the cluster and encloses the spheres of every member below it.
type treeNode struct {
	center   r3.Vec
	radius   float64
	children []int //node indexes, nil for a leaf
	members  []int //member positions in the cluster, leaves only
}

// ClusterTree is a bounding-sphere hierarchy over the members of a rigid
// cluster. It is built in the local frame, so moving the cluster does not
// invalidate it, and world-frame spheres are computed from the current
// transform of the cluster on each query. A change in the cluster Version
// does invalidate it.
type ClusterTree struct {
	cluster  *RigidCluster
	version  uint64
	leafSize int
	nodes    []treeNode
}

// NewClusterTree builds the tree for C, splitting each node in two halves
// along the principal axis of its member centers until it has at most
// leafSize members.
func NewClusterTree(C *RigidCluster, leafSize int) (*ClusterTree, error) {
	if C == nil || C.Len() == 0 {
		return nil, newConfigError("NewClusterTree", "the cluster is nil or empty")
	}
	if leafSize < 1 {
		return nil, newConfigError("NewClusterTree", "leaf size must be positive, got %d", leafSize)
	}
	if C.Local == nil || C.Local.NVecs() != C.Len() || len(C.Radii) != C.Len() {
		return nil, newConfigError("NewClusterTree", "cluster %d has %d members but inconsistent coordinates or radii", C.ID, C.Len())
	}
	T := &ClusterTree{cluster: C, version: C.Version, leafSize: leafSize}
	type job struct {
		node    int
		members []int
	}
	all := seq(C.Len())
	T.nodes = append(T.nodes, treeNode{})
	stack := []job{{0, all}}
	for len(stack) > 0 {
		j := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		b := T.enclose(j.members)
		T.nodes[j.node].center = b.Center
		T.nodes[j.node].radius = b.Radius
		if len(j.members) <= leafSize {
			T.nodes[j.node].members = j.members
			continue
		}
		left, right := T.split(j.members)
		l := len(T.nodes)
		T.nodes = append(T.nodes, treeNode{}, treeNode{})
		T.nodes[j.node].children = []int{l, l + 1}
		stack = append(stack, job{l, left}, job{l + 1, right})
	}
	Diagf("tree: cluster %d, %d members, %d nodes", C.ID, C.Len(), len(T.nodes))
	return T, nil
}

func (T *ClusterTree) localSphere(m int) Sphere {
	return Sphere{ID: T.cluster.Members[m], Center: T.cluster.Local.Vec(m), Radius: T.cluster.Radii[m]}
}

func (T *ClusterTree) enclose(members []int) Sphere {
	s := make([]Sphere, len(members))
	for i, m := range members {
		s[i] = T.localSphere(m)
	}
	return EnclosingSphere(s)
}

// split sorts members by their projection on the principal axis and cuts
// the list in half. If the axis can't be obtained, the coordinate axis
// of greatest extent is used.
func (T *ClusterTree) split(members []int) ([]int, []int) {
	ax, err := T.cluster.Local.PrincipalAxis(members)
	if err != nil {
		local := make([]Sphere, len(members))
		for i, m := range members {
			local[i] = T.localSphere(m)
		}
		size := centerBox(local, seq(len(local))).Size()
		switch {
		case size.X >= size.Y && size.X >= size.Z:
			ax = r3.Vec{X: 1}
		case size.Y >= size.Z:
			ax = r3.Vec{Y: 1}
		default:
			ax = r3.Vec{Z: 1}
		}
	}
	sorted := make([]int, len(members))
	copy(sorted, members)
	proj := make(map[int]float64, len(members))
	for _, m := range members {
		proj[m] = r3.Dot(T.cluster.Local.Vec(m), ax)
	}
	sort.SliceStable(sorted, func(i, j int) bool { return proj[sorted[i]] < proj[sorted[j]] })
	h := len(sorted) / 2
	return sorted[:h], sorted[h:]
}

// node returns the node i, checking that the tree still matches its cluster.
func (T *ClusterTree) node(i int) *treeNode {
	if T.version != T.cluster.Version {
		inconsistent("ClusterTree.node", "tree built for version %d of cluster %d, which is now at version %d", T.version, T.cluster.ID, T.cluster.Version)
	}
	if i < 0 || i >= len(T.nodes) {
		inconsistent("ClusterTree.node", "node %d does not exist in a tree of %d nodes", i, len(T.nodes))
	}
	return &T.nodes[i]
}

// nodeSphere returns the world-frame sphere of node i, grown by the
// rounding margin so it still encloses the members computed in the world
// frame.
func (T *ClusterTree) nodeSphere(i int) Sphere {
	n := T.node(i)
	s := Sphere{ID: i, Center: T.cluster.Transform.Apply(n.center), Radius: n.radius}
	s.Radius += roundingMargin(s)
	return s
}

func (T *ClusterTree) leaf(i int) bool {
	return T.node(i).children == nil
}

// Cluster returns the cluster T was built for.
func (T *ClusterTree) Cluster() *RigidCluster {
	return T.cluster
}

// Version returns the cluster version T was built for.
func (T *ClusterTree) Version() uint64 {
	return T.version
}

// Len returns the number of nodes in T. Node 0 is the root.
func (T *ClusterTree) Len() int {
	return len(T.nodes)
}

// Members returns the sphere IDs of the members below node.
func (T *ClusterTree) Members(node int) []int {
	var ret []int
	stack := []int{node}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := T.node(i)
		for _, m := range n.members {
			ret = append(ret, T.cluster.Members[m])
		}
		stack = append(stack, n.children...)
	}
	sort.Ints(ret)
	return ret
}

// Validate checks that every node encloses the members below it and that
// every member sits in exactly one leaf.
func (T *ClusterTree) Validate() error {
	const tol = 1e-9
	count := make([]int, T.cluster.Len())
	for i := range T.nodes {
		n := T.node(i)
		var below []int
		stack := []int{i}
		for len(stack) > 0 {
			k := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			below = append(below, T.nodes[k].members...)
			stack = append(stack, T.nodes[k].children...)
		}
		for _, m := range below {
			s := T.localSphere(m)
			if r3.Norm(r3.Sub(s.Center, n.center))+s.Radius > n.radius*(1+tol)+tol {
				return &ConsistencyError{message: "node does not enclose member", deco: []string{"Validate"}}
			}
		}
		for _, m := range n.members {
			count[m]++
		}
	}
	for m, c := range count {
		if c != 1 {
			return &ConsistencyError{message: "member is not in exactly one leaf", deco: []string{"Validate", fmt.Sprintf("member %d", T.cluster.Members[m])}}
		}
	}
	return nil
}

// queued is an entry of the best-first queues: a node (or a pair of
// nodes) and a lower bound of the distance it can yield.
type queued struct {
	bound float64
	a, b  int
}

type nodeQueue []queued

func (q nodeQueue) Len() int            { return len(q) }
func (q nodeQueue) Less(i, j int) bool  { return q[i].bound < q[j].bound }
func (q nodeQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *nodeQueue) Push(x interface{}) { *q = append(*q, x.(queued)) }
func (q *nodeQueue) Pop() interface{} {
	old := *q
	it := old[len(old)-1]
	*q = old[:len(old)-1]
	return it
}

// ClosestMember returns the sphere ID of the member whose surface is
// closest to that of q, and the surface distance, negative on overlap.
func (T *ClusterTree) ClosestMember(q Sphere) (int, float64) {
	best, id := math.Inf(1), -1
	pq := &nodeQueue{{bound: SurfaceDistance(T.nodeSphere(0), q)}}
	for pq.Len() > 0 {
		it := heap.Pop(pq).(queued)
		if it.bound >= best {
			break
		}
		n := T.node(it.a)
		for _, m := range n.members {
			if d := SurfaceDistance(T.cluster.Member(m), q); d < best {
				best, id = d, T.cluster.Members[m]
			}
		}
		for _, c := range n.children {
			if d := SurfaceDistance(T.nodeSphere(c), q); d < best {
				heap.Push(pq, queued{bound: d, a: c})
			}
		}
	}
	return id, best
}

// expand returns the node pairs that replace the pair (i, j) of nodes of
// a and b: the larger internal node is split.
func expand(a, b *ClusterTree, i, j int) [][2]int {
	la, lb := a.leaf(i), b.leaf(j)
	var ret [][2]int
	switch {
	case la && lb:
		return nil
	case la || (!lb && b.node(j).radius > a.node(i).radius):
		for _, c := range b.node(j).children {
			ret = append(ret, [2]int{i, c})
		}
	default:
		for _, c := range a.node(i).children {
			ret = append(ret, [2]int{c, j})
		}
	}
	return ret
}

// ClosestPair returns the sphere IDs of the closest pair of members, one
// from a and one from b, and their surface distance.
func ClosestPair(a, b *ClusterTree) (int, int, float64) {
	best, ma, mb := math.Inf(1), -1, -1
	pq := &nodeQueue{{bound: SurfaceDistance(a.nodeSphere(0), b.nodeSphere(0))}}
	for pq.Len() > 0 {
		it := heap.Pop(pq).(queued)
		if it.bound >= best {
			break
		}
		if a.leaf(it.a) && b.leaf(it.b) {
			for _, i := range a.node(it.a).members {
				si := a.cluster.Member(i)
				for _, j := range b.node(it.b).members {
					if d := SurfaceDistance(si, b.cluster.Member(j)); d < best {
						best, ma, mb = d, si.ID, b.cluster.Members[j]
					}
				}
			}
			continue
		}
		for _, p := range expand(a, b, it.a, it.b) {
			if d := SurfaceDistance(a.nodeSphere(p[0]), b.nodeSphere(p[1])); d < best {
				heap.Push(pq, queued{bound: d, a: p[0], b: p[1]})
			}
		}
	}
	return ma, mb, best
}

// ApplyToNearby calls fn with the sphere IDs of every pair of members, one
// of a and one of b, whose surfaces are within d. Node pairs farther
// apart than d are skipped whole.
func ApplyToNearby(a, b *ClusterTree, d float64, fn func(ma, mb int)) {
	stack := [][2]int{{0, 0}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !Close(a.nodeSphere(p[0]), b.nodeSphere(p[1]), d) {
			continue
		}
		if a.leaf(p[0]) && b.leaf(p[1]) {
			for _, i := range a.node(p[0]).members {
				si := a.cluster.Member(i)
				for _, j := range b.node(p[1]).members {
					if sj := b.cluster.Member(j); Close(si, sj, d) {
						fn(si.ID, sj.ID)
					}
				}
			}
			continue
		}
		stack = append(stack, expand(a, b, p[0], p[1])...)
	}
}

// ApplyToNearbySphere calls fn with the sphere ID of every member of T
// whose surface is within d of that of s.
func (T *ClusterTree) ApplyToNearbySphere(s Sphere, d float64, fn func(m int)) {
	stack := []int{0}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !Close(T.nodeSphere(i), s, d) {
			continue
		}
		n := T.node(i)
		for _, m := range n.members {
			if sm := T.cluster.Member(m); Close(sm, s, d) {
				fn(sm.ID)
			}
		}
		stack = append(stack, n.children...)
	}
}

// seq returns 0, 1, ..., n-1.
func seq(n int) []int {
	ret := make([]int, n)
	for i := range ret {
		ret[i] = i
	}
	return ret
}
