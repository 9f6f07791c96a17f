/*
 * source.go, part of closepairs.
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
	"container/list"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// SphereSet is an in-memory SphereSource. It stamps whatever it moves,
// adds or removes, so it also implements MoveNotifier.
type SphereSet struct {
	loose    map[int]Sphere
	clusters map[int]*RigidCluster
	memberOf map[int]*RigidCluster
	stamp    uint64
	moves    *list.List //of *moveEntry, oldest stamp first
	lastMove map[moveKey]*list.Element
}

type moveKey struct {
	id      int
	cluster bool
}

type moveEntry struct {
	key   moveKey
	stamp uint64
}

// NewSphereSet returns a SphereSet containing the given loose spheres.
func NewSphereSet(loose ...Sphere) (*SphereSet, error) {
	S := &SphereSet{
		loose:    make(map[int]Sphere),
		clusters: make(map[int]*RigidCluster),
		memberOf: make(map[int]*RigidCluster),
		moves:    list.New(),
		lastMove: make(map[moveKey]*list.Element),
	}
	if err := S.Add(loose...); err != nil {
		return nil, errDecorate(err, "NewSphereSet")
	}
	return S, nil
}

func (S *SphereSet) taken(id int) bool {
	_, l := S.loose[id]
	_, m := S.memberOf[id]
	return l || m
}

// Add adds loose spheres to the set.
func (S *SphereSet) Add(s ...Sphere) error {
	if err := checkSpheres("Add", s); err != nil {
		return err
	}
	for _, v := range s {
		if S.taken(v.ID) {
			return newConfigError("Add", "sphere ID %d is already in use", v.ID)
		}
		S.loose[v.ID] = v
		S.touch(moveKey{id: v.ID})
	}
	return nil
}

// AddCluster adds a rigid cluster to the set. Neither the cluster ID nor
// the member IDs may be in use already.
func (S *SphereSet) AddCluster(C *RigidCluster) error {
	if C == nil || C.Len() == 0 {
		return newConfigError("AddCluster", "empty cluster")
	}
	if _, ok := S.clusters[C.ID]; ok {
		return newConfigError("AddCluster", "cluster ID %d is already in use", C.ID)
	}
	for _, m := range C.Members {
		if S.taken(m) {
			return newConfigError("AddCluster", "sphere ID %d is already in use", m)
		}
	}
	S.clusters[C.ID] = C
	for _, m := range C.Members {
		S.memberOf[m] = C
	}
	S.touch(moveKey{id: C.ID, cluster: true})
	return nil
}

// Remove removes the loose sphere with the given ID, if present.
func (S *SphereSet) Remove(id int) {
	if _, ok := S.loose[id]; ok {
		delete(S.loose, id)
		S.touch(moveKey{id: id})
	}
}

// Move places the loose sphere id at center.
func (S *SphereSet) Move(id int, center r3.Vec) error {
	s, ok := S.loose[id]
	if !ok {
		return newConfigError("Move", "no loose sphere with ID %d", id)
	}
	if !finite(center) {
		return newConfigError("Move", "non-finite center for sphere %d", id)
	}
	s.Center = center
	S.loose[id] = s
	S.touch(moveKey{id: id})
	return nil
}

// MoveCluster sets the transform of the cluster id.
func (S *SphereSet) MoveCluster(id int, T Transform) error {
	C, ok := S.clusters[id]
	if !ok {
		return newConfigError("MoveCluster", "no cluster with ID %d", id)
	}
	C.Transform = T
	S.touch(moveKey{id: id, cluster: true})
	return nil
}

// SetClusterMembers replaces the members of the cluster id with the given
// world-frame spheres. The new member IDs may not belong to loose spheres
// or to other clusters.
func (S *SphereSet) SetClusterMembers(id int, members []Sphere) error {
	C, ok := S.clusters[id]
	if !ok {
		return newConfigError("SetClusterMembers", "no cluster with ID %d", id)
	}
	for _, s := range members {
		if _, l := S.loose[s.ID]; l {
			return newConfigError("SetClusterMembers", "sphere ID %d is already in use", s.ID)
		}
		if D, m := S.memberOf[s.ID]; m && D != C {
			return newConfigError("SetClusterMembers", "sphere ID %d is already in use", s.ID)
		}
	}
	old := C.Members
	if err := C.SetMembers(members); err != nil {
		return errDecorate(err, "SetClusterMembers")
	}
	for _, m := range old {
		delete(S.memberOf, m)
	}
	for _, m := range C.Members {
		S.memberOf[m] = C
	}
	S.touch(moveKey{id: id, cluster: true})
	return nil
}

// Sphere returns the sphere with the given ID, loose or cluster member.
func (S *SphereSet) Sphere(id int) (Sphere, bool) {
	if s, ok := S.loose[id]; ok {
		return s, true
	}
	if C, ok := S.memberOf[id]; ok {
		return C.Member(C.Index(id)), true
	}
	return Sphere{}, false
}

// Len returns the number of spheres in the set, cluster members included.
func (S *SphereSet) Len() int {
	return len(S.loose) + len(S.memberOf)
}

// Loose returns the loose spheres, sorted by ID.
func (S *SphereSet) Loose() []Sphere {
	ret := make([]Sphere, 0, len(S.loose))
	for _, s := range S.loose {
		ret = append(ret, s)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].ID < ret[j].ID })
	return ret
}

// Spheres returns the loose spheres sorted by ID followed by the members
// of each cluster, clusters sorted by ID.
func (S *SphereSet) Spheres() []Sphere {
	ret := S.Loose()
	for _, C := range S.Clusters() {
		ret = append(ret, C.Spheres()...)
	}
	return ret
}

// Clusters returns the clusters sorted by ID.
func (S *SphereSet) Clusters() []*RigidCluster {
	ret := make([]*RigidCluster, 0, len(S.clusters))
	for _, C := range S.clusters {
		ret = append(ret, C)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].ID < ret[j].ID })
	return ret
}

func (S *SphereSet) ClusterOf(id int) (*RigidCluster, bool) {
	C, ok := S.memberOf[id]
	return C, ok
}

// Cluster returns the cluster with the given ID.
func (S *SphereSet) Cluster(id int) (*RigidCluster, bool) {
	C, ok := S.clusters[id]
	return C, ok
}

// touch gives k a new stamp and moves it to the end of the move list.
func (S *SphereSet) touch(k moveKey) {
	S.stamp++
	if e, ok := S.lastMove[k]; ok {
		e.Value.(*moveEntry).stamp = S.stamp
		S.moves.MoveToBack(e)
		return
	}
	S.lastMove[k] = S.moves.PushBack(&moveEntry{key: k, stamp: S.stamp})
}

// MoveStamp returns the stamp of the last change to the set.
func (S *SphereSet) MoveStamp() uint64 {
	return S.stamp
}

// MovedSince returns the IDs of the loose spheres moved, added or removed
// after stamp, sorted. Only the changed spheres are visited.
func (S *SphereSet) MovedSince(stamp uint64) []int {
	return S.changedSince(stamp, false)
}

// ClustersMovedSince is MovedSince for clusters.
func (S *SphereSet) ClustersMovedSince(stamp uint64) []int {
	return S.changedSince(stamp, true)
}

func (S *SphereSet) changedSince(stamp uint64, cluster bool) []int {
	var ret []int
	for e := S.moves.Back(); e != nil; e = e.Prev() {
		m := e.Value.(*moveEntry)
		if m.stamp <= stamp {
			break
		}
		if m.key.cluster == cluster {
			ret = append(ret, m.key.id)
		}
	}
	sort.Ints(ret)
	return ret
}
