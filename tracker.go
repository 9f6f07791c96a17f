/*
 * tracker.go, part of closepairs.
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
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Tracker remembers where the loose spheres and the clusters of a source
// were at the last snapshot, and tells whether any of them has moved
// farther than a slack since.
type Tracker struct {
	centers    map[int]r3.Vec
	transforms map[int]Transform
	versions   map[int]uint64
	stamp      uint64 //MoveStamp of the source at the snapshot
	valid      bool
}

// NewTracker returns a tracker without a snapshot, which is always stale.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Reset takes a snapshot of src. If src is a MoveNotifier, later checks
// only look at what it changed after this call.
func (T *Tracker) Reset(src SphereSource) {
	T.centers = make(map[int]r3.Vec)
	T.transforms = make(map[int]Transform)
	T.versions = make(map[int]uint64)
	for _, s := range src.Spheres() {
		if _, ok := src.ClusterOf(s.ID); !ok {
			T.centers[s.ID] = s.Center
		}
	}
	for _, C := range src.Clusters() {
		T.transforms[C.ID] = C.Transform
		T.versions[C.ID] = C.Version
	}
	if mn, ok := src.(MoveNotifier); ok {
		T.stamp = mn.MoveStamp()
	}
	T.valid = true
}

// Invalidate drops the snapshot.
func (T *Tracker) Invalidate() {
	T.valid = false
}

// ClusterDisplacement returns a bound on how far any member of C moved
// when the transform of C went from t0 to t1: the translation plus the
// rotation angle times the cluster radius.
func ClusterDisplacement(C *RigidCluster, t0, t1 Transform) float64 {
	return r3.Norm(r3.Sub(t1.Trans, t0.Trans)) + t0.RotationAngleTo(t1)*C.Radius()
}

// Check tells whether something moved farther than slack since the last
// snapshot, and returns the largest displacement it saw. Spheres or
// clusters that appeared, disappeared or changed version make the
// snapshot stale, with an infinite displacement. If src is a MoveNotifier
// only the objects it changed since the snapshot are checked.
func (T *Tracker) Check(src SphereSource, slack float64) (bool, float64) {
	if !T.valid {
		return true, math.Inf(1)
	}
	var max float64
	see := func(d float64) {
		if d > max {
			max = d
		}
	}
	checkCluster := func(C *RigidCluster, ok bool, id int) {
		t0, had := T.transforms[id]
		if !ok || !had || C.Version != T.versions[id] {
			see(math.Inf(1))
			return
		}
		see(ClusterDisplacement(C, t0, C.Transform))
	}
	checkSphere := func(id int) {
		s, ok := src.Sphere(id)
		if _, member := src.ClusterOf(id); member {
			return
		}
		c0, had := T.centers[id]
		if ok != had {
			see(math.Inf(1))
			return
		}
		if ok {
			see(r3.Norm(r3.Sub(s.Center, c0)))
		}
	}
	if mn, ok := src.(MoveNotifier); ok {
		for _, id := range mn.MovedSince(T.stamp) {
			checkSphere(id)
		}
		for _, id := range mn.ClustersMovedSince(T.stamp) {
			C, ok := mn.Cluster(id)
			checkCluster(C, ok, id)
		}
		return max > slack, max
	}
	clusters := make(map[int]*RigidCluster)
	for _, C := range src.Clusters() {
		clusters[C.ID] = C
	}
	nloose := 0
	for _, s := range src.Spheres() {
		if _, member := src.ClusterOf(s.ID); member {
			continue
		}
		nloose++
		c0, had := T.centers[s.ID]
		if !had {
			see(math.Inf(1))
			continue
		}
		see(r3.Norm(r3.Sub(s.Center, c0)))
	}
	if nloose != len(T.centers) || len(clusters) != len(T.transforms) {
		see(math.Inf(1))
	}
	for id, C := range clusters {
		checkCluster(C, true, id)
	}
	return max > slack, max
}
