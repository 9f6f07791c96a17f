/*
 * cluster.go, part of closepairs.
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

	v3 "github.com/salilab/imp-sub003/v3"
)

// RigidCluster is a group of spheres that move together. The member
// coordinates are kept in the local frame of the cluster, and the world
// position of member i is Transform.Apply(Local.Vec(i)).
//
// Version must change whenever the membership or the local coordinates
// change. Moving the cluster (changing Transform) does not change it.
type RigidCluster struct {
	ID        int
	Members   []int
	Local     *v3.Matrix
	Radii     []float64
	Transform Transform
	Version   uint64

	localBound   Sphere
	boundVersion uint64
	bounded      bool
}

// NewRigidCluster builds a cluster from the world-frame spheres in members.
// The local frame has its origin on the centroid of the member centers
// and the axes of the world frame, so the initial Transform is a pure
// translation.
func NewRigidCluster(id int, members []Sphere) (*RigidCluster, error) {
	if len(members) == 0 {
		return nil, newConfigError("NewRigidCluster", "cluster %d has no members", id)
	}
	if err := checkSpheres("NewRigidCluster", members); err != nil {
		return nil, err
	}
	centers := make([]r3.Vec, len(members))
	C := &RigidCluster{ID: id, Members: make([]int, len(members)), Radii: make([]float64, len(members))}
	seen := make(map[int]bool, len(members))
	for i, s := range members {
		if seen[s.ID] {
			return nil, newConfigError("NewRigidCluster", "sphere %d appears twice in cluster %d", s.ID, id)
		}
		seen[s.ID] = true
		centers[i] = s.Center
		C.Members[i] = s.ID
		C.Radii[i] = s.Radius
	}
	C.Local = v3.FromVecs(centers)
	origin := C.Local.Centroid()
	for i := range centers {
		C.Local.SetVec(i, r3.Sub(centers[i], origin))
	}
	C.Transform = Translation(origin)
	return C, nil
}

// Len returns the number of members of C.
func (C *RigidCluster) Len() int {
	return len(C.Members)
}

// Member returns the ith member of C as a world-frame sphere.
func (C *RigidCluster) Member(i int) Sphere {
	return Sphere{ID: C.Members[i], Center: C.Transform.Apply(C.Local.Vec(i)), Radius: C.Radii[i]}
}

// Spheres returns all the members of C as world-frame spheres.
func (C *RigidCluster) Spheres() []Sphere {
	ret := make([]Sphere, C.Len())
	for i := range ret {
		ret[i] = C.Member(i)
	}
	return ret
}

// Index returns the position of the member with the given sphere ID,
// or -1 if it is not a member.
func (C *RigidCluster) Index(id int) int {
	for i, m := range C.Members {
		if m == id {
			return i
		}
	}
	return -1
}

// SetMembers replaces the members of C with the given world-frame spheres,
// expressed in the current frame of C, and bumps the version.
func (C *RigidCluster) SetMembers(members []Sphere) error {
	if len(members) == 0 {
		return newConfigError("SetMembers", "cluster %d would have no members", C.ID)
	}
	if err := checkSpheres("SetMembers", members); err != nil {
		return err
	}
	inv := C.Transform.Inverse()
	local := v3.Zeros(len(members))
	ids := make([]int, len(members))
	radii := make([]float64, len(members))
	seen := make(map[int]bool, len(members))
	for i, s := range members {
		if seen[s.ID] {
			return newConfigError("SetMembers", "sphere %d appears twice in cluster %d", s.ID, C.ID)
		}
		seen[s.ID] = true
		local.SetVec(i, inv.Apply(s.Center))
		ids[i] = s.ID
		radii[i] = s.Radius
	}
	C.Local, C.Members, C.Radii = local, ids, radii
	C.Version++
	return nil
}

// LocalBound returns a sphere, in the local frame, that encloses every
// member. It is recomputed only when the version changes.
func (C *RigidCluster) LocalBound() Sphere {
	if C.bounded && C.boundVersion == C.Version {
		return C.localBound
	}
	local := make([]Sphere, C.Len())
	for i := range local {
		local[i] = Sphere{ID: C.Members[i], Center: C.Local.Vec(i), Radius: C.Radii[i]}
	}
	C.localBound = EnclosingSphere(local)
	C.localBound.ID = C.ID
	C.boundVersion = C.Version
	C.bounded = true
	return C.localBound
}

// BoundingSphere returns a world-frame sphere enclosing every member.
// Its ID is the ID of the cluster.
func (C *RigidCluster) BoundingSphere() Sphere {
	b := C.LocalBound()
	b.Center = C.Transform.Apply(b.Center)
	return b
}

// Radius returns the largest distance from the local origin to a member
// center. A rotation by an angle a moves no member by more than a*Radius.
func (C *RigidCluster) Radius() float64 {
	var r float64
	for i := 0; i < C.Len(); i++ {
		r = math.Max(r, r3.Norm(C.Local.Vec(i)))
	}
	return r
}
