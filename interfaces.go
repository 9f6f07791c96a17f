/*
 * interfaces.go, part of closepairs.
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

import "gonum.org/v1/gonum/spatial/r3"

// SphereSource is the store the close pairs machinery reads from. It holds
// loose spheres and the members of rigid clusters, always in the world frame.
type SphereSource interface {

	//Spheres returns every sphere in the store, loose spheres and cluster
	//members alike, with world-frame centers.
	Spheres() []Sphere

	//Sphere returns the sphere with the given ID, loose or member, and
	//false if there is none.
	Sphere(id int) (Sphere, bool)

	//Clusters returns the rigid clusters in the store.
	Clusters() []*RigidCluster

	//ClusterOf returns the cluster the sphere with the given ID belongs to,
	//and false if the sphere is loose.
	ClusterOf(id int) (*RigidCluster, bool)
}

// MoveNotifier is implemented by sources that stamp the objects they move.
// The movement tracker only inspects what changed after its own stamp
// when the source implements it, and everything otherwise. Several
// trackers can share one source.
type MoveNotifier interface {
	//MoveStamp returns a value that grows with every change to the source.
	MoveStamp() uint64

	//MovedSince returns the IDs of the loose spheres moved, added or
	//removed after the given stamp was taken.
	MovedSince(stamp uint64) []int

	//ClustersMovedSince is MovedSince for clusters. Cluster IDs and
	//sphere IDs are separate name spaces.
	ClustersMovedSince(stamp uint64) []int

	//Cluster returns the cluster with the given ID.
	Cluster(id int) (*RigidCluster, bool)
}

// Finder finds the pairs of objects that are close to each other.
// Implementations never miss a pair whose surfaces are within Distance,
// but they may report some extra pairs.
type Finder interface {
	Distance() float64

	//SetDistance returns a ConfigError if d is negative or NaN.
	SetDistance(d float64) error

	//ClosePairs returns the pairs of spheres in s whose surfaces are
	//within Distance, as canonical ID pairs.
	ClosePairs(s []Sphere) (Pairs, error)

	//BipartiteClosePairs is ClosePairs between a sphere of a and one of b.
	BipartiteClosePairs(a, b []Sphere) (Pairs, error)

	//BoxClosePairs returns index pairs i<j of boxes that overlap
	//once inflated by Distance.
	BoxClosePairs(boxes []r3.Box) ([][2]int, error)

	//BipartiteBoxClosePairs returns pairs (index in a, index in b).
	BipartiteBoxClosePairs(a, b []r3.Box) ([][2]int, error)
}

// PairFilter decides whether a candidate pair must be dropped.
type PairFilter interface {
	Excluded(a, b int) bool
}

//Errors

// Error is the interface for the errors of this library. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call returns the decoration slice after adding the string. An empty string adds nothing.
	Critical() bool
}
