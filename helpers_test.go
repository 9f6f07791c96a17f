/*
 * helpers_test.go, part of closepairs.
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
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// randomSpheres returns n spheres with centers uniform in a cube of the
// given side and radii uniform in [rmin, rmax). IDs start at firstID.
func randomSpheres(rng *rand.Rand, n int, side, rmin, rmax float64, firstID int) []Sphere {
	ret := make([]Sphere, n)
	for i := range ret {
		ret[i] = Sphere{
			ID:     firstID + i,
			Center: r3.Vec{X: side * rng.Float64(), Y: side * rng.Float64(), Z: side * rng.Float64()},
			Radius: rmin + (rmax-rmin)*rng.Float64(),
		}
	}
	return ret
}

func randomBoxes(rng *rand.Rand, n int, side, maxSize float64) []r3.Box {
	ret := make([]r3.Box, n)
	for i := range ret {
		min := r3.Vec{X: side * rng.Float64(), Y: side * rng.Float64(), Z: side * rng.Float64()}
		size := r3.Vec{X: maxSize * rng.Float64(), Y: maxSize * rng.Float64(), Z: maxSize * rng.Float64()}
		ret[i] = r3.Box{Min: min, Max: r3.Add(min, size)}
	}
	return ret
}

func bruteClosePairs(s []Sphere, d float64) Pairs {
	var ret Pairs
	for i := range s {
		for j := i + 1; j < len(s); j++ {
			if Close(s[i], s[j], d) {
				ret = append(ret, NewPair(s[i].ID, s[j].ID))
			}
		}
	}
	return ret.Canonical()
}

func bruteBipartite(a, b []Sphere, d float64) Pairs {
	var ret Pairs
	for _, u := range a {
		for _, v := range b {
			if u.ID != v.ID && Close(u, v, d) {
				ret = append(ret, NewPair(u.ID, v.ID))
			}
		}
	}
	return ret.Canonical()
}

// bruteRigid returns the close pairs among all the spheres of src but
// those inside one cluster.
func bruteRigid(src SphereSource, d float64) Pairs {
	s := src.Spheres()
	var ret Pairs
	for i := range s {
		for j := i + 1; j < len(s); j++ {
			ci, oki := src.ClusterOf(s[i].ID)
			cj, okj := src.ClusterOf(s[j].ID)
			if oki && okj && ci.ID == cj.ID {
				continue
			}
			if Close(s[i], s[j], d) {
				ret = append(ret, NewPair(s[i].ID, s[j].ID))
			}
		}
	}
	return ret.Canonical()
}

func diffPairs(want, got Pairs) string {
	return cmp.Diff(want, got, cmpopts.EquateEmpty())
}

// requireConsistencyPanic runs f and fails unless it panics with a
// *ConsistencyError.
func requireConsistencyPanic(Te *testing.T, f func()) {
	Te.Helper()
	var got interface{}
	func() {
		defer func() { got = recover() }()
		f()
	}()
	require.NotNil(Te, got, "expected a panic")
	err, ok := got.(error)
	require.True(Te, ok, "panic value %v is not an error", got)
	var ce *ConsistencyError
	require.True(Te, errors.As(err, &ce), "panic value %v is not a ConsistencyError", got)
}

func requireConfigError(Te *testing.T, err error) {
	Te.Helper()
	var ce *ConfigError
	require.Error(Te, err)
	require.True(Te, errors.As(err, &ce), "%v is not a ConfigError", err)
}

// newTestCluster builds a cluster of n spheres around the origin, placed
// at the given transform.
func newTestCluster(Te *testing.T, rng *rand.Rand, id, firstMember, n int, spread float64, T Transform) *RigidCluster {
	Te.Helper()
	s := randomSpheres(rng, n, spread, 0.2, 1, firstMember)
	C, err := NewRigidCluster(id, s)
	require.NoError(Te, err)
	C.Transform = T.Compose(C.Transform)
	return C
}
