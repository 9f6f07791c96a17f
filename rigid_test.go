/*
 * rigid_test.go, part of closepairs.
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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// newRigidScene returns a set with nloose loose spheres and three clusters
// of 40 members scattered in a 30 wide cube.
func newRigidScene(Te *testing.T, seed int64, nloose int) *SphereSet {
	Te.Helper()
	rng := rand.New(rand.NewSource(seed))
	S, err := NewSphereSet(randomSpheres(rng, nloose, 30, 0.1, 1, 0)...)
	require.NoError(Te, err)
	for c := 0; c < 3; c++ {
		T := NewTransform(rng.Float64()*3, r3.Vec{X: rng.Float64(), Y: 1, Z: rng.Float64()},
			r3.Vec{X: 30 * rng.Float64(), Y: 30 * rng.Float64(), Z: 30 * rng.Float64()})
		C := newTestCluster(Te, rng, c, 10000+1000*c, 40, 10, T)
		require.NoError(Te, S.AddCluster(C))
	}
	return S
}

func TestRigidFinderComplete(Te *testing.T) {
	S := newRigidScene(Te, 30, 250)
	for _, k := range allKinds() {
		for _, d := range []float64{0, 1} {
			base := newTestFinder(Te, k, d)
			R, err := NewRigidFinder(base, nil)
			require.NoError(Te, err)
			got, err := R.ClosePairs(S)
			require.NoError(Te, err)
			want := bruteRigid(S, d)
			require.NotEmpty(Te, want)
			assert.Empty(Te, got.Missing(want), "%s base at distance %g misses pairs", k, d)
			for _, p := range got {
				ca, oka := S.ClusterOf(p.A)
				cb, okb := S.ClusterOf(p.B)
				assert.False(Te, oka && okb && ca.ID == cb.ID, "pair %v is inside one cluster", p)
			}
			if exact(k) {
				assert.Empty(Te, diffPairs(want, got), "%s base at distance %g", k, d)
			}
		}
	}
}

func TestRigidFinderSubset(Te *testing.T) {
	S := newRigidScene(Te, 31, 100)
	all := S.Spheres()
	//every other sphere, so clusters are only partly in the query.
	var half []Sphere
	for i := 0; i < len(all); i += 2 {
		half = append(half, all[i])
	}
	R, err := NewRigidFinder(NewQuadraticFinder(nil), nil)
	require.NoError(Te, err)
	require.NoError(Te, R.SetDistance(1.5))
	got, err := R.ClosePairsOf(half, S)
	require.NoError(Te, err)
	var want Pairs
	for _, p := range bruteRigid(S, 1.5) {
		if _, ok := sphereByID(half, p.A); !ok {
			continue
		}
		if _, ok := sphereByID(half, p.B); ok {
			want = append(want, p)
		}
	}
	assert.Empty(Te, diffPairs(want, got))
}

func TestRigidFinderBipartite(Te *testing.T) {
	S := newRigidScene(Te, 32, 200)
	all := S.Spheres()
	a, b := all[:len(all)/2], all[len(all)/2:]
	R, err := NewRigidFinder(newTestFinder(Te, Grid, 0.8), nil)
	require.NoError(Te, err)
	got, err := R.BipartiteClosePairs(a, b, S)
	require.NoError(Te, err)
	var want Pairs
	for _, p := range bruteBipartite(a, b, 0.8) {
		ca, oka := S.ClusterOf(p.A)
		cb, okb := S.ClusterOf(p.B)
		if !(oka && okb && ca.ID == cb.ID) {
			want = append(want, p)
		}
	}
	assert.Empty(Te, diffPairs(want, got))
}

func TestRigidFinderFilters(Te *testing.T) {
	S := newRigidScene(Te, 33, 150)
	R, err := NewRigidFinder(nil, nil)
	require.NoError(Te, err)
	require.NoError(Te, R.SetDistance(1))
	all, err := R.ClosePairs(S)
	require.NoError(Te, err)
	require.Greater(Te, len(all), 4)
	excluded := Pairs{all[0], all[len(all)/2], all[len(all)-1]}
	R.AddFilter(NewExclusionList(excluded...))
	got, err := R.ClosePairs(S)
	require.NoError(Te, err)
	assert.Len(Te, got, len(all)-len(excluded))
	for _, p := range excluded {
		assert.False(Te, got.Contains(p))
	}
	assert.Empty(Te, diffPairs(excluded.Canonical(), got.Missing(all)))
}

// rotating a cluster by 90 degrees about its centroid, with 100 loose
// spheres around, gives the same pairs as an exhaustive search.
func TestRigidClusterRotation(Te *testing.T) {
	rng := rand.New(rand.NewSource(34))
	S, err := NewSphereSet(randomSpheres(rng, 100, 12, 0.2, 0.8, 0)...)
	require.NoError(Te, err)
	C := newTestCluster(Te, rng, 1, 500, 10, 5, Translation(r3.Vec{X: 3, Y: 3, Z: 3}))
	require.NoError(Te, S.AddCluster(C))
	O := DefaultOptions()
	O.Distance(0.5)
	O.Slack(0.2)
	box, err := NewContainer(S, O)
	require.NoError(Te, err)
	before, err := box.ExactClosePairs()
	require.NoError(Te, err)
	assert.Empty(Te, diffPairs(bruteRigid(S, 0.5), before))

	centroid := C.Transform.Apply(C.Local.Centroid())
	require.NoError(Te, S.MoveCluster(C.ID, RotationAbout(math.Pi/2, r3.Vec{Z: 1}, centroid).Compose(C.Transform)))
	after, err := box.ExactClosePairs()
	require.NoError(Te, err)
	assert.Equal(Te, 2, box.RebuildCount())
	assert.Empty(Te, diffPairs(bruteRigid(S, 0.5), after))
}

// loose spheres at the contact distance of cluster members are reported
// exactly as an exhaustive search reports them.
func TestRigidFinderTouching(Te *testing.T) {
	rng := rand.New(rand.NewSource(35))
	const d = 0.3
	S, err := NewSphereSet()
	require.NoError(Te, err)
	for i := 0; i < 400; i++ {
		C, q := touchingCluster(Te, rng, i, d)
		//keep the scenes apart from each other
		shift := Translation(r3.Vec{X: 500 * float64(i)})
		C.Transform = shift.Compose(C.Transform)
		q.Center = shift.Apply(q.Center)
		require.NoError(Te, S.AddCluster(C))
		require.NoError(Te, S.Add(q))
	}
	want := bruteRigid(S, d)
	require.Greater(Te, len(want), 100)
	for _, k := range []FinderKind{Quadratic, Grid} {
		R, err := NewRigidFinder(newTestFinder(Te, k, d), nil)
		require.NoError(Te, err)
		got, err := R.ClosePairs(S)
		require.NoError(Te, err)
		assert.Empty(Te, diffPairs(want, got), k.String())
	}
}

// a linear cluster of ten spheres turned by 90 degrees about its centroid
// touches a loose sphere at its new end, and only through the end member.
func TestRigidLinearClusterRotation(Te *testing.T) {
	members := make([]Sphere, 10)
	for i := range members {
		members[i] = Sphere{ID: 100 + i, Center: r3.Vec{X: float64(i)}, Radius: 0.5}
	}
	C, err := NewRigidCluster(1, members)
	require.NoError(Te, err)
	S, err := NewSphereSet(Sphere{ID: 1, Center: r3.Vec{X: 4.5, Y: 5.2}, Radius: 0.3})
	require.NoError(Te, err)
	require.NoError(Te, S.AddCluster(C))
	O := DefaultOptions()
	O.Slack(0.5)
	box, err := NewContainer(S, O)
	require.NoError(Te, err)
	before, err := box.ExactClosePairs()
	require.NoError(Te, err)
	assert.Empty(Te, before)

	centroid := C.Transform.Apply(r3.Vec{})
	assertVecNear(Te, r3.Vec{X: 4.5}, centroid)
	require.NoError(Te, S.MoveCluster(1, RotationAbout(math.Pi/2, r3.Vec{Z: 1}, centroid).Compose(C.Transform)))
	end, ok := S.Sphere(109)
	require.True(Te, ok)
	assertVecNear(Te, r3.Vec{X: 4.5, Y: 4.5}, end.Center)
	after, err := box.ExactClosePairs()
	require.NoError(Te, err)
	assert.Equal(Te, Pairs{{1, 109}}, after)
	assert.Equal(Te, 2, box.RebuildCount())

	R, err := NewRigidFinder(nil, nil)
	require.NoError(Te, err)
	got, err := R.ClosePairs(S)
	require.NoError(Te, err)
	assert.Equal(Te, Pairs{{1, 109}}, got)
}
