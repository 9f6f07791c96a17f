/*
 * tree_test.go, part of closepairs.
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
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestNewRigidCluster(Te *testing.T) {
	_, err := NewRigidCluster(1, nil)
	requireConfigError(Te, err)
	_, err = NewRigidCluster(1, []Sphere{{ID: 1}, {ID: 1}})
	requireConfigError(Te, err)

	s := []Sphere{{ID: 4, Center: r3.Vec{X: 1}, Radius: 1}, {ID: 5, Center: r3.Vec{X: 3}, Radius: 0.5}}
	C, err := NewRigidCluster(9, s)
	require.NoError(Te, err)
	assert.Equal(Te, 2, C.Len())
	assertVecNear(Te, r3.Vec{X: 2}, C.Transform.Trans)
	for i, v := range C.Spheres() {
		assert.Equal(Te, s[i].ID, v.ID)
		assertVecNear(Te, s[i].Center, v.Center)
	}
	assert.InDelta(Te, 1.0, C.Radius(), 1e-12)
	b := C.BoundingSphere()
	assert.Equal(Te, 9, b.ID)
	for _, v := range s {
		assert.LessOrEqual(Te, r3.Norm(r3.Sub(v.Center, b.Center))+v.Radius, b.Radius+1e-12)
	}
	assert.Equal(Te, 1, C.Index(5))
	assert.Equal(Te, -1, C.Index(6))
}

func TestClusterTreeStructure(Te *testing.T) {
	rng := rand.New(rand.NewSource(20))
	C := newTestCluster(Te, rng, 1, 0, 237, 15, NewTransform(0.7, r3.Vec{X: 1, Y: 2, Z: 3}, r3.Vec{X: 4}))
	for _, leaf := range []int{1, 3, 10, 500} {
		T, err := NewClusterTree(C, leaf)
		require.NoError(Te, err)
		require.NoError(Te, T.Validate())
		for i := 0; i < T.Len(); i++ {
			assert.LessOrEqual(Te, len(T.nodes[i].members), leaf)
		}
		assert.Equal(Te, C.Members, sortedCopy(T.Members(0)))
	}
	_, err := NewClusterTree(C, 0)
	requireConfigError(Te, err)
	_, err = NewClusterTree(nil, 10)
	requireConfigError(Te, err)
}

// coincident members can't be split by their spread, but the tree still
// ends in small leaves.
func TestClusterTreeCoincident(Te *testing.T) {
	s := make([]Sphere, 40)
	for i := range s {
		s[i] = Sphere{ID: i, Center: r3.Vec{X: 1, Y: 1, Z: 1}, Radius: 0.5}
	}
	C, err := NewRigidCluster(1, s)
	require.NoError(Te, err)
	T, err := NewClusterTree(C, 4)
	require.NoError(Te, err)
	require.NoError(Te, T.Validate())
}

func sortedCopy(a []int) []int {
	r := append([]int(nil), a...)
	sort.Ints(r)
	return r
}

func TestClusterTreeQueries(Te *testing.T) {
	rng := rand.New(rand.NewSource(21))
	A := newTestCluster(Te, rng, 1, 0, 150, 12, NewTransform(0.3, r3.Vec{Z: 1}, r3.Vec{}))
	B := newTestCluster(Te, rng, 2, 1000, 120, 12, NewTransform(2.1, r3.Vec{X: 1, Y: -1}, r3.Vec{X: 9, Y: 3}))
	ta, err := NewClusterTree(A, 5)
	require.NoError(Te, err)
	tb, err := NewClusterTree(B, 7)
	require.NoError(Te, err)
	sa, sb := A.Spheres(), B.Spheres()

	for k := 0; k < 20; k++ {
		q := randomSpheres(rng, 1, 30, 0, 2, -1)[0]
		id, d := ta.ClosestMember(q)
		best := math.Inf(1)
		for _, v := range sa {
			best = math.Min(best, SurfaceDistance(v, q))
		}
		assert.InDelta(Te, best, d, 1e-9)
		m, ok := sphereByID(sa, id)
		require.True(Te, ok)
		assert.InDelta(Te, best, SurfaceDistance(m, q), 1e-9)
	}

	ma, mb, d := ClosestPair(ta, tb)
	best := math.Inf(1)
	for _, u := range sa {
		for _, v := range sb {
			best = math.Min(best, SurfaceDistance(u, v))
		}
	}
	assert.InDelta(Te, best, d, 1e-9)
	u, _ := sphereByID(sa, ma)
	v, _ := sphereByID(sb, mb)
	assert.InDelta(Te, best, SurfaceDistance(u, v), 1e-9)

	for _, dist := range []float64{0, 0.5, 2} {
		var got Pairs
		ApplyToNearby(ta, tb, dist, func(a, b int) { got = append(got, NewPair(a, b)) })
		assert.Empty(Te, diffPairs(bruteBipartite(sa, sb, dist), got.Canonical()), "distance %g", dist)

		q := Sphere{ID: -5, Center: B.Transform.Trans, Radius: 1}
		var near Pairs
		ta.ApplyToNearbySphere(q, dist, func(m int) { near = append(near, NewPair(q.ID, m)) })
		assert.Empty(Te, diffPairs(bruteBipartite([]Sphere{q}, sa, dist), near.Canonical()), "distance %g", dist)
	}
}

func sphereByID(s []Sphere, id int) (Sphere, bool) {
	for _, v := range s {
		if v.ID == id {
			return v, true
		}
	}
	return Sphere{}, false
}

func TestClusterTreeFollowsTransform(Te *testing.T) {
	rng := rand.New(rand.NewSource(22))
	A := newTestCluster(Te, rng, 1, 0, 60, 8, Identity())
	ta, err := NewClusterTree(A, 6)
	require.NoError(Te, err)
	q := Sphere{ID: -1, Center: r3.Vec{X: 40}, Radius: 1}
	_, far := ta.ClosestMember(q)
	A.Transform = Translation(r3.Vec{X: 40}).Compose(A.Transform)
	_, near := ta.ClosestMember(q)
	assert.Less(Te, near, far, "the tree must see the cluster where it is now")
	require.NoError(Te, ta.Validate())
}

func TestClusterTreeStale(Te *testing.T) {
	rng := rand.New(rand.NewSource(23))
	A := newTestCluster(Te, rng, 1, 0, 30, 8, Identity())
	cache, err := NewTreeCache(4)
	require.NoError(Te, err)
	t1, err := cache.Tree(A)
	require.NoError(Te, err)
	t2, err := cache.Tree(A)
	require.NoError(Te, err)
	assert.Same(Te, t1, t2)

	A.Transform = NewTransform(1, r3.Vec{Y: 1}, r3.Vec{Z: 3})
	t3, err := cache.Tree(A)
	require.NoError(Te, err)
	assert.Same(Te, t1, t3, "moving a cluster does not rebuild its tree")

	require.NoError(Te, A.SetMembers(randomSpheres(rng, 12, 5, 0.1, 0.5, 100)))
	requireConsistencyPanic(Te, func() { t1.ClosestMember(Sphere{}) })
	t4, err := cache.Tree(A)
	require.NoError(Te, err)
	assert.NotSame(Te, t1, t4)
	assert.Equal(Te, A.Version, t4.Version())
	assert.Equal(Te, 2, cache.Builds())
	assert.Equal(Te, 1, cache.Len())
	cache.Forget(A.ID)
	assert.Equal(Te, 0, cache.Len())

	_, err = NewTreeCache(0)
	requireConfigError(Te, err)
}

// touchingCluster returns a one-member cluster at a random transform and a
// sphere placed at exactly the contact distance (plus d) from the member.
func touchingCluster(Te *testing.T, rng *rand.Rand, id int, d float64) (*RigidCluster, Sphere) {
	Te.Helper()
	randVec := func(scale float64) r3.Vec {
		return r3.Vec{X: scale * rng.NormFloat64(), Y: scale * rng.NormFloat64(), Z: scale * rng.NormFloat64()}
	}
	member := Sphere{ID: 2 * id, Center: randVec(30), Radius: 0.2 + rng.Float64()}
	C, err := NewRigidCluster(id, []Sphere{member})
	require.NoError(Te, err)
	C.Transform = NewTransform(math.Pi*rng.Float64(), randVec(1), randVec(50)).Compose(C.Transform)
	m := C.Member(0)
	r := 0.2 + rng.Float64()
	q := Sphere{ID: 2*id + 1, Center: r3.Add(m.Center, r3.Scale(m.Radius+r+d, r3.Unit(randVec(1)))), Radius: r}
	return C, q
}

// pairs right at the contact distance are found through the trees
// whenever Close accepts them.
func TestClusterTreeTouching(Te *testing.T) {
	rng := rand.New(rand.NewSource(24))
	const d = 0.3
	accepted, missed := 0, 0
	for i := 0; i < 5000; i++ {
		C, q := touchingCluster(Te, rng, i, d)
		if !Close(C.Member(0), q, d) {
			continue
		}
		accepted++
		T, err := NewClusterTree(C, 10)
		require.NoError(Te, err)
		found := false
		T.ApplyToNearbySphere(q, d, func(int) { found = true })
		Q, err := NewRigidCluster(-1, []Sphere{q})
		require.NoError(Te, err)
		if !Close(C.Member(0), Q.Member(0), d) {
			missed += btoi(!found)
			continue
		}
		TQ, err := NewClusterTree(Q, 10)
		require.NoError(Te, err)
		pair := false
		ApplyToNearby(T, TQ, d, func(int, int) { pair = true })
		missed += btoi(!found) + btoi(!pair)
	}
	require.Greater(Te, accepted, 1000)
	assert.Zero(Te, missed)
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
