/*
 * tracker_test.go, part of closepairs.
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

func TestClusterDisplacement(Te *testing.T) {
	rng := rand.New(rand.NewSource(50))
	C := newTestCluster(Te, rng, 0, 0, 20, 6, Identity())
	t0 := C.Transform
	before := C.Spheres()
	t1 := NewTransform(0.3, r3.Vec{X: 1, Y: -1, Z: 2}, r3.Vec{X: 1}).Compose(t0)
	bound := ClusterDisplacement(C, t0, t1)
	C.Transform = t1
	after := C.Spheres()
	var max float64
	for i := range before {
		max = math.Max(max, r3.Norm(r3.Sub(after[i].Center, before[i].Center)))
	}
	assert.LessOrEqual(Te, max, bound+1e-9)
	assert.InDelta(Te, 0, ClusterDisplacement(C, t1, t1), 1e-6)
	shift := Translation(r3.Vec{Y: 2}).Compose(t1)
	assert.InDelta(Te, 2, ClusterDisplacement(C, t1, shift), 1e-6)
}

func TestTracker(Te *testing.T) {
	S, err := NewSphereSet(Sphere{ID: 1}, Sphere{ID: 2, Center: r3.Vec{X: 5}})
	require.NoError(Te, err)
	T := NewTracker()
	stale, max := T.Check(S, 1)
	assert.True(Te, stale)
	assert.True(Te, math.IsInf(max, 1))

	for _, src := range []SphereSource{S, plainSource{S}} {
		T.Reset(src)
		stale, max = T.Check(src, 1)
		assert.False(Te, stale)
		assert.Equal(Te, 0.0, max)
		require.NoError(Te, S.Move(2, r3.Vec{X: 5.5}))
		stale, max = T.Check(src, 1)
		assert.False(Te, stale)
		assert.InDelta(Te, 0.5, max, 1e-12)
		require.NoError(Te, S.Move(2, r3.Vec{X: 6.5}))
		stale, _ = T.Check(src, 1)
		assert.True(Te, stale)
		require.NoError(Te, S.Move(2, r3.Vec{X: 5}))
	}

	T.Reset(S)
	require.NoError(Te, S.Add(Sphere{ID: 3}))
	stale, max = T.Check(S, 1)
	assert.True(Te, stale)
	assert.True(Te, math.IsInf(max, 1))
	T.Reset(S)
	T.Invalidate()
	stale, _ = T.Check(S, 1)
	assert.True(Te, stale)
}

func TestTrackersShareSource(Te *testing.T) {
	S, err := NewSphereSet(Sphere{ID: 1})
	require.NoError(Te, err)
	C, err := NewRigidCluster(5, []Sphere{{ID: 10, Radius: 1}, {ID: 11, Center: r3.Vec{X: 2}, Radius: 1}})
	require.NoError(Te, err)
	require.NoError(Te, S.AddCluster(C))
	a, b := NewTracker(), NewTracker()
	a.Reset(S)
	b.Reset(S)
	require.NoError(Te, S.MoveCluster(5, Translation(r3.Vec{X: 3}).Compose(C.Transform)))
	stale, max := a.Check(S, 1)
	assert.True(Te, stale)
	assert.InDelta(Te, 3, max, 1e-6)
	a.Reset(S)
	stale, _ = a.Check(S, 1)
	assert.False(Te, stale)
	//b took its snapshot before the move.
	stale, max = b.Check(S, 1)
	assert.True(Te, stale)
	assert.InDelta(Te, 3, max, 1e-6)
}
