/*
 * source_test.go, part of closepairs.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSphereSet(Te *testing.T) {
	S, err := NewSphereSet(Sphere{ID: 3, Radius: 1}, Sphere{ID: 1, Center: r3.Vec{X: 2}, Radius: 0.5})
	require.NoError(Te, err)
	C, err := NewRigidCluster(4, []Sphere{{ID: 20, Radius: 1}, {ID: 21, Center: r3.Vec{Y: 2}, Radius: 1}})
	require.NoError(Te, err)
	require.NoError(Te, S.AddCluster(C))
	assert.Equal(Te, 4, S.Len())
	assert.Equal(Te, []int{1, 3}, S.MovedSince(0))
	assert.Equal(Te, []int{4}, S.ClustersMovedSince(0))
	got, ok := S.Cluster(4)
	require.True(Te, ok)
	assert.Same(Te, C, got)
	_, ok = S.Cluster(20)
	assert.False(Te, ok)

	var ids []int
	for _, s := range S.Spheres() {
		ids = append(ids, s.ID)
	}
	assert.Equal(Te, []int{1, 3, 20, 21}, ids)
	s, ok := S.Sphere(21)
	require.True(Te, ok)
	assertVecNear(Te, r3.Vec{Y: 2}, s.Center)
	_, ok = S.Sphere(2)
	assert.False(Te, ok)
	got, ok = S.ClusterOf(20)
	require.True(Te, ok)
	assert.Same(Te, C, got)
	_, ok = S.ClusterOf(1)
	assert.False(Te, ok)

	stamp := S.MoveStamp()
	assert.Empty(Te, S.MovedSince(stamp))
	assert.Empty(Te, S.ClustersMovedSince(stamp))
	require.NoError(Te, S.Move(3, r3.Vec{Z: 1}))
	require.NoError(Te, S.MoveCluster(4, Translation(r3.Vec{X: 10})))
	assert.Equal(Te, []int{3}, S.MovedSince(stamp))
	assert.Equal(Te, []int{4}, S.ClustersMovedSince(stamp))
	//older stamps still see everything changed after them
	assert.Equal(Te, []int{1, 3}, S.MovedSince(0))
	s, _ = S.Sphere(20)
	assertVecNear(Te, r3.Vec{X: 10, Y: -1}, s.Center)
	S.Remove(3)
	S.Remove(99)
	assert.Equal(Te, 3, S.Len())
	assert.Equal(Te, []int{3}, S.MovedSince(stamp))
	later := S.MoveStamp()
	require.NoError(Te, S.Move(1, r3.Vec{X: 3}))
	assert.Equal(Te, []int{1}, S.MovedSince(later))
	assert.Equal(Te, []int{1, 3}, S.MovedSince(stamp))
}

func TestSphereSetErrors(Te *testing.T) {
	_, err := NewSphereSet(Sphere{ID: 1}, Sphere{ID: 1})
	requireConfigError(Te, err)
	_, err = NewSphereSet(Sphere{ID: 1, Radius: -1})
	requireConfigError(Te, err)
	S, err := NewSphereSet(Sphere{ID: 1})
	require.NoError(Te, err)
	C, err := NewRigidCluster(0, []Sphere{{ID: 1}})
	require.NoError(Te, err)
	requireConfigError(Te, S.AddCluster(C))
	C, err = NewRigidCluster(0, []Sphere{{ID: 2}})
	require.NoError(Te, err)
	require.NoError(Te, S.AddCluster(C))
	D, err := NewRigidCluster(0, []Sphere{{ID: 3}})
	require.NoError(Te, err)
	requireConfigError(Te, S.AddCluster(D))
	requireConfigError(Te, S.AddCluster(nil))
	requireConfigError(Te, S.Add(Sphere{ID: 2}))
	requireConfigError(Te, S.Move(2, r3.Vec{}))
	requireConfigError(Te, S.Move(1, r3.Vec{X: math.NaN()}))
	requireConfigError(Te, S.MoveCluster(5, Identity()))
	requireConfigError(Te, S.SetClusterMembers(0, []Sphere{{ID: 1}}))
	requireConfigError(Te, S.SetClusterMembers(0, []Sphere{{ID: 7}, {ID: 7}}))
	require.NoError(Te, S.SetClusterMembers(0, []Sphere{{ID: 2}, {ID: 8}}))
	_, ok := S.ClusterOf(8)
	assert.True(Te, ok)
}
