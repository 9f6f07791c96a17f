/*
 * pairplot_test.go
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
 *
 */

package pairplot

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	closepairs "github.com/salilab/imp-sub003"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func testSet(Te *testing.T) (*closepairs.SphereSet, []closepairs.Sphere) {
	rng := rand.New(rand.NewSource(7))
	s := make([]closepairs.Sphere, 400)
	for i := range s {
		r := 0.2 * rng.Float64()
		if i%10 == 0 {
			r = 1 + 2*rng.Float64()
		}
		s[i] = closepairs.Sphere{ID: i, Center: r3.Vec{X: 20 * rng.Float64(), Y: 20 * rng.Float64(), Z: 20 * rng.Float64()}, Radius: r}
	}
	S, err := closepairs.NewSphereSet(s...)
	require.NoError(Te, err)
	return S, s
}

func TestStrataPlot(Te *testing.T) {
	_, s := testSet(Te)
	O := closepairs.DefaultOptions()
	O.MinGridSize(20)
	info := closepairs.Strata(s, O)
	require.NotEmpty(Te, info)
	p, err := StrataPlot(info, "Strata")
	require.NoError(Te, err)
	var buf bytes.Buffer
	require.NoError(Te, Write(p, &buf, "svg"))
	assert.Contains(Te, buf.String(), "<svg")
	_, err = StrataPlot(nil, "Strata")
	assert.Error(Te, err)
}

func TestDistanceHistogram(Te *testing.T) {
	S, s := testSet(Te)
	f, err := closepairs.NewFinder(closepairs.DefaultOptions())
	require.NoError(Te, err)
	require.NoError(Te, f.SetDistance(1))
	P, err := f.ClosePairs(s)
	require.NoError(Te, err)
	require.NotEmpty(Te, P)
	d, err := PairDistances(P, S)
	require.NoError(Te, err)
	for _, v := range d {
		assert.LessOrEqual(Te, v, 1+1e-9)
	}
	p, err := DistanceHistogram(P, S, 10, "Pair distances")
	require.NoError(Te, err)
	name := filepath.Join(Te.TempDir(), "distances.png")
	require.NoError(Te, Save(p, name))
	st, err := os.Stat(name)
	require.NoError(Te, err)
	assert.Greater(Te, st.Size(), int64(0))

	_, err = DistanceHistogram(closepairs.Pairs{{A: 0, B: 1000}}, S, 10, "")
	assert.Error(Te, err)
	_, err = DistanceHistogram(nil, S, 10, "")
	assert.Error(Te, err)
}
