/*
 * strata.go, part of closepairs.
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
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// maxStrata caps the number of radius bounds. Halving from any float64
// reaches the floor well before.
const maxStrata = 64

// stratum is a group of objects whose radii are all at most bound.
type stratum struct {
	bound   float64
	members []int //indexes in the slice of spheres
}

// strataBounds returns the descending radius bounds that start at maxr
// and halve, less half the distance, while above floor.
func strataBounds(maxr, d, floor float64) []float64 {
	bounds := []float64{maxr}
	for len(bounds) < maxStrata {
		next := 0.5*bounds[len(bounds)-1] - 0.5*d
		if next <= floor {
			break
		}
		bounds = append(bounds, next)
	}
	return bounds
}

// stratumOf returns the index of the tightest bound that still covers r.
func stratumOf(bounds []float64, r float64) int {
	i := sort.Search(len(bounds), func(i int) bool { return bounds[i] < r }) - 1
	if i < 0 {
		return 0
	}
	return i
}

// stratify places each sphere of s whose index is in idx (all of them if
// idx is nil) in the tightest stratum of bounds, then merges neighbouring
// strata whose joint population is below minGrid. Empty strata are dropped.
func stratify(s []Sphere, idx []int, bounds []float64, minGrid int) []stratum {
	raw := make([]stratum, len(bounds))
	for i, b := range bounds {
		raw[i].bound = b
	}
	add := func(i int) {
		k := stratumOf(bounds, s[i].Radius)
		raw[k].members = append(raw[k].members, i)
	}
	if idx == nil {
		for i := range s {
			add(i)
		}
	} else {
		for _, i := range idx {
			add(i)
		}
	}
	var ret []stratum
	for _, st := range raw {
		if len(st.members) == 0 {
			continue
		}
		if n := len(ret); n > 0 && len(ret[n-1].members)+len(st.members) < minGrid {
			//the earlier stratum has the larger bound, so it covers both.
			ret[n-1].members = append(ret[n-1].members, st.members...)
			continue
		}
		ret = append(ret, st)
	}
	return ret
}

// StratumInfo describes one of the size strata the grid finder splits a
// set of spheres into.
type StratumInfo struct {
	Bound      float64
	Count      int
	MeanRadius float64
	StdRadius  float64
}

// Strata returns the strata the grid finder with options O (the default
// ones if O is nil) would use for s.
func Strata(s []Sphere, O *Options) []StratumInfo {
	if O == nil {
		O = DefaultOptions()
	}
	if len(s) == 0 {
		return nil
	}
	radii := make([]float64, len(s))
	for i, v := range s {
		radii[i] = v.Radius
	}
	bounds := strataBounds(floats.Max(radii), O.distance, O.stratumFloor)
	st := stratify(s, nil, bounds, O.minGridSize)
	ret := make([]StratumInfo, len(st))
	for i, v := range st {
		r := make([]float64, len(v.members))
		for j, m := range v.members {
			r[j] = radii[m]
		}
		ret[i] = StratumInfo{Bound: v.bound, Count: len(r)}
		if len(r) > 1 {
			ret[i].MeanRadius, ret[i].StdRadius = stat.MeanStdDev(r, nil)
		} else {
			ret[i].MeanRadius = r[0]
		}
	}
	return ret
}
