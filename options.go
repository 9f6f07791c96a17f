/*
 * options.go, part of closepairs.
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
	"encoding/json"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// PeriodicCell describes a periodic boundary. Along the axes where Wrap is
// true, space repeats with the period given by the size of Box, and
// distances are measured to the closest image.
type PeriodicCell struct {
	Box  r3.Box
	Wrap [3]bool
}

// clone returns a copy of P, so that finders and containers don't share
// the cell of the Options they were built from.
func (P *PeriodicCell) clone() *PeriodicCell {
	if P == nil {
		return nil
	}
	c := *P
	return &c
}

func (P *PeriodicCell) period(axis int) (float64, bool) {
	if P == nil || !P.Wrap[axis] {
		return 0, false
	}
	s := P.Box.Size()
	return [3]float64{s.X, s.Y, s.Z}[axis], true
}

// delta returns a-b, replaced by its minimum image along wrapped axes.
func (P *PeriodicCell) delta(a, b r3.Vec) r3.Vec {
	d := r3.Sub(a, b)
	if P == nil {
		return d
	}
	if l, ok := P.period(0); ok {
		d.X -= l * math.Round(d.X/l)
	}
	if l, ok := P.period(1); ok {
		d.Y -= l * math.Round(d.Y/l)
	}
	if l, ok := P.period(2); ok {
		d.Z -= l * math.Round(d.Z/l)
	}
	return d
}

// wrap returns v moved into the cell along the wrapped axes.
func (P *PeriodicCell) wrap(v r3.Vec) r3.Vec {
	if P == nil {
		return v
	}
	w := func(x, min float64, axis int) float64 {
		l, ok := P.period(axis)
		if !ok {
			return x
		}
		x = min + math.Mod(x-min, l)
		if x < min {
			x += l
		}
		if x >= min+l {
			x = min
		}
		return x
	}
	return r3.Vec{X: w(v.X, P.Box.Min.X, 0), Y: w(v.Y, P.Box.Min.Y, 1), Z: w(v.Z, P.Box.Min.Z, 2)}
}

func (P *PeriodicCell) check(caller string) error {
	if P == nil {
		return nil
	}
	for i := 0; i < 3; i++ {
		if l, ok := P.period(i); ok && (l <= 0 || math.IsNaN(l) || math.IsInf(l, 0)) {
			return newConfigError(caller, "periodic cell has a non-positive period along axis %d", i)
		}
	}
	return nil
}

// Options contains the parameters of the finders, the cluster trees and
// the container.
type Options struct {
	kind         FinderKind
	distance     float64
	slack        float64
	leafSize     int
	minGridSize  int
	minCellSide  float64
	stratumFloor float64
	cell         *PeriodicCell
}

// DefaultOptions returns a pointer to an Options with the default values:
// the grid finder, distance 0, slack 1, leaves of up to 10 members, grids
// for groups of at least 100 objects, no periodic boundary.
func DefaultOptions() *Options {
	r := new(Options)
	r.kind = Grid
	r.distance = 0
	r.slack = 1
	r.leafSize = 10
	r.minGridSize = 100
	r.minCellSide = 0.01
	r.stratumFloor = 0.1
	return r
}

// Kind returns the finder variant to use,
// and sets it to a new value, if given.
func (O *Options) Kind(k ...FinderKind) FinderKind {
	if len(k) > 0 {
		O.kind = k[0]
	}
	return O.kind
}

// Distance returns the threshold on surface separation,
// and sets it to a new value, if given.
func (O *Options) Distance(d ...float64) float64 {
	if len(d) > 0 {
		O.distance = d[0]
	}
	return O.distance
}

// Slack returns how far objects may move before cached pairs
// are recomputed, and sets it to a new value, if given.
func (O *Options) Slack(s ...float64) float64 {
	if len(s) > 0 {
		O.slack = s[0]
	}
	return O.slack
}

// LeafSize returns the largest number of members in a tree leaf,
// and sets it to a new value, if given.
func (O *Options) LeafSize(n ...int) int {
	if len(n) > 0 {
		O.leafSize = n[0]
	}
	return O.leafSize
}

// MinGridSize returns the smallest group of objects for which a grid
// is built (smaller ones are tested exhaustively), and sets it to a new
// value, if given.
func (O *Options) MinGridSize(n ...int) int {
	if len(n) > 0 {
		O.minGridSize = n[0]
	}
	return O.minGridSize
}

// MinCellSide returns the smallest side a grid cell can have,
// and sets it to a new value, if given.
func (O *Options) MinCellSide(x ...float64) float64 {
	if len(x) > 0 {
		O.minCellSide = x[0]
	}
	return O.minCellSide
}

// StratumFloor returns the smallest radius bound a stratum can have,
// and sets it to a new value, if given.
func (O *Options) StratumFloor(x ...float64) float64 {
	if len(x) > 0 {
		O.stratumFloor = x[0]
	}
	return O.stratumFloor
}

// Periodic returns the periodic cell, nil if there is none.
// If a box is given, the cell is set to it, wrapping all three axes.
// SetPeriodic sets a cell that wraps only some of them.
func (O *Options) Periodic(box ...r3.Box) *PeriodicCell {
	if len(box) > 0 {
		O.cell = &PeriodicCell{Box: box[0], Wrap: [3]bool{true, true, true}}
	}
	return O.cell
}

// SetPeriodic sets the periodic cell to a copy of cell. A nil cell
// removes it.
func (O *Options) SetPeriodic(cell *PeriodicCell) {
	O.cell = cell.clone()
}

// Check returns a ConfigError if some option has an invalid value.
func (O *Options) Check() error {
	if err := checkNonNegative("Options.Check", "distance", O.distance); err != nil {
		return err
	}
	if err := checkNonNegative("Options.Check", "slack", O.slack); err != nil {
		return err
	}
	if O.leafSize < 1 {
		return newConfigError("Options.Check", "leaf size must be positive, got %d", O.leafSize)
	}
	if O.minGridSize < 2 {
		return newConfigError("Options.Check", "minimum grid size must be at least 2, got %d", O.minGridSize)
	}
	if !(O.minCellSide > 0) || math.IsInf(O.minCellSide, 0) {
		return newConfigError("Options.Check", "minimum cell side must be positive, got %v", O.minCellSide)
	}
	if !(O.stratumFloor > 0) || math.IsInf(O.stratumFloor, 0) {
		return newConfigError("Options.Check", "stratum floor must be positive, got %v", O.stratumFloor)
	}
	if O.kind < Quadratic || O.kind > NearestNeighbor {
		return newConfigError("Options.Check", "unknown finder kind %d", O.kind)
	}
	return O.cell.check("Options.Check")
}

type jsonOptions struct {
	Kind         string
	Distance     float64
	Slack        float64
	LeafSize     int
	MinGridSize  int
	MinCellSide  float64
	StratumFloor float64
	Periodic     *PeriodicCell `json:",omitempty"`
}

// MarshalJSON encodes O, the finder kind as its name.
func (O *Options) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonOptions{
		Kind:         O.kind.String(),
		Distance:     O.distance,
		Slack:        O.slack,
		LeafSize:     O.leafSize,
		MinGridSize:  O.minGridSize,
		MinCellSide:  O.minCellSide,
		StratumFloor: O.stratumFloor,
		Periodic:     O.cell,
	})
}

// UnmarshalJSON decodes O. Fields missing from data keep their
// current values, and the result is checked.
func (O *Options) UnmarshalJSON(data []byte) error {
	j := jsonOptions{
		Kind:         O.kind.String(),
		Distance:     O.distance,
		Slack:        O.slack,
		LeafSize:     O.leafSize,
		MinGridSize:  O.minGridSize,
		MinCellSide:  O.minCellSide,
		StratumFloor: O.stratumFloor,
		Periodic:     O.cell.clone(),
	}
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	k, err := ParseFinderKind(j.Kind)
	if err != nil {
		return errDecorate(err, "UnmarshalJSON")
	}
	*O = Options{kind: k, distance: j.Distance, slack: j.Slack, leafSize: j.LeafSize,
		minGridSize: j.MinGridSize, minCellSide: j.MinCellSide, stratumFloor: j.StratumFloor, cell: j.Periodic}
	return errDecorate(O.Check(), "UnmarshalJSON")
}
