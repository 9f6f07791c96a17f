/*
 * quadratic.go, part of closepairs.
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

// QuadraticFinder tests every pair of objects. It is exact.
type QuadraticFinder struct {
	finderBase
	cell *PeriodicCell
}

// NewQuadraticFinder returns a QuadraticFinder with the distance and
// periodic cell of O. O may be nil.
func NewQuadraticFinder(O *Options) *QuadraticFinder {
	if O == nil {
		O = DefaultOptions()
	}
	return &QuadraticFinder{finderBase: finderBase{distance: O.distance}, cell: O.cell.clone()}
}

func (F *QuadraticFinder) ClosePairs(s []Sphere) (Pairs, error) {
	if err := checkSpheres("QuadraticFinder.ClosePairs", s); err != nil {
		return nil, err
	}
	ret := make(Pairs, 0, len(s))
	for i := range s {
		for j := i + 1; j < len(s); j++ {
			if s[i].ID != s[j].ID && F.close(s[i], s[j]) {
				ret = append(ret, NewPair(s[i].ID, s[j].ID))
			}
		}
	}
	return ret.Canonical(), nil
}

func (F *QuadraticFinder) BipartiteClosePairs(a, b []Sphere) (Pairs, error) {
	if err := checkSpheres("QuadraticFinder.BipartiteClosePairs", a); err != nil {
		return nil, err
	}
	if err := checkSpheres("QuadraticFinder.BipartiteClosePairs", b); err != nil {
		return nil, err
	}
	var ret Pairs
	for _, u := range a {
		for _, v := range b {
			if u.ID != v.ID && F.close(u, v) {
				ret = append(ret, NewPair(u.ID, v.ID))
			}
		}
	}
	return ret.Canonical(), nil
}

func (F *QuadraticFinder) close(a, b Sphere) bool {
	return closeDelta(F.cell.delta(a.Center, b.Center), a.Radius+b.Radius+F.distance)
}

func (F *QuadraticFinder) BoxClosePairs(boxes []r3.Box) ([][2]int, error) {
	if err := checkBoxes("QuadraticFinder.BoxClosePairs", boxes); err != nil {
		return nil, err
	}
	var ret [][2]int
	for i := range boxes {
		for j := i + 1; j < len(boxes); j++ {
			if BoxesClose(boxes[i], boxes[j], F.distance) {
				ret = append(ret, [2]int{i, j})
			}
		}
	}
	return ret, nil
}

func (F *QuadraticFinder) BipartiteBoxClosePairs(a, b []r3.Box) ([][2]int, error) {
	if err := checkBoxes("QuadraticFinder.BipartiteBoxClosePairs", a); err != nil {
		return nil, err
	}
	if err := checkBoxes("QuadraticFinder.BipartiteBoxClosePairs", b); err != nil {
		return nil, err
	}
	var ret [][2]int
	for i := range a {
		for j := range b {
			if BoxesClose(a[i], b[j], F.distance) {
				ret = append(ret, [2]int{i, j})
			}
		}
	}
	return ret, nil
}
