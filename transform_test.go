/*
 * transform_test.go, part of closepairs.
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
	"gonum.org/v1/gonum/spatial/r3"
)

func assertVecNear(Te *testing.T, want, got r3.Vec, msg ...interface{}) {
	Te.Helper()
	assert.InDelta(Te, 0, r3.Norm(r3.Sub(want, got)), 1e-9, msg...)
}

func TestTransform(Te *testing.T) {
	p := r3.Vec{X: 1, Y: 2, Z: 3}
	var zero Transform
	assertVecNear(Te, p, zero.Apply(p), "the zero transform is the identity")
	assertVecNear(Te, p, Identity().Apply(p))

	T := NewTransform(math.Pi/2, r3.Vec{Z: 1}, r3.Vec{X: 10})
	assertVecNear(Te, r3.Vec{X: 8, Y: 1, Z: 3}, T.Apply(p))
	assertVecNear(Te, p, T.Inverse().Apply(T.Apply(p)))
	assertVecNear(Te, p, T.Compose(T.Inverse()).Apply(p))

	U := NewTransform(0.3, r3.Vec{X: 1, Y: 1}, r3.Vec{Y: -2})
	assertVecNear(Te, T.Apply(U.Apply(p)), T.Compose(U).Apply(p))

	c := r3.Vec{X: 5, Y: 5, Z: 5}
	R := RotationAbout(1.1, r3.Vec{X: 1, Y: 2, Z: -1}, c)
	assertVecNear(Te, c, R.Apply(c), "the center of a rotation stays put")
}

func TestRotationAngle(Te *testing.T) {
	T := NewTransform(0.4, r3.Vec{X: 1}, r3.Vec{X: 3})
	U := NewTransform(0.4+math.Pi/2, r3.Vec{X: 1}, r3.Vec{})
	assert.InDelta(Te, math.Pi/2, T.RotationAngleTo(U), 1e-9)
	assert.InDelta(Te, 0, T.RotationAngleTo(T), 1e-7)
	assert.InDelta(Te, 0, Identity().RotationAngleTo(Translation(r3.Vec{X: 4})), 1e-12)
	assert.InDelta(Te, math.Pi, Identity().RotationAngleTo(NewTransform(math.Pi, r3.Vec{Y: 1}, r3.Vec{})), 1e-9)
}
