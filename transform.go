/*
 * transform.go, part of closepairs.
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

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Transform is a rigid motion: a rotation followed by a translation.
// The zero Transform is the identity.
type Transform struct {
	Rot   r3.Rotation
	Trans r3.Vec
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{Rot: r3.Rotation{Real: 1}}
}

// NewTransform returns the transform that rotates by alpha radians about
// axis, through the origin, and then translates by trans.
func NewTransform(alpha float64, axis, trans r3.Vec) Transform {
	if alpha == 0 || r3.Norm(axis) == 0 {
		return Transform{Rot: r3.Rotation{Real: 1}, Trans: trans}
	}
	return Transform{Rot: r3.NewRotation(alpha, axis), Trans: trans}
}

// Translation returns the transform that only translates by t.
func Translation(t r3.Vec) Transform {
	return Transform{Rot: r3.Rotation{Real: 1}, Trans: t}
}

// RotationAbout returns the rotation by alpha radians about the line
// parallel to axis that goes through p.
func RotationAbout(alpha float64, axis, p r3.Vec) Transform {
	T := NewTransform(alpha, axis, r3.Vec{})
	T.Trans = r3.Sub(p, T.rotation().Rotate(p))
	return T
}

// rotation returns the unit quaternion of T, treating the zero
// quaternion as the identity.
func (T Transform) rotation() r3.Rotation {
	q := quat.Number(T.Rot)
	n := quat.Abs(q)
	if n == 0 {
		return r3.Rotation{Real: 1}
	}
	if n != 1 {
		q = quat.Scale(1/n, q)
	}
	return r3.Rotation(q)
}

// Apply returns the image of v under T.
func (T Transform) Apply(v r3.Vec) r3.Vec {
	return r3.Add(T.rotation().Rotate(v), T.Trans)
}

// Inverse returns the transform that undoes T.
func (T Transform) Inverse() Transform {
	inv := r3.Rotation(quat.Conj(quat.Number(T.rotation())))
	return Transform{Rot: inv, Trans: r3.Scale(-1, inv.Rotate(T.Trans))}
}

// Compose returns the transform that applies U and then T.
func (T Transform) Compose(U Transform) Transform {
	rt := T.rotation()
	rot := r3.Rotation(quat.Mul(quat.Number(rt), quat.Number(U.rotation())))
	return Transform{Rot: rot, Trans: r3.Add(rt.Rotate(U.Trans), T.Trans)}
}

// RotationAngleTo returns the angle, in radians and in [0, pi], of the
// rotation that takes the orientation of T to that of U.
func (T Transform) RotationAngleTo(U Transform) float64 {
	rel := quat.Mul(quat.Number(U.rotation()), quat.Conj(quat.Number(T.rotation())))
	c := math.Abs(rel.Real)
	if c > 1 {
		c = 1
	}
	return 2 * math.Acos(c)
}

// Mat returns the rotation part of T as a 3x3 matrix.
func (T Transform) Mat() *r3.Mat {
	return T.rotation().Mat()
}
