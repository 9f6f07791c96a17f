/*
 * sphere.go, part of closepairs.
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

	"gonum.org/v1/gonum/spatial/r3"
)

// Sphere is a ball in the world frame. The ID is the identity of the
// object in its SphereSource and is what pairs are made of.
type Sphere struct {
	ID     int
	Center r3.Vec
	Radius float64
}

// Box returns the axis-aligned box enclosing the sphere.
func (s Sphere) Box() r3.Box {
	r := r3.Vec{X: s.Radius, Y: s.Radius, Z: s.Radius}
	return r3.Box{Min: r3.Sub(s.Center, r), Max: r3.Add(s.Center, r)}
}

// SurfaceDistance returns the distance between the surfaces of a and b,
// which is negative if they overlap.
func SurfaceDistance(a, b Sphere) float64 {
	return r3.Norm(r3.Sub(a.Center, b.Center)) - a.Radius - b.Radius
}

// Close tells whether the surfaces of a and b are within d of each other.
func Close(a, b Sphere, d float64) bool {
	return closeDelta(r3.Sub(a.Center, b.Center), a.Radius+b.Radius+d)
}

// closeDelta tells whether the center difference v is not longer than sr.
// Each axis is checked first, since most candidates fail there.
func closeDelta(v r3.Vec, sr float64) bool {
	if math.Abs(v.X) > sr || math.Abs(v.Y) > sr || math.Abs(v.Z) > sr {
		return false
	}
	return r3.Norm2(v) <= sr*sr
}

// BoxesClose tells whether a, inflated by d in every direction, overlaps b.
func BoxesClose(a, b r3.Box, d float64) bool {
	return a.Min.X-d <= b.Max.X && b.Min.X <= a.Max.X+d &&
		a.Min.Y-d <= b.Max.Y && b.Min.Y <= a.Max.Y+d &&
		a.Min.Z-d <= b.Max.Z && b.Min.Z <= a.Max.Z+d
}

// EnclosingSphere returns a sphere containing every sphere in s. It is
// centered on the middle of the bounding box of the spheres, which is not
// the minimal sphere, but is good enough for culling.
func EnclosingSphere(s []Sphere) Sphere {
	if len(s) == 0 {
		return Sphere{}
	}
	box := s[0].Box()
	for _, v := range s[1:] {
		box = joinBoxes(box, v.Box())
	}
	c := box.Center()
	var r float64
	for _, v := range s {
		r = math.Max(r, r3.Norm(r3.Sub(v.Center, c))+v.Radius)
	}
	return Sphere{Center: c, Radius: r}
}

// roundingMargin bounds how far a bounding sphere moved to another frame
// can fall short of the members moved on their own.
func roundingMargin(s Sphere) float64 {
	return 1e-9 * (1 + s.Radius + r3.Norm(s.Center))
}

// maxRadius returns the largest radius in s, 0 for an empty s.
func maxRadius(s []Sphere) float64 {
	var m float64
	for _, v := range s {
		if v.Radius > m {
			m = v.Radius
		}
	}
	return m
}

// centerBox returns the bounding box of the centers of the spheres of s
// whose indexes are in idx.
func centerBox(s []Sphere, idx []int) r3.Box {
	if len(idx) == 0 {
		return r3.Box{}
	}
	b := r3.Box{Min: s[idx[0]].Center, Max: s[idx[0]].Center}
	for _, i := range idx[1:] {
		b = extendBox(b, s[i].Center)
	}
	return b
}

// extendBox returns the smallest box containing b and v. Unlike r3.Box
// methods, it treats flat and point boxes as valid.
func extendBox(b r3.Box, v r3.Vec) r3.Box {
	return r3.Box{
		Min: r3.Vec{X: math.Min(b.Min.X, v.X), Y: math.Min(b.Min.Y, v.Y), Z: math.Min(b.Min.Z, v.Z)},
		Max: r3.Vec{X: math.Max(b.Max.X, v.X), Y: math.Max(b.Max.Y, v.Y), Z: math.Max(b.Max.Z, v.Z)},
	}
}

// joinBoxes returns the smallest box containing a and b, flat or not.
func joinBoxes(a, b r3.Box) r3.Box {
	return extendBox(extendBox(a, b.Min), b.Max)
}

// checkSpheres returns a ConfigError if some sphere has a negative, NaN or
// infinite radius, or a non-finite center.
func checkSpheres(caller string, s []Sphere) error {
	for _, v := range s {
		if v.Radius < 0 || math.IsNaN(v.Radius) || math.IsInf(v.Radius, 0) {
			return newConfigError(caller, "sphere %d has an invalid radius %v", v.ID, v.Radius)
		}
		if !finite(v.Center) {
			return newConfigError(caller, "sphere %d has a non-finite center %v", v.ID, v.Center)
		}
	}
	return nil
}

func checkBoxes(caller string, b []r3.Box) error {
	for i, v := range b {
		if !finite(v.Min) || !finite(v.Max) {
			return newConfigError(caller, "box %d is not finite", i)
		}
		if v.Min.X > v.Max.X || v.Min.Y > v.Max.Y || v.Min.Z > v.Max.Z {
			return newConfigError(caller, "box %d has its minimum above its maximum", i)
		}
	}
	return nil
}

func finite(v r3.Vec) bool {
	return !math.IsNaN(v.X+v.Y+v.Z) && !math.IsInf(v.X+v.Y+v.Z, 0)
}

// boxSpheres returns, for each box, a sphere enclosing it grown by extra,
// with the index of the box as ID.
func boxSpheres(b []r3.Box, extra float64) []Sphere {
	ret := make([]Sphere, len(b))
	for i, v := range b {
		ret[i] = Sphere{ID: i, Center: v.Center(), Radius: 0.5*r3.Norm(v.Size()) + extra}
	}
	return ret
}
