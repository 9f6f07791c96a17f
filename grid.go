/*
 * grid.go, part of closepairs.
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

type cellIndex [3]int

// fullOffsets holds the 27 cells around a cell, the cell itself included.
// halfOffsets holds the 13 that come after the cell in lexicographic
// order, so each pair of neighbouring cells is visited once.
var fullOffsets, halfOffsets []cellIndex

func init() {
	for i := -1; i <= 1; i++ {
		for j := -1; j <= 1; j++ {
			for k := -1; k <= 1; k++ {
				o := cellIndex{i, j, k}
				fullOffsets = append(fullOffsets, o)
				if i > 0 || (i == 0 && j > 0) || (i == 0 && j == 0 && k > 0) {
					halfOffsets = append(halfOffsets, o)
				}
			}
		}
	}
}

// cell holds object indexes, tagged by the side they come from.
type cell struct {
	a, b []int
}

// sparseGrid hashes points to cubic cells. Only occupied cells are stored.
type sparseGrid struct {
	side   [3]float64
	origin [3]float64
	dims   [3]int
	wrap   [3]bool
	cells  map[cellIndex]*cell
	order  []cellIndex
}

// newSparseGrid returns an empty grid over box, with cells of the given
// side. Along the wrapped axes of pc the grid covers the periodic cell
// instead, and the side grows so a whole number of cells fits in it.
func newSparseGrid(box r3.Box, side float64, pc *PeriodicCell) *sparseGrid {
	g := &sparseGrid{cells: make(map[cellIndex]*cell)}
	min := [3]float64{box.Min.X, box.Min.Y, box.Min.Z}
	size := box.Size()
	ext := [3]float64{size.X, size.Y, size.Z}
	for ax := 0; ax < 3; ax++ {
		if l, ok := pc.period(ax); ok {
			n := int(math.Floor(l / side))
			if n < 1 {
				n = 1
			}
			g.side[ax] = l / float64(n)
			g.dims[ax] = n
			g.wrap[ax] = true
			g.origin[ax] = [3]float64{pc.Box.Min.X, pc.Box.Min.Y, pc.Box.Min.Z}[ax]
			continue
		}
		g.side[ax] = side
		g.origin[ax] = min[ax]
		g.dims[ax] = int(math.Floor(ext[ax]/side)) + 1
	}
	return g
}

func wrapIndex(k, n int) int {
	k %= n
	if k < 0 {
		k += n
	}
	return k
}

// index returns the cell v falls in. A point outside the grid is a bug
// in the caller and raises a ConsistencyError.
func (g *sparseGrid) index(v r3.Vec) cellIndex {
	p := [3]float64{v.X, v.Y, v.Z}
	var c cellIndex
	for ax := 0; ax < 3; ax++ {
		k := int(math.Floor((p[ax] - g.origin[ax]) / g.side[ax]))
		if g.wrap[ax] {
			k = wrapIndex(k, g.dims[ax])
		}
		if k < 0 || k >= g.dims[ax] {
			inconsistent("sparseGrid.index", "point %v falls in cell %d of %d along axis %d", v, k, g.dims[ax], ax)
		}
		c[ax] = k
	}
	return c
}

func (g *sparseGrid) get(c cellIndex) *cell {
	ce, ok := g.cells[c]
	if !ok {
		ce = new(cell)
		g.cells[c] = ce
		g.order = append(g.order, c)
	}
	return ce
}

// insertA and insertB add the object i, centered on v, on each side.
func (g *sparseGrid) insertA(v r3.Vec, i int) {
	ce := g.get(g.index(v))
	ce.a = append(ce.a, i)
}

func (g *sparseGrid) insertB(v r3.Vec, i int) {
	ce := g.get(g.index(v))
	ce.b = append(ce.b, i)
}

// visit calls fn on each occupied cell at the given offsets from c.
// With wrapped axes of fewer than 3 cells, several offsets may reach
// the same cell, which is then visited once. The cell c itself is only
// visited if the zero offset is among offsets.
func (g *sparseGrid) visit(c cellIndex, offsets []cellIndex, fn func(*cell)) {
	var seen [27]cellIndex
	ns := 0
	for _, o := range offsets {
		var n cellIndex
		ok := true
		for ax := 0; ax < 3; ax++ {
			k := c[ax] + o[ax]
			if g.wrap[ax] {
				k = wrapIndex(k, g.dims[ax])
			} else if k < 0 || k >= g.dims[ax] {
				ok = false
				break
			}
			n[ax] = k
		}
		if !ok || (n == c && o != (cellIndex{})) {
			continue
		}
		dup := false
		for _, s := range seen[:ns] {
			if s == n {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		seen[ns] = n
		ns++
		if ce, ok := g.cells[n]; ok {
			fn(ce)
		}
	}
}

// occupied returns the number of occupied cells.
func (g *sparseGrid) occupied() int {
	return len(g.cells)
}
