/*
 * doc.go, part of closepairs.
 *
 * Copyright 2021 Raul Mera <rauldotmeraatusachdotcl>
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

// Package xyzr reads and writes sphere sets, one or more frames per file,
// in a simple text format that is easy to produce from other programs.
//
// An xyzr file may only contain ASCII symbols. It starts with a header of
// key=value lines, ending with a line with the characters "**", one or more
// spaces and the number of spheres per frame. The key "prec" gives the
// precision (see below). If it is missing, 3 is assumed.
//
// After the header, each frame has one line per sphere with 5 integers:
// the sphere ID, then the x, y and z coordinates of its center and its
// radius, each multiplied by 10 to the power of the precision and rounded.
// A frame ends with a line starting with "*". The line may carry 6 more
// numbers, in plain decimal notation: the minimum and maximum corners of
// the periodic cell of the frame.
//
// Files whose names end in ".zst" are compressed with Zstandard, those
// ending in ".gz" with gzip. Other files are read and written as plain text.
package xyzr
