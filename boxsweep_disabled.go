//go:build noboxsweep

/*
 * boxsweep_disabled.go, part of closepairs.
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

// BoxSweepAvailable is false when the package is built with the
// noboxsweep tag, in which case NewFinder refuses the BoxSweep kind.
const BoxSweepAvailable = false

func newBoxSweepFinder(O *Options) (Finder, error) {
	return nil, newConfigError("newBoxSweepFinder", "the box sweep finder was compiled out (noboxsweep build tag)")
}
