/*
 * doc.go, part of closepairs.
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

/*Package closepairs finds the pairs of spheres whose surfaces are within a
distance of each other, and keeps that list up to date as the spheres move.
Spheres can be loose, or members of rigid clusters that move as one body.



	**closepairs Capabilities**


    Several interchangeable finders behind the Finder interface: an exhaustive
	one, an adaptive grid that bins spheres by size, a sweep over sorted
	boxes and a kd-tree ball query. All of them also work on boxes.

    Bounding-sphere trees over the members of rigid clusters, built once in the
	local frame of the cluster and queried in the world frame, with
	closest-member, closest-pair and all-pairs-within-distance searches.

    A RigidFinder that runs a finder over loose spheres and cluster bounding
	spheres, and expands the hits through the cluster trees.

    A Container that caches the close pairs and only recomputes them when
	something has moved farther than a slack.

    Pair filters: explicit exclusion lists, same-cluster exclusion and
	exclusion by bond-graph distance.

    Optional periodic boundaries for the grid finder.

The v3 package keeps the local coordinates of cluster members, xyzr reads
and writes sphere sets, and pairplot draws diagnostic histograms.
*/
package closepairs
