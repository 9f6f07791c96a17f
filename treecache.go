/*
 * treecache.go, part of closepairs.
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

// TreeCache keeps one ClusterTree per cluster ID and rebuilds it when the
// cluster it was built from is replaced or changes version.
type TreeCache struct {
	leafSize int
	trees    map[int]*ClusterTree
	builds   int
}

// NewTreeCache returns an empty cache whose trees have leaves of up to
// leafSize members.
func NewTreeCache(leafSize int) (*TreeCache, error) {
	if leafSize < 1 {
		return nil, newConfigError("NewTreeCache", "leaf size must be positive, got %d", leafSize)
	}
	return &TreeCache{leafSize: leafSize, trees: make(map[int]*ClusterTree)}, nil
}

// Tree returns the tree for C, building it if needed.
func (T *TreeCache) Tree(C *RigidCluster) (*ClusterTree, error) {
	if t, ok := T.trees[C.ID]; ok && t.cluster == C && t.version == C.Version {
		return t, nil
	}
	t, err := NewClusterTree(C, T.leafSize)
	if err != nil {
		return nil, errDecorate(err, "TreeCache.Tree")
	}
	T.trees[C.ID] = t
	T.builds++
	return t, nil
}

// Forget drops the tree of the cluster id, if any.
func (T *TreeCache) Forget(id int) {
	delete(T.trees, id)
}

// Len returns the number of trees in the cache.
func (T *TreeCache) Len() int {
	return len(T.trees)
}

// Builds returns how many trees the cache has built.
func (T *TreeCache) Builds() int {
	return T.builds
}
