/*
Package octree implements a bounded-depth axis-aligned octree over point
items and answers radius queries over them.

The tree exists to turn the all-pairs distance test over a set of atoms
into an O(n*k) enumeration for k-neighbor density: each leaf holds a
small number of items, and a radius query only descends into octants
whose bounding box intersects the query sphere.

Items that cannot be separated within the maximum subdivision depth
(for example many atoms sharing one coordinate) are kept together in an
oversized leaf and Build reports ErrExcessiveDivision; queries over such
a tree remain correct but degrade toward linear scans inside the
affected octant.
*/
package octree

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrExcessiveDivision is reported by Build when items could not be
// separated within the maximum subdivision depth.
var ErrExcessiveDivision = errors.New("octree: items could not be separated within the maximum depth")

const (
	maxDepth     = 16
	leafCapacity = 8
)

// Item is a point carried by the tree together with the caller's index
// for it, typically an amino-acid array index.
type Item struct {
	Index    int
	Position r3.Vec
}

// Tree is a bounded-depth octree over a fixed set of items. A Tree is
// immutable after Build and safe for concurrent queries.
type Tree struct {
	items []Item
	root  *node
}

type node struct {
	min, max r3.Vec
	items    []int // indices into Tree.items; only set on leaves
	children []*node
	depth    int
}

// Build constructs an octree around the bounding box of items, expanded
// by margin on each axis. A nil or empty item set yields an empty tree.
// When subdivision hits the depth cap before separating items the tree
// is still returned fully usable, along with ErrExcessiveDivision.
func Build(items []Item, margin float64) (*Tree, error) {
	t := &Tree{items: items}
	if len(items) == 0 {
		return t, nil
	}

	min := items[0].Position
	max := items[0].Position
	for _, it := range items[1:] {
		min.X = math.Min(min.X, it.Position.X)
		min.Y = math.Min(min.Y, it.Position.Y)
		min.Z = math.Min(min.Z, it.Position.Z)
		max.X = math.Max(max.X, it.Position.X)
		max.Y = math.Max(max.Y, it.Position.Y)
		max.Z = math.Max(max.Z, it.Position.Z)
	}
	pad := r3.Vec{X: margin, Y: margin, Z: margin}
	t.root = &node{min: r3.Sub(min, pad), max: r3.Add(max, pad)}

	overfull := false
	for i := range items {
		if !t.root.insert(t, i) {
			overfull = true
		}
	}
	if overfull {
		return t, fmt.Errorf("octree: %d items: %w", len(items), ErrExcessiveDivision)
	}
	return t, nil
}

// insert places item index i into the subtree rooted at n. It reports
// false when a leaf at the depth cap was forced beyond its capacity.
func (n *node) insert(t *Tree, i int) bool {
	if n.children != nil {
		return n.child(t.items[i].Position).insert(t, i)
	}
	n.items = append(n.items, i)
	if len(n.items) <= leafCapacity {
		return true
	}
	if n.depth >= maxDepth {
		return false
	}
	return n.split(t)
}

// split turns a leaf into an interior node and redistributes its items.
// It reports false when redistribution itself overflowed a leaf at the
// depth cap, which happens when the items coincide.
func (n *node) split(t *Tree) bool {
	center := midpoint(n.min, n.max)
	n.children = make([]*node, 8)
	for o := 0; o < 8; o++ {
		min, max := n.min, n.max
		if o&1 != 0 {
			min.X = center.X
		} else {
			max.X = center.X
		}
		if o&2 != 0 {
			min.Y = center.Y
		} else {
			max.Y = center.Y
		}
		if o&4 != 0 {
			min.Z = center.Z
		} else {
			max.Z = center.Z
		}
		n.children[o] = &node{min: min, max: max, depth: n.depth + 1}
	}
	items := n.items
	n.items = nil
	ok := true
	for _, i := range items {
		if !n.child(t.items[i].Position).insert(t, i) {
			ok = false
		}
	}
	return ok
}

// child selects the octant of n containing p.
func (n *node) child(p r3.Vec) *node {
	center := midpoint(n.min, n.max)
	o := 0
	if p.X >= center.X {
		o |= 1
	}
	if p.Y >= center.Y {
		o |= 2
	}
	if p.Z >= center.Z {
		o |= 4
	}
	return n.children[o]
}

func midpoint(min, max r3.Vec) r3.Vec {
	return r3.Scale(0.5, r3.Add(min, max))
}

// CandidatePairs produces the unordered index pairs {i, j} with i < j
// whose items lie within cutoff of each other. Pairs are ascending
// within themselves; the ordering across the returned set is
// unspecified and callers must not depend on it.
func (t *Tree) CandidatePairs(cutoff float64) [][2]int {
	if t.root == nil {
		return nil
	}
	var pairs [][2]int
	for k := range t.items {
		it := &t.items[k]
		t.root.query(t, it.Position, cutoff, func(other int) {
			if t.items[other].Index > it.Index {
				pairs = append(pairs, [2]int{it.Index, t.items[other].Index})
			}
		})
	}
	return pairs
}

// Neighbors calls visit with the caller index of every item within
// cutoff of p, including items exactly at the cutoff distance.
func (t *Tree) Neighbors(p r3.Vec, cutoff float64, visit func(index int)) {
	if t.root == nil {
		return
	}
	t.root.query(t, p, cutoff, func(i int) { visit(t.items[i].Index) })
}

// query walks the subtree visiting every item within cutoff of p. The
// callback receives positions as indices into t.items.
func (n *node) query(t *Tree, p r3.Vec, cutoff float64, visit func(i int)) {
	if !n.intersectsSphere(p, cutoff) {
		return
	}
	if n.children != nil {
		for _, c := range n.children {
			c.query(t, p, cutoff, visit)
		}
		return
	}
	for _, i := range n.items {
		if r3.Norm(r3.Sub(t.items[i].Position, p)) <= cutoff {
			visit(i)
		}
	}
}

// intersectsSphere reports whether the node's box intersects the sphere
// centered at p with the given radius.
func (n *node) intersectsSphere(p r3.Vec, radius float64) bool {
	d2 := 0.0
	d2 += axisDist2(p.X, n.min.X, n.max.X)
	d2 += axisDist2(p.Y, n.min.Y, n.max.Y)
	d2 += axisDist2(p.Z, n.min.Z, n.max.Z)
	return d2 <= radius*radius
}

func axisDist2(v, min, max float64) float64 {
	switch {
	case v < min:
		return (min - v) * (min - v)
	case v > max:
		return (v - max) * (v - max)
	default:
		return 0
	}
}
