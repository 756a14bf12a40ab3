// Copyright 2017 The Gosand Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kkt

// Filter is the row-normalized density smoothing operator H: the filtered
// density equals H times the unfiltered density. Row i holds weights
// (r - d_ij) over the cells j reachable from i through face-neighbor walks
// whose centers lie within radius r; each row sums to one. Built once at
// setup and kept fixed for the whole run.
type Filter struct {
	N   int         // number of cells == number of rows
	Col [][]int     // column indices per row
	Val [][]float64 // weights per row
}

// NewFilter builds the filter matrix for the given grid and radius
func NewFilter(g *Grid, radius float64) (o *Filter) {
	o = new(Filter)
	o.N = g.Ncells
	o.Col = make([][]int, g.Ncells)
	o.Val = make([][]float64, g.Ncells)

	inSet := make(map[int]bool)
	var frontier, next, scratch []int

	for i := 0; i < g.Ncells; i++ {

		// walk outward over face neighbors, accepting cells whose center
		// is within the radius of cell i's center
		for k := range inSet {
			delete(inSet, k)
		}
		inSet[i] = true
		frontier = append(frontier[:0], i)
		o.Col[i] = append(o.Col[i][:0], i)
		o.Val[i] = append(o.Val[i][:0], radius)

		for len(frontier) > 0 {
			next = next[:0]
			for _, c := range frontier {
				scratch = g.CellNeighbors(c, scratch[:0])
				for _, n := range scratch {
					if inSet[n] {
						continue
					}
					d := g.CellDist(i, n)
					if d < radius {
						inSet[n] = true
						next = append(next, n)
						o.Col[i] = append(o.Col[i], n)
						o.Val[i] = append(o.Val[i], radius-d)
					}
				}
			}
			frontier = append(frontier[:0], next...)
		}

		// normalize the row
		var sum float64
		for _, v := range o.Val[i] {
			sum += v
		}
		for k := range o.Val[i] {
			o.Val[i][k] /= sum
		}
	}
	return
}

// Apply computes dst = H·src
func (o *Filter) Apply(dst, src []float64) {
	for i := 0; i < o.N; i++ {
		var s float64
		for k, j := range o.Col[i] {
			s += o.Val[i][k] * src[j]
		}
		dst[i] = s
	}
}

// ApplyTr computes dst = Hᵀ·src
func (o *Filter) ApplyTr(dst, src []float64) {
	for i := range dst {
		dst[i] = 0
	}
	for i := 0; i < o.N; i++ {
		for k, j := range o.Col[i] {
			dst[j] += o.Val[i][k] * src[i]
		}
	}
}

// Nnz returns the number of nonzero entries
func (o *Filter) Nnz() (n int) {
	for i := range o.Col {
		n += len(o.Col[i])
	}
	return
}
