// Copyright 2017 The Gosand Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package opt implements the primal-dual interior-point driver for the
// SIMP topology optimization problem: the watchdog globalization loop,
// the exact l1 merit function, the backtracking line search, and the
// barrier continuation schedule
package opt

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// block indices of the 9-block KKT state vector
const (
	Density = iota
	Displacement
	UnfilteredDensity
	DisplacementMultiplier
	UnfilteredDensityMultiplier
	DensityLowerSlack
	DensityLowerSlackMultiplier
	DensityUpperSlack
	DensityUpperSlackMultiplier
	NumBlocks
)

// DecisionBlocks lists the decision-variable blocks of the KKT system
var DecisionBlocks = []int{Density, Displacement, UnfilteredDensity}

// EqualityBlocks lists the blocks holding Lagrange multipliers of equality
// constraints. The residual components in these blocks measure constraint
// violation and enter the merit function and the penalty update.
var EqualityBlocks = []int{DisplacementMultiplier, UnfilteredDensityMultiplier,
	DensityLowerSlackMultiplier, DensityUpperSlackMultiplier}

// Layout holds the fixed per-block sizes of one discretization. All
// BlockState instances of one run share the same Layout.
type Layout struct {
	Sizes   []int // [NumBlocks] number of dofs per block
	Offsets []int // [NumBlocks] offset of each block in the flat vector
	Ntotal  int   // total number of dofs
}

// NewLayout returns a layout for the given block sizes
func NewLayout(sizes []int) (o *Layout) {
	if len(sizes) != NumBlocks {
		chk.Panic("layout needs %d block sizes. %d given", NumBlocks, len(sizes))
	}
	o = new(Layout)
	o.Sizes = make([]int, NumBlocks)
	o.Offsets = make([]int, NumBlocks)
	for i, sz := range sizes {
		o.Sizes[i] = sz
		o.Offsets[i] = o.Ntotal
		o.Ntotal += sz
	}
	return
}

// DecisionEnd returns the first flat index past the decision-variable blocks.
// Density, displacement and unfiltered density are laid out first, so the
// decision region is simply [0, DecisionEnd).
func (o *Layout) DecisionEnd() int {
	return o.Offsets[UnfilteredDensity] + o.Sizes[UnfilteredDensity]
}

// BlockState is one 9-block state (or step) vector stored flat. Instances
// are values: Clone before mutating if the original must survive.
type BlockState struct {
	Lay *Layout   // shared, immutable layout
	V   []float64 // flat values [Lay.Ntotal]
}

// NewBlockState returns a zeroed state with the given layout
func NewBlockState(lay *Layout) *BlockState {
	return &BlockState{lay, make([]float64, lay.Ntotal)}
}

// Clone returns a deep copy
func (o *BlockState) Clone() (c *BlockState) {
	c = NewBlockState(o.Lay)
	copy(c.V, o.V)
	return
}

// Block returns the slice corresponding to one block (shared memory)
func (o *BlockState) Block(b int) []float64 {
	return o.V[o.Lay.Offsets[b] : o.Lay.Offsets[b]+o.Lay.Sizes[b]]
}

// Fill sets all entries of one block to v
func (o *BlockState) Fill(b int, v float64) {
	la.VecFill(o.Block(b), v)
}

// ScaledSum returns a new state r = a*x + b*y
func ScaledSum(a float64, x *BlockState, b float64, y *BlockState) (r *BlockState) {
	r = NewBlockState(x.Lay)
	for i := range r.V {
		r.V[i] = a*x.V[i] + b*y.V[i]
	}
	return
}

// Add performs o += y
func (o *BlockState) Add(y *BlockState) {
	for i := range o.V {
		o.V[i] += y.V[i]
	}
}

// BlockDot returns the dot product of block b of o and y
func (o *BlockState) BlockDot(b int, y *BlockState) (res float64) {
	lo, hi := o.Lay.Offsets[b], o.Lay.Offsets[b]+o.Lay.Sizes[b]
	for i := lo; i < hi; i++ {
		res += o.V[i] * y.V[i]
	}
	return
}

// BlockL1 returns the l1 norm of one block
func (o *BlockState) BlockL1(b int) (res float64) {
	for _, v := range o.Block(b) {
		res += math.Abs(v)
	}
	return
}

// BlockLargest returns the l∞ norm of one block
func (o *BlockState) BlockLargest(b int) (res float64) {
	for _, v := range o.Block(b) {
		if math.Abs(v) > res {
			res = math.Abs(v)
		}
	}
	return
}

// BlockNonNeg tells whether every entry of one block is non-negative
func (o *BlockState) BlockNonNeg(b int) bool {
	for _, v := range o.Block(b) {
		if v < 0 {
			return false
		}
	}
	return true
}

// BlockPositive tells whether every entry of one block is strictly positive
func (o *BlockState) BlockPositive(b int) bool {
	for _, v := range o.Block(b) {
		if v <= 0 {
			return false
		}
	}
	return true
}

// L1 returns the l1 norm of the whole vector
func (o *BlockState) L1() (res float64) {
	for _, v := range o.V {
		res += math.Abs(v)
	}
	return
}

// Largest returns the l∞ norm of the whole vector
func (o *BlockState) Largest() float64 {
	return la.VecLargest(o.V, 1)
}
