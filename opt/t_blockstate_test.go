// Copyright 2017 The Gosand Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opt

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_blockstate01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("blockstate01. layout and block access")

	sizes := []int{2, 6, 2, 6, 2, 2, 2, 2, 2}
	lay := NewLayout(sizes)
	chk.IntAssert(lay.Ntotal, 26)
	chk.Ints(tst, "offsets", lay.Offsets, []int{0, 2, 8, 10, 16, 18, 20, 22, 24})
	chk.IntAssert(lay.DecisionEnd(), 10)

	s := NewBlockState(lay)
	s.Fill(Density, 0.5)
	s.Fill(DensityLowerSlackMultiplier, 50)
	chk.Vector(tst, "density", 1e-17, s.Block(Density), []float64{0.5, 0.5})
	chk.Vector(tst, "zL", 1e-17, s.Block(DensityLowerSlackMultiplier), []float64{50, 50})

	// block views share memory with the flat vector
	s.Block(Density)[1] = -0.25
	chk.Scalar(tst, "V[1]", 1e-17, s.V[1], -0.25)
	chk.Scalar(tst, "L1(density)", 1e-17, s.BlockL1(Density), 0.75)
	chk.Scalar(tst, "Linf(density)", 1e-17, s.BlockLargest(Density), 0.5)
	if s.BlockNonNeg(Density) {
		tst.Errorf("BlockNonNeg must fail with a negative entry")
		return
	}
	if !s.BlockPositive(DensityLowerSlackMultiplier) {
		tst.Errorf("BlockPositive must hold for the filled multiplier block")
		return
	}
}

func Test_blockstate02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("blockstate02. clone, sums and dot products")

	sizes := []int{1, 2, 1, 2, 1, 1, 1, 1, 1}
	lay := NewLayout(sizes)

	x := NewBlockState(lay)
	y := NewBlockState(lay)
	for i := range x.V {
		x.V[i] = float64(i + 1)
		y.V[i] = 1
	}

	c := x.Clone()
	c.V[0] = 666
	chk.Scalar(tst, "x[0] unchanged", 1e-17, x.V[0], 1)

	r := ScaledSum(2, x, -1, y)
	chk.Scalar(tst, "r[3]", 1e-17, r.V[3], 2*4-1)

	x.Add(y)
	chk.Scalar(tst, "x[0] after Add", 1e-17, x.V[0], 2)

	// Displacement block of x is now {3,4}; dot with ones gives 7
	chk.Scalar(tst, "BlockDot", 1e-15, x.BlockDot(Displacement, y), 7)
	chk.Scalar(tst, "Largest", 1e-17, x.Largest(), 12)
}
