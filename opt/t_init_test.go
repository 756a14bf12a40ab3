// Copyright 2017 The Gosand Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opt

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// pinProblem is a miniature equality-constrained problem used to exercise
// the driver components: minimize c·x subject to x = a, with multiplier y.
// The KKT residual is (y+c, x-a) and the Newton matrix is [[0,1],[1,0]].
type pinProblem struct {
	lay *Layout
	a   float64 // constraint target
	c   float64 // objective coefficient
}

func newPinProblem(a, c float64) *pinProblem {
	sizes := make([]int, NumBlocks)
	sizes[Density] = 1
	sizes[DisplacementMultiplier] = 1
	return &pinProblem{NewLayout(sizes), a, c}
}

func (o *pinProblem) Layout() *Layout { return o.lay }

func (o *pinProblem) Residual(state *BlockState, barrier float64) (*BlockState, error) {
	fb := NewBlockState(o.lay)
	x := state.Block(Density)[0]
	y := state.Block(DisplacementMultiplier)[0]
	fb.Block(Density)[0] = -(y + o.c)
	fb.Block(DisplacementMultiplier)[0] = -(x - o.a)
	return fb, nil
}

func (o *pinProblem) Assemble(state *BlockState, barrier float64) (*la.Triplet, *BlockState, error) {
	Kb := new(la.Triplet)
	Kb.Init(2, 2, 2)
	Kb.Start()
	Kb.Put(0, 1, 1)
	Kb.Put(1, 0, 1)
	fb, _ := o.Residual(state, barrier)
	return Kb, fb, nil
}

func (o *pinProblem) Objective(state *BlockState) float64 {
	return o.c * state.Block(Density)[0]
}

func (o *pinProblem) DecisionQuadForm(step *BlockState) float64 {
	return 0 // the decision sub-matrix of [[0,1],[1,0]] is zero
}

func (o *pinProblem) Distribute(step *BlockState) {}

// pinSolver solves the fixed 2×2 antidiagonal Newton system of pinProblem
type pinSolver struct{}

func (o pinSolver) Solve(Kb *la.Triplet, b []float64) ([]float64, error) {
	return []float64{b[1], b[0]}, nil
}
