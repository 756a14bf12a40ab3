// Copyright 2017 The Gosand Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kkt

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gosand/opt"
)

func Test_system01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("system01. layout and initial state")

	sys := NewSystem(smallSim())
	lay := sys.Layout()

	np, nu := 24, 2*39
	chk.IntAssert(lay.Sizes[opt.Density], np)
	chk.IntAssert(lay.Sizes[opt.Displacement], nu)
	chk.IntAssert(lay.Sizes[opt.DensityUpperSlackMultiplier], np)
	chk.IntAssert(lay.Ntotal, 7*np+2*nu)
	chk.IntAssert(lay.DecisionEnd(), 2*np+nu)

	s := sys.InitialState()
	chk.Scalar(tst, "initial density", 1e-17, s.Block(opt.Density)[0], 0.5)
	chk.Scalar(tst, "initial sL", 1e-17, s.Block(opt.DensityLowerSlack)[np-1], 0.5)
	chk.Scalar(tst, "initial sU", 1e-17, s.Block(opt.DensityUpperSlack)[0], 0.5)
	chk.Scalar(tst, "initial zL", 1e-17, s.Block(opt.DensityLowerSlackMultiplier)[0], 50)
	chk.Scalar(tst, "initial u", 1e-17, s.Block(opt.Displacement)[3], 0)

	// compliance of the undeformed state is zero
	chk.Scalar(tst, "objective", 1e-17, sys.Objective(s), 0)
}

func Test_system02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("system02. residual structure at the initial state")

	sys := NewSystem(smallSim())
	s := sys.InitialState()

	// barrier 25 makes the complementarity residuals vanish exactly:
	// zL = zU = 50 = 25/0.5
	fb, err := sys.Residual(s, 25)
	if err != nil {
		tst.Errorf("Residual failed:\n%v", err)
		return
	}

	zero := make([]float64, 24)
	chk.Vector(tst, "density eqn", 1e-13, fb.Block(opt.Density), zero)
	chk.Vector(tst, "filter eqn", 1e-13, fb.Block(opt.UnfilteredDensityMultiplier), zero)
	chk.Vector(tst, "lower bound eqn", 1e-13, fb.Block(opt.DensityLowerSlackMultiplier), zero)
	chk.Vector(tst, "upper bound eqn", 1e-13, fb.Block(opt.DensityUpperSlackMultiplier), zero)
	chk.Vector(tst, "lower compl eqn", 1e-12, fb.Block(opt.DensityLowerSlack), zero)
	chk.Vector(tst, "upper compl eqn", 1e-12, fb.Block(opt.DensityUpperSlack), zero)

	// the elasticity equations carry the traction load (fb = -residual)
	neg := make([]float64, len(sys.Fload))
	for i, f := range sys.Fload {
		neg[i] = -f
	}
	chk.Vector(tst, "elasticity eqn", 1e-14, fb.Block(opt.Displacement), neg)
	chk.Vector(tst, "adjoint eqn", 1e-14, fb.Block(opt.DisplacementMultiplier), sys.Fload)

	// determinism: a second evaluation is bit-identical
	fb2, err := sys.Residual(s, 25)
	if err != nil {
		tst.Errorf("Residual failed:\n%v", err)
		return
	}
	chk.Vector(tst, "determinism", 1e-17, fb.V, fb2.V)

	// Assemble produces the same right-hand side
	_, fb3, err := sys.Assemble(s, 25)
	if err != nil {
		tst.Errorf("Assemble failed:\n%v", err)
		return
	}
	chk.Vector(tst, "Assemble vs Residual", 1e-17, fb.V, fb3.V)
}

func Test_system03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("system03. volume condensation and quadratic form")

	sys := NewSystem(smallSim())
	s := sys.InitialState()

	// Distribute closes the volume balance of a solved step
	step := opt.NewBlockState(sys.Lay)
	ρ := step.Block(opt.Density)
	for i := range ρ {
		ρ[i] = float64(i%7) - 3
	}
	sys.Distribute(step)
	var sum float64
	for _, v := range ρ {
		sum += v
	}
	chk.Scalar(tst, "density step sums to zero", 1e-13, sum, 0)

	// with zero displacement and multiplier fields the decision-block
	// couplings of the Jacobian vanish, so the quadratic form is zero
	_, _, err := sys.Assemble(s, 25)
	if err != nil {
		tst.Errorf("Assemble failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "quad form (density step)", 1e-13, sys.DecisionQuadForm(step), 0)

	// solved steps vanish at the constrained dofs, where the eliminated
	// rows keep a unit diagonal
	u := step.Block(opt.Displacement)
	for i := range u {
		u[i] = 0.01 * float64(i%3)
	}
	for _, d := range sys.Grid.FixedDispDofs() {
		u[d] = 0
	}
	chk.Scalar(tst, "quad form (mixed step)", 1e-13, sys.DecisionQuadForm(step), 0)
}
