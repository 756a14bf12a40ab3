// Copyright 2017 The Gosand Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opt

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// StepComputer assembles and solves the Newton system at a given state and
// barrier level, updates the penalty multiplier of the merit function, and
// scales the raw Newton direction by the fraction-to-boundary step lengths.
type StepComputer struct {

	// collaborators
	Prob Problem      // KKT system assembly
	Lis  LinearSolver // direct sparse solver

	// configuration
	Nbisect int     // number of bisection iterations for the step lengths
	MinFtb  float64 // lower clamp of the fraction-to-boundary factor
	MaxFtb  float64 // upper clamp of the fraction-to-boundary factor
	Verbose bool    // print penalty multiplier updates

	// penalty multiplier of the l1 merit function. Monotonically
	// non-decreasing over the whole run; mutated only here, read by
	// MeritFunction through a pointer.
	Pen float64
}

// NewStepComputer returns a step computer with the given collaborators
func NewStepComputer(prob Problem, lis LinearSolver, nbisect int, minFtb, maxFtb float64) (o *StepComputer) {
	o = new(StepComputer)
	o.Prob = prob
	o.Lis = lis
	o.Nbisect = nbisect
	o.MinFtb = minFtb
	o.MaxFtb = maxFtb
	o.Pen = 1
	return
}

// FindMaxStep computes the largest feasible scaled Newton step from state.
// As a side effect, the penalty multiplier is raised whenever the model
// test value exceeds it (Nocedal & Wright, Eq. 18.36).
func (o *StepComputer) FindMaxStep(state *BlockState, barrier float64) (maxStep *BlockState, err error) {

	// assemble and solve Kb·step = fb
	Kb, fb, err := o.Prob.Assemble(state, barrier)
	if err != nil {
		return nil, chk.Err("cannot assemble KKT system: %v", err)
	}
	x, err := o.Lis.Solve(Kb, fb.V)
	if err != nil {
		return nil, chk.Err("linear solver failed: %v", err)
	}
	step := &BlockState{state.Lay, x}
	o.Prob.Distribute(step)

	// penalty multiplier update. gradPart is the directional derivative of
	// the Lagrangian over the decision blocks; hessPart its curvature along
	// the step; constraintNorm the summed l∞ norms of the equality residuals.
	var hessPart, gradPart, constraintNorm float64
	hessPart = o.Prob.DecisionQuadForm(step)
	for _, b := range DecisionBlocks {
		gradPart -= fb.BlockDot(b, step)
	}
	for _, b := range EqualityBlocks {
		constraintNorm += fb.BlockLargest(b)
	}
	var testPen float64
	if hessPart > 0 {
		testPen = (gradPart + 0.5*hessPart) / (0.05 * constraintNorm)
	} else {
		testPen = gradPart / (0.05 * constraintNorm)
	}
	if testPen > o.Pen {
		o.Pen = testPen
		if o.Verbose {
			io.Pforan("penalty multiplier updated to %g\n", o.Pen)
		}
	}

	// fraction-to-boundary step lengths: one for the primal slacks, one
	// for their multipliers
	stepSizeS, stepSizeZ := o.MaxStepSizes(state, step, barrier)

	// primal-related blocks use the primal length; multiplier blocks the
	// dual length
	maxStep = NewBlockState(state.Lay)
	scale := func(b int, length float64) {
		dst, src := maxStep.Block(b), step.Block(b)
		for i := range dst {
			dst[i] = length * src[i]
		}
	}
	scale(Density, stepSizeS)
	scale(Displacement, stepSizeS)
	scale(UnfilteredDensity, stepSizeS)
	scale(DisplacementMultiplier, stepSizeZ)
	scale(UnfilteredDensityMultiplier, stepSizeZ)
	scale(DensityLowerSlack, stepSizeS)
	scale(DensityLowerSlackMultiplier, stepSizeZ)
	scale(DensityUpperSlack, stepSizeS)
	scale(DensityUpperSlackMultiplier, stepSizeZ)
	return
}

// MaxStepSizes bisects for the largest step lengths in [0,1] keeping the
// slack blocks (s) and the slack multiplier blocks (z) non-negative after
// the move τ·state + length·step, where τ is the fraction-to-boundary
// factor clamp(1−barrier, MinFtb, MaxFtb). The comparisons at the clamp
// boundaries are deliberately strict.
func (o *StepComputer) MaxStepSizes(state, step *BlockState, barrier float64) (stepSizeS, stepSizeZ float64) {

	var ftb float64
	if o.MinFtb < 1-barrier {
		if 1-barrier < o.MaxFtb {
			ftb = 1 - barrier
		} else {
			ftb = o.MaxFtb
		}
	} else {
		ftb = o.MinFtb
	}

	var sLow, zLow float64
	sHigh, zHigh := 1.0, 1.0
	for k := 0; k < o.Nbisect; k++ {
		s := (sLow + sHigh) / 2
		z := (zLow + zHigh) / 2

		testS := ScaledSum(ftb, state, s, step)
		testZ := ScaledSum(ftb, state, z, step)

		acceptS := testS.BlockNonNeg(DensityLowerSlack) && testS.BlockNonNeg(DensityUpperSlack)
		acceptZ := testZ.BlockNonNeg(DensityLowerSlackMultiplier) && testZ.BlockNonNeg(DensityUpperSlackMultiplier)

		if acceptS {
			sLow = s
		} else {
			sHigh = s
		}
		if acceptZ {
			zLow = z
		} else {
			zHigh = z
		}
	}

	// the low ends of the brackets are guaranteed feasible
	return sLow, zLow
}
