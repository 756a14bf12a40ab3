// Copyright 2017 The Gosand Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opt

import "github.com/cpmech/gosl/chk"

// MeritFunction evaluates the exact l1 merit of a candidate state:
// the boundary-traction objective plus the penalty-weighted l1 norms of the
// equality-constraint residual blocks. The merit is nonsmooth, so it is
// always evaluated freshly at each trial point, never incrementally.
type MeritFunction struct {
	Prob  Problem  // residual-only assembly and objective
	Pen   *float64 // penalty multiplier owned by StepComputer
	FDEps float64  // perturbation of the finite-difference derivative
}

// NewMeritFunction returns a merit function reading the penalty multiplier
// of the given step computer
func NewMeritFunction(prob Problem, sc *StepComputer, fdEps float64) *MeritFunction {
	return &MeritFunction{prob, &sc.Pen, fdEps}
}

// Merit computes the exact l1 merit of state at the given barrier level
func (o *MeritFunction) Merit(state *BlockState, barrier float64) (m float64, err error) {
	m = o.Prob.Objective(state)
	fb, err := o.Prob.Residual(state, barrier)
	if err != nil {
		return 0, chk.Err("cannot evaluate residual for merit: %v", err)
	}
	for _, b := range EqualityBlocks {
		m += *o.Pen * fb.BlockL1(b)
	}
	return
}

// Derivative estimates the directional derivative of the merit at state
// along step by a one-sided finite difference with perturbation FDEps.
// It is recomputed on every call; the locality of the estimate matters
// more than the cost of the extra residual evaluations.
func (o *MeritFunction) Derivative(state, step *BlockState, barrier float64) (dm float64, err error) {
	m0, err := o.Merit(state, barrier)
	if err != nil {
		return
	}
	m1, err := o.Merit(ScaledSum(1, state, o.FDEps, step), barrier)
	if err != nil {
		return
	}
	return (m1 - m0) / o.FDEps, nil
}
