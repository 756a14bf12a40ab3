// Copyright 2017 The Gosand Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opt

import "math"

// ConvChecker decides whether the KKT residual at the current barrier level
// is small enough to shrink the barrier.
type ConvChecker struct {
	Prob   Problem
	Factor float64 // tolerance factor; converged iff ‖fb‖₁ < Factor·barrier
}

// Converged evaluates the full nonlinear residual at (state, barrier) and
// compares its l1 norm against Factor·barrier. The inequality is strict:
// scaling the tolerance with the barrier lets early, coarse levels pass
// with only coarse accuracy.
func (o *ConvChecker) Converged(state *BlockState, barrier float64) (bool, error) {
	fb, err := o.Prob.Residual(state, barrier)
	if err != nil {
		return false, err
	}
	return fb.L1() < o.Factor*barrier, nil
}

// BarrierSchedule updates the barrier parameter between outer iterations.
// The parameter is monotonically non-increasing with a floor at Min.
type BarrierSchedule struct {
	Mult  float64 // linear reduction factor
	Expon float64 // superlinear reduction exponent
	Min   float64 // barrier floor
}

// Next returns the smaller of Mult·barrier and barrier^Expon, floored at
// Min. For barrier > 1 the linear rule wins; below 1 the power rule takes
// over and the reduction becomes superlinear.
func (o *BarrierSchedule) Next(barrier float64) float64 {
	next := barrier * o.Mult
	if p := math.Pow(barrier, o.Expon); p < next {
		next = p
	}
	if next < o.Min {
		next = o.Min
	}
	return next
}
