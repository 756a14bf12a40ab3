// Copyright 2017 The Gosand Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opt

// LineSearch scales a full Newton step by backtracking until the merit
// satisfies a sufficient-decrease condition.
type LineSearch struct {
	Mer           *MeritFunction
	MaxBacktracks int // number of halvings before giving up
}

// TakeScaledStep backtracks from length 1, halving up to MaxBacktracks
// times, and returns state + length·step for the first length satisfying
//
//	merit(state+length·step) < merit(state) + length·descentReq·D
//
// where D is the finite-difference directional derivative of the merit
// along step. If no length satisfies the condition, the smallest length
// tried is used anyway; this is a soft failure which the watchdog logic
// compensates for on later iterations.
func (o *LineSearch) TakeScaledStep(state, step *BlockState, descentReq, barrier float64) (newState *BlockState, err error) {
	length := 1.0
	for k := 0; k < o.MaxBacktracks; k++ {
		dm, e := o.Mer.Derivative(state, step, barrier)
		if e != nil {
			return nil, e
		}
		m0, e := o.Mer.Merit(state, barrier)
		if e != nil {
			return nil, e
		}
		mTrial, e := o.Mer.Merit(ScaledSum(1, state, length, step), barrier)
		if e != nil {
			return nil, e
		}
		if mTrial < m0+length*descentReq*dm {
			break
		}
		length = length / 2
	}
	return ScaledSum(1, state, length, step), nil
}
