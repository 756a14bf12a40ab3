// Copyright 2017 The Gosand Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opt

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_merit01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("merit01. exact l1 merit on a pin problem")

	prob := newPinProblem(1, 2) // minimize 2x subject to x = 1
	sc := NewStepComputer(prob, pinSolver{}, 50, 0.8, 0.99999)
	mer := NewMeritFunction(prob, sc, 1e-4)

	state := NewBlockState(prob.lay)
	state.Block(Density)[0] = 3
	state.Block(DisplacementMultiplier)[0] = 0

	// merit = 2·3 + pen·|x-a| = 6 + 1·2
	m, err := mer.Merit(state, 25)
	if err != nil {
		tst.Errorf("Merit failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "merit (pen=1)", 1e-15, m, 8)

	// the merit reads the penalty multiplier through the step computer
	sc.Pen = 10
	m, err = mer.Merit(state, 25)
	if err != nil {
		tst.Errorf("Merit failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "merit (pen=10)", 1e-15, m, 26)
}

func Test_merit02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("merit02. finite-difference directional derivative")

	prob := newPinProblem(1, 2)
	sc := NewStepComputer(prob, pinSolver{}, 50, 0.8, 0.99999)
	mer := NewMeritFunction(prob, sc, 1e-4)

	state := NewBlockState(prob.lay)
	state.Block(Density)[0] = 3

	// away from the kink the merit is smooth: m(x) = 2x + pen·(x-1) for
	// x > 1, so the derivative along step dx = -2 is (2+1)·(-2) = -6
	step := NewBlockState(prob.lay)
	step.Block(Density)[0] = -2

	dm, err := mer.Derivative(state, step, 25)
	if err != nil {
		tst.Errorf("Derivative failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "dm", 1e-10, dm, -6)
}
