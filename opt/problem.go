// Copyright 2017 The Gosand Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opt

import "github.com/cpmech/gosl/la"

// Problem defines the KKT system collaborator. Assemble and Residual are
// deterministic pure functions of (state, barrier) for a fixed
// discretization. The returned fb vector follows the usual convention of
// holding the negative of the nonlinear residual; since only norms and
// products with the step enter the driver, the sign convention is fixed
// here once and relied upon by StepComputer.
type Problem interface {

	// Layout returns the per-block dof counts of the discretization
	Layout() *Layout

	// Assemble computes the Jacobian (as a sparse triplet) and the
	// right-hand side fb = -residual at (state, barrier)
	Assemble(state *BlockState, barrier float64) (Kb *la.Triplet, fb *BlockState, err error)

	// Residual computes fb only (no matrix); cheaper than Assemble and
	// numerically consistent with it for the same inputs
	Residual(state *BlockState, barrier float64) (fb *BlockState, err error)

	// Objective returns the boundary-traction linear functional evaluated
	// on the displacement block of state
	Objective(state *BlockState) float64

	// DecisionQuadForm returns stepᵀ Kdd step where Kdd is the sub-matrix
	// of the most recently assembled Jacobian coupling the
	// decision-variable blocks among themselves
	DecisionQuadForm(step *BlockState) float64

	// Distribute applies the affine equality constraints on the design
	// block (volume-constraint redistribution) to a solved step
	Distribute(step *BlockState)
}

// LinearSolver solves the Newton system Kb·x = b with a direct sparse
// factorization. A failure to factorize is fatal and must be surfaced.
type LinearSolver interface {
	Solve(Kb *la.Triplet, b []float64) (x []float64, err error)
}
