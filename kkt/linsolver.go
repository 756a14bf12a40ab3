// Copyright 2017 The Gosand Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kkt

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/gosand/inp"
)

// Direct wraps a sparse direct solver for the Newton systems. The sparsity
// pattern is fixed after the first assembly, so the solver is initialized
// once and only refactorized on subsequent calls.
type Direct struct {
	lis     la.LinSol // sparse solver
	sym     bool      // symmetric solve
	verbose bool      // verbose
	timing  bool      // show timing
	initLis bool      // initialisation was performed
}

// NewDirect allocates a direct solver according to the input data
func NewDirect(dat *inp.LinSolData) *Direct {
	return &Direct{
		lis:     la.GetSolver(dat.Name),
		sym:     dat.Symmetric,
		verbose: dat.Verbose,
		timing:  dat.Timing,
	}
}

// Solve factorizes Kb and solves Kb·x = b
func (o *Direct) Solve(Kb *la.Triplet, b []float64) (x []float64, err error) {

	// init solver on first call
	if !o.initLis {
		err = o.lis.InitR(Kb, o.sym, o.verbose, o.timing)
		if err != nil {
			return nil, chk.Err("cannot initialize linear solver:\n%v", err)
		}
		o.initLis = true
	}

	// factorize and solve
	err = o.lis.Fact()
	if err != nil {
		return nil, chk.Err("factorization failed:\n%v", err)
	}
	x = make([]float64, len(b))
	err = o.lis.SolveR(x, b, false)
	if err != nil {
		return nil, chk.Err("solution of linear system failed:\n%v", err)
	}
	return
}

// Free releases the solver's resources
func (o *Direct) Free() {
	if o.initLis {
		o.lis.Free()
	}
}
