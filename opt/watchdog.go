// Copyright 2017 The Gosand Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opt

import (
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gosand/inp"
)

// ReportFcn is called with every accepted iterate
type ReportFcn func(state *BlockState, iteration int)

// Driver composes the step computer, merit function, line search,
// convergence checker and barrier schedule into the outer (barrier
// continuation) and inner (watchdog) iteration structure.
//
// The watchdog strategy allows up to MaxUphill consecutive full Newton
// steps without any acceptance test, letting the merit rise; if none of
// them reaches the goal merit set at the watchdog anchor, a certified
// line-search fallback restores descent. Strictly single-threaded: only
// the driver mutates State and Barrier.
type Driver struct {

	// components
	Prob  Problem
	Step  *StepComputer
	Mer   *MeritFunction
	Lsrch *LineSearch
	Conv  *ConvChecker
	Sched *BarrierSchedule

	// configuration
	BarrierInit float64   // initial barrier parameter
	MaxIt       int       // hard iteration cap
	MaxUphill   int       // uphill steps allowed before demanding descent
	DescentReq  float64   // sufficient-decrease requirement
	Verbose     bool      // print progress
	Report      ReportFcn // accepted-iterate output collaborator (may be nil)

	// run state
	State   *BlockState // current iterate
	Barrier float64     // current barrier parameter
	It      int         // iteration counter
}

// NewDriver builds a driver with all components wired according to the
// solver configuration data
func NewDriver(prob Problem, lis LinearSolver, sd *inp.SolverData) (o *Driver) {
	o = new(Driver)
	o.Prob = prob
	o.Step = NewStepComputer(prob, lis, sd.Nbisect, sd.MinFtb, sd.MaxFtb)
	o.Mer = NewMeritFunction(prob, o.Step, sd.FDEps)
	o.Lsrch = &LineSearch{o.Mer, sd.MaxBacktracks}
	o.Conv = &ConvChecker{prob, sd.ConvFactor}
	o.Sched = &BarrierSchedule{sd.BarrierMult, sd.BarrierExpon, sd.BarrierMin}
	o.BarrierInit = sd.BarrierInit
	o.MaxIt = sd.MaxIt
	o.MaxUphill = sd.MaxUphill
	o.DescentReq = sd.DescentReq
	o.Verbose = sd.ShowR
	o.Step.Verbose = sd.ShowR
	return
}

// Run drives the KKT residual to zero starting from initial. It returns
// the final state; reaching the iteration cap before full convergence is a
// soft termination yielding the best available iterate, not an error.
func (o *Driver) Run(initial *BlockState) (final *BlockState, err error) {

	o.State = initial.Clone()
	o.Barrier = o.BarrierInit
	o.It = 0

	for {

		// outer condition: barrier above floor or not yet converged
		cvg, err := o.Conv.Converged(o.State, o.Barrier)
		if err != nil {
			return nil, err
		}
		if !(o.Barrier > o.Sched.Min || !cvg) || o.It >= o.MaxIt {
			break
		}

		// inner (watchdog) loop at fixed barrier
		converged := false
		for !converged && o.It < o.MaxIt {

			foundStep := false
			watchdogState := o.State.Clone()
			var watchdogStep *BlockState
			var goalMerit float64

			// uphill phase: apply full steps unconditionally
			for k := 0; k < o.MaxUphill; k++ {
				step, err := o.Step.FindMaxStep(o.State, o.Barrier)
				if err != nil {
					return nil, err
				}
				if k == 0 {
					watchdogStep = step
				}
				o.State.Add(step)
				currentMerit, err := o.Mer.Merit(o.State, o.Barrier)
				if err != nil {
					return nil, err
				}
				dm, err := o.Mer.Derivative(watchdogState, watchdogStep, o.Barrier)
				if err != nil {
					return nil, err
				}
				watchdogMerit, err := o.Mer.Merit(watchdogState, o.Barrier)
				if err != nil {
					return nil, err
				}
				goalMerit = watchdogMerit + o.DescentReq*dm
				if o.Verbose {
					io.Pf("%6d%4d%23.15e%23.15e\n", o.It, k, currentMerit, goalMerit)
				}
				if currentMerit < goalMerit {
					o.It += k + 1
					foundStep = true
					break
				}
			}

			// fallback: the watchdog failed; restore certified descent
			if !foundStep {
				step, err := o.Step.FindMaxStep(o.State, o.Barrier)
				if err != nil {
					return nil, err
				}
				stretchState, err := o.Lsrch.TakeScaledStep(o.State, step, o.DescentReq, o.Barrier)
				if err != nil {
					return nil, err
				}
				currentMerit, err := o.Mer.Merit(o.State, o.Barrier)
				if err != nil {
					return nil, err
				}
				watchdogMerit, err := o.Mer.Merit(watchdogState, o.Barrier)
				if err != nil {
					return nil, err
				}
				stretchMerit, err := o.Mer.Merit(stretchState, o.Barrier)
				if err != nil {
					return nil, err
				}
				switch {
				case currentMerit < watchdogMerit || stretchMerit < goalMerit:
					// the stretch already certifies progress
					o.State = stretchState
					o.It += o.MaxUphill + 1
				case stretchMerit > watchdogMerit:
					// restart the globalization from the watchdog anchor
					o.State, err = o.Lsrch.TakeScaledStep(watchdogState, watchdogStep, o.DescentReq, o.Barrier)
					if err != nil {
						return nil, err
					}
					o.It += o.MaxUphill + 1
				default:
					// fresh Newton direction from the stretch state
					stretchStep, err := o.Step.FindMaxStep(stretchState, o.Barrier)
					if err != nil {
						return nil, err
					}
					o.State, err = o.Lsrch.TakeScaledStep(stretchState, stretchStep, o.DescentReq, o.Barrier)
					if err != nil {
						return nil, err
					}
					o.It += o.MaxUphill + 2
				}
			}

			// emit accepted iterate
			if o.Report != nil {
				o.Report(o.State, o.It)
			}

			converged, err = o.Conv.Converged(o.State, o.Barrier)
			if err != nil {
				return nil, err
			}
		}

		// barrier continuation
		o.Barrier = o.Sched.Next(o.Barrier)
		if o.Verbose {
			io.Pf("barrier size reduced to %g on iteration number %d\n", o.Barrier, o.It)
		}
	}

	return o.State, nil
}
