// Copyright 2017 The Gosand Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Gosand finds minimum-compliance topologies of an elastic structure with
// the SIMP material model, solving the simultaneous analysis and design
// problem with a watchdog-globalized interior-point method.
package main

import (
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/gosand/inp"
	"github.com/cpmech/gosand/kkt"
	"github.com/cpmech/gosand/opt"
	"github.com/cpmech/gosand/out"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
			io.Pf("See location of error below:\n")
			chk.Verbose = true
			for i := 5; i > 3; i-- {
				chk.CallerInfo(i)
			}
		}
	}()

	// input parameters
	fnamepath, _ := io.ArgToFilename(0, "data/bridge", ".sim", true)
	verbose := io.ArgToBool(1, true)
	erasePrev := io.ArgToBool(2, true)
	dumpVtu := io.ArgToBool(3, true)
	doprof := io.ArgToInt(4, 0)

	// message
	if verbose {
		io.PfWhite("\nGosand -- SIMP Topology Optimization by Interior Points\n")
		io.Pf("Copyright 2017 The Gosand Authors. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n")

		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
			"erase previous results", "erasePrev", erasePrev,
			"write vtu files", "dumpVtu", dumpVtu,
			"profiling: 0=none 1=CPU 2=MEM", "doprof", doprof,
		))
	}

	// profiling?
	if doprof > 0 {
		defer utl.DoProf(false, doprof)()
	}

	// current time
	cputime := time.Now()

	// input data and problem
	sim := inp.ReadSim(fnamepath, erasePrev)
	if verbose {
		sim.Solver.ShowR = true
	}
	sys := kkt.NewSystem(sim)
	lis := kkt.NewDirect(&sim.LinSol)
	defer lis.Free()

	// driver
	driver := opt.NewDriver(sys, lis, &sim.Solver)
	writer := out.NewWriter(sim, sys.Grid, sys.Lay)
	if dumpVtu {
		driver.Report = func(state *opt.BlockState, it int) {
			writer.WriteVtu(state, it)
		}
	}

	// run optimization
	final, err := driver.Run(sys.InitialState())
	if err != nil {
		chk.Panic("optimization failed:\n%v", err)
	}

	// results
	if verbose {
		io.Pf("\nfinal compliance = %23.15e after %d iterations\n", sys.Objective(final), driver.It)
	}
	writer.WriteVtu(final, driver.It)
	writer.WriteStl(final, 0.25)

	// elapsed time
	if verbose {
		io.PfGreen("\n> Success\n")
		io.Pf("> CPU time = %v\n", time.Now().Sub(cputime))
	}
}
