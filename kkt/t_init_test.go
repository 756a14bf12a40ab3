// Copyright 2017 The Gosand Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kkt

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gosand/inp"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// smallSim returns default input data on a coarse 12×2 grid
func smallSim() *inp.Simulation {
	sim := new(inp.Simulation)
	sim.SetDefaults()
	sim.Mesh.Nx = 12
	sim.Mesh.Ny = 2
	return sim
}
