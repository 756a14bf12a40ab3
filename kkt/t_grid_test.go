// Copyright 2017 The Gosand Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kkt

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gosand/inp"
)

func Test_grid01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid01. connectivity and geometry")

	g := NewGrid(&inp.MeshData{W: 2, H: 1, Nx: 2, Ny: 2}, 0.3)
	chk.IntAssert(g.Ncells, 4)
	chk.IntAssert(g.Nnodes, 9)
	chk.Scalar(tst, "hx", 1e-17, g.Hx, 1)
	chk.Scalar(tst, "hy", 1e-17, g.Hy, 0.5)

	n := g.CellNodes(0)
	chk.Ints(tst, "cell 0 nodes", n[:], []int{0, 1, 4, 3})
	n = g.CellNodes(3)
	chk.Ints(tst, "cell 3 nodes", n[:], []int{4, 5, 8, 7})

	x, y := g.CellCenter(0)
	chk.Scalar(tst, "center x", 1e-17, x, 0.5)
	chk.Scalar(tst, "center y", 1e-17, y, 0.25)
	chk.Scalar(tst, "dist(0,3)", 1e-15, g.CellDist(0, 3), math.Sqrt(1.25))

	chk.Ints(tst, "neighbors of 0", g.CellNeighbors(0, nil), []int{1, 2})
	chk.Ints(tst, "neighbors of 1", g.CellNeighbors(1, nil), []int{0, 3})

	// pinned bottom-left (ux, uy) and bottom-right roller (uy)
	chk.Ints(tst, "fixed dofs", g.FixedDispDofs(), []int{0, 1, 5})
}

func Test_grid02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid02. consistent load vector")

	// wide strip: both top faces are loaded; each face spreads
	// -scale·hx/2 to its two end nodes
	g := NewGrid(&inp.MeshData{W: 2, H: 1, Nx: 2, Ny: 2}, 0.6)
	load := g.LoadVector(2)
	chk.IntAssert(len(load), 18)
	chk.Scalar(tst, "uy node 6", 1e-15, load[13], -1)
	chk.Scalar(tst, "uy node 7 (shared)", 1e-15, load[15], -2)
	chk.Scalar(tst, "uy node 8", 1e-15, load[17], -1)
	chk.Scalar(tst, "ux untouched", 1e-17, load[12], 0)

	var sum float64
	for _, f := range load {
		sum += f
	}
	chk.Scalar(tst, "total force", 1e-15, sum, -4)

	// reference grid: strip |x-3| < 0.3 covers four faces of width 1/8
	g = NewGrid(&inp.MeshData{W: 6, H: 1, Nx: 48, Ny: 8}, 0.3)
	load = g.LoadVector(1)
	sum = 0
	for _, f := range load {
		sum += f
	}
	chk.Scalar(tst, "total force (bridge)", 1e-15, sum, -0.5)
}
