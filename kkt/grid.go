// Copyright 2017 The Gosand Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package kkt assembles the KKT system of the barrier-relaxed SIMP
// topology optimization problem on a structured quadrilateral grid:
// Q1 bilinear displacements, piecewise-constant cell densities and slacks
package kkt

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gosand/inp"
)

// Grid is a structured quadrilateral grid of a W×H rectangle with Nx×Ny
// cells. Nodes and cells are numbered x-fastest. The middle strip of the
// top boundary carries a unit downward traction; the bottom-left node is
// pinned and the bottom-right node is a vertical roller.
type Grid struct {
	W, H   float64 // domain dimensions
	Nx, Ny int     // number of cells along x and y
	Hx, Hy float64 // cell dimensions
	LoadW  float64 // half-width of the loaded strip around x = W/2
	Ncells int     // == Nx*Ny
	Nnodes int     // == (Nx+1)*(Ny+1)
}

// NewGrid returns a grid according to the mesh input data
func NewGrid(md *inp.MeshData, loadW float64) (o *Grid) {
	if md.Nx < 1 || md.Ny < 1 {
		chk.Panic("grid needs at least one cell per direction. Nx=%d Ny=%d", md.Nx, md.Ny)
	}
	o = new(Grid)
	o.W, o.H = md.W, md.H
	o.Nx, o.Ny = md.Nx, md.Ny
	o.Hx = md.W / float64(md.Nx)
	o.Hy = md.H / float64(md.Ny)
	o.LoadW = loadW
	o.Ncells = md.Nx * md.Ny
	o.Nnodes = (md.Nx + 1) * (md.Ny + 1)
	return
}

// CellNodes returns the 4 node ids of cell c, counterclockwise from the
// lower-left corner
func (o *Grid) CellNodes(c int) (n [4]int) {
	ix, iy := c%o.Nx, c/o.Nx
	n[0] = iy*(o.Nx+1) + ix
	n[1] = n[0] + 1
	n[2] = n[0] + o.Nx + 2
	n[3] = n[0] + o.Nx + 1
	return
}

// CellCenter returns the coordinates of the center of cell c
func (o *Grid) CellCenter(c int) (x, y float64) {
	ix, iy := c%o.Nx, c/o.Nx
	return (float64(ix) + 0.5) * o.Hx, (float64(iy) + 0.5) * o.Hy
}

// CellDist returns the distance between the centers of cells a and b
func (o *Grid) CellDist(a, b int) float64 {
	xa, ya := o.CellCenter(a)
	xb, yb := o.CellCenter(b)
	return math.Sqrt((xa-xb)*(xa-xb) + (ya-yb)*(ya-yb))
}

// CellNeighbors appends the face neighbors of cell c to dst
func (o *Grid) CellNeighbors(c int, dst []int) []int {
	ix, iy := c%o.Nx, c/o.Nx
	if ix > 0 {
		dst = append(dst, c-1)
	}
	if ix < o.Nx-1 {
		dst = append(dst, c+1)
	}
	if iy > 0 {
		dst = append(dst, c-o.Nx)
	}
	if iy < o.Ny-1 {
		dst = append(dst, c+o.Nx)
	}
	return dst
}

// FixedDispDofs returns the constrained displacement dofs (local indices
// within a displacement-sized block): bottom-left ux and uy, bottom-right uy
func (o *Grid) FixedDispDofs() []int {
	right := o.Nx // node id of the bottom-right corner
	return []int{0, 1, 2*right + 1}
}

// LoadVector computes the consistent nodal force vector of the boundary
// traction (0, -scale) acting on the loaded strip of the top boundary.
// The result is sized like a displacement block.
func (o *Grid) LoadVector(scale float64) (load []float64) {
	load = make([]float64, 2*o.Nnodes)
	for i := 0; i < o.Nx; i++ {
		xc := (float64(i) + 0.5) * o.Hx
		if math.Abs(xc-o.W/2) < o.LoadW {
			n1 := o.Ny*(o.Nx+1) + i
			n2 := n1 + 1
			load[2*n1+1] += -scale * o.Hx / 2
			load[2*n2+1] += -scale * o.Hx / 2
		}
	}
	return
}
