// Copyright 2017 The Gosand Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out writes VTK/Paraview and STL results files
package out

import (
	"bytes"

	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gosand/inp"
	"github.com/cpmech/gosand/kkt"
	"github.com/cpmech/gosand/opt"
)

// Writer dumps the state of the optimization into .vtu files, one per
// accepted iterate, with the densities as cell data and the displacements
// and multipliers as point data
type Writer struct {
	Dirout string      // output directory
	Fnkey  string      // filename key
	Grid   *kkt.Grid   // grid
	Lay    *opt.Layout // block layout
}

// NewWriter allocates a results writer
func NewWriter(sim *inp.Simulation, g *kkt.Grid, lay *opt.Layout) *Writer {
	return &Writer{
		Dirout: sim.Data.DirOut,
		Fnkey:  sim.Data.FnameKey,
		Grid:   g,
		Lay:    lay,
	}
}

// WriteVtu writes one .vtu file holding the given state
func (o *Writer) WriteVtu(state *opt.BlockState, it int) {

	// buffers
	geo := new(bytes.Buffer)
	dat := new(bytes.Buffer)

	// topology and data
	o.topology(geo)
	o.pointData(dat, state)
	o.cellData(dat, state)

	// write file
	g := o.Grid
	var hdr, foo bytes.Buffer
	io.Ff(&hdr, "<?xml version=\"1.0\"?>\n<VTKFile type=\"UnstructuredGrid\" version=\"0.1\" byte_order=\"LittleEndian\">\n<UnstructuredGrid>\n")
	io.Ff(&hdr, "<Piece NumberOfPoints=\"%d\" NumberOfCells=\"%d\">\n", g.Nnodes, g.Ncells)
	io.Ff(&foo, "</Piece>\n</UnstructuredGrid>\n</VTKFile>\n")
	io.WriteFileVD(o.Dirout, io.Sf("%s_%06d.vtu", o.Fnkey, it), &hdr, geo, dat, &foo)
}

// topology ////////////////////////////////////////////////////////////////////////////////////////

func (o *Writer) topology(buf *bytes.Buffer) {
	g := o.Grid

	// coordinates
	io.Ff(buf, "<Points>\n<DataArray type=\"Float64\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for iy := 0; iy <= g.Ny; iy++ {
		for ix := 0; ix <= g.Nx; ix++ {
			io.Ff(buf, "%23.15e %23.15e %23.15e ", float64(ix)*g.Hx, float64(iy)*g.Hy, 0.0)
		}
	}
	io.Ff(buf, "\n</DataArray>\n</Points>\n")

	// connectivities
	io.Ff(buf, "<Cells>\n<DataArray type=\"Int32\" Name=\"connectivity\" format=\"ascii\">\n")
	for c := 0; c < g.Ncells; c++ {
		nodes := g.CellNodes(c)
		io.Ff(buf, "%d %d %d %d ", nodes[0], nodes[1], nodes[2], nodes[3])
	}

	// offsets
	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"Int32\" Name=\"offsets\" format=\"ascii\">\n")
	for c := 0; c < g.Ncells; c++ {
		io.Ff(buf, "%d ", (c+1)*4)
	}

	// types: VTK_QUAD
	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"UInt8\" Name=\"types\" format=\"ascii\">\n")
	for c := 0; c < g.Ncells; c++ {
		io.Ff(buf, "9 ")
	}
	io.Ff(buf, "\n</DataArray>\n</Cells>\n")
}

// points data /////////////////////////////////////////////////////////////////////////////////////

func (o *Writer) pointData(buf *bytes.Buffer, state *opt.BlockState) {
	u := state.Block(opt.Displacement)
	yu := state.Block(opt.DisplacementMultiplier)

	io.Ff(buf, "<PointData Vectors=\"TheVectors\">\n")

	io.Ff(buf, "<DataArray type=\"Float64\" Name=\"u\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for n := 0; n < o.Grid.Nnodes; n++ {
		io.Ff(buf, "%23.15e %23.15e %23.15e ", u[2*n], u[2*n+1], 0.0)
	}

	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"Float64\" Name=\"u_mult\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for n := 0; n < o.Grid.Nnodes; n++ {
		io.Ff(buf, "%23.15e %23.15e %23.15e ", yu[2*n], yu[2*n+1], 0.0)
	}

	io.Ff(buf, "\n</DataArray>\n</PointData>\n")
}

func (o *Writer) cellData(buf *bytes.Buffer, state *opt.BlockState) {
	ρ := state.Block(opt.Density)
	σ := state.Block(opt.UnfilteredDensity)

	io.Ff(buf, "<CellData Scalars=\"TheScalars\">\n")

	io.Ff(buf, "<DataArray type=\"Float64\" Name=\"density\" NumberOfComponents=\"1\" format=\"ascii\">\n")
	for c := 0; c < o.Grid.Ncells; c++ {
		io.Ff(buf, "%23.15e ", ρ[c])
	}

	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"Float64\" Name=\"unfiltered_density\" NumberOfComponents=\"1\" format=\"ascii\">\n")
	for c := 0; c < o.Grid.Ncells; c++ {
		io.Ff(buf, "%23.15e ", σ[c])
	}

	io.Ff(buf, "\n</DataArray>\n</CellData>\n")
}
