// Copyright 2017 The Gosand Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bytes"

	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gosand/opt"
)

// WriteStl extrudes the cells with density above 0.5 into a solid of the
// given height and writes it as an ASCII STL file. Side walls appear on
// the domain boundary and wherever a solid cell touches a void cell.
func (o *Writer) WriteStl(state *opt.BlockState, height float64) {

	g := o.Grid
	ρ := state.Block(opt.Density)
	solid := func(c int) bool { return ρ[c] > 0.5 }

	buf := new(bytes.Buffer)
	io.Ff(buf, "solid %s\n", o.Fnkey)

	facet := func(nx, ny, nz float64, v [3][3]float64) {
		io.Ff(buf, "   facet normal %23.15e %23.15e %23.15e\n", nx, ny, nz)
		io.Ff(buf, "      outer loop\n")
		for _, p := range v {
			io.Ff(buf, "         vertex %23.15e %23.15e %23.15e\n", p[0], p[1], p[2])
		}
		io.Ff(buf, "      endloop\n")
		io.Ff(buf, "   endfacet\n")
	}

	// vertical wall over the segment (xa,ya)-(xb,yb) with outward
	// normal (nx,ny); the winding keeps the normal pointing outward
	wall := func(xa, ya, xb, yb, nx, ny float64) {
		facet(nx, ny, 0, [3][3]float64{{xa, ya, 0}, {xa, ya, height}, {xb, yb, 0}})
		facet(nx, ny, 0, [3][3]float64{{xa, ya, height}, {xb, yb, height}, {xb, yb, 0}})
	}

	for c := 0; c < g.Ncells; c++ {
		if !solid(c) {
			continue
		}
		ix, iy := c%g.Nx, c/g.Nx
		x0, y0 := float64(ix)*g.Hx, float64(iy)*g.Hy
		x1, y1 := x0+g.Hx, y0+g.Hy

		// bottom (normal -z) and top (normal +z)
		facet(0, 0, -1, [3][3]float64{{x0, y0, 0}, {x1, y1, 0}, {x1, y0, 0}})
		facet(0, 0, -1, [3][3]float64{{x0, y0, 0}, {x0, y1, 0}, {x1, y1, 0}})
		facet(0, 0, 1, [3][3]float64{{x0, y0, height}, {x1, y0, height}, {x1, y1, height}})
		facet(0, 0, 1, [3][3]float64{{x0, y0, height}, {x1, y1, height}, {x0, y1, height}})

		// side walls towards the boundary or a void neighbor
		if ix == 0 || !solid(c-1) {
			wall(x0, y1, x0, y0, -1, 0)
		}
		if ix == g.Nx-1 || !solid(c+1) {
			wall(x1, y0, x1, y1, 1, 0)
		}
		if iy == 0 || !solid(c-g.Nx) {
			wall(x0, y0, x1, y0, 0, -1)
		}
		if iy == g.Ny-1 || !solid(c+g.Nx) {
			wall(x1, y1, x0, y1, 0, 1)
		}
	}

	io.Ff(buf, "endsolid %s\n", o.Fnkey)
	io.WriteFileVD(o.Dirout, o.Fnkey+".stl", buf)
}
