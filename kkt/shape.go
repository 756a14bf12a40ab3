// Copyright 2017 The Gosand Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kkt

import "math"

// quadPoint holds Q1 shape data evaluated at one 2×2 Gauss point of the
// reference cell, already mapped to a physical cell of the uniform grid
type quadPoint struct {
	N   [4]float64 // shape function values
	Gx  [4]float64 // ∂N/∂x
	Gy  [4]float64 // ∂N/∂y
	JxW float64    // integration weight times Jacobian determinant
}

// newQuadData evaluates the four Gauss points for cells of size hx×hy.
// The grid is uniform so one evaluation serves every cell.
func newQuadData(hx, hy float64) (qp [4]quadPoint) {
	g := 1.0 / math.Sqrt(3.0)
	gpts := [4][2]float64{{-g, -g}, {g, -g}, {g, g}, {-g, g}}
	// reference corners, counterclockwise from (-1,-1)
	corners := [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for q, pt := range gpts {
		r, s := pt[0], pt[1]
		for a, cr := range corners {
			ra, sa := cr[0], cr[1]
			qp[q].N[a] = (1 + ra*r) * (1 + sa*s) / 4
			// reference gradients mapped by the affine cell map
			qp[q].Gx[a] = ra * (1 + sa*s) / 4 * 2 / hx
			qp[q].Gy[a] = sa * (1 + ra*r) / 4 * 2 / hy
		}
		qp[q].JxW = hx * hy / 4
	}
	return
}

// strain holds the plane-strain kinematic quantities of a displacement
// field (or basis function) at one quadrature point
type strain struct {
	div, exx, eyy, exy float64
}

// basisStrain returns the strain of the Q1 vector basis function attached
// to corner a, direction d (0:x, 1:y)
func (o *quadPoint) basisStrain(a, d int) (s strain) {
	if d == 0 {
		s.div = o.Gx[a]
		s.exx = o.Gx[a]
		s.exy = o.Gy[a] / 2
	} else {
		s.div = o.Gy[a]
		s.eyy = o.Gy[a]
		s.exy = o.Gx[a] / 2
	}
	return
}

// fieldStrain returns the strain of a displacement field given its 8 nodal
// values (ux0,uy0,...,uy3) on one cell
func (o *quadPoint) fieldStrain(u []float64) (s strain) {
	for a := 0; a < 4; a++ {
		s.exx += o.Gx[a] * u[2*a]
		s.eyy += o.Gy[a] * u[2*a+1]
		s.exy += (o.Gy[a]*u[2*a] + o.Gx[a]*u[2*a+1]) / 2
	}
	s.div = s.exx + s.eyy
	return
}

// energyDot returns the elasticity inner product
// div(a)·div(b)·λ + 2μ·(ε(a):ε(b)) of two strains
func energyDot(a, b strain, lam, mu float64) float64 {
	return a.div*b.div*lam + 2*mu*(a.exx*b.exx+a.eyy*b.eyy+2*a.exy*b.exy)
}
