// Copyright 2017 The Gosand Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kkt

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/gosand/inp"
	"github.com/cpmech/gosand/opt"
)

// System holds the discretized KKT conditions of the barrier-relaxed SIMP
// problem and implements opt.Problem. The nine coupled equations are the
// stationarity conditions with respect to density, displacement and
// unfiltered density, the primal feasibility of the elasticity, bound and
// filter constraints, and the perturbed complementarity of the slack pairs.
type System struct {

	// discretization
	Grid *Grid
	Flt  *Filter
	Lay  *opt.Layout

	// parameters
	Penal   float64 // SIMP penalization exponent
	Lam     float64 // Lamé λ
	Mu      float64 // Lamé μ
	VolFrac float64 // volume fraction == initial density
	Slack0  float64 // initial slack multiplier value

	// traction load integrated against the Q1 basis (displacement-sized)
	Fload []float64

	// constrained dofs
	fixed map[int]bool // eliminated displacement/multiplier dofs
	cstar int          // condensed density dof of the volume constraint

	// quadrature data (uniform grid: one evaluation for all cells)
	qp [4]quadPoint

	// assembly storage
	Kb         *la.Triplet // Jacobian triplet, reused across calls
	decEnd     int         // first flat index past the decision blocks
	decI, decJ []int       // decision sub-matrix entries of the last assembly
	decX       []float64
	wHs, wHty  []float64 // filtered density and adjoint workspaces
}

// NewSystem builds the KKT system according to the simulation input
func NewSystem(sim *inp.Simulation) (o *System) {
	o = new(System)
	o.Grid = NewGrid(&sim.Mesh, sim.Simp.LoadW)
	o.Flt = NewFilter(o.Grid, sim.Simp.FilterR)
	o.Penal = sim.Simp.Penal
	o.Lam = sim.Simp.Lam
	o.Mu = sim.Simp.Mu
	o.VolFrac = sim.Simp.VolFrac
	o.Slack0 = sim.Simp.Slack0

	// layout: per-cell scalars and per-node 2-vectors
	np, nu := o.Grid.Ncells, 2*o.Grid.Nnodes
	sizes := make([]int, opt.NumBlocks)
	sizes[opt.Density] = np
	sizes[opt.Displacement] = nu
	sizes[opt.UnfilteredDensity] = np
	sizes[opt.DisplacementMultiplier] = nu
	sizes[opt.UnfilteredDensityMultiplier] = np
	sizes[opt.DensityLowerSlack] = np
	sizes[opt.DensityLowerSlackMultiplier] = np
	sizes[opt.DensityUpperSlack] = np
	sizes[opt.DensityUpperSlackMultiplier] = np
	o.Lay = opt.NewLayout(sizes)
	o.decEnd = o.Lay.DecisionEnd()

	// traction load vector
	o.Fload = o.Grid.LoadVector(sim.GetLoadFcn().F(0, nil))

	// constrained dofs: pinned/roller nodes on displacement and its
	// multiplier, plus the condensed density dof of the volume constraint
	o.fixed = make(map[int]bool)
	for _, d := range o.Grid.FixedDispDofs() {
		o.fixed[o.Lay.Offsets[opt.Displacement]+d] = true
		o.fixed[o.Lay.Offsets[opt.DisplacementMultiplier]+d] = true
	}
	o.cstar = o.Lay.Offsets[opt.Density] + np - 1

	// quadrature and storage. The triplet capacity bounds the per-cell
	// couplings, the filter blocks, and the dense fill-in caused by
	// redistributing the volume constraint.
	o.qp = newQuadData(o.Grid.Hx, o.Grid.Hy)
	nnz := 180*o.Grid.Ncells + 2*o.Flt.Nnz() + np*np + 80*np + len(o.fixed) + 1
	o.Kb = new(la.Triplet)
	o.Kb.Init(o.Lay.Ntotal, o.Lay.Ntotal, nnz)
	o.wHs = make([]float64, np)
	o.wHty = make([]float64, np)
	return
}

// Layout returns the per-block dof counts
func (o *System) Layout() *opt.Layout {
	return o.Lay
}

// InitialState returns the standard starting point: densities at the
// volume fraction, slacks at their exact bound gaps, slack multipliers at
// Slack0, displacements at zero
func (o *System) InitialState() (s *opt.BlockState) {
	s = opt.NewBlockState(o.Lay)
	s.Fill(opt.Density, o.VolFrac)
	s.Fill(opt.UnfilteredDensity, o.VolFrac)
	s.Fill(opt.UnfilteredDensityMultiplier, o.VolFrac)
	s.Fill(opt.DensityLowerSlack, o.VolFrac)
	s.Fill(opt.DensityLowerSlackMultiplier, o.Slack0)
	s.Fill(opt.DensityUpperSlack, 1-o.VolFrac)
	s.Fill(opt.DensityUpperSlackMultiplier, o.Slack0)
	return
}

// Assemble computes the Jacobian and the right-hand side fb = -residual
func (o *System) Assemble(state *opt.BlockState, barrier float64) (*la.Triplet, *opt.BlockState, error) {
	fb := o.assemble(state, barrier, true)
	return o.Kb, fb, nil
}

// Residual computes fb only, with the same formulas as Assemble
func (o *System) Residual(state *opt.BlockState, barrier float64) (*opt.BlockState, error) {
	return o.assemble(state, barrier, false), nil
}

// Objective returns the boundary-traction functional ∫ t·u ds
func (o *System) Objective(state *opt.BlockState) (res float64) {
	u := state.Block(opt.Displacement)
	for d, f := range o.Fload {
		res += f * u[d]
	}
	return
}

// DecisionQuadForm returns stepᵀ Kdd step over the decision blocks of the
// most recently assembled Jacobian
func (o *System) DecisionQuadForm(step *opt.BlockState) (res float64) {
	for m, v := range o.decX {
		res += v * step.V[o.decI[m]] * step.V[o.decJ[m]]
	}
	return
}

// Distribute recovers the condensed density dof of a solved step from the
// volume constraint: the density updates sum to zero
func (o *System) Distribute(step *opt.BlockState) {
	lo := o.Lay.Offsets[opt.Density]
	var sum float64
	for k := lo; k < o.cstar; k++ {
		sum += step.V[k]
	}
	step.V[o.cstar] = -sum
}

// putRaw adds one entry to the triplet, recording decision-block entries
// for the penalty-update quadratic form
func (o *System) putRaw(i, j int, v float64) {
	o.Kb.Put(i, j, v)
	if i < o.decEnd && j < o.decEnd {
		o.decI = append(o.decI, i)
		o.decJ = append(o.decJ, j)
		o.decX = append(o.decX, v)
	}
}

// put adds one entry, eliminating fixed dofs and redistributing the
// volume-constrained density dof over the remaining density dofs
// (uniform weight -1, zero inhomogeneity)
func (o *System) put(i, j int, v float64) {
	if o.fixed[i] || o.fixed[j] {
		return
	}
	lo := o.Lay.Offsets[opt.Density]
	ci, cj := i == o.cstar, j == o.cstar
	switch {
	case ci && cj:
		for k := lo; k < o.cstar; k++ {
			for l := lo; l < o.cstar; l++ {
				o.putRaw(k, l, v)
			}
		}
	case ci:
		for k := lo; k < o.cstar; k++ {
			o.putRaw(k, j, -v)
		}
	case cj:
		for k := lo; k < o.cstar; k++ {
			o.putRaw(i, k, -v)
		}
	default:
		o.putRaw(i, j, v)
	}
}

// condenseRhs applies the same eliminations to a right-hand side vector
func (o *System) condenseRhs(fb *opt.BlockState) {
	for d := range o.fixed {
		fb.V[d] = 0
	}
	lo := o.Lay.Offsets[opt.Density]
	r := fb.V[o.cstar]
	for k := lo; k < o.cstar; k++ {
		fb.V[k] -= r
	}
	fb.V[o.cstar] = 0
}

// assemble computes fb and, if withK is true, the Jacobian triplet
func (o *System) assemble(state *opt.BlockState, barrier float64, withK bool) (fb *opt.BlockState) {

	g, lay := o.Grid, o.Lay
	fb = opt.NewBlockState(lay)

	ρ := state.Block(opt.Density)
	u := state.Block(opt.Displacement)
	σ := state.Block(opt.UnfilteredDensity)
	yu := state.Block(opt.DisplacementMultiplier)
	yσ := state.Block(opt.UnfilteredDensityMultiplier)
	sL := state.Block(opt.DensityLowerSlack)
	zL := state.Block(opt.DensityLowerSlackMultiplier)
	sU := state.Block(opt.DensityUpperSlack)
	zU := state.Block(opt.DensityUpperSlackMultiplier)

	// filtered density and adjoint-filtered multiplier
	o.Flt.Apply(o.wHs, σ)
	o.Flt.ApplyTr(o.wHty, yσ)

	if withK {
		o.Kb.Start()
		o.decI, o.decJ, o.decX = o.decI[:0], o.decJ[:0], o.decX[:0]
	}

	area := g.Hx * g.Hy
	p := o.Penal
	var ucell, ycell [8]float64
	var idxU, idxYu [8]int
	ou := lay.Offsets[opt.Displacement]
	oyu := lay.Offsets[opt.DisplacementMultiplier]

	for c := 0; c < g.Ncells; c++ {

		// the fraction-to-boundary rule must keep the slacks strictly
		// positive at every evaluated state
		if sL[c] <= 0 || sU[c] <= 0 {
			chk.Panic("non-positive slack at cell %d (sL=%g, sU=%g): interior-point invariant violated", c, sL[c], sU[c])
		}

		nodes := g.CellNodes(c)
		for a, n := range nodes {
			ucell[2*a] = u[2*n]
			ucell[2*a+1] = u[2*n+1]
			ycell[2*a] = yu[2*n]
			ycell[2*a+1] = yu[2*n+1]
			idxU[2*a] = ou + 2*n
			idxU[2*a+1] = ou + 2*n + 1
			idxYu[2*a] = oyu + 2*n
			idxYu[2*a+1] = oyu + 2*n + 1
		}

		iρ := lay.Offsets[opt.Density] + c
		iσ := lay.Offsets[opt.UnfilteredDensity] + c
		iyσ := lay.Offsets[opt.UnfilteredDensityMultiplier] + c
		isL := lay.Offsets[opt.DensityLowerSlack] + c
		izL := lay.Offsets[opt.DensityLowerSlackMultiplier] + c
		isU := lay.Offsets[opt.DensityUpperSlack] + c
		izU := lay.Offsets[opt.DensityUpperSlackMultiplier] + c

		ρp := math.Pow(ρ[c], p)
		ρp1 := p * math.Pow(ρ[c], p-1)
		ρp2 := p * (p - 1) * math.Pow(ρ[c], p-2)

		// quadrature: accumulate the elasticity couplings
		var fρ, kρρ float64 // Lagrangian derivative and curvature wrt density
		var bλ, bu, cλ, cu [8]float64
		var kuu [8][8]float64
		for q := range o.qp {
			qp := &o.qp[q]
			su := qp.fieldStrain(ucell[:])
			sy := qp.fieldStrain(ycell[:])
			eUY := energyDot(su, sy, o.Lam, o.Mu)
			fρ += qp.JxW * ρp1 * eUY
			kρρ += qp.JxW * ρp2 * eUY
			for l := 0; l < 8; l++ {
				bs := qp.basisStrain(l/2, l%2)
				eY := energyDot(sy, bs, o.Lam, o.Mu)
				eU := energyDot(su, bs, o.Lam, o.Mu)
				bλ[l] += qp.JxW * ρp1 * eY
				bu[l] += qp.JxW * ρp1 * eU
				cλ[l] += qp.JxW * ρp * eY
				cu[l] += qp.JxW * ρp * eU
				if withK {
					for m := l; m < 8; m++ {
						bt := qp.basisStrain(m/2, m%2)
						kuu[l][m] += qp.JxW * ρp * energyDot(bs, bt, o.Lam, o.Mu)
					}
				}
			}
		}
		if withK {
			for l := 0; l < 8; l++ {
				for m := 0; m < l; m++ {
					kuu[l][m] = kuu[m][l]
				}
			}
		}

		// right-hand side (negative residual)
		fb.V[iρ] += -fρ + area*yσ[c]
		for l := 0; l < 8; l++ {
			fb.V[idxU[l]] += -cλ[l]
			fb.V[idxYu[l]] += -cu[l]
		}
		fb.V[iσ] += -area * (o.wHty[c] + zU[c] - zL[c])
		fb.V[izL] += area * (σ[c] - sL[c])
		fb.V[izU] += area * (1 - σ[c] - sU[c])
		fb.V[iyσ] += area * (ρ[c] - o.wHs[c])
		fb.V[isL] += -area * (zL[c] - barrier/sL[c])
		fb.V[isU] += -area * (zU[c] - barrier/sU[c])

		// Newton matrix
		if withK {
			o.put(iρ, iyσ, -area)
			o.put(iρ, iρ, kρρ)
			for l := 0; l < 8; l++ {
				o.put(iρ, idxYu[l], bu[l])
				o.put(iρ, idxU[l], bλ[l])
				o.put(idxU[l], iρ, bλ[l])
				o.put(idxYu[l], iρ, bu[l])
				for m := 0; m < 8; m++ {
					o.put(idxU[l], idxYu[m], kuu[l][m])
					o.put(idxYu[l], idxU[m], kuu[l][m])
				}
			}
			o.put(iσ, izL, -area)
			o.put(iσ, izU, area)
			o.put(izL, iσ, -area)
			o.put(izL, isL, area)
			o.put(izU, iσ, area)
			o.put(izU, isU, area)
			o.put(iyσ, iρ, -area)
			o.put(isL, izL, area)
			o.put(isL, isL, area*zL[c]/sL[c])
			o.put(isU, izU, area)
			o.put(isU, isU, area*zU[c]/sU[c])
		}
	}

	// boundary traction on the displacement and multiplier equations
	for d, f := range o.Fload {
		if f != 0 {
			fb.V[ou+d] -= f
			fb.V[oyu+d] += f
		}
	}

	// filter couplings, integrated against the piecewise-constant test
	// functions (a multiplication by the cell measure)
	if withK {
		oσ := lay.Offsets[opt.UnfilteredDensity]
		oyσ := lay.Offsets[opt.UnfilteredDensityMultiplier]
		for i := 0; i < o.Flt.N; i++ {
			for k, j := range o.Flt.Col[i] {
				v := o.Flt.Val[i][k] * area
				o.put(oyσ+i, oσ+j, v)
				o.put(oσ+j, oyσ+i, v)
			}
		}
		// unit diagonal of every eliminated row
		for d := range o.fixed {
			o.putRaw(d, d, 1)
		}
		o.putRaw(o.cstar, o.cstar, 1)
	}

	o.condenseRhs(fb)
	return
}
