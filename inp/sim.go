// Copyright 2017 The Gosand Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Data holds global data for simulations
type Data struct {
	Desc     string `json:"desc"`     // description of simulation
	DirOut   string `json:"dirout"`   // directory for output; e.g. /tmp/gosand
	FnameKey string `json:"fnamekey"` // filename key for output files
}

// MeshData holds the structured grid definition
type MeshData struct {
	W  float64 `json:"w"`  // width of the design domain
	H  float64 `json:"h"`  // height of the design domain
	Nx int     `json:"nx"` // number of cells along x
	Ny int     `json:"ny"` // number of cells along y
}

// SimpData holds material-interpolation and filter parameters
type SimpData struct {
	VolFrac float64 `json:"volfrac"` // volume fraction == initial density
	Penal   float64 `json:"penal"`   // SIMP penalization exponent
	FilterR float64 `json:"filterr"` // density filter radius
	Lam     float64 `json:"lam"`     // Lamé constant λ
	Mu      float64 `json:"mu"`      // Lamé constant μ
	LoadW   float64 `json:"loadw"`   // half-width of the loaded boundary strip
	Slack0  float64 `json:"slack0"`  // initial value of the slack multipliers
}

// LinSolData holds data for linear solvers
type LinSolData struct {
	Name      string `json:"name"`      // "umfpack" or "mumps"
	Symmetric bool   `json:"symmetric"` // use symmetric solver
	Verbose   bool   `json:"verbose"`   // verbose?
	Timing    bool   `json:"timing"`    // show timing statistics
}

// SolverData holds the interior-point solver constants. Every field is
// externally overridable; the defaults reproduce the reference settings.
type SolverData struct {

	// barrier continuation
	BarrierInit  float64 `json:"barrierinit"`  // initial barrier parameter
	BarrierMin   float64 `json:"barriermin"`   // barrier floor
	BarrierMult  float64 `json:"barriermult"`  // linear barrier reduction factor
	BarrierExpon float64 `json:"barrierexpon"` // superlinear barrier reduction exponent

	// globalization
	MaxIt         int     `json:"maxit"`         // hard iteration cap
	MaxUphill     int     `json:"maxuphill"`     // watchdog uphill steps
	MaxBacktracks int     `json:"maxbacktracks"` // line-search halvings
	Nbisect       int     `json:"nbisect"`       // bisection iterations for step lengths
	DescentReq    float64 `json:"descentreq"`    // sufficient-decrease requirement
	FDEps         float64 `json:"fdeps"`         // finite-difference perturbation
	ConvFactor    float64 `json:"convfactor"`    // convergence tolerance factor
	MinFtb        float64 `json:"minftb"`        // fraction-to-boundary lower clamp
	MaxFtb        float64 `json:"maxftb"`        // fraction-to-boundary upper clamp
	ShowR         bool    `json:"showr"`         // show merit/residual progress
}

// FuncData holds the load-scaling function definition
type FuncData struct {
	Name string     `json:"name"` // function type; e.g. "cte"
	Prms dbf.Params `json:"prms"` // parameters
}

// Simulation holds all simulation input data
type Simulation struct {
	Data    Data       `json:"data"`    // global data
	Mesh    MeshData   `json:"mesh"`    // grid definition
	Simp    SimpData   `json:"simp"`    // SIMP parameters
	Solver  SolverData `json:"solver"`  // interior-point constants
	LinSol  LinSolData `json:"linsol"`  // linear solver data
	LoadFcn *FuncData  `json:"loadfcn"` // traction scaling function (may be absent)
}

// SetDefaults fills zero-valued fields with the reference settings
func (o *Simulation) SetDefaults() {
	if o.Data.DirOut == "" {
		o.Data.DirOut = "/tmp/gosand"
	}
	if o.Data.FnameKey == "" {
		o.Data.FnameKey = "sand"
	}
	if o.Mesh.W == 0 {
		o.Mesh.W = 6
	}
	if o.Mesh.H == 0 {
		o.Mesh.H = 1
	}
	if o.Mesh.Nx == 0 {
		o.Mesh.Nx = 48
	}
	if o.Mesh.Ny == 0 {
		o.Mesh.Ny = 8
	}
	if o.Simp.VolFrac == 0 {
		o.Simp.VolFrac = 0.5
	}
	if o.Simp.Penal == 0 {
		o.Simp.Penal = 3
	}
	if o.Simp.FilterR == 0 {
		o.Simp.FilterR = 0.251
	}
	if o.Simp.Lam == 0 {
		o.Simp.Lam = 1
	}
	if o.Simp.Mu == 0 {
		o.Simp.Mu = 1
	}
	if o.Simp.LoadW == 0 {
		o.Simp.LoadW = 0.3
	}
	if o.Simp.Slack0 == 0 {
		o.Simp.Slack0 = 50
	}
	if o.Solver.BarrierInit == 0 {
		o.Solver.BarrierInit = 25
	}
	if o.Solver.BarrierMin == 0 {
		o.Solver.BarrierMin = 0.0005
	}
	if o.Solver.BarrierMult == 0 {
		o.Solver.BarrierMult = 0.8
	}
	if o.Solver.BarrierExpon == 0 {
		o.Solver.BarrierExpon = 1.2
	}
	if o.Solver.MaxIt == 0 {
		o.Solver.MaxIt = 10000
	}
	if o.Solver.MaxUphill == 0 {
		o.Solver.MaxUphill = 8
	}
	if o.Solver.MaxBacktracks == 0 {
		o.Solver.MaxBacktracks = 10
	}
	if o.Solver.Nbisect == 0 {
		o.Solver.Nbisect = 50
	}
	if o.Solver.DescentReq == 0 {
		o.Solver.DescentReq = 1e-4
	}
	if o.Solver.FDEps == 0 {
		o.Solver.FDEps = 1e-4
	}
	if o.Solver.ConvFactor == 0 {
		o.Solver.ConvFactor = 1e-2
	}
	if o.Solver.MinFtb == 0 {
		o.Solver.MinFtb = 0.8
	}
	if o.Solver.MaxFtb == 0 {
		o.Solver.MaxFtb = 0.99999
	}
	if o.LinSol.Name == "" {
		o.LinSol.Name = "umfpack"
	}
}

// GetLoadFcn allocates the traction scaling function; constant 1 if the
// input file does not define one
func (o *Simulation) GetLoadFcn() dbf.T {
	if o.LoadFcn == nil {
		return &dbf.Cte{C: 1}
	}
	fcn, err := dbf.New(o.LoadFcn.Name, o.LoadFcn.Prms)
	if err != nil {
		chk.Panic("cannot allocate load function %q:\n%v", o.LoadFcn.Name, err)
	}
	return fcn
}

// ReadSim reads a simulation input file in JSON format
func ReadSim(simfilepath string, erasePrev bool) (o *Simulation) {

	// read file
	b, err := os.ReadFile(simfilepath)
	if err != nil {
		chk.Panic("cannot read simulation file %q:\n%v", simfilepath, err)
	}

	// decode
	o = new(Simulation)
	err = json.Unmarshal(b, o)
	if err != nil {
		chk.Panic("cannot parse simulation file %q:\n%v", simfilepath, err)
	}
	o.SetDefaults()

	// filename key from the input filename if not given
	if o.Data.FnameKey == "sand" {
		fn := filepath.Base(simfilepath)
		o.Data.FnameKey = strings.TrimSuffix(fn, filepath.Ext(fn))
	}

	// results directory
	if erasePrev {
		os.RemoveAll(o.Data.DirOut)
	}
	err = os.MkdirAll(o.Data.DirOut, 0777)
	if err != nil {
		chk.Panic("cannot create results directory %q:\n%v", o.Data.DirOut, err)
	}
	return
}
