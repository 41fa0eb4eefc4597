// Copyright 2016 The Opm-models Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the configuration surface: a .sim JSON file read
// into a single explicit structure that is assembled before construction and
// passed into each component. No component reaches into ambient global
// parameter state
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/akva2/opm-models/mdl/prm"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Data holds global simulation data
type Data struct {
	Desc   string `json:"desc"`   // description of simulation
	DirOut string `json:"dirout"` // directory for output; e.g. /tmp/opm-models
	Fnkey  string `json:"fnkey"`  // filename key for output; defaults to the .sim filename
}

// TransportData holds the definition of the decoupled transport scenario
type TransportData struct {
	Nx       int     `json:"nx"`       // number of cells in x
	Ny       int     `json:"ny"`       // number of cells in y
	Lx       float64 `json:"lx"`       // domain size in x [m]
	Ly       float64 `json:"ly"`       // domain size in y [m]
	Poro     float64 `json:"poro"`     // porosity
	Vx       float64 `json:"vx"`       // total velocity in x [m/s]
	Vy       float64 `json:"vy"`       // total velocity in y [m/s]
	InitSat  float64 `json:"initsat"`  // initial saturation
	InletSat float64 `json:"inletsat"` // saturation injected over the inflow boundary
	FracFlow string  `json:"fracflow"` // fractional flow law: "linear" or "quadratic"
}

// ControlData holds the time loop controls
type ControlData struct {
	TStart     float64 `json:"tstart"`     // start time [s]
	TEnd       float64 `json:"tend"`       // end time [s]
	MaxDt      float64 `json:"maxdt"`      // maximum step size [s]
	CflFactor  float64 `json:"cfl"`        // CFL safety margin, strictly less than 1
	Modulo     int     `json:"modulo"`     // accepted steps between outputs
	MaxRetries int     `json:"maxretries"` // bound on step-halving retries
	Verbose    bool    `json:"verbose"`    // show messages
}

// SetDefault sets default control values
func (o *ControlData) SetDefault() {
	o.TStart = 0
	o.TEnd = 4e9
	o.MaxDt = 1e100
	o.CflFactor = 0.99
	o.Modulo = 10
	o.MaxRetries = 30
}

// Simulation holds all data read from a .sim file
type Simulation struct {
	Data      Data          `json:"data"`      // global data
	Transport TransportData `json:"transport"` // transport scenario
	Control   ControlData   `json:"control"`   // time loop controls
	Fluid     prm.Params    `json:"fluid"`     // black-oil fluid parameters
	VelModel  string        `json:"velmodel"`  // velocity model name; e.g. "darcy"
}

// ReadSim reads all simulation data from a .sim JSON file
func ReadSim(simfilepath string) (o *Simulation, err error) {

	// read file
	if _, err = os.Stat(simfilepath); err != nil {
		return nil, chk.Err("ReadSim: cannot find simulation file %q", simfilepath)
	}
	b := io.ReadFile(simfilepath)

	// set default values
	o = new(Simulation)
	o.Control.SetDefault()
	o.Transport.FracFlow = "linear"
	o.VelModel = "darcy"

	// decode
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("ReadSim: cannot unmarshal simulation file %q: %v", simfilepath, err)
	}

	// filename key
	if o.Data.Fnkey == "" {
		o.Data.Fnkey = io.FnKey(filepath.Base(simfilepath))
	}

	// output directory
	if o.Data.DirOut == "" {
		o.Data.DirOut = "/tmp/opm-models/" + o.Data.Fnkey
	}

	// check data
	err = o.Validate()
	if err != nil {
		return nil, err
	}
	return
}

// Validate checks the configuration. Grid and material values are validated
// again by the components consuming them; here only the controls of the time
// loop and the scenario choices are checked
func (o *Simulation) Validate() (err error) {
	c := &o.Control
	if c.TEnd <= c.TStart {
		return chk.Err("sim: tend=%g must be greater than tstart=%g", c.TEnd, c.TStart)
	}
	if c.CflFactor <= 0 || c.CflFactor >= 1 {
		return chk.Err("sim: cfl factor must lie within (0,1). cfl=%g is invalid", c.CflFactor)
	}
	if c.MaxDt <= 0 {
		return chk.Err("sim: maxdt=%g must be positive", c.MaxDt)
	}
	if c.Modulo < 1 {
		return chk.Err("sim: modulo=%d must be at least 1", c.Modulo)
	}
	if c.MaxRetries < 1 {
		return chk.Err("sim: maxretries=%d must be at least 1", c.MaxRetries)
	}
	switch o.Transport.FracFlow {
	case "linear", "quadratic":
	default:
		return chk.Err("sim: fractional flow law %q is invalid (must be \"linear\" or \"quadratic\")", o.Transport.FracFlow)
	}
	return
}
