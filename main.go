// Copyright 2016 The Opm-models Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/akva2/opm-models/fv"
	"github.com/akva2/opm-models/inp"
	"github.com/akva2/opm-models/mdl/fluid"
	"github.com/akva2/opm-models/mdl/velocity"
	"github.com/akva2/opm-models/out"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
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
			os.Exit(1)
		}
	}()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "data/transport", ".sim", true)
	verbose := io.ArgToBool(1, true)

	// read simulation data
	sim, err := inp.ReadSim(fnamepath)
	if err != nil {
		chk.Panic("cannot read simulation input data:\n%v", err)
	}
	if verbose {
		io.Pf("> Simulation (.sim) file read\n")
	}

	// material data. checked up front so that a bad parameter set fails before
	// the run starts
	flu := new(fluid.Model)
	err = flu.Init(sim.Fluid)
	if err != nil {
		chk.Panic("cannot initialise fluid model:\n%v", err)
	}
	if _, err = velocity.New(sim.VelModel); err != nil {
		chk.Panic("cannot allocate velocity model:\n%v", err)
	}

	// grid and variables
	tr := &sim.Transport
	grid, err := fv.NewGrid(tr.Nx, tr.Ny, tr.Lx, tr.Ly, tr.Poro)
	if err != nil {
		chk.Panic("cannot allocate grid:\n%v", err)
	}
	vars := fv.NewVariables(grid.NumCells(), tr.InitSat, []float64{tr.Vx, tr.Vy})

	// material law
	fw := fv.LinearFracFlow
	if tr.FracFlow == "quadratic" {
		fw = fv.QuadraticFracFlow
	}

	// transport operator
	transport, err := fv.NewTransport(grid, vars, fw, tr.InletSat)
	if err != nil {
		chk.Panic("cannot allocate transport operator:\n%v", err)
	}

	// time loop
	ctl := &sim.Control
	loop, err := fv.NewTimeLoop(ctl.TStart, ctl.TEnd, ctl.MaxDt, ctl.CflFactor, ctl.Modulo, ctl.MaxRetries)
	if err != nil {
		chk.Panic("cannot allocate time loop:\n%v", err)
	}
	loop.Verbose = verbose && ctl.Verbose

	// output handler
	writer, err := out.NewVtkWriter(sim.Data.DirOut, sim.Data.Fnkey, "saturation_water", grid, vars)
	if err != nil {
		chk.Panic("cannot allocate vtk writer:\n%v", err)
	}
	loop.AddOutput(writer)

	// run
	if verbose {
		io.Pf("> Running transport time loop\n")
	}
	err = loop.Execute(transport)
	if err != nil {
		chk.Panic("transport simulation failed:\n%v", err)
	}

	// final message
	if verbose {
		io.Pf("saturation =")
		for _, s := range vars.Sat {
			io.Pf(" %g", s)
		}
		io.Pf("\n")
		io.PfGreen("> Success\n")
		io.Pf("> %d steps, %d output files in %s\n", loop.Step, writer.Nfiles(), sim.Data.DirOut)
	}
}
