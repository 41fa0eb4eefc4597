// Copyright 2016 The Opm-models Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements the output boundary: periodic snapshots of the
// saturation field written as legacy VTK files. Field names follow the
// "pressure_<phase>" / "saturation_<phase>" contract of the box model
package out

import (
	"bytes"

	"github.com/akva2/opm-models/fv"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// VtkWriter writes one legacy VTK file per output call, named
// <dirout>/<fnkey>-NNNNNN.vtk. It implements fv.OutputHandler and is
// registered on the time loop before the run starts
type VtkWriter struct {
	Dirout string        // output directory
	Fnkey  string        // filename key
	Field  string        // field name; e.g. "saturation_water"
	Grd    *fv.Grid      // grid geometry
	Vars   *fv.Variables // fields to snapshot

	nfiles int // number of files written
}

// NewVtkWriter returns a new writer
func NewVtkWriter(dirout, fnkey, field string, g *fv.Grid, vars *fv.Variables) (o *VtkWriter, err error) {
	if g == nil || vars == nil {
		return nil, chk.Err("vtk writer requires grid and variables")
	}
	if fnkey == "" || field == "" {
		return nil, chk.Err("vtk writer requires a filename key and a field name. fnkey=%q field=%q", fnkey, field)
	}
	return &VtkWriter{Dirout: dirout, Fnkey: fnkey, Field: field, Grd: g, Vars: vars}, nil
}

// Nfiles returns the number of files written so far
func (o *VtkWriter) Nfiles() int { return o.nfiles }

// Output writes one snapshot
func (o *VtkWriter) Output(stepIdx int, t float64) (err error) {

	// header
	var buf bytes.Buffer
	io.Ff(&buf, "# vtk DataFile Version 3.0\n")
	io.Ff(&buf, "%s: step %d, t=%g\n", o.Fnkey, stepIdx, t)
	io.Ff(&buf, "ASCII\n")
	io.Ff(&buf, "DATASET STRUCTURED_POINTS\n")
	io.Ff(&buf, "DIMENSIONS %d %d 1\n", o.Grd.Nx+1, o.Grd.Ny+1)
	io.Ff(&buf, "ORIGIN 0 0 0\n")
	io.Ff(&buf, "SPACING %g %g 1\n", o.Grd.Dx, o.Grd.Dy)

	// cell data
	io.Ff(&buf, "CELL_DATA %d\n", o.Grd.NumCells())
	io.Ff(&buf, "SCALARS %s float 1\n", o.Field)
	io.Ff(&buf, "LOOKUP_TABLE default\n")
	for _, s := range o.Vars.Sat {
		io.Ff(&buf, "%g\n", s)
	}

	// write file
	fn := io.Sf("%s-%06d.vtk", o.Fnkey, stepIdx)
	io.WriteFileD(o.Dirout, fn, &buf)
	o.nfiles++
	return
}
