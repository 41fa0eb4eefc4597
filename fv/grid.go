// Copyright 2016 The Opm-models Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fv implements the decoupled explicit finite-volume saturation
// transport scheme with CFL-based adaptive time stepping
package fv

import (
	"github.com/cpmech/gosl/chk"
)

// Grid is a structured rectangular cell-centred grid (unit depth). Cell ids
// run row-major: c = j*nx + i
type Grid struct {
	Nx, Ny int     // number of cells in each direction
	Lx, Ly float64 // domain size [m]
	Dx, Dy float64 // cell size [m]
	Poro   float64 // uniform porosity
}

// NewGrid returns a structured rectangular grid
func NewGrid(nx, ny int, lx, ly, poro float64) (o *Grid, err error) {
	if nx < 1 || ny < 1 {
		return nil, chk.Err("grid requires at least one cell. nx=%d ny=%d", nx, ny)
	}
	if lx <= 0 || ly <= 0 {
		return nil, chk.Err("grid dimensions must be positive. lx=%g ly=%g", lx, ly)
	}
	if poro <= 0 || poro > 1 {
		return nil, chk.Err("porosity must lie within (0,1]. poro=%g is invalid", poro)
	}
	o = &Grid{Nx: nx, Ny: ny, Lx: lx, Ly: ly, Poro: poro}
	o.Dx = lx / float64(nx)
	o.Dy = ly / float64(ny)
	return
}

// NumCells returns the number of cells
func (o *Grid) NumCells() int { return o.Nx * o.Ny }

// PoreVolume returns the pore volume of one cell [m³]
func (o *Grid) PoreVolume(cellIdx int) float64 {
	return o.Poro * o.Dx * o.Dy
}

// Cid returns the cell id of position (i,j)
func (o *Grid) Cid(i, j int) int { return j*o.Nx + i }
