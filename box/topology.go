// Copyright 2016 The Opm-models Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package box

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// Face is a sub-control-volume face between the control volumes of two
// vertices. DX is the local geometry matrix mapping a gradient to value
// differences along the face stencil; the assembler inverts it during
// gradient reconstruction (first row: vector from A to B; remaining rows:
// unit tangents closing the system with zero tangential variation)
type Face struct {
	A, B   int         // vertex ids on either side
	Area   float64     // face area [m²]
	Normal []float64   // unit normal pointing from A to B
	DX     *la.Matrix  // (ndim x ndim) local geometry matrix
	Perm   [][]float64 // [ndim][ndim] intrinsic permeability at the face [m²]
}

// Topology describes the vertex-centred control volumes (dual grid) consumed
// by the residual assembler. Grid generation and geometry are external; only
// this contract is seen by the discretisation
type Topology interface {
	Ndim() int                  // space dimension
	NumVerts() int              // number of vertices == control volumes
	CtrlVolume(v int) float64   // control volume of vertex v [m³]
	Porosity(v int) float64     // porosity φ of the control volume of v
	Faces() []Face              // all sub-control-volume faces
}

// Problem supplies the external problem definition: source terms, gravity and
// the soil correlations (relative permeability), which are not part of the
// discretisation core
type Problem interface {
	Source(vertIdx, compIdx int, t float64) float64 // source rate q^κ [mol/(m³・s)]
	Gravity() []float64                             // gravity vector [m/s²]
	RelPerm(phaseIdx int, sat float64) float64      // relative permeability krα(Sα)
}

// RectTopology implements Topology for a rectangular domain discretised by a
// regular lattice of vertices with axis-aligned faces and isotropic
// permeability. Used by the tests and the command-line driver; real grids
// come from an external grid layer
type RectTopology struct {
	Nx, Ny int     // number of vertices in each direction
	Lx, Ly float64 // domain size [m]
	Poro   float64 // uniform porosity
	Kiso   float64 // isotropic permeability [m²]

	dx, dy float64
	faces  []Face
}

// NewRectTopology returns a rectangular vertex-centred topology
func NewRectTopology(nx, ny int, lx, ly, poro, kiso float64) (o *RectTopology, err error) {
	if nx < 2 || ny < 2 {
		return nil, chk.Err("rectangular topology requires at least 2x2 vertices. nx=%d ny=%d", nx, ny)
	}
	if lx <= 0 || ly <= 0 || poro <= 0 || poro > 1 || kiso <= 0 {
		return nil, chk.Err("rectangular topology: lx=%g ly=%g poro=%g kiso=%g are invalid", lx, ly, poro, kiso)
	}
	o = &RectTopology{Nx: nx, Ny: ny, Lx: lx, Ly: ly, Poro: poro, Kiso: kiso}
	o.dx = lx / float64(nx-1)
	o.dy = ly / float64(ny-1)

	// permeability tensor shared by all faces
	perm := utl.Alloc(2, 2)
	perm[0][0], perm[1][1] = kiso, kiso

	// faces in x-direction
	for j := 0; j < ny; j++ {
		ay := o.dy
		if j == 0 || j == ny-1 {
			ay = o.dy / 2
		}
		for i := 0; i < nx-1; i++ {
			dx := la.NewMatrix(2, 2)
			dx.Set(0, 0, o.dx) // xB - xA
			dx.Set(1, 1, 1)    // tangent closure
			o.faces = append(o.faces, Face{
				A: o.vid(i, j), B: o.vid(i+1, j),
				Area:   ay,
				Normal: []float64{1, 0},
				DX:     dx,
				Perm:   perm,
			})
		}
	}

	// faces in y-direction
	for i := 0; i < nx; i++ {
		ax := o.dx
		if i == 0 || i == nx-1 {
			ax = o.dx / 2
		}
		for j := 0; j < ny-1; j++ {
			dx := la.NewMatrix(2, 2)
			dx.Set(0, 1, o.dy) // xB - xA
			dx.Set(1, 0, 1)    // tangent closure
			o.faces = append(o.faces, Face{
				A: o.vid(i, j), B: o.vid(i, j+1),
				Area:   ax,
				Normal: []float64{0, 1},
				DX:     dx,
				Perm:   perm,
			})
		}
	}
	return
}

// vid returns the vertex id of lattice position (i,j)
func (o *RectTopology) vid(i, j int) int { return j*o.Nx + i }

// Ndim returns the space dimension
func (o *RectTopology) Ndim() int { return 2 }

// NumVerts returns the number of vertices
func (o *RectTopology) NumVerts() int { return o.Nx * o.Ny }

// CtrlVolume returns the control volume of vertex v (halved on boundaries,
// quartered at corners; unit depth)
func (o *RectTopology) CtrlVolume(v int) float64 {
	i, j := v%o.Nx, v/o.Nx
	wx, wy := o.dx, o.dy
	if i == 0 || i == o.Nx-1 {
		wx /= 2
	}
	if j == 0 || j == o.Ny-1 {
		wy /= 2
	}
	return wx * wy
}

// Porosity returns the porosity of the control volume of vertex v
func (o *RectTopology) Porosity(v int) float64 { return o.Poro }

// Faces returns all sub-control-volume faces
func (o *RectTopology) Faces() []Face { return o.faces }
