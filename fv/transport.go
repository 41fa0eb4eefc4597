// Copyright 2016 The Opm-models Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fv

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// boundTol is the floating tolerance for saturation bound checks: excursions
// smaller than this are round-off and are snapped to the bound; anything
// larger marks the step as numerically invalid
const boundTol = 1e-12

// FracFlow defines the fractional flow function f(S) of the wetting phase.
// The material law itself (soil/relative-permeability correlations) is an
// external collaborator; the transport scheme only consumes this closure
type FracFlow func(s float64) float64

// LinearFracFlow is the linear material law f(S) = S
func LinearFracFlow(s float64) float64 { return s }

// QuadraticFracFlow is the nonlinear (Buckley-Leverett type) material law
// with quadratic relative permeabilities
func QuadraticFracFlow(s float64) float64 {
	return s * s / (s*s + (1.0-s)*(1.0-s))
}

// Variables owns the cell-centred fields of the transport scheme: the current
// and previous saturation levels and the (uniform) total velocity. The
// previous level is read-only during an update and overwritten on acceptance
type Variables struct {
	N       int       // number of cells
	Sat     []float64 // [n] current saturation level
	SatPrev []float64 // [n] previous (accepted) saturation level
	Vel     []float64 // [2] uniform total velocity [m/s]
}

// NewVariables allocates the fields with a uniform initial saturation
func NewVariables(n int, initSat float64, vel []float64) (o *Variables) {
	if initSat < 0 || initSat > 1 {
		chk.Panic("initial saturation %g is outside [0,1]", initSat)
	}
	o = &Variables{N: n, Vel: vel}
	o.Sat = make([]float64, n)
	o.SatPrev = make([]float64, n)
	for i := 0; i < n; i++ {
		o.Sat[i] = initSat
		o.SatPrev[i] = initSat
	}
	return
}

// Transport performs explicit first-order upwind saturation updates on a
// structured grid with a uniform total velocity field, injection over the
// inflow boundary and free outflow over the outflow boundary (no-flow
// elsewhere)
type Transport struct {

	// collaborators
	Grd  *Grid      // grid geometry
	Vars *Variables // cell-centred fields
	Fw   FracFlow   // fractional flow function (external material law)

	// boundary data
	InletSat float64 // saturation injected over the inflow boundary

	// accounting over accepted steps
	InFlow  float64 // cumulative injected volume [m³]
	OutFlow float64 // cumulative produced volume [m³]

	// scratchpad
	snew []float64 // [n] candidate saturations
}

// NewTransport returns a new transport operator
func NewTransport(g *Grid, vars *Variables, fw FracFlow, inletSat float64) (o *Transport, err error) {
	if g == nil || vars == nil || fw == nil {
		return nil, chk.Err("transport requires grid, variables and fractional flow function")
	}
	if vars.N != g.NumCells() {
		return nil, chk.Err("variables hold %d cells but grid has %d", vars.N, g.NumCells())
	}
	if inletSat < 0 || inletSat > 1 {
		return nil, chk.Err("inlet saturation %g is outside [0,1]", inletSat)
	}
	if len(vars.Vel) != 2 {
		return nil, chk.Err("transport requires a two-component velocity vector. len=%d is invalid", len(vars.Vel))
	}
	if vars.Vel[0] < 0 || vars.Vel[1] < 0 {
		return nil, chk.Err("transport assumes non-negative velocity components (inflow west/south). vel=%v", vars.Vel)
	}
	o = &Transport{Grd: g, Vars: vars, Fw: fw, InletSat: inletSat}
	o.snew = make([]float64, vars.N)
	return
}

// MaxStableDt returns the CFL-limited step size: no face may transport more
// than cflFactor times one control volume's worth of pore volume within the
// step, i.e. dt ≤ cflFactor・min_faces(poreVolume/|flux|)
func (o *Transport) MaxStableDt(cflFactor float64) float64 {
	qx := math.Abs(o.Vars.Vel[0]) * o.Grd.Dy // volumetric flux across an x-face
	qy := math.Abs(o.Vars.Vel[1]) * o.Grd.Dx // volumetric flux across a y-face
	dt := math.MaxFloat64
	pv := o.Grd.PoreVolume(0)
	if qx > 0 {
		dt = math.Min(dt, pv/qx)
	}
	if qy > 0 {
		dt = math.Min(dt, pv/qy)
	}
	return cflFactor * dt
}

// Update advances the saturation field by one explicit step of size dt ending
// at time t. When the update produces saturations outside the physical bounds
// the candidate is discarded, no state is modified and an error is returned,
// so that the time loop can reject the step and retry with a smaller one
func (o *Transport) Update(t, dt float64) (err error) {

	// candidate saturations
	g, vars := o.Grd, o.Vars
	vx, vy := vars.Vel[0], vars.Vel[1]
	qx := vx * g.Dy
	qy := vy * g.Dx
	var stepIn, stepOut float64
	for j := 0; j < g.Ny; j++ {
		for i := 0; i < g.Nx; i++ {
			c := g.Cid(i, j)
			flux := 0.0 // net inflow of wetting phase volume [m³/s]

			// x-direction faces (qx ≥ 0 assumed for boundary roles below)
			if qx != 0 {
				// west face: inflow boundary or upwind neighbour
				if i == 0 {
					in := qx * o.Fw(o.InletSat)
					flux += in
					stepIn += in
				} else {
					flux += qx * o.Fw(vars.Sat[g.Cid(i-1, j)])
				}
				// east face: free outflow boundary or downwind neighbour
				out := qx * o.Fw(vars.Sat[c])
				flux -= out
				if i == g.Nx-1 {
					stepOut += out
				}
			}

			// y-direction faces (no-flow top and bottom)
			if qy != 0 {
				if j > 0 {
					flux += qy * o.Fw(vars.Sat[g.Cid(i, j-1)])
				}
				if j < g.Ny-1 {
					flux -= qy * o.Fw(vars.Sat[c])
				}
			}

			o.snew[c] = vars.Sat[c] + dt*flux/g.PoreVolume(c)
		}
	}

	// validity check: saturations must stay within [0,1]
	for c := 0; c < vars.N; c++ {
		s := o.snew[c]
		if s < -boundTol || s > 1.0+boundTol {
			return chk.Err("saturation %g @ cell %d is outside [0,1] after step dt=%g @ t=%g", s, c, dt, t)
		}
	}

	// commit: previous level gets the accepted state, round-off is snapped
	copy(vars.SatPrev, vars.Sat)
	for c := 0; c < vars.N; c++ {
		vars.Sat[c] = math.Min(1.0, math.Max(0.0, o.snew[c]))
	}
	o.InFlow += stepIn * dt
	o.OutFlow += stepOut * dt
	return
}
