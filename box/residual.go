// Copyright 2016 The Opm-models Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package box

import (
	"math"

	"github.com/akva2/opm-models/mdl/fluid"
	"github.com/akva2/opm-models/mdl/velocity"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Assembler computes, for each control volume and each component κ, the
// conservation-law residual
//
//   R^κ = Σα ∂t(φ・c_α^κ・Sα) - Σα div(c_α^κ・vα) - q^κ
//
// using the box scheme: the storage term is integrated over the control
// volume with the current and previous time levels, the flux term over the
// control-volume faces with upwind mobilities and concentrations, and the
// source term comes from the external problem definition. The filter velocity
// vα is delegated to the injected velocity model; the assembler never
// inspects which flux law is in use
type Assembler struct {

	// collaborators (injected)
	Ind *Indices       // index table
	Flu *fluid.Model   // fluid property evaluator
	Vel velocity.Model // filter velocity model
	Top Topology       // control volume topology
	Prb Problem        // sources, gravity, soil correlations

	// scratchpad. computed @ each face
	dp    []float64  // [ndim] value differences along the face stencil
	gradP []float64  // [ndim] reconstructed pressure gradient
	vph   []float64  // [ndim] phase filter velocity
	dxi   *la.Matrix // (ndim x ndim) inverse of the local geometry matrix

	// scratchpad. computed @ each vertex
	satsCur []float64 // [nphases] current saturations
	satsOld []float64 // [nphases] previous saturations
}

// NewAssembler returns a new residual assembler
func NewAssembler(ind *Indices, flu *fluid.Model, vel velocity.Model, top Topology, prb Problem) (o *Assembler) {
	if ind == nil || flu == nil || vel == nil || top == nil || prb == nil {
		chk.Panic("assembler requires indices, fluid evaluator, velocity model, topology and problem")
	}
	ndim := top.Ndim()
	o = &Assembler{Ind: ind, Flu: flu, Vel: vel, Top: top, Prb: prb}
	o.dp = make([]float64, ndim)
	o.gradP = make([]float64, ndim)
	o.vph = make([]float64, ndim)
	o.dxi = la.NewMatrix(ndim, ndim)
	o.satsCur = make([]float64, ind.NumPhases)
	o.satsOld = make([]float64, ind.NumPhases)
	return
}

// AddToRhs adds the residual of every control volume and component to fb
// ([nverts*neq], rows r = vertIdx*neq + Conti0 + compIdx), for a step of size
// dt ending at sol.T. The previous time level of sol is read-only here
func (o *Assembler) AddToRhs(fb []float64, sol *Solution, dt float64) (err error) {

	// check dimensions
	nverts := o.Top.NumVerts()
	neq := o.Ind.Neq()
	if len(fb) != nverts*neq {
		chk.Panic("residual vector has wrong size: %d != %d", len(fb), nverts*neq)
	}
	if dt <= 0 {
		return chk.Err("assembly requires a positive step size. dt=%g is invalid", dt)
	}

	// storage accumulation: Σα (φ・c_α^κ・Sα |t - φ・c_α^κ・Sα |t-1)/dt
	for v := 0; v < nverts; v++ {
		vol := o.Top.CtrlVolume(v)
		poro := o.Top.Porosity(v)
		pCur := sol.Val(Current, v, o.Ind.Pressure0)
		pOld := sol.Val(Previous, v, o.Ind.Pressure0)
		sol.Saturations(Current, v, o.Ind, o.satsCur)
		sol.Saturations(Previous, v, o.Ind, o.satsOld)
		for alpha := 0; alpha < o.Ind.NumPhases; alpha++ {
			for kappa := 0; kappa < o.Ind.NumComponents; kappa++ {
				cCur, e := o.Flu.Concentration(alpha, kappa, pCur)
				if e != nil {
					return chk.Err("storage term @ vertex %d failed: %v", v, e)
				}
				cOld, e := o.Flu.Concentration(alpha, kappa, pOld)
				if e != nil {
					return chk.Err("storage term @ vertex %d failed: %v", v, e)
				}
				r := v*neq + o.Ind.Conti0 + kappa
				fb[r] += vol * poro * (cCur*o.satsCur[alpha] - cOld*o.satsOld[alpha]) / dt
			}
		}
	}

	// flux divergence: loop over sub-control-volume faces
	grav := o.Prb.Gravity()
	ndim := o.Top.Ndim()
	for _, face := range o.Top.Faces() {

		// gradient reconstruction: solve DX・grad = dp
		pA := sol.Val(Current, face.A, o.Ind.Pressure0)
		pB := sol.Val(Current, face.B, o.Ind.Pressure0)
		o.dp[0] = pB - pA
		for i := 1; i < ndim; i++ {
			o.dp[i] = 0
		}
		det := la.MatInvSmall(o.dxi, face.DX, 0)
		if math.Abs(det) < SingularLim {
			return chk.Err("gradient reconstruction @ face %d-%d: local geometry matrix is singular (|det|=%g < %g)", face.A, face.B, math.Abs(det), SingularLim)
		}
		for i := 0; i < ndim; i++ {
			o.gradP[i] = 0
			for j := 0; j < ndim; j++ {
				o.gradP[i] += o.dxi.Get(i, j) * o.dp[j]
			}
		}

		// phase fluxes with upwind mobility and concentration
		sol.Saturations(Current, face.A, o.Ind, o.satsCur)
		sol.Saturations(Current, face.B, o.Ind, o.satsOld) // reused as B-side scratch
		for alpha := 0; alpha < o.Ind.NumPhases; alpha++ {

			// flow direction from unit-mobility velocity with face-average density
			rhoA, e := o.Flu.Density(alpha, pA)
			if e != nil {
				return chk.Err("flux term @ face %d-%d failed: %v", face.A, face.B, e)
			}
			rhoB, e := o.Flu.Density(alpha, pB)
			if e != nil {
				return chk.Err("flux term @ face %d-%d failed: %v", face.A, face.B, e)
			}
			rho := 0.5 * (rhoA + rhoB)
			e = o.Vel.Compute(o.vph, o.gradP, grav, face.Perm, rho, 1)
			if e != nil {
				return chk.Err("flux term @ face %d-%d failed: %v", face.A, face.B, e)
			}
			dir := 0.0
			for i := 0; i < ndim; i++ {
				dir += o.vph[i] * face.Normal[i]
			}

			// upwind vertex
			upw, pUpw, sUpw := face.A, pA, o.satsCur[alpha]
			if dir < 0 {
				upw, pUpw, sUpw = face.B, pB, o.satsOld[alpha]
			}

			// mobility krα/μα at the upwind vertex
			mu, e := o.Flu.Viscosity(alpha, pUpw)
			if e != nil {
				return chk.Err("flux term @ face %d-%d failed: %v", face.A, face.B, e)
			}
			mob := o.Prb.RelPerm(alpha, sUpw) / mu
			if mob == 0 {
				continue
			}

			// filter velocity and volumetric flux from A to B
			e = o.Vel.Compute(o.vph, o.gradP, grav, face.Perm, rho, mob)
			if e != nil {
				return chk.Err("flux term @ face %d-%d failed: %v", face.A, face.B, e)
			}
			q := 0.0
			for i := 0; i < ndim; i++ {
				q += o.vph[i] * face.Normal[i]
			}
			q *= face.Area

			// component fluxes: outflow positive for A, inflow for B
			for kappa := 0; kappa < o.Ind.NumComponents; kappa++ {
				c, e := o.Flu.Concentration(alpha, kappa, pUpw)
				if e != nil {
					return chk.Err("flux term @ face %d-%d failed: %v", face.A, face.B, e)
				}
				if c == 0 {
					continue
				}
				fb[face.A*neq+o.Ind.Conti0+kappa] += q * c
				fb[face.B*neq+o.Ind.Conti0+kappa] -= q * c
			}
		}
	}

	// source terms
	for v := 0; v < nverts; v++ {
		vol := o.Top.CtrlVolume(v)
		for kappa := 0; kappa < o.Ind.NumComponents; kappa++ {
			fb[v*neq+o.Ind.Conti0+kappa] -= vol * o.Prb.Source(v, kappa, sol.T)
		}
	}
	return
}
