// Copyright 2016 The Opm-models Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package velocity

import (
	"math"

	"github.com/akva2/opm-models/mdl/prm"
	"github.com/cpmech/gosl/chk"
)

// Forchheimer implements the Forchheimer velocity model, which augments the
// Darcy law with an inertial drag term relevant at high flow rates:
//   -(grad(pα) - ρα・g) = vα/(mob・K) + cF・ρα・mob_k・|vα|・vα/√K
// Rearranged against the Darcy velocity vD, the magnitude satisfies
//   |v| + β・|v|² = |vD|,  β = cF・ρ・mob・√k
// which has the closed-form root used below; the direction is that of vD
type Forchheimer struct {
	CF float64 // Forchheimer coefficient [-]
}

// add model to database
func init() {
	allocators["forchheimer"] = func() Model { return new(Forchheimer) }
}

// Init initialises this structure
func (o *Forchheimer) Init(prms prm.Params) (err error) {
	o.CF = 0.55
	for _, p := range prms {
		switch p.N {
		case "cf":
			o.CF = p.V
		default:
			return chk.Err("forchheimer velocity model: parameter named %q is invalid", p.N)
		}
	}
	if o.CF < 0 {
		return chk.Err("forchheimer velocity model: cf must be non-negative. cf=%g is invalid", o.CF)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o Forchheimer) GetPrms(example bool) prm.Params {
	if example {
		return prm.Params{
			&prm.P{N: "cf", V: 0.55},
		}
	}
	return prm.Params{
		&prm.P{N: "cf", V: o.CF},
	}
}

// Compute computes the filter velocity
func (o Forchheimer) Compute(v, gradP, grav []float64, kSat [][]float64, rho, mob float64) (err error) {

	// Darcy velocity first
	var darcy Darcy
	err = darcy.Compute(v, gradP, grav, kSat, rho, mob)
	if err != nil {
		return
	}

	// magnitude of Darcy velocity
	ndim := len(v)
	var vD float64
	for i := 0; i < ndim; i++ {
		vD += v[i] * v[i]
	}
	vD = math.Sqrt(vD)
	if vD == 0 {
		return
	}

	// inertial correction factor. k taken as the leading diagonal entry
	beta := o.CF * rho * mob * math.Sqrt(kSat[0][0])
	if beta == 0 {
		return
	}

	// |v| solves |v| + β|v|² = |vD|
	vAbs := (-1.0 + math.Sqrt(1.0+4.0*beta*vD)) / (2.0 * beta)
	scale := vAbs / vD
	for i := 0; i < ndim; i++ {
		v[i] *= scale
	}
	return
}
