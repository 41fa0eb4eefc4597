// Copyright 2016 The Opm-models Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package velocity

import (
	"github.com/akva2/opm-models/mdl/prm"
	"github.com/cpmech/gosl/chk"
)

// Darcy implements the standard multi-phase Darcy law
//   vα = -(krα/μα)・K・(grad(pα) - ρα・g)
type Darcy struct{}

// add model to database
func init() {
	allocators["darcy"] = func() Model { return new(Darcy) }
}

// Init initialises this structure
func (o *Darcy) Init(prms prm.Params) (err error) {
	for _, p := range prms {
		return chk.Err("darcy velocity model: parameter named %q is invalid", p.N)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o Darcy) GetPrms(example bool) prm.Params {
	return prm.Params{}
}

// Compute computes the filter velocity
func (o Darcy) Compute(v, gradP, grav []float64, kSat [][]float64, rho, mob float64) (err error) {
	if mob < 0 {
		return chk.Err("darcy velocity model: mobility must be non-negative. mob=%g is invalid", mob)
	}
	ndim := len(v)
	for i := 0; i < ndim; i++ {
		v[i] = 0
		for j := 0; j < ndim; j++ {
			v[i] -= mob * kSat[i][j] * (gradP[j] - rho*grav[j])
		}
	}
	return
}
