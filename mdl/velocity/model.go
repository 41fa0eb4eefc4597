// Copyright 2016 The Opm-models Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package velocity implements filter velocity models for multiphase flow in
// porous media. The residual assembler consumes the Model contract only and
// never inspects which flux law is in use
package velocity

import (
	"github.com/akva2/opm-models/mdl/prm"
	"github.com/cpmech/gosl/chk"
)

// Model defines filter velocity models. Compute fills v with the filter
// velocity vα [m/s] of one phase given:
//  gradP    -- pressure gradient [Pa/m]
//  grav     -- gravity vector [m/s²]
//  kSat     -- intrinsic permeability tensor [m²]
//  rho      -- phase mass density [kg/m³]
//  mobility -- phase mobility krα/μα [1/(Pa・s)]
type Model interface {
	Init(prms prm.Params) error                                             // Init initialises this structure
	GetPrms(example bool) prm.Params                                        // gets (an example) of parameters
	Compute(v, gradP, grav []float64, kSat [][]float64, rho, mob float64) error // computes filter velocity
}

// New returns a velocity model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'velocity' database", name)
	}
	return allocator(), nil
}

// allocators holds all available models
var allocators = map[string]func() Model{}
