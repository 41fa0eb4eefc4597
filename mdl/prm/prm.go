// Copyright 2016 The Opm-models Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package prm implements named parameter sets. Material models read their
// coefficients from a Params database in their Init functions; the .sim
// configuration file carries the same {n, v} shape
package prm

import (
	"github.com/cpmech/gosl/io"
)

// P holds one named parameter
type P struct {
	N string  `json:"n"` // name
	V float64 `json:"v"` // value
}

// Params holds a set of parameters
type Params []*P

// Find returns the parameter named name or nil if it is not in the set
func (o Params) Find(name string) *P {
	for _, p := range o {
		if p.N == name {
			return p
		}
	}
	return nil
}

// String returns a one-line representation of the parameter set
func (o Params) String() (l string) {
	for i, p := range o {
		if i > 0 {
			l += " "
		}
		l += io.Sf("%s=%g", p.N, p.V)
	}
	return
}
