// Copyright 2016 The Opm-models Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package box implements the control-volume finite-element ("box")
// discretisation of the fully-implicit black-oil model: the primary
// variable/equation index table, the two-time-level solution state, and the
// per-control-volume residual assembler
package box

import (
	"github.com/cpmech/gosl/chk"
)

// Indices maps physical quantities (phase-0 pressure, phase saturations,
// per-component continuity equations) to slots in the primary-variable and
// equation vectors. The table is built once, validated for totality and
// injectivity, and never changes during a simulation run.
//
// Per vertex there is exactly one pressure slot and numPhases-1 independent
// saturation slots; the omitted saturation follows from Σα Sα = 1
type Indices struct {

	// dimensions
	NumPhases     int // number of phases
	NumComponents int // number of components

	// primary variable slots
	Pressure0   int // slot of the pressure of the phase with the lowest index
	Saturation0 int // first saturation slot

	// equation slots
	Conti0 int // first continuity equation slot
}

// NewIndices returns a validated index table
func NewIndices(numPhases, numComponents int) (o *Indices, err error) {
	if numPhases < 2 {
		return nil, chk.Err("indices: at least two phases are required. numPhases=%d is invalid", numPhases)
	}
	if numComponents != numPhases {
		return nil, chk.Err("indices: the black-oil model carries one continuity equation per phase. numComponents=%d != numPhases=%d", numComponents, numPhases)
	}
	o = &Indices{
		NumPhases:     numPhases,
		NumComponents: numComponents,
		Pressure0:     0,
		Saturation0:   1,
		Conti0:        0,
	}

	// injectivity: the saturation range must not overlap the pressure slot
	if o.Pressure0 >= o.Saturation0 && o.Pressure0 < o.Saturation0+numPhases-1 {
		return nil, chk.Err("indices: pressure slot %d overlaps saturation range [%d,%d]", o.Pressure0, o.Saturation0, o.Saturation0+numPhases-2)
	}

	// totality: slots must cover [0,npv) without gaps
	if o.Npv() != 1+(numPhases-1) {
		return nil, chk.Err("indices: slot table does not cover the unknown set: npv=%d", o.Npv())
	}
	return
}

// Npv returns the number of primary variables per vertex
func (o *Indices) Npv() int {
	return 1 + (o.NumPhases - 1)
}

// Neq returns the number of equations per vertex
func (o *Indices) Neq() int {
	return o.NumComponents
}

// IsPressure tells whether pvIdx is the pressure slot
func (o *Indices) IsPressure(pvIdx int) bool {
	return pvIdx == o.Pressure0
}

// IsSaturation tells whether pvIdx falls in the saturation range. The slot of
// the dependent saturation is included so that every phase saturation resolves
// to a name, even though only numPhases-1 of them are unknowns
func (o *Indices) IsSaturation(pvIdx int) bool {
	return pvIdx >= o.Saturation0 && pvIdx <= o.Saturation0+o.NumPhases-1
}

// SatPhase returns the phase index of a saturation slot
func (o *Indices) SatPhase(pvIdx int) int {
	if !o.IsSaturation(pvIdx) {
		chk.Panic("slot %d is not a saturation slot", pvIdx)
	}
	return pvIdx - o.Saturation0
}

// EqComp returns the component index of a continuity equation slot
func (o *Indices) EqComp(eqIdx int) int {
	if eqIdx < o.Conti0 || eqIdx >= o.Conti0+o.NumComponents {
		chk.Panic("slot %d is not a continuity equation slot", eqIdx)
	}
	return eqIdx - o.Conti0
}
