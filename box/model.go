// Copyright 2016 The Opm-models Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package box

import (
	"math"

	"github.com/akva2/opm-models/mdl/fluid"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// SingularLim is the magnitude below which an inverted local matrix used in
// gradient reconstruction is treated as singular, clamping floating-point
// round-off before it becomes a convergence failure
const SingularLim = 1e-35

// Model ties the index table, the fluid property evaluator and the solution
// state together and provides the naming and weighting contract consumed by
// the nonlinear solver and by output modules.
//
// The names "pressure_<phase>", "saturation_<phase>" and "conti_<phase>" are
// a stable external contract; tooling parses them
type Model struct {
	Ind *Indices     // primary variable / equation index table
	Flu *fluid.Model // fluid property evaluator
	Sol *Solution    // two time-level solution state
}

// NewModel returns a new model. All collaborators are injected; the model
// keeps no global state
func NewModel(ind *Indices, flu *fluid.Model, sol *Solution) (o *Model) {
	if ind == nil || flu == nil || sol == nil {
		chk.Panic("model requires indices, fluid evaluator and solution state")
	}
	if sol.Npv != ind.Npv() {
		chk.Panic("solution npv=%d does not match index table npv=%d", sol.Npv, ind.Npv())
	}
	return &Model{Ind: ind, Flu: flu, Sol: sol}
}

// Name returns the name of this model
func (o *Model) Name() string { return "blackoil" }

// PrimaryVarName returns the name of a primary variable. The set of valid
// slots is closed and exhaustive; any other slot is a programming error
func (o *Model) PrimaryVarName(pvIdx int) string {
	if o.Ind.IsPressure(pvIdx) {
		return io.Sf("pressure_%s", o.Flu.PhaseName(0))
	}
	if o.Ind.IsSaturation(pvIdx) {
		return io.Sf("saturation_%s", o.Flu.PhaseName(o.Ind.SatPhase(pvIdx)))
	}
	chk.Panic("primary variable slot %d is invalid", pvIdx)
	return ""
}

// EqName returns the name of an equation
func (o *Model) EqName(eqIdx int) string {
	if eqIdx >= o.Ind.Conti0 && eqIdx < o.Ind.Conti0+o.Ind.NumComponents {
		return io.Sf("conti_%s", o.Flu.PhaseName(eqIdx-o.Ind.Conti0))
	}
	chk.Panic("equation slot %d is invalid", eqIdx)
	return ""
}

// PrimaryVarWeight returns the relative weight of a primary variable for
// nonlinear convergence criteria. The pressure weight min(1/|p|,1) keeps
// pressure updates comparable in magnitude to the O(1) saturation updates.
// The previous time level must already be populated: the weight queries the
// previous solution, not the current unconverged iterate
func (o *Model) PrimaryVarWeight(vertIdx, pvIdx int) float64 {
	if o.Ind.IsPressure(pvIdx) {
		absPv := math.Abs(o.Sol.Val(Previous, vertIdx, pvIdx))
		return math.Min(1.0/absPv, 1.0)
	}
	return 1
}

// EqWeight returns the relative weight of an equation: the molar mass of the
// associated component, so that all continuity residuals are expressed in kg
func (o *Model) EqWeight(vertIdx, eqIdx int) float64 {
	compIdx := eqIdx - o.Ind.Conti0
	if compIdx < 0 || compIdx > o.Ind.NumPhases {
		chk.Panic("component index %d of equation slot %d is outside valid range [0,%d]", compIdx, eqIdx, o.Ind.NumPhases)
	}

	// make all kg equal
	return o.Flu.MolarMass(compIdx)
}
