// Copyright 2016 The Opm-models Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fluid implements the black-oil fluid property evaluator
//
// The black-oil model considers three phases (water, oil, gas) and three
// components (Water, Oil, Gas). Water and gas are immiscible and consist of
// their own component only; the oil phase is a mixture of the oil and gas
// components. Phase densities follow from formation volume factors
//   Bα(p) = ρα(pref) / ρα(p)
// and the composition of saturated oil from the gas formation factor
//   Rs(p) = x_oG(p)・ρmol,o(p) / ρg(pref)
package fluid

import (
	"github.com/akva2/opm-models/mdl/prm"
	"github.com/cpmech/gosl/chk"
)

// phase and component indices. phases use lower index α, components upper index κ;
// in the black-oil model both sets coincide
const (
	Water = 0 // water phase / Water component
	Oil   = 1 // oil phase / Oil component
	Gas   = 2 // gas phase / Gas component

	NumPhases     = 3
	NumComponents = 3
)

// phaseNames is the closed set of valid phase names
var phaseNames = []string{"water", "oil", "gas"}

// Model holds material data for the black-oil fluid system. All property
// functions are pure: they depend on (phase, pressure) only and keep no state
// across calls, since pressure changes every nonlinear iteration.
type Model struct {

	// reference state
	Pref float64 // reference pressure (1 bar) [Pa]

	// surface densities @ pref
	RhoRefW float64 // water [kg/m³]
	RhoRefO float64 // oil (dead oil, no dissolved gas) [kg/m³]
	RhoRefG float64 // gas [kg/m³]

	// molar masses
	Mw float64 // Water component [kg/mol]
	Mo float64 // Oil component [kg/mol]
	Mg float64 // Gas component [kg/mol]

	// compressibility / solubility coefficients
	Cw  float64 // water compressibility: Bw = 1/(1 + Cw・(p-pref)) [1/Pa]
	Co  float64 // oil compressibility: Bo = 1/(1 + Co・(p-pref)) [1/Pa]
	Crs float64 // gas dissolution slope: Rs = Crs・p [m³/(m³・Pa)]

	// viscosities
	MuW float64 // water [Pa・s]
	MuO float64 // oil [Pa・s]
	MuG float64 // gas [Pa・s]
}

// Init initialises the model with default values overridden by prms
func (o *Model) Init(prms prm.Params) (err error) {

	// default values: light oil with moderate gas solubility
	o.Pref = 1e5
	o.RhoRefW = 1000.0
	o.RhoRefO = 850.0
	o.RhoRefG = 0.9
	o.Mw = 18e-3
	o.Mo = 170e-3
	o.Mg = 16e-3
	o.Cw = 4.5e-10
	o.Co = 1.0e-9
	o.Crs = 2.5e-6
	o.MuW = 1e-3
	o.MuO = 5e-3
	o.MuG = 1.2e-5

	// read parameters
	for _, p := range prms {
		switch p.N {
		case "pref":
			o.Pref = p.V
		case "rhow":
			o.RhoRefW = p.V
		case "rhoo":
			o.RhoRefO = p.V
		case "rhog":
			o.RhoRefG = p.V
		case "Mw":
			o.Mw = p.V
		case "Mo":
			o.Mo = p.V
		case "Mg":
			o.Mg = p.V
		case "cw":
			o.Cw = p.V
		case "co":
			o.Co = p.V
		case "crs":
			o.Crs = p.V
		case "muw":
			o.MuW = p.V
		case "muo":
			o.MuO = p.V
		case "mug":
			o.MuG = p.V
		default:
			return chk.Err("blackoil fluid: parameter named %q is invalid", p.N)
		}
	}

	// check data
	if o.Pref <= 0 {
		return chk.Err("blackoil fluid: reference pressure must be positive. pref=%g is invalid", o.Pref)
	}
	if o.RhoRefW <= 0 || o.RhoRefO <= 0 || o.RhoRefG <= 0 {
		return chk.Err("blackoil fluid: surface densities must be positive. rhow=%g rhoo=%g rhog=%g", o.RhoRefW, o.RhoRefO, o.RhoRefG)
	}
	if o.MuW <= 0 || o.MuO <= 0 || o.MuG <= 0 {
		return chk.Err("blackoil fluid: viscosities must be positive. muw=%g muo=%g mug=%g", o.MuW, o.MuO, o.MuG)
	}
	return
}

// GetPrms gets (an example of) parameters
func (o Model) GetPrms(example bool) prm.Params {
	if example {
		return prm.Params{
			&prm.P{N: "pref", V: 1e5},
			&prm.P{N: "rhow", V: 1000.0},
			&prm.P{N: "rhoo", V: 850.0},
			&prm.P{N: "rhog", V: 0.9},
			&prm.P{N: "muw", V: 1e-3},
			&prm.P{N: "muo", V: 5e-3},
			&prm.P{N: "mug", V: 1.2e-5},
		}
	}
	return prm.Params{
		&prm.P{N: "pref", V: o.Pref},
		&prm.P{N: "rhow", V: o.RhoRefW},
		&prm.P{N: "rhoo", V: o.RhoRefO},
		&prm.P{N: "rhog", V: o.RhoRefG},
		&prm.P{N: "muw", V: o.MuW},
		&prm.P{N: "muo", V: o.MuO},
		&prm.P{N: "mug", V: o.MuG},
	}
}

// PhaseName returns the name of a phase. The set of valid phase indices is
// closed; any other index is a programming error
func (o Model) PhaseName(phaseIdx int) string {
	if phaseIdx < 0 || phaseIdx >= NumPhases {
		chk.Panic("phase index %d is outside valid range [0,%d]", phaseIdx, NumPhases-1)
	}
	return phaseNames[phaseIdx]
}

// MolarMass returns the molar mass of a component
func (o Model) MolarMass(compIdx int) float64 {
	switch compIdx {
	case Water:
		return o.Mw
	case Oil:
		return o.Mo
	case Gas:
		return o.Mg
	}
	chk.Panic("component index %d is outside valid range [0,%d]", compIdx, NumComponents-1)
	return 0
}

// FormationVolumeFactor returns Bα(p) = ρα(pref)/ρα(p)
func (o Model) FormationVolumeFactor(phaseIdx int, p float64) (B float64, err error) {
	if p <= 0 {
		return 0, chk.Err("formation volume factor: pressure must be positive. p=%g is invalid", p)
	}
	switch phaseIdx {
	case Water:
		B = 1.0 / (1.0 + o.Cw*(p-o.Pref))
	case Oil:
		B = 1.0 / (1.0 + o.Co*(p-o.Pref))
	case Gas:
		B = o.Pref / p // ideal gas
	default:
		chk.Panic("phase index %d is outside valid range [0,%d]", phaseIdx, NumPhases-1)
	}
	if B <= 0 {
		return 0, chk.Err("formation volume factor of %s became non-physical (B=%g) @ p=%g", o.PhaseName(phaseIdx), B, p)
	}
	return
}

// GasDissolutionFactor returns Rs(p): the volume of gas at reference pressure
// dissolved in a unit volume of saturated oil
func (o Model) GasDissolutionFactor(p float64) float64 {
	return o.Crs * p
}

// Density returns the mass density of a phase. Saturated oil carries the mass
// of its dissolved gas. A non-positive result is reported as an error and
// never clamped, since it would mask a model or input error
func (o Model) Density(phaseIdx int, p float64) (rho float64, err error) {
	B, err := o.FormationVolumeFactor(phaseIdx, p)
	if err != nil {
		return
	}
	switch phaseIdx {
	case Water:
		rho = o.RhoRefW / B
	case Oil:
		rho = (o.RhoRefO + o.GasDissolutionFactor(p)*o.RhoRefG) / B
	case Gas:
		rho = o.RhoRefG / B
	}
	if rho <= 0 {
		return 0, chk.Err("density of %s became non-physical (ρ=%g) @ p=%g", o.PhaseName(phaseIdx), rho, p)
	}
	return
}

// Viscosity returns the dynamic viscosity of a phase
func (o Model) Viscosity(phaseIdx int, p float64) (mu float64, err error) {
	if p <= 0 {
		return 0, chk.Err("viscosity: pressure must be positive. p=%g is invalid", p)
	}
	switch phaseIdx {
	case Water:
		mu = o.MuW
	case Oil:
		mu = o.MuO
	case Gas:
		mu = o.MuG
	default:
		chk.Panic("phase index %d is outside valid range [0,%d]", phaseIdx, NumPhases-1)
	}
	if mu <= 0 {
		return 0, chk.Err("viscosity of %s became non-physical (μ=%g) @ p=%g", o.PhaseName(phaseIdx), mu, p)
	}
	return
}

// Concentration returns the molar concentration c_α^κ [mol/m³] of component κ
// in phase α. Water and gas are pure; oil is a mixture of Oil and dissolved Gas
func (o Model) Concentration(phaseIdx, compIdx int, p float64) (c float64, err error) {
	if compIdx < 0 || compIdx >= NumComponents {
		chk.Panic("component index %d is outside valid range [0,%d]", compIdx, NumComponents-1)
	}
	switch phaseIdx {
	case Water:
		if compIdx == Water {
			rho, e := o.Density(Water, p)
			if e != nil {
				return 0, e
			}
			c = rho / o.Mw
		}
	case Oil:
		B, e := o.FormationVolumeFactor(Oil, p)
		if e != nil {
			return 0, e
		}
		switch compIdx {
		case Oil:
			c = o.RhoRefO / B / o.Mo
		case Gas:
			c = o.GasDissolutionFactor(p) * o.RhoRefG / B / o.Mg
		}
	case Gas:
		if compIdx == Gas {
			rho, e := o.Density(Gas, p)
			if e != nil {
				return 0, e
			}
			c = rho / o.Mg
		}
	default:
		chk.Panic("phase index %d is outside valid range [0,%d]", phaseIdx, NumPhases-1)
	}
	return
}
