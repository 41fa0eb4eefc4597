// Copyright 2016 The Opm-models Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fluid

import (
	"testing"

	"github.com/akva2/opm-models/mdl/prm"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

func verbose() {
	chk.Verbose = true
}

func Test_blackoil01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("blackoil01. defaults, names and molar masses")

	var mdl Model
	err := mdl.Init(nil)
	if err != nil {
		tst.Errorf("Init failed:\n%v", err)
		return
	}

	// names
	if mdl.PhaseName(Water) != "water" {
		tst.Errorf("PhaseName(Water) = %q is incorrect", mdl.PhaseName(Water))
	}
	if mdl.PhaseName(Oil) != "oil" {
		tst.Errorf("PhaseName(Oil) = %q is incorrect", mdl.PhaseName(Oil))
	}
	if mdl.PhaseName(Gas) != "gas" {
		tst.Errorf("PhaseName(Gas) = %q is incorrect", mdl.PhaseName(Gas))
	}

	// molar masses
	chk.Float64(tst, "M Water", 1e-17, mdl.MolarMass(Water), 18e-3)
	chk.Float64(tst, "M Oil", 1e-17, mdl.MolarMass(Oil), 170e-3)
	chk.Float64(tst, "M Gas", 1e-17, mdl.MolarMass(Gas), 16e-3)

	// invalid phase index must panic
	func() {
		defer func() {
			if r := recover(); r == nil {
				tst.Errorf("PhaseName(3) should have panicked")
			}
		}()
		mdl.PhaseName(3)
	}()

	// invalid parameter name
	var bad Model
	err = bad.Init(prm.Params{&prm.P{N: "bogus", V: 1}})
	if err == nil {
		tst.Errorf("Init should have failed with invalid parameter name")
	}
}

func Test_blackoil02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("blackoil02. formation volume factors and densities")

	var mdl Model
	err := mdl.Init(nil)
	if err != nil {
		tst.Errorf("Init failed:\n%v", err)
		return
	}

	// at the reference pressure all B are unity
	for _, phase := range []int{Water, Oil, Gas} {
		B, err := mdl.FormationVolumeFactor(phase, mdl.Pref)
		if err != nil {
			tst.Errorf("FormationVolumeFactor failed:\n%v", err)
			return
		}
		chk.Float64(tst, "B @ pref", 1e-15, B, 1.0)
	}

	// gas follows the ideal-gas relation B = pref/p
	for _, p := range utl.LinSpace(0.5e5, 200e5, 7) {
		B, err := mdl.FormationVolumeFactor(Gas, p)
		if err != nil {
			tst.Errorf("FormationVolumeFactor failed:\n%v", err)
			return
		}
		chk.Float64(tst, "Bg", 1e-14, B, mdl.Pref/p)
		rho, err := mdl.Density(Gas, p)
		if err != nil {
			tst.Errorf("Density failed:\n%v", err)
			return
		}
		chk.Float64(tst, "ρg", 1e-12, rho, mdl.RhoRefG*p/mdl.Pref)
	}

	// water density grows with pressure
	rho1, err := mdl.Density(Water, 1e5)
	if err != nil {
		tst.Errorf("Density failed:\n%v", err)
		return
	}
	rho2, err := mdl.Density(Water, 100e5)
	if err != nil {
		tst.Errorf("Density failed:\n%v", err)
		return
	}
	if rho2 <= rho1 {
		tst.Errorf("water density must grow with pressure: ρ(1bar)=%g ρ(100bar)=%g", rho1, rho2)
	}

	// non-positive pressure is reported, not clamped
	_, err = mdl.Density(Water, -1e5)
	if err == nil {
		tst.Errorf("Density should have failed with negative pressure")
	}
	_, err = mdl.Viscosity(Gas, 0)
	if err == nil {
		tst.Errorf("Viscosity should have failed with zero pressure")
	}
}

func Test_blackoil03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("blackoil03. oil composition and dissolved gas")

	var mdl Model
	err := mdl.Init(nil)
	if err != nil {
		tst.Errorf("Init failed:\n%v", err)
		return
	}

	for _, p := range utl.LinSpace(1e5, 300e5, 9) {

		// Rs is linear in pressure
		chk.Float64(tst, "Rs", 1e-14, mdl.GasDissolutionFactor(p), mdl.Crs*p)

		// the oil phase mass is carried by the Oil and Gas components:
		// ρo = c_oO・Mo + c_oG・Mg
		rho, err := mdl.Density(Oil, p)
		if err != nil {
			tst.Errorf("Density failed:\n%v", err)
			return
		}
		cO, err := mdl.Concentration(Oil, Oil, p)
		if err != nil {
			tst.Errorf("Concentration failed:\n%v", err)
			return
		}
		cG, err := mdl.Concentration(Oil, Gas, p)
		if err != nil {
			tst.Errorf("Concentration failed:\n%v", err)
			return
		}
		chk.Float64(tst, "ρo = ΣκcκMκ", 1e-9, rho, cO*mdl.Mo+cG*mdl.Mg)

		// water and gas phases are pure
		c, err := mdl.Concentration(Water, Gas, p)
		if err != nil {
			tst.Errorf("Concentration failed:\n%v", err)
			return
		}
		chk.Float64(tst, "c_wG", 1e-17, c, 0)
		c, err = mdl.Concentration(Gas, Oil, p)
		if err != nil {
			tst.Errorf("Concentration failed:\n%v", err)
			return
		}
		chk.Float64(tst, "c_gO", 1e-17, c, 0)
	}
}
