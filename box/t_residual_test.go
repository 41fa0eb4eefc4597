// Copyright 2016 The Opm-models Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package box

import (
	"strings"
	"testing"

	"github.com/akva2/opm-models/mdl/fluid"
	"github.com/akva2/opm-models/mdl/prm"
	"github.com/akva2/opm-models/mdl/velocity"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// testProblem implements Problem with linear relative permeabilities
type testProblem struct {
	grav   []float64
	source func(vertIdx, compIdx int, t float64) float64
}

func (o *testProblem) Source(vertIdx, compIdx int, t float64) float64 {
	if o.source == nil {
		return 0
	}
	return o.source(vertIdx, compIdx, t)
}

func (o *testProblem) Gravity() []float64 { return o.grav }

func (o *testProblem) RelPerm(phaseIdx int, sat float64) float64 { return sat }

// newTestAssembler builds a 4x3 rectangular setup with incompressible water
func newTestAssembler(tst *testing.T, prb *testProblem) (*Assembler, *Solution) {
	ind, err := NewIndices(fluid.NumPhases, fluid.NumComponents)
	if err != nil {
		tst.Fatalf("NewIndices failed:\n%v", err)
	}
	flu := new(fluid.Model)
	err = flu.Init(prm.Params{&prm.P{N: "cw", V: 0}})
	if err != nil {
		tst.Fatalf("fluid Init failed:\n%v", err)
	}
	vel, err := velocity.New("darcy")
	if err != nil {
		tst.Fatalf("velocity New failed:\n%v", err)
	}
	top, err := NewRectTopology(4, 3, 3.0, 2.0, 0.3, 1e-12)
	if err != nil {
		tst.Fatalf("NewRectTopology failed:\n%v", err)
	}
	sol := NewSolution(top.NumVerts(), ind.Npv())
	return NewAssembler(ind, flu, vel, top, prb), sol
}

// setUniform sets a water-saturated uniform state on both time levels
func setUniform(sol *Solution, ind *Indices, p float64) {
	for v := 0; v < sol.Nverts; v++ {
		sol.SetVal(Current, v, ind.Pressure0, p)
		sol.SetVal(Current, v, ind.Saturation0, 1.0)   // Sw
		sol.SetVal(Current, v, ind.Saturation0+1, 0.0) // So
	}
	sol.Shift()
}

func Test_residual01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("residual01. uniform steady state gives zero residual")

	prb := &testProblem{grav: []float64{0, 0}}
	asm, sol := newTestAssembler(tst, prb)
	setUniform(sol, asm.Ind, 1e5)

	fb := make([]float64, sol.Nverts*asm.Ind.Neq())
	err := asm.AddToRhs(fb, sol, 100.0)
	if err != nil {
		tst.Errorf("AddToRhs failed:\n%v", err)
		return
	}
	for r, val := range fb {
		chk.Float64(tst, io.Sf("fb%d", r), 1e-20, val, 0)
	}

	// a non-positive step size is invalid
	err = asm.AddToRhs(fb, sol, 0)
	if err == nil {
		tst.Errorf("AddToRhs should have failed with dt=0")
	}
}

func Test_residual02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("residual02. divergence-free flux and global conservation")

	prb := &testProblem{grav: []float64{0, 0}}
	asm, sol := newTestAssembler(tst, prb)
	top := asm.Top.(*RectTopology)

	// linear pressure in x drives a uniform flux field. water is
	// incompressible here, so interior control volumes see zero divergence
	dx := top.Lx / float64(top.Nx-1)
	for v := 0; v < sol.Nverts; v++ {
		x := float64(v%top.Nx) * dx
		sol.SetVal(Current, v, asm.Ind.Pressure0, 2e5-1e3*x)
		sol.SetVal(Current, v, asm.Ind.Saturation0, 1.0)
		sol.SetVal(Current, v, asm.Ind.Saturation0+1, 0.0)
	}
	sol.Shift()

	neq := asm.Ind.Neq()
	fb := make([]float64, sol.Nverts*neq)
	err := asm.AddToRhs(fb, sol, 1.0)
	if err != nil {
		tst.Errorf("AddToRhs failed:\n%v", err)
		return
	}

	// interior vertices: inflow balances outflow exactly
	for j := 0; j < top.Ny; j++ {
		for i := 1; i < top.Nx-1; i++ {
			r := (j*top.Nx+i)*neq + asm.Ind.Conti0
			chk.Float64(tst, io.Sf("interior fb%d", r), 1e-10, fb[r], 0)
		}
	}

	// upstream boundary loses what the downstream boundary gains
	left := fb[asm.Ind.Conti0]
	if left <= 0 {
		tst.Errorf("upstream control volume must show net outflow. fb=%g", left)
	}
	for kappa := 0; kappa < neq; kappa++ {
		sum := 0.0
		for v := 0; v < sol.Nverts; v++ {
			sum += fb[v*neq+asm.Ind.Conti0+kappa]
		}
		chk.Float64(tst, io.Sf("Σfb κ=%d", kappa), 1e-10, sum, 0)
	}

	// oil and gas continuity rows carry nothing: their phases are absent
	for v := 0; v < sol.Nverts; v++ {
		chk.Float64(tst, "fb oil", 1e-20, fb[v*neq+asm.Ind.Conti0+fluid.Oil], 0)
		chk.Float64(tst, "fb gas", 1e-20, fb[v*neq+asm.Ind.Conti0+fluid.Gas], 0)
	}
}

func Test_residual03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("residual03. storage and source terms")

	// storage: uniform pressure rise with compressible water
	ind, err := NewIndices(fluid.NumPhases, fluid.NumComponents)
	if err != nil {
		tst.Errorf("NewIndices failed:\n%v", err)
		return
	}
	flu := new(fluid.Model)
	err = flu.Init(nil) // default cw > 0
	if err != nil {
		tst.Errorf("fluid Init failed:\n%v", err)
		return
	}
	vel, err := velocity.New("darcy")
	if err != nil {
		tst.Errorf("velocity New failed:\n%v", err)
		return
	}
	top, err := NewRectTopology(4, 3, 3.0, 2.0, 0.3, 1e-12)
	if err != nil {
		tst.Errorf("NewRectTopology failed:\n%v", err)
		return
	}
	prb := &testProblem{grav: []float64{0, 0}}
	asm := NewAssembler(ind, flu, vel, top, prb)
	sol := NewSolution(top.NumVerts(), ind.Npv())
	setUniform(sol, ind, 1e5)
	p2 := 2e5
	for v := 0; v < sol.Nverts; v++ {
		sol.SetVal(Current, v, ind.Pressure0, p2)
	}

	dt := 100.0
	neq := ind.Neq()
	fb := make([]float64, sol.Nverts*neq)
	err = asm.AddToRhs(fb, sol, dt)
	if err != nil {
		tst.Errorf("AddToRhs failed:\n%v", err)
		return
	}
	for v := 0; v < sol.Nverts; v++ {
		vol := top.CtrlVolume(v)
		c2 := flu.RhoRefW * (1.0 + flu.Cw*(p2-flu.Pref)) / flu.Mw
		c1 := flu.RhoRefW / flu.Mw
		ana := vol * top.Poro * (c2 - c1) / dt
		chk.AnaNum(tst, io.Sf("storage fb @ %d", v), 1e-9, fb[v*neq+ind.Conti0+fluid.Water], ana, false)
	}

	// source: uniform state with a constant water source
	prb2 := &testProblem{grav: []float64{0, 0}, source: func(v, kappa int, t float64) float64 {
		if kappa == fluid.Water {
			return 2.5
		}
		return 0
	}}
	asm2, sol2 := newTestAssembler(tst, prb2)
	setUniform(sol2, asm2.Ind, 1e5)
	fb2 := make([]float64, sol2.Nverts*neq)
	err = asm2.AddToRhs(fb2, sol2, 1.0)
	if err != nil {
		tst.Errorf("AddToRhs failed:\n%v", err)
		return
	}
	for v := 0; v < sol2.Nverts; v++ {
		vol := asm2.Top.CtrlVolume(v)
		chk.Float64(tst, "source fb", 1e-14, fb2[v*neq+asm2.Ind.Conti0+fluid.Water], -2.5*vol)
	}
}

func Test_residual04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("residual04. singular local geometry matrix is caught")

	prb := &testProblem{grav: []float64{0, 0}}
	asm, sol := newTestAssembler(tst, prb)
	setUniform(sol, asm.Ind, 1e5)

	// degenerate face geometry must be reported, not silently diverge
	top := asm.Top.(*RectTopology)
	top.Faces()[0].DX.Set(0, 0, 0)

	fb := make([]float64, sol.Nverts*asm.Ind.Neq())
	err := asm.AddToRhs(fb, sol, 1.0)
	if err == nil {
		tst.Errorf("AddToRhs should have failed with singular geometry matrix")
		return
	}
	if !strings.Contains(err.Error(), "singular") {
		tst.Errorf("error message %q should mention the singular matrix", err.Error())
	}
}
