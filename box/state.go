// Copyright 2016 The Opm-models Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package box

import (
	"github.com/cpmech/gosl/chk"
)

// time level indices into Solution.Y
const (
	Current  = 0 // current (possibly unconverged) time level
	Previous = 1 // previous accepted time level; read-only during assembly
)

// Solution holds two time levels of the primary variable field over the grid
// vertices. It is allocated once per simulation; the previous level is
// overwritten (not reallocated) when a time step is accepted
type Solution struct {
	Nverts int          // number of vertices (degrees of freedom)
	Npv    int          // number of primary variables per vertex
	T      float64      // current time
	Y      [2][]float64 // [2][nverts*npv] solution vectors: Y[Current], Y[Previous]
}

// NewSolution allocates the two time-level buffers
func NewSolution(nverts, npv int) (o *Solution) {
	if nverts < 1 || npv < 1 {
		chk.Panic("solution requires nverts ≥ 1 and npv ≥ 1. nverts=%d npv=%d", nverts, npv)
	}
	o = &Solution{Nverts: nverts, Npv: npv}
	o.Y[Current] = make([]float64, nverts*npv)
	o.Y[Previous] = make([]float64, nverts*npv)
	return
}

// Val returns the value of primary variable pvIdx at a vertex and time level
func (o *Solution) Val(timeIdx, vertIdx, pvIdx int) float64 {
	return o.Y[timeIdx][vertIdx*o.Npv+pvIdx]
}

// SetVal sets the value of primary variable pvIdx at a vertex and time level
func (o *Solution) SetVal(timeIdx, vertIdx, pvIdx int, val float64) {
	o.Y[timeIdx][vertIdx*o.Npv+pvIdx] = val
}

// Shift copies the current level into the previous level. Called exactly once
// per accepted time step
func (o *Solution) Shift() {
	copy(o.Y[Previous], o.Y[Current])
}

// Saturations fills sats (len = numPhases) with all phase saturations at a
// vertex; the omitted saturation is recovered as 1 - Σ others
func (o *Solution) Saturations(timeIdx, vertIdx int, ind *Indices, sats []float64) {
	sum := 0.0
	for i := 0; i < ind.NumPhases-1; i++ {
		sats[i] = o.Val(timeIdx, vertIdx, ind.Saturation0+i)
		sum += sats[i]
	}
	sats[ind.NumPhases-1] = 1.0 - sum
}
