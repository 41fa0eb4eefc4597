// Copyright 2016 The Opm-models Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fv

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Status is the state of the time loop
type Status int

// time loop states
const (
	Running      Status = iota // stepping normally
	StepRejected               // last candidate step produced an invalid update
	Terminated                 // t ≥ tEnd reached, loop exited normally
)

// String returns the name of a status
func (o Status) String() string {
	switch o {
	case Running:
		return "running"
	case StepRejected:
		return "step-rejected"
	case Terminated:
		return "terminated"
	}
	chk.Panic("status %d is invalid", int(o))
	return ""
}

// Stepper is the saturation-update operator driven by the time loop
type Stepper interface {
	MaxStableDt(cflFactor float64) float64 // CFL-limited candidate step size
	Update(t, dt float64) error            // advance by dt; error rejects the step
}

// OutputHandler receives snapshots at the output cadence. Handlers are
// registered before the run starts; the loop invokes them in order without
// owning their lifetime
type OutputHandler interface {
	Output(stepIdx int, t float64) error
}

// TimeLoop drives the explicit transport scheme from tStart to tEnd with
// CFL-limited adaptive steps. An invalid update rejects the step, halves it
// and retries; this is the only retry policy. The reference scheme halves
// without bound, so termination on persistent instability is guaranteed here
// by MaxRetries (a deliberate design choice, see DESIGN.md)
type TimeLoop struct {

	// configuration (fixed before Execute)
	TStart     float64 // start time [s]
	TEnd       float64 // end time [s]
	MaxDt      float64 // maximum step size [s]
	CflFactor  float64 // CFL safety margin, strictly less than 1
	Modulo     int     // accepted steps between outputs
	MaxRetries int     // bound on step-halving retries per step
	Verbose    bool    // show messages

	// state (owned exclusively by the loop)
	Time float64 // current time
	Step int     // accepted step counter
	Dt   float64 // size of the last accepted step

	status   Status
	handlers []OutputHandler
}

// NewTimeLoop returns a validated time loop
func NewTimeLoop(tStart, tEnd, maxDt, cflFactor float64, modulo, maxRetries int) (o *TimeLoop, err error) {
	if tEnd <= tStart {
		return nil, chk.Err("time loop requires tEnd > tStart. tStart=%g tEnd=%g", tStart, tEnd)
	}
	if cflFactor <= 0 || cflFactor >= 1 {
		return nil, chk.Err("cfl factor must lie within (0,1). cflFactor=%g is invalid", cflFactor)
	}
	if maxDt <= 0 {
		return nil, chk.Err("maximum step size must be positive. maxDt=%g is invalid", maxDt)
	}
	if modulo < 1 {
		return nil, chk.Err("output modulo must be at least 1. modulo=%d is invalid", modulo)
	}
	if maxRetries < 1 {
		return nil, chk.Err("retry limit must be at least 1. maxRetries=%d is invalid", maxRetries)
	}
	return &TimeLoop{
		TStart:     tStart,
		TEnd:       tEnd,
		MaxDt:      maxDt,
		CflFactor:  cflFactor,
		Modulo:     modulo,
		MaxRetries: maxRetries,
		status:     Running,
	}, nil
}

// AddOutput registers an output handler. Must be called before Execute
func (o *TimeLoop) AddOutput(h OutputHandler) {
	o.handlers = append(o.handlers, h)
}

// Status returns the state of the loop
func (o *TimeLoop) Status() Status { return o.status }

// Execute runs the loop until t ≥ tEnd or a fatal failure
func (o *TimeLoop) Execute(st Stepper) (err error) {

	// initial state
	o.Time = o.TStart
	o.Step = 0
	o.status = Running

	// snapshot of the initial condition
	err = o.output()
	if err != nil {
		return
	}

	for o.Time < o.TEnd {

		// CFL-limited candidate step, capped by maxDt and by the remaining time
		dt := st.MaxStableDt(o.CflFactor)
		if dt > o.MaxDt {
			dt = o.MaxDt
		}
		if o.Time+dt > o.TEnd {
			dt = o.TEnd - o.Time
		}

		// update; halve and retry upon numerical invalidity. dt keeps the size
		// of the last attempt, so failures report what was actually tried
		accepted := false
		for itry := 0; itry <= o.MaxRetries; itry++ {
			if itry > 0 {
				dt /= 2
			}
			err = st.Update(o.Time, dt)
			if err == nil {
				accepted = true
				break
			}
			o.status = StepRejected
			if o.Verbose {
				io.Pf("> step %d rejected @ t=%g (dt=%g): %v\n", o.Step+1, o.Time, dt, err)
			}
		}
		if !accepted {
			return chk.Err("step @ t=%g still invalid after %d halvings (dt=%g): %v", o.Time, o.MaxRetries, dt, err)
		}

		// accept
		o.Time += dt
		o.Step++
		o.Dt = dt
		o.status = Running

		// output every modulo-th accepted step and on the final step
		if o.Step%o.Modulo == 0 || o.Time >= o.TEnd {
			err = o.output()
			if err != nil {
				return
			}
		}
	}

	o.status = Terminated
	if o.Verbose {
		io.Pf("> time loop terminated @ t=%g after %d steps\n", o.Time, o.Step)
	}
	return
}

// output invokes all registered handlers in order
func (o *TimeLoop) output() (err error) {
	for _, h := range o.handlers {
		err = h.Output(o.Step, o.Time)
		if err != nil {
			return chk.Err("output handler failed @ step %d (t=%g): %v", o.Step, o.Time, err)
		}
	}
	return
}
