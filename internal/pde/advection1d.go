// Package pde contains two explicit finite-difference demonstration solvers
// driven by real wind vectors: 1-D linear advection and 2-D
// advection-diffusion. Both are deterministic pure functions of their
// parameters; fields use flat contiguous buffers with explicit index
// arithmetic so the stability invariants are easy to state and check.
package pde

import (
	"fmt"
	"math"
)

// Snapshot is a read-only copy of the field at a given step. 2-D fields are
// flattened row-major.
type Snapshot struct {
	Step int       `json:"step"`
	U    []float64 `json:"u"`
}

// Params1D configures the 1-D linear advection solver u_t + c u_x = 0.
type Params1D struct {
	NX             int     // grid points on [0,1]
	C              float64 // advection speed
	DT             float64 // time step; 0 selects dx/|c| (CFL = 1)
	NumSteps       int
	OutputInterval int // snapshot every this many steps; 0 selects 10
}

// Result1D holds the grid metadata and snapshot series of a 1-D run.
type Result1D struct {
	X        []float64  `json:"x"`
	C        float64    `json:"c"`
	DT       float64    `json:"dt"`
	DX       float64    `json:"dx"`
	NumSteps int        `json:"num_steps"`
	Series   []Snapshot `json:"series"`
}

// cflEpsilon absorbs float rounding in the Courant check when dt is derived
// from dx/|c| exactly.
const cflEpsilon = 1e-9

// SolveAdvection1D integrates u_t + c u_x = 0 on [0,1] with periodic
// boundaries and a Gaussian initial pulse at x = 0.25, using the explicit
// upwind (donor-cell) scheme. The pulse re-enters from the left edge after
// advecting past the right one. Snapshots of u (including step 0) are
// emitted every OutputInterval steps.
func SolveAdvection1D(p Params1D) (*Result1D, error) {
	if p.NX < 2 {
		return nil, fmt.Errorf("nx must be at least 2, got %d", p.NX)
	}
	if p.NumSteps < 0 {
		return nil, fmt.Errorf("num_steps must be non-negative, got %d", p.NumSteps)
	}
	if p.OutputInterval < 0 {
		return nil, fmt.Errorf("output_interval must be non-negative, got %d", p.OutputInterval)
	}
	interval := p.OutputInterval
	if interval == 0 {
		interval = 10
	}

	dx := 1.0 / float64(p.NX-1)
	dt := p.DT
	if dt == 0 {
		if p.C != 0 {
			dt = dx / math.Abs(p.C)
		} else {
			dt = dx
		}
	}
	if dt < 0 {
		return nil, fmt.Errorf("dt must be positive, got %g", dt)
	}
	// Courant condition |c| dt / dx <= 1, else the explicit scheme blows up.
	if cfl := math.Abs(p.C) * dt / dx; cfl > 1+cflEpsilon {
		return nil, fmt.Errorf("courant condition violated: |c|*dt/dx = %.3f > 1", cfl)
	}

	x := make([]float64, p.NX)
	u := make([]float64, p.NX)
	for i := range x {
		x[i] = float64(i) * dx
		u[i] = math.Exp(-40 * (x[i] - 0.25) * (x[i] - 0.25))
	}

	result := &Result1D{
		X:        x,
		C:        p.C,
		DT:       dt,
		DX:       dx,
		NumSteps: p.NumSteps,
		Series:   []Snapshot{{Step: 0, U: copyField(u)}},
	}

	coeff := p.C * dt / dx
	next := make([]float64, p.NX)
	for n := 1; n <= p.NumSteps; n++ {
		if p.C >= 0 {
			// Upwind from the left; index 0 wraps to the last point.
			next[0] = u[0] - coeff*(u[0]-u[p.NX-1])
			for i := 1; i < p.NX; i++ {
				next[i] = u[i] - coeff*(u[i]-u[i-1])
			}
		} else {
			// Upwind from the right; the last point wraps to index 0.
			for i := 0; i < p.NX-1; i++ {
				next[i] = u[i] - coeff*(u[i+1]-u[i])
			}
			next[p.NX-1] = u[p.NX-1] - coeff*(u[0]-u[p.NX-1])
		}
		u, next = next, u

		if n%interval == 0 {
			result.Series = append(result.Series, Snapshot{Step: n, U: copyField(u)})
		}
	}

	return result, nil
}

func copyField(u []float64) []float64 {
	out := make([]float64, len(u))
	copy(out, u)
	return out
}
