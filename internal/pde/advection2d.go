package pde

import (
	"fmt"
	"math"
)

// Params2D configures the 2-D advection-diffusion solver
// u_t + cx u_x + cy u_y = D (u_xx + u_yy).
type Params2D struct {
	NX, NY         int
	CX, CY         float64
	Diffusion      float64
	DT             float64 // 0 selects the largest stable step (capped at 0.002)
	NumSteps       int
	OutputInterval int // 0 selects 10
}

// Result2D holds the grid metadata and flattened row-major snapshots of a
// 2-D run.
type Result2D struct {
	NX        int        `json:"nx"`
	NY        int        `json:"ny"`
	CX        float64    `json:"cx"`
	CY        float64    `json:"cy"`
	Diffusion float64    `json:"diffusion"`
	DT        float64    `json:"dt"`
	DX        float64    `json:"dx"`
	DY        float64    `json:"dy"`
	NumSteps  int        `json:"num_steps"`
	Series    []Snapshot `json:"series"`
}

// SolveAdvectionDiffusion2D integrates on [0,1]x[0,1] with an upwind
// advective term (periodic wrap) and a centered 5-point diffusive term,
// starting from a Gaussian blob at (0.3, 0.5). Fields are flat row-major:
// u[j*nx+i] with x increasing along i and y along j.
func SolveAdvectionDiffusion2D(p Params2D) (*Result2D, error) {
	if p.NX < 3 || p.NY < 3 {
		return nil, fmt.Errorf("grid must be at least 3x3, got %dx%d", p.NX, p.NY)
	}
	if p.NumSteps < 0 {
		return nil, fmt.Errorf("num_steps must be non-negative, got %d", p.NumSteps)
	}
	if p.OutputInterval < 0 {
		return nil, fmt.Errorf("output_interval must be non-negative, got %d", p.OutputInterval)
	}
	if p.Diffusion < 0 {
		return nil, fmt.Errorf("diffusion coefficient must be non-negative, got %g", p.Diffusion)
	}
	interval := p.OutputInterval
	if interval == 0 {
		interval = 10
	}

	nx, ny := p.NX, p.NY
	dx := 1.0 / float64(nx-1)
	dy := 1.0 / float64(ny-1)

	dt := p.DT
	if dt == 0 {
		dtAdv := math.Min(dx/math.Max(math.Abs(p.CX), 1e-6), dy/math.Max(math.Abs(p.CY), 1e-6))
		dtDiff := 0.25 * math.Min(dx*dx, dy*dy) / math.Max(p.Diffusion, 1e-10)
		dt = math.Min(math.Min(dtAdv, dtDiff), 0.002)
	}
	if dt <= 0 {
		return nil, fmt.Errorf("dt must be positive, got %g", dt)
	}
	if cfl := math.Abs(p.CX) * dt / dx; cfl > 1+cflEpsilon {
		return nil, fmt.Errorf("courant condition violated on x: |cx|*dt/dx = %.3f > 1", cfl)
	}
	if cfl := math.Abs(p.CY) * dt / dy; cfl > 1+cflEpsilon {
		return nil, fmt.Errorf("courant condition violated on y: |cy|*dt/dy = %.3f > 1", cfl)
	}
	// Explicit diffusion stability: D dt (1/dx^2 + 1/dy^2) <= 1/2.
	if s := p.Diffusion * dt * (1/(dx*dx) + 1/(dy*dy)); s > 0.5+cflEpsilon {
		return nil, fmt.Errorf("diffusion stability bound violated: D*dt*(1/dx^2+1/dy^2) = %.3f > 0.5", s)
	}

	u := make([]float64, nx*ny)
	for j := 0; j < ny; j++ {
		y := float64(j) * dy
		for i := 0; i < nx; i++ {
			x := float64(i) * dx
			u[j*nx+i] = math.Exp(-80 * ((x-0.3)*(x-0.3) + (y-0.5)*(y-0.5)))
		}
	}

	result := &Result2D{
		NX:        nx,
		NY:        ny,
		CX:        p.CX,
		CY:        p.CY,
		Diffusion: p.Diffusion,
		DT:        dt,
		DX:        dx,
		DY:        dy,
		NumSteps:  p.NumSteps,
		Series:    []Snapshot{{Step: 0, U: copyField(u)}},
	}

	cx := p.CX * dt / dx
	cy := p.CY * dt / dy
	next := make([]float64, nx*ny)

	wrap := func(i, n int) int {
		if i < 0 {
			return i + n
		}
		if i >= n {
			return i - n
		}
		return i
	}

	for n := 1; n <= p.NumSteps; n++ {
		copy(next, u)

		// Upwind advection with periodic wrap on both axes.
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				idx := j*nx + i
				if p.CX >= 0 {
					next[idx] -= cx * (u[idx] - u[j*nx+wrap(i-1, nx)])
				} else {
					next[idx] -= cx * (u[j*nx+wrap(i+1, nx)] - u[idx])
				}
				if p.CY >= 0 {
					next[idx] -= cy * (u[idx] - u[wrap(j-1, ny)*nx+i])
				} else {
					next[idx] -= cy * (u[wrap(j+1, ny)*nx+i] - u[idx])
				}
			}
		}

		// Centered 5-point Laplacian on interior points only.
		if p.Diffusion > 0 {
			for j := 1; j < ny-1; j++ {
				for i := 1; i < nx-1; i++ {
					idx := j*nx + i
					lap := (u[idx+1]-2*u[idx]+u[idx-1])/(dx*dx) +
						(u[idx+nx]-2*u[idx]+u[idx-nx])/(dy*dy)
					next[idx] += p.Diffusion * dt * lap
				}
			}
		}

		u, next = next, u

		if n%interval == 0 {
			result.Series = append(result.Series, Snapshot{Step: n, U: copyField(u)})
		}
	}

	return result, nil
}
