package masks

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/banshee-data/bulksolvent/internal/crystal"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Miller is a reflection index (h, k, l).
type Miller [3]int

// StructureFactors returns the mask structure factors
// F(h) = Σ_x mask(x)·exp(+2πi h·x)·V/N at each index, from a real-to-complex
// FFT of the ASU solvent data expanded over the space group. Indices must
// satisfy |h_i| <= n_i/2.
func (m *AtomMask) StructureFactors(millers []Miller) ([]complex128, error) {
	n := m.grid.N
	for _, h := range millers {
		for i := 0; i < 3; i++ {
			if 2*abs(h[i]) > n[i] {
				return nil, fmt.Errorf("miller index %v exceeds grid %v", h, n)
			}
		}
	}

	data := make([]float64, m.grid.Size())
	for i, v := range m.SolventData() {
		data[i] = float64(v)
	}
	coeffs := forwardR2C(data, n)
	scale := complex(m.cell.Volume()/(float64(m.grid.Size())*float64(len(m.gridOps))), 0)
	for i := range coeffs {
		coeffs[i] *= scale
	}

	nzc := n[2]/2 + 1
	// A(k) = Σ data·exp(+2πi k·x), read from the half-complex forward transform
	at := func(k [3]int) complex128 {
		w := [3]int{mod(k[0], n[0]), mod(k[1], n[1]), mod(k[2], n[2])}
		if w[2] < nzc {
			return cmplx.Conj(coeffs[(w[0]*n[1]+w[1])*nzc+w[2]])
		}
		w = [3]int{mod(-k[0], n[0]), mod(-k[1], n[1]), mod(-k[2], n[2])}
		return coeffs[(w[0]*n[1]+w[1])*nzc+w[2]]
	}

	out := make([]complex128, len(millers))
	for idx, h := range millers {
		var f complex128
		for _, op := range m.group.Ops {
			var k [3]int
			var ht int
			for j := 0; j < 3; j++ {
				for i := 0; i < 3; i++ {
					k[j] += h[i] * op.R[i][j]
				}
				ht += h[j] * op.T[j]
			}
			phase := 2 * math.Pi * float64(ht) / crystal.TDen
			f += cmplx.Rect(1, phase) * at(k)
		}
		out[idx] = f
	}
	diagf("structure_factors: %d reflections on %v grid", len(millers), n)
	return out, nil
}

// forwardR2C transforms an nx*ny*nz real array (z fastest) into its
// nx*ny*(nz/2+1) half-complex spectrum, Σ x·exp(-2πi k·p/n), unnormalised.
func forwardR2C(data []float64, n [3]int) []complex128 {
	nzc := n[2]/2 + 1
	out := make([]complex128, n[0]*n[1]*nzc)

	rfft := fourier.NewFFT(n[2])
	col := make([]complex128, nzc)
	for r := 0; r < n[0]*n[1]; r++ {
		rfft.Coefficients(col, data[r*n[2]:(r+1)*n[2]])
		copy(out[r*nzc:(r+1)*nzc], col)
	}

	// y then x, gathering strided lines into scratch buffers
	for axis, stride := range [2]int{nzc, n[1] * nzc} {
		length := n[1]
		if axis == 1 {
			length = n[0]
		}
		cfft := fourier.NewCmplxFFT(length)
		in := make([]complex128, length)
		res := make([]complex128, length)
		for base := 0; base < len(out); base++ {
			if (base/stride)%length != 0 {
				continue
			}
			for t := 0; t < length; t++ {
				in[t] = out[base+t*stride]
			}
			cfft.Coefficients(res, in)
			for t := 0; t < length; t++ {
				out[base+t*stride] = res[t]
			}
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
