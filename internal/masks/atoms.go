package masks

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrSiteRadiusMismatch is returned when site and radius arrays differ in length.
var ErrSiteRadiusMismatch = errors.New("sites and radii differ in length")

// Site is an atom in fractional coordinates with its exclusion radius in Å.
type Site struct {
	Frac   r3.Vec
	Radius float64
}

// SitesFromArrays pairs fractional coordinates with radii.
func SitesFromArrays(frac []r3.Vec, radii []float64) ([]Site, error) {
	if len(frac) != len(radii) {
		return nil, fmt.Errorf("%w: %d sites, %d radii", ErrSiteRadiusMismatch, len(frac), len(radii))
	}
	sites := make([]Site, len(frac))
	for i := range frac {
		sites[i] = Site{Frac: frac[i], Radius: radii[i]}
	}
	return sites, nil
}

// shrinkSafetyFactor widens the expansion margin so atoms whose influence only
// reaches the ASU through the contact pass are still picked up.
const shrinkSafetyFactor = 3

// AtomsToASU replaces the working atom list with every symmetry and lattice
// copy of sites whose bounding box, widened by the solvent radius and three
// shrink radii, meets the ASU box. Copies are not deduplicated.
func (m *AtomMask) AtomsToASU(sites []Site) {
	lo, hi := m.group.ASU.BoxFloat()
	recip := m.cell.ReciprocalLengths()
	m.asuAtoms = m.asuAtoms[:0]

	for _, s := range sites {
		margin := s.Radius + m.solventRadius + shrinkSafetyFactor*m.shrinkRadius
		w := [3]float64{margin * recip[0], margin * recip[1], margin * recip[2]}
		for _, op := range m.group.Ops {
			y := op.Apply(s.Frac)
			m.appendCopies(reduceToCell(y), w, lo, hi, s.Radius)
		}
	}
	tracef("atoms_to_asu: %d sites -> %d copies", len(sites), len(m.asuAtoms))
}

// appendCopies adds the lattice translates of y that meet the ASU box. It stops
// at the first translate whose box is contained in the ASU box.
func (m *AtomMask) appendCopies(y [3]float64, w, lo, hi [3]float64, radius float64) {
	var ulo, uhi [3]int
	for i := 0; i < 3; i++ {
		ulo[i] = int(math.Floor(lo[i] - w[i] - y[i]))
		uhi[i] = int(math.Ceil(hi[i] + w[i] - y[i]))
	}
	for u0 := ulo[0]; u0 <= uhi[0]; u0++ {
		for u1 := ulo[1]; u1 <= uhi[1]; u1++ {
			for u2 := ulo[2]; u2 <= uhi[2]; u2++ {
				z := [3]float64{y[0] + float64(u0), y[1] + float64(u1), y[2] + float64(u2)}
				meets, inside := true, true
				for i := 0; i < 3; i++ {
					if z[i]+w[i] < lo[i] || z[i]-w[i] > hi[i] {
						meets = false
						break
					}
					if z[i]-w[i] < lo[i] || z[i]+w[i] > hi[i] {
						inside = false
					}
				}
				if !meets {
					continue
				}
				m.asuAtoms = append(m.asuAtoms, Site{
					Frac:   r3.Vec{X: z[0], Y: z[1], Z: z[2]},
					Radius: radius,
				})
				if inside {
					return
				}
			}
		}
	}
}

func reduceToCell(v r3.Vec) [3]float64 {
	out := [3]float64{v.X, v.Y, v.Z}
	for i := range out {
		out[i] -= math.Floor(out[i])
	}
	return out
}
