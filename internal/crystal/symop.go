package crystal

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// TDen is the common denominator of symmetry translations.
const TDen = 12

// SymOp is a symmetry operation x' = R·x + T/TDen in fractional coordinates.
type SymOp struct {
	R [3][3]int
	T [3]int
}

// Identity returns the identity operation.
func Identity() SymOp {
	return SymOp{R: [3][3]int{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
}

// Apply transforms a fractional coordinate. The result is not reduced into the cell.
func (op SymOp) Apply(x r3.Vec) r3.Vec {
	v := [3]float64{x.X, x.Y, x.Z}
	var out [3]float64
	for i := 0; i < 3; i++ {
		out[i] = float64(op.T[i]) / TDen
		for j := 0; j < 3; j++ {
			out[i] += float64(op.R[i][j]) * v[j]
		}
	}
	return r3.Vec{X: out[0], Y: out[1], Z: out[2]}
}

// Multiply returns op∘other, the operation applying other first.
func (op SymOp) Multiply(other SymOp) SymOp {
	var out SymOp
	for i := 0; i < 3; i++ {
		out.T[i] = op.T[i]
		for j := 0; j < 3; j++ {
			out.T[i] += op.R[i][j] * other.T[j]
			for k := 0; k < 3; k++ {
				out.R[i][j] += op.R[i][k] * other.R[k][j]
			}
		}
	}
	return out
}

// Reduced returns op with translations reduced into [0, TDen).
func (op SymOp) Reduced() SymOp {
	for i := range op.T {
		op.T[i] = ((op.T[i] % TDen) + TDen) % TDen
	}
	return op
}

// IsIdentity reports whether op is the identity modulo lattice translations.
func (op SymOp) IsIdentity() bool {
	return op.Reduced() == Identity()
}

// ParseSymOp parses a Jones-faithful triplet such as "-x+1/2,y+1/2,-z".
func ParseSymOp(s string) (SymOp, error) {
	rows := strings.Split(strings.ReplaceAll(s, " ", ""), ",")
	if len(rows) != 3 {
		return SymOp{}, fmt.Errorf("symop %q: expected 3 components, got %d", s, len(rows))
	}
	var op SymOp
	for i, row := range rows {
		if row == "" {
			return SymOp{}, fmt.Errorf("symop %q: empty component %d", s, i)
		}
		if err := parseRow(row, &op.R[i], &op.T[i]); err != nil {
			return SymOp{}, fmt.Errorf("symop %q: %w", s, err)
		}
	}
	return op, nil
}

func parseRow(row string, r *[3]int, t *int) error {
	sign := 1
	pos := 0
	for pos < len(row) {
		ch := row[pos]
		switch {
		case ch == '+':
			sign = 1
			pos++
		case ch == '-':
			sign = -1
			pos++
		case ch == 'x' || ch == 'X':
			r[0] += sign
			sign, pos = 1, pos+1
		case ch == 'y' || ch == 'Y':
			r[1] += sign
			sign, pos = 1, pos+1
		case ch == 'z' || ch == 'Z':
			r[2] += sign
			sign, pos = 1, pos+1
		case ch >= '0' && ch <= '9':
			num, n := readInt(row[pos:])
			pos += n
			den := 1
			if pos < len(row) && row[pos] == '/' {
				d, n := readInt(row[pos+1:])
				if n == 0 || d == 0 {
					return fmt.Errorf("bad fraction in %q", row)
				}
				den = d
				pos += n + 1
			}
			if (num*TDen)%den != 0 {
				return fmt.Errorf("translation %d/%d not representable over %d", num, den, TDen)
			}
			*t += sign * num * TDen / den
			sign = 1
		default:
			return fmt.Errorf("unexpected %q in %q", ch, row)
		}
	}
	return nil
}

func readInt(s string) (int, int) {
	v, n := 0, 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		v = v*10 + int(s[n]-'0')
		n++
	}
	return v, n
}

func (op SymOp) String() string {
	var parts [3]string
	axes := "xyz"
	for i := 0; i < 3; i++ {
		var b strings.Builder
		for j := 0; j < 3; j++ {
			switch c := op.R[i][j]; {
			case c == 1:
				if b.Len() > 0 {
					b.WriteByte('+')
				}
				b.WriteByte(axes[j])
			case c == -1:
				b.WriteByte('-')
				b.WriteByte(axes[j])
			case c != 0:
				if c > 0 && b.Len() > 0 {
					b.WriteByte('+')
				}
				fmt.Fprintf(&b, "%d%c", c, axes[j])
			}
		}
		if t := op.Reduced().T[i]; t != 0 {
			g := gcd(t, TDen)
			fmt.Fprintf(&b, "+%d/%d", t/g, TDen/g)
		}
		parts[i] = b.String()
	}
	return strings.Join(parts[:], ",")
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}
