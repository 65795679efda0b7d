package crystal

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/banshee-data/bulksolvent/internal/asu"
)

// ErrUnknownSpaceGroup is returned by LookupSpaceGroup for symbols outside the built-in table.
var ErrUnknownSpaceGroup = errors.New("unknown space group")

// SpaceGroup is an ordered list of order_z operations (centring included) and
// the asymmetric unit they tile the cell with. The first operation is the identity.
type SpaceGroup struct {
	Symbol string
	Ops    []SymOp
	ASU    asu.Region
}

// OrderZ returns the number of operations, centring translations included.
func (sg SpaceGroup) OrderZ() int { return len(sg.Ops) }

// Op returns the k-th operation.
func (sg SpaceGroup) Op(k int) SymOp { return sg.Ops[k] }

// Validate checks the identity comes first, the operations form a group modulo
// lattice translations, and the ASU volume times order_z is the cell volume.
func (sg SpaceGroup) Validate() error {
	if len(sg.Ops) == 0 {
		return fmt.Errorf("space group %s: no operations", sg.Symbol)
	}
	if !sg.Ops[0].IsIdentity() {
		return fmt.Errorf("space group %s: first operation %s is not the identity", sg.Symbol, sg.Ops[0])
	}
	seen := make(map[SymOp]bool, len(sg.Ops))
	for _, op := range sg.Ops {
		r := op.Reduced()
		if seen[r] {
			return fmt.Errorf("space group %s: duplicate operation %s", sg.Symbol, op)
		}
		seen[r] = true
	}
	for _, a := range sg.Ops {
		for _, b := range sg.Ops {
			if p := a.Multiply(b).Reduced(); !seen[p] {
				return fmt.Errorf("space group %s: %s * %s = %s is not in the group", sg.Symbol, a, b, p)
			}
		}
	}
	if v := sg.ASU.Volume() * float64(sg.OrderZ()); math.Abs(v-1) > 1e-12 {
		return fmt.Errorf("space group %s: asu %s covers %g cells under symmetry, want 1", sg.Symbol, sg.ASU.Kind, v)
	}
	return nil
}

type tableEntry struct {
	ops  []string
	kind asu.Kind
}

var builtinGroups = map[string]tableEntry{
	"P1":  {[]string{"x,y,z"}, asu.KindCell},
	"P-1": {[]string{"x,y,z", "-x,-y,-z"}, asu.KindHalfX},
	"P2":  {[]string{"x,y,z", "-x,y,-z"}, asu.KindHalfX},
	"P21": {[]string{"x,y,z", "-x,y+1/2,-z"}, asu.KindHalfY},
	"C2": {[]string{
		"x,y,z", "-x,y,-z",
		"x+1/2,y+1/2,z", "-x+1/2,y+1/2,-z",
	}, asu.KindQuarterXY},
	"P222": {[]string{"x,y,z", "-x,-y,z", "-x,y,-z", "x,-y,-z"}, asu.KindQuarterXY},
	"P21212": {[]string{
		"x,y,z", "-x,-y,z",
		"-x+1/2,y+1/2,-z", "x+1/2,-y+1/2,-z",
	}, asu.KindQuarterXY},
	"P212121": {[]string{
		"x,y,z", "-x+1/2,-y,z+1/2",
		"-x,y+1/2,-z+1/2", "x+1/2,-y+1/2,-z",
	}, asu.KindQuarterXY},
	"P4":  {[]string{"x,y,z", "-x,-y,z", "-y,x,z", "y,-x,z"}, asu.KindQuarterXY},
	"P41": {[]string{"x,y,z", "-x,-y,z+1/2", "-y,x,z+1/4", "y,-x,z+3/4"}, asu.KindQuarterXY},
}

// LookupSpaceGroup returns a built-in space group by its short Hermann-Mauguin symbol.
func LookupSpaceGroup(symbol string) (SpaceGroup, error) {
	e, ok := builtinGroups[symbol]
	if !ok {
		return SpaceGroup{}, fmt.Errorf("%w: %q", ErrUnknownSpaceGroup, symbol)
	}
	sg := SpaceGroup{Symbol: symbol, ASU: asu.Region{Kind: e.kind}}
	for _, s := range e.ops {
		op, err := ParseSymOp(s)
		if err != nil {
			return SpaceGroup{}, fmt.Errorf("space group %s: %w", symbol, err)
		}
		sg.Ops = append(sg.Ops, op)
	}
	return sg, nil
}

// MustLookupSpaceGroup is LookupSpaceGroup for symbols known to be in the table.
func MustLookupSpaceGroup(symbol string) SpaceGroup {
	sg, err := LookupSpaceGroup(symbol)
	if err != nil {
		panic(err)
	}
	return sg
}

// BuiltinSymbols lists the symbols LookupSpaceGroup accepts, sorted.
func BuiltinSymbols() []string {
	out := make([]string, 0, len(builtinGroups))
	for s := range builtinGroups {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
