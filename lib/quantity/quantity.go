// Package quantity implements exact parsing, arithmetic and display
// scaling for Kubernetes-style resource quantity strings ("500m",
// "1.5Gi", "2k"). Values are kept as arbitrary-precision rationals so
// sums across many observations never drift, whatever mix of decimal
// and binary suffixes they were written with.
package quantity

import (
	"fmt"
	"math/big"
	"regexp"
	"strconv"
)

type family int

const (
	familyDecimal family = iota // powers of 1000, plain numbers included
	familyBinary                // powers of 1024
)

// scale is one entry of the suffix table: a display label together with
// the base and power it multiplies the mantissa by.
type scale struct {
	label  string
	family family
	base   int64
	pow    int
}

var scaleTable = []scale{
	{"", familyDecimal, 1000, 0},
	{"m", familyDecimal, 1000, -1},
	{"k", familyDecimal, 1000, 1},
	{"M", familyDecimal, 1000, 2},
	{"G", familyDecimal, 1000, 3},
	{"T", familyDecimal, 1000, 4},
	{"P", familyDecimal, 1000, 5},
	{"E", familyDecimal, 1000, 6},
	{"Ki", familyBinary, 1024, 1},
	{"Mi", familyBinary, 1024, 2},
	{"Gi", familyBinary, 1024, 3},
	{"Ti", familyBinary, 1024, 4},
	{"Pi", familyBinary, 1024, 5},
	{"Ei", familyBinary, 1024, 6},
}

var (
	scaleByLabel = map[string]scale{}
	factorByLabel = map[string]*big.Rat{}

	// display candidates per family, largest factor first
	decimalLadder []scale
	binaryLadder  []scale

	zeroRat = new(big.Rat)
)

func init() {
	for _, sc := range scaleTable {
		scaleByLabel[sc.label] = sc
		factorByLabel[sc.label] = sc.factor()
	}
	decimalLadder = []scale{
		scaleByLabel["E"], scaleByLabel["P"], scaleByLabel["T"],
		scaleByLabel["G"], scaleByLabel["M"], scaleByLabel["k"],
		scaleByLabel[""], scaleByLabel["m"],
	}
	binaryLadder = []scale{
		scaleByLabel["Ei"], scaleByLabel["Pi"], scaleByLabel["Ti"],
		scaleByLabel["Gi"], scaleByLabel["Mi"], scaleByLabel["Ki"],
		scaleByLabel[""],
	}
}

// factor returns base^pow as an exact rational.
func (s scale) factor() *big.Rat {
	if s.pow == 0 {
		return big.NewRat(1, 1)
	}
	p := s.pow
	if p < 0 {
		p = -p
	}
	abs := new(big.Int).Exp(big.NewInt(s.base), big.NewInt(int64(p)), nil)
	if s.pow > 0 {
		return new(big.Rat).SetInt(abs)
	}
	return new(big.Rat).SetFrac(big.NewInt(1), abs)
}

// ParseError reports input that does not match the quantity grammar.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid quantity %q", e.Input)
}

// Qty is an exact numeric magnitude plus the scale family it was parsed
// with. The zero value is the additive identity and is ready to use.
// Qty values are immutable; every operation returns a new value.
type Qty struct {
	rat   *big.Rat
	scale scale
}

var quantityPattern = regexp.MustCompile(`^([+-]?[0-9]+(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?)(m|k|M|G|T|P|E|Ki|Mi|Gi|Ti|Pi|Ei)?$`)

// Parse converts a quantity string into a Qty. The accepted grammar is
// an optional sign, digits with optional fraction and exponent, then an
// optional suffix: m k M G T P E (decimal, base 1000) or Ki Mi Gi Ti Pi
// Ei (binary, base 1024).
func Parse(s string) (Qty, error) {
	groups := quantityPattern.FindStringSubmatch(s)
	if groups == nil {
		return Qty{}, &ParseError{Input: s}
	}
	rat, ok := new(big.Rat).SetString(groups[1])
	if !ok {
		return Qty{}, &ParseError{Input: s}
	}
	sc := scaleByLabel[groups[2]]
	rat.Mul(rat, factorByLabel[sc.label])
	return Qty{rat: rat, scale: sc}, nil
}

// MustParse is Parse for literals known to be valid; it panics on error.
func MustParse(s string) Qty {
	q, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return q
}

func (q Qty) rational() *big.Rat {
	if q.rat == nil {
		return zeroRat
	}
	return q.rat
}

// IsZero reports whether the quantity is exactly zero.
func (q Qty) IsZero() bool {
	return q.rational().Sign() == 0
}

// Cmp compares two quantities exactly, independent of the suffixes they
// were parsed with: -1 if q < o, 0 if equal, +1 if q > o.
func (q Qty) Cmp(o Qty) int {
	return q.rational().Cmp(o.rational())
}

// Add returns q + o. The result keeps the scale family of the larger
// operand so that display picks a sensible suffix later.
func (q Qty) Add(o Qty) Qty {
	sum := new(big.Rat).Add(q.rational(), o.rational())
	return Qty{rat: sum, scale: q.dominantScale(o)}
}

// Sub returns q - o, sign-correct when o > q.
func (q Qty) Sub(o Qty) Qty {
	diff := new(big.Rat).Sub(q.rational(), o.rational())
	return Qty{rat: diff, scale: q.dominantScale(o)}
}

func (q Qty) dominantScale(o Qty) scale {
	if q.IsZero() {
		return o.scale
	}
	if o.IsZero() {
		return q.scale
	}
	qa := new(big.Rat).Abs(q.rational())
	oa := new(big.Rat).Abs(o.rational())
	if oa.Cmp(qa) > 0 {
		return o.scale
	}
	return q.scale
}

// PercentageOf returns 100 * q / denom, or 0 when denom is zero so a
// missing allocatable never turns into a division failure.
func (q Qty) PercentageOf(denom Qty) float64 {
	if denom.IsZero() {
		return 0
	}
	r := new(big.Rat).Quo(q.rational(), denom.rational())
	r.Mul(r, big.NewRat(100, 1))
	f, _ := r.Float64()
	return f
}

// AdjustedScale renders the quantity with a suffix from its own scale
// family chosen to keep the printed mantissa small (one to three leading
// digits). Rounding happens only in the returned string; the stored
// value is untouched.
func (q Qty) AdjustedScale() string {
	if q.IsZero() {
		return "0.0"
	}
	ladder := decimalLadder
	if q.scale.family == familyBinary {
		ladder = binaryLadder
	}
	abs := new(big.Rat).Abs(q.rational())
	chosen := ladder[len(ladder)-1]
	for _, sc := range ladder {
		if abs.Cmp(factorByLabel[sc.label]) >= 0 {
			chosen = sc
			break
		}
	}
	mantissa := new(big.Rat).Quo(q.rational(), factorByLabel[chosen.label])
	f, _ := mantissa.Float64()
	return strconv.FormatFloat(f, 'f', 1, 64) + chosen.label
}

// String renders the quantity at its adjusted display scale.
func (q Qty) String() string {
	return q.AdjustedScale()
}
