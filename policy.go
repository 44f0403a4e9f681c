package variant

import (
	"fmt"
)

// Policy selects the algorithm used to destroy the active value of a
// variant, see WithPolicy.
type Policy uint8

const (
	// PolicyAuto selects PolicyConstant if the fraction of non-trivial
	// alternatives is strictly greater than the Auto threshold (see
	// WithAutoThreshold), otherwise PolicyLinear.
	PolicyAuto Policy = iota

	// PolicyLinear compares the tag against each alternative, in order,
	// until a match is found. O(N) comparisons, no extra storage.
	PolicyLinear

	// PolicyConstant uses a per-set table, indexed by tag, built once, on
	// first use. O(1) lookup.
	PolicyConstant
)

const (
	// DefaultAutoThresholdNum and DefaultAutoThresholdDen define the default
	// threshold for PolicyAuto, 9/10.
	//
	// The value is a heuristic, and has no particular significance.
	DefaultAutoThresholdNum = 9
	DefaultAutoThresholdDen = 10
)

// Ratio is the threshold used by PolicyAuto, as Num/Den. The zero value is
// equivalent to the default (9/10).
type Ratio struct {
	Num int
	Den int
}

// String returns the name of the policy, e.g. "linear".
func (p Policy) String() string {
	switch p {
	case PolicyAuto:
		return `auto`
	case PolicyLinear:
		return `linear`
	case PolicyConstant:
		return `constant`
	default:
		return fmt.Sprintf(`Policy(%d)`, uint8(p))
	}
}

func (p Policy) valid() bool {
	return p <= PolicyConstant
}

func (r Ratio) String() string {
	r = r.resolve()
	return fmt.Sprintf(`%d/%d`, r.Num, r.Den)
}

func (r Ratio) resolve() Ratio {
	if r == (Ratio{}) {
		return Ratio{Num: DefaultAutoThresholdNum, Den: DefaultAutoThresholdDen}
	}
	return r
}

func (r Ratio) validate() error {
	if r.Den <= 0 || r.Num < 0 || r.Num > r.Den {
		return fmt.Errorf(`variant: invalid auto threshold: %d/%d`, r.Num, r.Den)
	}
	return nil
}

// autoComplexity resolves PolicyAuto, for a set of n alternatives, of which
// nonTrivial are non-trivial. PolicyConstant requires n >= den, and
// nonTrivial/n > num/den, e.g. for 9/10, any n < 10 always selects
// PolicyLinear, as does exactly 9 of 10.
func autoComplexity(n, nonTrivial int, threshold Ratio) Policy {
	threshold = threshold.resolve()
	if n >= threshold.Den && nonTrivial*threshold.Den > threshold.Num*n {
		return PolicyConstant
	}
	return PolicyLinear
}
