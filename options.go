package variant

import (
	"github.com/joeycumines/logiface"
)

// variantOptions holds configuration options for Variant and Synchronized.
type variantOptions struct {
	logger    *logiface.Logger[logiface.Event]
	threshold Ratio
	policy    Policy
}

// Option configures a Variant or Synchronized instance.
type Option interface {
	applyVariant(*variantOptions) error
}

// optionImpl implements Option.
type optionImpl struct {
	applyVariantFunc func(*variantOptions) error
}

func (o *optionImpl) applyVariant(opts *variantOptions) error {
	return o.applyVariantFunc(opts)
}

// WithPolicy sets the destruction policy. Defaults to PolicyAuto.
func WithPolicy(policy Policy) Option {
	return &optionImpl{func(opts *variantOptions) error {
		if !policy.valid() {
			return &optionError{`invalid policy: ` + policy.String()}
		}
		opts.policy = policy
		return nil
	}}
}

// WithAutoThreshold sets the threshold used to resolve PolicyAuto, as the
// ratio num/den, which must be within [0, 1]. PolicyConstant is selected
// only if there are at least den alternatives, and the fraction of
// non-trivial alternatives is strictly greater than num/den.
//
// Defaults to 9/10 (DefaultAutoThresholdNum / DefaultAutoThresholdDen).
func WithAutoThreshold(num, den int) Option {
	return &optionImpl{func(opts *variantOptions) error {
		r := Ratio{Num: num, Den: den}
		if err := r.validate(); err != nil {
			return err
		}
		opts.threshold = r
		return nil
	}}
}

// WithLogger attaches a logger, used by Synchronized to report failed
// operations (debug level), and lock acquisition across instances (trace
// level). A nil logger disables logging, which is the default. It has no
// effect on Variant.
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return &optionImpl{func(opts *variantOptions) error {
		opts.logger = logger
		return nil
	}}
}

// resolveOptions applies opts in order, later options overriding earlier
// ones. Nil options are ignored.
func resolveOptions(opts []Option) (*variantOptions, error) {
	cfg := &variantOptions{policy: PolicyAuto}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyVariant(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

type optionError struct {
	msg string
}

func (e *optionError) Error() string {
	return `variant: ` + e.msg
}
