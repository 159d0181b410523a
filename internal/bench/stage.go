package bench

import (
	"errors"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/hephbuild/hsize/lib/hiter"
)

const (
	StageModulo   = "modulo"
	StageSquare   = "square"
	StageEstimate = "estimate"
)

const (
	EstimateModeExact = "exact"
	EstimateModeMin   = "min"
	EstimateModeMax   = "max"
	EstimateModeHint  = "hint"
)

// ModuloOptions keeps v when v%Divisor == Equals, or v%Divisor < Below when
// Below is set. Negate inverts the match.
type ModuloOptions struct {
	Divisor int  `mapstructure:"divisor"`
	Equals  int  `mapstructure:"equals"`
	Below   *int `mapstructure:"below"`
	Negate  bool `mapstructure:"negate"`
}

type EstimateOptions struct {
	Mode  string `mapstructure:"mode"`
	N     int    `mapstructure:"n"`
	Lower int    `mapstructure:"lower"`
	Upper *int   `mapstructure:"upper"`
}

type stageFunc func(it hiter.Iterator[int], estimate bool) hiter.Iterator[int]

func decodeOptions(options map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return err
	}

	return dec.Decode(options)
}

func compileStage(s Stage) (stageFunc, error) {
	switch s.Kind {
	case StageModulo:
		var opts ModuloOptions
		if err := decodeOptions(s.Options, &opts); err != nil {
			return nil, err
		}

		if opts.Divisor <= 0 {
			return nil, fmt.Errorf("divisor must be positive, got %v", opts.Divisor)
		}

		keep := func(v int) bool {
			r := v % opts.Divisor
			if opts.Below != nil {
				return (r < *opts.Below) != opts.Negate
			}

			return (r == opts.Equals) != opts.Negate
		}

		return func(it hiter.Iterator[int], _ bool) hiter.Iterator[int] {
			return hiter.Filter(it, keep)
		}, nil
	case StageSquare:
		if len(s.Options) > 0 {
			return nil, errors.New("square takes no options")
		}

		return func(it hiter.Iterator[int], _ bool) hiter.Iterator[int] {
			return hiter.Map(it, func(v int) int {
				return v * v
			})
		}, nil
	case StageEstimate:
		var opts EstimateOptions
		if err := decodeOptions(s.Options, &opts); err != nil {
			return nil, err
		}

		wrap, err := estimateWrapper(opts)
		if err != nil {
			return nil, err
		}

		return func(it hiter.Iterator[int], estimate bool) hiter.Iterator[int] {
			if !estimate {
				return it
			}

			return wrap(it)
		}, nil
	default:
		return nil, fmt.Errorf("unknown stage kind: %q", s.Kind)
	}
}

func estimateWrapper(opts EstimateOptions) (func(hiter.Iterator[int]) hiter.Iterator[int], error) {
	switch opts.Mode {
	case EstimateModeExact:
		return func(it hiter.Iterator[int]) hiter.Iterator[int] {
			return hiter.EstimateExact(it, opts.N)
		}, nil
	case EstimateModeMin:
		return func(it hiter.Iterator[int]) hiter.Iterator[int] {
			return hiter.EstimateMin(it, opts.N)
		}, nil
	case EstimateModeMax:
		return func(it hiter.Iterator[int]) hiter.Iterator[int] {
			return hiter.EstimateMax(it, opts.N)
		}, nil
	case EstimateModeHint:
		h := hiter.AtLeast(opts.Lower)
		if opts.Upper != nil {
			h.Upper = *opts.Upper
			h.Bounded = true
		}

		return func(it hiter.Iterator[int]) hiter.Iterator[int] {
			return hiter.Estimate(it, h)
		}, nil
	default:
		return nil, fmt.Errorf("unknown estimate mode: %q", opts.Mode)
	}
}

func compileStages(stages []Stage) ([]stageFunc, error) {
	fs := make([]stageFunc, 0, len(stages))
	for i, s := range stages {
		f, err := compileStage(s)
		if err != nil {
			return nil, fmt.Errorf("stage %v (%v): %w", i, s.Kind, err)
		}

		fs = append(fs, f)
	}

	return fs, nil
}

func applyStages(it hiter.Iterator[int], stages []stageFunc, estimate bool) hiter.Iterator[int] {
	for _, f := range stages {
		it = f(it, estimate)
	}

	return it
}
