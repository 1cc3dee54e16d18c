package layer

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// BiasInit selects how a layer's biases start out.
type BiasInit int

const (
	// BiasUniform draws biases from the same range as the weights.
	BiasUniform BiasInit = iota
	// BiasZero starts every bias at 0.
	BiasZero
)

// String returns the configuration name of the policy.
func (b BiasInit) String() string {
	switch b {
	case BiasUniform:
		return "uniform"
	case BiasZero:
		return "zero"
	default:
		return "unknown"
	}
}

// ParseBiasInit parses a configuration name.
func ParseBiasInit(s string) (BiasInit, error) {
	switch s {
	case "uniform":
		return BiasUniform, nil
	case "zero":
		return BiasZero, nil
	}
	return 0, errors.Errorf("layer: unknown bias init %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (b BiasInit) MarshalText() ([]byte, error) {
	if b != BiasUniform && b != BiasZero {
		return nil, errors.Errorf("layer: unknown bias init %d", int(b))
	}
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *BiasInit) UnmarshalText(text []byte) error {
	parsed, err := ParseBiasInit(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// InitRange is the symmetric range parameters are drawn from.
const InitRange = 1.0

// uniform returns the initialization distribution backed by src.
func uniform(src rand.Source) distuv.Uniform {
	return distuv.Uniform{Min: -InitRange, Max: InitRange, Src: src}
}
