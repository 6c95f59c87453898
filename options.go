package vbyte

import (
	"errors"
	"fmt"
	"strings"
)

// Strategy selects how a Decoder reassembles varints.
type Strategy int8

const (
	// StrategyMaskShift compacts the terminator of every varint into a lane
	// and merges the earlier groups in by shifting, one round per varint
	// length present in the batch. It is the default.
	StrategyMaskShift Strategy = iota
	// StrategyMaskedVByte decodes 16-byte groups through a shuffle table
	// indexed by 12 bits of the continuation mask.
	StrategyMaskedVByte
	// StrategyScalar decodes one byte at a time.
	StrategyScalar
)

var strategyNames = [...]string{
	StrategyMaskShift:   "maskshift",
	StrategyMaskedVByte: "maskedvbyte",
	StrategyScalar:      "scalar",
}

func (s Strategy) String() string {
	if s >= 0 && int(s) < len(strategyNames) {
		return strategyNames[s]
	}
	return fmt.Sprintf("Strategy(%d)", int8(s))
}

// ParseStrategy returns the Strategy with the given name.
func ParseStrategy(name string) (Strategy, error) {
	for s, n := range strategyNames {
		if n == name {
			return Strategy(s), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown strategy %q", ErrInvalidOptions, name)
}

// ErrInvalidOptions is returned for Options that fail validation.
var ErrInvalidOptions = errors.New("vbyte: invalid options")

// Options configures a Decoder. The zero value decodes with the default
// strategy at the CPU's batch width.
type Options struct {
	// Strategy selects the reassembly kernel.
	Strategy Strategy

	// BatchWidth is the number of bytes loaded per batch: 16, 32 or 64.
	// Zero selects BatchWidth().
	BatchWidth int

	// CollectStats enables the counters returned by Decoder.Stats.
	CollectStats bool
}

// EnsureDefaults fills in the zero fields of o with their defaults and
// returns o. A nil o is replaced by a new Options.
func (o *Options) EnsureDefaults() *Options {
	if o == nil {
		o = &Options{}
	}
	if o.BatchWidth == 0 {
		o.BatchWidth = defaultBatchWidth
	}
	return o
}

// Validate reports every invalid field of o.
func (o *Options) Validate() error {
	var buf strings.Builder
	if o.Strategy < 0 || int(o.Strategy) >= len(strategyNames) {
		fmt.Fprintf(&buf, "unknown strategy %s\n", o.Strategy)
	}
	switch o.BatchWidth {
	case 16, 32, 64:
	default:
		fmt.Fprintf(&buf, "batch width %d is not one of 16, 32 or 64\n", o.BatchWidth)
	}
	if buf.Len() == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidOptions, strings.TrimSuffix(buf.String(), "\n"))
}
