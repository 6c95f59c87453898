package vbyte

import "slices"

// Decoder decodes varint streams with a fixed strategy and batch width.
// A Decoder that collects stats is not safe for concurrent use.
type Decoder struct {
	opts   Options
	stats  *Stats
	decode func(dst []uint32, src []byte, width int, st *Stats) int
}

// NewDecoder returns a Decoder configured by opts. A nil opts selects the
// defaults. opts is not modified.
func NewDecoder(opts *Options) (*Decoder, error) {
	var o Options
	if opts != nil {
		o = *opts
	}
	o.EnsureDefaults()
	if err := o.Validate(); err != nil {
		return nil, err
	}

	d := &Decoder{opts: o}
	if o.CollectStats {
		d.stats = &Stats{}
	}
	switch o.Strategy {
	case StrategyMaskShift:
		d.decode = decodeMaskShift
	case StrategyMaskedVByte:
		d.decode = decodeMaskedVByte
	case StrategyScalar:
		d.decode = func(dst []uint32, src []byte, _ int, st *Stats) int {
			return decodeTail(dst, src, st)
		}
	}
	return d, nil
}

// Decode decodes src into dst and returns the number of values written, with
// the same contract as the package-level Decode.
func (d *Decoder) Decode(dst []uint32, src []byte) int {
	n := d.decode(dst, src, d.opts.BatchWidth, d.stats)
	d.stats.addCall(len(src), n)
	return n
}

// DecodeAppend validates src and appends its values to dst.
func (d *Decoder) DecodeAppend(dst []uint32, src []byte) ([]uint32, error) {
	if err := Validate(src); err != nil {
		return dst, err
	}
	start := len(dst)
	count := Count(src)
	dst = slices.Grow(dst, count)[:start+count]
	d.Decode(dst[start:], src)
	return dst, nil
}

// Options returns the configuration of d with defaults applied.
func (d *Decoder) Options() Options {
	return d.opts
}

// Stats returns a snapshot of the counters. It is zero unless
// Options.CollectStats was set.
func (d *Decoder) Stats() Stats {
	if d.stats == nil {
		return Stats{}
	}
	return *d.stats
}

// ResetStats zeroes the counters.
func (d *Decoder) ResetStats() {
	if d.stats != nil {
		*d.stats = Stats{}
	}
}
