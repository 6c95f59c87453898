package vbyte

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/Akron/vbyte-go/internal/lanes"
	"github.com/cockroachdb/datadriven"
	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"
)

func parseHexBytes(t *testing.T, input string) []byte {
	var out []byte
	for _, f := range strings.Fields(input) {
		b, err := strconv.ParseUint(f, 16, 8)
		require.NoError(t, err)
		out = append(out, byte(b))
	}
	return out
}

func formatHexBytes(b []byte) string {
	var sb strings.Builder
	for i, x := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02x", x)
	}
	return sb.String()
}

func formatValues(values []uint32) string {
	var sb strings.Builder
	for i, v := range values {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatUint(uint64(v), 10))
	}
	return sb.String()
}

// scanDecoder builds a Decoder from the strategy, width and stats arguments.
func scanDecoder(t *testing.T, td *datadriven.TestData) *Decoder {
	opts := &Options{CollectStats: td.HasArg("stats")}
	var name string
	td.MaybeScanArgs(t, "strategy", &name)
	if name != "" {
		s, err := ParseStrategy(name)
		require.NoError(t, err)
		opts.Strategy = s
	}
	td.MaybeScanArgs(t, "width", &opts.BatchWidth)
	d, err := NewDecoder(opts)
	require.NoError(t, err)
	return d
}

// TestDataDriven runs the scenario files in testdata.
//
//	decode [strategy=<name>] [width=<n>] [repeat=<n>] [stats]
//	  decodes the hex bytes of the input, repeated n times
//	equivalent [repeat=<n>]
//	  decodes with every strategy and width and compares with the scalar decoder
//	encode
//	  encodes the decimal values of the input
//	validate, count
//	boundary
//	  resolves the batch boundary of 16, 32 or 64 hex bytes
//	layout pattern=<12-bit mask>
//	  prints the masked vbyte table entry of the pattern
func TestDataDriven(t *testing.T) {
	datadriven.RunTest(t, "testdata/decode", func(t *testing.T, td *datadriven.TestData) string {
		switch td.Cmd {
		case "decode":
			d := scanDecoder(t, td)
			in := repeatInput(t, td)
			dst := make([]uint32, Count(in))
			n := d.Decode(dst, in)
			out := formatValues(dst[:n])
			if td.HasArg("stats") {
				out += "\n" + d.Stats().String()
			}
			return out

		case "equivalent":
			in := repeatInput(t, td)
			want := make([]uint32, Count(in))
			want = want[:DecodeScalar(want, in)]
			for name, d := range allDecoders(t) {
				got := make([]uint32, len(want))
				got = got[:d.Decode(got, in)]
				if diff := pretty.Diff(want, got); diff != nil {
					return fmt.Sprintf("%s differs:\n%s", name, strings.Join(diff, "\n"))
				}
			}
			return fmt.Sprintf("ok: %d values", len(want))

		case "encode":
			var values []uint32
			for _, f := range strings.Fields(td.Input) {
				v, err := strconv.ParseUint(f, 10, 32)
				require.NoError(t, err)
				values = append(values, uint32(v))
			}
			return formatHexBytes(AppendUint32s(nil, values))

		case "validate":
			if err := Validate(parseHexBytes(t, td.Input)); err != nil {
				return err.Error()
			}
			return "ok"

		case "count":
			return strconv.Itoa(Count(parseHexBytes(t, td.Input)))

		case "boundary":
			in := parseHexBytes(t, td.Input)
			cont := lanes.Mask(continuationMaskGeneric(in))
			count, span := resolveBoundary(cont, len(in))
			return fmt.Sprintf("count=%d span=%d", count, span)

		case "layout":
			var s string
			td.ScanArgs(t, "pattern", &s)
			pattern, err := strconv.ParseUint(s, 0, maskPatternLen)
			require.NoError(t, err)
			layout := maskedVByteLayouts[pattern]
			if layout.consumed == 0 {
				return "invalid"
			}
			lengths, laneBytes := idLengths(int(layout.shuffle))
			return fmt.Sprintf("id=%d consumed=%d lanes=%d lengths=%v",
				layout.shuffle, layout.consumed, laneBytes, lengths)

		default:
			return fmt.Sprintf("unknown command: %s", td.Cmd)
		}
	})
}

func repeatInput(t *testing.T, td *datadriven.TestData) []byte {
	in := parseHexBytes(t, td.Input)
	repeat := 1
	td.MaybeScanArgs(t, "repeat", &repeat)
	var out []byte
	for i := 0; i < repeat; i++ {
		out = append(out, in...)
	}
	return out
}
