// StreamVByte transcoding.
//
// StreamVByte stores one 2-bit length code per value in a control area
// followed by the value bytes. It decodes faster than varints but needs the
// value count out of band. These functions convert between the two formats
// and give random access into StreamVByte data without decoding all of it.

package vbyte

import (
	"encoding/binary"
	"fmt"

	"github.com/mhr3/streamvbyte"
)

var bo = binary.LittleEndian

// svbControlBlockSizeLUT is a precomputed lookup table for StreamVByte control byte sizes.
// Each control byte encodes lengths for 4 values (2 bits each, code+1 = byte length).
// Entry i = sum of byte lengths for all 4 values encoded in control byte i.
var svbControlBlockSizeLUT [256]uint8

func init() {
	for ctrl := 0; ctrl < 256; ctrl++ {
		size := (ctrl & 0x03) + ((ctrl >> 2) & 0x03) + ((ctrl >> 4) & 0x03) + (ctrl >> 6) + 4
		svbControlBlockSizeLUT[ctrl] = uint8(size)
	}
}

// svbControlBlockSize returns the total data bytes for a StreamVByte control byte.
func svbControlBlockSize(ctrl byte) int {
	return int(svbControlBlockSizeLUT[ctrl])
}

// svbEncodedLen returns the number of bytes count values occupy in data,
// control area included. A final control byte may describe fewer than four
// values; its unused codes are ignored.
func svbEncodedLen(data []byte, count int) (int, error) {
	if count < 0 {
		return 0, fmt.Errorf("%w: negative value count %d", ErrInvalidBuffer, count)
	}
	numControlBytes := (count + 3) >> 2
	if len(data) < numControlBytes {
		return 0, fmt.Errorf("%w: StreamVByte control area truncated (need %d bytes, got %d)",
			ErrInvalidBuffer, numControlBytes, len(data))
	}
	size := numControlBytes
	full := count >> 2
	for _, ctrl := range data[:full] {
		size += svbControlBlockSize(ctrl)
	}
	if rest := count & 0x03; rest != 0 {
		ctrl := data[full]
		for i := 0; i < rest; i++ {
			size += int(ctrl>>(2*i)&0x03) + 1
		}
	}
	if len(data) < size {
		return 0, fmt.Errorf("%w: StreamVByte data truncated (need %d bytes, got %d)",
			ErrInvalidBuffer, size, len(data))
	}
	return size, nil
}

// AppendStreamVByte decodes the varint stream src and appends its StreamVByte
// encoding to dst. It returns the extended slice and the number of values,
// which the caller must keep to decode the result.
func AppendStreamVByte(dst []byte, src []byte) ([]byte, int, error) {
	values, err := DecodeAppend(nil, src)
	if err != nil {
		return dst, 0, err
	}
	if len(values) == 0 {
		return dst, 0, nil
	}
	encoded := streamvbyte.EncodeUint32(values, nil)
	return append(dst, encoded...), len(values), nil
}

// DecodeStreamVByte decodes count values of StreamVByte data and appends
// them to dst.
func DecodeStreamVByte(dst []uint32, data []byte, count int) ([]uint32, error) {
	if _, err := svbEncodedLen(data, count); err != nil {
		return dst, err
	}
	if count == 0 {
		return dst, nil
	}
	return append(dst, streamvbyte.DecodeUint32(data, count, nil)...), nil
}

// AppendVarintsFromStreamVByte decodes count values of StreamVByte data and
// appends them to dst as varints.
func AppendVarintsFromStreamVByte(dst []byte, data []byte, count int) ([]byte, error) {
	if _, err := svbEncodedLen(data, count); err != nil {
		return dst, err
	}
	if count == 0 {
		return dst, nil
	}
	values := streamvbyte.DecodeUint32(data, count, nil)
	return AppendUint32s(dst, values), nil
}

// StreamVByteValue returns value index of count StreamVByte-encoded values
// without decoding the others.
func StreamVByteValue(data []byte, count, index int) (uint32, error) {
	if _, err := svbEncodedLen(data, count); err != nil {
		return 0, err
	}
	if index < 0 || index >= count {
		return 0, ErrPositionOutOfRange
	}
	return svbDecodeOne(data, count, index), nil
}

// svbDecodeOne decodes a single value from StreamVByte data at the given index.
// count is the total number of encoded values.
// This function is allocation-free and suitable for random access patterns.
func svbDecodeOne(svbData []byte, count, index int) uint32 {
	// StreamVByte format: control bytes first, then data bytes
	// Control bytes: one per 4 values, each 2-bit code = byteLength-1
	numControlBytes := (count + 3) >> 2
	controlBytes := svbData[:numControlBytes]
	dataBytes := svbData[numControlBytes:]

	blockIndex := index >> 2
	posInBlock := index & 0x03

	// Sum data sizes for all blocks before ours
	dataOffset := 0
	for i := 0; i < blockIndex; i++ {
		dataOffset += svbControlBlockSize(controlBytes[i])
	}

	ctrl := controlBytes[blockIndex]
	for i := 0; i < posInBlock; i++ {
		dataOffset += int(ctrl>>(i*2)&0x03) + 1
	}
	byteLen := int(ctrl>>(posInBlock*2)&0x03) + 1
	return svbReadValue(dataBytes[dataOffset:], byteLen)
}

// svbReadValue reads a little-endian value of 1-4 bytes.
func svbReadValue(data []byte, byteLen int) uint32 {
	switch byteLen {
	case 1:
		return uint32(data[0])
	case 2:
		return uint32(bo.Uint16(data))
	case 3:
		return uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16
	case 4:
		return bo.Uint32(data)
	}
	return 0
}
