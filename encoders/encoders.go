// Package encoders provides implementations for encoding and decoding ascending lists of uint64
// values using Plain or Delta encoding. Delta encoding suits the prime cache well: consecutive
// primes are close to each other, so their gaps fit in one or two varint bytes.
package encoders

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Type identifies a payload encoding inside a cache record.
type Type uint8

const (
	TypePlain Type = 1
	TypeDelta Type = 2
)

// defaultDeltaMinLen is the list length at or below which DeltaEncoder falls back to plain encoding.
const defaultDeltaMinLen = 2

var ErrNotAscending = errors.New("values are not strictly ascending")

// ArrayEncoder defines the interface for encoding an array of uint64 values to a writer.
type ArrayEncoder interface {
	// Encode encodes the given array of uint64 values and writes it to the provided writer.
	// It returns an error if any encoding or writing operation fails.
	Encode(values []uint64, writer io.Writer) error
}

// ArrayDecoder defines the interface for decoding an array of uint64 values from a reader.
type ArrayDecoder interface {
	// Decode reads a specified number of uint64 values from the reader and returns them as an array.
	// It returns an error if any reading or decoding operation fails.
	Decode(reader io.Reader, length int) ([]uint64, error)
}

// ArrayEncoderDecoder combines both encoding and decoding methods into one interface.
type ArrayEncoderDecoder interface {
	ArrayEncoder
	ArrayDecoder
	Type() Type
}

// ForType returns the encoder registered for t.
func ForType(t Type) (ArrayEncoderDecoder, error) {
	switch t {
	case TypePlain:
		return NewPlainEncoder(), nil
	case TypeDelta:
		return NewDeltaEncoder(defaultDeltaMinLen), nil
	default:
		return nil, fmt.Errorf("unknown encoding type: %d", t)
	}
}

// ParseType maps an encoding name ("plain" or "delta") to its Type.
func ParseType(name string) (Type, error) {
	switch name {
	case "plain":
		return TypePlain, nil
	case "delta":
		return TypeDelta, nil
	default:
		return 0, fmt.Errorf("unknown encoding: %q", name)
	}
}

func (t Type) String() string {
	switch t {
	case TypePlain:
		return "plain"
	case TypeDelta:
		return "delta"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// DeltaEncoder implements ArrayEncoder and ArrayDecoder using delta encoding with varint compression.
// The first value is stored as a fixed-width little endian word, every following value as the
// unsigned varint gap from its predecessor. Lists no longer than minLen fall back to plain encoding.
// Encoder and decoder must agree on minLen.
type DeltaEncoder struct {
	minLen          int
	fallbackEncoder ArrayEncoderDecoder
}

// NewDeltaEncoder creates and returns a new instance of DeltaEncoder.
func NewDeltaEncoder(minLen int) *DeltaEncoder {
	return &DeltaEncoder{
		minLen:          minLen,
		fallbackEncoder: NewPlainEncoder(),
	}
}

func (d *DeltaEncoder) Type() Type {
	return TypeDelta
}

// Encode compresses the given ascending array of uint64 values using delta encoding and varint encoding.
func (d *DeltaEncoder) Encode(values []uint64, writer io.Writer) error {
	if len(values) <= d.minLen {
		return d.fallbackEncoder.Encode(values, writer)
	}

	if err := binary.Write(writer, binary.LittleEndian, values[0]); err != nil {
		return errors.Wrap(err, "write first value")
	}

	prev := values[0]
	for i := 1; i < len(values); i++ {
		if values[i] <= prev {
			return errors.Wrapf(ErrNotAscending, "at index %d", i)
		}
		delta := values[i] - prev
		prev = values[i]
		if err := writeVarint(writer, delta); err != nil {
			return errors.Wrapf(err, "write delta at index %d", i)
		}
	}
	return nil
}

// Decode reads a delta-varint encoded array of uint64 values from the reader and reconstructs the original values.
func (d *DeltaEncoder) Decode(reader io.Reader, length int) ([]uint64, error) {
	if length <= d.minLen {
		return d.fallbackEncoder.Decode(reader, length)
	}

	values := make([]uint64, length)

	// Read the first value as-is
	if err := binary.Read(reader, binary.LittleEndian, &values[0]); err != nil {
		return nil, errors.Wrap(err, "read first value")
	}

	prev := values[0]
	for i := 1; i < length; i++ {
		delta, err := readVarint(reader)
		if err != nil {
			return nil, errors.Wrapf(err, "read delta at index %d", i)
		}
		if delta == 0 {
			return nil, errors.Wrapf(ErrNotAscending, "zero delta at index %d", i)
		}
		values[i] = prev + delta
		prev = values[i]
	}
	return values, nil
}

// writeVarint writes a uint64 value using varint encoding.
func writeVarint(writer io.Writer, value uint64) error {
	buf := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(buf, value)
	_, err := writer.Write(buf[:n])
	return err
}

// readVarint reads a uint64 value using varint decoding.
func readVarint(reader io.Reader) (uint64, error) {
	var value uint64
	var buf [1]byte
	shift := uint(0)

	for {
		if _, err := io.ReadFull(reader, buf[:]); err != nil {
			return 0, err
		}
		b := buf[0]
		value |= uint64(b&0x7F) << shift
		if b&0x80 == 0 {
			break
		}
		shift += 7
		if shift >= 64 {
			return 0, errors.New("varint overflow")
		}
	}
	return value, nil
}

// PlainEncoder implements ArrayEncoder and ArrayDecoder using plain encoding.
// Plain encoding writes the values as fixed-width little endian words without any compression.
type PlainEncoder struct{}

// NewPlainEncoder creates and returns a new instance of PlainEncoder.
func NewPlainEncoder() *PlainEncoder {
	return &PlainEncoder{}
}

func (p *PlainEncoder) Type() Type {
	return TypePlain
}

// Encode writes the given array of uint64 values directly to the writer without any compression.
func (p *PlainEncoder) Encode(values []uint64, writer io.Writer) error {
	if err := binary.Write(writer, binary.LittleEndian, values); err != nil {
		return errors.Wrap(err, "write plain values")
	}
	return nil
}

// Decode reads a specified number of uint64 values from the reader and returns them as an array.
func (p *PlainEncoder) Decode(reader io.Reader, length int) ([]uint64, error) {
	values := make([]uint64, length)
	if err := binary.Read(reader, binary.LittleEndian, values); err != nil {
		return nil, errors.Wrap(err, "read plain values")
	}
	return values, nil
}
