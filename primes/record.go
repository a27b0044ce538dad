package primes

import (
	"bytes"

	"primetree/encoders"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

const recordVersion = 1

var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// cacheRecord is the CBOR form of a cache file.
type cacheRecord struct {
	Version  uint8         `cbor:"1,keyasint"`
	Encoding encoders.Type `cbor:"2,keyasint"`
	Count    uint64        `cbor:"3,keyasint"`
	Payload  []byte        `cbor:"4,keyasint"`
}

// Codec turns a prime list into cache file bytes and back.
type Codec struct {
	encoding encoders.Type
	compress bool
}

// NewCodec returns a Codec writing payloads with the given encoding,
// optionally wrapped in a zstd frame.
func NewCodec(encoding encoders.Type, compress bool) (*Codec, error) {
	if _, err := encoders.ForType(encoding); err != nil {
		return nil, err
	}
	return &Codec{encoding: encoding, compress: compress}, nil
}

// DefaultCodec writes delta encoded, zstd compressed records.
func DefaultCodec() *Codec {
	return &Codec{encoding: encoders.TypeDelta, compress: true}
}

// Marshal encodes primes into cache file bytes.
func (c *Codec) Marshal(primes []uint64) ([]byte, error) {
	encoder, err := encoders.ForType(c.encoding)
	if err != nil {
		return nil, err
	}

	var payload bytes.Buffer
	if err := encoder.Encode(primes, &payload); err != nil {
		return nil, errors.Wrapf(err, "encode %s payload", c.encoding)
	}

	data, err := cbor.Marshal(cacheRecord{
		Version:  recordVersion,
		Encoding: c.encoding,
		Count:    uint64(len(primes)),
		Payload:  payload.Bytes(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshal cache record")
	}

	if !c.compress {
		return data, nil
	}

	zw, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, errors.Wrap(err, "create zstd encoder")
	}
	defer zw.Close()
	return zw.EncodeAll(data, make([]byte, 0, len(data))), nil
}

// Unmarshal decodes cache file bytes produced by any Codec configuration.
func (c *Codec) Unmarshal(data []byte) ([]uint64, error) {
	if bytes.HasPrefix(data, zstdMagic) {
		zr, err := zstd.NewReader(nil)
		if err != nil {
			return nil, errors.Wrap(err, "create zstd decoder")
		}
		defer zr.Close()
		if data, err = zr.DecodeAll(data, nil); err != nil {
			return nil, errors.Wrap(err, "decompress cache record")
		}
	}

	var record cacheRecord
	if err := cbor.Unmarshal(data, &record); err != nil {
		return nil, errors.Wrap(err, "unmarshal cache record")
	}
	if record.Version != recordVersion {
		return nil, errors.Errorf("unsupported cache version %d", record.Version)
	}

	decoder, err := encoders.ForType(record.Encoding)
	if err != nil {
		return nil, err
	}
	// A plain payload is 8 bytes per prime, anything else is at least one byte per prime.
	if record.Count > uint64(len(record.Payload)) {
		return nil, errors.Errorf("record claims %d primes in %d payload bytes", record.Count, len(record.Payload))
	}

	reader := bytes.NewReader(record.Payload)
	primes, err := decoder.Decode(reader, int(record.Count))
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s payload", record.Encoding)
	}
	if reader.Len() != 0 {
		return nil, errors.Errorf("%d trailing payload bytes", reader.Len())
	}
	for i := 1; i < len(primes); i++ {
		if primes[i] <= primes[i-1] {
			return nil, errors.Wrapf(encoders.ErrNotAscending, "at index %d", i)
		}
	}
	return primes, nil
}
