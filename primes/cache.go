package primes

import (
	"io"
	"io/fs"
	"os"

	"primetree/sieve"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type options struct {
	codec *Codec
}

// Option configures TryNew.
type Option func(*options)

// WithCodec sets the codec used to read and write the cache file.
func WithCodec(codec *Codec) Option {
	return func(o *options) {
		if codec != nil {
			o.codec = codec
		}
	}
}

// TryNew returns a Table holding at least bound primes, backed by the cache file at path.
//
// An existing cache holding fewer than bound primes is regenerated and rewritten in place;
// the file is truncated to the new record. A missing cache is generated and created.
// Any other filesystem failure is returned as a *CacheIOError, contents that cannot be decoded
// or encoded as a *CacheFormatError. The file is not locked against concurrent writers.
func TryNew(bound int, path string, opts ...Option) (table *Table, err error) {
	o := options{codec: DefaultCodec()}
	for _, opt := range opts {
		opt(&o)
	}

	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("path", path).Msg("Cache not found. Generating new cache file")
		return create(bound, path, o.codec)
	}
	if err != nil {
		return nil, &CacheIOError{Op: "open", Path: path, Err: err}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			table, err = nil, &CacheIOError{Op: "close", Path: path, Err: cerr}
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, &CacheIOError{Op: "read", Path: path, Err: err}
	}
	primes, err := o.codec.Unmarshal(data)
	if err != nil {
		return nil, &CacheFormatError{Path: path, Err: err}
	}
	log.Debug().Str("path", path).Int("extent", len(primes)).Int("bytes", len(data)).Msg("loaded primes cache")

	if len(primes) >= bound {
		return NewTable(primes), nil
	}

	log.Warn().Int("bound", bound).Int("extent", len(primes)).Str("path", path).
		Msg("New bound is larger than the extent of the cache. Regenerating")
	table = Generate(bound)
	if err := rewrite(file, path, table, o.codec); err != nil {
		return nil, err
	}
	return table, nil
}

// Generate sieves a fresh table holding at least bound primes.
func Generate(bound int) *Table {
	if bound < 0 {
		bound = 0
	}
	return NewTable(sieve.ApproxToNth(uint64(bound)))
}

func create(bound int, path string, codec *Codec) (*Table, error) {
	table := Generate(bound)
	data, err := codec.Marshal(table.primes)
	if err != nil {
		return nil, &CacheFormatError{Path: path, Err: err}
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, &CacheIOError{Op: "create", Path: path, Err: err}
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return nil, &CacheIOError{Op: "write", Path: path, Err: err}
	}
	if err := file.Close(); err != nil {
		return nil, &CacheIOError{Op: "close", Path: path, Err: err}
	}
	log.Debug().Str("path", path).Int("extent", table.Extent()).Int("bytes", len(data)).Msg("wrote primes cache")
	return table, nil
}

func rewrite(file *os.File, path string, table *Table, codec *Codec) error {
	data, err := codec.Marshal(table.primes)
	if err != nil {
		return &CacheFormatError{Path: path, Err: err}
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return &CacheIOError{Op: "seek", Path: path, Err: err}
	}
	if _, err := file.Write(data); err != nil {
		return &CacheIOError{Op: "write", Path: path, Err: err}
	}
	if err := file.Truncate(int64(len(data))); err != nil {
		return &CacheIOError{Op: "truncate", Path: path, Err: err}
	}
	log.Debug().Str("path", path).Int("extent", table.Extent()).Int("bytes", len(data)).Msg("rewrote primes cache")
	return nil
}
