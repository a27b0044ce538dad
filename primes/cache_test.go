package primes

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"primetree/encoders"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCache(t *testing.T, path string) []uint64 {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	primes, err := DefaultCodec().Unmarshal(data)
	require.NoError(t, err)
	return primes
}

func TestTryNew_CreatesMissingCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "primes.cache")

	table, err := TryNew(1000, path)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, table.Extent(), 1000)
	assert.Equal(t, uint64(7919), table.Prime(999))

	assert.Equal(t, table.Primes(), readCache(t, path))
}

func TestTryNew_ReusesLargeEnoughCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "primes.cache")

	first, err := TryNew(1000, path)
	require.NoError(t, err)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	second, err := TryNew(10, path)
	require.NoError(t, err)
	after, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first.Primes(), second.Primes())
	assert.Equal(t, before, after)
}

func TestTryNew_RegeneratesSmallCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "primes.cache")

	small, err := TryNew(100, path)
	require.NoError(t, err)

	large, err := TryNew(5000, path)
	require.NoError(t, err)
	assert.Greater(t, large.Extent(), small.Extent())
	assert.GreaterOrEqual(t, large.Extent(), 5000)

	assert.Equal(t, large.Primes(), readCache(t, path))
}

func TestTryNew_TruncatesOnRewrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "primes.cache")

	plain, err := NewCodec(encoders.TypePlain, false)
	require.NoError(t, err)
	_, err = TryNew(100, path, WithCodec(plain))
	require.NoError(t, err)
	oldInfo, err := os.Stat(path)
	require.NoError(t, err)

	table, err := TryNew(200, path, WithCodec(DefaultCodec()))
	require.NoError(t, err)

	expected, err := DefaultCodec().Marshal(table.Primes())
	require.NoError(t, err)
	require.Less(t, int64(len(expected)), oldInfo.Size())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, expected, data)
}

func TestTryNew_MalformedCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "primes.cache")
	require.NoError(t, os.WriteFile(path, []byte("not a primes cache"), 0o644))

	_, err := TryNew(10, path)
	require.Error(t, err)

	var formatErr *CacheFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, path, formatErr.Path)
}

func TestTryNew_WarnsOnGenerate(t *testing.T) {
	level, logger := zerolog.GlobalLevel(), log.Logger
	defer func() {
		zerolog.SetGlobalLevel(level)
		log.Logger = logger
	}()

	var out bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	log.Logger = zerolog.New(&out)

	path := filepath.Join(t.TempDir(), "primes.cache")
	_, err := TryNew(10, path)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Cache not found")

	out.Reset()
	_, err = TryNew(100, path)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Regenerating")
	assert.NotContains(t, out.String(), "rewrote primes cache")
}

func TestTryNew_EncodeFailure(t *testing.T) {
	broken := &Codec{encoding: encoders.Type(99)}

	t.Run("create", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "primes.cache")

		_, err := TryNew(10, path, WithCodec(broken))
		var formatErr *CacheFormatError
		require.ErrorAs(t, err, &formatErr)
		assert.Equal(t, path, formatErr.Path)
		assert.NoFileExists(t, path)
	})

	t.Run("rewrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "primes.cache")
		_, err := TryNew(10, path)
		require.NoError(t, err)
		before, err := os.ReadFile(path)
		require.NoError(t, err)

		_, err = TryNew(100, path, WithCodec(broken))
		var formatErr *CacheFormatError
		require.ErrorAs(t, err, &formatErr)
		assert.Equal(t, path, formatErr.Path)

		after, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestTryNew_IOError(t *testing.T) {
	dir := t.TempDir()

	_, err := TryNew(10, dir)
	require.Error(t, err)

	var ioErr *CacheIOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "open", ioErr.Op)
}

func TestTryNew_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "primes.cache")

	_, err := TryNew(10, path)
	var ioErr *CacheIOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "create", ioErr.Op)
}

func TestGenerate(t *testing.T) {
	assert.GreaterOrEqual(t, Generate(0).Extent(), 6)
	assert.GreaterOrEqual(t, Generate(-5).Extent(), 6)
	assert.GreaterOrEqual(t, Generate(1234).Extent(), 1234)
}
