package report

import (
	"bytes"
	"errors"
	"testing"

	"primetree/primes"
	"primetree/sieve"
	"primetree/tree"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	m.Run()
}

func TestFormatFactors(t *testing.T) {
	table := primes.NewTable(sieve.AllLessThan(1000))

	testCases := []struct {
		num      uint64
		expected string
	}{
		{0, ""},
		{1, ""},
		{2, "2 ^ 1"},
		{360, "2 ^ 3 * 3 ^ 2 * 5 ^ 1"},
		{997 * 997, "997 ^ 2"},
	}

	for _, tc := range testCases {
		factors, err := table.Factorize(tc.num)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, FormatFactors(table, factors), "num %d", tc.num)
	}
}

func TestReporter_Run(t *testing.T) {
	table := primes.NewTable(sieve.ApproxToNth(100))
	var out bytes.Buffer

	reporter := NewReporter(&out, table, true)
	require.NoError(t, reporter.Run(100, "primes.cache", []uint64{6, 1}))

	expected := "Specified bound: 100. Extent of cache file (primes.cache): 111.\n" +
		"\nPrime factors: 2 ^ 1 * 3 ^ 1\nTree form: \ns\nl*\no\n\n" +
		"\nPrime factors: \nTree form: " + tree.UnrepresentableTrimmed + "\n\n"
	assert.Equal(t, expected, out.String())
}

func TestReporter_Untrimmed(t *testing.T) {
	table := primes.NewTable(sieve.AllLessThan(100))
	var out bytes.Buffer

	reporter := NewReporter(&out, table, false)
	require.NoError(t, reporter.Number(2))
	require.NoError(t, reporter.Number(0))

	assert.Equal(t, "\nPrime factors: 2 ^ 1\nTree form: \ns*\nl\no\n\n"+
		"\nPrime factors: \nTree form: \n\n", out.String())
}

func TestReporter_InsufficientBound(t *testing.T) {
	table := primes.NewTable(sieve.AllLessThan(100))
	var out bytes.Buffer

	err := NewReporter(&out, table, true).Run(10, "primes.cache", []uint64{4, 2 * 101, 8})
	require.Error(t, err)

	var boundErr *primes.InsufficientBoundError
	assert.True(t, errors.As(err, &boundErr))
	assert.Contains(t, err.Error(), "Try again with a larger bound")
	assert.Contains(t, out.String(), "2 ^ 2")
	assert.NotContains(t, out.String(), "2 ^ 3")
}
