// Package report prints factorizations and their tree forms.
package report

import (
	"fmt"
	"io"
	"strings"

	"primetree/primes"
	"primetree/tree"

	"github.com/pkg/errors"
)

// Reporter writes the report for a table to an output.
type Reporter struct {
	out      io.Writer
	table    *primes.Table
	tree     *tree.Tree
	trimming bool
}

// NewReporter creates a Reporter encoding trees with the given trimming policy.
func NewReporter(out io.Writer, table *primes.Table, trimming bool) *Reporter {
	return &Reporter{
		out:      out,
		table:    table,
		tree:     tree.New(table, trimming),
		trimming: trimming,
	}
}

// Header prints the configured bound, the cache path and its extent.
func (r *Reporter) Header(bound int, cachePath string) error {
	_, err := fmt.Fprintf(r.out, "Specified bound: %d. Extent of cache file (%s): %d.\n", bound, cachePath, r.table.Extent())
	return err
}

// Number prints the factorization and tree of num.
func (r *Reporter) Number(num uint64) error {
	factors, err := r.table.Factorize(num)
	if err != nil {
		return errors.WithMessagef(err, "factorize %d", num)
	}
	if err := r.tree.FillWithNum(num); err != nil {
		return errors.WithMessagef(err, "encode %d", num)
	}

	_, err = fmt.Fprintf(r.out, "\nPrime factors: %s\nTree form: %s\n\n", FormatFactors(r.table, factors), r.tree)
	return err
}

// Run prints the header followed by every number, stopping at the first error.
func (r *Reporter) Run(bound int, cachePath string, numbers []uint64) error {
	if err := r.Header(bound, cachePath); err != nil {
		return err
	}
	for _, num := range numbers {
		if err := r.Number(num); err != nil {
			return err
		}
	}
	return nil
}

// FormatFactors renders factors as "p1 ^ e1 * p2 ^ e2" using prime values.
func FormatFactors(table *primes.Table, factors []primes.Factor) string {
	parts := make([]string, 0, len(factors))
	for _, f := range factors {
		parts = append(parts, fmt.Sprintf("%d ^ %d", table.Prime(f.Index), f.Exponent))
	}
	return strings.Join(parts, " * ")
}
