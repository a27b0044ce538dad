package main

import (
	"fmt"
	"os"

	"primetree/config"
	"primetree/logger"
	"primetree/primes"
	"primetree/report"

	"github.com/rs/zerolog/log"
)

func main() {
	fs := config.NewFlagSet(os.Args[0])
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [numbers...]\n\nFlags:\n%s", os.Args[0], fs.FlagUsages())
	}

	cfg, err := config.Load(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fs.Usage()
		os.Exit(2)
	}
	if cfg.Help {
		fs.Usage()
		return
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	codec, err := primes.NewCodec(cfg.Encoding(), cfg.CacheCompression)
	if err != nil {
		log.Fatal().Err(err).Msg("Error configuring cache codec")
	}

	table, err := primes.TryNew(cfg.Bound, cfg.PrimesCachePath, primes.WithCodec(codec))
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.PrimesCachePath).Msg("Error loading primes cache")
	}

	reporter := report.NewReporter(os.Stdout, table, cfg.Trimming)
	if err := reporter.Run(cfg.Bound, cfg.PrimesCachePath, cfg.Numbers); err != nil {
		log.Fatal().Err(err).Msg("Error reporting factorization")
	}
}
