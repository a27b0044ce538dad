// Package config reads the program configuration from command line flags and PRIMETREE_
// environment variables. Flags set on the command line take precedence over the environment.
package config

import (
	"strconv"
	"strings"

	"primetree/encoders"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "PRIMETREE"

	DefaultCachePath = "primes.cache"
	DefaultBound     = 1_000_000
	DefaultLogLevel  = "WARN"
	DefaultEncoding  = "delta"
)

// Config holds everything a run needs.
type Config struct {
	Numbers          []uint64 `mapstructure:"-"`
	PrimesCachePath  string   `mapstructure:"primes_cache_path"`
	Bound            int      `mapstructure:"bound"`
	Trimming         bool     `mapstructure:"trimming"`
	CacheEncoding    string   `mapstructure:"cache_encoding"`
	CacheCompression bool     `mapstructure:"cache_compression"`
	LogLevel         string   `mapstructure:"log_level"`
	Help             bool     `mapstructure:"-"`
}

// Encoding returns the parsed cache payload encoding.
func (c *Config) Encoding() encoders.Type {
	t, _ := encoders.ParseType(c.CacheEncoding)
	return t
}

// NewFlagSet returns the flag set Load parses.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false
	fs.StringP("primes-cache-path", "p", DefaultCachePath, "Path to the persisted primes cache")
	fs.IntP("bound", "b", DefaultBound, "Minimum number of primes the cache must hold")
	fs.BoolP("trimming", "t", true, "Omit implied nodes from the tree (0 and 1 become unrepresentable)")
	fs.String("cache-encoding", DefaultEncoding, "Cache payload encoding: delta or plain")
	fs.Bool("cache-compression", true, "Compress the cache file with zstd")
	fs.String("log-level", DefaultLogLevel, "Log level: DEBUG, INFO, WARN, ERROR, FATAL, PANIC or DISABLED")
	fs.BoolP("help", "h", false, "Show usage")
	return fs
}

// Load parses args (without the program name) into a Config.
func Load(fs *pflag.FlagSet, args []string) (*Config, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, name := range []string{
		"primes-cache-path", "bound", "trimming", "cache-encoding", "cache-compression", "log-level",
	} {
		key := strings.ReplaceAll(name, "-", "_")
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return nil, errors.Wrapf(err, "bind flag %s", name)
		}
		if err := v.BindEnv(key); err != nil {
			return nil, errors.Wrapf(err, "bind env %s", key)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decode configuration")
	}
	cfg.Help, _ = fs.GetBool("help")

	numbers, err := parseNumbers(fs.Args())
	if err != nil {
		return nil, err
	}
	cfg.Numbers = numbers

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values the flag parser cannot.
func (c *Config) Validate() error {
	if c.Bound < 0 {
		return errors.Errorf("bound must not be negative, got %d", c.Bound)
	}
	if c.PrimesCachePath == "" {
		return errors.New("primes cache path must not be empty")
	}
	if _, err := encoders.ParseType(c.CacheEncoding); err != nil {
		return errors.Wrap(err, "invalid cache encoding")
	}
	return nil
}

func parseNumbers(args []string) ([]uint64, error) {
	numbers := make([]uint64, 0, len(args))
	for _, arg := range args {
		n, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid number %q", arg)
		}
		numbers = append(numbers, n)
	}
	return numbers, nil
}
