// Command prng dumps generator output and runs statistical checks on it.
//
// Usage:
//
//	prng dump  [-algorithm mt19937] [-seed 1] [-mode precise] [-kind int] [-count 10] [-output file.csv]
//	prng check [-algorithm mt19937] [-mode precise] [-seeds 1,2,3] [-count 100000] [-bins 64] [-alpha 0.001]
//
// Defaults come from PRNG_* environment variables.
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nozzle/prng"
	"github.com/nozzle/prng/internal/config"
	"github.com/nozzle/prng/internal/logger"
	"github.com/nozzle/prng/quality"
)

var errChecksFailed = errors.New("quality checks failed")

func main() {
	env, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Configure(env.LogFormat, env.LogLevel)
	log := logger.Log()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "dump":
		err = runDump(env, os.Args[2:])
	case "check":
		err = runCheck(env, os.Args[2:])
	case "-h", "-help", "--help", "help":
		usage()
		return
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Error().Err(err).Str("command", os.Args[1]).Msg("command failed")
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: prng <dump|check> [flags]")
}

// generatorFlags registers the flags shared by every subcommand.
func generatorFlags(fs *flag.FlagSet, env config.Env) (algorithm, mode *string) {
	algorithm = fs.String("algorithm", env.Algorithm, "Bit generator: mt19937 or cmwc4096")
	mode = fs.String("mode", env.FloatMode, "Float mode: precise or compat")
	return algorithm, mode
}

func buildConfig(algorithm, mode string, seed uint32) (prng.Config, error) {
	cfg := prng.DefaultConfig()
	a, err := prng.ParseAlgorithm(algorithm)
	if err != nil {
		return cfg, err
	}
	m, err := prng.ParseFloatMode(mode)
	if err != nil {
		return cfg, err
	}
	cfg.Algorithm = a
	cfg.FloatMode = m
	cfg.Seed = seed
	return cfg, nil
}

func runDump(env config.Env, args []string) error {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	algorithm, mode := generatorFlags(fs, env)
	seed := fs.Uint64("seed", uint64(env.Seed), "Generator seed (32-bit)")
	kind := fs.String("kind", "int", "Value kind: int, float or double")
	count := fs.Int("count", env.Count, "Number of values")
	outputFile := fs.String("output", "", "Output CSV file (stdout when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *seed > 0xffffffff {
		return fmt.Errorf("seed %d does not fit in 32 bits", *seed)
	}

	cfg, err := buildConfig(*algorithm, *mode, uint32(*seed))
	if err != nil {
		return err
	}
	g, err := prng.New(cfg)
	if err != nil {
		return err
	}

	var next func() string
	switch *kind {
	case "int":
		next = func() string { return strconv.FormatUint(uint64(g.Uint32()), 10) }
	case "float":
		next = func() string { return strconv.FormatFloat(float64(g.Float32()), 'g', -1, 32) }
	case "double":
		next = func() string { return strconv.FormatFloat(g.Float64(), 'g', -1, 64) }
	default:
		return fmt.Errorf("unknown kind %q", *kind)
	}

	out := io.Writer(os.Stdout)
	if *outputFile != "" {
		file, err := os.Create(*outputFile)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}

	if err := writeCSV(out, *count, next); err != nil {
		return err
	}

	logger.Log().Debug().
		Str("generator", g.String()).
		Str("kind", *kind).
		Int("count", *count).
		Msg("dump complete")
	return nil
}

// writeCSV writes count values, one per row.
func writeCSV(w io.Writer, count int, next func() string) error {
	writer := csv.NewWriter(w)
	for _i := 0; _i < count; _i++ {
		if err := writer.Write([]string{next()}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func runCheck(env config.Env, args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	algorithm, mode := generatorFlags(fs, env)
	defaults := quality.DefaultOptions()
	seedList := fs.String("seeds", strconv.FormatUint(uint64(env.Seed), 10), "Comma separated seeds")
	count := fs.Int("count", defaults.Samples, "Doubles drawn per seed")
	bins := fs.Int("bins", defaults.Bins, "Chi-square histogram bins")
	tails := fs.Int("tails", defaults.Tails, "Deepest 2^-k tail reported")
	workers := fs.Int("workers", defaults.Workers, "Concurrent seeds (0 = all cores)")
	alpha := fs.Float64("alpha", 0.001, "Minimum acceptable p-value")
	if err := fs.Parse(args); err != nil {
		return err
	}

	seeds, err := parseSeeds(*seedList)
	if err != nil {
		return err
	}
	cfg, err := buildConfig(*algorithm, *mode, 0)
	if err != nil {
		return err
	}

	opts := quality.Options{Samples: *count, Bins: *bins, Tails: *tails, Workers: *workers}
	reports := quality.Battery(cfg, seeds, opts)

	log := logger.Log()
	failed := 0
	for _, r := range reports {
		if r.Err != nil {
			failed++
			log.Error().Err(r.Err).Uint32("seed", r.Seed).Msg("check failed")
			continue
		}
		level := zerolog.InfoLevel
		if r.ChiSquare.PValue < *alpha {
			failed++
			level = zerolog.WarnLevel
		}
		log.WithLevel(level).
			Uint32("seed", r.Seed).
			Str("algorithm", string(r.Config.Algorithm)).
			Str("mode", r.Config.FloatMode.String()).
			Float64("chi2", r.ChiSquare.Statistic).
			Int("df", r.ChiSquare.DF).
			Float64("p", r.ChiSquare.PValue).
			Float64("mean", r.Mean).
			Float64("variance", r.Variance).
			Msg("uniformity")
		for _, tail := range r.Tails {
			log.Debug().
				Uint32("seed", r.Seed).
				Int("k", tail.K).
				Float64("observed", tail.Observed).
				Float64("expected", tail.Expected).
				Msg("exponent tail")
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d seeds: %w", failed, len(reports), errChecksFailed)
	}
	return nil
}

// parseSeeds parses a comma separated list of 32-bit seeds.
func parseSeeds(list string) ([]uint32, error) {
	var seeds []uint32
	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseUint(field, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("seed %q: %w", field, err)
		}
		seeds = append(seeds, uint32(v))
	}
	if len(seeds) == 0 {
		return nil, fmt.Errorf("no seeds given")
	}
	return seeds, nil
}
