// structgen prints structured random payloads for feeding protocol fuzzers.
package main

import (
	"bufio"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/acolita/fuzzpayload/internal/adapters/realrand"
	"github.com/acolita/fuzzpayload/internal/config"
	"github.com/acolita/fuzzpayload/internal/logging"
	"github.com/acolita/fuzzpayload/internal/payload"
)

// Version information - set at build time.
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// overrides holds command line values that take precedence over the profile.
type overrides struct {
	count, minLength, maxLength, step int
	seed                              uint64
	format                            string
	debug                             bool
}

func (o overrides) apply(cfg *config.Config) {
	if o.count >= 0 {
		cfg.Generator.Count = o.count
	}
	if o.minLength > 0 {
		cfg.Generator.MinLength = o.minLength
	}
	if o.maxLength > 0 {
		cfg.Generator.MaxLength = o.maxLength
	}
	if o.step > 0 {
		cfg.Generator.Step = o.step
	}
	if o.seed != 0 {
		cfg.Generator.Seed = o.seed
	}
	if o.format != "" {
		cfg.Output.Format = o.format
	}
	if o.debug {
		cfg.Logging.Level = "debug"
	}
}

func main() {
	var (
		configPath  string
		savePath    string
		watch       bool
		showVersion bool
		ov          overrides
	)

	flag.StringVar(&configPath, "config", "", "Path to generation profile")
	flag.IntVar(&ov.count, "count", -1, "Number of payloads (overrides profile)")
	flag.IntVar(&ov.minLength, "min", 0, "Minimum target length (overrides profile)")
	flag.IntVar(&ov.maxLength, "max", 0, "Maximum target length (overrides profile)")
	flag.IntVar(&ov.step, "step", 0, "Length alignment (overrides profile)")
	flag.Uint64Var(&ov.seed, "seed", 0, "Seed for reproducible shaping and rendering (0: random)")
	flag.StringVar(&ov.format, "format", "", "Output format: hex, raw or groups (overrides profile)")
	flag.StringVar(&savePath, "save-profile", "", "Write the effective profile to this path and exit")
	flag.BoolVar(&watch, "watch", false, "Regenerate whenever the profile changes")
	flag.BoolVar(&ov.debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("structgen version %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		os.Exit(0)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading profile: %v\n", err)
		os.Exit(1)
	}
	ov.apply(cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid profile: %v\n", err)
		os.Exit(1)
	}

	if savePath != "" {
		if err := config.Save(cfg, savePath); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving profile: %v\n", err)
			os.Exit(1)
		}
		return
	}

	logger := logging.Setup(cfg.Logging.Level, cfg.Logging.Preview)

	out := bufio.NewWriter(os.Stdout)
	if err := writeBatch(out, cfg, logger); err != nil {
		logger.Error("generation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if !watch {
		return
	}
	if configPath == "" {
		fmt.Fprintln(os.Stderr, "-watch requires -config")
		os.Exit(1)
	}

	watcher, err := config.NewWatcher(configPath, func(newCfg *config.Config) {
		ov.apply(newCfg)
		if err := newCfg.Validate(); err != nil {
			logger.Error("invalid profile with overrides", slog.String("error", err.Error()))
			return
		}
		if err := writeBatch(out, newCfg, logger); err != nil {
			logger.Error("generation failed", slog.String("error", err.Error()))
		}
	})
	if err != nil {
		logger.Error("profile watch failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer watcher.Close()

	logger.Info("watching profile", slog.String("path", configPath))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logger.Info("received shutdown signal")
}

// newGenerator builds a generator for cfg. A non-zero seed makes the
// shaping and rendering streams reproducible; the target length still
// comes from the strong source.
func newGenerator(cfg *config.Config, logger *slog.Logger) (*payload.Generator, error) {
	opts := []payload.Option{payload.WithLogger(logger)}
	if seed := cfg.Generator.Seed; seed != 0 {
		opts = append(opts,
			payload.WithRandom(realrand.NewSeeded(seed)),
			payload.WithRenderRandom(realrand.NewSeeded(seed+1)),
		)
	}
	return payload.NewGenerator(cfg.Generator.Payload(), opts...)
}

// writeBatch generates one batch and writes it to w in the configured format.
func writeBatch(w *bufio.Writer, cfg *config.Config, logger *slog.Logger) error {
	gen, err := newGenerator(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("generating payloads",
		slog.Int("count", cfg.Generator.Count),
		slog.Int("target_length", gen.TargetLength()),
		slog.Int("step", cfg.Generator.Step),
		slog.String("format", cfg.Output.Format),
	)

	for seq, err := range gen.All() {
		if err != nil {
			return err
		}
		if err := writeSequence(w, seq, cfg.Output.Format, logger); err != nil {
			return err
		}
	}
	return w.Flush()
}

func writeSequence(w io.Writer, seq *payload.Sequence, format string, logger *slog.Logger) error {
	if format == config.FormatGroups {
		_, err := fmt.Fprintln(w, seq.String())
		return err
	}

	data, err := seq.Render()
	if err != nil {
		return err
	}
	logger.Debug("payload rendered",
		slog.String("groups", seq.String()),
		slog.Any("data", data),
	)

	if format == config.FormatRaw {
		_, err = w.Write(data)
		return err
	}
	_, err = fmt.Fprintln(w, hex.EncodeToString(data))
	return err
}
