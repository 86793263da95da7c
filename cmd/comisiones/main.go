// Package main provides the comisiones command: it compares the class
// sections listed in two documents and prints the matches as JSON.
//
//	comisiones -a aulas.csv -b oferta.txt.gz [-out report.json]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/AdrianCGon/centeno-api/internal/buildinfo"
	"github.com/AdrianCGon/centeno-api/internal/classify"
	"github.com/AdrianCGon/centeno-api/internal/comision"
	"github.com/AdrianCGon/centeno-api/internal/compare"
	"github.com/AdrianCGon/centeno-api/internal/config"
	domerrors "github.com/AdrianCGon/centeno-api/internal/errors"
	"github.com/AdrianCGon/centeno-api/internal/extract"
	"github.com/AdrianCGon/centeno-api/internal/logger"
	"github.com/AdrianCGon/centeno-api/internal/match"
	"github.com/AdrianCGon/centeno-api/internal/metrics"
	"github.com/AdrianCGon/centeno-api/internal/sentry"
	"github.com/AdrianCGon/centeno-api/internal/source"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	pathA    string
	pathB    string
	out      string
	asText   bool
	version  bool
	logLevel string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("comisiones", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.pathA, "a", "", "First document ("+source.Formats+")")
	fs.StringVar(&opts.pathB, "b", "", "Second document")
	fs.StringVar(&opts.out, "out", "", "Write the JSON report to this file instead of stdout")
	fs.BoolVar(&opts.asText, "as-text", false, "Read tabular documents with the free-text extractor")
	fs.BoolVar(&opts.version, "version", false, "Print version and exit")
	fs.StringVar(&opts.logLevel, "log-level", "", "Override the configured log level")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.version {
		return opts, nil
	}
	if opts.pathA == "" || opts.pathB == "" {
		return opts, domerrors.NewValidationError("-a/-b", "both -a and -b are required")
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			_, _ = fmt.Fprintln(stderr, err)
		}
		return 2
	}
	if opts.version {
		_, _ = fmt.Fprintln(stdout, buildinfo.String())
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}

	var logFile *os.File
	if cfg.LogFile != "" {
		logFile, err = os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "Failed to open log file: %v\n", err)
			return 1
		}
		defer func() { _ = logFile.Close() }()
	}
	log := logger.NewWithWriters(cfg.LogLevel, stderr, writerOrNil(logFile))
	log.WithFields(map[string]any{
		"a":       opts.pathA,
		"b":       opts.pathB,
		"as_text": opts.asText,
	}).InfoContext(ctx, "Starting comparison", "version", buildinfo.Release())

	if err := sentry.Initialize(sentry.Config{
		Token:       cfg.Sentry.Token,
		Host:        cfg.Sentry.Host,
		Environment: cfg.Sentry.Environment,
		Release:     buildinfo.Release(),
		SampleRate:  cfg.Sentry.SampleRate,
	}); err != nil {
		log.WithError(err).Warn("Sentry disabled")
	}
	defer sentry.Flush(config.SentryFlush)

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	svc := compare.NewService(compare.Options{
		Extractor: extract.New(extractOptions(cfg, log, m)),
		Matcher: match.New(match.Options{
			Threshold:    cfg.FuzzyThreshold,
			MaxPerSource: cfg.MaxRecordsPerSource,
			MaxMatches:   cfg.MaxMatches,
			Logger:       log,
			Metrics:      m,
		}),
		Logger:    log,
		Metrics:   m,
		ForceText: opts.asText,
	})

	ctx, cancel := context.WithTimeout(ctx, cfg.ComparisonTimeout)
	defer cancel()

	docA, docB, err := loadPair(ctx, opts.pathA, opts.pathB)
	if err != nil {
		log.WithError(err).ErrorContext(ctx, "Failed to load documents")
		_, _ = fmt.Fprintln(stderr, domerrors.GetUserMessage(err))
		if domerrors.IsUnsupportedFormat(err) {
			_, _ = fmt.Fprintln(stderr, "supported formats: "+source.Formats)
		}
		return 1
	}

	report, err := svc.Compare(ctx, docA, docB)
	if err != nil {
		log.WithError(err).ErrorContext(ctx, "Comparison aborted")
		return 1
	}

	if err := writeReport(report, opts.out, stdout); err != nil {
		log.WithError(err).ErrorContext(ctx, "Failed to write report")
		return 1
	}

	if cfg.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsFile, registry); err != nil {
			log.WithError(err).Warn("Failed to write metrics file")
		}
	}
	return 0
}

func extractOptions(cfg *config.Config, log *logger.Logger, m *metrics.Metrics) extract.Options {
	opts := extract.Options{
		ForwardWindow:  cfg.ForwardWindow,
		BackwardWindow: cfg.BackwardWindow,
		Logger:         log,
		Metrics:        m,
	}
	if cfg.TraceClassification {
		opts.Tracer = classify.NewLogTracer(log)
	}
	if cfg.Sentry.Token != "" && sentry.IsEnabled() {
		opts.OnFailure = sentry.CaptureExtractionFailure
	}
	return opts
}

// loadPair reads both documents concurrently.
func loadPair(ctx context.Context, pathA, pathB string) (comision.Document, comision.Document, error) {
	var docA, docB comision.Document
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		docA, err = source.Load(gctx, pathA)
		return err
	})
	g.Go(func() (err error) {
		docB, err = source.Load(gctx, pathB)
		return err
	})
	if err := g.Wait(); err != nil {
		return comision.Document{}, comision.Document{}, err
	}
	return docA, docB, nil
}

func writeReport(report *compare.Report, path string, stdout io.Writer) error {
	w := stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(report)
}

// writerOrNil avoids handing a typed nil *os.File to the logger as a writer.
func writerOrNil(f *os.File) io.Writer {
	if f == nil {
		return nil
	}
	return f
}
