package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/relex/gotils/logger"
	"github.com/relex/slog-syslog/defs"
	"github.com/relex/slog-syslog/encoder"
	"github.com/relex/slog-syslog/metrics"
	"github.com/relex/slog-syslog/stream"
	"github.com/relex/slog-syslog/util"
)

const stdioPath = "-"

type encodeCommandState struct {
	Config      string `help:"Configuration file path, empty to use defaults"`
	Input       string `help:"Input file, directory or glob pattern (\"**\" for recursive match), \"-\" for stdin"`
	Output      string `help:"Output file path, \"-\" for stdout"`
	Format      string `help:"Override input format in config: lines or msgpack"`
	MetricsAddr string `help:"The listener address to expose Prometheus metrics and debug information, empty to disable"`
}

var encodeCmd encodeCommandState = encodeCommandState{
	Config:      "",
	Input:       stdioPath,
	Output:      stdioPath,
	Format:      "",
	MetricsAddr: "",
}

func (cmd *encodeCommandState) run(args []string) {
	cfg, err := stream.LoadConfig(cmd.Config)
	if err != nil {
		logger.Fatalf("failed to load config: %s", err.Error())
	}
	if cmd.Format != "" {
		format, err := stream.ParseInputFormat(cmd.Format)
		if err != nil {
			logger.Fatalf("invalid --format: %s", err.Error())
		}
		cfg.Format = format
	}
	if dump, err := util.MarshalYaml(&cfg); err == nil {
		logger.Debugf("effective config:\n%s", dump)
	}

	inputPaths := []string{stdioPath}
	if cmd.Input != stdioPath {
		inputPaths, err = stream.ListInputFiles(cmd.Input)
		if err != nil {
			logger.Fatalf("failed to list inputs: %s", err.Error())
		}
		if len(inputPaths) == 0 {
			logger.Warnf("no input file matches %s", cmd.Input)
		}
	}

	output := io.WriteCloser(os.Stdout)
	if cmd.Output != stdioPath {
		output, err = os.Create(cmd.Output)
		if err != nil {
			logger.Fatalf("failed to create output: %s", err.Error())
		}
	}

	if cmd.MetricsAddr != "" {
		msrv, err := util.LaunchMetricsListener(cmd.MetricsAddr, prometheus.DefaultGatherer)
		if err != nil {
			logger.Fatalf("failed to launch metrics listener: %s", err.Error())
		}
		defer func() {
			if err := msrv.Shutdown(context.Background()); err != nil {
				logger.Errorf("error shutting down metrics listener: %v", err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	factory := metrics.NewMetricFactory("slogsyslog_", nil, nil)
	encodeErr := encodeInputs(ctx, logger.Root(), cfg, inputPaths, output, factory)
	if err := output.Close(); err != nil && encodeErr == nil {
		encodeErr = fmt.Errorf("failed to close output: %w", err)
	}
	if encodeErr != nil {
		logger.Errorf("encoding aborted: %s", encodeErr.Error())
		stop()
		os.Exit(1)
	}
}

// encodeInputs encodes the inputs in order to the output, with "-" for stdin
func encodeInputs(ctx context.Context, parentLogger logger.Logger, cfg stream.Config, inputPaths []string, output io.Writer, factory *metrics.MetricFactory) error {
	encMetrics := encoder.NewMetrics(factory)
	enc, err := encoder.NewEncoder(parentLogger, cfg.Encoder, encMetrics)
	if err != nil {
		return err
	}
	driver := stream.NewDriver(parentLogger, enc, cfg.Format, cfg.MaxRecordBytes(), factory)

	for _, path := range inputPaths {
		inputLogger := parentLogger.WithField(defs.LabelInput, path)
		input := io.ReadCloser(os.Stdin)
		if path != stdioPath {
			input, err = stream.OpenInput(path)
			if err != nil {
				return fmt.Errorf("failed to open input: %w", err)
			}
		}
		count, err := driver.Run(ctx, input, output)
		input.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		inputLogger.Infof("encoded %d records", count)
	}
	parentLogger.Infof("done: %.0f records, %.0f bytes", encMetrics.TotalRecords(), encMetrics.TotalBytes())
	return nil
}
