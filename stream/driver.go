// Package stream drives encoders over input streams, one output line per input record in arrival order
package stream

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/relex/gotils/logger"
	"github.com/relex/slog-syslog/defs"
	"github.com/relex/slog-syslog/encoder"
	"github.com/relex/slog-syslog/metrics"
	"github.com/relex/slog-syslog/record"
)

// Driver reads records from an input stream and writes encoded lines to an output stream
type Driver struct {
	logger           logger.Logger
	encoder          *encoder.Encoder
	format           InputFormat
	maxRecordSize    int
	inputRecords     prometheus.Counter
	truncatedRecords prometheus.Counter
}

// NewDriver creates a Driver. maxRecordSize only applies to FormatLines.
func NewDriver(parentLogger logger.Logger, enc *encoder.Encoder, format InputFormat, maxRecordSize int, factory *metrics.MetricFactory) *Driver {
	if maxRecordSize <= 0 {
		maxRecordSize = defs.InputMaxRecordBytes
	}
	labels := []string{defs.LabelInput}
	values := []string{string(format)}
	return &Driver{
		logger:           parentLogger.WithField(defs.LabelComponent, "StreamDriver"),
		encoder:          enc,
		format:           format,
		maxRecordSize:    maxRecordSize,
		inputRecords:     factory.AddOrGetCounter("input_records_total", "Numbers of records read from inputs", labels, values),
		truncatedRecords: factory.AddOrGetCounter("truncated_records_total", "Numbers of input records truncated due to maxRecordSize", labels, values),
	}
}

// Run encodes all records from input until EOF or cancellation, returning the numbers of records written
func (d *Driver) Run(ctx context.Context, input io.Reader, output io.Writer) (int, error) {
	writer := bufio.NewWriter(output)
	var count int
	var err error
	switch d.format {
	case FormatMsgpack:
		count, err = d.runMsgpack(ctx, input, writer)
	default:
		count, err = d.runLines(ctx, input, writer)
	}
	if ferr := writer.Flush(); ferr != nil && err == nil {
		err = fmt.Errorf("failed to flush output: %w", ferr)
	}
	return count, err
}

func (d *Driver) runLines(ctx context.Context, input io.Reader, writer *bufio.Writer) (int, error) {
	reader := bufio.NewReaderSize(input, defs.InputInitialBufferBytes)
	lineBuf := make([]byte, 0, defs.InputInitialBufferBytes)
	outBuf := make([]byte, 0, defs.OutputInitialLineBytes)
	count := 0
	for {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		line, truncated, err := d.readLine(reader, lineBuf)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return count, nil
			}
			return count, fmt.Errorf("failed to read input: %w", err)
		}
		d.inputRecords.Inc()
		if truncated {
			d.truncatedRecords.Inc()
			d.logger.Warnf("record truncated to %d bytes", d.maxRecordSize)
		}
		outBuf = d.encoder.EncodeTo(outBuf[:0], string(line))
		if _, err := writer.Write(outBuf); err != nil {
			return count, fmt.Errorf("failed to write output: %w", err)
		}
		count++
		lineBuf = line
	}
}

// readLine reads the next line without its line terminator, truncated to maxRecordSize
func (d *Driver) readLine(reader *bufio.Reader, buf []byte) ([]byte, bool, error) {
	buf = buf[:0]
	truncated := false
	for {
		fragment, isPrefix, err := reader.ReadLine()
		if err != nil {
			return buf, truncated, err
		}
		if room := d.maxRecordSize - len(buf); len(fragment) > room {
			fragment = fragment[:room]
			truncated = true
		}
		buf = append(buf, fragment...)
		if !isPrefix {
			return buf, truncated, nil
		}
	}
}

func (d *Driver) runMsgpack(ctx context.Context, input io.Reader, writer *bufio.Writer) (int, error) {
	decoder := record.NewMsgpackDecoder(bufio.NewReaderSize(input, defs.InputInitialBufferBytes))
	outBuf := make([]byte, 0, defs.OutputInitialLineBytes)
	count := 0
	for {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		value, err := decoder.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return count, nil
			}
			return count, fmt.Errorf("failed to decode msgpack input after %d records: %w", count, err)
		}
		d.inputRecords.Inc()
		outBuf = d.encoder.EncodeTo(outBuf[:0], value)
		if _, err := writer.Write(outBuf); err != nil {
			return count, fmt.Errorf("failed to write output: %w", err)
		}
		count++
	}
}
