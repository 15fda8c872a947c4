package normalizer

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/0xc0d3d00d/candleconv/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
)

var (
	ErrSourceNotFound = errors.New("source file not found")
	ErrEmptySource    = errors.New("source file is empty")
)

// Result of a conversion. Converted is the success signal; all counts are
// zero when the pass fails.
type Result struct {
	Converted     int
	ShortRows     int
	BadTimestamps int
}

type Normalizer struct {
	fs         afero.Fs
	metrics    *metrics
	registerer prometheus.Registerer
}

type Option func(*Normalizer)

// WithRegisterer exposes conversion counters on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(n *Normalizer) {
		n.registerer = reg
	}
}

func New(fs afero.Fs, opts ...Option) (*Normalizer, error) {
	n := &Normalizer{
		fs:      fs,
		metrics: newMetrics(),
	}

	for _, opt := range opts {
		opt(n)
	}

	if n.registerer != nil {
		if err := n.metrics.register(n.registerer); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}

	return n, nil
}

// Convert streams src into dst in the normalized schema. The first line of
// src is always discarded. Rows that are too short or carry an unparseable
// timestamp are skipped; any other failure aborts the pass and leaves
// whatever was already flushed in dst.
func (n *Normalizer) Convert(ctx context.Context, src, dst string) (Result, error) {
	slog.DebugContext(ctx, "convert", "source", src, "destination", dst)

	in, err := n.fs.Open(src)
	if errors.Is(err, os.ErrNotExist) {
		return Result{}, fmt.Errorf("%w: %s", ErrSourceNotFound, src)
	}
	if err != nil {
		return Result{}, fmt.Errorf("failed to open source file: %w", err)
	}
	defer in.Close()

	err = n.fs.MkdirAll(filepath.Dir(dst), 0755)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create destination directory: %w", err)
	}

	out, err := n.fs.Create(dst)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create destination file: %w", err)
	}

	res, err := n.convert(ctx, in, out)
	if cerr := out.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("failed to close destination file: %w", cerr)
	}
	if err != nil {
		return Result{}, err
	}

	slog.DebugContext(ctx, "convert done",
		"converted", res.Converted,
		"short_rows", res.ShortRows,
		"bad_timestamps", res.BadTimestamps,
	)
	return res, nil
}

func (n *Normalizer) convert(ctx context.Context, in io.Reader, out io.Writer) (Result, error) {
	w := csv.NewWriter(out)
	if err := w.Write(domain.Header); err != nil {
		return Result{}, fmt.Errorf("failed to write header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return Result{}, fmt.Errorf("failed to write header: %w", err)
	}

	br := bufio.NewReader(newSourceReader(in))

	header, err := br.ReadString('\n')
	if err == io.EOF && header == "" {
		return Result{}, ErrEmptySource
	}
	if err != nil && err != io.EOF {
		return Result{}, fmt.Errorf("failed to read source header: %w", err)
	}
	if !validUTF8([]string{header}) {
		return Result{}, ErrInvalidEncoding
	}
	slog.DebugContext(ctx, "source header", "header", strings.TrimRight(header, "\r\n"))

	r := csv.NewReader(br)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.ReuseRecord = true

	var (
		res    Result
		record = make([]string, 0, len(domain.Header))
	)
	for {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("failed to read source row: %w", err)
		}
		if !validUTF8(fields) {
			line, _ := r.FieldPos(0)
			return Result{}, fmt.Errorf("%w: line %d", ErrInvalidEncoding, line+1)
		}

		row := decodeRow(fields)
		n.metrics.observe(row)

		switch row.skip {
		case skipShortRow:
			res.ShortRows++
			continue
		case skipBadTimestamp:
			slog.WarnContext(ctx, "failed to parse timestamp", "timestamp", fields[fieldTimestamp], "error", row.err)
			res.BadTimestamps++
			continue
		}

		record = row.candle.Record(record)
		if err := w.Write(record); err != nil {
			return Result{}, fmt.Errorf("failed to write row: %w", err)
		}
		res.Converted++
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return Result{}, fmt.Errorf("failed to flush destination file: %w", err)
	}

	return res, nil
}
