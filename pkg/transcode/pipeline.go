package transcode

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log"

	json "github.com/goccy/go-json"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/brokkr/pkg/codec"
	"github.com/ssargent/brokkr/pkg/config"
	"github.com/ssargent/brokkr/pkg/container"
	"github.com/ssargent/brokkr/pkg/schema"
)

// maxLineBytes bounds a single input line; lines are one JSON record each.
const maxLineBytes = 4 * 1024 * 1024

// Stats summarizes a completed (or aborted) conversion run.
type Stats struct {
	RecordsRead    int64
	RecordsWritten int64
	RecordsSkipped int64
	BlocksWritten  int64
}

// Pipeline is the single-owner pump driving one conversion run: read a
// line, coerce it onto the schema, encode it, and frame it into the
// container. It owns the writer exclusively; nothing here is shared
// across goroutines.
type Pipeline struct {
	schema *schema.Schema
	writer *container.Writer
	config *config.Config
	runID  string
}

// New creates a pipeline for one run. The writer must be unopened; the
// pipeline opens it and always closes it, so an aborted run still leaves
// a structurally valid container behind.
func New(s *schema.Schema, w *container.Writer, cfg *config.Config) *Pipeline {
	return &Pipeline{
		schema: s,
		writer: w,
		config: cfg,
		runID:  ksuid.New().String(),
	}
}

// RunID returns the identifier stamped on this run's log lines.
func (p *Pipeline) RunID() string {
	return p.runID
}

// Run pumps newline-delimited JSON records from input into the container.
// Per-record failures abort the run under the fail policy or are logged
// and counted under the skip policy; schema and I/O failures always
// abort. The container is closed on every path, so the output holds all
// completed blocks even when the run fails.
func (p *Pipeline) Run(ctx context.Context, input io.Reader) (Stats, error) {
	var stats Stats

	if err := p.writer.Open(p.schema); err != nil {
		return stats, err
	}
	defer func() {
		_ = p.writer.Close()
	}()

	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var batch [][]byte
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := p.writer.WriteBlock(batch); err != nil {
			return err
		}
		stats.RecordsWritten += int64(len(batch))
		stats.BlocksWritten++
		batch = batch[:0]
		return nil
	}

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		stats.RecordsRead++

		encoded, err := p.encodeLine(line)
		if err != nil {
			if p.config.OnError == config.OnErrorSkip {
				log.Printf("run %s: record %d skipped: %v", p.runID, stats.RecordsRead, err)
				stats.RecordsSkipped++
				continue
			}
			return stats, fmt.Errorf("record %d: %w", stats.RecordsRead, err)
		}

		batch = append(batch, encoded)
		if len(batch) >= p.config.BlockSize {
			if err := flush(); err != nil {
				return stats, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("reading input: %w", err)
	}

	if err := flush(); err != nil {
		return stats, err
	}
	if err := p.writer.Close(); err != nil {
		return stats, err
	}
	return stats, nil
}

// encodeLine converts one input line into its encoded record bytes.
func (p *Pipeline) encodeLine(line []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(line))
	dec.UseNumber()

	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, &ParseError{Detail: fmt.Sprintf("malformed JSON: %v", err)}
	}

	values, err := coerceRecord(p.schema, raw)
	if err != nil {
		return nil, err
	}
	return codec.EncodeRecord(p.schema, values)
}
