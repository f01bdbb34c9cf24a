package container

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/ssargent/brokkr/pkg/codec"
	"github.com/ssargent/brokkr/pkg/schema"
)

// Magic identifies a Brokkr container file.
var Magic = [4]byte{'b', 'r', 'k', 'c'}

// Version is the format version byte written after the magic.
const Version byte = 0x01

// SyncSize is the length of the sync marker repeated at block boundaries.
const SyncSize = 16

type state int

const (
	stateUnopened state = iota
	stateHeaderWritten
	stateBlockFlushed
	stateClosed
)

// WriterConfig holds configuration for a container writer.
type WriterConfig struct {
	FilePath   string
	BufferSize int  // write buffer size; 0 uses a 64KiB default
	Fsync      bool // fsync before releasing the file on Close
}

// Writer frames encoded records into a self-describing container file:
//
//	MAGIC(4) | VERSION(1) | SCHEMA_BLOB(varint-length-prefixed) | SYNC(16)
//	[ COUNT(varint) | BYTELEN(varint) | RECORD_BYTES... | SYNC(16) ]*
//
// The sync marker is generated fresh per file. Each block is composed in
// memory and handed to the buffered writer as a single write, so a failed
// write never leaves a partial block ahead of the last completed one.
type Writer struct {
	config WriterConfig
	file   *os.File
	out    *bufio.Writer
	marker [SyncSize]byte
	state  state
	mutex  sync.Mutex

	blocks       int64
	recordsTotal int64
}

// NewWriter creates an unopened writer. No file is touched until Open.
func NewWriter(config WriterConfig) *Writer {
	if config.BufferSize <= 0 {
		config.BufferSize = 64 * 1024
	}
	return &Writer{config: config}
}

// Open creates (or truncates) the output file and writes the container
// header: magic, version, the schema's raw source text, and a freshly
// generated random 16-byte sync marker.
func (w *Writer) Open(s *schema.Schema) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.state != stateUnopened {
		return fmt.Errorf("container: open called twice")
	}

	if err := os.MkdirAll(filepath.Dir(w.config.FilePath), 0750); err != nil {
		return err
	}
	file, err := os.OpenFile(w.config.FilePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	w.file = file
	w.out = bufio.NewWriterSize(file, w.config.BufferSize)
	w.marker = uuid.New()

	header := make([]byte, 0, len(Magic)+1+len(s.Source())+SyncSize+8)
	header = append(header, Magic[:]...)
	header = append(header, Version)
	header = codec.AppendBytes(header, s.Source())
	header = append(header, w.marker[:]...)

	if _, err := w.out.Write(header); err != nil {
		_ = file.Close()
		w.state = stateClosed
		return err
	}

	w.state = stateHeaderWritten
	return nil
}

// WriteBlock frames the given encoded records as one block: record count,
// total payload byte length, the concatenated records, then the sync
// marker. An empty batch writes nothing.
func (w *Writer) WriteBlock(records [][]byte) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.state != stateHeaderWritten && w.state != stateBlockFlushed {
		return fmt.Errorf("container: write on unopened or closed writer")
	}
	if len(records) == 0 {
		return nil
	}

	payloadLen := 0
	for _, r := range records {
		payloadLen += len(r)
	}

	block := make([]byte, 0, payloadLen+SyncSize+16)
	block = codec.AppendLong(block, int64(len(records)))
	block = codec.AppendLong(block, int64(payloadLen))
	for _, r := range records {
		block = append(block, r...)
	}
	block = append(block, w.marker[:]...)

	if _, err := w.out.Write(block); err != nil {
		return err
	}

	w.blocks++
	w.recordsTotal += int64(len(records))
	w.state = stateBlockFlushed
	return nil
}

// Close flushes buffered output and releases the file handle. Closing an
// already-closed (or never-opened) writer is a no-op.
func (w *Writer) Close() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.state == stateClosed || w.state == stateUnopened {
		w.state = stateClosed
		return nil
	}
	w.state = stateClosed

	if err := w.out.Flush(); err != nil {
		_ = w.file.Close()
		return err
	}
	if w.config.Fsync {
		if err := w.file.Sync(); err != nil {
			_ = w.file.Close()
			return err
		}
	}
	return w.file.Close()
}

// Blocks returns the number of blocks written so far.
func (w *Writer) Blocks() int64 {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.blocks
}

// Records returns the number of records written so far.
func (w *Writer) Records() int64 {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.recordsTotal
}

// Path returns the output file path.
func (w *Writer) Path() string {
	return w.config.FilePath
}
