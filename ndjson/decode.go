// Package ndjson reads message streams: one JSON envelope per line,
// optionally gzip, zstd or lz4 compressed.
package ndjson

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/teranos/runquery/errors"
	"github.com/teranos/runquery/logger"
	"github.com/teranos/runquery/messages"
)

// Handler receives each decoded envelope. Returning an error stops
// decoding.
type Handler func(*messages.Envelope) error

// Decode reads every envelope from r, calling fn for each in order. Blank
// lines are skipped. Errors name the offending line. It returns the
// number of envelopes handed to fn.
func Decode(r io.Reader, fn Handler) (int, error) {
	br, c, release, err := decompress(r)
	if err != nil {
		return 0, err
	}
	defer release()
	if c != CompressionNone {
		logger.Debugw("decompressing message stream", logger.FieldFormat, c.String())
	}

	d := &lineDecoder{fn: fn}
	for {
		line, readErr := br.ReadBytes('\n')
		if len(line) > 0 {
			if err := d.line(line); err != nil {
				return d.count, err
			}
		}
		if readErr == io.EOF {
			return d.count, nil
		}
		if readErr != nil {
			return d.count, errors.Wrapf(readErr, "line %d", d.lineNo+1)
		}
	}
}

// Encode writes envelopes as ndjson.
func Encode(w io.Writer, envs ...*messages.Envelope) error {
	enc := json.NewEncoder(w)
	for _, env := range envs {
		if err := enc.Encode(env); err != nil {
			return errors.Wrapf(err, "failed to encode %s", env.Kind())
		}
	}
	return nil
}

// lineDecoder tracks the line number across calls so that Decode and
// Follow report positions the same way.
type lineDecoder struct {
	fn     Handler
	lineNo int
	count  int
}

func (d *lineDecoder) line(raw []byte) error {
	d.lineNo++
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}

	var env messages.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return errors.WithHint(
			errors.Wrapf(err, "line %d: malformed envelope", d.lineNo),
			"each line must hold exactly one JSON message envelope")
	}
	if env.Kind() == messages.KindUnknown {
		logger.Debugw("skipping envelope of unknown kind", logger.FieldLine, d.lineNo)
	}
	if err := d.fn(&env); err != nil {
		return errors.Wrapf(err, "line %d", d.lineNo)
	}
	d.count++
	return nil
}

// lines splits buffered bytes into complete lines, returning the unfinished
// remainder.
func lines(buf []byte) (complete [][]byte, rest []byte) {
	for {
		i := bytes.IndexByte(buf, '\n')
		if i < 0 {
			return complete, buf
		}
		complete = append(complete, buf[:i+1])
		buf = buf[i+1:]
	}
}
