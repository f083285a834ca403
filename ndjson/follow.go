package ndjson

import (
	"context"
	"io"
	"os"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/runquery/errors"
	"github.com/teranos/runquery/logger"
)

const followReadSize = 64 * 1024

// Follow decodes the file at path, then keeps decoding lines appended to
// it until ctx is cancelled or the file is removed. A trailing line is only
// decoded once its newline arrives. Compressed files cannot be followed.
func Follow(ctx context.Context, path string, fn Handler) error {
	log := logger.LoggerFromContext(logger.WithSource(logger.WithComponent(ctx, "ndjson"), path))

	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	head := make([]byte, 4)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return errors.Wrapf(err, "failed to read %s", path)
	}
	if c := Detect(head[:n]); c != CompressionNone {
		return errors.WithHint(
			errors.Newf("%s is %s compressed", path, c),
			"decode compressed files once instead of following them")
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return errors.Wrapf(err, "failed to rewind %s", path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create fsnotify watcher")
	}
	defer watcher.Close()
	if err := watcher.Add(path); err != nil {
		return errors.Wrapf(err, "failed to watch %s", path)
	}

	t := &tail{file: f, decoder: &lineDecoder{fn: fn}}
	if err := t.drain(); err != nil {
		return err
	}
	log.Infow("following message stream", logger.FieldCount, t.decoder.count)

	for {
		select {
		case <-ctx.Done():
			log.Debugw("stopped following", logger.FieldCount, t.decoder.count)
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			switch {
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				log.Warnw("followed file went away", "op", event.Op.String())
				return nil
			case event.Op&fsnotify.Write == fsnotify.Write:
				if err := t.drain(); err != nil {
					return err
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnw("file watcher error", logger.FieldError, err)
		}
	}
}

// tail reads a growing file, holding back an unterminated final line.
type tail struct {
	file    *os.File
	offset  int64
	pending []byte
	decoder *lineDecoder
}

func (t *tail) drain() error {
	if info, err := t.file.Stat(); err == nil && info.Size() < t.offset {
		logger.Warnw("followed file was truncated, starting over",
			logger.FieldSize, info.Size())
		t.offset = 0
		t.pending = nil
		if _, err := t.file.Seek(0, io.SeekStart); err != nil {
			return errors.Wrap(err, "failed to rewind truncated file")
		}
	}

	buf := make([]byte, followReadSize)
	for {
		n, err := t.file.Read(buf)
		if n > 0 {
			t.offset += int64(n)
			complete, rest := lines(append(t.pending, buf[:n]...))
			t.pending = append([]byte(nil), rest...)
			for _, line := range complete {
				if err := t.decoder.line(line); err != nil {
					return err
				}
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "failed to read appended data")
		}
	}
}
