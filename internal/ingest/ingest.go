// Package ingest feeds message files into a store.
package ingest

import (
	"context"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/teranos/runquery/errors"
	"github.com/teranos/runquery/logger"
	"github.com/teranos/runquery/messages"
	"github.com/teranos/runquery/ndjson"
	"github.com/teranos/runquery/store"
)

// ExpandPaths resolves glob arguments ("reports/**/*.ndjson") to files.
// Plain paths pass through unchanged so that a missing file is reported
// when it is opened. A glob matching nothing is an error. Duplicates are
// dropped, keeping the first occurrence.
func ExpandPaths(args []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, arg := range args {
		if !isGlob(arg) {
			add(arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Wrapf(err, "invalid pattern %q", arg)
		}
		if len(matches) == 0 {
			return nil, errors.WithHint(
				errors.Newf("no files match %q", arg),
				"quote the pattern so that ** reaches runquery instead of the shell")
		}
		sort.Strings(matches)
		for _, m := range matches {
			add(m)
		}
	}
	return out, nil
}

func isGlob(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

// Result describes one ingested file.
type Result struct {
	Path     string
	Messages int
	Elapsed  time.Duration
}

// Files decodes every file into repo, in order. "-" reads stdin. It stops
// at the first error or when ctx is cancelled between files.
func Files(ctx context.Context, repo *store.Repository, paths []string) ([]Result, error) {
	results := make([]Result, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		r, err := File(ctx, repo, path)
		if err != nil {
			return results, err
		}
		results = append(results, r)
	}
	return results, nil
}

// File decodes one file into repo.
func File(ctx context.Context, repo *store.Repository, path string) (Result, error) {
	return Each(ctx, path, func(env *messages.Envelope) error {
		repo.Update(env)
		return nil
	})
}

// Each decodes one file, handing every envelope to fn. "-" reads stdin.
func Each(ctx context.Context, path string, fn ndjson.Handler) (Result, error) {
	log := logger.LoggerFromContext(logger.WithSource(logger.WithComponent(ctx, "ingest"), path))
	start := time.Now()

	f := os.Stdin
	if path != "-" {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return Result{Path: path}, errors.Wrapf(err, "failed to open %s", path)
		}
		defer f.Close()
	}

	n, err := ndjson.Decode(f, fn)
	result := Result{Path: path, Messages: n, Elapsed: time.Since(start)}
	if err != nil {
		return result, errors.Wrapf(err, "failed to read %s", path)
	}

	log.Infow("ingested file",
		logger.FieldCount, n,
		logger.FieldDurationMS, result.Elapsed.Milliseconds())
	return result, nil
}
