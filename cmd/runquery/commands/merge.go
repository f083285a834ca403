package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/runquery/errors"
	"github.com/teranos/runquery/internal/ingest"
	"github.com/teranos/runquery/logger"
	"github.com/teranos/runquery/messages"
	"github.com/teranos/runquery/ndjson"
	"github.com/teranos/runquery/sym"
)

func newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge <file|glob>...",
		Short: sym.Merge + " Join message files into one stream",
		Long: `Join message files into one stream, in argument order.

Inputs may be compressed. The output is compressed according to its
extension (.gz, .zst, .lz4) unless --compression says otherwise. Without
--output the stream is written to standard output.`,
		Example: `  runquery merge 'shards/**/*.ndjson' -o run.ndjson.zst
  runquery merge run.ndjson.gz --compression none | jq .meta`,
		Args: cobra.MinimumNArgs(1),
		RunE: runMerge,
	}
	cmd.Flags().StringP("output", "o", "-", "Output file, - for standard output")
	cmd.Flags().String("compression", "", "Output compression: none, gzip, zstd, lz4 (default from the output extension)")
	return cmd
}

func runMerge(cmd *cobra.Command, args []string) error {
	log := logger.ComponentLogger("merge")

	paths, err := ingest.ExpandPaths(args)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	compression := ndjson.CompressionForPath(output)
	if cmd.Flags().Changed("compression") {
		name, _ := cmd.Flags().GetString("compression")
		if compression, err = ndjson.ParseCompression(name); err != nil {
			return err
		}
	}

	var out io.Writer = cmd.OutOrStdout()
	if output != "-" {
		f, err := os.Create(output)
		if err != nil {
			return errors.Wrapf(err, "failed to create %s", output)
		}
		defer f.Close()
		out = f
	}

	w, err := ndjson.NewWriter(out, compression)
	if err != nil {
		return err
	}
	total := 0
	for _, path := range paths {
		result, err := ingest.Each(cmd.Context(), path, func(env *messages.Envelope) error {
			return ndjson.Encode(w, env)
		})
		total += result.Messages
		if err != nil {
			_ = w.Close()
			return err
		}
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "failed to finish output stream")
	}

	log.Infow("merged message files",
		logger.FieldCount, total,
		logger.FieldPath, output,
		logger.FieldFormat, compression.String())
	return nil
}
