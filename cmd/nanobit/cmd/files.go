package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// fileFunc processes one input file and returns the line to report for it.
type fileFunc func(ctx context.Context, path string) (string, error)

// forEachFile runs fn over paths with at most cfg.Jobs files in flight.
// Report lines keep the order of paths. The first failure cancels the files
// not yet started; lines of files that completed are still printed.
func (a *app) forEachFile(cmd *cobra.Command, paths []string, fn fileFunc) error {
	lines := make([]string, len(paths))

	g, ctx := errgroup.WithContext(cmd.Context())
	if a.cfg.Jobs > 0 {
		g.SetLimit(a.cfg.Jobs)
	}

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			line, err := fn(ctx, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			lines[i] = line

			return nil
		})
	}

	err := g.Wait()
	for _, line := range lines {
		if line != "" {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
	}

	return err
}

// outputPath places name in dir, or next to src when dir is empty.
func outputPath(dir, src, name string) string {
	if dir == "" {
		dir = filepath.Dir(src)
	}

	return filepath.Join(dir, name)
}

// writeFile writes data to path. Existing files are kept unless force is set.
// A file that could not be written completely is removed.
func writeFile(path string, data []byte, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		}

		return err
	}

	return writeAndClose(f, path, data)
}

// writeAndClose writes data to w, which was opened at path, and closes it.
// path is removed when either step fails.
func writeAndClose(w io.WriteCloser, path string, data []byte) error {
	_, err := w.Write(data)
	if closeErr := w.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return err
	}

	return nil
}
