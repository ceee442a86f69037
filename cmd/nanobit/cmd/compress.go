package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/nanobit"
	"github.com/arloliu/nanobit/compress"
	"github.com/arloliu/nanobit/format"
)

// extensions maps each backend to the suffix of its compressed files.
var extensions = map[format.CompressionFormat]string{
	format.CompressionLZ4:    ".lz4",
	format.CompressionZstd:   ".zst",
	format.CompressionSnappy: ".sz",
}

type compressFlags struct {
	format    string
	level     string
	outputDir string
	force     bool
}

func newCompressCmd(a *app) *cobra.Command {
	var flags compressFlags

	compressCmd := &cobra.Command{
		Use:   "compress <file>...",
		Short: "Compress files behind a one-byte format tag",
		Long: `Compress each file with the selected backend.

The output keeps the input name with a format suffix (.lz4, .zst or .sz).
Any file can be compressed; nanobit payloads are compressed including their envelope.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, level, err := a.resolveCompression(cmd, flags)
			if err != nil {
				return err
			}

			dir := a.resolveOutputDir(cmd, flags.outputDir)

			return a.forEachFile(cmd, args, func(_ context.Context, path string) (string, error) {
				return compressFile(path, dir, f, level, flags.force)
			})
		},
	}

	compressCmd.Flags().StringVarP(&flags.format, "format", "f", "", "compression format: lz4, zstd or snappy")
	compressCmd.Flags().StringVarP(&flags.level, "level", "l", "", "compression level: fastest, default or best")
	compressCmd.Flags().StringVarP(&flags.outputDir, "output-dir", "o", "", "directory for output files (default next to input)")
	compressCmd.Flags().BoolVar(&flags.force, "force", false, "overwrite existing output files")

	return compressCmd
}

func newDecompressCmd(a *app) *cobra.Command {
	var flags compressFlags

	decompressCmd := &cobra.Command{
		Use:   "decompress <file>...",
		Short: "Restore compressed files",
		Long: `Decompress each file, detecting the backend from its leading tag byte.

A known format suffix is stripped from the output name; other names get ".out".`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.resolveOutputDir(cmd, flags.outputDir)

			return a.forEachFile(cmd, args, func(_ context.Context, path string) (string, error) {
				return decompressFile(path, dir, flags.force)
			})
		},
	}

	decompressCmd.Flags().StringVarP(&flags.outputDir, "output-dir", "o", "", "directory for output files (default next to input)")
	decompressCmd.Flags().BoolVar(&flags.force, "force", false, "overwrite existing output files")

	return decompressCmd
}

// resolveCompression applies flags over the configured format and level.
func (a *app) resolveCompression(cmd *cobra.Command, flags compressFlags) (format.CompressionFormat, format.CompressionLevel, error) {
	f := a.cfg.Compression.Format
	level := a.cfg.Compression.Level

	if cmd.Flags().Changed("format") {
		parsed, err := format.ParseCompressionFormat(flags.format)
		if err != nil {
			return 0, 0, err
		}
		f = parsed
	}

	if cmd.Flags().Changed("level") {
		parsed, err := format.ParseCompressionLevel(flags.level)
		if err != nil {
			return 0, 0, err
		}
		level = parsed
	}

	if _, ok := extensions[f]; !ok {
		return 0, 0, fmt.Errorf("format %s cannot be used for compression", f)
	}

	return f, level, nil
}

func (a *app) resolveOutputDir(cmd *cobra.Command, flagValue string) string {
	if cmd.Flags().Changed("output-dir") {
		return flagValue
	}

	return a.cfg.OutputDir
}

func compressFile(path, dir string, f format.CompressionFormat, level format.CompressionLevel, force bool) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	compressed, err := nanobit.Compress(data, f, level)
	if err != nil {
		return "", err
	}

	out := outputPath(dir, path, filepath.Base(path)+extensions[f])
	if err := writeFile(out, compressed, force); err != nil {
		return "", err
	}

	stats := compress.Stats{Format: f, OriginalSize: int64(len(data)), CompressedSize: int64(len(compressed))}

	return fmt.Sprintf("%s -> %s (%s/%s, %d -> %d bytes, %.1f%% saved)",
		path, out, f, level, stats.OriginalSize, stats.CompressedSize, stats.SpaceSavings()), nil
}

func decompressFile(path, dir string, force bool) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	f, err := compress.DetectFormat(data)
	if err != nil {
		return "", err
	}

	raw, err := nanobit.Decompress(data)
	if err != nil {
		return "", err
	}

	out := outputPath(dir, path, restoredName(filepath.Base(path)))
	if err := writeFile(out, raw, force); err != nil {
		return "", err
	}

	kind := "data"
	if nanobit.IsSerialized(raw) {
		kind = "nanobit payload"
	}

	return fmt.Sprintf("%s -> %s (%s, %d -> %d bytes, %s)", path, out, f, len(data), len(raw), kind), nil
}

// restoredName strips a known compression suffix from name.
func restoredName(name string) string {
	for _, ext := range extensions {
		if base, ok := strings.CutSuffix(name, ext); ok && base != "" {
			return base
		}
	}

	return name + ".out"
}
