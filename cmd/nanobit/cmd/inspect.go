package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/nanobit"
	"github.com/arloliu/nanobit/compress"
)

func newInspectCmd(a *app) *cobra.Command {
	inspectCmd := &cobra.Command{
		Use:   "inspect <file>...",
		Short: "Show sizes, compression details and digests of files",
		Long: `Inspect each file and print its size, xxHash64 digest, compression
format and ratio, and the nanobit envelope version when present.

Digests of compressed files are reported for both the stored and the restored bytes.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.forEachFile(cmd, args, func(_ context.Context, path string) (string, error) {
				data, err := os.ReadFile(path)
				if err != nil {
					return "", err
				}

				return inspect(path, data), nil
			})
		},
	}

	return inspectCmd
}

func inspect(path string, data []byte) string {
	var sb strings.Builder

	field := func(name, format string, args ...any) {
		fmt.Fprintf(&sb, "  %-12s "+format+"\n", append([]any{name + ":"}, args...)...)
	}

	sb.WriteString(path + "\n")
	field("size", "%d bytes", len(data))
	field("xxhash", "%016x", nanobit.Checksum(data))

	payload := data
	if !nanobit.IsSerialized(data) {
		if f, err := compress.DetectFormat(data); err == nil {
			if raw, err := nanobit.Decompress(data); err == nil {
				stats := compress.Stats{Format: f, OriginalSize: int64(len(raw)), CompressedSize: int64(len(data))}
				field("compression", "%s", f)
				field("original", "%d bytes", len(raw))
				field("ratio", "%.3f (%.1f%% saved)", stats.Ratio(), stats.SpaceSavings())
				field("raw xxhash", "%016x", nanobit.Checksum(raw))
				payload = raw
			}
		}
	}

	if nanobit.IsSerialized(payload) {
		field("envelope", "%s v%d", nanobit.Magic, envelopeVersion(payload))
	} else {
		field("envelope", "none")
	}

	return strings.TrimSuffix(sb.String(), "\n")
}
