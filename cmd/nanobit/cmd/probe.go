package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/nanobit"
	"github.com/arloliu/nanobit/codec"
	"github.com/arloliu/nanobit/compress"
)

// probeResult classifies a file's contents.
type probeResult struct {
	payload    bool // nanobit envelope, possibly behind compression
	compressed bool
	line       string
}

func newProbeCmd(a *app) *cobra.Command {
	var strict bool

	probeCmd := &cobra.Command{
		Use:   "probe <file>...",
		Short: "Report whether files hold nanobit payloads",
		Long: `Probe each file for a nanobit envelope, either at the start of the file or
behind a compression tag.

With --strict the command fails when any file is not a nanobit payload.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.forEachFile(cmd, args, func(_ context.Context, path string) (string, error) {
				data, err := os.ReadFile(path)
				if err != nil {
					return "", err
				}

				res := probe(data)
				if strict && !res.payload {
					return "", fmt.Errorf("not a nanobit payload")
				}

				return path + ": " + res.line, nil
			})
		},
	}

	probeCmd.Flags().BoolVar(&strict, "strict", false, "fail on files that are not nanobit payloads")

	return probeCmd
}

// probe never fails; unreadable content is reported as foreign data.
func probe(data []byte) probeResult {
	if nanobit.IsSerialized(data) {
		return probeResult{
			payload: true,
			line:    fmt.Sprintf("nanobit payload, version %d, %d bytes", envelopeVersion(data), len(data)),
		}
	}

	f, err := compress.DetectFormat(data)
	if err != nil {
		return probeResult{line: "not a nanobit payload"}
	}

	raw, err := nanobit.Decompress(data)
	if err != nil {
		return probeResult{line: "not a nanobit payload"}
	}

	if !nanobit.IsSerialized(raw) {
		return probeResult{
			compressed: true,
			line:       fmt.Sprintf("%s-compressed data, %d -> %d bytes, no nanobit envelope", f, len(data), len(raw)),
		}
	}

	return probeResult{
		payload:    true,
		compressed: true,
		line: fmt.Sprintf("%s-compressed nanobit payload, version %d, %d -> %d bytes",
			f, envelopeVersion(raw), len(data), len(raw)),
	}
}

// envelopeVersion returns the version byte of a serialized payload.
func envelopeVersion(data []byte) uint8 {
	dec, err := codec.NewDecoder(data)
	if err != nil {
		return 0
	}

	return dec.Version()
}
