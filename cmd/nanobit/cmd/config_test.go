package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/nanobit/format"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "nanobit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Config
		wantErr bool
	}{
		{
			name:    "empty file keeps defaults",
			content: "",
			want:    DefaultConfig(),
		},
		{
			name: "full",
			content: `compression:
  format: zstd
  level: best
output_dir: /tmp/out
jobs: 8
`,
			want: Config{
				Compression: CompressionConfig{Format: format.CompressionZstd, Level: format.LevelBest},
				OutputDir:   "/tmp/out",
				Jobs:        8,
			},
		},
		{
			name:    "partial",
			content: "compression:\n  format: Snappy\n",
			want: Config{
				Compression: CompressionConfig{Format: format.CompressionSnappy, Level: format.LevelDefault},
				Jobs:        4,
			},
		},
		{name: "unknown format", content: "compression:\n  format: brotli\n", wantErr: true},
		{name: "unknown level", content: "compression:\n  level: max\n", wantErr: true},
		{name: "custom format", content: "compression:\n  format: custom\n", wantErr: true},
		{name: "negative jobs", content: "jobs: -1\n", wantErr: true},
		{name: "malformed yaml", content: "compression: [\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, tt.content))
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestConfig_FlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	src, _ := writePayload(t, dir, "a.bin")
	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(outDir, 0o755))

	cfgPath := writeConfig(t, "compression:\n  format: zstd\noutput_dir: "+outDir+"\n")

	_, err := runCommand(t, "--config", cfgPath, "compress", src)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, "a.bin.zst"))

	_, err = runCommand(t, "--config", cfgPath, "compress", "-f", "lz4", "-o", dir, src)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "a.bin.lz4"))

	_, err = runCommand(t, "--config", filepath.Join(dir, "missing.yaml"), "probe", src)
	require.Error(t, err)
}
