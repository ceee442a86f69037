package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/nanobit"
	"github.com/arloliu/nanobit/format"
	"github.com/arloliu/nanobit/value"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

func writePayload(t *testing.T, dir, name string) (string, []byte) {
	t.Helper()

	data, err := nanobit.Encode(value.Seq(
		value.String(strings.Repeat("nanobit ", 64)),
		value.String(strings.Repeat("payload ", 64)),
	))
	require.NoError(t, err)

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	return path, data
}

func TestCompressDecompressCommand(t *testing.T) {
	for _, f := range format.Formats() {
		t.Run(f.String(), func(t *testing.T) {
			dir := t.TempDir()
			src, data := writePayload(t, dir, "payload.bin")
			outDir := filepath.Join(dir, "out")
			require.NoError(t, os.Mkdir(outDir, 0o755))

			name := strings.ToLower(f.String())
			out, err := runCommand(t, "compress", "-f", name, "-l", "best", src)
			require.NoError(t, err)
			assert.Contains(t, out, src+" -> "+src+extensions[f])

			compressed, err := os.ReadFile(src + extensions[f])
			require.NoError(t, err)
			assert.Equal(t, byte(f), compressed[0])

			out, err = runCommand(t, "decompress", "-o", outDir, src+extensions[f])
			require.NoError(t, err)
			assert.Contains(t, out, "nanobit payload")

			restored, err := os.ReadFile(filepath.Join(outDir, "payload.bin"))
			require.NoError(t, err)
			assert.Equal(t, data, restored)
		})
	}
}

func TestCompressCommand_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	src, _ := writePayload(t, dir, "a.bin")

	_, err := runCommand(t, "compress", src)
	require.NoError(t, err)

	_, err = runCommand(t, "compress", src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = runCommand(t, "compress", "--force", src)
	require.NoError(t, err)
}

func TestCompressCommand_InvalidFlags(t *testing.T) {
	dir := t.TempDir()
	src, _ := writePayload(t, dir, "a.bin")

	_, err := runCommand(t, "compress", "-f", "brotli", src)
	require.Error(t, err)

	_, err = runCommand(t, "compress", "-f", "custom", src)
	require.Error(t, err)

	_, err = runCommand(t, "compress", "-l", "ultra", src)
	require.Error(t, err)

	_, err = runCommand(t, "compress", filepath.Join(dir, "missing.bin"))
	require.Error(t, err)
}

func TestCompressCommand_MultipleFilesKeepOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"c.bin", "a.bin", "b.bin", "d.bin"} {
		p, _ := writePayload(t, dir, name)
		paths = append(paths, p)
	}

	out, err := runCommand(t, append([]string{"compress", "-j", "2", "-f", "zstd"}, paths...)...)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, len(paths))
	for i, p := range paths {
		assert.True(t, strings.HasPrefix(lines[i], p+" -> "), lines[i])
	}
}

func TestDecompressCommand_RejectsForeignData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o644))

	_, err := runCommand(t, "decompress", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestProbeCommand(t *testing.T) {
	dir := t.TempDir()
	src, _ := writePayload(t, dir, "payload.bin")
	plain := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(plain, []byte("plain text"), 0o644))

	_, err := runCommand(t, "compress", "-f", "snappy", src)
	require.NoError(t, err)

	out, err := runCommand(t, "probe", src, src+".sz", plain)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "nanobit payload, version 1")
	assert.Contains(t, lines[1], "Snappy-compressed nanobit payload")
	assert.Contains(t, lines[2], "not a nanobit payload")

	_, err = runCommand(t, "probe", "--strict", src, plain)
	require.Error(t, err)
}

func TestProbe(t *testing.T) {
	data, err := nanobit.Encode(value.Bool(true))
	require.NoError(t, err)

	compressed, err := nanobit.Compress([]byte("not a payload"), format.CompressionLZ4, format.LevelDefault)
	require.NoError(t, err)

	tests := []struct {
		name       string
		data       []byte
		payload    bool
		compressed bool
	}{
		{"empty", nil, false, false},
		{"payload", data, true, false},
		{"compressed foreign data", compressed, false, true},
		{"bad tag", []byte{0x7f, 0x01}, false, false},
		{"corrupt lz4", []byte{0x01, 0xff}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := probe(tt.data)
			assert.Equal(t, tt.payload, res.payload)
			assert.Equal(t, tt.compressed, res.compressed)
		})
	}
}

func TestInspectCommand(t *testing.T) {
	dir := t.TempDir()
	src, data := writePayload(t, dir, "payload.bin")

	_, err := runCommand(t, "compress", "-f", "lz4", src)
	require.NoError(t, err)

	out, err := runCommand(t, "inspect", src, src+".lz4")
	require.NoError(t, err)

	assert.Contains(t, out, "envelope:    NANO v1")
	assert.Contains(t, out, "compression: LZ4")
	assert.Contains(t, out, "xxhash:")
	assert.Equal(t, 2, strings.Count(out, "xxhash:      "))
	// the restored digest of the compressed file matches the source digest
	assert.Equal(t, 2, strings.Count(out, fmt.Sprintf("%016x", nanobit.Checksum(data))))
}

func TestRestoredName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a.bin.lz4", "a.bin"},
		{"a.bin.zst", "a.bin"},
		{"a.sz", "a"},
		{"a.bin", "a.bin.out"},
		{".zst", ".zst.out"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, restoredName(tt.in), tt.in)
	}
}

// shortWriter writes half of each buffer to the file and then fails.
type shortWriter struct {
	*os.File
}

func (w shortWriter) Write(p []byte) (int, error) {
	n, _ := w.File.Write(p[:len(p)/2])
	return n, errors.New("no space left on device")
}

func TestWriteFile_RemovesPartialOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")
	f, err := os.Create(path)
	require.NoError(t, err)

	err = writeAndClose(shortWriter{f}, path, []byte("partial payload"))
	require.Error(t, err)
	assert.NoFileExists(t, path)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")

	require.NoError(t, writeFile(path, []byte("first"), false))
	require.Error(t, writeFile(path, []byte("second"), false))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), got)

	require.NoError(t, writeFile(path, []byte("second"), true))
	got, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)
}
