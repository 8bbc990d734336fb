package transcript

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/edgard/chatlens/internal/errors"
)

const sample = "1/2/23, 10:00 AM - Alice: héllo 😀\n1/2/23, 10:05 AM - Bob: hi\n"

func encodeUTF16(s string, bigEndian, bom bool) []byte {
	units := utf16.Encode([]rune(s))
	if bom {
		units = append([]uint16{0xFEFF}, units...)
	}
	out := make([]byte, 0, len(units)*2)
	for _, u := range units {
		if bigEndian {
			out = append(out, byte(u>>8), byte(u))
		} else {
			out = append(out, byte(u), byte(u>>8))
		}
	}
	return out
}

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  []byte
		want string
	}{
		{name: "utf8", raw: []byte(sample), want: sample},
		{name: "utf8 bom", raw: append([]byte{0xEF, 0xBB, 0xBF}, sample...), want: sample},
		{name: "utf16le bom", raw: encodeUTF16(sample, false, true), want: sample},
		{name: "utf16be bom", raw: encodeUTF16(sample, true, true), want: sample},
		{name: "utf16le no bom", raw: encodeUTF16(sample, false, false), want: sample},
		{name: "utf16be no bom", raw: encodeUTF16(sample, true, false), want: sample},
		{name: "invalid bytes", raw: []byte("ok \xff\xfe done"), want: "ok \uFFFD\uFFFD done"},
		{name: "empty", raw: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Decode(tt.raw))
		})
	}
}

func TestDecodedUTF16Parses(t *testing.T) {
	t.Parallel()

	records := Parse(Decode(encodeUTF16(sample, false, true)))
	require.Len(t, records, 2)
	assert.Equal(t, "héllo 😀", records[0].Body)
}

func TestReadFileMissing(t *testing.T) {
	t.Parallel()

	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInput, apperrors.Code(err))
}

func TestParseFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	paths := []string{
		filepath.Join(dir, "one.txt"),
		filepath.Join(dir, "two.txt"),
		filepath.Join(dir, "three.txt"),
	}
	require.NoError(t, os.WriteFile(paths[0], []byte(sample), 0o600))
	require.NoError(t, os.WriteFile(paths[1], encodeUTF16(sample, false, true), 0o600))
	require.NoError(t, os.WriteFile(paths[2], []byte("no boundaries"), 0o600))

	transcripts, err := NewParser(Options{}).ParseFiles(context.Background(), paths, 2)
	require.NoError(t, err)
	require.Len(t, transcripts, 3)

	assert.Equal(t, "one.txt", transcripts[0].Name)
	assert.Len(t, transcripts[0].Records, 2)
	assert.Equal(t, "two.txt", transcripts[1].Name)
	assert.Len(t, transcripts[1].Records, 2)
	assert.Equal(t, "three.txt", transcripts[2].Name)
	assert.Empty(t, transcripts[2].Records)
}

func TestParseFilesError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ok := filepath.Join(dir, "ok.txt")
	require.NoError(t, os.WriteFile(ok, []byte(sample), 0o600))

	_, err := NewParser(Options{}).ParseFiles(context.Background(), []string{ok, filepath.Join(dir, "gone.txt")}, 0)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInput, apperrors.Code(err))
}

func TestParseFilesCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewParser(Options{}).ParseFiles(ctx, []string{"whatever.txt"}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
