package transcript

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	apperrors "github.com/edgard/chatlens/internal/errors"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// sniffLen bounds how many bytes are inspected to guess BOM-less UTF-16.
const sniffLen = 512

// Decode converts raw transcript bytes to text. Byte-order marks select
// UTF-8 or UTF-16; BOM-less input is taken as UTF-16 when its NUL-byte
// layout says so, as UTF-8 when valid, and otherwise has invalid sequences
// replaced with U+FFFD.
func Decode(raw []byte) string {
	if hasBOM(raw) {
		out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), raw)
		if err == nil {
			return strings.ToValidUTF8(string(out), string(utf8.RuneError))
		}
	}

	// ASCII-only UTF-16 is also valid UTF-8, so sniff before validating.
	if endian, ok := sniffUTF16(raw); ok {
		dec := unicode.UTF16(endian, unicode.IgnoreBOM).NewDecoder()
		if out, _, err := transform.Bytes(dec, raw); err == nil && utf8.Valid(out) {
			return string(out)
		}
	}

	if utf8.Valid(raw) {
		return string(raw)
	}

	out, _, err := transform.Bytes(unicode.UTF8.NewDecoder(), raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), string(utf8.RuneError))
	}
	return string(out)
}

func hasBOM(raw []byte) bool {
	return bytes.HasPrefix(raw, bomUTF8) || bytes.HasPrefix(raw, bomUTF16LE) || bytes.HasPrefix(raw, bomUTF16BE)
}

// sniffUTF16 guesses UTF-16 from mostly-ASCII text, where every other byte is NUL.
func sniffUTF16(raw []byte) (unicode.Endianness, bool) {
	sample := raw[:min(len(raw), sniffLen)]
	if len(sample) < 2 {
		return unicode.LittleEndian, false
	}

	var evenNUL, oddNUL int
	for i, b := range sample {
		if b != 0 {
			continue
		}
		if i%2 == 0 {
			evenNUL++
		} else {
			oddNUL++
		}
	}

	threshold := len(sample) / 4
	switch {
	case oddNUL > threshold && oddNUL > evenNUL:
		return unicode.LittleEndian, true
	case evenNUL > threshold && evenNUL > oddNUL:
		return unicode.BigEndian, true
	default:
		return unicode.LittleEndian, false
	}
}

// ReadFile reads and decodes a whole transcript file. Reading happens once,
// fully, before any parsing.
func ReadFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", apperrors.NewInputError(path, err)
	}
	return Decode(raw), nil
}

// ParseFile reads, decodes and parses one transcript file.
func (p *Parser) ParseFile(path string) (Transcript, error) {
	text, err := ReadFile(path)
	if err != nil {
		return Transcript{}, err
	}
	return Transcript{Name: filepath.Base(path), Records: p.Parse(text)}, nil
}

// ParseFiles parses several transcripts concurrently, at most limit at a time.
// Results are returned in input order once every parse has completed; the
// first read error cancels the remaining work.
func (p *Parser) ParseFiles(ctx context.Context, paths []string, limit int) ([]Transcript, error) {
	results := make([]Transcript, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, path := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			t, err := p.ParseFile(path)
			if err != nil {
				return err
			}
			results[i] = t
			p.logger.Debug("Transcript parsed", "name", t.Name, "records", len(t.Records))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
