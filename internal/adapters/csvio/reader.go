// Package csvio reads and writes the lead CSV wire format. The reader
// streams records one at a time so arbitrarily large exports never load
// into memory; the writer renders Mailchimp-importable output
package csvio

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"leadhopper/internal/core/lead"
	"leadhopper/internal/platform/logger"
)

// gzipMagic is the two-byte gzip stream signature
var gzipMagic = []byte{0x1f, 0x8b}

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// Options tunes how input bytes become records
type Options struct {
	// Encoding names the input charset: utf-8, latin-1, windows-1252,
	// utf-16, utf-16le or utf-16be. Empty sniffs the BOM and falls
	// back to utf-8
	Encoding string

	// Comma is the field separator; zero means ','
	Comma rune
}

// Stats reports reader progress
type Stats struct {
	// Rows is the number of data rows parsed into records
	Rows int

	// Skipped is the number of malformed rows dropped
	Skipped int

	// Bytes is the decoded input consumed so far
	Bytes int64
}

// Reader streams lead records from a CSV export.
// Gzip input is detected by signature and decompressed transparently
type Reader struct {
	src    io.Reader
	gz     *gzip.Reader
	cr     *csv.Reader
	header []string
	err    error
	stats  Stats
}

// Open reads a lead CSV from path
func Open(path string, opts Options) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csvio: open %s: %w", path, err)
	}
	rd, err := NewReader(f, opts)
	if err != nil {
		if cerr := f.Close(); cerr != nil {
			return nil, errors.Join(err, cerr)
		}
		return nil, err
	}
	return rd, nil
}

// NewReader wraps r and parses the header row.
// When r is an io.Closer, Close closes it
func NewReader(r io.Reader, opts Options) (*Reader, error) {
	rd := &Reader{src: r}

	br := bufio.NewReaderSize(r, 64*1024)
	if sniffed, _ := br.Peek(len(gzipMagic)); bytes.Equal(sniffed, gzipMagic) {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("csvio: gzip input: %w", err)
		}
		rd.gz = gz
		br = bufio.NewReaderSize(gz, 64*1024)
	}

	dec, err := decoderFor(br, opts.Encoding)
	if err != nil {
		return nil, err
	}
	var in io.Reader = br
	if dec != nil {
		in = transform.NewReader(br, dec)
	}

	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	rd.cr = cr

	if err := rd.readHeader(); err != nil {
		return nil, err
	}
	return rd, nil
}

// decoderFor resolves the charset decoder. With no explicit encoding it
// sniffs the BOM: UTF-16 streams get a decoder, a UTF-8 BOM is discarded
func decoderFor(br *bufio.Reader, name string) (transform.Transformer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		if sniffed, _ := br.Peek(2); len(sniffed) == 2 {
			if (sniffed[0] == 0xff && sniffed[1] == 0xfe) || (sniffed[0] == 0xfe && sniffed[1] == 0xff) {
				return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder(), nil
			}
		}
		if sniffed, _ := br.Peek(len(utf8BOM)); bytes.Equal(sniffed, utf8BOM) {
			if _, err := br.Discard(len(utf8BOM)); err != nil {
				return nil, fmt.Errorf("csvio: strip BOM: %w", err)
			}
		}
		return nil, nil
	case "utf-8", "utf8":
		if sniffed, _ := br.Peek(len(utf8BOM)); bytes.Equal(sniffed, utf8BOM) {
			if _, err := br.Discard(len(utf8BOM)); err != nil {
				return nil, fmt.Errorf("csvio: strip BOM: %w", err)
			}
		}
		return nil, nil
	case "latin-1", "latin1", "iso-8859-1":
		return charmap.ISO8859_1.NewDecoder(), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder(), nil
	case "utf-16", "utf16":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder(), nil
	case "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder(), nil
	case "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder(), nil
	default:
		return nil, fmt.Errorf("csvio: unsupported encoding %q", name)
	}
}

func (rd *Reader) readHeader() error {
	row, err := rd.cr.Read()
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("csvio: empty input")
	}
	if err != nil {
		return fmt.Errorf("csvio: read header: %w", err)
	}

	seen := make(map[string]int, len(row))
	header := make([]string, len(row))
	for i, h := range row {
		h = strings.TrimSpace(h)
		if h == "" {
			return fmt.Errorf("csvio: empty header name in column %d", i+1)
		}
		folded := strings.ToLower(h)
		if j, dup := seen[folded]; dup {
			return fmt.Errorf("csvio: duplicate header %q in columns %d and %d", h, j+1, i+1)
		}
		seen[folded] = i
		header[i] = h
	}
	rd.header = header
	return nil
}

// Header returns the trimmed header row
func (rd *Reader) Header() []string {
	out := make([]string, len(rd.header))
	copy(out, rd.header)
	return out
}

// Next returns the next record; io.EOF when the input is exhausted.
// Rows whose field count disagrees with the header are skipped and counted
func (rd *Reader) Next() (lead.Record, error) {
	if rd.err != nil {
		return lead.Record{}, rd.err
	}
	for {
		row, err := rd.cr.Read()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				rd.err = fmt.Errorf("csvio: read row: %w", err)
				return lead.Record{}, rd.err
			}
			rd.err = io.EOF
			rd.stats.Bytes = rd.cr.InputOffset()
			return lead.Record{}, io.EOF
		}

		line, _ := rd.cr.FieldPos(0)
		if len(row) != len(rd.header) {
			rd.stats.Skipped++
			logger.Named("csvio").Warn().
				Int("line", line).
				Int("fields", len(row)).
				Int("want", len(rd.header)).
				Msg("csvio: skipping malformed row")
			continue
		}

		rec := lead.NewRecord(len(rd.header))
		for i, name := range rd.header {
			rec.Set(name, row[i])
		}
		rd.stats.Rows++
		rd.stats.Bytes = rd.cr.InputOffset()
		return rec, nil
	}
}

// Stats returns progress counters
func (rd *Reader) Stats() Stats { return rd.stats }

// Close closes the gzip layer and the source when it is closeable
func (rd *Reader) Close() error {
	var first error
	if rd.gz != nil {
		if err := rd.gz.Close(); err != nil {
			first = err
		}
	}
	if c, ok := rd.src.(io.Closer); ok {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
