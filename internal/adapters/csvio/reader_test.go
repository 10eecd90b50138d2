package csvio

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"strings"
	"testing"

	"golang.org/x/text/encoding/unicode"

	"leadhopper/internal/core/lead"
)

const sampleCSV = "email_1,first_name,home_intent\na@b.c,Ann,yes\nd@e.f,Dee,\n"

func drainReader(t *testing.T, rd *Reader) []lead.Record {
	t.Helper()
	var out []lead.Record
	for {
		rec, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		out = append(out, rec)
	}
}

func TestReadPlainCSV(t *testing.T) {
	rd, err := NewReader(strings.NewReader(sampleCSV), Options{})
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}

	header := rd.Header()
	want := []string{"email_1", "first_name", "home_intent"}
	if len(header) != len(want) {
		t.Fatalf("header: got %v", header)
	}
	for i := range want {
		if header[i] != want[i] {
			t.Fatalf("header: got %v, want %v", header, want)
		}
	}

	recs := drainReader(t, rd)
	if len(recs) != 2 {
		t.Fatalf("records: got %d, want 2", len(recs))
	}
	if got := recs[0].Value("email_1"); got != "a@b.c" {
		t.Fatalf("email_1: got %q", got)
	}
	if got := recs[1].Value("first_name"); got != "Dee" {
		t.Fatalf("first_name: got %q", got)
	}

	st := rd.Stats()
	if st.Rows != 2 || st.Skipped != 0 {
		t.Fatalf("stats: got %+v", st)
	}
	if st.Bytes == 0 {
		t.Fatalf("stats: bytes not counted")
	}

	// EOF is sticky
	if _, err := rd.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("Next after EOF: got %v", err)
	}
}

func TestGzipDetectedBySignature(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write([]byte(sampleCSV)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}

	rd, err := NewReader(bytes.NewReader(buf.Bytes()), Options{})
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if recs := drainReader(t, rd); len(recs) != 2 {
		t.Fatalf("records: got %d, want 2", len(recs))
	}
	if err := rd.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestUTF8BOMStripped(t *testing.T) {
	in := "\xef\xbb\xbf" + sampleCSV
	rd, err := NewReader(strings.NewReader(in), Options{})
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if got := rd.Header()[0]; got != "email_1" {
		t.Fatalf("header[0]: got %q", got)
	}
}

func TestUTF16BOMDetected(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	in, err := enc.Bytes([]byte(sampleCSV))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	rd, err := NewReader(bytes.NewReader(in), Options{})
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	recs := drainReader(t, rd)
	if len(recs) != 2 || recs[0].Value("email_1") != "a@b.c" {
		t.Fatalf("utf-16 records: got %+v", recs)
	}
}

func TestWindows1252Decoded(t *testing.T) {
	// 0x93/0x94 are curly quotes in cp1252
	in := "first_name\n\x93Ann\x94\n"
	rd, err := NewReader(strings.NewReader(in), Options{Encoding: "windows-1252"})
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	recs := drainReader(t, rd)
	if len(recs) != 1 || recs[0].Value("first_name") != "“Ann”" {
		t.Fatalf("cp1252 decode: got %q", recs[0].Value("first_name"))
	}
}

func TestLatin1Decoded(t *testing.T) {
	in := "first_name\nRen\xe9\n"
	rd, err := NewReader(strings.NewReader(in), Options{Encoding: "latin-1"})
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	recs := drainReader(t, rd)
	if len(recs) != 1 || recs[0].Value("first_name") != "René" {
		t.Fatalf("latin-1 decode: got %q", recs[0].Value("first_name"))
	}
}

func TestMalformedRowsSkippedAndCounted(t *testing.T) {
	in := "email_1,first_name,home_intent\n" +
		"a@b.c,Ann,yes\n" +
		"short,row\n" +
		"too,many,fields,here\n" +
		"d@e.f,Dee,no\n"
	rd, err := NewReader(strings.NewReader(in), Options{})
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}

	recs := drainReader(t, rd)
	if len(recs) != 2 {
		t.Fatalf("records: got %d, want 2", len(recs))
	}
	st := rd.Stats()
	if st.Rows != 2 || st.Skipped != 2 {
		t.Fatalf("stats: got %+v", st)
	}
}

func TestHeaderValidation(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty input", "", "empty input"},
		{"empty header name", "email_1,,home_intent\n", "empty header name"},
		{"duplicate folded", "email_1,Email_1\n", "duplicate header"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewReader(strings.NewReader(tc.in), Options{})
			if err == nil {
				t.Fatalf("NewReader(%q): want error", tc.in)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestUnsupportedEncoding(t *testing.T) {
	_, err := NewReader(strings.NewReader(sampleCSV), Options{Encoding: "ebcdic"})
	if err == nil || !strings.Contains(err.Error(), "unsupported encoding") {
		t.Fatalf("NewReader: got %v", err)
	}
}

func TestCustomComma(t *testing.T) {
	in := "email_1;first_name\na@b.c;Ann\n"
	rd, err := NewReader(strings.NewReader(in), Options{Comma: ';'})
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	recs := drainReader(t, rd)
	if len(recs) != 1 || recs[0].Value("first_name") != "Ann" {
		t.Fatalf("semicolon csv: got %+v", recs)
	}
}

type closeRecorder struct {
	io.Reader
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestCloseClosesSource(t *testing.T) {
	src := &closeRecorder{Reader: strings.NewReader(sampleCSV)}
	rd, err := NewReader(src, Options{})
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if err := rd.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !src.closed {
		t.Fatalf("source not closed")
	}
}
