package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestParseInt(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr error
	}{
		{raw: "7", want: 7},
		{raw: "  42\t", want: 42},
		{raw: "+3", want: 3},
		{raw: "-2", want: -2},
		{raw: "", wantErr: ErrInvalidFormat},
		{raw: "   ", wantErr: ErrInvalidFormat},
		{raw: "4.5", wantErr: ErrInvalidFormat},
		{raw: "1 2", wantErr: ErrInvalidFormat},
		{raw: "abc", wantErr: ErrInvalidFormat},
		{raw: "-", wantErr: ErrInvalidFormat},
		{raw: "-6", wantErr: ErrOutOfRange},
		{raw: "-5", want: -5},
		{raw: "101", wantErr: ErrOutOfRange},
		{raw: "99999999999999999999999", wantErr: ErrOutOfRange},
	}
	for _, tt := range tests {
		got, err := ParseInt(tt.raw, -5, 100)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseInt(%q): expected %v, got %v", tt.raw, tt.wantErr, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseInt(%q): unexpected error %v", tt.raw, err)
		}
		if got != tt.want {
			t.Fatalf("ParseInt(%q): expected %d, got %d", tt.raw, tt.want, got)
		}
	}
}

func TestRangeErrorNamesInterval(t *testing.T) {
	_, err := ParseInt("11", 1, 10)
	var rangeErr *RangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("expected RangeError, got %v", err)
	}
	if !strings.Contains(describe(err), "[1, 10]") {
		t.Fatalf("message should name interval: %q", describe(err))
	}
}

func TestReadIntRetriesUntilValid(t *testing.T) {
	var out bytes.Buffer
	r := NewReader(strings.NewReader("abc\n\n0\n11\n 7 \n"), NewPlain(&out))

	got, err := r.ReadInt(context.Background(), "> ", 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
	text := out.String()
	if n := strings.Count(text, ErrorMarker); n != 4 {
		t.Fatalf("expected 4 error lines, got %d:\n%s", n, text)
	}
	if n := strings.Count(text, "> "); n != 5 {
		t.Fatalf("expected 5 prompts, got %d", n)
	}
	if !strings.Contains(text, "[Error] Enter a whole number. Try again.") {
		t.Fatalf("missing format error:\n%s", text)
	}
	if !strings.Contains(text, "[Error] The number must be in the range [1, 10]. Try again.") {
		t.Fatalf("missing range error:\n%s", text)
	}
}

func TestReadIntEndOfInputAborts(t *testing.T) {
	var out bytes.Buffer
	r := NewReader(strings.NewReader("x\n"), NewPlain(&out))

	_, err := r.ReadInt(context.Background(), "> ", 1, 10)
	if !IsAbort(err) {
		t.Fatalf("expected abort, got %v", err)
	}
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF cause, got %v", err)
	}
	if !strings.Contains(out.String(), farewell) {
		t.Fatalf("expected farewell, got %q", out.String())
	}

	// Later reads keep aborting.
	if _, err := r.ReadLine(context.Background(), "> "); !IsAbort(err) {
		t.Fatalf("expected abort on exhausted input, got %v", err)
	}
}

func TestReadLineCancelledContextAborts(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	r := NewReader(pr, NewPlain(&out))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.ReadLine(ctx, "again? ")
	if !IsAbort(err) {
		t.Fatalf("expected abort, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled cause, got %v", err)
	}
	if !strings.HasSuffix(out.String(), farewell+"\n") {
		t.Fatalf("expected farewell, got %q", out.String())
	}
}

func TestReadLineReturnsRawText(t *testing.T) {
	var out bytes.Buffer
	r := NewReader(strings.NewReader(" Y \nn"), NewPlain(&out))
	first, err := r.ReadLine(context.Background(), "? ")
	if err != nil || first != " Y " {
		t.Fatalf("unexpected first line %q, %v", first, err)
	}
	second, err := r.ReadLine(context.Background(), "? ")
	if err != nil || second != "n" {
		t.Fatalf("unexpected second line %q, %v", second, err)
	}
}

func TestReadIntSurvivesVeryLongLine(t *testing.T) {
	var out bytes.Buffer
	input := strings.Repeat("x", 70*1024) + "\n5\n"
	r := NewReader(strings.NewReader(input), NewPlain(&out))

	got, err := r.ReadInt(context.Background(), "> ", 1, 10)
	if err != nil {
		t.Fatalf("long line must not abort: %v", err)
	}
	if got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	if !strings.Contains(out.String(), "[Error] Enter a whole number. Try again.") {
		t.Fatalf("expected format error for long line")
	}
	if strings.Contains(out.String(), farewell) {
		t.Fatalf("farewell printed for a long line")
	}
}

func TestReadLineStripsCarriageReturn(t *testing.T) {
	var out bytes.Buffer
	r := NewReader(strings.NewReader("7\r\n"), NewPlain(&out))
	got, err := r.ReadLine(context.Background(), "? ")
	if err != nil || got != "7" {
		t.Fatalf("unexpected line %q, %v", got, err)
	}
}
