package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

const farewell = "Goodbye!"

var (
	// ErrInvalidFormat is returned for empty or non-integer input.
	ErrInvalidFormat = errors.New("not a whole number")
	// ErrOutOfRange matches every *RangeError.
	ErrOutOfRange = errors.New("number out of range")
)

// RangeError reports an integer outside the accepted interval.
type RangeError struct {
	Min int
	Max int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("number must be in range [%d, %d]", e.Min, e.Max)
}

// Is makes errors.Is(err, ErrOutOfRange) hold.
func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// Abort signals that the player closed input or interrupted the program.
// It must travel to main unchanged, which exits with status 0.
type Abort struct {
	Cause error
}

func (a *Abort) Error() string {
	if a.Cause == nil {
		return "aborted by user"
	}
	return "aborted by user: " + a.Cause.Error()
}

func (a *Abort) Unwrap() error {
	return a.Cause
}

// IsAbort reports whether err carries an *Abort.
func IsAbort(err error) bool {
	var abort *Abort
	return errors.As(err, &abort)
}

type line struct {
	text string
	err  error
}

// Reader reads validated answers from a line-oriented input.
type Reader struct {
	con   *Console
	in    io.Reader
	once  sync.Once
	lines chan line
}

// NewReader returns a Reader that echoes prompts and errors to con.
func NewReader(in io.Reader, con *Console) *Reader {
	return &Reader{con: con, in: in}
}

// ReadLine prompts once and returns the raw line without its newline.
// End of input and context cancellation yield an *Abort after printing a farewell.
func (r *Reader) ReadLine(ctx context.Context, prompt string) (string, error) {
	r.once.Do(r.start)
	r.con.Prompt(prompt)
	select {
	case <-ctx.Done():
		return "", r.abort(ctx.Err())
	case l, ok := <-r.lines:
		if !ok {
			return "", r.abort(io.EOF)
		}
		if l.err != nil {
			return "", r.abort(l.err)
		}
		return l.text, nil
	}
}

// ReadInt prompts until the player enters an integer within [min, max].
// Format and range problems are reported and retried; only *Abort is returned.
func (r *Reader) ReadInt(ctx context.Context, prompt string, min, max int) (int, error) {
	for {
		raw, err := r.ReadLine(ctx, prompt)
		if err != nil {
			return 0, err
		}
		v, err := ParseInt(raw, min, max)
		if err == nil {
			return v, nil
		}
		r.con.Errorf("%s Try again.", describe(err))
	}
}

// ParseInt parses trimmed base-10 text and checks it against [min, max].
func ParseInt(raw string, min, max int) (int, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return 0, ErrInvalidFormat
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, &RangeError{Min: min, Max: max}
		}
		return 0, ErrInvalidFormat
	}
	if v < min || v > max {
		return 0, &RangeError{Min: min, Max: max}
	}
	return v, nil
}

func describe(err error) string {
	var rangeErr *RangeError
	switch {
	case errors.As(err, &rangeErr):
		return fmt.Sprintf("The number must be in the range [%d, %d].", rangeErr.Min, rangeErr.Max)
	case errors.Is(err, ErrInvalidFormat):
		return "Enter a whole number."
	default:
		return err.Error()
	}
}

func (r *Reader) abort(cause error) error {
	r.con.Println("")
	r.con.Println(farewell)
	return &Abort{Cause: cause}
}

// start feeds input lines into a channel so a pending read can be abandoned on cancellation.
// Lines have no length limit; a final line without a newline is still delivered.
func (r *Reader) start() {
	r.lines = make(chan line)
	go func() {
		defer close(r.lines)
		br := bufio.NewReader(r.in)
		for {
			text, err := br.ReadString('\n')
			if err == nil || (errors.Is(err, io.EOF) && text != "") {
				r.lines <- line{text: strings.TrimRight(text, "\r\n")}
			}
			if err != nil {
				r.lines <- line{err: err}
				return
			}
		}
	}()
}
