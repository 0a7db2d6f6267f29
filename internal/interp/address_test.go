package interp

import (
	"errors"
	"testing"

	"github.com/perombra/ned/internal/buffer"
)

func testSession(lines ...string) *Session {
	return New(buffer.New(lines...))
}

func TestResolve(t *testing.T) {
	lines := []string{"alpha", "beta", "gamma", "delta", "beta again"}
	tests := []struct {
		tok     string
		dot     int
		want    int
		wantErr error
	}{
		{tok: "", dot: 3, want: 3},
		{tok: ".", dot: 3, want: 3},
		{tok: "$", dot: 1, want: 5},
		{tok: "4", dot: 1, want: 4},
		{tok: "+", dot: 2, want: 3},
		{tok: "-", dot: 2, want: 1},
		{tok: "^", dot: 2, want: 1},
		{tok: "+2", dot: 1, want: 3},
		{tok: "-2", dot: 5, want: 3},
		{tok: "^2", dot: 5, want: 3},
		{tok: "/beta/", dot: 1, want: 2},
		{tok: "/beta/", dot: 2, want: 5},
		{tok: "/beta/", dot: 5, wantErr: ErrNoMatch}, // no wrap
		{tok: "?beta?", dot: 5, want: 2},
		{tok: "?beta?", dot: 2, wantErr: ErrNoMatch}, // no wrap
		{tok: "/nosuch/", dot: 1, wantErr: ErrNoMatch},
		{tok: "'q", dot: 1, wantErr: ErrUndefined}, // mark not set
		{tok: "'toolong", dot: 1, wantErr: ErrInvalidMark},
		{tok: "12abc", dot: 1, wantErr: ErrInvalidNumber},
	}
	for _, tt := range tests {
		t.Run(tt.tok, func(t *testing.T) {
			s := testSession(lines...)
			s.buf.SetCurrentLine(tt.dot)
			got, err := s.resolve(tt.tok)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("resolve(%q) error = %v, want %v", tt.tok, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolve(%q): %v", tt.tok, err)
			}
			if got != tt.want {
				t.Errorf("resolve(%q) = %d, want %d", tt.tok, got, tt.want)
			}
		})
	}
}

func TestResolveMark(t *testing.T) {
	s := testSession("one", "two", "three")
	s.marks['a'] = 2
	got, err := s.resolve("'a")
	if err != nil {
		t.Fatal(err)
	}
	if got != 2 {
		t.Errorf("resolve('a) = %d, want 2", got)
	}
}

func TestResolveEmptyBufferConvention(t *testing.T) {
	s := testSession()
	got, err := s.resolve("$")
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Errorf("resolve($) on empty buffer = %d, want 1", got)
	}
}

func TestResolveEmptySearchReusesPattern(t *testing.T) {
	s := testSession("alpha", "beta", "gamma")
	s.buf.SetCurrentLine(1)
	if _, err := s.resolve("//"); !errors.Is(err, ErrNoPrevPattern) {
		t.Fatalf("expected %v, got %v", ErrNoPrevPattern, err)
	}
	if _, err := s.resolve("/gamma/"); err != nil {
		t.Fatal(err)
	}
	got, err := s.resolve("//")
	if err != nil {
		t.Fatal(err)
	}
	if got != 3 {
		t.Errorf("resolve(//) = %d, want 3", got)
	}
}
