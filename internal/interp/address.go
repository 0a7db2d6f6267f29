package interp

import (
	"regexp"
	"strconv"
	"strings"
)

// resolve turns one address token into a line number against the buffer
// state at the time of the call. Tokens are never cached: a search or a
// relative offset submitted twice may resolve differently once the
// buffer has changed.
func (s *Session) resolve(tok string) (int, error) {
	dot := s.buf.CurrentLine()
	switch {
	case tok == "" || tok == ".":
		return dot, nil
	case tok == "$":
		return s.lastLine(), nil
	case tok[0] == '/':
		re, err := s.searchPattern(tok, '/')
		if err != nil {
			return 0, err
		}
		if n, ok := s.buf.SearchForward(re, dot+1); ok {
			return n, nil
		}
		return 0, ErrNoMatch
	case tok[0] == '?':
		re, err := s.searchPattern(tok, '?')
		if err != nil {
			return 0, err
		}
		if n, ok := s.buf.SearchBackward(re, dot-1); ok {
			return n, nil
		}
		return 0, ErrNoMatch
	case tok[0] == '\'':
		if len(tok) != 2 {
			return 0, ErrInvalidMark
		}
		n, ok := s.marks[rune(tok[1])]
		if !ok {
			return 0, ErrUndefined
		}
		return n, nil
	case tok[0] == '+' || tok[0] == '-' || tok[0] == '^':
		off, err := relativeOffset(tok)
		if err != nil {
			return 0, err
		}
		return dot + off, nil
	default:
		n, err := strconv.Atoi(tok)
		if err != nil {
			return 0, ErrInvalidNumber
		}
		return n, nil
	}
}

// searchPattern strips the delimiters from a /re/ or ?re? token and
// compiles it. An empty pattern reuses the previous one, which is also
// what an empty substitution pattern falls back to.
func (s *Session) searchPattern(tok string, delim byte) (*regexp.Regexp, error) {
	pat := tok[1:]
	pat = strings.TrimSuffix(pat, string(delim))
	if pat == "" {
		if s.re == nil {
			return nil, ErrNoPrevPattern
		}
		return s.re, nil
	}
	re, err := regexp.Compile(pat)
	if err != nil {
		return nil, err
	}
	s.re = re
	return re, nil
}

// relativeOffset parses +N, -N, ^N and the bare one-rune forms meaning
// plus or minus one.
func relativeOffset(tok string) (int, error) {
	sign := 1
	if tok[0] == '-' || tok[0] == '^' {
		sign = -1
	}
	if len(tok) == 1 {
		return sign, nil
	}
	n, err := strconv.Atoi(tok[1:])
	if err != nil {
		return 0, ErrInvalidNumber
	}
	return sign * n, nil
}
