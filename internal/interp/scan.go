package interp

import (
	"strconv"
	"strings"
	"unicode"
)

// scanPhase is the position of the scanner within one command line: the
// first address token, the second one past the comma, or the command
// text that follows the addresses.
type scanPhase int

const (
	phaseFirst scanPhase = iota
	phaseSecond
	phaseRest
)

// lineScanner splits one raw command line into (first, second, rest)
// where rest starts with the command letter. It is a character-by-
// character state machine: any rune that cannot extend an address token
// ends the address phases for good, so the command text is never
// re-scanned for address syntax.
type lineScanner struct {
	dot, last int

	phase    scanPhase
	inSearch bool // between the delimiters of /re/ or ?re?
	delim    rune // the delimiter that opened the search token
	markNext bool // the next rune is a mark name following '

	first, second, rest strings.Builder
}

func newLineScanner(dot, last int) *lineScanner {
	return &lineScanner{dot: dot, last: last}
}

func (sc *lineScanner) split(raw string) (first, second, rest string) {
	for _, r := range raw {
		sc.step(r)
	}
	first, second, rest = sc.first.String(), sc.second.String(), sc.rest.String()
	// A bare search or mark token addresses a single line: duplicate it
	// so downstream sees a one-line range.
	if second == "" && isPatternToken(first) {
		second = first
	}
	return first, second, rest
}

// current is the address token being accumulated in this phase.
func (sc *lineScanner) current() *strings.Builder {
	if sc.phase == phaseSecond {
		return &sc.second
	}
	return &sc.first
}

func (sc *lineScanner) step(r rune) {
	if sc.phase == phaseRest {
		sc.rest.WriteRune(r)
		return
	}
	cur := sc.current()
	switch {
	case sc.markNext:
		cur.WriteRune(r)
		sc.markNext = false
	case sc.inSearch:
		cur.WriteRune(r)
		if r == sc.delim {
			sc.inSearch = false
		}
	case r == '/' || r == '?':
		sc.inSearch = true
		sc.delim = r
		cur.WriteRune(r)
	case r == '\'':
		sc.markNext = true
		cur.WriteRune(r)
	case r == '%':
		sc.wholeBuffer(1)
	case r == ';':
		sc.wholeBuffer(sc.dot)
	case r == ',':
		switch {
		case sc.phase == phaseFirst && sc.first.Len() == 0:
			// a bare comma is the whole-buffer shortcut
			sc.wholeBuffer(1)
		case sc.phase == phaseFirst:
			sc.phase = phaseSecond
		default:
			// only the first comma separates addresses
			sc.phase = phaseRest
			sc.rest.WriteRune(r)
		}
	case isAddressRune(r):
		cur.WriteRune(r)
	default:
		sc.phase = phaseRest
		sc.rest.WriteRune(r)
	}
}

// wholeBuffer resolves both addresses on the spot (from..last) and skips
// straight to the command text.
func (sc *lineScanner) wholeBuffer(from int) {
	sc.first.Reset()
	sc.second.Reset()
	sc.first.WriteString(strconv.Itoa(from))
	sc.second.WriteString(strconv.Itoa(sc.last))
	sc.phase = phaseRest
}

// isAddressRune reports whether r can extend an address token outside of
// search and mark tokens: digits plus the runes the resolver accepts.
func isAddressRune(r rune) bool {
	if unicode.IsDigit(r) {
		return true
	}
	switch r {
	case '.', '$', '+', '-', '^':
		return true
	}
	return false
}

func isPatternToken(tok string) bool {
	if tok == "" {
		return false
	}
	switch tok[0] {
	case '/', '?', '\'':
		return true
	}
	return false
}
