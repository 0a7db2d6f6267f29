// Package interp implements an ed-style command interpreter: it parses
// address+command lines, resolves addresses against a line buffer and
// applies the commands. The buffer itself is a collaborator supplied by
// the caller; the interpreter owns only the session state (marks, modes,
// last error, last substitution).
package interp

import (
	"errors"
	"regexp"
	"strconv"
	"unicode/utf8"
)

// The interpreter reports errors through these values. The reported text
// only reaches the caller when verbose errors are on; otherwise every
// failure renders as a bare "?".
var (
	ErrUndefined           = errors.New("Undefined error")
	ErrUnknownCmd          = errors.New("unknown command")
	ErrNoCmd               = errors.New("no command")
	ErrNoMatch             = errors.New("no match")
	ErrNoPrevPattern       = errors.New("no previous pattern")
	ErrInvalidMark         = errors.New("invalid mark character")
	ErrInvalidNumber       = errors.New("number out of range")
	ErrInvalidDestination  = errors.New("invalid destination")
	ErrInvalidPatternDelim = errors.New("invalid pattern delimiter")
	ErrFileModified        = errors.New("warning: file modified")
	ErrCannotReadFile      = errors.New("cannot read input file")
	ErrCannotNestGlobal    = errors.New("cannot nest global commands")
)

// Buffer is the line store the interpreter edits. Lines are 1-based;
// line 0 is the empty position before the first line. Implementations
// must not wrap searches around the buffer ends.
type Buffer interface {
	LineCount() int
	CurrentLine() int
	SetCurrentLine(n int)
	ReadRange(start, end int) []string
	InsertLines(after int, lines []string)
	DeleteRange(start, end int)
	SearchForward(re *regexp.Regexp, from int) (int, bool)
	SearchBackward(re *regexp.Regexp, from int) (int, bool)
	Modified() bool
	Path() string
	SetPath(path string)
	Save() (int, error)
	SaveTo(path string, appendTo bool) (int, error)
	Undo() error
	Checkpoint()
}

// A session is in exactly one of these states; while awaiting text every
// submitted line is buffer content, not a command.
type sessionMode int

const (
	awaitingCommand sessionMode = iota
	awaitingText
)

const (
	defaultShell  = "/bin/sh"
	defaultScroll = 22
)

// Session holds the interpreter state that persists across commands.
type Session struct {
	buf Buffer

	mode     sessionMode
	insertAt int // lines typed in text mode go after this line

	marks map[rune]int

	lastErr     error
	verbose     bool
	prompt      bool
	pendingQuit bool

	re         *regexp.Regexp // previous search/substitution pattern
	subReplace string         // previous substitution replacement
	subGlobal  bool           // previous substitution had the g flag

	scroll int
	shell  string

	global bool // a g/v command list is running
}

type Option func(*Session)

func WithShell(path string) Option {
	return func(s *Session) { s.shell = path }
}

func WithPrompt(on bool) Option {
	return func(s *Session) { s.prompt = on }
}

func WithVerbose(on bool) Option {
	return func(s *Session) { s.verbose = on }
}

func WithScroll(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.scroll = n
		}
	}
}

func New(buf Buffer, opts ...Option) *Session {
	s := &Session{
		buf:    buf,
		marks:  make(map[rune]int),
		shell:  defaultShell,
		scroll: defaultScroll,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PromptVisible reports whether the host should render its prompt before
// the next command line. Toggled by the P command.
func (s *Session) PromptVisible() bool { return s.prompt }

// LastError returns the most recent command failure, shown by h and H.
func (s *Session) LastError() error { return s.lastErr }

// Result is the outcome of one submitted line: text for the host to
// echo, and whether the session has ended.
type Result struct {
	Output []string
	Ended  bool
}

// Submit runs one raw input line through the interpreter. In command
// mode the line is parsed and dispatched; in text mode it is buffer
// content terminated by a lone ".". Errors never escape: they are
// recorded and rendered per the error marker convention.
func (s *Session) Submit(raw string) Result {
	if s.mode == awaitingText {
		return s.submitText(raw)
	}
	out, ended, err := s.command(raw)
	if err != nil {
		return s.fail(err)
	}
	return Result{Output: out, Ended: ended}
}

func (s *Session) fail(err error) Result {
	s.lastErr = err
	if s.verbose {
		return Result{Output: []string{"", err.Error()}}
	}
	return Result{Output: []string{"?"}}
}

func (s *Session) submitText(raw string) Result {
	if raw == "." {
		s.mode = awaitingCommand
		s.buf.SetCurrentLine(s.insertAt)
		return Result{}
	}
	s.buf.InsertLines(s.insertAt, []string{raw})
	s.insertAt++
	s.buf.SetCurrentLine(s.insertAt)
	return Result{}
}

// lastLine is the last line number for address resolution. An empty
// buffer is treated as having one line, so $ and % stay resolvable.
func (s *Session) lastLine() int {
	if n := s.buf.LineCount(); n > 0 {
		return n
	}
	return 1
}

// checkpoint opens an undo step for the command about to mutate the
// buffer. Inside a global the whole command list is one step, opened by
// the global itself.
func (s *Session) checkpoint() {
	if !s.global {
		s.buf.Checkpoint()
	}
}

// command parses, resolves, validates and dispatches one command line.
func (s *Session) command(raw string) ([]string, bool, error) {
	dot := s.buf.CurrentLine()
	first, second, rest := newLineScanner(dot, s.lastLine()).split(raw)
	firstGiven := first != ""
	secondGiven := second != ""

	start, err := s.resolve(first)
	if err != nil {
		return nil, false, err
	}
	end := start
	if secondGiven {
		end, err = s.resolve(second)
		if err != nil {
			return nil, false, err
		}
	}
	if n := s.buf.LineCount(); n > 0 {
		if start < 1 || start > n || end < 1 || end > n {
			return nil, false, ErrUndefined
		}
		if secondGiven && end < start {
			return nil, false, ErrUndefined
		}
	}

	if rest == "" {
		s.pendingQuit = false
		// A bare address moves the cursor and echoes the line; a bare
		// empty line advances to the next one.
		switch {
		case secondGiven:
			out, err := s.gotoLine(end)
			return out, false, err
		case firstGiven:
			out, err := s.gotoLine(start)
			return out, false, err
		default:
			out, err := s.gotoLine(dot + 1)
			return out, false, err
		}
	}

	letter, width := utf8.DecodeRuneInString(rest)
	args := rest[width:]
	addrGiven := firstGiven || secondGiven

	// the quit warning only stands for an immediately repeated q
	if letter != 'q' {
		s.pendingQuit = false
	}

	switch letter {
	case '=':
		return []string{strconv.Itoa(start)}, false, nil
	case '!':
		out, err := s.cmdShell(args, addrGiven)
		return out, false, err
	case 'a':
		return nil, false, s.cmdAppend(start)
	case 'c':
		return nil, false, s.cmdChange(start, end)
	case 'd':
		return nil, false, s.cmdDelete(start, end)
	case 'f':
		out, err := s.cmdFilename(args)
		return out, false, err
	case 'h':
		return s.cmdHelp(), false, nil
	case 'H':
		s.verbose = !s.verbose
		return s.cmdHelp(), false, nil
	case 'i':
		return nil, false, s.cmdInsert(start)
	case 'j':
		return nil, false, s.cmdJoin(start, end, addrGiven)
	case 'k':
		return nil, false, s.cmdMark(args, start)
	case 'l':
		out, err := s.cmdList(start, end)
		return out, false, err
	case 'm':
		return nil, false, s.cmdMove(args, start, end)
	case 'n':
		out, err := s.cmdEnumerate(start, end)
		return out, false, err
	case 'p':
		out, err := s.cmdPrint(start, end)
		return out, false, err
	case 'P':
		s.prompt = !s.prompt
		return nil, false, nil
	case 'q':
		return s.cmdQuit()
	case 'Q':
		s.pendingQuit = false
		return nil, true, nil
	case 'r':
		if !firstGiven && !secondGiven {
			start = s.buf.LineCount()
		}
		out, err := s.cmdRead(args, start, secondGiven)
		return out, false, err
	case 's':
		return nil, false, s.cmdSubstitute(args, start, end)
	case 't':
		return nil, false, s.cmdTransfer(args, start, end)
	case 'u':
		return nil, false, s.buf.Undo()
	case 'w', 'W':
		out, err := s.cmdWrite(args, letter == 'W')
		return out, false, err
	case 'z':
		out, err := s.cmdScroll(args, end, addrGiven)
		return out, false, err
	case 'g', 'v':
		return s.cmdGlobal(letter, args, start, end, addrGiven)
	case '#':
		return nil, false, nil
	default:
		// Unregistered letters fall back to address navigation when an
		// address was given at all.
		switch {
		case secondGiven:
			out, err := s.gotoLine(end)
			return out, false, err
		case firstGiven:
			out, err := s.gotoLine(start)
			return out, false, err
		default:
			return nil, false, ErrUnknownCmd
		}
	}
}

func (s *Session) gotoLine(n int) ([]string, error) {
	if n < 1 || n > s.buf.LineCount() {
		return nil, ErrUndefined
	}
	s.buf.SetCurrentLine(n)
	return s.buf.ReadRange(n, n), nil
}

func (s *Session) cmdQuit() ([]string, bool, error) {
	if s.buf.Modified() && !s.pendingQuit {
		s.pendingQuit = true
		return nil, false, ErrFileModified
	}
	s.pendingQuit = false
	return nil, true, nil
}
