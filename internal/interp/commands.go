package interp

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// requireLines guards handlers that address buffer content; they cannot
// operate on an empty buffer.
func (s *Session) requireLines() error {
	if s.buf.LineCount() < 1 {
		return ErrUndefined
	}
	return nil
}

func (s *Session) cmdAppend(start int) error {
	s.checkpoint()
	s.mode = awaitingText
	s.insertAt = s.clampInsert(start)
	return nil
}

func (s *Session) cmdInsert(start int) error {
	s.checkpoint()
	s.mode = awaitingText
	s.insertAt = s.clampInsert(start - 1)
	return nil
}

// clampInsert bounds an insertion point to the buffer. Range validation
// is skipped while the buffer is empty, so an address like $ can reach
// an insert-class command as 1 even with no line to stand on.
func (s *Session) clampInsert(at int) int {
	if at < 0 {
		return 0
	}
	if n := s.buf.LineCount(); at > n {
		return n
	}
	return at
}

func (s *Session) cmdChange(start, end int) error {
	if err := s.requireLines(); err != nil {
		return err
	}
	s.checkpoint()
	s.buf.DeleteRange(start, end)
	s.mode = awaitingText
	s.insertAt = start - 1
	return nil
}

func (s *Session) cmdDelete(start, end int) error {
	if err := s.requireLines(); err != nil {
		return err
	}
	s.checkpoint()
	s.buf.DeleteRange(start, end)
	dot := start
	if n := s.buf.LineCount(); dot > n {
		dot = n
	}
	s.buf.SetCurrentLine(dot)
	return nil
}

func (s *Session) cmdFilename(args string) ([]string, error) {
	if path := strings.TrimSpace(args); path != "" {
		s.buf.SetPath(path)
	}
	return []string{s.buf.Path()}, nil
}

// cmdHelp renders the h command: the remembered error when verbose,
// otherwise just the marker. H toggles verbosity before calling this.
func (s *Session) cmdHelp() []string {
	if !s.verbose {
		return []string{"?"}
	}
	if s.lastErr == nil {
		return nil
	}
	return []string{s.lastErr.Error()}
}

func (s *Session) cmdJoin(start, end int, addrGiven bool) error {
	if err := s.requireLines(); err != nil {
		return err
	}
	if !addrGiven {
		end = start + 1
		if end > s.buf.LineCount() {
			return ErrUndefined
		}
	}
	if end == start {
		return nil
	}
	s.checkpoint()
	merged := strings.Join(s.buf.ReadRange(start, end), "")
	s.buf.DeleteRange(start, end)
	s.buf.InsertLines(start-1, []string{merged})
	s.buf.SetCurrentLine(start)
	return nil
}

func (s *Session) cmdMark(args string, start int) error {
	if err := s.requireLines(); err != nil {
		return err
	}
	name := []rune(args)
	if len(name) != 1 {
		return ErrUndefined
	}
	// Captured by value: the mark keeps this number even when edits
	// above it renumber the line it pointed at.
	s.marks[name[0]] = start
	return nil
}

func (s *Session) cmdPrint(start, end int) ([]string, error) {
	if err := s.requireLines(); err != nil {
		return nil, err
	}
	s.buf.SetCurrentLine(end)
	return s.buf.ReadRange(start, end), nil
}

func (s *Session) cmdEnumerate(start, end int) ([]string, error) {
	if err := s.requireLines(); err != nil {
		return nil, err
	}
	lines := s.buf.ReadRange(start, end)
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = fmt.Sprintf("%d\t%s", start+i, line)
	}
	s.buf.SetCurrentLine(end)
	return out, nil
}

func (s *Session) cmdList(start, end int) ([]string, error) {
	if err := s.requireLines(); err != nil {
		return nil, err
	}
	lines := s.buf.ReadRange(start, end)
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = escapeLine(line)
	}
	s.buf.SetCurrentLine(end)
	return out, nil
}

// escapeLine renders one line unambiguously: backslashes, tabs and
// embedded dollar signs are escaped and the line end is marked with $.
func escapeLine(line string) string {
	var sb strings.Builder
	for _, r := range line {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '\t':
			sb.WriteString(`\t`)
		case '$':
			sb.WriteString(`\$`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('$')
	return sb.String()
}

// destination resolves the address argument of m and t. It may be 0,
// meaning the top of the buffer.
func (s *Session) destination(args string) (int, error) {
	dest, err := s.resolve(strings.TrimSpace(args))
	if err != nil {
		return 0, err
	}
	if dest < 0 || dest > s.buf.LineCount() {
		return 0, ErrUndefined
	}
	return dest, nil
}

func (s *Session) cmdMove(args string, start, end int) error {
	if err := s.requireLines(); err != nil {
		return err
	}
	dest, err := s.destination(args)
	if err != nil {
		return err
	}
	if start <= dest && dest < end {
		return ErrInvalidDestination
	}
	s.checkpoint()
	lines := s.buf.ReadRange(start, end)
	s.buf.DeleteRange(start, end)
	if dest >= end {
		dest -= end - start + 1
	}
	s.buf.InsertLines(dest, lines)
	s.buf.SetCurrentLine(dest + len(lines))
	return nil
}

func (s *Session) cmdTransfer(args string, start, end int) error {
	if err := s.requireLines(); err != nil {
		return err
	}
	dest, err := s.destination(args)
	if err != nil {
		return err
	}
	s.checkpoint()
	lines := s.buf.ReadRange(start, end)
	s.buf.InsertLines(dest, lines)
	s.buf.SetCurrentLine(dest + len(lines))
	return nil
}

func (s *Session) cmdRead(args string, start int, endGiven bool) ([]string, error) {
	if endGiven {
		return nil, ErrUndefined
	}
	if len(args) < 2 {
		return nil, ErrUndefined
	}
	path := args[1:]
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrCannotReadFile
	}
	lines := strings.Split(strings.TrimSuffix(string(buf), "\n"), "\n")
	start = s.clampInsert(start)
	s.checkpoint()
	s.buf.InsertLines(start, lines)
	s.buf.SetCurrentLine(start + len(lines))
	return []string{strconv.Itoa(len(buf))}, nil
}

func (s *Session) cmdWrite(args string, appendTo bool) ([]string, error) {
	var (
		n   int
		err error
	)
	if len(args) >= 2 && args[0] == ' ' {
		n, err = s.buf.SaveTo(args[1:], appendTo)
	} else if appendTo {
		n, err = s.buf.SaveTo(s.buf.Path(), true)
	} else {
		n, err = s.buf.Save()
	}
	if err != nil {
		return nil, err
	}
	return []string{strconv.Itoa(n)}, nil
}

func (s *Session) cmdScroll(args string, end int, addrGiven bool) ([]string, error) {
	if err := s.requireLines(); err != nil {
		return nil, err
	}
	if !addrGiven {
		end = s.buf.CurrentLine() + 1
	}
	if end < 1 || end > s.buf.LineCount() {
		return nil, ErrUndefined
	}
	if args = strings.TrimSpace(args); args != "" {
		n, err := strconv.Atoi(args)
		if err != nil || n < 1 {
			return nil, ErrInvalidNumber
		}
		s.scroll = n
	}
	to := end + s.scroll
	if n := s.buf.LineCount(); to > n {
		to = n
	}
	s.buf.SetCurrentLine(to)
	return s.buf.ReadRange(end, to), nil
}

// cmdShell runs args as a host shell command and echoes its output with
// the usual trailing marker. Unescaped % expands to the buffer path.
func (s *Session) cmdShell(args string, addrGiven bool) ([]string, error) {
	if addrGiven {
		return nil, ErrUndefined
	}
	command := strings.TrimSpace(args)
	if command == "" {
		return nil, ErrNoCmd
	}
	command = s.expandPath(command)
	out, err := exec.Command(s.shell, "-c", command).Output()
	if err != nil {
		// a nonzero exit still produced output worth echoing
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, err
		}
	}
	trimmed := strings.TrimRight(string(out), "\n")
	if trimmed == "" {
		return []string{"!"}, nil
	}
	return append(strings.Split(trimmed, "\n"), "!"), nil
}

func (s *Session) expandPath(command string) string {
	var sb strings.Builder
	escaped := false
	for _, r := range command {
		switch {
		case escaped:
			if r != '%' {
				sb.WriteByte('\\')
			}
			sb.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '%':
			sb.WriteString(s.buf.Path())
		default:
			sb.WriteRune(r)
		}
	}
	if escaped {
		sb.WriteByte('\\')
	}
	return sb.String()
}

// cmdSubstitute applies /from/to/ or /from/to/g over the range. Empty
// args repeat the previous substitution.
func (s *Session) cmdSubstitute(args string, start, end int) error {
	if err := s.requireLines(); err != nil {
		return err
	}
	re, replace, global := s.re, s.subReplace, s.subGlobal
	if args != "" {
		if args[0] != '/' {
			return ErrInvalidPatternDelim
		}
		fields := strings.Split(args[1:], "/")
		if len(fields) < 2 || len(fields) > 3 {
			return ErrInvalidPatternDelim
		}
		if len(fields) == 3 && fields[2] != "" && fields[2] != "g" {
			return ErrInvalidPatternDelim
		}
		global = len(fields) == 3 && fields[2] == "g"
		var err error
		re, err = s.searchPattern("/"+fields[0], '/')
		if err != nil {
			return err
		}
		replace = fields[1]
	}
	if re == nil {
		return ErrNoPrevPattern
	}

	var subs int
	for i := start; i <= end; i++ {
		line := s.buf.ReadRange(i, i)[0]
		loc := re.FindStringIndex(line)
		if loc == nil {
			continue
		}
		var replaced string
		if global {
			replaced = re.ReplaceAllLiteralString(line, replace)
		} else {
			replaced = line[:loc[0]] + replace + line[loc[1]:]
		}
		if subs == 0 {
			s.checkpoint()
		}
		s.buf.DeleteRange(i, i)
		s.buf.InsertLines(i-1, []string{replaced})
		s.buf.SetCurrentLine(i)
		subs++
	}
	s.re = re
	s.subReplace = replace
	s.subGlobal = global
	if subs == 0 {
		return ErrNoMatch
	}
	return nil
}

// cmdGlobal implements g and v: build the list of matching (or, for v,
// non-matching) lines first, then run the command list once per marked
// line. The range defaults to the whole buffer. Buffer shrinkage during
// the run is corrected the same way subsequent marked lines shift.
func (s *Session) cmdGlobal(letter rune, args string, start, end int, addrGiven bool) ([]string, bool, error) {
	if s.global {
		return nil, false, ErrCannotNestGlobal
	}
	if err := s.requireLines(); err != nil {
		return nil, false, err
	}
	if !addrGiven {
		start, end = 1, s.buf.LineCount()
	}
	if args == "" {
		return nil, false, ErrInvalidPatternDelim
	}
	delim, rest := args[0], args[1:]
	if delim == ' ' {
		return nil, false, ErrInvalidPatternDelim
	}
	pattern, cmds, found := strings.Cut(rest, string(delim))
	if !found {
		pattern, cmds = rest, ""
	}
	re, err := s.searchPattern(string(delim)+pattern, delim)
	if err != nil {
		return nil, false, err
	}
	if cmds == "" {
		cmds = "p"
	}

	want := letter == 'g'
	var list []int
	for i := start; i <= end; i++ {
		if re.MatchString(s.buf.ReadRange(i, i)[0]) == want {
			list = append(list, i)
		}
	}

	s.global = true
	defer func() { s.global = false }()
	s.buf.Checkpoint()

	var out []string
	nl := s.buf.LineCount()
	for _, i := range list {
		line := i - (nl - s.buf.LineCount())
		if line < 1 || line > s.buf.LineCount() {
			continue
		}
		s.buf.SetCurrentLine(line)
		o, ended, err := s.command(cmds)
		if s.mode == awaitingText {
			// text entry cannot run inside a global: the command list
			// is the only input available
			s.mode = awaitingCommand
			return out, false, ErrUndefined
		}
		out = append(out, o...)
		if err != nil {
			return out, false, err
		}
		if ended {
			return out, true, nil
		}
	}
	return out, false, nil
}
