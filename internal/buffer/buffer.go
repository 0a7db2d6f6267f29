// Package buffer implements the line store the interpreter edits: an
// ordered sequence of lines with a 1-based current-line cursor, a
// modified flag and checkpoint-based undo. Line 0 is the empty position
// before the first line; inserting "after line 0" prepends.
package buffer

import (
	"errors"
	"regexp"
)

var ErrNothingToUndo = errors.New("nothing to undo")

// checkpoint is a full snapshot of the buffer taken before a mutating
// command. Undo restores the most recent one.
type checkpoint struct {
	lines []string
	dot   int
	dirty bool
}

type Buffer struct {
	lines []string
	dot   int
	dirty bool
	path  string
	undo  []checkpoint
}

// New returns a buffer holding the given lines, with the cursor on the
// last of them.
func New(lines ...string) *Buffer {
	b := &Buffer{lines: append([]string{}, lines...)}
	b.dot = len(b.lines)
	return b
}

func (b *Buffer) LineCount() int       { return len(b.lines) }
func (b *Buffer) CurrentLine() int     { return b.dot }
func (b *Buffer) SetCurrentLine(n int) { b.dot = n }
func (b *Buffer) Modified() bool       { return b.dirty }
func (b *Buffer) Path() string         { return b.path }
func (b *Buffer) SetPath(path string)  { b.path = path }

// ReadRange returns a copy of lines start through end, inclusive.
func (b *Buffer) ReadRange(start, end int) []string {
	out := make([]string, end-start+1)
	copy(out, b.lines[start-1:end])
	return out
}

// InsertLines places lines after line `after` and marks the buffer
// modified. Lines below the insertion point renumber implicitly.
func (b *Buffer) InsertLines(after int, lines []string) {
	ins := append([]string{}, lines...)
	b.lines = append(b.lines[:after], append(ins, b.lines[after:]...)...)
	b.dirty = true
}

// DeleteRange removes lines start through end, inclusive.
func (b *Buffer) DeleteRange(start, end int) {
	b.lines = append(b.lines[:start-1], b.lines[end:]...)
	b.dirty = true
}

// SearchForward scans from line `from` towards the end of the buffer and
// returns the first line matching re. The scan does not wrap.
func (b *Buffer) SearchForward(re *regexp.Regexp, from int) (int, bool) {
	if from < 1 {
		from = 1
	}
	for i := from; i <= len(b.lines); i++ {
		if re.MatchString(b.lines[i-1]) {
			return i, true
		}
	}
	return 0, false
}

// SearchBackward scans from line `from` towards the start of the buffer
// and returns the nearest line matching re. The scan does not wrap.
func (b *Buffer) SearchBackward(re *regexp.Regexp, from int) (int, bool) {
	if from > len(b.lines) {
		from = len(b.lines)
	}
	for i := from; i >= 1; i-- {
		if re.MatchString(b.lines[i-1]) {
			return i, true
		}
	}
	return 0, false
}

// Checkpoint snapshots the buffer so the next Undo restores it. Every
// mutation between two checkpoints is undone as one step.
func (b *Buffer) Checkpoint() {
	lines := make([]string, len(b.lines))
	copy(lines, b.lines)
	b.undo = append(b.undo, checkpoint{lines: lines, dot: b.dot, dirty: b.dirty})
}

// Undo restores the buffer, cursor and modified flag to the most recent
// checkpoint.
func (b *Buffer) Undo() error {
	if len(b.undo) < 1 {
		return ErrNothingToUndo
	}
	cp := b.undo[len(b.undo)-1]
	b.undo = b.undo[:len(b.undo)-1]
	b.lines = cp.lines
	b.dot = cp.dot
	b.dirty = cp.dirty
	return nil
}
