package buffer

import (
	"bufio"
	"errors"
	"log"
	"os"
)

var (
	ErrNoFileName     = errors.New("no current filename")
	ErrCannotOpenFile = errors.New("cannot open input file")
)

// Load replaces the buffer contents with the lines of the named file,
// remembers the path, puts the cursor on the last line and returns the
// file size in bytes. The loaded buffer is considered unmodified and its
// undo history is discarded.
func (b *Buffer) Load(path string) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, ErrCannotOpenFile
	}
	defer file.Close()
	stat, err := file.Stat()
	if err != nil {
		return 0, ErrCannotOpenFile
	}
	var lines []string
	s := bufio.NewScanner(file)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return 0, err
	}
	b.lines = lines
	b.path = path
	b.dot = len(lines)
	b.dirty = false
	b.undo = nil
	return stat.Size(), nil
}

// Save writes the whole buffer to its remembered path and returns the
// number of bytes written. A successful write clears the modified flag.
func (b *Buffer) Save() (int, error) {
	return b.SaveTo(b.path, false)
}

// SaveTo writes the whole buffer to the named file, appending instead of
// truncating when appendTo is set.
func (b *Buffer) SaveTo(path string, appendTo bool) (int, error) {
	if path == "" {
		return 0, ErrNoFileName
	}
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if appendTo {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	file, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return 0, err
	}
	defer file.Close()
	log.Printf("write %d lines to %s", len(b.lines), path)
	var siz int
	for _, line := range b.lines {
		n, err := file.WriteString(line + "\n")
		if err != nil {
			return siz, err
		}
		siz += n
	}
	b.dirty = false
	return siz, nil
}
