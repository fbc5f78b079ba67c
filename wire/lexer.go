package wire

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// ExpectedVersion is the SAS+ translator-output format version this
// parser accepts.
const ExpectedVersion = 3

// lineReader buffers the whole input by line: every field of the format
// occupies exactly one line, whitespace-separated when it packs several
// numbers, or kept whole when it is a name (which may itself contain
// spaces). Buffering upfront keeps line numbers trivial to report in
// ParseError and keeps the parser itself a simple, linear walk.
type lineReader struct {
	lines []string
	idx   int
}

func newLineReader(r io.Reader) (*lineReader, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return &lineReader{lines: lines}, nil
}

// next returns the next raw line, advancing the cursor.
func (l *lineReader) next() (string, error) {
	if l.idx >= len(l.lines) {
		return "", &ParseError{Line: l.idx + 1, Expected: "more input", Found: "end of file"}
	}
	line := l.lines[l.idx]
	l.idx++
	return line, nil
}

// expect consumes the next line and requires it to equal word exactly
// (after trimming), the magic-word check every begin_X/end_X marker needs.
func (l *lineReader) expect(word string) error {
	line, err := l.next()
	if err != nil {
		return err
	}
	if strings.TrimSpace(line) != word {
		return &ParseError{
			Line:       l.idx,
			Expected:   word,
			Found:      line,
			Suggestion: "check that every begin_X has a matching end_X and no section was skipped",
		}
	}
	return nil
}

// nextInt consumes the next line and parses it as a single integer.
func (l *lineReader) nextInt() (int, error) {
	line, err := l.next()
	if err != nil {
		return 0, err
	}
	v, convErr := strconv.Atoi(strings.TrimSpace(line))
	if convErr != nil {
		return 0, &ParseError{Line: l.idx, Expected: "an integer", Found: line}
	}
	return v, nil
}

// nextInts consumes the next line and parses every whitespace-separated
// field on it as an integer.
func (l *lineReader) nextInts() ([]int, error) {
	line, err := l.next()
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(line)
	out := make([]int, len(fields))
	for i, f := range fields {
		v, convErr := strconv.Atoi(f)
		if convErr != nil {
			return nil, &ParseError{Line: l.idx, Expected: "an integer", Found: f}
		}
		out[i] = v
	}
	return out, nil
}

// nextIntPair is nextInts specialized to the common "<var> <value>" row.
func (l *lineReader) nextIntPair() (int, int, error) {
	fields, err := l.nextInts()
	if err != nil {
		return 0, 0, err
	}
	if len(fields) != 2 {
		return 0, 0, &ParseError{Line: l.idx, Expected: "two integers", Found: strconv.Itoa(len(fields)) + " fields"}
	}
	return fields[0], fields[1], nil
}

// nextIntTriple is nextInts specialized to the axiom "<var> <old> <new>" row.
func (l *lineReader) nextIntTriple() (int, int, int, error) {
	fields, err := l.nextInts()
	if err != nil {
		return 0, 0, 0, err
	}
	if len(fields) != 3 {
		return 0, 0, 0, &ParseError{Line: l.idx, Expected: "three integers", Found: strconv.Itoa(len(fields)) + " fields"}
	}
	return fields[0], fields[1], fields[2], nil
}
