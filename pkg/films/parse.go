package films

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Row is a dataset line that matched the requested year.
type Row struct {
	Name     string
	Location string
}

type lineStatus int

const (
	lineMatched lineStatus = iota
	lineOtherYear
	lineMalformed
)

// ParseLine extracts the film name and filming location from a
// tab-separated dataset line, reporting false unless the name carries the
// "(YYYY)" token for year and a location can be found.
func ParseLine(line string, year int) (Row, bool) {
	r, st := parseLine(line, yearToken(year))
	return r, st == lineMatched
}

func yearToken(year int) string {
	return "(" + strconv.Itoa(year) + ")"
}

// The location is the last field, unless that field is a parenthetical note
// such as "(studio)", in which case it is the one before.
func parseLine(line, token string) (Row, lineStatus) {
	line = strings.TrimRight(line, "\r\n")
	fields := strings.Split(line, "\t")
	name := strings.TrimSpace(fields[0])
	if !strings.Contains(name, token) {
		return Row{}, lineOtherYear
	}
	i := len(fields) - 1
	if isParenthetical(fields[i]) {
		i--
	}
	if i < 1 {
		return Row{}, lineMalformed
	}
	loc := strings.TrimSpace(fields[i])
	if loc == "" {
		return Row{}, lineMalformed
	}
	return Row{Name: name, Location: loc}, lineMatched
}

func isParenthetical(s string) bool {
	return strings.Contains(s, "(") && strings.Contains(s, ")")
}

// Stats counts what happened to the lines of one scan.
type Stats struct {
	Lines      int
	Matched    int
	Malformed  int
	Unresolved int
}

const maxLineSize = 1024 * 1024

var BOM = [3]byte{0xef, 0xbb, 0xbf}

// Scanner yields the rows of a dataset that match one year.
type Scanner struct {
	lines *bufio.Scanner
	token string
	row   Row
	stats Stats
	err   error
}

func NewScanner(r io.Reader, year int) *Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), maxLineSize)
	return &Scanner{lines: s, token: yearToken(year)}
}

func (s *Scanner) Scan() bool {
	for s.lines.Scan() {
		line := s.lines.Text()
		if s.stats.Lines == 0 {
			line = strings.TrimPrefix(line, string(BOM[:]))
		}
		s.stats.Lines++
		row, st := parseLine(line, s.token)
		switch st {
		case lineMalformed:
			s.stats.Malformed++
		case lineMatched:
			s.stats.Matched++
			s.row = row
			return true
		}
	}
	s.err = s.lines.Err()
	return false
}

func (s *Scanner) Row() Row {
	return s.row
}

func (s *Scanner) Err() error {
	return s.err
}

func (s *Scanner) Stats() Stats {
	return s.stats
}
