package loader

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Terminator ends every section.
const Terminator = "%%"

// Section names in file order.
var sectionNames = [...]string{"params", "locations", "items", "commands", "strings", "hints", "script"}

const (
	secParams = iota
	secLocations
	secItems
	secCommands
	secStrings
	secHints
	secScript
	numSections
)

// record is one tab-separated line and the line number it came from.
type record struct {
	line   int
	fields []string
}

// section holds the records of one section. The script section keeps its
// raw lines instead.
type section struct {
	name    string
	start   int // line number of the first line of the section
	records []record
	raw     []string
}

// LineError locates a problem in the data file.
type LineError struct {
	Section string
	Line    int
	Err     error
}

func (e *LineError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %v", e.Section, e.Err)
	}
	return fmt.Sprintf("line %d (%s): %v", e.Line, e.Section, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// readSections splits the data into its seven sections. Blank lines
// outside the script are skipped.
func readSections(r io.Reader) ([numSections]section, error) {
	var secs [numSections]section
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	cur, line := 0, 0
	secs[0] = section{name: sectionNames[0], start: 1}
	for sc.Scan() {
		line++
		text := strings.TrimSuffix(sc.Text(), "\r")
		if cur == numSections {
			if strings.TrimSpace(text) != "" {
				return secs, &LineError{Section: "end", Line: line, Err: fmt.Errorf("data after the last section")}
			}
			continue
		}
		if text == Terminator {
			cur++
			if cur < numSections {
				secs[cur] = section{name: sectionNames[cur], start: line + 1}
			}
			continue
		}
		s := &secs[cur]
		if cur == secScript {
			s.raw = append(s.raw, text)
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		s.records = append(s.records, record{line: line, fields: strings.Split(text, "\t")})
	}
	if err := sc.Err(); err != nil {
		return secs, fmt.Errorf("reading data: %w", err)
	}
	if cur < numSections {
		return secs, fmt.Errorf("missing %s section terminator %q (file ends in the %s section)",
			sectionNames[cur], Terminator, sectionNames[cur])
	}
	return secs, nil
}
