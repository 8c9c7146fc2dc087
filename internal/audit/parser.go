package audit

import (
	"fmt"
	"strings"
)

// Parser splits raw lines into Records. The file contract: one record per
// line, fields separated by Delimiter in the order identifier, secret,
// last-changed date.
type Parser struct {
	Delimiter string
}

// NewParser creates a Parser for the given field delimiter.
func NewParser(delimiter string) *Parser {
	return &Parser{Delimiter: delimiter}
}

// Parse turns one line into a Record or a ParseFailure. Whitespace-only
// lines yield neither (both returns nil): they are skipped silently.
//
// Lines with more than three fields keep the first field as identifier and
// the last as date; the middle fields are rejoined as the secret, so
// delimiters inside credential material do not break the record.
func (p *Parser) Parse(line Line) (*Record, *ParseFailure) {
	if strings.TrimSpace(line.Text) == "" {
		return nil, nil
	}

	fields := strings.Split(line.Text, p.Delimiter)
	if len(fields) < 3 {
		return nil, &ParseFailure{
			LineNo: line.No,
			Raw:    line.Text,
			Reason: fmt.Sprintf("expected 3 fields separated by %q, got %d", p.Delimiter, len(fields)),
		}
	}

	rec := &Record{
		LineNo:      line.No,
		Identifier:  strings.TrimSpace(fields[0]),
		Secret:      strings.TrimSpace(strings.Join(fields[1:len(fields)-1], p.Delimiter)),
		LastChanged: strings.TrimSpace(fields[len(fields)-1]),
	}
	return rec, nil
}
