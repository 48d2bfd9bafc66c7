// Package parser converts raw uploaded text content into structured
// person-record fields.
//
// Input grammar: UTF-8 text, one record per line, fields separated by '|' in
// the fixed column order
//
//	serial number | full name | voter number | father's name | mother's name |
//	occupation | date of birth | address | phone number | facebook link |
//	photo link | description
//
// Every field is trimmed of surrounding whitespace. Lines may omit trailing
// fields; omitted fields become empty strings. Blank lines and lines starting
// with '#' are ignored. An optional first line repeating the canonical column
// names is treated as a header and skipped. A line with more fields than the
// schema, or whose fields are all empty, is malformed: it is skipped and
// counted, never fatal. Source files are manually curated and error-prone, so
// partial ingestion is preferred over all-or-nothing.
package parser

import "strings"

// FieldDelimiter separates fields within a record line.
const FieldDelimiter = "|"

// NumFields is the number of columns in the record grammar.
const NumFields = 12

// headerNames are the canonical column names an optional header line carries,
// lowercased for comparison.
var headerNames = []string{
	"serial_number", "full_name", "voter_number", "father_name",
	"mother_name", "occupation", "date_of_birth", "address",
	"phone_number", "facebook_link", "photo_link", "description",
}

// Fields holds the parsed attributes of a single record line. The field set
// matches the record attribute columns exactly; identity, batch reference and
// relationship status are assigned later by the store.
type Fields struct {
	SerialNumber string
	FullName     string
	VoterNumber  string
	FatherName   string
	MotherName   string
	Occupation   string
	DateOfBirth  string
	Address      string
	PhoneNumber  string
	FacebookLink string
	PhotoLink    string
	Description  string
}

// Result is the outcome of parsing one file's content.
type Result struct {
	Records []Fields
	Skipped int // malformed lines skipped
}

// Parse converts one file's raw content into record fields. It never fails:
// malformed lines are skipped and counted in Result.Skipped.
func Parse(content string) Result {
	var res Result

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if i == 0 && isHeaderLine(trimmed) {
			continue
		}

		fields, ok := parseLine(line)
		if !ok {
			res.Skipped++
			continue
		}
		res.Records = append(res.Records, fields)
	}

	return res
}

// parseLine splits a single line into record fields. ok is false when the
// line is malformed.
func parseLine(line string) (Fields, bool) {
	parts := strings.Split(line, FieldDelimiter)
	if len(parts) > NumFields {
		return Fields{}, false
	}

	cols := make([]string, NumFields)
	empty := true
	for i, p := range parts {
		cols[i] = strings.TrimSpace(p)
		if cols[i] != "" {
			empty = false
		}
	}
	if empty {
		return Fields{}, false
	}

	return Fields{
		SerialNumber: cols[0],
		FullName:     cols[1],
		VoterNumber:  cols[2],
		FatherName:   cols[3],
		MotherName:   cols[4],
		Occupation:   cols[5],
		DateOfBirth:  cols[6],
		Address:      cols[7],
		PhoneNumber:  cols[8],
		FacebookLink: cols[9],
		PhotoLink:    cols[10],
		Description:  cols[11],
	}, true
}

// isHeaderLine reports whether a line is the canonical column-name header.
func isHeaderLine(line string) bool {
	parts := strings.Split(line, FieldDelimiter)
	if len(parts) == 0 || len(parts) > NumFields {
		return false
	}
	for i, p := range parts {
		if strings.ToLower(strings.TrimSpace(p)) != headerNames[i] {
			return false
		}
	}
	return true
}
