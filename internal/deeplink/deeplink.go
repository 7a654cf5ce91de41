// ABOUTME: Deep-link payload encoding for the external mini-application
// ABOUTME: Fields are percent-encoded independently so '|' inside a URL cannot break the framing

package deeplink

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	fieldSep        = "|"
	recordSep       = "|||"
	fieldsPerRecord = 5

	// uploadPath is the mini-application endpoint that consumes one record.
	uploadPath = "/?uploadnew="
)

// Record is one exported link. Empty fields are allowed and encode as empty.
type Record struct {
	URL         string
	Title       string
	Description string
	Category    string
	Color       string
}

// Encode renders records as pipe-delimited fields joined by a triple-pipe
// record separator. Every field is percent-encoded before joining, so the
// payload can be split on the separators without ambiguity.
func Encode(records []Record) string {
	encoded := make([]string, len(records))
	for i, r := range records {
		fields := []string{r.URL, r.Title, r.Description, r.Category, r.Color}
		for j, f := range fields {
			fields[j] = url.QueryEscape(f)
		}
		encoded[i] = strings.Join(fields, fieldSep)
	}
	return strings.Join(encoded, recordSep)
}

// UploadLink builds the single-record deep link shown after a category is
// assigned.
func UploadLink(r Record) string {
	return uploadPath + Encode([]Record{r})
}

// Decode parses a payload produced by Encode. Records are framed by field
// count rather than by searching for the record separator: empty trailing
// fields make a record end in "|", so naive splitting on "|||" would misread
// the boundary. Every field is percent-encoded, so splitting the whole
// payload on "|" yields exactly 5 cells per record plus 2 empty cells
// between records.
func Decode(payload string) ([]Record, error) {
	if payload == "" {
		return nil, nil
	}

	cells := strings.Split(payload, fieldSep)
	if (len(cells)+2)%(fieldsPerRecord+2) != 0 {
		return nil, fmt.Errorf("malformed payload: %d cells do not frame whole records", len(cells))
	}

	var records []Record
	for i := 0; i < len(cells); i += fieldsPerRecord + 2 {
		if i > 0 && (cells[i-2] != "" || cells[i-1] != "") {
			return nil, fmt.Errorf("malformed payload: record separator expected before cell %d", i)
		}
		fields := make([]string, fieldsPerRecord)
		for j := range fields {
			decoded, err := url.QueryUnescape(cells[i+j])
			if err != nil {
				return nil, fmt.Errorf("decoding field %d: %w", j, err)
			}
			fields[j] = decoded
		}
		records = append(records, Record{
			URL:         fields[0],
			Title:       fields[1],
			Description: fields[2],
			Category:    fields[3],
			Color:       fields[4],
		})
	}
	return records, nil
}
