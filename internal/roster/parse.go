// Package roster reads candidate lists uploaded by admins.
package roster

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dhruvi159/Voxhire-Project/internal/models"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported candidate list format")
	ErrNoRows            = errors.New("candidate list is empty")
	ErrMissingEmail      = errors.New("candidate list has no Email column")
)

type format int

const (
	formatUnknown format = iota
	formatXLSX
	formatCSV
)

func detect(filename, contentType string) format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case ext == ".xlsx" || strings.Contains(contentType, "spreadsheet"):
		return formatXLSX
	case ext == ".csv" || strings.Contains(contentType, "csv"):
		return formatCSV
	default:
		return formatUnknown
	}
}

// Supported reports whether Parse can read the file.
func Supported(filename, contentType string) bool {
	return detect(filename, contentType) != formatUnknown
}

// Parse reads the first sheet (or the CSV body) and returns rows that carry
// an email. The first row is a header; Name and Email columns are matched
// case-insensitively.
func Parse(filename, contentType string, body []byte) ([]models.RosterEntry, error) {
	var rows [][]string
	var err error
	switch detect(filename, contentType) {
	case formatXLSX:
		rows, err = xlsxRows(body)
	case formatCSV:
		rows, err = csvRows(body)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}
	return entries(rows)
}

func xlsxRows(body []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoRows
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func csvRows(body []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(body, []byte("\xef\xbb\xbf"))))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func entries(rows [][]string) ([]models.RosterEntry, error) {
	if len(rows) < 2 {
		return nil, ErrNoRows
	}

	nameCol, emailCol := -1, -1
	for i, h := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "name":
			nameCol = i
		case "email":
			emailCol = i
		}
	}
	if emailCol < 0 {
		return nil, ErrMissingEmail
	}

	out := make([]models.RosterEntry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		email := strings.TrimSpace(cell(row, emailCol))
		if email == "" {
			continue
		}
		out = append(out, models.RosterEntry{
			Name:  strings.TrimSpace(cell(row, nameCol)),
			Email: strings.ToLower(email),
		})
	}
	return out, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
