package dataset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rewired-gh/surveyboard/internal/config"
	"github.com/rewired-gh/surveyboard/internal/logger"
	"github.com/rewired-gh/surveyboard/internal/models"
)

var (
	// ErrMissingColumn is returned when a required header is absent from the sheet
	ErrMissingColumn = errors.New("required column missing")
	// ErrNoSheets is returned for a workbook without worksheets
	ErrNoSheets = errors.New("workbook has no sheets")
)

// Columns names the header cells holding each record field
type Columns struct {
	Topic    string
	Source   string
	Response string
}

// Load reads the spreadsheet named by cfg.Path. Paths starting with http:// or
// https:// are downloaded first.
func Load(ctx context.Context, cfg config.DatasetConfig) (*Dataset, error) {
	cols := Columns{
		Topic:    cfg.TopicColumn,
		Source:   cfg.SourceColumn,
		Response: cfg.ResponseColumn,
	}

	var (
		f   *excelize.File
		err error
	)
	if isRemote(cfg.Path) {
		logger.Info("Downloading dataset from %s", cfg.Path)
		body, fetchErr := newFetcher(cfg.FetchTimeout, cfg.MaxRetries, cfg.RetryDelayBase).fetch(ctx, cfg.Path)
		if fetchErr != nil {
			return nil, fmt.Errorf("failed to download dataset: %w", fetchErr)
		}
		f, err = excelize.OpenReader(bytes.NewReader(body))
	} else {
		f, err = excelize.OpenFile(cfg.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", cfg.Path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn("Failed to close workbook: %v", err)
		}
	}()

	records, err := readRecords(f, cfg.Sheet, cols)
	if err != nil {
		return nil, err
	}
	return New(records), nil
}

// readRecords extracts one ResponseRecord per data row of the sheet.
// An empty sheet name selects the first sheet.
func readRecords(f *excelize.File, sheet string, cols Columns) ([]models.ResponseRecord, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrNoSheets
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q: %w: %s", sheet, ErrMissingColumn, cols.Topic)
	}

	header := rows[0]
	idx := make([]int, 3)
	for i, name := range []string{cols.Topic, cols.Source, cols.Response} {
		idx[i] = columnIndex(header, name)
		if idx[i] < 0 {
			return nil, fmt.Errorf("sheet %q: %w: %s", sheet, ErrMissingColumn, name)
		}
	}
	topicIdx, sourceIdx, responseIdx := idx[0], idx[1], idx[2]

	records := make([]models.ResponseRecord, 0, len(rows)-1)
	skipped := 0
	for i, row := range rows[1:] {
		record := models.ResponseRecord{
			TopicID:  models.NormalizeID(cell(row, topicIdx)),
			Source:   strings.TrimSpace(cell(row, sourceIdx)),
			Response: strings.TrimSpace(cell(row, responseIdx)),
		}
		if err := record.Validate(); err != nil {
			// Spreadsheet row numbers are 1-based and the header takes row 1
			logger.Debug("Skipping row %d: %v", i+2, err)
			skipped++
			continue
		}
		records = append(records, record)
	}

	logger.Debug("Read %d rows from sheet %q (%d skipped)", len(records), sheet, skipped)
	return records, nil
}

// columnIndex finds a header cell by case-insensitive name, or returns -1
func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(name)) {
			return i
		}
	}
	return -1
}

// cell returns row[idx], treating cells past the end of a short row as empty
func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
