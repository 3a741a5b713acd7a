package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/musicraft-academy/aptitude-service/internal/models"
)

// Field is one key/value pair of an export row. Rows are ordered field lists
// rather than maps so the header order is deterministic.
type Field struct {
	Key   string
	Value any
}

// Record is one flat export row.
type Record []Field

// ExportService serializes attempt results for download and builds shareable
// summaries. The tabular functions are shape-agnostic: they accept arbitrary
// flat records prepared by the caller.
type ExportService interface {
	ToTable(records []Record) []byte
	ToExcel(records []Record) ([]byte, error)
	AttemptRows(attempts []models.AssessmentAttempt) []Record
	ToShareSummary(attempt *models.AssessmentAttempt) ShareSummary
	ShareLink(baseURL string, attempt *models.AssessmentAttempt) (string, error)
}

type exportService struct {
	logger *slog.Logger
}

func NewExportService(logger *slog.Logger) ExportService {
	return &exportService{logger: logger}
}

// ToTable produces CSV text: a header row from the first record's keys in
// order, then one row per record, with RFC 4180 escaping. An empty input is a
// no-op and returns nil; nothing to export is an expected steady state.
func (s *exportService) ToTable(records []Record) []byte {
	if len(records) == 0 {
		return nil
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, len(records[0]))
	for i, field := range records[0] {
		header[i] = field.Key
	}
	_ = w.Write(header)

	for _, record := range records {
		row := make([]string, len(record))
		for i, field := range record {
			row[i] = formatValue(field.Value)
		}
		_ = w.Write(row)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		s.logger.Warn("csv export produced a write error", "error", err)
	}
	return buf.Bytes()
}

// ToExcel produces an XLSX workbook with the same layout as ToTable. Empty
// input returns nil without error.
func (s *exportService) ToExcel(records []Record) ([]byte, error) {
	if len(records) == 0 {
		return nil, nil
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Results"
	f.SetSheetName("Sheet1", sheet)

	header := make([]any, len(records[0]))
	for i, field := range records[0] {
		header[i] = field.Key
	}
	if err := writeExcelRow(f, sheet, 1, header); err != nil {
		return nil, err
	}

	for rowIdx, record := range records {
		row := make([]any, len(record))
		for i, field := range record {
			row[i] = field.Value
		}
		if err := writeExcelRow(f, sheet, rowIdx+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeExcelRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

// AttemptRows flattens attempts into one export row each, with per-section
// score and band columns.
func (s *exportService) AttemptRows(attempts []models.AssessmentAttempt) []Record {
	records := make([]Record, 0, len(attempts))
	for i := range attempts {
		attempt := &attempts[i]

		completedAt := ""
		if attempt.CompletedAt != nil {
			completedAt = time.UnixMilli(*attempt.CompletedAt).UTC().Format(time.RFC3339)
		}

		record := Record{
			{Key: "attemptId", Value: attempt.ID},
			{Key: "completedAt", Value: completedAt},
			{Key: "overallScore", Value: attempt.OverallScore},
			{Key: "overallBand", Value: string(attempt.OverallBand)},
			{Key: "recommendedLevel", Value: string(attempt.RecommendedLevel)},
		}
		for _, score := range attempt.SectionScores {
			record = append(record,
				Field{Key: score.SectionID + "_score", Value: score.NormalizedScore},
				Field{Key: score.SectionID + "_band", Value: string(score.Band)},
			)
		}
		records = append(records, record)
	}
	return records
}

// ShareSummary is the minimal JSON-serializable result payload embedded in a
// share link. It is informational only; the persisted attempt stays
// authoritative.
type ShareSummary struct {
	OverallScore     int              `json:"overallScore"`
	OverallBand      models.Band      `json:"overallBand"`
	RecommendedLevel string           `json:"recommendedLevel"`
	Sections         []SectionSummary `json:"sections"`
}

type SectionSummary struct {
	Section string      `json:"section"`
	Score   int         `json:"score"`
	Band    models.Band `json:"band"`
}

func (s *exportService) ToShareSummary(attempt *models.AssessmentAttempt) ShareSummary {
	sections := make([]SectionSummary, 0, len(attempt.SectionScores))
	for _, score := range attempt.SectionScores {
		sections = append(sections, SectionSummary{
			Section: score.SectionID,
			Score:   score.NormalizedScore,
			Band:    score.Band,
		})
	}
	return ShareSummary{
		OverallScore:     attempt.OverallScore,
		OverallBand:      attempt.OverallBand,
		RecommendedLevel: string(attempt.RecommendedLevel),
		Sections:         sections,
	}
}

// ShareLink embeds the summary as a URL-encoded data query parameter on the
// attempt's result page. No signature or integrity check is applied.
func (s *exportService) ShareLink(baseURL string, attempt *models.AssessmentAttempt) (string, error) {
	summary := s.ToShareSummary(attempt)
	data, err := json.Marshal(summary)
	if err != nil {
		return "", fmt.Errorf("failed to encode share summary: %w", err)
	}
	return fmt.Sprintf("%s/%s?data=%s", baseURL, attempt.ID, url.QueryEscape(string(data))), nil
}

func formatValue(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		return fmt.Sprint(value)
	}
}
