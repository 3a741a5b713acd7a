package services

import (
	"bytes"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/musicraft-academy/aptitude-service/internal/models"
	"github.com/musicraft-academy/aptitude-service/internal/utils"
)

func newExportService() ExportService {
	return NewExportService(utils.ToSlogLogger(utils.NewDevelopmentLogger()))
}

func TestToTable_Escaping(t *testing.T) {
	svc := newExportService()

	records := []Record{
		{{Key: "a", Value: 1}, {Key: "b", Value: "x,y"}},
		{{Key: "a", Value: 2}, {Key: "b", Value: `He said "hi"`}},
	}

	content := svc.ToTable(records)
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, "a,b", lines[0])
	assert.Equal(t, `1,"x,y"`, lines[1])
	assert.Equal(t, `2,"He said ""hi"""`, lines[2])
}

func TestToTable_EmptyInputIsNoOp(t *testing.T) {
	svc := newExportService()
	assert.Nil(t, svc.ToTable(nil))
	assert.Nil(t, svc.ToTable([]Record{}))
}

func TestAttemptRows(t *testing.T) {
	svc := newExportService()
	completedAt := int64(1700000000000)

	attempts := []models.AssessmentAttempt{{
		ID:          "abc-123",
		StartedAt:   1699999000000,
		CompletedAt: &completedAt,
		SectionScores: []models.SectionScore{
			{SectionID: "attention", NormalizedScore: 80, Band: models.BandA},
			{SectionID: "rhythm", NormalizedScore: 55, Band: models.BandC},
		},
		OverallScore:     70,
		OverallBand:      models.BandB,
		RecommendedLevel: models.LevelIntermediate,
	}}

	rows := svc.AttemptRows(attempts)
	require.Len(t, rows, 1)

	content := string(svc.ToTable(rows))
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t,
		"attemptId,completedAt,overallScore,overallBand,recommendedLevel,attention_score,attention_band,rhythm_score,rhythm_band",
		lines[0])
	assert.Equal(t, "abc-123,2023-11-14T22:13:20Z,70,B,Intermediate,80,A,55,C", lines[1])
}

func TestToExcel(t *testing.T) {
	svc := newExportService()

	content, err := svc.ToExcel([]Record{
		{{Key: "attemptId", Value: "a1"}, {Key: "overallScore", Value: 92}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, content)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Results", "A1")
	require.NoError(t, err)
	assert.Equal(t, "attemptId", header)

	score, err := f.GetCellValue("Results", "B2")
	require.NoError(t, err)
	assert.Equal(t, "92", score)
}

func TestToExcel_EmptyInputIsNoOp(t *testing.T) {
	svc := newExportService()
	content, err := svc.ToExcel(nil)
	require.NoError(t, err)
	assert.Nil(t, content)
}

func TestToShareSummary(t *testing.T) {
	svc := newExportService()

	attempt := &models.AssessmentAttempt{
		ID:           "abc",
		OverallScore: 88,
		OverallBand:  models.BandA,
		SectionScores: []models.SectionScore{
			{SectionID: "pitch", NormalizedScore: 92, Band: models.BandA},
		},
		RecommendedLevel: models.LevelAdvanced,
	}

	summary := svc.ToShareSummary(attempt)
	assert.Equal(t, 88, summary.OverallScore)
	assert.Equal(t, models.BandA, summary.OverallBand)
	assert.Equal(t, "Advanced", summary.RecommendedLevel)
	require.Len(t, summary.Sections, 1)
	assert.Equal(t, SectionSummary{Section: "pitch", Score: 92, Band: models.BandA}, summary.Sections[0])
}

func TestShareLink(t *testing.T) {
	svc := newExportService()

	attempt := &models.AssessmentAttempt{
		ID:               "abc-123",
		OverallScore:     88,
		OverallBand:      models.BandA,
		RecommendedLevel: models.LevelAdvanced,
	}

	link, err := svc.ShareLink("https://example.com/result", attempt)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "https://example.com/result/abc-123?data="))

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	data := parsed.Query().Get("data")
	assert.Contains(t, data, `"overallScore":88`)
	assert.Contains(t, data, `"overallBand":"A"`)
}
