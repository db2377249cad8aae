package tui

import (
	"bytes"
	"testing"

	"github.com/aretw0/decompose/pkg/harness"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *harness.Report {
	return &harness.Report{
		Dataset: "hitom",
		Method:  "decompose",
		Overall: harness.Tally{Correct: 3, Total: 4},
		Errors:  1,
		Dimensions: []harness.Dimension{
			{Name: "order", Buckets: []harness.Bucket{
				{Value: "1", Tally: harness.Tally{Correct: 2, Total: 2}},
				{Value: "2", Tally: harness.Tally{Correct: 1, Total: 2}},
			}},
		},
		LogPath: "results/hitom_decompose_4.jsonl",
	}
}

func TestReportMarkdown(t *testing.T) {
	md := ReportMarkdown(sampleReport())
	assert.Contains(t, md, "# hitom / decompose")
	assert.Contains(t, md, "| overall | 3 | 4 | 75.00% |")
	assert.Contains(t, md, "## By order")
	assert.Contains(t, md, "| 2 | 1 | 2 | 50.00% |")
	assert.Contains(t, md, "Errors: 1, skipped: 0")
	assert.Contains(t, md, "results/hitom_decompose_4.jsonl")
}

func TestWriteReport_Plain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, sampleReport(), false))
	assert.Equal(t, ReportMarkdown(sampleReport()), buf.String())
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.NotEmpty(t, buf.String())
}
