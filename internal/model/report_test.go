package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReportStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    ReportStatus
		to      ReportStatus
		allowed bool
	}{
		{ReportStatusPending, ReportStatusReviewing, true},
		{ReportStatusPending, ReportStatusResolved, true},
		{ReportStatusPending, ReportStatusDismissed, true},
		{ReportStatusReviewing, ReportStatusResolved, true},
		{ReportStatusReviewing, ReportStatusDismissed, true},
		{ReportStatusReviewing, ReportStatusPending, false},
		{ReportStatusReviewing, ReportStatusReviewing, false},
		{ReportStatusResolved, ReportStatusDismissed, false},
		{ReportStatusResolved, ReportStatusPending, false},
		{ReportStatusDismissed, ReportStatusResolved, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+" to "+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestReportStatus_Terminal(t *testing.T) {
	assert.False(t, ReportStatusPending.Terminal())
	assert.False(t, ReportStatusReviewing.Terminal())
	assert.True(t, ReportStatusResolved.Terminal())
	assert.True(t, ReportStatusDismissed.Terminal())
}

func TestContentReport_SoftDeleteKeepsStatus(t *testing.T) {
	report := &ContentReport{Status: ReportStatusReviewing}
	first := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	report.SoftDelete(first)

	assert.True(t, report.IsDeleted())
	assert.Equal(t, ReportStatusReviewing, report.Status)

	// A second soft delete keeps the original timestamp.
	report.SoftDelete(first.Add(time.Hour))
	assert.Equal(t, first, *report.DeletedAt)
}
