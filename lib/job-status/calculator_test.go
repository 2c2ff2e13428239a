package jobstatus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ats-backend/models"
)

func strPtr(s string) *string {
	return &s
}

func TestCalculator(t *testing.T) {
	now := time.Date(2026, 10, 16, 14, 30, 0, 0, time.UTC)
	c := NewCalculator(3, 7)
	c.Now = func() time.Time { return now }

	t.Run(`draft check`, func(t *testing.T) {
		require.Equal(t, models.JobStatusDraft, c.Compute(nil, nil))
		require.Equal(t, models.JobStatusDraft, c.Compute(strPtr(""), strPtr("garbage")))
	})

	t.Run(`new and active check`, func(t *testing.T) {
		require.Equal(t, models.JobStatusNew, c.Compute(strPtr("2027-03-01"), strPtr(now.Format(time.RFC3339))))
		require.Equal(t, models.JobStatusNew, c.Compute(nil, strPtr("2026-10-14")))
		require.Equal(t, models.JobStatusActive, c.Compute(nil, strPtr("2026-10-13")))
		require.Equal(t, models.JobStatusActive, c.Compute(strPtr("2027-03-01"), strPtr("2026-09-01T08:00:00Z")))
		require.Equal(t, models.JobStatusNew, c.Compute(strPtr("2027-03-01"), nil))
	})

	t.Run(`closed check`, func(t *testing.T) {
		require.Equal(t, models.JobStatusClosed, c.Compute(strPtr("2026-10-15"), strPtr("2026-09-01")))
		require.Equal(t, models.JobStatusClosed, c.Compute(strPtr("2025-01-01"), nil))
	})

	t.Run(`closing soon check`, func(t *testing.T) {
		require.Equal(t, models.JobStatusClosingSoon, c.Compute(strPtr("2026-10-16"), strPtr("2026-09-01")))
		require.Equal(t, models.JobStatusClosingSoon, c.Compute(strPtr("2026-10-23"), strPtr("2026-09-01")))
		require.Equal(t, models.JobStatusActive, c.Compute(strPtr("2026-10-24"), strPtr("2026-09-01")))
	})

	t.Run(`totality and idempotence check`, func(t *testing.T) {
		values := []*string{nil, strPtr(""), strPtr("bad"), strPtr("2026-10-16"), strPtr("2020-01-01"),
			strPtr("2030-01-01"), strPtr("2026-10-20T10:00:00+03:00"), strPtr("2026-10-10 09:00:00")}
		for _, deadline := range values {
			for _, posted := range values {
				status := c.Compute(deadline, posted)
				require.True(t, status.IsValid())
				require.Equal(t, status, c.Compute(deadline, posted))
			}
		}
	})
}

func TestParseJobStatus(t *testing.T) {
	status, err := models.ParseJobStatus("closing-soon")
	require.Nil(t, err)
	require.Equal(t, models.JobStatusClosingSoon, status)
	require.True(t, status.IsPosted())

	_, err = models.ParseJobStatus("open")
	require.NotNil(t, err)
}
