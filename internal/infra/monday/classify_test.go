package monday

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cubicle_notifier/internal/domain/user"
)

func TestClassify(t *testing.T) {
	t.Run("critical average", func(t *testing.T) {
		action, needed := classify(user.UtilizationReport{AveragePct: 92.5, PeakPct: 98, TotalReservations: 500})
		require.True(t, needed)
		assert.Equal(t, priorityUrgent, action.Priority)
		assert.Equal(t, "Working on it", action.Status)
		assert.Contains(t, action.Summary, "92.5%")
	})

	t.Run("urgent boundary is inclusive", func(t *testing.T) {
		action, needed := classify(user.UtilizationReport{AveragePct: 90, PeakPct: 90})
		require.True(t, needed)
		assert.Equal(t, priorityUrgent, action.Priority)
	})

	t.Run("high average", func(t *testing.T) {
		action, needed := classify(user.UtilizationReport{AveragePct: 85, PeakPct: 88, TotalReservations: 400})
		require.True(t, needed)
		assert.Equal(t, priorityHigh, action.Priority)
		assert.Equal(t, "To Do", action.Status)
	})

	t.Run("spiky usage", func(t *testing.T) {
		action, needed := classify(user.UtilizationReport{AveragePct: 30, PeakPct: 75, PeakDay: "2024-03-01", TotalReservations: 200})
		require.True(t, needed)
		assert.Equal(t, priorityHigh, action.Priority)
		assert.Contains(t, action.Summary, "2024-03-01")
	})

	t.Run("spike of exactly 40 points is not spiky", func(t *testing.T) {
		_, needed := classify(user.UtilizationReport{AveragePct: 30, PeakPct: 70, TotalReservations: 200})
		assert.False(t, needed)
	})

	t.Run("promotional tier", func(t *testing.T) {
		action, needed := classify(user.UtilizationReport{AveragePct: 5, PeakPct: 10, TotalReservations: 4})
		require.True(t, needed)
		assert.Equal(t, priorityMedium, action.Priority)
		assert.Contains(t, action.Summary, "promotional")
	})

	t.Run("low average alone is not promotional", func(t *testing.T) {
		_, needed := classify(user.UtilizationReport{AveragePct: 20, PeakPct: 30, TotalReservations: 50})
		assert.False(t, needed)
	})

	t.Run("normal usage needs no task", func(t *testing.T) {
		_, needed := classify(user.UtilizationReport{AveragePct: 60, PeakPct: 80, TotalReservations: 300})
		assert.False(t, needed)
	})
}
