package derive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAging_Thresholds(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	a := Aging(now.Add(-10*time.Hour), "New", now, Policy{})
	require.Equal(t, 10, a.AgeHours)
	require.False(t, a.IsOverdue)
	require.False(t, a.IsCritical)

	a = Aging(now.Add(-30*time.Hour), "New", now, Policy{})
	require.True(t, a.IsOverdue)
	require.False(t, a.IsCritical)

	a = Aging(now.Add(-50*time.Hour), "Escalated", now, Policy{})
	require.Equal(t, 50, a.AgeHours)
	require.True(t, a.IsOverdue)
	require.True(t, a.IsCritical)
}

func TestAging_FlagsFollowFlooredHours(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	// Ровно на границе и внутри дробного часа за ней флаг ещё не взводится:
	// AgeHours=24, а 24 > 24 ложно.
	for _, d := range []time.Duration{24 * time.Hour, 24*time.Hour + 10*time.Minute, 24*time.Hour + 59*time.Minute} {
		a := Aging(now.Add(-d), "New", now, Policy{})
		require.Equal(t, 24, a.AgeHours, d.String())
		require.False(t, a.IsOverdue, d.String())
	}

	a := Aging(now.Add(-25*time.Hour), "New", now, Policy{})
	require.Equal(t, 25, a.AgeHours)
	require.True(t, a.IsOverdue)
	require.False(t, a.IsCritical)

	a = Aging(now.Add(-(48*time.Hour + 30*time.Minute)), "New", now, Policy{})
	require.Equal(t, 48, a.AgeHours)
	require.True(t, a.IsOverdue)
	require.False(t, a.IsCritical)

	a = Aging(now.Add(-49*time.Hour), "New", now, Policy{})
	require.True(t, a.IsCritical)
}

func TestAging_CriticalImpliesOverdue(t *testing.T) {
	now := time.Now()
	for _, h := range []int{0, 12, 25, 47, 49, 500} {
		a := Aging(now.Add(-time.Duration(h)*time.Hour), "In Progress", now, Policy{})
		if a.IsCritical {
			require.True(t, a.IsOverdue, "age %dh", h)
		}
	}
}

func TestAging_TerminalStatusSuppresses(t *testing.T) {
	now := time.Now()
	for _, status := range []string{"Resolved", "Replied"} {
		a := Aging(now.Add(-500*time.Hour), status, now, Policy{})
		require.Equal(t, 500, a.AgeHours)
		require.False(t, a.IsOverdue, status)
		require.False(t, a.IsCritical, status)
	}
}

func TestAging_FutureCreatedAt(t *testing.T) {
	now := time.Now()
	a := Aging(now.Add(2*time.Hour), "New", now, Policy{})
	require.Equal(t, 0, a.AgeHours)
	require.False(t, a.IsOverdue)
}

func TestPolicy_Normalize(t *testing.T) {
	p := Policy{}.Normalize()
	require.Equal(t, 72*time.Hour, p.StaleAfter)
	require.Equal(t, 24*time.Hour, p.OverdueAfter)
	require.Equal(t, 48*time.Hour, p.CriticalAfter)

	// critical не может быть меньше overdue
	p = Policy{OverdueAfter: 40 * time.Hour, CriticalAfter: 10 * time.Hour}.Normalize()
	require.Equal(t, 40*time.Hour, p.CriticalAfter)
}
