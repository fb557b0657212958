package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func TestMonthGrid_Layout(t *testing.T) {
	// March 2025 starts on a Saturday and has 31 days.
	weeks := MonthGrid(date(2025, 3, 17), nil, time.Time{}, time.Time{})
	require.Len(t, weeks, 6)

	for i := 0; i < 5; i++ {
		assert.True(t, weeks[0][i].Blank)
	}
	assert.Equal(t, date(2025, 3, 1), weeks[0][5].Date)
	assert.Equal(t, date(2025, 3, 2), weeks[0][6].Date)
	assert.Equal(t, date(2025, 3, 31), weeks[5][0].Date)
	assert.True(t, weeks[5][1].Blank)
}

func TestMonthGrid_Flags(t *testing.T) {
	avail := map[string]int{"2025-09-03": 5, "2025-09-10": 0}
	weeks := MonthGrid(date(2025, 9, 1), avail, date(2025, 9, 10), date(2025, 9, 3))

	// September 2025 starts on a Monday.
	require.Len(t, weeks, 5)
	wed := weeks[0][2]
	assert.Equal(t, date(2025, 9, 3), wed.Date)
	assert.True(t, wed.Available)
	assert.Equal(t, 5, wed.Count)
	assert.True(t, wed.Today)
	assert.False(t, wed.Selected)

	next := weeks[1][2]
	assert.True(t, next.Available)
	assert.True(t, next.Selected)
	assert.False(t, weeks[1][3].Available)
}
