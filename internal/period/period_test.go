package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/moneyflow/internal/model"
)

func date(s string) model.Date {
	return model.MustParseDate(s)
}

func datePtr(s string) *model.Date {
	d := date(s)
	return &d
}

func TestInCurrentMonth(t *testing.T) {
	now := time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		date string
		want bool
	}{
		{name: "first day", date: "2024-03-01", want: true},
		{name: "last day", date: "2024-03-31", want: true},
		{name: "previous month", date: "2024-02-29", want: false},
		{name: "next month", date: "2024-04-01", want: false},
		{name: "same month previous year", date: "2023-03-15", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InCurrentMonth(date(tt.date), now))
		})
	}

	assert.False(t, InCurrentMonth(model.Date{}, now))
}

func TestInRange(t *testing.T) {
	tests := []struct {
		from *model.Date
		to   *model.Date
		name string
		date string
		want bool
	}{
		{name: "no bounds", date: "2024-03-05", want: true},
		{name: "from inclusive", date: "2024-03-05", from: datePtr("2024-03-05"), want: true},
		{name: "before from", date: "2024-03-04", from: datePtr("2024-03-05"), want: false},
		{name: "to inclusive", date: "2024-03-10", to: datePtr("2024-03-10"), want: true},
		{name: "after to", date: "2024-03-11", to: datePtr("2024-03-10"), want: false},
		{name: "inside both", date: "2024-03-07", from: datePtr("2024-03-05"), to: datePtr("2024-03-10"), want: true},
		{name: "zero bound is open", date: "2020-01-01", from: &model.Date{}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InRange(date(tt.date), tt.from, tt.to))
		})
	}
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		target *model.Date
		want   *int
		name   string
	}{
		{name: "no target", target: nil, want: nil},
		{name: "tomorrow rounds up", target: datePtr("2024-03-16"), want: intPtr(1)},
		{name: "ten days out", target: datePtr("2024-03-25"), want: intPtr(10)},
		{name: "today already started", target: datePtr("2024-03-15"), want: intPtr(0)},
		{name: "passed", target: datePtr("2024-03-10"), want: intPtr(-5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DaysRemaining(tt.target, now)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestIsOverdue(t *testing.T) {
	assert.False(t, IsOverdue(nil))
	assert.False(t, IsOverdue(intPtr(0)))
	assert.True(t, IsOverdue(intPtr(-1)))
}

func TestMonthBounds(t *testing.T) {
	first, last := MonthBounds(time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-02-01", first.String())
	assert.Equal(t, "2024-02-29", last.String())
}

func intPtr(v int) *int {
	return &v
}
