package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/operatinghours"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/worktime"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateLateness(t *testing.T) {
	opening := &operatinghours.OperatingHours{
		OpeningTime: worktime.NewTimeOfDay(9, 0, 0),
		ClosingTime: worktime.NewTimeOfDay(22, 0, 0),
	}
	wage := decimal.NewFromInt(10000)

	cases := []struct {
		name      string
		clockIn   time.Time
		hours     *operatinghours.OperatingHours
		action    LatenessAction
		minutes   string
		deduction string
	}{
		{name: "no operating hours", clockIn: shopTime(3, 9, 15), hours: nil, action: LatenessSkip},
		{name: "before opening", clockIn: shopTime(3, 8, 45), hours: opening, action: LatenessRetract},
		{name: "exactly at opening", clockIn: shopTime(3, 9, 0), hours: opening, action: LatenessRetract},
		{name: "fifteen minutes late", clockIn: shopTime(3, 9, 15), hours: opening, action: LatenessRecord, minutes: "15", deduction: "2500"},
		{name: "thirty seconds late", clockIn: shopTime(3, 9, 0).Add(30 * time.Second), hours: opening, action: LatenessRecord, minutes: "0.5", deduction: "83.3333"},
		{name: "one second late", clockIn: shopTime(3, 9, 0).Add(time.Second), hours: opening, action: LatenessRecord, minutes: "0.0167", deduction: "2.7778"},
		{name: "late in the evening", clockIn: shopTime(3, 21, 0), hours: opening, action: LatenessRecord, minutes: "720", deduction: "120000"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := EvaluateLateness(c.clockIn, c.hours, wage, kst)

			assert.Equal(t, c.action, got.Action)
			if c.action == LatenessRecord {
				assert.Equal(t, c.minutes, got.LateMinutes.String())
				assert.Equal(t, c.deduction, got.Deduction.String())
			}
		})
	}
}

func TestEvaluateLateness_UsesShopZone(t *testing.T) {
	opening := &operatinghours.OperatingHours{OpeningTime: worktime.NewTimeOfDay(9, 0, 0)}
	clockIn := time.Date(2025, 3, 3, 0, 10, 0, 0, time.UTC) // 09:10 in Seoul

	assert.Equal(t, LatenessRecord, EvaluateLateness(clockIn, opening, decimal.NewFromInt(6000), kst).Action)
	assert.Equal(t, LatenessRetract, EvaluateLateness(clockIn, opening, decimal.NewFromInt(6000), time.UTC).Action)
}

func TestApplyLateness_Idempotent(t *testing.T) {
	f := newFixture(t)
	emp := f.createEmployee(t, "minji", "10000")
	session := f.clockIn(t, emp)
	ctx := context.Background()
	repo := f.store.LateRecords()

	opening := &operatinghours.OperatingHours{OpeningTime: worktime.NewTimeOfDay(9, 0, 0)}
	outcome := EvaluateLateness(session.ClockIn, opening, emp.HourlyWage, kst)

	require.NoError(t, applyLateness(ctx, repo, session.ID, outcome))
	first, err := repo.GetByAttendance(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, first)

	require.NoError(t, applyLateness(ctx, repo, session.ID, outcome))
	second, err := repo.GetByAttendance(ctx, session.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, f.store.Counts().LateRecords)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.DeductionAmount.Equal(second.DeductionAmount))
	assert.True(t, first.UpdatedAt.Equal(second.UpdatedAt))

	retract := LatenessOutcome{Action: LatenessRetract}
	require.NoError(t, applyLateness(ctx, repo, session.ID, retract))
	require.NoError(t, applyLateness(ctx, repo, session.ID, retract))
	assert.Equal(t, 0, f.store.Counts().LateRecords)
}

func TestApplyLateness_SkipKeepsExistingRecord(t *testing.T) {
	f := newFixture(t)
	f.openAt(t, 9, 0)
	emp := f.createEmployee(t, "minji", "10000")
	session := f.clockIn(t, emp)

	require.NoError(t, applyLateness(context.Background(), f.store.LateRecords(), session.ID, LatenessOutcome{Action: LatenessSkip}))

	assert.Equal(t, 1, f.store.Counts().LateRecords)
}
