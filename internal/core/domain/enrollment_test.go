package domain_test

import (
	"testing"
	"time"

	"github.com/benefitkit/benefits_admin_app/internal/apperrors"
	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollmentPeriod_Transitions(t *testing.T) {
	tests := []struct {
		name       string
		from       domain.PeriodStatus
		transition func(*domain.EnrollmentPeriod) error
		wantStatus domain.PeriodStatus
		wantErr    bool
	}{
		{
			name:       "activate pending",
			from:       domain.PeriodStatusPending,
			transition: (*domain.EnrollmentPeriod).Activate,
			wantStatus: domain.PeriodStatusActive,
		},
		{
			name:       "activate already active",
			from:       domain.PeriodStatusActive,
			transition: (*domain.EnrollmentPeriod).Activate,
			wantStatus: domain.PeriodStatusActive,
			wantErr:    true,
		},
		{
			name:       "close active",
			from:       domain.PeriodStatusActive,
			transition: (*domain.EnrollmentPeriod).Close,
			wantStatus: domain.PeriodStatusClosed,
		},
		{
			name:       "close pending",
			from:       domain.PeriodStatusPending,
			transition: (*domain.EnrollmentPeriod).Close,
			wantStatus: domain.PeriodStatusPending,
			wantErr:    true,
		},
		{
			name:       "cancel pending",
			from:       domain.PeriodStatusPending,
			transition: (*domain.EnrollmentPeriod).Cancel,
			wantStatus: domain.PeriodStatusCancelled,
		},
		{
			name:       "cancel active",
			from:       domain.PeriodStatusActive,
			transition: (*domain.EnrollmentPeriod).Cancel,
			wantStatus: domain.PeriodStatusCancelled,
		},
		{
			name:       "cancel closed",
			from:       domain.PeriodStatusClosed,
			transition: (*domain.EnrollmentPeriod).Cancel,
			wantStatus: domain.PeriodStatusClosed,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			period := domain.EnrollmentPeriod{Status: tt.from}
			err := tt.transition(&period)
			if tt.wantErr {
				assert.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantStatus, period.Status)
		})
	}
}

func TestEmployeeEnrollment_HappyPath(t *testing.T) {
	now := time.Now()
	approver := "approver-1"
	e := domain.EmployeeEnrollment{Status: domain.EnrollmentNotStarted}

	require.NoError(t, e.Start(now))
	assert.Equal(t, domain.EnrollmentInProgress, e.Status)
	require.NotNil(t, e.StartedAt)
	assert.Equal(t, now, *e.StartedAt)

	later := now.Add(time.Hour)
	require.NoError(t, e.Submit(later))
	assert.Equal(t, domain.EnrollmentSubmitted, e.Status)
	require.NotNil(t, e.SubmittedAt)
	assert.Equal(t, later, *e.SubmittedAt)

	final := later.Add(time.Hour)
	require.NoError(t, e.Approve(approver, final))
	assert.Equal(t, domain.EnrollmentApproved, e.Status)
	require.NotNil(t, e.ApprovedAt)
	require.NotNil(t, e.ApprovedBy)
	assert.Equal(t, approver, *e.ApprovedBy)
}

func TestEmployeeEnrollment_IllegalTransitionsLeaveRecordUnchanged(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name       string
		from       domain.EnrollmentStatus
		transition func(*domain.EmployeeEnrollment) error
	}{
		{"submit before start", domain.EnrollmentNotStarted, func(e *domain.EmployeeEnrollment) error { return e.Submit(now) }},
		{"approve before submit", domain.EnrollmentInProgress, func(e *domain.EmployeeEnrollment) error { return e.Approve("u", now) }},
		{"start twice", domain.EnrollmentInProgress, func(e *domain.EmployeeEnrollment) error { return e.Start(now) }},
		{"approve approved", domain.EnrollmentApproved, func(e *domain.EmployeeEnrollment) error { return e.Approve("u", now) }},
		{"decline approved", domain.EnrollmentApproved, func(e *domain.EmployeeEnrollment) error { return e.Decline(now) }},
		{"expire declined", domain.EnrollmentDeclined, func(e *domain.EmployeeEnrollment) error { return e.Expire(now) }},
		{"decline expired", domain.EnrollmentExpired, func(e *domain.EmployeeEnrollment) error { return e.Decline(now) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := domain.EmployeeEnrollment{Status: tt.from}
			err := tt.transition(&e)
			assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
			assert.Equal(t, tt.from, e.Status)
			assert.Nil(t, e.SubmittedAt)
			assert.Nil(t, e.ApprovedAt)
			assert.Nil(t, e.ApprovedBy)
		})
	}
}

func TestEmployeeEnrollment_AdministrativeTerminals(t *testing.T) {
	now := time.Now()
	for _, from := range []domain.EnrollmentStatus{
		domain.EnrollmentNotStarted,
		domain.EnrollmentInProgress,
		domain.EnrollmentSubmitted,
	} {
		e := domain.EmployeeEnrollment{Status: from}
		assert.NoError(t, e.Decline(now), "decline from %s", from)
		assert.Equal(t, domain.EnrollmentDeclined, e.Status)

		e = domain.EmployeeEnrollment{Status: from}
		assert.NoError(t, e.Expire(now), "expire from %s", from)
		assert.Equal(t, domain.EnrollmentExpired, e.Status)
	}
}

func TestEnrollmentStatus_IsTerminal(t *testing.T) {
	assert.False(t, domain.EnrollmentNotStarted.IsTerminal())
	assert.False(t, domain.EnrollmentInProgress.IsTerminal())
	assert.False(t, domain.EnrollmentSubmitted.IsTerminal())
	assert.True(t, domain.EnrollmentApproved.IsTerminal())
	assert.True(t, domain.EnrollmentDeclined.IsTerminal())
	assert.True(t, domain.EnrollmentExpired.IsTerminal())
}

func TestPlanEnrollment_Terminate(t *testing.T) {
	termDate := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	pe := domain.PlanEnrollment{Status: domain.PlanEnrollmentEnrolled}
	require.NoError(t, pe.Terminate(termDate))
	assert.Equal(t, domain.PlanEnrollmentTerminated, pe.Status)
	require.NotNil(t, pe.TerminationDate)
	assert.Equal(t, termDate, *pe.TerminationDate)

	for _, from := range []domain.PlanEnrollmentStatus{
		domain.PlanEnrollmentWaived,
		domain.PlanEnrollmentDeclined,
		domain.PlanEnrollmentTerminated,
	} {
		pe := domain.PlanEnrollment{Status: from}
		err := pe.Terminate(termDate)
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition, "terminate from %s", from)
		assert.Nil(t, pe.TerminationDate)
	}
}
