package domain_test

import (
	"testing"

	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEmployerOffering_SplitPremium(t *testing.T) {
	premium := decimal.NewFromFloat(412.50)

	tests := []struct {
		name         string
		mode         domain.ContributionMode
		value        decimal.Decimal
		wantEmployer string
		wantEmployee string
	}{
		{
			name:         "full contribution covers the whole premium",
			mode:         domain.ContributionFull,
			value:        decimal.Zero,
			wantEmployer: "412.5",
			wantEmployee: "0",
		},
		{
			name:         "percent contribution rounds to cents",
			mode:         domain.ContributionPercent,
			value:        decimal.NewFromInt(75),
			wantEmployer: "309.38",
			wantEmployee: "103.12",
		},
		{
			name:         "fixed contribution below premium",
			mode:         domain.ContributionFixed,
			value:        decimal.NewFromInt(250),
			wantEmployer: "250",
			wantEmployee: "162.5",
		},
		{
			name:         "fixed contribution capped at premium",
			mode:         domain.ContributionFixed,
			value:        decimal.NewFromInt(500),
			wantEmployer: "412.5",
			wantEmployee: "0",
		},
		{
			name:         "negative fixed contribution clamps to zero",
			mode:         domain.ContributionFixed,
			value:        decimal.NewFromInt(-10),
			wantEmployer: "0",
			wantEmployee: "412.5",
		},
		{
			name:         "zero percent leaves employee paying everything",
			mode:         domain.ContributionPercent,
			value:        decimal.Zero,
			wantEmployer: "0",
			wantEmployee: "412.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offering := domain.EmployerOffering{
				ContributionMode:  tt.mode,
				ContributionValue: tt.value,
			}
			employer, employee := offering.SplitPremium(premium)
			assert.Equal(t, tt.wantEmployer, employer.String())
			assert.Equal(t, tt.wantEmployee, employee.String())
			assert.True(t, employer.Add(employee).Equal(premium), "shares must sum to the premium")
		})
	}
}

func TestCoverageTier_IsValid(t *testing.T) {
	for _, tier := range []domain.CoverageTier{
		domain.TierEmployeeOnly,
		domain.TierEmployeeSpouse,
		domain.TierEmployeeChildren,
		domain.TierFamily,
	} {
		assert.True(t, tier.IsValid(), string(tier))
	}
	assert.False(t, domain.CoverageTier("employee_plus_pet").IsValid())
	assert.False(t, domain.CoverageTier("").IsValid())
}
