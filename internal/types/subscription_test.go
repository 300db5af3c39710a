package types

import (
	"testing"

	ierr "github.com/flexprice/quoter/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestPlanType_WithSupport(t *testing.T) {
	assert.Equal(t, PlanType("DEVELOPERS_SUPPORT"), PlanTypeDevelopers.WithSupport(true))
	assert.Equal(t, PlanTypeDevelopers, PlanTypeDevelopers.WithSupport(false))
	assert.Equal(t, PlanType("MAUS_SUPPORT"), PlanType("MAUS_SUPPORT").WithSupport(true))
	assert.Equal(t, PlanTypeMAU, PlanType("MAUS_SUPPORT").Base())
}

func TestEnumValidation(t *testing.T) {
	assert.NoError(t, EditionTeam.Validate())
	assert.True(t, ierr.IsValidation(Edition("PLATINUM").Validate()))

	assert.NoError(t, PaymentFrequencyYearly.Validate())
	assert.True(t, ierr.IsValidation(PaymentFrequency("WEEKLY").Validate()))

	assert.NoError(t, ModuleCF.Validate())
	assert.True(t, ierr.IsValidation(ModuleType("cd").Validate()))

	assert.NoError(t, PlanType("MAUS_SUPPORT").Validate())
	assert.True(t, ierr.IsValidation(PlanType("SEATS").Validate()))
}

func TestModuleType_PlanTypes(t *testing.T) {
	assert.Equal(t, []PlanType{PlanTypeDevelopers, PlanTypeMAU}, ModuleCF.PlanTypes())
	assert.Equal(t, []PlanType{PlanTypeDevelopers}, ModuleCI.PlanTypes())
	assert.Nil(t, ModuleType("x").PlanTypes())
}
