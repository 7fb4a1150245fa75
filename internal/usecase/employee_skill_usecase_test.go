package usecase

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeSkill_Lifecycle(t *testing.T) {
	repo := newMockEmployeeSkillRepo()
	cache := newMemoryCache()
	n := &recordingNotifier{}
	uc := NewEmployeeSkillUsecase(repo, NewInvalidation(cache, n, MatchingResultPattern, nil))
	ctx := context.Background()
	me := uuid.New()
	skillID := uuid.New()

	require.NoError(t, cache.SetJSON(ctx, MatchingResultPrefix+"p:h", 1, 0))

	created, err := uc.AddEmployeeSkill(ctx, me, AddEmployeeSkillInput{SkillID: skillID, ProficiencyLevel: 3, YearsExperience: 1.5})
	require.NoError(t, err)
	assert.Equal(t, 3, created.ProficiencyLevel)
	assert.Empty(t, cache.data)

	_, err = uc.AddEmployeeSkill(ctx, me, AddEmployeeSkillInput{SkillID: skillID, ProficiencyLevel: 4})
	assert.ErrorIs(t, err, ErrEmployeeSkillAlreadyExists)

	updated, err := uc.UpdateEmployeeSkill(ctx, me, created.ID, UpdateEmployeeSkillInput{ProficiencyLevel: 5, YearsExperience: 3})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.ProficiencyLevel)

	items, err := uc.ListEmployeeSkills(ctx, me)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	assert.ErrorIs(t, uc.DeleteEmployeeSkill(ctx, uuid.New(), created.ID), ErrForbidden)
	require.NoError(t, uc.DeleteEmployeeSkill(ctx, me, created.ID))
	assert.ErrorIs(t, uc.DeleteEmployeeSkill(ctx, me, created.ID), ErrEmployeeSkillNotFound)

	assert.Equal(t, []string{"employee_skill_added", "employee_skill_updated", "employee_skill_deleted"}, n.changed)
}

func TestEmployeeSkill_Validation(t *testing.T) {
	uc := NewEmployeeSkillUsecase(newMockEmployeeSkillRepo(), nil)
	ctx := context.Background()
	me := uuid.New()

	_, err := uc.AddEmployeeSkill(ctx, me, AddEmployeeSkillInput{ProficiencyLevel: 3})
	assert.ErrorIs(t, err, ErrInvalidInput)

	for _, lvl := range []int{0, 6} {
		_, err = uc.AddEmployeeSkill(ctx, me, AddEmployeeSkillInput{SkillID: uuid.New(), ProficiencyLevel: lvl})
		assert.ErrorIs(t, err, ErrInvalidProficiencyLevel)
	}
	for _, years := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err = uc.AddEmployeeSkill(ctx, me, AddEmployeeSkillInput{SkillID: uuid.New(), ProficiencyLevel: 2, YearsExperience: years})
		assert.ErrorIs(t, err, ErrInvalidYearsExperience)
	}

	_, err = uc.UpdateEmployeeSkill(ctx, me, uuid.New(), UpdateEmployeeSkillInput{ProficiencyLevel: 2})
	assert.ErrorIs(t, err, ErrEmployeeSkillNotFound)
}
