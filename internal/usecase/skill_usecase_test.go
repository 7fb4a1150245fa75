package usecase

import (
	"context"
	"errors"
	"testing"

	"talent-match/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkill_AddAndList(t *testing.T) {
	repo := &mockSkillRepo{}
	uc := NewSkillUsecase(repo)
	ctx := context.Background()

	created, err := uc.AddSkill(ctx, "  Go ", "backend")
	require.NoError(t, err)
	assert.Equal(t, "Go", created.Name)

	items, err := uc.ListSkills(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = uc.AddSkill(ctx, " ", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSkill_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := NewSkillUsecase(&mockSkillRepo{createErr: repository.ErrSkillNameTaken}).AddSkill(ctx, "Go", "")
	assert.ErrorIs(t, err, ErrSkillAlreadyExists)

	_, err = NewSkillUsecase(&mockSkillRepo{createErr: errors.New("boom")}).AddSkill(ctx, "Go", "")
	assert.ErrorIs(t, err, ErrInternal)

	_, err = NewSkillUsecase(&mockSkillRepo{err: errors.New("boom")}).ListSkills(ctx)
	assert.ErrorIs(t, err, ErrInternal)
}
