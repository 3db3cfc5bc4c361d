package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/antara/internal/common"
	"github.com/dmitrijs2005/antara/internal/models"
)

func TestIntentions_Validation(t *testing.T) {
	f := newFixture(t)
	svc := NewIntentionService(f.repo, f.logger, f.clock)
	ctx := context.Background()

	tests := []struct {
		name  string
		text  string
		area  models.Area
		cycle models.Cycle
	}{
		{"blank text", " ", models.AreaCareer, models.CycleWeekly},
		{"unknown area", "x", "spiritual", models.CycleWeekly},
		{"unknown cycle", "x", models.AreaCareer, "daily"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(ctx, tt.text, tt.area, tt.cycle)
			require.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestIntentions_AddToggleByCycle(t *testing.T) {
	f := newFixture(t)
	svc := NewIntentionService(f.repo, f.logger, f.clock)
	ctx := context.Background()

	w, err := svc.Add(ctx, "meditate", "", models.CycleWeekly)
	require.NoError(t, err)
	assert.Equal(t, models.AreaPersonal, w.Area)
	assert.True(t, w.CreatedAt.Equal(day0))

	_, err = svc.Add(ctx, "ship it", models.AreaCareer, models.CycleYearly)
	require.NoError(t, err)

	weekly, err := svc.ByCycle(ctx, models.CycleWeekly)
	require.NoError(t, err)
	require.Len(t, weekly, 1)
	assert.Equal(t, w.ID, weekly[0].ID)

	toggled, err := svc.Toggle(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	_, err = svc.Toggle(ctx, 1)
	require.ErrorIs(t, err, common.ErrNotFound)

	ok, err := svc.Delete(ctx, w.ID)
	require.NoError(t, err)
	require.True(t, ok)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}
