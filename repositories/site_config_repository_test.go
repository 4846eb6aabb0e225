package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kustommania/models"
	"kustommania/testutil"
)

func TestSiteConfigRepository_SaveUpserts(t *testing.T) {
	repo := NewSiteConfigRepository(testutil.NewDB(t))
	ctx := context.Background()

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	cfg := models.DefaultSiteConfig()
	cfg.WhatsAppNumber = "+54 9 11 1234-5678"
	require.NoError(t, repo.Save(ctx, &cfg))

	cfg.HeroTitle = "NUEVO TITULO"
	cfg.InstagramURL = testutil.Ptr("https://instagram.com/kustommania")
	require.NoError(t, repo.Save(ctx, &cfg))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "NUEVO TITULO", got.HeroTitle)
	assert.Equal(t, "+54 9 11 1234-5678", got.WhatsAppNumber)
	require.NotNil(t, got.InstagramURL)
	assert.Equal(t, "https://instagram.com/kustommania", *got.InstagramURL)
}

func TestLeadRepository_ListNewestFirstAndDelete(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewLeadRepository(db)
	ctx := context.Background()

	older := &models.Lead{ID: "lead-1", Name: "Ana", Location: "Rosario"}
	require.NoError(t, repo.Create(ctx, older))
	newer := &models.Lead{ID: "lead-2", Name: "Beto", Location: "Córdoba"}
	require.NoError(t, repo.Create(ctx, newer))
	require.NoError(t, db.Model(older).Update("created_at", newer.CreatedAt.Add(-1e9)).Error)

	leads, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, "lead-2", leads[0].ID)
	assert.Equal(t, models.LeadSourceContactForm, leads[0].Source)

	require.NoError(t, repo.Delete(ctx, "lead-1"))
	assert.ErrorIs(t, repo.Delete(ctx, "lead-1"), gorm.ErrRecordNotFound)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
