package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kustommania/models"
	"kustommania/testutil"
)

func newImage(motorcycleID string, order int) *models.MotorcycleImage {
	return &models.MotorcycleImage{
		ID:           uuid.NewString(),
		MotorcycleID: motorcycleID,
		ImageURL:     "https://cdn.example.com/" + uuid.NewString() + ".jpg",
		DisplayOrder: order,
	}
}

func primaryCount(t *testing.T, db *gorm.DB, motorcycleID string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.MotorcycleImage{}).
		Where("motorcycle_id = ? AND is_primary = ?", motorcycleID, true).
		Count(&n).Error)
	return n
}

func TestImageRepository_FirstImageBecomesPrimary(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewImageRepository(db)
	ctx := context.Background()
	moto := testutil.CreateMotorcycle(t, db, models.Motorcycle{})

	first := newImage(moto.ID, 0)
	second := newImage(moto.ID, 1)
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	assert.True(t, first.IsPrimary)
	assert.False(t, second.IsPrimary)
	assert.Equal(t, int64(1), primaryCount(t, db, moto.ID))
}

func TestImageRepository_CreatePrimaryDemotesSiblings(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewImageRepository(db)
	ctx := context.Background()
	moto := testutil.CreateMotorcycle(t, db, models.Motorcycle{})

	require.NoError(t, repo.Create(ctx, newImage(moto.ID, 0)))
	flagged := newImage(moto.ID, 1)
	flagged.IsPrimary = true
	require.NoError(t, repo.Create(ctx, flagged))

	assert.Equal(t, int64(1), primaryCount(t, db, moto.ID))
	got, err := repo.FindByID(ctx, flagged.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPrimary)
}

func TestImageRepository_SetPrimaryKeepsSinglePrimary(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewImageRepository(db)
	ctx := context.Background()
	moto := testutil.CreateMotorcycle(t, db, models.Motorcycle{})
	other := testutil.CreateMotorcycle(t, db, models.Motorcycle{})

	images := []*models.MotorcycleImage{newImage(moto.ID, 0), newImage(moto.ID, 1), newImage(moto.ID, 2)}
	for _, img := range images {
		require.NoError(t, repo.Create(ctx, img))
	}
	otherImg := newImage(other.ID, 0)
	require.NoError(t, repo.Create(ctx, otherImg))

	for _, img := range images {
		_, err := repo.SetPrimary(ctx, img.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), primaryCount(t, db, moto.ID))

		got, err := repo.FindByID(ctx, img.ID)
		require.NoError(t, err)
		assert.True(t, got.IsPrimary)
	}

	// other motorcycles are untouched
	got, err := repo.FindByID(ctx, otherImg.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPrimary)
}

func TestImageRepository_SetPrimaryUnknownImage(t *testing.T) {
	repo := NewImageRepository(testutil.NewDB(t))

	_, err := repo.SetPrimary(context.Background(), "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestImageRepository_DeletePrimaryPromotesNext(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewImageRepository(db)
	ctx := context.Background()
	moto := testutil.CreateMotorcycle(t, db, models.Motorcycle{})

	first := newImage(moto.ID, 0)
	third := newImage(moto.ID, 5)
	second := newImage(moto.ID, 2)
	for _, img := range []*models.MotorcycleImage{first, third, second} {
		require.NoError(t, repo.Create(ctx, img))
	}

	deleted, err := repo.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, deleted.IsPrimary)

	promoted, err := repo.FindByID(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, promoted.IsPrimary)
	assert.Equal(t, int64(1), primaryCount(t, db, moto.ID))
}

func TestImageRepository_DeleteLastImage(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewImageRepository(db)
	ctx := context.Background()
	moto := testutil.CreateMotorcycle(t, db, models.Motorcycle{})

	only := newImage(moto.ID, 0)
	require.NoError(t, repo.Create(ctx, only))

	_, err := repo.Delete(ctx, only.ID)
	require.NoError(t, err)

	images, err := repo.ListByMotorcycle(ctx, moto.ID)
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestImageRepository_NextDisplayOrderAndUpdateOrder(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewImageRepository(db)
	ctx := context.Background()
	moto := testutil.CreateMotorcycle(t, db, models.Motorcycle{})

	next, err := repo.NextDisplayOrder(ctx, moto.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, next)

	a := newImage(moto.ID, 0)
	b := newImage(moto.ID, 3)
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	next, err = repo.NextDisplayOrder(ctx, moto.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, next)

	require.NoError(t, repo.UpdateOrder(ctx, moto.ID, map[string]int{a.ID: 9, b.ID: 1}))
	images, err := repo.ListByMotorcycle(ctx, moto.ID)
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, b.ID, images[0].ID)
	assert.Equal(t, a.ID, images[1].ID)
}
