package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMotorcycle_PrimaryImage(t *testing.T) {
	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("no images", func(t *testing.T) {
		assert.Nil(t, Motorcycle{}.PrimaryImage())
		assert.Nil(t, Motorcycle{}.OrderedImages())
	})

	t.Run("flagged image wins over order", func(t *testing.T) {
		m := Motorcycle{Images: []MotorcycleImage{
			{ID: "a", DisplayOrder: 0, CreatedAt: base},
			{ID: "b", DisplayOrder: 3, IsPrimary: true, CreatedAt: base},
		}}
		require.NotNil(t, m.PrimaryImage())
		assert.Equal(t, "b", m.PrimaryImage().ID)
	})

	t.Run("falls back to lowest order then oldest", func(t *testing.T) {
		m := Motorcycle{Images: []MotorcycleImage{
			{ID: "late", DisplayOrder: 1, CreatedAt: base.Add(time.Hour)},
			{ID: "early", DisplayOrder: 1, CreatedAt: base},
			{ID: "last", DisplayOrder: 4, CreatedAt: base},
		}}
		assert.Equal(t, "early", m.PrimaryImage().ID)

		var ids []string
		for _, img := range m.OrderedImages() {
			ids = append(ids, img.ID)
		}
		assert.Equal(t, []string{"early", "late", "last"}, ids)
	})
}
