// File: /models/motorcycle_image.go
package models

import (
	"sort"
	"time"
)

type MotorcycleImage struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	MotorcycleID string    `json:"motorcycle_id" gorm:"not null;size:36;index"`
	ImageURL     string    `json:"image_url" gorm:"not null;size:1000"`
	StorageKey   string    `json:"-" gorm:"size:500"`
	DisplayOrder int       `json:"display_order" gorm:"default:0"`
	IsPrimary    bool      `json:"is_primary" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`
}

func (i *MotorcycleImage) before(other *MotorcycleImage) bool {
	if i.DisplayOrder != other.DisplayOrder {
		return i.DisplayOrder < other.DisplayOrder
	}
	return i.CreatedAt.Before(other.CreatedAt)
}

// SortImages orders images by display order, then creation time
func SortImages(images []MotorcycleImage) {
	sort.SliceStable(images, func(a, b int) bool {
		return images[a].before(&images[b])
	})
}
