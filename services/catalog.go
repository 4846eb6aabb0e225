// File: /services/catalog.go
package services

import (
	"net/url"
	"sort"
	"strings"

	"kustommania/models"
)

// MaxCompare is how many motorcycles the comparison page shows at once
const MaxCompare = 3

const (
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortNameAsc   = "name-asc"
	SortNameDesc  = "name-desc"
	SortNewest    = "newest"

	StatusFilterAll       = "all"
	StatusFilterAvailable = "available"
)

// PriceRange is a fixed bucket over the ARS price, Max exclusive
type PriceRange struct {
	Key   string
	Label string
	Min   float64
	Max   float64 // zero means unbounded
}

var PriceRanges = []PriceRange{
	{Key: "0-5000000", Label: "Hasta $5.000.000", Min: 0, Max: 5000000},
	{Key: "5000000-10000000", Label: "$5.000.000 - $10.000.000", Min: 5000000, Max: 10000000},
	{Key: "10000000-15000000", Label: "$10.000.000 - $15.000.000", Min: 10000000, Max: 15000000},
	{Key: "15000000+", Label: "Más de $15.000.000", Min: 15000000},
}

func (r PriceRange) contains(price float64) bool {
	if price < r.Min {
		return false
	}
	return r.Max == 0 || price < r.Max
}

// CatalogQuery holds the collection filters carried in the URL
type CatalogQuery struct {
	Search     string `form:"q"`
	Brand      string `form:"brand"`
	Type       string `form:"type"`
	Status     string `form:"status"`
	PriceRange string `form:"price"`
	Sort       string `form:"sort"`
}

// ParseCatalogQuery reads filters from a query string
func ParseCatalogQuery(values url.Values) CatalogQuery {
	return CatalogQuery{
		Search:     strings.TrimSpace(values.Get("q")),
		Brand:      values.Get("brand"),
		Type:       values.Get("type"),
		Status:     values.Get("status"),
		PriceRange: values.Get("price"),
		Sort:       values.Get("sort"),
	}
}

// IsFiltered reports whether any predicate is active
func (q CatalogQuery) IsFiltered() bool {
	return q.Search != "" || active(q.Brand) || active(q.Type) || active(q.Status) || active(q.PriceRange)
}

func active(v string) bool {
	return v != "" && v != StatusFilterAll
}

// FilterCatalog applies the query predicates and sort to an in-memory list.
// The input slice is not modified.
func FilterCatalog(motorcycles []models.Motorcycle, q CatalogQuery) []models.Motorcycle {
	search := strings.ToLower(q.Search)

	var bucket *PriceRange
	for i := range PriceRanges {
		if PriceRanges[i].Key == q.PriceRange {
			bucket = &PriceRanges[i]
		}
	}

	out := make([]models.Motorcycle, 0, len(motorcycles))
	for _, m := range motorcycles {
		if search != "" && !matchesSearch(&m, search) {
			continue
		}
		if active(q.Brand) && m.BrandName() != q.Brand {
			continue
		}
		if active(q.Type) && m.TypeName() != q.Type {
			continue
		}
		if !matchesStatus(&m, q.Status) {
			continue
		}
		if bucket != nil && !bucket.contains(m.PriceValue()) {
			continue
		}
		out = append(out, m)
	}

	SortCatalog(out, q.Sort)
	return out
}

func matchesSearch(m *models.Motorcycle, search string) bool {
	fields := []string{m.Name, m.Description, m.Engine, m.Modifications, m.BrandName()}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

func matchesStatus(m *models.Motorcycle, status string) bool {
	switch status {
	case "", StatusFilterAll:
		return true
	case StatusFilterAvailable:
		return m.Stage() == models.StatusStock
	default:
		return string(m.Stage()) == status
	}
}

// SortCatalog sorts in place. Unknown keys fall back to manual display order.
func SortCatalog(motorcycles []models.Motorcycle, key string) {
	var less func(a, b *models.Motorcycle) bool
	switch key {
	case SortPriceAsc:
		less = func(a, b *models.Motorcycle) bool { return a.PriceValue() < b.PriceValue() }
	case SortPriceDesc:
		less = func(a, b *models.Motorcycle) bool { return a.PriceValue() > b.PriceValue() }
	case SortNameAsc:
		less = func(a, b *models.Motorcycle) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case SortNameDesc:
		less = func(a, b *models.Motorcycle) bool { return strings.ToLower(a.Name) > strings.ToLower(b.Name) }
	case SortNewest:
		less = func(a, b *models.Motorcycle) bool { return a.CreatedAt.After(b.CreatedAt) }
	default:
		less = func(a, b *models.Motorcycle) bool { return a.DisplayOrder < b.DisplayOrder }
	}
	sort.SliceStable(motorcycles, func(i, j int) bool {
		return less(&motorcycles[i], &motorcycles[j])
	})
}

// Brands lists the distinct brands for the filter dropdown
func Brands(motorcycles []models.Motorcycle) []string {
	return distinct(motorcycles, (*models.Motorcycle).BrandName)
}

// Types lists the distinct motorcycle types for the filter dropdown
func Types(motorcycles []models.Motorcycle) []string {
	return distinct(motorcycles, (*models.Motorcycle).TypeName)
}

func distinct(motorcycles []models.Motorcycle, field func(*models.Motorcycle) string) []string {
	seen := map[string]bool{}
	values := []string{}
	for i := range motorcycles {
		v := field(&motorcycles[i])
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// SelectForCompare keeps the requested motorcycles in request order, at
// most MaxCompare of them. Unknown and duplicate ids are skipped.
func SelectForCompare(motorcycles []models.Motorcycle, ids []string) []models.Motorcycle {
	byID := make(map[string]models.Motorcycle, len(motorcycles))
	for _, m := range motorcycles {
		byID[m.ID] = m
	}

	selected := make([]models.Motorcycle, 0, MaxCompare)
	used := map[string]bool{}
	for _, id := range ids {
		m, ok := byID[id]
		if !ok || used[id] {
			continue
		}
		used[id] = true
		selected = append(selected, m)
		if len(selected) == MaxCompare {
			break
		}
	}
	return selected
}

// ParseCompareIDs splits "a,b,c" into at most MaxCompare ids
func ParseCompareIDs(raw string) []string {
	ids := []string{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		ids = append(ids, part)
		if len(ids) == MaxCompare {
			break
		}
	}
	return ids
}
