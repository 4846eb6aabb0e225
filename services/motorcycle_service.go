// File: /services/motorcycle_service.go
package services

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	applog "kustommania/logger"
	"kustommania/models"
	"kustommania/repositories"
	"kustommania/storage"
)

const dateLayout = "2006-01-02"

// LatestCount is how many in-stock motorcycles the home page features
const LatestCount = 3

// CatalogPage is the collection view: filtered rows plus the filter options
// computed from the full inventory.
type CatalogPage struct {
	Query       CatalogQuery
	Motorcycles []models.Motorcycle
	Brands      []string
	Types       []string
	PriceRanges []PriceRange
	Total       int
}

type MotorcycleService struct {
	motorcycleRepo *repositories.MotorcycleRepository
	imageRepo      *repositories.ImageRepository
	disk           storage.Disk
}

func NewMotorcycleService(motorcycleRepo *repositories.MotorcycleRepository, imageRepo *repositories.ImageRepository, disk storage.Disk) *MotorcycleService {
	return &MotorcycleService{
		motorcycleRepo: motorcycleRepo,
		imageRepo:      imageRepo,
		disk:           disk,
	}
}

func (s *MotorcycleService) List(ctx context.Context) ([]models.Motorcycle, error) {
	motorcycles, err := s.motorcycleRepo.List(ctx)
	if err != nil {
		return nil, translate(err, "list motorcycles")
	}
	return motorcycles, nil
}

// Catalog loads the inventory and applies the collection filters
func (s *MotorcycleService) Catalog(ctx context.Context, q CatalogQuery) (CatalogPage, error) {
	page := CatalogPage{Query: q, PriceRanges: PriceRanges}

	all, err := s.motorcycleRepo.List(ctx)
	if err != nil {
		return page, translate(err, "list motorcycles")
	}

	page.Motorcycles = FilterCatalog(all, q)
	page.Brands = Brands(all)
	page.Types = Types(all)
	page.Total = len(all)
	return page, nil
}

// Latest returns the newest in-stock motorcycles for the home page
func (s *MotorcycleService) Latest(ctx context.Context) ([]models.Motorcycle, error) {
	motorcycles, err := s.motorcycleRepo.Latest(ctx, models.StatusStock, LatestCount)
	if err != nil {
		return nil, translate(err, "latest motorcycles")
	}
	return motorcycles, nil
}

func (s *MotorcycleService) FindBySlug(ctx context.Context, slug string) (*models.Motorcycle, error) {
	moto, err := s.motorcycleRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, translate(err, "find motorcycle")
	}
	return moto, nil
}

func (s *MotorcycleService) FindByID(ctx context.Context, id string) (*models.Motorcycle, error) {
	moto, err := s.motorcycleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "find motorcycle")
	}
	return moto, nil
}

// Compare returns up to MaxCompare motorcycles in the requested order
func (s *MotorcycleService) Compare(ctx context.Context, ids []string) ([]models.Motorcycle, error) {
	if len(ids) > MaxCompare {
		ids = ids[:MaxCompare]
	}
	found, err := s.motorcycleRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, translate(err, "compare motorcycles")
	}
	return SelectForCompare(found, ids), nil
}

func (s *MotorcycleService) Create(ctx context.Context, req models.MotorcycleRequest) (*models.Motorcycle, error) {
	moto := &models.Motorcycle{ID: uuid.New().String()}
	if err := s.apply(ctx, moto, req); err != nil {
		return nil, err
	}

	if err := s.motorcycleRepo.Create(ctx, moto); err != nil {
		return nil, translate(err, "create motorcycle")
	}

	applog.FromContext(ctx).Info("motorcycle created",
		zap.String("motorcycle_id", moto.ID),
		zap.String("slug", moto.Slug),
	)
	return moto, nil
}

func (s *MotorcycleService) Update(ctx context.Context, id string, req models.MotorcycleRequest) (*models.Motorcycle, error) {
	moto, err := s.motorcycleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "find motorcycle")
	}
	if err := s.apply(ctx, moto, req); err != nil {
		return nil, err
	}

	if err := s.motorcycleRepo.Update(ctx, moto); err != nil {
		return nil, translate(err, "update motorcycle")
	}

	applog.FromContext(ctx).Info("motorcycle updated",
		zap.String("motorcycle_id", moto.ID),
		zap.String("slug", moto.Slug),
	)
	return moto, nil
}

// Delete removes the motorcycle, its image rows and the stored files.
// File removal failures are logged only.
func (s *MotorcycleService) Delete(ctx context.Context, id string) error {
	log := applog.FromContext(ctx)

	images, err := s.imageRepo.ListByMotorcycle(ctx, id)
	if err != nil {
		return translate(err, "list images")
	}
	if err := s.motorcycleRepo.Delete(ctx, id); err != nil {
		return translate(err, "delete motorcycle")
	}

	for _, img := range images {
		if img.StorageKey == "" || s.disk == nil {
			continue
		}
		if err := s.disk.Delete(ctx, img.StorageKey); err != nil {
			log.Warn("could not delete stored image",
				zap.String("image_id", img.ID),
				zap.String("key", img.StorageKey),
				zap.Error(err),
			)
		}
	}

	log.Info("motorcycle deleted", zap.String("motorcycle_id", id), zap.Int("images", len(images)))
	return nil
}

// apply validates the form and copies it onto moto
func (s *MotorcycleService) apply(ctx context.Context, moto *models.Motorcycle, req models.MotorcycleRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return invalid("name is required")
	}

	slug := GenerateSlug(req.Slug)
	if slug == "" {
		slug = GenerateSlug(name)
	}
	if slug == "" {
		return invalid("slug is required")
	}
	taken, err := s.motorcycleRepo.SlugExists(ctx, slug, moto.ID)
	if err != nil {
		return translate(err, "check slug")
	}
	if taken {
		return ErrSlugTaken
	}

	offer := parseFloat(req.OfferPercentage)
	if offer != nil && !(*offer >= 0 && *offer <= 100) {
		return invalid("offer percentage must be between 0 and 100")
	}

	status, err := models.ParseStatus(strings.TrimSpace(req.Status))
	if err != nil {
		return invalid("%v", err)
	}

	FillFromForm(moto, req)
	moto.Slug = slug
	moto.Status = status
	return nil
}

// FillFromForm copies the form onto moto without validating it. The admin
// form uses it to redisplay rejected input.
func FillFromForm(moto *models.Motorcycle, req models.MotorcycleRequest) {
	moto.Name = strings.TrimSpace(req.Name)
	moto.Slug = strings.TrimSpace(req.Slug)
	moto.Description = strings.TrimSpace(req.Description)
	moto.Engine = strings.TrimSpace(req.Engine)
	moto.Exhaust = strings.TrimSpace(req.Exhaust)
	moto.Paint = strings.TrimSpace(req.Paint)
	moto.Modifications = strings.TrimSpace(req.Modifications)
	moto.Brand = optional(req.Brand)
	moto.Type = optional(req.Type)
	moto.Year = parseInt(req.Year)
	moto.Price = parseFloat(req.Price)
	moto.PriceUSD = parseFloat(req.PriceUSD)
	moto.OfferPercentage = parseFloat(req.OfferPercentage)
	moto.Featured = req.Featured
	moto.DisplayOrder = 0
	if order := parseInt(req.DisplayOrder); order != nil {
		moto.DisplayOrder = *order
	}
	moto.PurchasePrice = parseFloat(req.PurchasePrice)
	moto.SalePrice = parseFloat(req.SalePrice)
	moto.Expenses = parseFloat(req.Expenses)
	moto.PurchaseDate = parseDate(req.PurchaseDate)
	moto.SaleDate = parseDate(req.SaleDate)
	moto.Status = models.MotorcycleStatus(strings.TrimSpace(req.Status))
	moto.Notes = optional(req.Notes)
	moto.TradeInMotorcycleID = optional(req.TradeInID)
	moto.TradeInValue = parseFloat(req.TradeInValue)
	moto.CashPayment = parseFloat(req.CashPayment)
}

// parseFloat accepts "1234.5" and "1234,5"; anything else, including
// NaN and infinities, is nil
func parseFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func parseInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}
