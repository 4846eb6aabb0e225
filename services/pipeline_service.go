// File: /services/pipeline_service.go
package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	applog "kustommania/logger"
	"kustommania/metrics"
	"kustommania/models"
	"kustommania/repositories"
)

// PipelineColumn is one stage of the sales board
type PipelineColumn struct {
	Stage       models.MotorcycleStatus
	Label       string
	Motorcycles []models.Motorcycle
	Count       int
	TotalValue  float64
	Next        models.MotorcycleStatus
}

// NextStage returns the stage after s and false when s is final
func NextStage(s models.MotorcycleStatus) (models.MotorcycleStatus, bool) {
	if s == "" {
		s = models.StatusStock
	}
	for i, stage := range models.PipelineStages {
		if stage == s && i+1 < len(models.PipelineStages) {
			return models.PipelineStages[i+1], true
		}
	}
	return "", false
}

// Board groups motorcycles into the four fixed columns. Rows without a
// status land in stock.
func Board(motorcycles []models.Motorcycle) []PipelineColumn {
	columns := make([]PipelineColumn, len(models.PipelineStages))
	index := map[models.MotorcycleStatus]int{}
	for i, stage := range models.PipelineStages {
		next, _ := NextStage(stage)
		columns[i] = PipelineColumn{Stage: stage, Label: stage.Label(), Next: next}
		index[stage] = i
	}

	for _, m := range motorcycles {
		i, ok := index[m.Stage()]
		if !ok {
			continue
		}
		col := &columns[i]
		col.Motorcycles = append(col.Motorcycles, m)
		col.Count++
		col.TotalValue += m.PriceValue()
	}
	return columns
}

type PipelineService struct {
	motorcycleRepo *repositories.MotorcycleRepository
	now            func() time.Time
}

func NewPipelineService(motorcycleRepo *repositories.MotorcycleRepository) *PipelineService {
	return &PipelineService{
		motorcycleRepo: motorcycleRepo,
		now:            time.Now,
	}
}

// Board loads every motorcycle and groups it by stage
func (s *PipelineService) Board(ctx context.Context) ([]PipelineColumn, error) {
	motorcycles, err := s.motorcycleRepo.List(ctx)
	if err != nil {
		return Board(nil), translate(err, "list motorcycles")
	}
	return Board(motorcycles), nil
}

// Advance moves a motorcycle one stage forward. Reaching sold stamps the
// sale date when none was recorded.
func (s *PipelineService) Advance(ctx context.Context, id string) (models.MotorcycleStatus, error) {
	moto, err := s.motorcycleRepo.FindByID(ctx, id)
	if err != nil {
		return "", translate(err, "find motorcycle")
	}

	next, ok := NextStage(moto.Stage())
	if !ok {
		return "", ErrFinalStage
	}

	updates := map[string]interface{}{}
	if next == models.StatusSold && moto.SaleDate == nil {
		now := s.now()
		updates["sale_date"] = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}

	if err := s.motorcycleRepo.UpdateStatus(ctx, id, next, updates); err != nil {
		return "", translate(err, "advance motorcycle")
	}

	metrics.PipelineAdvances.WithLabelValues(string(next)).Inc()
	applog.FromContext(ctx).Info("pipeline advanced",
		zap.String("motorcycle_id", id),
		zap.String("from", string(moto.Stage())),
		zap.String("to", string(next)),
	)
	return next, nil
}
