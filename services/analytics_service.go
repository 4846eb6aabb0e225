// File: /services/analytics_service.go
package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"kustommania/models"
	"kustommania/repositories"
)

// OperationsHeaders is the CSV header row of the operations export
var OperationsHeaders = []string{
	"Nombre",
	"Estado",
	"Precio Compra",
	"Precio Venta",
	"Gastos",
	"Ganancia Neta",
	"Margen %",
	"Días en Stock",
}

// OperationRow is one line of the operations table
type OperationRow struct {
	ID            string
	Name          string
	Status        models.MotorcycleStatus
	PurchasePrice float64
	SalePrice     float64
	Expenses      float64
	NetProfit     float64
	Margin        float64
	DaysInStock   int
}

// OperationsFilter narrows the operations table
type OperationsFilter struct {
	Search string `form:"q"`
	Status string `form:"status"`
}

// Operations builds the table rows at instant now
func Operations(motorcycles []models.Motorcycle, filter OperationsFilter, now time.Time) []OperationRow {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	rows := make([]OperationRow, 0, len(motorcycles))

	for _, m := range motorcycles {
		if search != "" && !strings.Contains(strings.ToLower(m.Name), search) {
			continue
		}
		if active(filter.Status) && string(m.Stage()) != filter.Status {
			continue
		}

		profit := NetProfit(m.SalePrice, m.PurchasePrice, m.Expenses)
		row := OperationRow{
			ID:            m.ID,
			Name:          m.Name,
			Status:        m.Stage(),
			PurchasePrice: valueOf(m.PurchasePrice),
			SalePrice:     valueOf(m.SalePrice),
			Expenses:      valueOf(m.Expenses),
			NetProfit:     profit,
		}
		if row.SalePrice > 0 {
			row.Margin = MarginPercent(profit, m.SalePrice)
		}
		if m.PurchaseDate != nil {
			row.DaysInStock = daysBetween(*m.PurchaseDate, now)
		}
		rows = append(rows, row)
	}
	return rows
}

// csvText keeps spreadsheet apps from evaluating a text cell as a formula.
func csvText(v string) string {
	if v != "" && strings.ContainsRune("=+-@\t\r", rune(v[0])) {
		return "'" + v
	}
	return v
}

// ExportCSV writes the operations rows with the standard header
func ExportCSV(w io.Writer, rows []OperationRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(OperationsHeaders); err != nil {
		return err
	}
	for _, r := range rows {
		margin := "0"
		if r.SalePrice > 0 {
			margin = strconv.FormatFloat(r.Margin, 'f', 1, 64)
		}
		record := []string{
			csvText(r.Name),
			csvText(string(r.Status)),
			formatPlain(r.PurchasePrice),
			formatPlain(r.SalePrice),
			formatPlain(r.Expenses),
			formatPlain(r.NetProfit),
			margin,
			strconv.Itoa(r.DaysInStock),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// OperationsFilename names the export after the day it was produced
func OperationsFilename(now time.Time) string {
	return fmt.Sprintf("operaciones-%s.csv", now.Format("2006-01-02"))
}

// MonthlySales aggregates sales closed in one calendar month
type MonthlySales struct {
	Month  string
	Sales  int
	Profit float64
	key    string
}

type TopMotorcycle struct {
	ID     string
	Name   string
	Profit float64
	Margin float64
}

type StatusCount struct {
	Status models.MotorcycleStatus
	Label  string
	Count  int
}

// AnalyticsSummary is the analytics dashboard payload
type AnalyticsSummary struct {
	TotalMotorcycles int
	InStock          int
	SoldCount        int
	TotalRevenue     float64
	TotalCost        float64
	TotalProfit      float64
	AvgMargin        float64
	AvgDaysToSell    float64
	Distribution     []StatusCount
	Monthly          []MonthlySales
	Top              []TopMotorcycle
}

var monthNames = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"}

// Summary computes the dashboard figures. Sold covers sold and delivered.
func Summary(motorcycles []models.Motorcycle) AnalyticsSummary {
	summary := AnalyticsSummary{TotalMotorcycles: len(motorcycles)}

	counts := map[models.MotorcycleStatus]int{}
	var (
		sold       []models.Motorcycle
		marginSum  float64
		daysSum    int
		datedSales int
	)
	months := map[string]*MonthlySales{}

	for _, m := range motorcycles {
		counts[m.Stage()]++
		if !m.Stage().IsSold() {
			continue
		}
		sold = append(sold, m)

		profit := NetProfit(m.SalePrice, m.PurchasePrice, m.Expenses)
		summary.TotalRevenue += valueOf(m.SalePrice)
		summary.TotalCost += valueOf(m.PurchasePrice) + valueOf(m.Expenses)
		if valueOf(m.SalePrice) != 0 {
			marginSum += MarginPercent(profit, m.SalePrice)
		}

		if m.PurchaseDate != nil && m.SaleDate != nil {
			daysSum += daysBetween(*m.PurchaseDate, *m.SaleDate)
			datedSales++
		}

		if m.SaleDate != nil {
			key := m.SaleDate.Format("2006-01")
			entry, ok := months[key]
			if !ok {
				entry = &MonthlySales{
					Month: fmt.Sprintf("%s %d", monthNames[m.SaleDate.Month()-1], m.SaleDate.Year()),
					key:   key,
				}
				months[key] = entry
			}
			entry.Sales++
			entry.Profit += profit
		}
	}

	summary.InStock = counts[models.StatusStock]
	summary.SoldCount = len(sold)
	summary.TotalProfit = summary.TotalRevenue - summary.TotalCost
	if len(sold) > 0 {
		summary.AvgMargin = marginSum / float64(len(sold))
	}
	if datedSales > 0 {
		summary.AvgDaysToSell = float64(daysSum) / float64(datedSales)
	}

	for _, stage := range models.PipelineStages {
		summary.Distribution = append(summary.Distribution, StatusCount{
			Status: stage,
			Label:  stage.Label(),
			Count:  counts[stage],
		})
	}

	monthly := make([]MonthlySales, 0, len(months))
	for _, entry := range months {
		monthly = append(monthly, *entry)
	}
	sort.Slice(monthly, func(i, j int) bool { return monthly[i].key < monthly[j].key })
	if len(monthly) > 6 {
		monthly = monthly[len(monthly)-6:]
	}
	summary.Monthly = monthly

	top := make([]TopMotorcycle, 0, len(sold))
	for _, m := range sold {
		profit := NetProfit(m.SalePrice, m.PurchasePrice, m.Expenses)
		top = append(top, TopMotorcycle{
			ID:     m.ID,
			Name:   m.Name,
			Profit: profit,
			Margin: MarginPercent(profit, m.SalePrice),
		})
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].Profit > top[j].Profit })
	if len(top) > 5 {
		top = top[:5]
	}
	summary.Top = top

	return summary
}

func daysBetween(from, to time.Time) int {
	return int(math.Floor(to.Sub(from).Hours() / 24))
}

func valueOf(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func formatPlain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// DashboardCounts are the headline numbers on the admin home
type DashboardCounts struct {
	Motorcycles int64
	Leads       int64
	Images      int64
}

type AnalyticsService struct {
	motorcycleRepo *repositories.MotorcycleRepository
	leadRepo       *repositories.LeadRepository
	imageRepo      *repositories.ImageRepository
	now            func() time.Time
}

func NewAnalyticsService(motorcycleRepo *repositories.MotorcycleRepository, leadRepo *repositories.LeadRepository, imageRepo *repositories.ImageRepository) *AnalyticsService {
	return &AnalyticsService{
		motorcycleRepo: motorcycleRepo,
		leadRepo:       leadRepo,
		imageRepo:      imageRepo,
		now:            time.Now,
	}
}

func (s *AnalyticsService) Summary(ctx context.Context) (AnalyticsSummary, error) {
	motorcycles, err := s.motorcycleRepo.List(ctx)
	if err != nil {
		return Summary(nil), translate(err, "list motorcycles")
	}
	return Summary(motorcycles), nil
}

func (s *AnalyticsService) Operations(ctx context.Context, filter OperationsFilter) ([]OperationRow, error) {
	motorcycles, err := s.motorcycleRepo.List(ctx)
	if err != nil {
		return nil, translate(err, "list motorcycles")
	}
	return Operations(motorcycles, filter, s.now()), nil
}

// OperationsFilename names an export produced now
func (s *AnalyticsService) OperationsFilename() string {
	return OperationsFilename(s.now())
}

func (s *AnalyticsService) Counts(ctx context.Context) (DashboardCounts, error) {
	var counts DashboardCounts
	var err error
	if counts.Motorcycles, err = s.motorcycleRepo.Count(ctx); err != nil {
		return counts, translate(err, "count motorcycles")
	}
	if counts.Leads, err = s.leadRepo.Count(ctx); err != nil {
		return counts, translate(err, "count leads")
	}
	if counts.Images, err = s.imageRepo.Count(ctx); err != nil {
		return counts, translate(err, "count images")
	}
	return counts, nil
}
