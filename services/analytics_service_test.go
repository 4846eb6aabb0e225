package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kustommania/models"
	"kustommania/repositories"
	"kustommania/testutil"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func analyticsFixture() []models.Motorcycle {
	return []models.Motorcycle{
		{
			ID: "a", Name: "Fat Boy", Status: models.StatusSold,
			PurchasePrice: testutil.Ptr(8000.0), SalePrice: testutil.Ptr(10000.0), Expenses: testutil.Ptr(500.0),
			PurchaseDate: day(2025, 1, 1), SaleDate: day(2025, 1, 31),
		},
		{
			ID: "b", Name: "Bobber 883", Status: models.StatusDelivered,
			PurchasePrice: testutil.Ptr(5000.0), SalePrice: testutil.Ptr(6000.0),
			PurchaseDate: day(2025, 2, 1), SaleDate: day(2025, 3, 3),
		},
		{
			ID: "c", Name: "Shadow", Status: models.StatusReserved,
			PurchasePrice: testutil.Ptr(3000.0), PurchaseDate: day(2025, 3, 1),
		},
		{ID: "d", Name: "Café Racer"},
	}
}

func TestOperations(t *testing.T) {
	now := time.Date(2025, 3, 11, 12, 0, 0, 0, time.UTC)
	rows := Operations(analyticsFixture(), OperationsFilter{}, now)
	require.Len(t, rows, 4)

	assert.Equal(t, "Fat Boy", rows[0].Name)
	assert.Equal(t, 1500.0, rows[0].NetProfit)
	assert.InDelta(t, 15.0, rows[0].Margin, 1e-9)
	assert.Equal(t, 69, rows[0].DaysInStock)

	assert.Equal(t, models.StatusReserved, rows[2].Status)
	assert.Equal(t, -3000.0, rows[2].NetProfit)
	assert.Equal(t, 0.0, rows[2].Margin)
	assert.Equal(t, 10, rows[2].DaysInStock)

	assert.Equal(t, models.StatusStock, rows[3].Status)
	assert.Equal(t, 0, rows[3].DaysInStock)
}

func TestOperations_Filter(t *testing.T) {
	now := time.Now()

	rows := Operations(analyticsFixture(), OperationsFilter{Search: "BOB"}, now)
	require.Len(t, rows, 1)
	assert.Equal(t, "b", rows[0].ID)

	rows = Operations(analyticsFixture(), OperationsFilter{Status: "stock"}, now)
	require.Len(t, rows, 1)
	assert.Equal(t, "d", rows[0].ID)

	assert.Len(t, Operations(analyticsFixture(), OperationsFilter{Status: "all"}, now), 4)
}

func TestExportCSV(t *testing.T) {
	now := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	rows := Operations(analyticsFixture(), OperationsFilter{}, now)

	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, OperationsHeaders, records[0])
	assert.Equal(t, []string{"Fat Boy", "sold", "8000", "10000", "500", "1500", "15.0", "69"}, records[1])
	assert.Equal(t, []string{"Bobber 883", "delivered", "5000", "6000", "0", "1000", "16.7", "38"}, records[2])
	assert.Equal(t, "0", records[3][6])
}

func TestExportCSV_EscapesFormulaText(t *testing.T) {
	rows := []OperationRow{
		{Name: `=HYPERLINK("http://x","y")`, Status: models.StatusSold, PurchasePrice: 1000, SalePrice: 800, NetProfit: -200, Margin: -25},
		{Name: "+cmd", Status: models.StatusSold},
		{Name: "@SUM(A1)", Status: models.StatusSold},
		{Name: "-Sportster", Status: models.StatusSold},
		{Name: "Fat Boy", Status: models.StatusSold},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, rows))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 6)

	assert.Equal(t, `'=HYPERLINK("http://x","y")`, records[1][0])
	assert.Equal(t, "-200", records[1][5])
	assert.Equal(t, "-25.0", records[1][6])
	assert.Equal(t, "'+cmd", records[2][0])
	assert.Equal(t, "'@SUM(A1)", records[3][0])
	assert.Equal(t, "'-Sportster", records[4][0])
	assert.Equal(t, "Fat Boy", records[5][0])
}

func TestOperationsFilename(t *testing.T) {
	assert.Equal(t, "operaciones-2025-03-09.csv", OperationsFilename(time.Date(2025, 3, 9, 23, 0, 0, 0, time.UTC)))
}

func TestSummary(t *testing.T) {
	s := Summary(analyticsFixture())

	assert.Equal(t, 4, s.TotalMotorcycles)
	assert.Equal(t, 1, s.InStock)
	assert.Equal(t, 2, s.SoldCount)
	assert.Equal(t, 16000.0, s.TotalRevenue)
	assert.Equal(t, 13500.0, s.TotalCost)
	assert.Equal(t, 2500.0, s.TotalProfit)
	assert.InDelta(t, (15.0+1000.0/6000.0*100)/2, s.AvgMargin, 1e-9)
	assert.InDelta(t, 30.0, s.AvgDaysToSell, 1e-9)

	require.Len(t, s.Distribution, 4)
	assert.Equal(t, StatusCount{Status: models.StatusStock, Label: "En Stock", Count: 1}, s.Distribution[0])
	assert.Equal(t, 1, s.Distribution[1].Count)

	require.Len(t, s.Monthly, 2)
	assert.Equal(t, "ene 2025", s.Monthly[0].Month)
	assert.Equal(t, 1500.0, s.Monthly[0].Profit)
	assert.Equal(t, "mar 2025", s.Monthly[1].Month)

	require.Len(t, s.Top, 2)
	assert.Equal(t, "Fat Boy", s.Top[0].Name)
	assert.Equal(t, "Bobber 883", s.Top[1].Name)
}

func TestSummary_KeepsLastSixMonthsAndTopFive(t *testing.T) {
	var list []models.Motorcycle
	for i := 0; i < 8; i++ {
		list = append(list, models.Motorcycle{
			ID:        string(rune('a' + i)),
			Name:      string(rune('A' + i)),
			Status:    models.StatusSold,
			SalePrice: testutil.Ptr(float64(1000 * (i + 1))),
			SaleDate:  day(2024, time.Month(i+1), 10),
		})
	}

	s := Summary(list)
	require.Len(t, s.Monthly, 6)
	assert.Equal(t, "mar 2024", s.Monthly[0].Month)
	assert.Equal(t, "ago 2024", s.Monthly[5].Month)

	require.Len(t, s.Top, 5)
	assert.Equal(t, "H", s.Top[0].Name)
	assert.Equal(t, "D", s.Top[4].Name)
}

func TestSummary_Empty(t *testing.T) {
	s := Summary(nil)
	assert.Zero(t, s.SoldCount)
	assert.Zero(t, s.AvgMargin)
	assert.Len(t, s.Distribution, 4)
	assert.Empty(t, s.Monthly)
	assert.Empty(t, s.Top)
}

func TestAnalyticsService_Counts(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	moto := testutil.CreateMotorcycle(t, db, models.Motorcycle{})
	testutil.CreateMotorcycle(t, db, models.Motorcycle{})

	imageRepo := repositories.NewImageRepository(db)
	require.NoError(t, imageRepo.Create(ctx, &models.MotorcycleImage{ID: "img-1", MotorcycleID: moto.ID, ImageURL: "/uploads/a.jpg"}))
	leadRepo := repositories.NewLeadRepository(db)
	require.NoError(t, leadRepo.Create(ctx, &models.Lead{ID: "lead-1", Name: "Ana", Location: "Rosario"}))

	svc := NewAnalyticsService(repositories.NewMotorcycleRepository(db), leadRepo, imageRepo)
	counts, err := svc.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, DashboardCounts{Motorcycles: 2, Leads: 1, Images: 1}, counts)
}
