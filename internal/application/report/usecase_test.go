package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youssefyouyoudev/GestionStock/internal/application/report"
	"github.com/youssefyouyoudev/GestionStock/internal/domain"
	"github.com/youssefyouyoudev/GestionStock/internal/domain/entity"
	"github.com/youssefyouyoudev/GestionStock/internal/domain/repository"
)

// ── Fakes ────────────────────────────────────────────────────────────────────

type fakeAnalytics struct {
	metrics   *repository.MetricsResult
	lowStock  []*entity.Product
	daily     []repository.DailyTotal
	lastKind  string
	lastDays  int
	exportRow []repository.SaleExportRow
}

func (f *fakeAnalytics) Metrics(context.Context) (*repository.MetricsResult, error) {
	return f.metrics, nil
}

func (f *fakeAnalytics) LowStock(context.Context) ([]*entity.Product, error) {
	return f.lowStock, nil
}

func (f *fakeAnalytics) DailyTotals(_ context.Context, kind string, days int) ([]repository.DailyTotal, error) {
	f.lastKind = kind
	f.lastDays = days
	return f.daily, nil
}

func (f *fakeAnalytics) SalesForExport(context.Context) ([]repository.SaleExportRow, error) {
	return f.exportRow, nil
}

type fakeMovements struct {
	lastLimit int
	items     []*entity.StockMovement
}

func (f *fakeMovements) Append(*entity.StockMovement) error { return nil }

func (f *fakeMovements) ListRecent(limit int) ([]*entity.StockMovement, error) {
	f.lastLimit = limit
	return f.items, nil
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestMetrics_MapeaLosKPIs(t *testing.T) {
	analytics := &fakeAnalytics{metrics: &repository.MetricsResult{
		Products:  12,
		Suppliers: 3,
		Customers: 40,
		Revenue:   dec("1500.50"),
		Purchases: dec("900.00"),
	}}
	uc := report.NewUseCase(analytics, &fakeMovements{})

	out, err := uc.Metrics(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 12, out.Products)
	assert.EqualValues(t, 3, out.Suppliers)
	assert.EqualValues(t, 40, out.Customers)
	assert.True(t, out.Revenue.Equal(dec("1500.50")))
	assert.True(t, out.Purchases.Equal(dec("900.00")))
}

func TestDailyTotals_FormateaFechasISO(t *testing.T) {
	analytics := &fakeAnalytics{daily: []repository.DailyTotal{
		{Date: time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC), Total: dec("10")},
		{Date: time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC), Total: dec("30")},
	}}
	uc := report.NewUseCase(analytics, &fakeMovements{})

	out, err := uc.DailyTotals(context.Background(), repository.DailyKindSales, 14)
	require.NoError(t, err)
	require.Len(t, out, 2)
	// Serie dispersa en orden ascendente, fecha AAAA-MM-DD.
	assert.Equal(t, "2026-08-25", out[0].Date)
	assert.Equal(t, "2026-08-27", out[1].Date)
}

func TestDailyTotals_RechazaKindDesconocido(t *testing.T) {
	uc := report.NewUseCase(&fakeAnalytics{}, &fakeMovements{})

	_, err := uc.DailyTotals(context.Background(), "refunds", 14)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDailyTotals_AcotaLaVentana(t *testing.T) {
	analytics := &fakeAnalytics{}
	uc := report.NewUseCase(analytics, &fakeMovements{})
	ctx := context.Background()

	_, err := uc.DailyTotals(ctx, repository.DailyKindPurchases, 0)
	require.NoError(t, err)
	assert.Equal(t, 14, analytics.lastDays) // default

	_, err = uc.DailyTotals(ctx, repository.DailyKindPurchases, 10000)
	require.NoError(t, err)
	assert.Equal(t, 365, analytics.lastDays) // tope
}

func TestMovementHistory_AcotaElLimite(t *testing.T) {
	movements := &fakeMovements{items: []*entity.StockMovement{
		{ID: 2, ProductID: "p-a", ProductName: "Arroz", Quantity: -3, Type: entity.MovementTypeOUT},
		{ID: 1, ProductID: "p-a", ProductName: "Arroz", Quantity: 5, Type: entity.MovementTypeIN},
	}}
	uc := report.NewUseCase(&fakeAnalytics{}, movements)
	ctx := context.Background()

	out, err := uc.MovementHistory(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 200, movements.lastLimit) // default
	require.Len(t, out, 2)
	assert.Equal(t, "Arroz", out[0].ProductName)

	_, err = uc.MovementHistory(ctx, 99999)
	require.NoError(t, err)
	assert.Equal(t, 1000, movements.lastLimit) // tope
}

func TestLowStock_DevuelveLosProductosBajoUmbral(t *testing.T) {
	analytics := &fakeAnalytics{lowStock: []*entity.Product{
		{ID: "p-b", Name: "Frijol", Quantity: 0, MinQuantity: 5},
		{ID: "p-a", Name: "Arroz", Quantity: 2, MinQuantity: 3},
	}}
	uc := report.NewUseCase(analytics, &fakeMovements{})

	out, err := uc.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	// Se respeta el orden del repositorio: existencia ascendente.
	assert.Equal(t, "Frijol", out[0].Name)
	assert.Equal(t, "Arroz", out[1].Name)
}
