package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youssefyouyoudev/GestionStock/internal/application/ledger"
	"github.com/youssefyouyoudev/GestionStock/internal/domain"
	"github.com/youssefyouyoudev/GestionStock/internal/domain/entity"
	"github.com/youssefyouyoudev/GestionStock/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// fakeStore simula la base; fakeTxRunner clona el estado antes de ejecutar
// el callback y solo publica el clon si el callback termina sin error, igual
// que un COMMIT/ROLLBACK real.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	products      map[string]*entity.Product
	movements     []*entity.StockMovement
	purchases     []*entity.Purchase
	purchaseLines []*entity.PurchaseLine
	sales         []*entity.Sale
	saleLines     []*entity.SaleLine
	nextID        int64

	lockOrder []string // orden en que se bloquearon productos
}

func newFakeStore(products ...*entity.Product) *fakeStore {
	s := &fakeStore{products: make(map[string]*entity.Product), nextID: 0}
	for _, p := range products {
		cp := *p
		s.products[p.ID] = &cp
	}
	return s
}

func (s *fakeStore) clone() *fakeStore {
	c := &fakeStore{
		products:      make(map[string]*entity.Product, len(s.products)),
		movements:     append([]*entity.StockMovement(nil), s.movements...),
		purchases:     append([]*entity.Purchase(nil), s.purchases...),
		purchaseLines: append([]*entity.PurchaseLine(nil), s.purchaseLines...),
		sales:         append([]*entity.Sale(nil), s.sales...),
		saleLines:     append([]*entity.SaleLine(nil), s.saleLines...),
		nextID:        s.nextID,
		lockOrder:     append([]string(nil), s.lockOrder...),
	}
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	return c
}

// failures permite inyectar errores de almacenamiento en puntos concretos.
type failures struct {
	onSetQuantity map[string]error // por producto
	onAppendAfter int              // falla el Append número N (1-based); 0 = nunca
	appendCount   int
}

type fakeTxRunner struct {
	store *fakeStore
	fail  *failures
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	purchases repository.PurchaseRepository,
	sales repository.SaleRepository,
) error) error {
	if r.fail == nil {
		r.fail = &failures{}
	}
	tx := r.store.clone()
	err := fn(
		&fakeProductRepo{s: tx, fail: r.fail},
		&fakeMovementRepo{s: tx, fail: r.fail},
		&fakePurchaseRepo{s: tx},
		&fakeSaleRepo{s: tx},
	)
	if err != nil {
		return err // rollback: el clon se descarta
	}
	*r.store = *tx // commit
	return nil
}

// ── ProductRepository ────────────────────────────────────────────────────────

type fakeProductRepo struct {
	s    *fakeStore
	fail *failures
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	r.s.lockOrder = append(r.s.lockOrder, id)
	return r.GetByID(id)
}

func (r *fakeProductRepo) Search(string) ([]*entity.Product, error) { return nil, nil }

func (r *fakeProductRepo) Update(p *entity.Product) error {
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) SetQuantity(id string, quantity int64) error {
	if err := r.fail.onSetQuantity[id]; err != nil {
		return err
	}
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity = quantity
	return nil
}

func (r *fakeProductRepo) SetQuantityAndPrice(id string, quantity int64, price decimal.Decimal) error {
	if err := r.SetQuantity(id, quantity); err != nil {
		return err
	}
	r.s.products[id].PurchasePrice = price
	return nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.s.products, id)
	return nil
}

// ── StockMovementRepository ──────────────────────────────────────────────────

type fakeMovementRepo struct {
	s    *fakeStore
	fail *failures
}

func (r *fakeMovementRepo) Append(m *entity.StockMovement) error {
	r.fail.appendCount++
	if r.fail.onAppendAfter > 0 && r.fail.appendCount >= r.fail.onAppendAfter {
		return errors.New("fallo de almacenamiento simulado")
	}
	r.s.nextID++
	cp := *m
	cp.ID = r.s.nextID
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) ListRecent(limit int) ([]*entity.StockMovement, error) {
	out := make([]*entity.StockMovement, 0, limit)
	for i := len(r.s.movements) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.s.movements[i])
	}
	return out, nil
}

// ── PurchaseRepository / SaleRepository ──────────────────────────────────────

type fakePurchaseRepo struct{ s *fakeStore }

func (r *fakePurchaseRepo) InsertHeader(p *entity.Purchase) error {
	r.s.nextID++
	p.ID = r.s.nextID
	cp := *p
	r.s.purchases = append(r.s.purchases, &cp)
	return nil
}

func (r *fakePurchaseRepo) InsertLine(l *entity.PurchaseLine) error {
	r.s.nextID++
	l.ID = r.s.nextID
	cp := *l
	r.s.purchaseLines = append(r.s.purchaseLines, &cp)
	return nil
}

func (r *fakePurchaseRepo) SetTotal(purchaseID int64, total decimal.Decimal) error {
	for _, p := range r.s.purchases {
		if p.ID == purchaseID {
			p.TotalAmount = total
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeSaleRepo struct{ s *fakeStore }

func (r *fakeSaleRepo) InsertHeader(sale *entity.Sale) error {
	r.s.nextID++
	sale.ID = r.s.nextID
	cp := *sale
	r.s.sales = append(r.s.sales, &cp)
	return nil
}

func (r *fakeSaleRepo) InsertLine(l *entity.SaleLine) error {
	r.s.nextID++
	l.ID = r.s.nextID
	cp := *l
	r.s.saleLines = append(r.s.saleLines, &cp)
	return nil
}

func (r *fakeSaleRepo) SetTotal(saleID int64, total decimal.Decimal) error {
	for _, s := range r.s.sales {
		if s.ID == saleID {
			s.TotalAmount = total
			return nil
		}
	}
	return domain.ErrNotFound
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func producto(id, name string, qty int64) *entity.Product {
	return &entity.Product{
		ID:            id,
		Name:          name,
		Quantity:      qty,
		PurchasePrice: decimal.Zero,
		SellingPrice:  decimal.Zero,
	}
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// sumaDeltas suma los deltas de movimientos de un producto.
func sumaDeltas(s *fakeStore, productID string) int64 {
	var sum int64
	for _, m := range s.movements {
		if m.ProductID == productID {
			sum += m.Quantity
		}
	}
	return sum
}

// ──────────────────────────────────────────────────────────────────────────────
// Compras
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyPurchase_ActualizaExistenciaCostoYTotal(t *testing.T) {
	store := newFakeStore(
		producto("p-a", "Arroz", 10),
		producto("p-b", "Frijol", 0),
	)
	uc := ledger.NewUseCase(&fakeTxRunner{store: store})

	id, err := uc.ApplyPurchase(context.Background(), ledger.PurchaseInput{
		SupplierID: "s-1",
		Lines: []ledger.PurchaseLineInput{
			{ProductID: "p-a", Quantity: 5, UnitCost: dec("2.50")},
			{ProductID: "p-b", Quantity: 3, UnitCost: dec("10.00")},
		},
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	assert.EqualValues(t, 15, store.products["p-a"].Quantity)
	assert.EqualValues(t, 3, store.products["p-b"].Quantity)
	assert.True(t, store.products["p-a"].PurchasePrice.Equal(dec("2.50")))
	assert.True(t, store.products["p-b"].PurchasePrice.Equal(dec("10.00")))

	// Total de cabecera = Σ cantidad × costo = 5×2.50 + 3×10 = 42.50
	require.Len(t, store.purchases, 1)
	assert.True(t, store.purchases[0].TotalAmount.Equal(dec("42.50")))
	assert.Len(t, store.purchaseLines, 2)

	// Un movimiento IN por línea, con la referencia a la compra
	require.Len(t, store.movements, 2)
	for _, m := range store.movements {
		assert.Equal(t, entity.MovementTypeIN, m.Type)
		assert.Contains(t, m.Note, "Compra #")
		assert.Positive(t, m.Quantity)
	}
}

func TestApplyPurchase_MismoProductoEnVariasLineas_GanaElUltimoCosto(t *testing.T) {
	store := newFakeStore(producto("p-a", "Arroz", 0))
	uc := ledger.NewUseCase(&fakeTxRunner{store: store})

	_, err := uc.ApplyPurchase(context.Background(), ledger.PurchaseInput{
		Lines: []ledger.PurchaseLineInput{
			{ProductID: "p-a", Quantity: 4, UnitCost: dec("3.00")},
			{ProductID: "p-a", Quantity: 6, UnitCost: dec("2.00")},
		},
	})
	require.NoError(t, err)

	// Las cantidades se acumulan; el costo es el de la última línea, sin promediar.
	assert.EqualValues(t, 10, store.products["p-a"].Quantity)
	assert.True(t, store.products["p-a"].PurchasePrice.Equal(dec("2.00")))
	assert.True(t, store.purchases[0].TotalAmount.Equal(dec("24.00")))
}

func TestApplyPurchase_ValidaEntradaAntesDeTocarNada(t *testing.T) {
	store := newFakeStore(producto("p-a", "Arroz", 10))
	uc := ledger.NewUseCase(&fakeTxRunner{store: store})

	casos := []ledger.PurchaseInput{
		{},
		{Lines: []ledger.PurchaseLineInput{{ProductID: "p-a", Quantity: 0, UnitCost: dec("1")}}},
		{Lines: []ledger.PurchaseLineInput{{ProductID: "p-a", Quantity: -2, UnitCost: dec("1")}}},
		{Lines: []ledger.PurchaseLineInput{{ProductID: "p-a", Quantity: 1, UnitCost: dec("-1")}}},
	}
	for _, in := range casos {
		_, err := uc.ApplyPurchase(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.EqualValues(t, 10, store.products["p-a"].Quantity)
	assert.Empty(t, store.purchases)
	assert.Empty(t, store.movements)
}

func TestApplyPurchase_ProductoInexistente_NoDejaRastro(t *testing.T) {
	store := newFakeStore(producto("p-a", "Arroz", 10))
	uc := ledger.NewUseCase(&fakeTxRunner{store: store})

	_, err := uc.ApplyPurchase(context.Background(), ledger.PurchaseInput{
		Lines: []ledger.PurchaseLineInput{
			{ProductID: "p-a", Quantity: 1, UnitCost: dec("1")},
			{ProductID: "p-x", Quantity: 1, UnitCost: dec("1")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualValues(t, 10, store.products["p-a"].Quantity)
	assert.Empty(t, store.purchases)
	assert.Empty(t, store.purchaseLines)
	assert.Empty(t, store.movements)
}

func TestApplyPurchase_BloqueaProductosEnOrdenAscendente(t *testing.T) {
	store := newFakeStore(
		producto("p-c", "C", 0),
		producto("p-a", "A", 0),
		producto("p-b", "B", 0),
	)
	uc := ledger.NewUseCase(&fakeTxRunner{store: store})

	_, err := uc.ApplyPurchase(context.Background(), ledger.PurchaseInput{
		Lines: []ledger.PurchaseLineInput{
			{ProductID: "p-c", Quantity: 1, UnitCost: dec("1")},
			{ProductID: "p-a", Quantity: 1, UnitCost: dec("1")},
			{ProductID: "p-b", Quantity: 1, UnitCost: dec("1")},
			{ProductID: "p-a", Quantity: 1, UnitCost: dec("1")}, // repetido: se bloquea una vez
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"p-a", "p-b", "p-c"}, store.lockOrder)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestApplySale_DescuentaStockSinTocarElCosto(t *testing.T) {
	p := producto("p-a", "Arroz", 10)
	p.PurchasePrice = dec("2.00")
	store := newFakeStore(p)
	uc := ledger.NewUseCase(&fakeTxRunner{store: store})

	id, err := uc.ApplySale(context.Background(), ledger.SaleInput{
		CustomerID:    "c-1",
		PaymentMethod: "efectivo",
		Lines: []ledger.SaleLineInput{
			{ProductID: "p-a", Quantity: 4, UnitPrice: dec("5.00")},
		},
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	assert.EqualValues(t, 6, store.products["p-a"].Quantity)
	assert.True(t, store.products["p-a"].PurchasePrice.Equal(dec("2.00")),
		"la venta no debe tocar el costo de compra")

	require.Len(t, store.sales, 1)
	assert.True(t, store.sales[0].TotalAmount.Equal(dec("20.00")))
	assert.Equal(t, "efectivo", store.sales[0].PaymentMethod)

	require.Len(t, store.movements, 1)
	assert.Equal(t, entity.MovementTypeOUT, store.movements[0].Type)
	assert.EqualValues(t, -4, store.movements[0].Quantity)
	assert.Contains(t, store.movements[0].Note, "Venta #")
}

func TestApplySale_StockInsuficiente_TodoONada(t *testing.T) {
	store := newFakeStore(
		producto("p-a", "Arroz", 100),
		producto("p-b", "Frijol", 100),
		producto("p-c", "Azúcar", 2),
	)
	uc := ledger.NewUseCase(&fakeTxRunner{store: store})

	_, err := uc.ApplySale(context.Background(), ledger.SaleInput{
		PaymentMethod: "efectivo",
		Lines: []ledger.SaleLineInput{
			{ProductID: "p-a", Quantity: 10, UnitPrice: dec("1")},
			{ProductID: "p-b", Quantity: 10, UnitPrice: dec("1")},
			{ProductID: "p-c", Quantity: 5, UnitPrice: dec("1")}, // no alcanza
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "p-c", stockErr.ProductID)
	assert.Equal(t, "Azúcar", stockErr.Name)
	assert.EqualValues(t, 5, stockErr.Requested)
	assert.EqualValues(t, 2, stockErr.Available)

	// Ninguna línea aplicada: ni las que sí tenían stock.
	assert.EqualValues(t, 100, store.products["p-a"].Quantity)
	assert.EqualValues(t, 100, store.products["p-b"].Quantity)
	assert.EqualValues(t, 2, store.products["p-c"].Quantity)
	assert.Empty(t, store.sales)
	assert.Empty(t, store.saleLines)
	assert.Empty(t, store.movements)
}

func TestApplySale_LineasDuplicadasSeAcumulanAlValidar(t *testing.T) {
	store := newFakeStore(producto("p-a", "Arroz", 10))
	uc := ledger.NewUseCase(&fakeTxRunner{store: store})

	// Cada línea cabe por separado (6 ≤ 10) pero juntas piden 12.
	_, err := uc.ApplySale(context.Background(), ledger.SaleInput{
		PaymentMethod: "efectivo",
		Lines: []ledger.SaleLineInput{
			{ProductID: "p-a", Quantity: 6, UnitPrice: dec("1")},
			{ProductID: "p-a", Quantity: 6, UnitPrice: dec("1")},
		},
	})
	require.Error(t, err)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.EqualValues(t, 12, stockErr.Requested)
	assert.EqualValues(t, 10, stockErr.Available)
	assert.EqualValues(t, 10, store.products["p-a"].Quantity)
}

func TestApplySale_VenderTodoDejaExistenciaEnCero(t *testing.T) {
	store := newFakeStore(producto("p-a", "Arroz", 7))
	uc := ledger.NewUseCase(&fakeTxRunner{store: store})

	_, err := uc.ApplySale(context.Background(), ledger.SaleInput{
		PaymentMethod: "tarjeta",
		Lines: []ledger.SaleLineInput{
			{ProductID: "p-a", Quantity: 7, UnitPrice: dec("1.50")},
		},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 0, store.products["p-a"].Quantity)
}

func TestApplySale_RequiereMetodoDePago(t *testing.T) {
	store := newFakeStore(producto("p-a", "Arroz", 10))
	uc := ledger.NewUseCase(&fakeTxRunner{store: store})

	_, err := uc.ApplySale(context.Background(), ledger.SaleInput{
		Lines: []ledger.SaleLineInput{{ProductID: "p-a", Quantity: 1, UnitPrice: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplySale_FalloDeAlmacenamiento_RevierteTodo(t *testing.T) {
	store := newFakeStore(
		producto("p-a", "Arroz", 10),
		producto("p-b", "Frijol", 10),
	)
	// Falla el segundo Append (la segunda línea ya descontó existencia en la tx).
	runner := &fakeTxRunner{store: store, fail: &failures{onAppendAfter: 2}}
	uc := ledger.NewUseCase(runner)

	_, err := uc.ApplySale(context.Background(), ledger.SaleInput{
		PaymentMethod: "efectivo",
		Lines: []ledger.SaleLineInput{
			{ProductID: "p-a", Quantity: 3, UnitPrice: dec("1")},
			{ProductID: "p-b", Quantity: 3, UnitPrice: dec("1")},
		},
	})
	require.Error(t, err)

	// Rollback completo: existencias intactas, sin venta ni movimientos.
	assert.EqualValues(t, 10, store.products["p-a"].Quantity)
	assert.EqualValues(t, 10, store.products["p-b"].Quantity)
	assert.Empty(t, store.sales)
	assert.Empty(t, store.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustStock_PuedeDejarExistenciaNegativa(t *testing.T) {
	store := newFakeStore(producto("p-a", "Arroz", 5))
	uc := ledger.NewUseCase(&fakeTxRunner{store: store})

	err := uc.AdjustStock(context.Background(), "p-a", -8, "conteo físico")
	require.NoError(t, err)

	// El ajuste manual sí puede bajar de cero; la venta no.
	assert.EqualValues(t, -3, store.products["p-a"].Quantity)
	require.Len(t, store.movements, 1)
	assert.Equal(t, entity.MovementTypeADJUST, store.movements[0].Type)
	assert.EqualValues(t, -8, store.movements[0].Quantity)
	assert.Equal(t, "conteo físico", store.movements[0].Note)
}

func TestAdjustStock_NotaPorDefecto(t *testing.T) {
	store := newFakeStore(producto("p-a", "Arroz", 5))
	uc := ledger.NewUseCase(&fakeTxRunner{store: store})

	require.NoError(t, uc.AdjustStock(context.Background(), "p-a", 2, ""))
	require.Len(t, store.movements, 1)
	assert.Equal(t, "Ajuste manual", store.movements[0].Note)
}

func TestAdjustStock_DeltaCeroEsInvalido(t *testing.T) {
	store := newFakeStore(producto("p-a", "Arroz", 5))
	uc := ledger.NewUseCase(&fakeTxRunner{store: store})

	assert.ErrorIs(t, uc.AdjustStock(context.Background(), "p-a", 0, ""), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.AdjustStock(context.Background(), "", 3, ""), domain.ErrInvalidInput)
}

func TestAdjustStock_ProductoInexistente(t *testing.T) {
	store := newFakeStore()
	uc := ledger.NewUseCase(&fakeTxRunner{store: store})

	assert.ErrorIs(t, uc.AdjustStock(context.Background(), "p-x", 3, ""), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariante del historial
// ──────────────────────────────────────────────────────────────────────────────

// La suma de deltas de movimientos de un producto debe igualar el cambio
// neto de su existencia, sin importar la mezcla de operaciones.
func TestMovimientos_LaSumaDeDeltasIgualaElCambioNeto(t *testing.T) {
	store := newFakeStore(producto("p-a", "Arroz", 20))
	uc := ledger.NewUseCase(&fakeTxRunner{store: store})
	ctx := context.Background()

	_, err := uc.ApplyPurchase(ctx, ledger.PurchaseInput{
		Lines: []ledger.PurchaseLineInput{{ProductID: "p-a", Quantity: 15, UnitCost: dec("2")}},
	})
	require.NoError(t, err)

	_, err = uc.ApplySale(ctx, ledger.SaleInput{
		PaymentMethod: "efectivo",
		Lines:         []ledger.SaleLineInput{{ProductID: "p-a", Quantity: 12, UnitPrice: dec("4")}},
	})
	require.NoError(t, err)

	require.NoError(t, uc.AdjustStock(ctx, "p-a", -5, "merma"))

	final := store.products["p-a"].Quantity
	assert.EqualValues(t, 18, final) // 20 +15 -12 -5
	assert.Equal(t, final-20, sumaDeltas(store, "p-a"))
}
