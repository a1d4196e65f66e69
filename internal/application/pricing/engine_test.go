package pricing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/precios-api/internal/application/pricing"
	"github.com/jhoicas/precios-api/internal/domain"
	"github.com/jhoicas/precios-api/internal/domain/entity"
	domainpricing "github.com/jhoicas/precios-api/internal/domain/pricing"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testCompanyID = "00000000-0000-0000-0000-000000000002"

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// snapshotTres el catálogo de referencia de los tests: tres referencias con
// costo 50/100/150 y existencias 10/5/2. Valor total = 500+500+300 = 1300.
func snapshotTres() []pricing.SnapshotRecord {
	return []pricing.SnapshotRecord{
		{ID: "item-1", PartNo: "FLT-001", Description: "Filtro de aceite", Quantity: dec("10"), Cost: dec("50"), PriceA: dec("65"), PriceB: dec("70"), PriceM: dec("80")},
		{ID: "item-2", PartNo: "BUJ-002", Description: "Bujía iridium", Quantity: dec("5"), Cost: dec("100"), PriceA: dec("130"), PriceB: dec("140"), PriceM: dec("160")},
		{ID: "item-3", PartNo: "COR-003", Description: "Correa de distribución", Quantity: dec("2"), Cost: dec("150"), PriceA: dec("195"), PriceB: dec("210"), PriceM: dec("240")},
	}
}

func newLoadedEngine() *pricing.Engine {
	e := pricing.NewEngine(testCompanyID)
	e.Load(snapshotTres())
	return e
}

// fakeSink almacén en memoria. failIDs simula fallos de persistencia por ítem.
type fakeSink struct {
	persisted map[string]pricing.PriceUpdatePayload
	calls     []string
	failIDs   map[string]bool
}

func newFakeSink(failIDs ...string) *fakeSink {
	fail := make(map[string]bool, len(failIDs))
	for _, id := range failIDs {
		fail[id] = true
	}
	return &fakeSink{persisted: make(map[string]pricing.PriceUpdatePayload), failIDs: fail}
}

func (f *fakeSink) Persist(_ context.Context, itemID string, payload pricing.PriceUpdatePayload) error {
	f.calls = append(f.calls, itemID)
	if f.failIDs[itemID] {
		return errors.New("fallo simulado del almacén")
	}
	f.persisted[itemID] = payload
	return nil
}

func itemByID(t *testing.T, e *pricing.Engine, id string) *entity.PriceItem {
	t.Helper()
	for _, item := range e.Items() {
		if item.ID == id {
			return item
		}
	}
	t.Fatalf("ítem %s no está en el conjunto de trabajo", id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Load
// ──────────────────────────────────────────────────────────────────────────────

func TestLoad_ConjuntoLimpio(t *testing.T) {
	e := newLoadedEngine()

	s := e.Summary()
	assert.Equal(t, 3, s.TotalItems)
	assert.Equal(t, 0, s.SelectedCount, "tras cargar nada debe estar seleccionado")
	assert.Equal(t, 0, s.ModifiedCount, "tras cargar nada debe estar modificado")
	assert.True(t, dec("1300").Equal(s.CurrentTotalValue), "10×50 + 5×100 + 2×150 = 1300, dio %s", s.CurrentTotalValue)
	assert.True(t, dec("1300").Equal(s.PendingTotalValue), "sin pendientes, pending = current")
	assert.True(t, s.ValueDelta.IsZero())

	for _, item := range e.Items() {
		assert.Equal(t, entity.StatusUnchanged, item.Status())
		assert.False(t, item.Selected)
	}
}

// Recargar el mismo snapshot descarta ediciones y selección: el estado queda
// idéntico al de la primera carga.
func TestLoad_RecargaDescartaEdiciones(t *testing.T) {
	e := newLoadedEngine()
	require.NoError(t, e.SetIndividualPrice("item-1", entity.FieldCost, decPtr("99")))
	require.NoError(t, e.SetSelection("item-2", true))

	e.Load(snapshotTres())

	s := e.Summary()
	assert.Equal(t, 0, s.ModifiedCount, "la recarga debe descartar pendientes")
	assert.Equal(t, 0, s.SelectedCount, "la recarga debe descartar la selección")
	assert.True(t, dec("1300").Equal(s.CurrentTotalValue))
	assert.True(t, s.ValueDelta.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición individual
// ──────────────────────────────────────────────────────────────────────────────

func TestSetIndividualPrice_SoloElCampoEditado(t *testing.T) {
	e := newLoadedEngine()

	require.NoError(t, e.SetIndividualPrice("item-1", entity.FieldPriceA, decPtr("72.50")))

	item := itemByID(t, e, "item-1")
	assert.Equal(t, entity.StatusModified, item.Status())
	require.NotNil(t, item.PendingPriceA)
	assert.True(t, dec("72.50").Equal(*item.PendingPriceA))
	assert.Nil(t, item.PendingCost, "los demás campos no deben tocarse")
	assert.Nil(t, item.PendingPriceB)
	assert.Nil(t, item.PendingPriceM)
	assert.True(t, dec("65").Equal(item.CurrentPriceA), "el valor actual no cambia hasta el commit")
}

func TestSetIndividualPrice_NilLimpiaElPendiente(t *testing.T) {
	e := newLoadedEngine()
	require.NoError(t, e.SetIndividualPrice("item-1", entity.FieldCost, decPtr("60")))
	require.Equal(t, 1, e.Summary().ModifiedCount)

	require.NoError(t, e.SetIndividualPrice("item-1", entity.FieldCost, nil))

	item := itemByID(t, e, "item-1")
	assert.Equal(t, entity.StatusUnchanged, item.Status())
	assert.Equal(t, 0, e.Summary().ModifiedCount)
	assert.True(t, e.Summary().ValueDelta.IsZero())
}

// Un precio negativo se rechaza y el estado queda exactamente como estaba.
func TestSetIndividualPrice_NegativoRechazadoSinMutar(t *testing.T) {
	e := newLoadedEngine()
	before := e.Summary()

	err := e.SetIndividualPrice("item-2", entity.FieldCost, decPtr("-1"))

	require.ErrorIs(t, err, domain.ErrPrecioNegativo)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "los errores de validación envuelven ErrInvalidInput")
	assert.Equal(t, before, e.Summary(), "un rechazo no debe mutar el agregado")
	assert.Equal(t, entity.StatusUnchanged, itemByID(t, e, "item-2").Status())
}

func TestSetIndividualPrice_ItemInexistente(t *testing.T) {
	e := newLoadedEngine()
	err := e.SetIndividualPrice("no-existe", entity.FieldCost, decPtr("10"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetIndividualPrice_CampoAllInvalido(t *testing.T) {
	// FieldAll es exclusivo del ajuste masivo.
	e := newLoadedEngine()
	err := e.SetIndividualPrice("item-1", entity.FieldAll, decPtr("10"))
	assert.ErrorIs(t, err, domain.ErrCampoInvalido)
}

func TestSetIndividualPrice_CeroEsValido(t *testing.T) {
	e := newLoadedEngine()
	require.NoError(t, e.SetIndividualPrice("item-1", entity.FieldCost, decPtr("0")))
	assert.Equal(t, entity.StatusModified, itemByID(t, e, "item-1").Status())
}

// ──────────────────────────────────────────────────────────────────────────────
// Selección
// ──────────────────────────────────────────────────────────────────────────────

func TestSetSelection_NoImplicaModificacion(t *testing.T) {
	e := newLoadedEngine()
	require.NoError(t, e.SetSelection("item-1", true))

	s := e.Summary()
	assert.Equal(t, 1, s.SelectedCount)
	assert.Equal(t, 0, s.ModifiedCount, "seleccionar no modifica")
}

func TestSetSelectionAll_ConPredicado(t *testing.T) {
	e := newLoadedEngine()
	e.SetSelectionAll(true, func(p *entity.PriceItem) bool {
		return p.Quantity.GreaterThanOrEqual(dec("5"))
	})
	assert.Equal(t, 2, e.Summary().SelectedCount, "solo item-1 y item-2 tienen qty >= 5")

	e.SetSelectionAll(false, nil)
	assert.Equal(t, 0, e.Summary().SelectedCount)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajuste masivo
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyBulkUpdate_PorcentajeSobreSeleccionados(t *testing.T) {
	e := newLoadedEngine()
	require.NoError(t, e.SetSelection("item-1", true))
	require.NoError(t, e.SetSelection("item-2", true))

	result, err := e.ApplyBulkUpdate(entity.FieldCost, domainpricing.ModePercentage, dec("10"))
	require.NoError(t, err)

	assert.Equal(t, 2, result.UpdatedCount)
	i1 := itemByID(t, e, "item-1")
	i2 := itemByID(t, e, "item-2")
	i3 := itemByID(t, e, "item-3")
	require.NotNil(t, i1.PendingCost)
	require.NotNil(t, i2.PendingCost)
	assert.True(t, dec("55").Equal(*i1.PendingCost), "50 +10%% = 55, dio %s", i1.PendingCost)
	assert.True(t, dec("110").Equal(*i2.PendingCost), "100 +10%% = 110, dio %s", i2.PendingCost)
	assert.Nil(t, i3.PendingCost, "los no seleccionados no se tocan")
}

// La base del cálculo es siempre el valor actual del snapshot: aplicar el mismo
// ajuste dos veces no lo compone.
func TestApplyBulkUpdate_NoSeCompone(t *testing.T) {
	e := newLoadedEngine()
	require.NoError(t, e.SetSelection("item-2", true))

	_, err := e.ApplyBulkUpdate(entity.FieldCost, domainpricing.ModePercentage, dec("10"))
	require.NoError(t, err)
	_, err = e.ApplyBulkUpdate(entity.FieldCost, domainpricing.ModePercentage, dec("10"))
	require.NoError(t, err)

	item := itemByID(t, e, "item-2")
	require.NotNil(t, item.PendingCost)
	assert.True(t, dec("110").Equal(*item.PendingCost),
		"dos ajustes de +10%% deben dar 110 (base fija), no 121, dio %s", item.PendingCost)
}

func TestApplyBulkUpdate_FijoSeTruncaEnCero(t *testing.T) {
	e := pricing.NewEngine(testCompanyID)
	e.Load([]pricing.SnapshotRecord{
		{ID: "barato", PartNo: "X-1", Quantity: dec("1"), Cost: dec("5")},
	})
	require.NoError(t, e.SetSelection("barato", true))

	_, err := e.ApplyBulkUpdate(entity.FieldCost, domainpricing.ModeFixed, dec("-10"))
	require.NoError(t, err)

	item := itemByID(t, e, "barato")
	require.NotNil(t, item.PendingCost)
	assert.True(t, item.PendingCost.IsZero(), "5 - 10 debe truncarse a 0, dio %s", item.PendingCost)
}

// FieldAll ajusta los cuatro campos, cada uno desde su propio valor actual.
func TestApplyBulkUpdate_TodosLosCampos(t *testing.T) {
	e := newLoadedEngine()
	require.NoError(t, e.SetSelection("item-1", true))

	_, err := e.ApplyBulkUpdate(entity.FieldAll, domainpricing.ModePercentage, dec("100"))
	require.NoError(t, err)

	item := itemByID(t, e, "item-1")
	require.NotNil(t, item.PendingCost)
	require.NotNil(t, item.PendingPriceA)
	require.NotNil(t, item.PendingPriceB)
	require.NotNil(t, item.PendingPriceM)
	assert.True(t, dec("100").Equal(*item.PendingCost), "costo 50 ×2 = 100")
	assert.True(t, dec("130").Equal(*item.PendingPriceA), "precio A 65 ×2 = 130")
	assert.True(t, dec("140").Equal(*item.PendingPriceB), "precio B 70 ×2 = 140")
	assert.True(t, dec("160").Equal(*item.PendingPriceM), "precio M 80 ×2 = 160")
}

func TestApplyBulkUpdate_SinSeleccion(t *testing.T) {
	e := newLoadedEngine()
	before := e.Summary()

	_, err := e.ApplyBulkUpdate(entity.FieldCost, domainpricing.ModePercentage, dec("10"))

	require.ErrorIs(t, err, domain.ErrSinSeleccion)
	assert.Equal(t, before, e.Summary(), "el rechazo no debe mutar nada")
}

func TestApplyBulkUpdate_ValorCero(t *testing.T) {
	e := newLoadedEngine()
	require.NoError(t, e.SetSelection("item-1", true))
	_, err := e.ApplyBulkUpdate(entity.FieldCost, domainpricing.ModeFixed, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrValorCero)
}

func TestApplyBulkUpdate_CampoOModoInvalido(t *testing.T) {
	e := newLoadedEngine()
	require.NoError(t, e.SetSelection("item-1", true))

	_, err := e.ApplyBulkUpdate(entity.PriceField("descuento"), domainpricing.ModePercentage, dec("10"))
	assert.ErrorIs(t, err, domain.ErrCampoInvalido)

	_, err = e.ApplyBulkUpdate(entity.FieldCost, domainpricing.AdjustMode("doble"), dec("10"))
	assert.ErrorIs(t, err, domain.ErrCampoInvalido)
}

// ──────────────────────────────────────────────────────────────────────────────
// ValuationSummary — el agregado debe coincidir con un recálculo desde cero
// tras cualquier secuencia de operaciones.
// ──────────────────────────────────────────────────────────────────────────────

func recomputeFromScratch(items []*entity.PriceItem) (current, pending decimal.Decimal) {
	for _, item := range items {
		current = current.Add(item.Quantity.Mul(item.CurrentCost))
		pending = pending.Add(item.Quantity.Mul(item.EffectiveCost()))
	}
	return current, pending
}

func TestSummary_ConsistenteTrasSecuenciaDeOperaciones(t *testing.T) {
	e := newLoadedEngine()

	require.NoError(t, e.SetIndividualPrice("item-1", entity.FieldCost, decPtr("55")))
	require.NoError(t, e.SetSelection("item-2", true))
	require.NoError(t, e.SetSelection("item-3", true))
	_, err := e.ApplyBulkUpdate(entity.FieldCost, domainpricing.ModeFixed, dec("-20"))
	require.NoError(t, err)
	require.NoError(t, e.SetIndividualPrice("item-1", entity.FieldCost, nil))

	s := e.Summary()
	current, pending := recomputeFromScratch(e.Items())
	assert.True(t, current.Equal(s.CurrentTotalValue), "CurrentTotalValue inconsistente: %s vs %s", s.CurrentTotalValue, current)
	assert.True(t, pending.Equal(s.PendingTotalValue), "PendingTotalValue inconsistente: %s vs %s", s.PendingTotalValue, pending)
	assert.True(t, pending.Sub(current).Equal(s.ValueDelta), "ValueDelta debe ser pending - current")
}

func TestSummary_DeltaRefejaPendientes(t *testing.T) {
	e := newLoadedEngine()
	// item-1: costo 50 → 60, qty 10 → delta +100
	require.NoError(t, e.SetIndividualPrice("item-1", entity.FieldCost, decPtr("60")))

	s := e.Summary()
	assert.True(t, dec("1300").Equal(s.CurrentTotalValue))
	assert.True(t, dec("1400").Equal(s.PendingTotalValue))
	assert.True(t, dec("100").Equal(s.ValueDelta))

	// Los precios de venta no entran en la valorización (solo el costo).
	require.NoError(t, e.SetIndividualPrice("item-2", entity.FieldPriceA, decPtr("999")))
	s = e.Summary()
	assert.True(t, dec("100").Equal(s.ValueDelta), "editar precio A no debe mover la valorización")
	assert.Equal(t, 2, s.ModifiedCount)
}

// ──────────────────────────────────────────────────────────────────────────────
// ResetAll
// ──────────────────────────────────────────────────────────────────────────────

func TestResetAll_RestauraElSnapshot(t *testing.T) {
	e := newLoadedEngine()
	require.NoError(t, e.SetIndividualPrice("item-1", entity.FieldCost, decPtr("75")))
	e.SetSelectionAll(true, nil)

	e.ResetAll()

	s := e.Summary()
	assert.Equal(t, 0, s.ModifiedCount)
	assert.Equal(t, 0, s.SelectedCount)
	assert.True(t, dec("1300").Equal(s.CurrentTotalValue))
	assert.True(t, s.ValueDelta.IsZero())
	for _, item := range e.Items() {
		assert.Equal(t, entity.StatusUnchanged, item.Status())
		assert.False(t, item.Selected)
	}
}

func TestResetAll_Idempotente(t *testing.T) {
	e := newLoadedEngine()
	e.ResetAll()
	before := e.Summary()
	e.ResetAll()
	assert.Equal(t, before, e.Summary())
}

// ──────────────────────────────────────────────────────────────────────────────
// Commit
// ──────────────────────────────────────────────────────────────────────────────

func TestCommit_ExitoTotal(t *testing.T) {
	e := newLoadedEngine()
	require.NoError(t, e.SetIndividualPrice("item-1", entity.FieldCost, decPtr("60")))
	sink := newFakeSink()

	result, err := e.Commit(context.Background(), "ajuste por inflación", "user-1", sink)
	require.NoError(t, err)

	assert.Equal(t, 1, result.SucceededCount)
	assert.Empty(t, result.FailedItemIDs)

	item := itemByID(t, e, "item-1")
	assert.True(t, dec("60").Equal(item.CurrentCost), "el pendiente consolidado pasa a ser el actual")
	assert.Equal(t, entity.StatusUnchanged, item.Status(), "tras consolidar no queda pendiente")

	// El payload solo lleva el campo editado.
	payload := sink.persisted["item-1"]
	require.NotNil(t, payload.Cost)
	assert.True(t, dec("60").Equal(*payload.Cost))
	assert.Nil(t, payload.PriceA)
	assert.Nil(t, payload.PriceB)
	assert.Nil(t, payload.PriceM)

	// El registro del historial refleja el commit.
	require.Len(t, e.History(), 1)
	rec := e.History()[0]
	assert.Equal(t, 1, rec.ItemsUpdated)
	assert.Equal(t, "ajuste por inflación", rec.Reason)
	assert.Equal(t, "user-1", rec.Actor)
	assert.True(t, dec("100").Equal(rec.ValueDelta), "qty 10 × (60-50) = 100")
}

// Un fallo de persistencia por ítem no aborta el commit: el ítem fallido
// conserva su pendiente para reintento y los demás se consolidan.
func TestCommit_FalloParcial(t *testing.T) {
	e := newLoadedEngine()
	require.NoError(t, e.SetIndividualPrice("item-1", entity.FieldCost, decPtr("60")))
	require.NoError(t, e.SetIndividualPrice("item-2", entity.FieldCost, decPtr("110")))
	sink := newFakeSink("item-2")

	result, err := e.Commit(context.Background(), "ajuste trimestral", "user-1", sink)
	require.NoError(t, err, "los fallos por ítem nunca son error de la llamada")

	assert.Equal(t, 1, result.SucceededCount)
	assert.Equal(t, []string{"item-2"}, result.FailedItemIDs)
	assert.Equal(t, []string{"item-1", "item-2"}, sink.calls, "se intenta cada ítem en orden, el fallo no corta")

	i1 := itemByID(t, e, "item-1")
	assert.True(t, dec("60").Equal(i1.CurrentCost))
	assert.Equal(t, entity.StatusUnchanged, i1.Status())

	i2 := itemByID(t, e, "item-2")
	assert.True(t, dec("100").Equal(i2.CurrentCost), "el fallido conserva su valor actual")
	assert.Equal(t, entity.StatusModified, i2.Status(), "el fallido queda pendiente para reintento")
	require.NotNil(t, i2.PendingCost)
	assert.True(t, dec("110").Equal(*i2.PendingCost))

	// Reintento: solo el fallido se vuelve a enviar.
	sink2 := newFakeSink()
	retry, err := e.Commit(context.Background(), "reintento", "user-1", sink2)
	require.NoError(t, err)
	assert.Equal(t, 1, retry.SucceededCount)
	assert.Equal(t, []string{"item-2"}, sink2.calls)
	assert.True(t, dec("110").Equal(itemByID(t, e, "item-2").CurrentCost))
}

func TestCommit_SinMotivo(t *testing.T) {
	e := newLoadedEngine()
	require.NoError(t, e.SetIndividualPrice("item-1", entity.FieldCost, decPtr("60")))

	_, err := e.Commit(context.Background(), "   ", "user-1", newFakeSink())
	assert.ErrorIs(t, err, domain.ErrMotivoRequerido)
	assert.Equal(t, entity.StatusModified, itemByID(t, e, "item-1").Status(), "el rechazo no toca los pendientes")
}

func TestCommit_SinCambiosPendientes(t *testing.T) {
	e := newLoadedEngine()
	sink := newFakeSink()

	_, err := e.Commit(context.Background(), "nada que hacer", "user-1", sink)
	assert.ErrorIs(t, err, domain.ErrSinCambios)
	assert.Empty(t, sink.calls, "sin pendientes no se llama al almacén")
}

// Los valores se redondean a 2 decimales en el payload y lo consolidado es el
// valor redondeado: memoria y almacén quedan iguales.
func TestCommit_RedondeaADosDecimales(t *testing.T) {
	e := pricing.NewEngine(testCompanyID)
	e.Load([]pricing.SnapshotRecord{
		{ID: "item-x", PartNo: "X-1", Quantity: dec("3"), Cost: dec("33.33")},
	})
	// 33.33 + 7.5% = 35.82975 → se persiste 35.83
	require.NoError(t, e.SetSelection("item-x", true))
	_, err := e.ApplyBulkUpdate(entity.FieldCost, domainpricing.ModePercentage, dec("7.5"))
	require.NoError(t, err)

	sink := newFakeSink()
	_, err = e.Commit(context.Background(), "redondeo", "user-1", sink)
	require.NoError(t, err)

	payload := sink.persisted["item-x"]
	require.NotNil(t, payload.Cost)
	assert.True(t, dec("35.83").Equal(*payload.Cost), "el payload va redondeado, dio %s", payload.Cost)
	assert.True(t, dec("35.83").Equal(itemByID(t, e, "item-x").CurrentCost), "lo consolidado es el valor redondeado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario de extremo a extremo: carga, selección, ajuste masivo y commit.
// ──────────────────────────────────────────────────────────────────────────────

func TestEscenarioCompleto_AjusteMasivoYCommit(t *testing.T) {
	e := newLoadedEngine()

	// Seleccionar item-1 e item-2 y subir el costo 20%.
	require.NoError(t, e.SetSelection("item-1", true))
	require.NoError(t, e.SetSelection("item-2", true))
	result, err := e.ApplyBulkUpdate(entity.FieldCost, domainpricing.ModePercentage, dec("20"))
	require.NoError(t, err)
	assert.Equal(t, 2, result.UpdatedCount)

	// Pendientes: 50→60 y 100→120. item-3 intacto.
	require.NotNil(t, itemByID(t, e, "item-1").PendingCost)
	require.NotNil(t, itemByID(t, e, "item-2").PendingCost)
	assert.True(t, dec("60").Equal(*itemByID(t, e, "item-1").PendingCost))
	assert.True(t, dec("120").Equal(*itemByID(t, e, "item-2").PendingCost))
	assert.Nil(t, itemByID(t, e, "item-3").PendingCost)

	// Antes del commit: current 1300, pending 10×60 + 5×120 + 2×150 = 1500.
	s := e.Summary()
	assert.True(t, dec("1300").Equal(s.CurrentTotalValue))
	assert.True(t, dec("1500").Equal(s.PendingTotalValue))
	assert.True(t, dec("200").Equal(s.ValueDelta))

	commit, err := e.Commit(context.Background(), "actualización de proveedor", "user-1", newFakeSink())
	require.NoError(t, err)
	assert.Equal(t, 2, commit.SucceededCount)
	assert.Empty(t, commit.FailedItemIDs)

	// Después del commit el valor consolidado es exactamente 1500 y no queda delta.
	s = e.Summary()
	assert.True(t, dec("1500").Equal(s.CurrentTotalValue),
		"10×60 + 5×120 + 2×150 = 1500, dio %s", s.CurrentTotalValue)
	assert.True(t, s.ValueDelta.IsZero())
	assert.Equal(t, 0, s.ModifiedCount)
	assert.True(t, dec("200").Equal(commit.Record.ValueDelta))
}
