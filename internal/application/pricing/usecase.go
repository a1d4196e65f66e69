package pricing

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/precios-api/internal/application/dto"
	"github.com/jhoicas/precios-api/internal/domain"
	"github.com/jhoicas/precios-api/internal/domain/entity"
	domainpricing "github.com/jhoicas/precios-api/internal/domain/pricing"
	"github.com/jhoicas/precios-api/internal/domain/repository"
	"github.com/jhoicas/precios-api/pkg/logger"
)

// PriceManagementUseCase orquesta el motor de ajuste de precios por sesión de
// empresa: carga de snapshot, ediciones, commit contra el almacén y registro
// del historial. El motor es monohilo, así que cada sesión serializa las
// llamadas mutadoras con su propio mutex.
type PriceManagementUseCase struct {
	source      SnapshotSource
	sink        CommitSink
	historyRepo repository.PriceChangeRepository
	companyRepo repository.CompanyRepository
	report      ReportGenerator
	exporter    PriceListExporter
	log         *logger.Logger

	mu       sync.Mutex
	sessions map[string]*companySession
}

type companySession struct {
	mu     sync.Mutex
	engine *Engine
}

// NewPriceManagementUseCase construye el caso de uso.
func NewPriceManagementUseCase(
	source SnapshotSource,
	sink CommitSink,
	historyRepo repository.PriceChangeRepository,
	companyRepo repository.CompanyRepository,
	report ReportGenerator,
	exporter PriceListExporter,
	log *logger.Logger,
) *PriceManagementUseCase {
	return &PriceManagementUseCase{
		source:      source,
		sink:        sink,
		historyRepo: historyRepo,
		companyRepo: companyRepo,
		report:      report,
		exporter:    exporter,
		log:         log,
		sessions:    make(map[string]*companySession),
	}
}

// session devuelve (o crea) la sesión de la empresa con su motor.
func (uc *PriceManagementUseCase) session(companyID string) *companySession {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	s, ok := uc.sessions[companyID]
	if !ok {
		s = &companySession{engine: NewEngine(companyID)}
		uc.sessions[companyID] = s
	}
	return s
}

// ensureLoaded carga el snapshot en el motor si aún no se ha cargado.
// Debe llamarse con el mutex de la sesión tomado.
func (uc *PriceManagementUseCase) ensureLoaded(ctx context.Context, companyID string, s *companySession) error {
	if s.engine.Loaded() {
		return nil
	}
	return uc.reload(ctx, companyID, s)
}

func (uc *PriceManagementUseCase) reload(ctx context.Context, companyID string, s *companySession) error {
	records, err := uc.source.FetchAll(ctx, companyID)
	if err != nil {
		return err
	}
	s.engine.Load(records)
	uc.log.Debug().Str("company_id", companyID).Int("items", len(records)).Msg("snapshot de precios cargado")
	return nil
}

// Refresh recarga el conjunto de trabajo desde el almacén, descartando
// cualquier edición pendiente.
func (uc *PriceManagementUseCase) Refresh(ctx context.Context, companyID string) (*dto.ValuationSummaryResponse, error) {
	s := uc.session(companyID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := uc.reload(ctx, companyID, s); err != nil {
		return nil, err
	}
	out := toSummaryResponse(s.engine.Summary())
	return &out, nil
}

// List devuelve el conjunto de trabajo con filtro y paginación. El filtrado
// (q sobre part_no/descripción) es asunto de la vista, no del motor: se aplica
// aquí, sobre la secuencia que el motor expone.
func (uc *PriceManagementUseCase) List(ctx context.Context, companyID, q string, limit, offset int) (*dto.PriceItemListResponse, error) {
	s := uc.session(companyID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := uc.ensureLoaded(ctx, companyID, s); err != nil {
		return nil, err
	}

	filtered := s.engine.Items()
	if q != "" {
		needle := strings.ToLower(q)
		match := make([]*entity.PriceItem, 0, len(filtered))
		for _, item := range filtered {
			if strings.Contains(strings.ToLower(item.PartNo), needle) ||
				strings.Contains(strings.ToLower(item.Description), needle) {
				match = append(match, item)
			}
		}
		filtered = match
	}

	total := len(filtered)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	page := filtered[offset:end]

	items := make([]dto.PriceItemResponse, 0, len(page))
	for _, item := range page {
		items = append(items, toItemResponse(item))
	}
	return &dto.PriceItemListResponse{
		Items:   items,
		Summary: toSummaryResponse(s.engine.Summary()),
		Page:    dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Summary devuelve el agregado de valorización vigente.
func (uc *PriceManagementUseCase) Summary(ctx context.Context, companyID string) (*dto.ValuationSummaryResponse, error) {
	s := uc.session(companyID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := uc.ensureLoaded(ctx, companyID, s); err != nil {
		return nil, err
	}
	out := toSummaryResponse(s.engine.Summary())
	return &out, nil
}

// SetPrice fija o limpia el valor pendiente de un campo de un ítem.
func (uc *PriceManagementUseCase) SetPrice(ctx context.Context, companyID, itemID string, in dto.SetPriceRequest) (*dto.PriceItemResponse, error) {
	s := uc.session(companyID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := uc.ensureLoaded(ctx, companyID, s); err != nil {
		return nil, err
	}
	if err := s.engine.SetIndividualPrice(itemID, entity.PriceField(in.Field), in.Value); err != nil {
		return nil, err
	}
	for _, item := range s.engine.Items() {
		if item.ID == itemID {
			out := toItemResponse(item)
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Select marca o desmarca ítems: todos (All=true) o los IDs dados.
func (uc *PriceManagementUseCase) Select(ctx context.Context, companyID string, in dto.SelectionRequest) (*dto.ValuationSummaryResponse, error) {
	s := uc.session(companyID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := uc.ensureLoaded(ctx, companyID, s); err != nil {
		return nil, err
	}
	if in.All {
		s.engine.SetSelectionAll(in.Selected, nil)
	} else {
		if len(in.ItemIDs) == 0 {
			return nil, domain.ErrSinSeleccion
		}
		for _, id := range in.ItemIDs {
			if err := s.engine.SetSelection(id, in.Selected); err != nil {
				return nil, err
			}
		}
	}
	out := toSummaryResponse(s.engine.Summary())
	return &out, nil
}

// Bulk aplica un ajuste masivo a los ítems seleccionados.
func (uc *PriceManagementUseCase) Bulk(ctx context.Context, companyID string, in dto.BulkUpdateRequest) (*dto.BulkUpdateResponse, error) {
	s := uc.session(companyID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := uc.ensureLoaded(ctx, companyID, s); err != nil {
		return nil, err
	}
	result, err := s.engine.ApplyBulkUpdate(
		entity.PriceField(in.Field),
		domainpricing.AdjustMode(in.Mode),
		in.Value,
	)
	if err != nil {
		return nil, err
	}
	return &dto.BulkUpdateResponse{
		UpdatedCount: result.UpdatedCount,
		Summary:      toSummaryResponse(result.Summary),
	}, nil
}

// Reset descarta todas las ediciones pendientes y la selección.
// La confirmación previa del usuario es asunto de la UI: aquí se resetea
// incondicionalmente.
func (uc *PriceManagementUseCase) Reset(ctx context.Context, companyID string) (*dto.ValuationSummaryResponse, error) {
	s := uc.session(companyID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := uc.ensureLoaded(ctx, companyID, s); err != nil {
		return nil, err
	}
	s.engine.ResetAll()
	out := toSummaryResponse(s.engine.Summary())
	return &out, nil
}

// Commit confirma los cambios pendientes contra el almacén y registra el
// resultado en el historial persistente. Los fallos por ítem no abortan el
// commit: se reportan en FailedItemIDs y esos ítems quedan listos para
// reintento.
func (uc *PriceManagementUseCase) Commit(ctx context.Context, companyID, actor string, in dto.CommitRequest) (*dto.CommitResponse, error) {
	s := uc.session(companyID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := uc.ensureLoaded(ctx, companyID, s); err != nil {
		return nil, err
	}
	result, err := s.engine.Commit(ctx, in.Reason, actor, uc.sink)
	if err != nil {
		return nil, err
	}
	if len(result.FailedItemIDs) > 0 {
		uc.log.Warn().
			Str("company_id", companyID).
			Int("succeeded", result.SucceededCount).
			Strs("failed_item_ids", result.FailedItemIDs).
			Msg("commit de precios con fallos parciales")
	}
	// El historial persistente es best-effort: el commit ya ocurrió en el
	// almacén, un fallo aquí no lo puede deshacer.
	if result.SucceededCount > 0 && uc.historyRepo != nil {
		record := result.Record
		if err := uc.historyRepo.Create(&record); err != nil {
			uc.log.Error().Err(err).Str("company_id", companyID).Msg("guardar registro de ajuste")
		}
	}
	return &dto.CommitResponse{
		SucceededCount: result.SucceededCount,
		FailedItemIDs:  result.FailedItemIDs,
		Record:         toChangeResponse(result.Record),
	}, nil
}

// History devuelve los registros de ajustes confirmados en la sesión.
func (uc *PriceManagementUseCase) History(ctx context.Context, companyID string) (*dto.PriceChangeListResponse, error) {
	s := uc.session(companyID)
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]dto.PriceChangeResponse, 0, len(s.engine.History()))
	for _, r := range s.engine.History() {
		items = append(items, toChangeResponse(r))
	}
	return &dto.PriceChangeListResponse{Items: items}, nil
}

// Report genera el PDF del estado de la sesión (resumen + historial).
func (uc *PriceManagementUseCase) Report(ctx context.Context, companyID string) ([]byte, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	s := uc.session(companyID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := uc.ensureLoaded(ctx, companyID, s); err != nil {
		return nil, err
	}
	return uc.report.GenerateAdjustmentReport(ctx, company, s.engine.Summary(), s.engine.History())
}

// ExportPriceList serializa la lista de precios vigente (XML) para
// intercambio con otros sistemas.
func (uc *PriceManagementUseCase) ExportPriceList(ctx context.Context, companyID string) ([]byte, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	s := uc.session(companyID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := uc.ensureLoaded(ctx, companyID, s); err != nil {
		return nil, err
	}
	return uc.exporter.ExportPriceList(company, s.engine.Items())
}

// ── conversiones a DTO ────────────────────────────────────────────────────────

func toItemResponse(item *entity.PriceItem) dto.PriceItemResponse {
	return dto.PriceItemResponse{
		ID:            item.ID,
		PartNo:        item.PartNo,
		Description:   item.Description,
		Category:      item.Category,
		Brand:         item.Brand,
		Quantity:      item.Quantity,
		CurrentCost:   item.CurrentCost,
		CurrentPriceA: item.CurrentPriceA,
		CurrentPriceB: item.CurrentPriceB,
		CurrentPriceM: item.CurrentPriceM,
		PendingCost:   copyDec(item.PendingCost),
		PendingPriceA: copyDec(item.PendingPriceA),
		PendingPriceB: copyDec(item.PendingPriceB),
		PendingPriceM: copyDec(item.PendingPriceM),
		Selected:      item.Selected,
		Status:        string(item.Status()),
	}
}

func toSummaryResponse(s entity.ValuationSummary) dto.ValuationSummaryResponse {
	return dto.ValuationSummaryResponse{
		TotalItems:        s.TotalItems,
		SelectedCount:     s.SelectedCount,
		ModifiedCount:     s.ModifiedCount,
		CurrentTotalValue: s.CurrentTotalValue,
		PendingTotalValue: s.PendingTotalValue,
		ValueDelta:        s.ValueDelta,
	}
}

func toChangeResponse(r entity.PriceChangeRecord) dto.PriceChangeResponse {
	return dto.PriceChangeResponse{
		ID:           r.ID,
		ItemsUpdated: r.ItemsUpdated,
		ValueDelta:   r.ValueDelta,
		Reason:       r.Reason,
		Actor:        r.Actor,
		CreatedAt:    r.CreatedAt,
	}
}

func copyDec(v *decimal.Decimal) *decimal.Decimal {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
