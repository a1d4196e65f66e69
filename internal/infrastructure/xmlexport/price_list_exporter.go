// Package xmlexport serializa la lista de precios vigente como XML para
// intercambio con otros sistemas (cargas a ERP externos, listas a proveedores).
package xmlexport

import (
	"fmt"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/precios-api/internal/application/pricing"
	"github.com/jhoicas/precios-api/internal/domain/entity"
)

var _ pricing.PriceListExporter = (*EtreePriceListExporter)(nil)

// EtreePriceListExporter implementa pricing.PriceListExporter usando etree.
type EtreePriceListExporter struct{}

// NewEtreePriceListExporter construye el exportador.
func NewEtreePriceListExporter() *EtreePriceListExporter { return &EtreePriceListExporter{} }

// ExportPriceList serializa los valores actuales (no los pendientes: lo no
// confirmado no sale de la sesión) de todos los ítems del conjunto de trabajo.
func (e *EtreePriceListExporter) ExportPriceList(company *entity.Company, items []*entity.PriceItem) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("ListaPrecios")
	root.CreateAttr("generada", time.Now().Format(time.RFC3339))

	emp := root.CreateElement("Empresa")
	emp.CreateElement("Nombre").SetText(company.Name)
	emp.CreateElement("NIT").SetText(company.NIT)

	itemsEl := root.CreateElement("Items")
	itemsEl.CreateAttr("total", fmt.Sprintf("%d", len(items)))
	for _, item := range items {
		el := itemsEl.CreateElement("Item")
		el.CreateAttr("id", item.ID)
		el.CreateElement("PartNo").SetText(item.PartNo)
		if item.Description != "" {
			el.CreateElement("Descripcion").SetText(item.Description)
		}
		el.CreateElement("Cantidad").SetText(item.Quantity.String())
		el.CreateElement("Costo").SetText(item.CurrentCost.StringFixed(2))
		el.CreateElement("PrecioA").SetText(item.CurrentPriceA.StringFixed(2))
		el.CreateElement("PrecioB").SetText(item.CurrentPriceB.StringFixed(2))
		el.CreateElement("PrecioM").SetText(item.CurrentPriceM.StringFixed(2))
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xmlexport: serializar lista: %w", err)
	}
	return out, nil
}
