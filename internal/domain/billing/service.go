package billing

import (
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/entity"
)

// PriceService calcula los montos de un servicio recurrente (una unidad por mes)
// con el precio e IVA vigentes de entry. Con entry nil los montos quedan en cero.
func PriceService(svc *entity.RecurringService, entry *entity.CatalogEntry) error {
	line, err := RecomputeLine(entity.InvoiceLine{
		CatalogID:       svc.CatalogID,
		Quantity:        1,
		DiscountPercent: svc.DiscountPercent,
	}, entry)
	if err != nil {
		return err
	}
	svc.UnitPrice = line.UnitPrice
	svc.TaxPercent = line.TaxPercent
	svc.DiscountAmount = line.DiscountAmount
	svc.Subtotal = line.Subtotal
	svc.TaxAmount = line.TaxAmount
	svc.Total = line.LineTotal
	return nil
}

// LineFromService línea de factura con los montos guardados en el servicio (cantidad 1).
func LineFromService(svc *entity.RecurringService) entity.InvoiceLine {
	return entity.InvoiceLine{
		CatalogID:       svc.CatalogID,
		Quantity:        1,
		DiscountPercent: svc.DiscountPercent,
		UnitPrice:       svc.UnitPrice,
		TaxPercent:      svc.TaxPercent,
		DiscountAmount:  svc.DiscountAmount,
		Subtotal:        svc.Subtotal,
		TaxAmount:       svc.TaxAmount,
		LineTotal:       svc.Total,
	}
}
