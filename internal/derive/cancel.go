package derive

import "github.com/BearBump/CaseDesk/internal/models"

type CancelEligibility string

const (
	CanCancel     CancelEligibility = "CanCancel"
	CheckSupplier CancelEligibility = "CheckSupplier"
	CannotCancel  CancelEligibility = "CannotCancel"
)

// Cancelability — машина состояний по (supplierOrderNumber, shipmentDropped,
// carrierTrackingNumber). Отгрузка перевозчику и наличие трек-номера каждое
// по отдельности означает, что отменять поздно; заказ у поставщика без
// отгрузки — промежуточное состояние, нужна проверка руками.
func Cancelability(order *models.Order) CancelEligibility {
	if order == nil {
		return CanCancel
	}
	if order.ShipmentDropped || hasValue(order.CarrierTrackingNumber) {
		return CannotCancel
	}
	if hasValue(order.SupplierOrderNumber) {
		return CheckSupplier
	}
	return CanCancel
}
