package derive

import (
	"time"

	"github.com/BearBump/CaseDesk/internal/models"
)

// TrackingFacts — сведение данных заказа и (опционально) живого снапшота
// в то, что потребляют UI и генератор текста. Чистая функция, пересчитывается
// на каждый запрос.
type TrackingFacts struct {
	HasMarketplaceTracking bool `json:"hasMarketplaceTracking"`
	HasCarrierTracking     bool `json:"hasCarrierTracking"`

	// Номера различаются строково. Нормализации нет намеренно: любое отличие
	// попадает в выдачу, даже косметическое.
	TrackingMismatch bool `json:"trackingMismatch"`

	// Трек есть у перевозчика, но ещё не выгружен на маркетплейс:
	// покупатель не видит отслеживание.
	UploadGap bool `json:"uploadGap"`

	// Единственный номер, который можно показывать покупателю.
	CanonicalCustomerTrackingNumber *string `json:"canonicalCustomerTrackingNumber,omitempty"`

	Stale bool `json:"stale"`

	// Для отображения: живой снапшот важнее сохранённых полей,
	// сохранённые поля остаются запасным вариантом.
	StatusText   *string    `json:"statusText,omitempty"`
	DetailStatus *string    `json:"detailStatus,omitempty"`
	LastUpdateAt *time.Time `json:"lastUpdateAt,omitempty"`
	Live         bool       `json:"live"`
}

func hasValue(s *string) bool {
	return s != nil && *s != ""
}

// Reconcile вычисляет TrackingFacts. snapshot может быть nil (живой запрос
// не выполнялся). Отсутствующие поля не ошибка: всё деградирует до nil/false.
func Reconcile(order *models.Order, snapshot *models.TrackingSnapshot, now time.Time, p Policy) TrackingFacts {
	p = p.Normalize()

	var facts TrackingFacts
	if order == nil {
		return facts
	}

	facts.HasMarketplaceTracking = hasValue(order.MarketplaceTrackingNumber)
	facts.HasCarrierTracking = hasValue(order.CarrierTrackingNumber)
	facts.TrackingMismatch = facts.HasMarketplaceTracking && facts.HasCarrierTracking &&
		*order.MarketplaceTrackingNumber != *order.CarrierTrackingNumber
	facts.UploadGap = facts.HasCarrierTracking && !facts.HasMarketplaceTracking

	switch {
	case facts.HasMarketplaceTracking:
		facts.CanonicalCustomerTrackingNumber = order.MarketplaceTrackingNumber
	case facts.HasCarrierTracking:
		facts.CanonicalCustomerTrackingNumber = order.CarrierTrackingNumber
	}

	if snapshot != nil {
		facts.Live = true
		if snapshot.Status != "" {
			s := snapshot.Status
			facts.StatusText = &s
		}
		facts.LastUpdateAt = snapshot.LastEventAt
	} else {
		facts.StatusText = order.TrackingStatus
		facts.DetailStatus = order.TrackingDetailStatus
		if hasValue(order.TrackingLastUpdate) {
			if t, err := time.Parse(time.RFC3339, *order.TrackingLastUpdate); err == nil {
				u := t.UTC()
				facts.LastUpdateAt = &u
			}
		}
	}

	// Отсутствие данных об обновлении само по себе не застой.
	if facts.LastUpdateAt != nil {
		facts.Stale = now.Sub(*facts.LastUpdateAt) > p.StaleAfter
	}

	return facts
}
