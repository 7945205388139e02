package models

import "time"

// Нормализованные статусы 17Track (числовые коды провайдера).
type TrackingStatus int

const (
	TrackingStatusNotFound    TrackingStatus = 0
	TrackingStatusInTransit   TrackingStatus = 10
	TrackingStatusExpired     TrackingStatus = 20
	TrackingStatusPickup      TrackingStatus = 30
	TrackingStatusUndelivered TrackingStatus = 35
	TrackingStatusDelivered   TrackingStatus = 40
	TrackingStatusAlert       TrackingStatus = 50
)

func (s TrackingStatus) Text() string {
	switch s {
	case TrackingStatusNotFound:
		return "Not Found"
	case TrackingStatusInTransit:
		return "In Transit"
	case TrackingStatusExpired:
		return "Expired"
	case TrackingStatusPickup:
		return "Ready for Pickup"
	case TrackingStatusUndelivered:
		return "Undelivered"
	case TrackingStatusDelivered:
		return "Delivered"
	case TrackingStatusAlert:
		return "Alert"
	default:
		return "Unknown"
	}
}

// TrackingSnapshot — результат одного живого запроса к провайдеру.
// Живёт в рамках запроса, никогда не сохраняется.
type TrackingSnapshot struct {
	TrackingNumber    string          `json:"trackingNumber"`
	Carrier           string          `json:"carrier"`
	CarrierCode       int             `json:"carrierCode"`
	Status            string          `json:"status"`
	StatusCode        TrackingStatus  `json:"statusCode"`
	EstimatedDelivery *string         `json:"estimatedDelivery,omitempty"`
	LastEventAt       *time.Time      `json:"lastEventAt,omitempty"`
	Origin            *string         `json:"origin,omitempty"`
	Destination       *string         `json:"destination,omitempty"`
	Events            []TrackingEvent `json:"events"`
	DaysInTransit     *int            `json:"daysInTransit,omitempty"`
}

// TrackingEvent: Timestamp хранится строкой провайдера (она же ключ дедупликации),
// At — распарсенное время для сортировки (nil, если строка не парсится).
type TrackingEvent struct {
	Timestamp   string     `json:"timestamp"`
	At          *time.Time `json:"-"`
	Description string     `json:"description"`
	Location    *string    `json:"location,omitempty"`
}
