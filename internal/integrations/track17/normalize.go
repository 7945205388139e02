package track17

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/BearBump/CaseDesk/internal/models"
)

// Исторические формы ответа 17Track. В payload может присутствовать legacy-блок
// track (события в трёх корзинах z0/z1/z2) и/или новый track_info.
type acceptedEntry struct {
	Number    string       `json:"number"`
	Carrier   int          `json:"carrier"`
	Track     *legacyTrack `json:"track,omitempty"`
	TrackInfo *trackInfo   `json:"track_info,omitempty"`
}

type legacyEvent struct {
	A string  `json:"a"` // timestamp
	C *string `json:"c"` // location
	Z string  `json:"z"` // description
}

type legacyTrack struct {
	B  int           `json:"b"` // carrier code
	E  *int          `json:"e"` // status
	W1 *string       `json:"w1,omitempty"`
	W2 *string       `json:"w2,omitempty"`
	D  *string       `json:"d,omitempty"`
	Z0 []legacyEvent `json:"z0,omitempty"`
	Z1 []legacyEvent `json:"z1,omitempty"`
	Z2 []legacyEvent `json:"z2,omitempty"`
}

type trackInfo struct {
	LatestStatus *latestStatus `json:"latest_status,omitempty"`
	LatestEvent  *latestEvent  `json:"latest_event,omitempty"`
	TimeMetrics  *timeMetrics  `json:"time_metrics,omitempty"`
	ShippingInfo *shippingInfo `json:"shipping_info,omitempty"`
	Tracking     *trackingInfo `json:"tracking,omitempty"`
}

type latestStatus struct {
	Status         string  `json:"status"`
	SubStatus      string  `json:"sub_status"`
	SubStatusDescr *string `json:"sub_status_descr,omitempty"`
}

type latestEvent struct {
	TimeISO     string  `json:"time_iso"`
	TimeUTC     string  `json:"time_utc"`
	Description string  `json:"description"`
	Location    *string `json:"location,omitempty"`
}

type timeMetrics struct {
	DaysOfTransit         *int           `json:"days_of_transit,omitempty"`
	EstimatedDeliveryDate *deliveryRange `json:"estimated_delivery_date,omitempty"`
}

type deliveryRange struct {
	From *string `json:"from,omitempty"`
	To   *string `json:"to,omitempty"`
}

type shippingInfo struct {
	ShipperAddress   *addressInfo `json:"shipper_address,omitempty"`
	RecipientAddress *addressInfo `json:"recipient_address,omitempty"`
}

type trackingInfo struct {
	Providers []providerBlock `json:"providers"`
}

type addressInfo struct {
	Country string `json:"country"`
}

type providerBlock struct {
	Provider       providerIdent   `json:"provider"`
	LatestSyncTime *string         `json:"latest_sync_time,omitempty"`
	Events         []providerEvent `json:"events"`
}

type providerIdent struct {
	Key   int    `json:"key"`
	Name  string `json:"name"`
	Alias string `json:"alias"`
}

type providerEvent struct {
	TimeISO     string  `json:"time_iso,omitempty"`
	TimeUTC     string  `json:"time_utc,omitempty"`
	TimeRaw     string  `json:"time_raw,omitempty"`
	Description string  `json:"description"`
	Location    *string `json:"location,omitempty"`
}

// Источники событий в порядке предпочтения. Берётся первый непустой,
// источники не смешиваются: в кривых данных формы могут сосуществовать,
// слияние дало бы задвоенную историю.
type eventSource int

const (
	sourceNone eventSource = iota
	sourceProviders
	sourceLatestEvent
	sourceLegacy
)

func detectEventSource(e *acceptedEntry) eventSource {
	if e.TrackInfo != nil && e.TrackInfo.Tracking != nil {
		for _, p := range e.TrackInfo.Tracking.Providers {
			if len(p.Events) > 0 {
				return sourceProviders
			}
		}
	}
	if e.TrackInfo != nil && e.TrackInfo.LatestEvent != nil {
		return sourceLatestEvent
	}
	if e.Track != nil && len(e.Track.Z0)+len(e.Track.Z1)+len(e.Track.Z2) > 0 {
		return sourceLegacy
	}
	return sourceNone
}

func collectEvents(e *acceptedEntry) []models.TrackingEvent {
	switch detectEventSource(e) {
	case sourceProviders:
		var out []models.TrackingEvent
		for _, p := range e.TrackInfo.Tracking.Providers {
			for _, ev := range p.Events {
				ts := ev.TimeUTC
				if ts == "" {
					ts = ev.TimeISO
				}
				if ts == "" {
					ts = ev.TimeRaw
				}
				out = append(out, models.TrackingEvent{
					Timestamp:   ts,
					Description: ev.Description,
					Location:    ev.Location,
				})
			}
		}
		return out
	case sourceLatestEvent:
		le := e.TrackInfo.LatestEvent
		ts := le.TimeUTC
		if ts == "" {
			ts = le.TimeISO
		}
		return []models.TrackingEvent{{
			Timestamp:   ts,
			Description: le.Description,
			Location:    le.Location,
		}}
	case sourceLegacy:
		var out []models.TrackingEvent
		for _, bucket := range [][]legacyEvent{e.Track.Z0, e.Track.Z1, e.Track.Z2} {
			for _, ev := range bucket {
				out = append(out, models.TrackingEvent{
					Timestamp:   ev.A,
					Description: ev.Z,
					Location:    ev.C,
				})
			}
		}
		return out
	default:
		return nil
	}
}

var eventTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

func parseEventTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range eventTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			u := t.UTC()
			return &u
		}
	}
	return nil
}

// dedupeEvents убирает повторы по паре (timestamp, description): один и тот же
// ивент может прийти дважды из-за ретраев провайдера.
func dedupeEvents(events []models.TrackingEvent) []models.TrackingEvent {
	seen := make(map[string]struct{}, len(events))
	out := events[:0]
	for _, ev := range events {
		k := ev.Timestamp + "\x00" + ev.Description
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, ev)
	}
	return out
}

// sortEvents: по убыванию времени, стабильно. Непарсящиеся таймстемпы
// уходят в хвост и между собой порядок не меняют.
func sortEvents(events []models.TrackingEvent) {
	for i := range events {
		events[i].At = parseEventTime(events[i].Timestamp)
	}
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i].At, events[j].At
		switch {
		case a != nil && b != nil:
			return a.After(*b)
		case a != nil:
			return true
		default:
			return false
		}
	})
}

func statusFromText(status string) models.TrackingStatus {
	s := strings.ToLower(status)
	switch {
	case strings.Contains(s, "delivered") && !strings.Contains(s, "undelivered"):
		return models.TrackingStatusDelivered
	case strings.Contains(s, "transit") || strings.Contains(s, "shipping"):
		return models.TrackingStatusInTransit
	case strings.Contains(s, "pickup"):
		return models.TrackingStatusPickup
	case strings.Contains(s, "expired"):
		return models.TrackingStatusExpired
	case strings.Contains(s, "undelivered") || strings.Contains(s, "failed"):
		return models.TrackingStatusUndelivered
	case strings.Contains(s, "alert") || strings.Contains(s, "exception"):
		return models.TrackingStatusAlert
	default:
		return models.TrackingStatusNotFound
	}
}

// normalize собирает канонический снапшот из любой из исторических форм.
// Отсутствующие поля не ошибка, всё опциональное остаётся nil.
func normalize(e *acceptedEntry) models.TrackingSnapshot {
	events := dedupeEvents(collectEvents(e))
	sortEvents(events)

	snap := models.TrackingSnapshot{
		TrackingNumber: e.Number,
		Events:         events,
	}

	// Статус: явный текстовый > легаси числовой код > NotFound.
	switch {
	case e.TrackInfo != nil && e.TrackInfo.LatestStatus != nil && e.TrackInfo.LatestStatus.Status != "":
		snap.Status = e.TrackInfo.LatestStatus.Status
		snap.StatusCode = statusFromText(snap.Status)
	case e.Track != nil && e.Track.E != nil:
		snap.StatusCode = models.TrackingStatus(*e.Track.E)
		snap.Status = snap.StatusCode.Text()
	default:
		snap.StatusCode = models.TrackingStatusNotFound
		snap.Status = snap.StatusCode.Text()
	}

	// Перевозчик из нового формата, иначе из легаси-кода.
	snap.CarrierCode = e.Carrier
	if e.Track != nil && e.Track.B != 0 {
		snap.CarrierCode = e.Track.B
	}
	if e.TrackInfo != nil && e.TrackInfo.Tracking != nil && len(e.TrackInfo.Tracking.Providers) > 0 {
		p := e.TrackInfo.Tracking.Providers[0].Provider
		if p.Name != "" {
			snap.Carrier = p.Name
		} else if p.Alias != "" {
			snap.Carrier = p.Alias
		}
	}
	if snap.Carrier == "" {
		snap.Carrier = fmt.Sprintf("Carrier %d", snap.CarrierCode)
	}

	if e.Track != nil && e.Track.D != nil && *e.Track.D != "" {
		snap.EstimatedDelivery = e.Track.D
	} else if e.TrackInfo != nil && e.TrackInfo.TimeMetrics != nil && e.TrackInfo.TimeMetrics.EstimatedDeliveryDate != nil {
		edd := e.TrackInfo.TimeMetrics.EstimatedDeliveryDate
		if edd.From != nil && *edd.From != "" {
			snap.EstimatedDelivery = edd.From
		} else if edd.To != nil && *edd.To != "" {
			snap.EstimatedDelivery = edd.To
		}
	}

	if e.TrackInfo != nil && e.TrackInfo.TimeMetrics != nil {
		snap.DaysInTransit = e.TrackInfo.TimeMetrics.DaysOfTransit
	}

	if e.Track != nil && e.Track.W1 != nil {
		snap.Origin = e.Track.W1
	} else if e.TrackInfo != nil && e.TrackInfo.ShippingInfo != nil && e.TrackInfo.ShippingInfo.ShipperAddress != nil && e.TrackInfo.ShippingInfo.ShipperAddress.Country != "" {
		c := e.TrackInfo.ShippingInfo.ShipperAddress.Country
		snap.Origin = &c
	}
	if e.Track != nil && e.Track.W2 != nil {
		snap.Destination = e.Track.W2
	} else if e.TrackInfo != nil && e.TrackInfo.ShippingInfo != nil && e.TrackInfo.ShippingInfo.RecipientAddress != nil && e.TrackInfo.ShippingInfo.RecipientAddress.Country != "" {
		c := e.TrackInfo.ShippingInfo.RecipientAddress.Country
		snap.Destination = &c
	}

	// lastEventAt: время свежайшего события, иначе время синка провайдера.
	if len(events) > 0 && events[0].At != nil {
		snap.LastEventAt = events[0].At
	} else if e.TrackInfo != nil && e.TrackInfo.Tracking != nil && len(e.TrackInfo.Tracking.Providers) > 0 {
		if st := e.TrackInfo.Tracking.Providers[0].LatestSyncTime; st != nil {
			snap.LastEventAt = parseEventTime(*st)
		}
	}

	return snap
}
