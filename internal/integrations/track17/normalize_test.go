package track17

import (
	"testing"
	"time"

	"github.com/BearBump/CaseDesk/internal/models"
	"github.com/stretchr/testify/require"
)

func intp(i int) *int       { return &i }
func strp(s string) *string { return &s }

func legacyOnlyEntry() *acceptedEntry {
	return &acceptedEntry{
		Number:  "LP123456789CN",
		Carrier: 3011,
		Track: &legacyTrack{
			B: 3011,
			E: intp(40),
			Z0: []legacyEvent{
				{A: "2026-07-01 10:00:00", Z: "Shipment accepted", C: strp("Shenzhen")},
			},
			Z1: []legacyEvent{
				{A: "2026-07-10 08:30:00", Z: "Delivered", C: strp("Austin TX")},
			},
		},
	}
}

func richEntry() *acceptedEntry {
	return &acceptedEntry{
		Number:  "1Z999AA10123456784",
		Carrier: 100002,
		TrackInfo: &trackInfo{
			LatestStatus: &latestStatus{Status: "InTransit", SubStatus: "InTransit_PickedUp"},
			Tracking: &trackingInfo{
				Providers: []providerBlock{{
					Provider: providerIdent{Key: 100002, Name: "UPS"},
					Events: []providerEvent{
						{TimeUTC: "2026-07-05T14:00:00Z", Description: "Departed facility", Location: strp("Louisville KY")},
						{TimeUTC: "2026-07-04T09:00:00Z", Description: "Origin scan"},
					},
				}},
			},
		},
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	a := normalize(richEntry())
	b := normalize(richEntry())
	require.Equal(t, a, b)
}

func TestNormalize_LegacyBucketsWithNumericCode(t *testing.T) {
	snap := normalize(legacyOnlyEntry())

	require.Equal(t, models.TrackingStatusDelivered, snap.StatusCode)
	require.Equal(t, "Delivered", snap.Status)
	require.Len(t, snap.Events, 2)
	// Свежайшее событие первым.
	require.Equal(t, "Delivered", snap.Events[0].Description)
	require.Equal(t, "Shipment accepted", snap.Events[1].Description)
	require.Equal(t, 3011, snap.CarrierCode)
	require.NotNil(t, snap.LastEventAt)
}

func TestNormalize_SourcePrecedence(t *testing.T) {
	// Rich-события и legacy-корзины в одном payload: берётся только rich,
	// корзины игнорируются целиком.
	e := richEntry()
	e.Track = legacyOnlyEntry().Track

	snap := normalize(e)
	require.Len(t, snap.Events, 2)
	for _, ev := range snap.Events {
		require.NotEqual(t, "Shipment accepted", ev.Description)
	}
}

func TestNormalize_LatestEventBeatsLegacy(t *testing.T) {
	e := &acceptedEntry{
		Number: "X1",
		Track: &legacyTrack{
			Z0: []legacyEvent{{A: "2026-07-01 10:00:00", Z: "old event"}},
		},
		TrackInfo: &trackInfo{
			LatestEvent: &latestEvent{TimeUTC: "2026-07-20T12:00:00Z", Description: "Out for delivery"},
		},
	}

	snap := normalize(e)
	require.Len(t, snap.Events, 1)
	require.Equal(t, "Out for delivery", snap.Events[0].Description)
}

func TestNormalize_EmptyProvidersFallThrough(t *testing.T) {
	// tracking.providers есть, но событий нет — источник считается пустым.
	e := &acceptedEntry{
		Number: "X2",
		TrackInfo: &trackInfo{
			Tracking:    &trackingInfo{Providers: []providerBlock{{}}},
			LatestEvent: &latestEvent{TimeUTC: "2026-07-20T12:00:00Z", Description: "Arrived at hub"},
		},
	}
	snap := normalize(e)
	require.Len(t, snap.Events, 1)
	require.Equal(t, "Arrived at hub", snap.Events[0].Description)
}

func TestNormalize_DedupesRepeatedEvents(t *testing.T) {
	e := richEntry()
	e.TrackInfo.Tracking.Providers[0].Events = append(e.TrackInfo.Tracking.Providers[0].Events,
		providerEvent{TimeUTC: "2026-07-05T14:00:00Z", Description: "Departed facility"})

	snap := normalize(e)
	require.Len(t, snap.Events, 2)

	seen := map[string]int{}
	for _, ev := range snap.Events {
		seen[ev.Timestamp+"|"+ev.Description]++
	}
	for k, n := range seen {
		require.Equal(t, 1, n, k)
	}
}

func TestSortEvents_UnparseableLast(t *testing.T) {
	events := []models.TrackingEvent{
		{Timestamp: "garbage-1", Description: "bad one"},
		{Timestamp: "2026-07-04T09:00:00Z", Description: "older"},
		{Timestamp: "garbage-2", Description: "bad two"},
		{Timestamp: "2026-07-05T14:00:00Z", Description: "newer"},
	}
	sortEvents(events)

	require.Equal(t, "newer", events[0].Description)
	require.Equal(t, "older", events[1].Description)
	// Непарсящиеся в хвосте, относительный порядок сохранён.
	require.Equal(t, "bad one", events[2].Description)
	require.Equal(t, "bad two", events[3].Description)
}

func TestSortEvents_Descending(t *testing.T) {
	events := []models.TrackingEvent{
		{Timestamp: "2026-07-01 10:00:00"},
		{Timestamp: "2026-07-10 08:30:00"},
		{Timestamp: "2026-07-05 12:00:00"},
	}
	sortEvents(events)
	for i := 0; i+1 < len(events); i++ {
		require.NotNil(t, events[i].At)
		require.False(t, events[i].At.Before(*events[i+1].At))
	}
}

func TestNormalize_NoStatusAnywhere(t *testing.T) {
	snap := normalize(&acceptedEntry{Number: "X3", Carrier: 21051})
	require.Equal(t, models.TrackingStatusNotFound, snap.StatusCode)
	require.Equal(t, "Not Found", snap.Status)
	require.Empty(t, snap.Events)
	require.Nil(t, snap.LastEventAt)
	require.Nil(t, snap.EstimatedDelivery)
}

func TestNormalize_TextStatusBeatsLegacyCode(t *testing.T) {
	e := legacyOnlyEntry()
	e.TrackInfo = &trackInfo{LatestStatus: &latestStatus{Status: "Exception"}}

	snap := normalize(e)
	require.Equal(t, "Exception", snap.Status)
	require.Equal(t, models.TrackingStatusAlert, snap.StatusCode)
}

func TestNormalize_SyncTimeFallbackForLastEvent(t *testing.T) {
	e := &acceptedEntry{
		Number: "X4",
		TrackInfo: &trackInfo{
			Tracking: &trackingInfo{
				Providers: []providerBlock{{LatestSyncTime: strp("2026-07-21T06:00:00Z")}},
			},
		},
	}
	snap := normalize(e)
	require.NotNil(t, snap.LastEventAt)
	require.Equal(t, time.Date(2026, 7, 21, 6, 0, 0, 0, time.UTC), snap.LastEventAt.UTC())
}

func TestNormalize_EstimatedDeliveryFallbacks(t *testing.T) {
	e := &acceptedEntry{
		Number: "X5",
		TrackInfo: &trackInfo{
			TimeMetrics: &timeMetrics{
				DaysOfTransit:         intp(6),
				EstimatedDeliveryDate: &deliveryRange{To: strp("2026-07-25")},
			},
		},
	}
	snap := normalize(e)
	require.Equal(t, "2026-07-25", *snap.EstimatedDelivery)
	require.Equal(t, 6, *snap.DaysInTransit)
}

func TestStatusFromText(t *testing.T) {
	require.Equal(t, models.TrackingStatusDelivered, statusFromText("Delivered"))
	require.Equal(t, models.TrackingStatusInTransit, statusFromText("InTransit"))
	require.Equal(t, models.TrackingStatusPickup, statusFromText("AvailableForPickup"))
	require.Equal(t, models.TrackingStatusExpired, statusFromText("Expired"))
	require.Equal(t, models.TrackingStatusUndelivered, statusFromText("Undelivered"))
	require.Equal(t, models.TrackingStatusAlert, statusFromText("DeliveryException"))
	require.Equal(t, models.TrackingStatusNotFound, statusFromText("NotFound"))
	require.Equal(t, models.TrackingStatusNotFound, statusFromText(""))
}
