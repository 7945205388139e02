package fake

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/BearBump/CaseDesk/internal/integrations/track17"
	"github.com/BearBump/CaseDesk/internal/models"
)

// FakeClient — детерминированная заглушка провайдера для локальной разработки.
// Статус выводится из хэша номера: часть треков "доставлена".
type FakeClient struct{}

func New() *FakeClient { return &FakeClient{} }

func (f *FakeClient) Register(ctx context.Context, numbers []string) ([]string, []track17.Rejection, error) {
	return numbers, nil, nil
}

func (f *FakeClient) GetTrackInfo(ctx context.Context, trackingNumber string) (*models.TrackingSnapshot, error) {
	now := time.Now().UTC()

	h := fnv.New32a()
	_, _ = h.Write([]byte(trackingNumber))
	v := h.Sum32()

	status := models.TrackingStatusInTransit
	if v%5 == 0 {
		status = models.TrackingStatusDelivered
	}

	ts := now.Add(-time.Duration(v%72) * time.Hour)
	events := []models.TrackingEvent{
		{
			Timestamp:   ts.Format(time.RFC3339),
			At:          &ts,
			Description: fmt.Sprintf("fake carrier update (%s)", status.Text()),
		},
	}

	return &models.TrackingSnapshot{
		TrackingNumber: trackingNumber,
		Carrier:        "Fake Carrier",
		CarrierCode:    -1,
		Status:         status.Text(),
		StatusCode:     status,
		LastEventAt:    &ts,
		Events:         events,
	}, nil
}
