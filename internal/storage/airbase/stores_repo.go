package airbase

import (
	"context"

	"github.com/BearBump/CaseDesk/internal/models"
)

const (
	storesTable    = "Store"
	playbooksTable = "CS Playbook"
)

type StoresRepo struct {
	c *Client
}

func NewStoresRepo(c *Client) *StoresRepo {
	return &StoresRepo{c: c}
}

func (r *StoresRepo) GetByCode(ctx context.Context, storeCode string) (*models.Store, error) {
	recs, err := r.c.Query(ctx, storesTable, QueryOptions{
		Formula:    Eq("Store Code", storeCode),
		MaxRecords: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, ErrNotFound
	}
	return mapStore(&recs[0]), nil
}

func (r *StoresRepo) ListAll(ctx context.Context) ([]*models.Store, error) {
	recs, err := r.c.Query(ctx, storesTable, QueryOptions{})
	if err != nil {
		return nil, err
	}
	out := make([]*models.Store, 0, len(recs))
	for i := range recs {
		out = append(out, mapStore(&recs[i]))
	}
	return out, nil
}

func mapStore(rec *Record) *models.Store {
	return &models.Store{
		ID:                rec.ID,
		StoreCode:         rec.Str("Store Code"),
		StoreName:         rec.Str("Store Name"),
		Platform:          rec.Str("Platform"),
		PersonaName:       rec.StrPtr("Persona Name"),
		PersonaAge:        rec.IntPtr("Persona Age"),
		PersonaLocation:   rec.StrPtr("Persona Location"),
		PersonaBackground: rec.StrPtr("Persona Background"),
		PersonalityTraits: rec.StrPtr("Personality Traits"),
		WritingStyle:      rec.StrPtr("Writing Style"),
		GreetingTemplate:  rec.StrPtr("Greeting Template"),
		SignoffTemplate:   rec.StrPtr("Signoff Template"),
		CSEmail:           rec.StrPtr("CS Email"),
		MaxResponseHours:  rec.IntPtr("Max Response Hours"),
	}
}

type PlaybooksRepo struct {
	c *Client
}

func NewPlaybooksRepo(c *Client) *PlaybooksRepo {
	return &PlaybooksRepo{c: c}
}

// GetByCategory возвращает активный плейбук категории.
func (r *PlaybooksRepo) GetByCategory(ctx context.Context, category string) (*models.Playbook, error) {
	recs, err := r.c.Query(ctx, playbooksTable, QueryOptions{
		Formula: And(
			Eq("Issue Category", category),
			Eq("Playbook Status", "Active"),
		),
		MaxRecords: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, ErrNotFound
	}
	return mapPlaybook(&recs[0]), nil
}

func (r *PlaybooksRepo) ListAll(ctx context.Context) ([]*models.Playbook, error) {
	recs, err := r.c.Query(ctx, playbooksTable, QueryOptions{})
	if err != nil {
		return nil, err
	}
	out := make([]*models.Playbook, 0, len(recs))
	for i := range recs {
		out = append(out, mapPlaybook(&recs[i]))
	}
	return out, nil
}

func mapPlaybook(rec *Record) *models.Playbook {
	return &models.Playbook{
		ID:                      rec.ID,
		ScenarioName:            rec.Str("Scenario Name"),
		IssueCategory:           rec.Str("Issue Category"),
		Description:             rec.StrPtr("Description"),
		DecisionTree:            rec.StrPtr("Decision Tree"),
		ResponseTemplate:        rec.StrPtr("Response Template"),
		WhenToEscalate:          rec.StrPtr("When to Escalate"),
		AutoRefundThreshold:     rec.NumPtr("Auto Refund Threshold"),
		ReturnRequiredThreshold: rec.NumPtr("Return Required Threshold"),
		Status:                  defaultStr(rec.Str("Playbook Status"), "Draft"),
		Notes:                   rec.StrPtr("Notes"),
	}
}
