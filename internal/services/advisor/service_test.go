package advisor

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/BearBump/CaseDesk/internal/derive"
	"github.com/BearBump/CaseDesk/internal/integrations/gemini"
	"github.com/BearBump/CaseDesk/internal/models"
	"github.com/BearBump/CaseDesk/internal/storage/airbase"
)

type fakeGen struct {
	prompts []string
	out     string
	err     error
}

func (f *fakeGen) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.out, f.err
}

type fakeCases struct {
	getOut   *models.Case
	getErr   error
	updateIn models.CaseUpdate
	updates  int
}

func (f *fakeCases) Get(ctx context.Context, id string) (*models.Case, error) {
	return f.getOut, f.getErr
}
func (f *fakeCases) Update(ctx context.Context, id string, upd models.CaseUpdate) (*models.Case, error) {
	f.updates++
	f.updateIn = upd
	return f.getOut, nil
}

type fakeMsgs struct {
	out []*models.Message
}

func (f *fakeMsgs) ListByCaseID(ctx context.Context, caseID string) ([]*models.Message, error) {
	return f.out, nil
}

type fakeOrders struct {
	out *models.Order
	err error
}

func (f *fakeOrders) GetByPlatformNumber(ctx context.Context, n string) (*models.Order, error) {
	return f.out, f.err
}

type fakeCatalog struct {
	store *models.Store
	pb    *models.Playbook
}

func (f *fakeCatalog) StoreByCode(ctx context.Context, code string) (*models.Store, error) {
	if f.store == nil {
		return nil, airbase.ErrNotFound
	}
	return f.store, nil
}
func (f *fakeCatalog) PlaybookByCategory(ctx context.Context, category string) (*models.Playbook, error) {
	if f.pb == nil {
		return nil, airbase.ErrNotFound
	}
	return f.pb, nil
}

const caseID = "recAAAAAAAAAAAAA1"

func newService(gen *fakeGen, cs *fakeCases, or *fakeOrders, cat *fakeCatalog) *Service {
	s := New(gen, cs, &fakeMsgs{}, or, cat, derive.DefaultPolicy())
	s.now = func() time.Time { return time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestAnalyzeMessage_ParsesJSON(t *testing.T) {
	gen := &fakeGen{out: "```json\n{\"issueCategory\":\"Shipping Delay\",\"sentiment\":\"Frustrated\",\"urgency\":\"High\"}\n```"}
	s := newService(gen, &fakeCases{}, &fakeOrders{}, &fakeCatalog{})

	tr, err := s.AnalyzeMessage(context.Background(), "where is my package???")
	require.NoError(t, err)
	require.Equal(t, "Shipping Delay", tr.IssueCategory)
	require.Equal(t, "High", tr.Urgency)
}

func TestAnalyzeMessage_FallbackOnGarbage(t *testing.T) {
	gen := &fakeGen{out: "Sorry, I cannot classify that."}
	s := newService(gen, &fakeCases{}, &fakeOrders{}, &fakeCatalog{})

	tr, err := s.AnalyzeMessage(context.Background(), "hello")
	require.NoError(t, err)
	require.Equal(t, fallbackTriage, tr)
}

func TestAnalyzeMessage_EmptyMessage(t *testing.T) {
	s := newService(&fakeGen{}, &fakeCases{}, &fakeOrders{}, &fakeCatalog{})
	_, err := s.AnalyzeMessage(context.Background(), "   ")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAnalyzeMessage_GenerationError(t *testing.T) {
	gen := &fakeGen{err: gemini.ErrGeneration}
	s := newService(gen, &fakeCases{}, &fakeOrders{}, &fakeCatalog{})
	tr, err := s.AnalyzeMessage(context.Background(), "hello")
	require.ErrorIs(t, err, gemini.ErrGeneration)
	require.Equal(t, fallbackTriage, tr)
}

func TestSummary_CacheHit(t *testing.T) {
	cached := `{"summary":"Customer waiting on refund.","keyPoints":["refund pending"]}`
	at := "2026-08-27T10:00:00Z"
	cs := &fakeCases{getOut: &models.Case{ID: caseID, AISummary: &cached, AISummaryGeneratedAt: &at}}
	gen := &fakeGen{}
	s := newService(gen, cs, &fakeOrders{}, &fakeCatalog{})

	res, err := s.Summary(context.Background(), caseID, false)
	require.NoError(t, err)
	require.True(t, res.Cached)
	require.Equal(t, "Customer waiting on refund.", res.Summary)
	require.Equal(t, at, res.GeneratedAt)
	require.Empty(t, gen.prompts)
}

func TestSummary_UnparseableCacheIsMiss(t *testing.T) {
	broken := `{"summary": unterminated`
	cs := &fakeCases{getOut: &models.Case{ID: caseID, AISummary: &broken, OriginalMessage: "hi"}}
	gen := &fakeGen{out: `{"summary":"Fresh take.","keyPoints":[],"suggestedAction":"reply"}`}
	s := newService(gen, cs, &fakeOrders{}, &fakeCatalog{})

	res, err := s.Summary(context.Background(), caseID, false)
	require.NoError(t, err)
	require.False(t, res.Cached)
	require.Equal(t, "Fresh take.", res.Summary)
	require.Len(t, gen.prompts, 1)
}

func TestSummary_RefreshBypassesCache(t *testing.T) {
	cached := `{"summary":"Old."}`
	cs := &fakeCases{getOut: &models.Case{ID: caseID, AISummary: &cached}}
	gen := &fakeGen{out: `{"summary":"New."}`}
	s := newService(gen, cs, &fakeOrders{}, &fakeCatalog{})

	res, err := s.Summary(context.Background(), caseID, true)
	require.NoError(t, err)
	require.Equal(t, "New.", res.Summary)
	require.Equal(t, "2026-08-28T12:00:00Z", res.GeneratedAt)

	// Свежая сводка сохраняется обратно в запись кейса.
	require.Equal(t, 1, cs.updates)
	require.NotNil(t, cs.updateIn.AISummary)
	var persisted SummaryResult
	require.NoError(t, json.Unmarshal([]byte(*cs.updateIn.AISummary), &persisted))
	require.Equal(t, "New.", persisted.Summary)
}

func TestSummary_ProseResponseKeptAsIs(t *testing.T) {
	cs := &fakeCases{getOut: &models.Case{ID: caseID}}
	gen := &fakeGen{out: "The customer is unhappy about shipping."}
	s := newService(gen, cs, &fakeOrders{}, &fakeCatalog{})

	res, err := s.Summary(context.Background(), caseID, false)
	require.NoError(t, err)
	require.Equal(t, "The customer is unhappy about shipping.", res.Summary)
	require.Empty(t, res.KeyPoints)
}

func TestSummary_InvalidID(t *testing.T) {
	s := newService(&fakeGen{}, &fakeCases{}, &fakeOrders{}, &fakeCatalog{})
	_, err := s.Summary(context.Background(), "nope", false)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestDraftReply_UsesCanonicalNumberOnly(t *testing.T) {
	wm := "WM123"
	carrier := "1Z999INTERNAL"
	store := "US01"
	cs := &fakeCases{getOut: &models.Case{
		ID:                  caseID,
		PlatformOrderNumber: "ORD-1",
		IssueCategory:       "Shipping Delay",
		CustomerName:        "Ann",
		OriginalMessage:     "where is it",
		StoreCode:           &store,
	}}
	or := &fakeOrders{out: &models.Order{
		OrderID:                   "ORD-1",
		ItemName:                  "Lamp",
		Quantity:                  1,
		MarketplaceTrackingNumber: &wm,
		CarrierTrackingNumber:     &carrier,
	}}
	name := "Sarah"
	cat := &fakeCatalog{
		store: &models.Store{StoreCode: "US01", PersonaName: &name},
		pb:    &models.Playbook{ScenarioName: "Late delivery", IssueCategory: "Shipping Delay"},
	}
	gen := &fakeGen{out: "Hi Ann, your package WM123 is on the way."}
	s := newService(gen, cs, or, cat)

	draft, err := s.DraftReply(context.Background(), caseID)
	require.NoError(t, err)
	require.Contains(t, draft, "WM123")

	require.Len(t, gen.prompts, 1)
	prompt := gen.prompts[0]
	require.Contains(t, prompt, "WM123")
	require.NotContains(t, prompt, "1Z999INTERNAL")
	require.Contains(t, prompt, "Sarah")
	require.Contains(t, prompt, "Late delivery")

	// Черновик сохраняется в кейс.
	require.Equal(t, 1, cs.updates)
	require.NotNil(t, cs.updateIn.AIDraftReply)
}

func TestDraftReply_WorksWithoutOrderAndStore(t *testing.T) {
	cs := &fakeCases{getOut: &models.Case{ID: caseID, PlatformOrderNumber: "ORD-X", CustomerName: "Ann", OriginalMessage: "help"}}
	or := &fakeOrders{err: airbase.ErrNotFound}
	gen := &fakeGen{out: "Hi Ann, happy to help."}
	s := newService(gen, cs, or, &fakeCatalog{})

	draft, err := s.DraftReply(context.Background(), caseID)
	require.NoError(t, err)
	require.NotEmpty(t, draft)
	require.True(t, strings.Contains(gen.prompts[0], "help"))
}

func TestDraftReply_CaseNotFound(t *testing.T) {
	cs := &fakeCases{getErr: airbase.ErrNotFound}
	s := newService(&fakeGen{}, cs, &fakeOrders{}, &fakeCatalog{})
	_, err := s.DraftReply(context.Background(), caseID)
	require.ErrorIs(t, err, airbase.ErrNotFound)
}
