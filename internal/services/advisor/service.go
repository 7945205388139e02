package advisor

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/BearBump/CaseDesk/internal/derive"
	"github.com/BearBump/CaseDesk/internal/integrations/gemini"
	"github.com/BearBump/CaseDesk/internal/models"
	"github.com/BearBump/CaseDesk/internal/sanitize"
	"github.com/BearBump/CaseDesk/internal/storage/airbase"
)

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type CasesRepository interface {
	Get(ctx context.Context, id string) (*models.Case, error)
	Update(ctx context.Context, id string, upd models.CaseUpdate) (*models.Case, error)
}

type MessagesRepository interface {
	ListByCaseID(ctx context.Context, caseID string) ([]*models.Message, error)
}

type OrdersRepository interface {
	GetByPlatformNumber(ctx context.Context, platformOrderNumber string) (*models.Order, error)
}

type Catalog interface {
	StoreByCode(ctx context.Context, storeCode string) (*models.Store, error)
	PlaybookByCategory(ctx context.Context, category string) (*models.Playbook, error)
}

var ErrInvalidInput = errors.New("invalid input")

// Triage — классификация входящего сообщения.
type Triage struct {
	IssueCategory string `json:"issueCategory"`
	Sentiment     string `json:"sentiment"`
	Urgency       string `json:"urgency"`
}

// fallbackTriage: модель ответила не тем форматом — кейс всё равно создаётся.
var fallbackTriage = Triage{IssueCategory: "Other", Sentiment: "Neutral", Urgency: "Medium"}

type SummaryResult struct {
	Summary         string   `json:"summary"`
	KeyPoints       []string `json:"keyPoints,omitempty"`
	SuggestedAction string   `json:"suggestedAction,omitempty"`
	GeneratedAt     string   `json:"generatedAt,omitempty"`
	Cached          bool     `json:"cached"`
}

type Service struct {
	gen     Generator
	cases   CasesRepository
	msgs    MessagesRepository
	orders  OrdersRepository
	catalog Catalog

	policy derive.Policy
	now    func() time.Time
}

func New(gen Generator, cases CasesRepository, msgs MessagesRepository, orders OrdersRepository, catalog Catalog, p derive.Policy) *Service {
	return &Service{
		gen:     gen,
		cases:   cases,
		msgs:    msgs,
		orders:  orders,
		catalog: catalog,
		policy:  p.Normalize(),
		now:     time.Now,
	}
}

// AnalyzeMessage классифицирует сообщение покупателя. Непарсящийся ответ
// модели деградирует до fallback-классификации, ошибка генерации — наружу.
func (s *Service) AnalyzeMessage(ctx context.Context, message string) (Triage, error) {
	message = sanitize.String(message, 10000)
	if message == "" {
		return Triage{}, errors.Wrap(ErrInvalidInput, "message is required")
	}

	raw, err := s.gen.Generate(ctx, triagePrompt(message))
	if err != nil {
		// Классификация — не повод не завести кейс: отдаём нейтральные
		// значения вместе с ошибкой.
		return fallbackTriage, err
	}

	var tr Triage
	if err := json.Unmarshal([]byte(gemini.StripCodeFences(raw)), &tr); err != nil || tr.IssueCategory == "" {
		slog.Warn("triage response unparseable, using fallback")
		return fallbackTriage, nil
	}
	return tr, nil
}

// Summary — сводка кейса. Сохраняется в самой записи кейса; повторные
// чтения не трогают модель, пока не запросят refresh.
func (s *Service) Summary(ctx context.Context, caseID string, refresh bool) (*SummaryResult, error) {
	if !sanitize.IsValidRecordID(caseID) {
		return nil, errors.Wrap(ErrInvalidInput, "case id")
	}

	c, err := s.cases.Get(ctx, caseID)
	if err != nil {
		return nil, err
	}

	if !refresh && c.AISummary != nil {
		var cached SummaryResult
		// Непарсящийся кэш — просто промах, генерируем заново.
		if json.Unmarshal([]byte(*c.AISummary), &cached) == nil && cached.Summary != "" {
			cached.Cached = true
			if c.AISummaryGeneratedAt != nil {
				cached.GeneratedAt = *c.AISummaryGeneratedAt
			}
			return &cached, nil
		}
	}

	msgs, err := s.msgs.ListByCaseID(ctx, caseID)
	if err != nil {
		slog.Warn("list case messages for summary", "case_id", caseID, "error", err.Error())
		msgs = nil
	}

	raw, err := s.gen.Generate(ctx, summaryPrompt(c, msgs))
	if err != nil {
		return nil, err
	}

	var res SummaryResult
	if err := json.Unmarshal([]byte(gemini.StripCodeFences(raw)), &res); err != nil || res.Summary == "" {
		// Модель ответила прозой: отдаём как есть, без key points.
		res = SummaryResult{Summary: gemini.StripCodeFences(raw)}
	}
	res.GeneratedAt = s.now().UTC().Format(time.RFC3339)

	if b, err := json.Marshal(res); err == nil {
		str := string(b)
		if _, err := s.cases.Update(ctx, caseID, models.CaseUpdate{
			AISummary:            &str,
			AISummaryGeneratedAt: &res.GeneratedAt,
		}); err != nil {
			slog.Warn("persist case summary", "case_id", caseID, "error", err.Error())
		}
	}
	return &res, nil
}

// DraftReply — черновик ответа покупателю. Контекст заказа, персона магазина
// и плейбук подтягиваются лучшим усилием: без любого из них письмо всё
// равно пишется.
func (s *Service) DraftReply(ctx context.Context, caseID string) (string, error) {
	if !sanitize.IsValidRecordID(caseID) {
		return "", errors.Wrap(ErrInvalidInput, "case id")
	}

	c, err := s.cases.Get(ctx, caseID)
	if err != nil {
		return "", err
	}

	rc := replyContext{Case: c}

	if msgs, err := s.msgs.ListByCaseID(ctx, caseID); err == nil {
		rc.Messages = msgs
	}

	if c.PlatformOrderNumber != "" {
		order, err := s.orders.GetByPlatformNumber(ctx, c.PlatformOrderNumber)
		switch {
		case err == nil:
			facts := derive.Reconcile(order, nil, s.now(), s.policy)
			rc.Order = order
			rc.Facts = &facts
		case !errors.Is(err, airbase.ErrNotFound):
			slog.Warn("load order for reply", "case_id", caseID, "error", err.Error())
		}
	}

	if c.StoreCode != nil && *c.StoreCode != "" {
		if st, err := s.catalog.StoreByCode(ctx, *c.StoreCode); err == nil {
			rc.Store = st
		}
	}
	if c.IssueCategory != "" {
		if pb, err := s.catalog.PlaybookByCategory(ctx, c.IssueCategory); err == nil {
			rc.Playbook = pb
		}
	}

	draft, err := s.gen.Generate(ctx, replyPrompt(rc))
	if err != nil {
		return "", err
	}

	if _, err := s.cases.Update(ctx, caseID, models.CaseUpdate{AIDraftReply: &draft}); err != nil {
		slog.Warn("persist draft reply", "case_id", caseID, "error", err.Error())
	}
	return draft, nil
}
