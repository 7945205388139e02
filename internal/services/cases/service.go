package cases

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/BearBump/CaseDesk/internal/broker/messages"
	"github.com/BearBump/CaseDesk/internal/derive"
	"github.com/BearBump/CaseDesk/internal/models"
	"github.com/BearBump/CaseDesk/internal/sanitize"
	"github.com/BearBump/CaseDesk/internal/storage/airbase"
)

// ErrInvalidInput — вход не прошёл валидацию, наружу уходит 400.
var ErrInvalidInput = errors.New("invalid input")

type CasesRepository interface {
	List(ctx context.Context, status string) ([]*models.Case, error)
	Get(ctx context.Context, id string) (*models.Case, error)
	ListByCustomerEmail(ctx context.Context, email, excludeCaseID string) ([]*models.Case, error)
	Create(ctx context.Context, in models.CaseCreateInput) (*models.Case, error)
	Update(ctx context.Context, id string, upd models.CaseUpdate) (*models.Case, error)
}

type MessagesRepository interface {
	ListByCaseID(ctx context.Context, caseID string) ([]*models.Message, error)
}

type FeedbackRepository interface {
	Create(ctx context.Context, fb *models.Feedback) (*models.Feedback, error)
	List(ctx context.Context, status string) ([]*models.Feedback, error)
}

type OrdersRepository interface {
	GetByPlatformNumber(ctx context.Context, platformOrderNumber string) (*models.Order, error)
	ListByCustomerEmail(ctx context.Context, email string) ([]*models.Order, error)
	SearchByRecipientName(ctx context.Context, firstName, lastName, storeCode string, daysBack int, now time.Time) ([]*models.Order, error)
}

type Publisher interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

// CaseView — кейс списка с вычисленным возрастом.
type CaseView struct {
	*models.Case
	Aging derive.CaseAging `json:"aging"`
}

// OrderView — заказ с производными фактами по трекингу.
type OrderView struct {
	*models.Order
	Tracking derive.TrackingFacts     `json:"tracking"`
	Cancel   derive.CancelEligibility `json:"cancelEligibility"`
}

/// CaseDetail: заказ подтягивается лучшим усилием, его отсутствие не
// мешает работе с кейсом.
type CaseDetail struct {
	*models.Case
	Messages []*models.Message `json:"messages"`
	Order    *models.Order     `json:"order,omitempty"`
	Aging    derive.CaseAging  `json:"aging"`

	Tracking *derive.TrackingFacts     `json:"tracking,omitempty"`
	Cancel   *derive.CancelEligibility `json:"cancelEligibility,omitempty"`
}

type Service struct {
	cases    CasesRepository
	msgs     MessagesRepository
	feedback FeedbackRepository
	orders   OrdersRepository

	producer Publisher
	topic    string

	policy derive.Policy
	now    func() time.Time
}

func New(cases CasesRepository, msgs MessagesRepository, feedback FeedbackRepository, orders OrdersRepository, producer Publisher, topic string, p derive.Policy) *Service {
	return &Service{
		cases:    cases,
		msgs:     msgs,
		feedback: feedback,
		orders:   orders,
		producer: producer,
		topic:    topic,
		policy:   p.Normalize(),
		now:      time.Now,
	}
}

// List: невалидный статус-фильтр не ошибка, фильтр просто опускается.
func (s *Service) List(ctx context.Context, status string) ([]*CaseView, error) {
	items, err := s.cases.List(ctx, sanitize.CaseStatus(status))
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]*CaseView, 0, len(items))
	for _, c := range items {
		out = append(out, &CaseView{
			Case:  c,
			Aging: derive.Aging(c.CreatedAt, c.Status, now, s.policy),
		})
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*CaseDetail, error) {
	if !sanitize.IsValidRecordID(id) {
		return nil, errors.Wrap(ErrInvalidInput, "case id")
	}

	c, err := s.cases.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	msgs, err := s.msgs.ListByCaseID(ctx, id)
	if err != nil {
		slog.Warn("list case messages", "case_id", id, "error", err.Error())
		msgs = nil
	}

	now := s.now()
	detail := &CaseDetail{
		Case:     c,
		Messages: msgs,
		Aging:    derive.Aging(c.CreatedAt, c.Status, now, s.policy),
	}

	if c.PlatformOrderNumber != "" {
		order, err := s.orders.GetByPlatformNumber(ctx, c.PlatformOrderNumber)
		switch {
		case err == nil:
			facts := derive.Reconcile(order, nil, now, s.policy)
			cancel := derive.Cancelability(order)
			detail.Order = order
			detail.Tracking = &facts
			detail.Cancel = &cancel
		case errors.Is(err, airbase.ErrNotFound):
			// Номер заказа в кейсе может не совпадать ни с чем в сторе.
		default:
			slog.Warn("load case order", "case_id", id, "error", err.Error())
		}
	}

	return detail, nil
}

func (s *Service) Create(ctx context.Context, in models.CaseCreateInput) (*models.Case, error) {
	in.PlatformOrderNumber = sanitize.String(in.PlatformOrderNumber, 100)
	in.CustomerName = sanitize.String(in.CustomerName, 200)
	in.CustomerEmail = sanitize.String(in.CustomerEmail, 200)
	in.OriginalMessage = sanitize.String(in.OriginalMessage, 10000)

	if in.PlatformOrderNumber == "" || in.CustomerName == "" || in.OriginalMessage == "" {
		return nil, errors.Wrap(ErrInvalidInput, "required fields missing")
	}
	if !sanitize.IsValidEmail(in.CustomerEmail) {
		return nil, errors.Wrap(ErrInvalidInput, "customer email")
	}
	if in.Status != "" && !sanitize.IsValidCaseStatus(in.Status) {
		return nil, errors.Wrap(ErrInvalidInput, "status")
	}

	created, err := s.cases.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, created, "created")
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, upd models.CaseUpdate) (*models.Case, error) {
	if !sanitize.IsValidRecordID(id) {
		return nil, errors.Wrap(ErrInvalidInput, "case id")
	}
	if upd.Status != nil && !sanitize.IsValidCaseStatus(*upd.Status) {
		return nil, errors.Wrap(ErrInvalidInput, "status")
	}

	// Перевод в Resolved фиксирует момент закрытия.
	if upd.Status != nil && *upd.Status == models.CaseStatusResolved && upd.ResolvedAt == nil {
		ts := s.now().UTC().Format(time.RFC3339)
		upd.ResolvedAt = &ts
	}

	updated, err := s.cases.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, updated, "updated")
	return updated, nil
}

func (s *Service) CustomerHistory(ctx context.Context, email, excludeCaseID string) ([]*CaseView, error) {
	if !sanitize.IsValidEmail(email) {
		return nil, errors.Wrap(ErrInvalidInput, "email")
	}
	if excludeCaseID != "" && !sanitize.IsValidRecordID(excludeCaseID) {
		return nil, errors.Wrap(ErrInvalidInput, "excludeCaseId")
	}

	items, err := s.cases.ListByCustomerEmail(ctx, email, excludeCaseID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]*CaseView, 0, len(items))
	for _, c := range items {
		out = append(out, &CaseView{
			Case:  c,
			Aging: derive.Aging(c.CreatedAt, c.Status, now, s.policy),
		})
	}
	return out, nil
}

func (s *Service) CustomerOrders(ctx context.Context, email string) ([]*OrderView, error) {
	if !sanitize.IsValidEmail(email) {
		return nil, errors.Wrap(ErrInvalidInput, "email")
	}
	orders, err := s.orders.ListByCustomerEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.orderViews(orders), nil
}

func (s *Service) SearchOrdersByName(ctx context.Context, firstName, lastName, storeCode string, daysBack int) ([]*OrderView, error) {
	firstName = sanitize.String(firstName, 100)
	lastName = sanitize.String(lastName, 100)
	if firstName == "" || lastName == "" {
		return nil, errors.Wrap(ErrInvalidInput, "firstName and lastName are required")
	}

	orders, err := s.orders.SearchByRecipientName(ctx, firstName, lastName, sanitize.String(storeCode, 20), daysBack, s.now())
	if err != nil {
		return nil, err
	}
	return s.orderViews(orders), nil
}

func (s *Service) orderViews(orders []*models.Order) []*OrderView {
	now := s.now()
	out := make([]*OrderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, &OrderView{
			Order:    o,
			Tracking: derive.Reconcile(o, nil, now, s.policy),
			Cancel:   derive.Cancelability(o),
		})
	}
	return out
}

func (s *Service) CreateFeedback(ctx context.Context, fb *models.Feedback) (*models.Feedback, error) {
	fb.Title = sanitize.String(fb.Title, 200)
	fb.Type = sanitize.String(fb.Type, 50)
	fb.Description = sanitize.String(fb.Description, 5000)
	fb.SubmittedBy = sanitize.String(fb.SubmittedBy, 100)

	if fb.Title == "" || fb.Type == "" || fb.Description == "" || fb.SubmittedBy == "" {
		return nil, errors.Wrap(ErrInvalidInput, "required fields missing")
	}
	if fb.RelatedCaseID != nil && *fb.RelatedCaseID != "" && !sanitize.IsValidRecordID(*fb.RelatedCaseID) {
		return nil, errors.Wrap(ErrInvalidInput, "relatedCaseId")
	}

	return s.feedback.Create(ctx, fb)
}

// ListFeedback: невалидный статус отбрасывается так же, как в List.
func (s *Service) ListFeedback(ctx context.Context, status string) ([]*models.Feedback, error) {
	if !sanitize.IsValidFeedbackStatus(status) {
		status = ""
	}
	return s.feedback.List(ctx, status)
}

// publish — лучшее усилие: недоступный брокер не ломает мутацию.
func (s *Service) publish(ctx context.Context, c *models.Case, action string) {
	if s.producer == nil || s.topic == "" {
		return
	}
	msg := messages.CaseUpdated{
		CaseID:              c.ID,
		PlatformOrderNumber: c.PlatformOrderNumber,
		Status:              c.Status,
		Action:              action,
		ChangedAt:           s.now().UTC(),
		IssueCategory:       c.IssueCategory,
		Urgency:             c.Urgency,
		StoreCode:           c.StoreCode,
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := s.producer.Publish(ctx, s.topic, []byte(c.ID), b); err != nil {
		slog.Warn("publish case event", "case_id", c.ID, "action", action, "error", err.Error())
	}
}
