package dashapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"

	"github.com/BearBump/CaseDesk/internal/models"
	"github.com/BearBump/CaseDesk/internal/services/advisor"
	"github.com/BearBump/CaseDesk/internal/services/cases"
)

type CasesService interface {
	List(ctx context.Context, status string) ([]*cases.CaseView, error)
	Get(ctx context.Context, id string) (*cases.CaseDetail, error)
	Create(ctx context.Context, in models.CaseCreateInput) (*models.Case, error)
	Update(ctx context.Context, id string, upd models.CaseUpdate) (*models.Case, error)
	CustomerHistory(ctx context.Context, email, excludeCaseID string) ([]*cases.CaseView, error)
	CustomerOrders(ctx context.Context, email string) ([]*cases.OrderView, error)
	SearchOrdersByName(ctx context.Context, firstName, lastName, storeCode string, daysBack int) ([]*cases.OrderView, error)
	CreateFeedback(ctx context.Context, fb *models.Feedback) (*models.Feedback, error)
	ListFeedback(ctx context.Context, status string) ([]*models.Feedback, error)
}

type ShipmentsService interface {
	Snapshot(ctx context.Context, trackingNumber string) (*models.TrackingSnapshot, error)
}

type AdvisorService interface {
	AnalyzeMessage(ctx context.Context, message string) (advisor.Triage, error)
	Summary(ctx context.Context, caseID string, refresh bool) (*advisor.SummaryResult, error)
	DraftReply(ctx context.Context, caseID string) (string, error)
}

type Handler struct {
	cases     CasesService
	shipments ShipmentsService
	advisor   AdvisorService
}

func New(cs CasesService, sh ShipmentsService, adv AdvisorService) *Handler {
	return &Handler{cases: cs, shipments: sh, advisor: adv}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/cases", func(r chi.Router) {
			r.Get("/", h.listCases)
			r.Post("/", h.createCase)
			r.Get("/{id}", h.getCase)
			r.Patch("/{id}", h.updateCase)
			r.Get("/{id}/ai-summary", h.caseSummary)
			r.Post("/{id}/generate-reply", h.generateReply)
		})

		r.Get("/tracking/{trackingNumber}", h.trackingSnapshot)
		r.Get("/customer-orders", h.customerOrders)
		r.Get("/customer-history", h.customerHistory)
		r.Get("/orders/search-by-name", h.searchOrdersByName)

		r.Route("/feedback", func(r chi.Router) {
			r.Post("/", h.createFeedback)
			r.Get("/", h.listFeedback)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondOK(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}

func (h *Handler) listCases(w http.ResponseWriter, r *http.Request) {
	items, err := h.cases.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, items)
}

func (h *Handler) getCase(w http.ResponseWriter, r *http.Request) {
	detail, err := h.cases.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, detail)
}

func (h *Handler) createCase(w http.ResponseWriter, r *http.Request) {
	var in models.CaseCreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondErr(w, r, errors.Wrap(cases.ErrInvalidInput, "bad json"))
		return
	}

	// Нет классификации — спрашиваем модель. Лучшее усилие: при сбое
	// генерации кейс заводится с нейтральными значениями.
	if in.IssueCategory == "" && h.advisor != nil && in.OriginalMessage != "" {
		tr, err := h.advisor.AnalyzeMessage(r.Context(), in.OriginalMessage)
		if err != nil {
			slog.Warn("triage on create", "error", err.Error())
		}
		if tr.IssueCategory != "" {
			in.IssueCategory = tr.IssueCategory
			in.Sentiment = tr.Sentiment
			in.Urgency = tr.Urgency
		}
	}

	created, err := h.cases.Create(r.Context(), in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondOK(w, http.StatusCreated, created)
}

func (h *Handler) updateCase(w http.ResponseWriter, r *http.Request) {
	var upd models.CaseUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respondErr(w, r, errors.Wrap(cases.ErrInvalidInput, "bad json"))
		return
	}
	id := chi.URLParam(r, "id")
	updated, err := h.cases.Update(r.Context(), id, upd)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	// Ответ в той же форме, что GET: с заказом и производными фактами.
	if detail, err := h.cases.Get(r.Context(), id); err == nil {
		respondOK(w, http.StatusOK, detail)
		return
	}
	respondOK(w, http.StatusOK, updated)
}

func (h *Handler) caseSummary(w http.ResponseWriter, r *http.Request) {
	refresh := r.URL.Query().Get("refresh") == "true"
	res, err := h.advisor.Summary(r.Context(), chi.URLParam(r, "id"), refresh)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, res)
}

func (h *Handler) generateReply(w http.ResponseWriter, r *http.Request) {
	draft, err := h.advisor.DraftReply(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, map[string]string{"reply": draft})
}

func (h *Handler) trackingSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.shipments.Snapshot(r.Context(), chi.URLParam(r, "trackingNumber"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, snap)
}

func (h *Handler) customerOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.cases.CustomerOrders(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, orders)
}

func (h *Handler) customerHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	history, err := h.cases.CustomerHistory(r.Context(), q.Get("email"), q.Get("excludeCaseId"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, history)
}

func (h *Handler) searchOrdersByName(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	daysBack, _ := strconv.Atoi(q.Get("daysBack"))
	orders, err := h.cases.SearchOrdersByName(r.Context(), q.Get("firstName"), q.Get("lastName"), q.Get("storeCode"), daysBack)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, orders)
}

func (h *Handler) createFeedback(w http.ResponseWriter, r *http.Request) {
	var fb models.Feedback
	if err := json.NewDecoder(r.Body).Decode(&fb); err != nil {
		respondErr(w, r, errors.Wrap(cases.ErrInvalidInput, "bad json"))
		return
	}
	created, err := h.cases.CreateFeedback(r.Context(), &fb)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondOK(w, http.StatusCreated, created)
}

func (h *Handler) listFeedback(w http.ResponseWriter, r *http.Request) {
	items, err := h.cases.ListFeedback(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, items)
}
