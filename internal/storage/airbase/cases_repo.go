package airbase

import (
	"context"

	"github.com/BearBump/CaseDesk/internal/models"
)

const (
	casesTable    = "CS Cases"
	messagesTable = "CS Messages"
	feedbackTable = "CS Feedback"
)

type CasesRepo struct {
	c *Client
}

func NewCasesRepo(c *Client) *CasesRepo {
	return &CasesRepo{c: c}
}

// List: status уже провалидирован по whitelist вызывающей стороной;
// пустая строка — без фильтра.
func (r *CasesRepo) List(ctx context.Context, status string) ([]*models.Case, error) {
	opts := QueryOptions{
		Sort: []Sort{{Field: "Platform Order Number", Direction: "desc"}},
	}
	if status != "" {
		opts.Formula = Eq("Status", status)
	}
	recs, err := r.c.Query(ctx, casesTable, opts)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Case, 0, len(recs))
	for i := range recs {
		out = append(out, mapCase(&recs[i]))
	}
	return out, nil
}

func (r *CasesRepo) Get(ctx context.Context, id string) (*models.Case, error) {
	rec, err := r.c.Find(ctx, casesTable, id)
	if err != nil {
		return nil, err
	}
	return mapCase(rec), nil
}

func (r *CasesRepo) ListByCustomerEmail(ctx context.Context, email, excludeCaseID string) ([]*models.Case, error) {
	recs, err := r.c.Query(ctx, casesTable, QueryOptions{
		Formula: Eq("Customer Email", email),
		Sort:    []Sort{{Field: "Platform Order Number", Direction: "desc"}},
	})
	if err != nil {
		return nil, err
	}
	out := make([]*models.Case, 0, len(recs))
	for i := range recs {
		if recs[i].ID == excludeCaseID {
			continue
		}
		out = append(out, mapCase(&recs[i]))
	}
	return out, nil
}

func (r *CasesRepo) Create(ctx context.Context, in models.CaseCreateInput) (*models.Case, error) {
	fields := map[string]any{
		"Platform Order Number": in.PlatformOrderNumber,
		"Customer Name":         in.CustomerName,
		"Customer Email":        in.CustomerEmail,
		"Original Message":      in.OriginalMessage,
		"Status":                in.Status,
	}
	if in.Status == "" {
		fields["Status"] = models.CaseStatusNew
	}
	setIfNotEmpty(fields, "Issue Category", in.IssueCategory)
	setIfNotEmpty(fields, "Sentiment", in.Sentiment)
	setIfNotEmpty(fields, "Urgency", in.Urgency)
	setPtr(fields, "Contact Reason", in.ContactReason)
	setPtr(fields, "Store Code", in.StoreCode)

	rec, err := r.c.Create(ctx, casesTable, fields)
	if err != nil {
		return nil, err
	}
	return mapCase(rec), nil
}

func (r *CasesRepo) Update(ctx context.Context, id string, upd models.CaseUpdate) (*models.Case, error) {
	fields := map[string]any{}
	setPtr(fields, "Platform Order Number", upd.PlatformOrderNumber)
	setPtr(fields, "Status", upd.Status)
	setPtr(fields, "Issue Category", upd.IssueCategory)
	setPtr(fields, "Sentiment", upd.Sentiment)
	setPtr(fields, "Urgency", upd.Urgency)
	setPtr(fields, "AI Draft Reply", upd.AIDraftReply)
	setPtr(fields, "Final Reply Sent", upd.FinalReplySent)
	setPtr(fields, "Resolution Type", upd.ResolutionType)
	setPtr(fields, "Resolution Notes", upd.ResolutionNotes)
	setPtr(fields, "Customer Satisfaction", upd.CustomerSatisfaction)
	setPtr(fields, "Internal Notes", upd.InternalNotes)
	setPtr(fields, "Resolved At", upd.ResolvedAt)
	setPtr(fields, "Follow Up Date", upd.FollowUpDate)
	setPtr(fields, "Assigned To", upd.AssignedTo)
	setPtr(fields, "AI Summary", upd.AISummary)
	setPtr(fields, "AI Summary Generated At", upd.AISummaryGeneratedAt)
	if upd.CostToCompany != nil {
		fields["Cost to Company"] = *upd.CostToCompany
	}

	rec, err := r.c.Update(ctx, casesTable, id, fields)
	if err != nil {
		return nil, err
	}
	return mapCase(rec), nil
}

func setIfNotEmpty(fields map[string]any, key, v string) {
	if v != "" {
		fields[key] = v
	}
}

func setPtr(fields map[string]any, key string, v *string) {
	if v != nil && *v != "" {
		fields[key] = *v
	}
}

func mapCase(rec *Record) *models.Case {
	return &models.Case{
		ID:                   rec.ID,
		PlatformOrderNumber:  rec.Str("Platform Order Number"),
		CustomerName:         rec.Str("Customer Name"),
		CustomerEmail:        rec.Str("Customer Email"),
		OriginalMessage:      rec.Str("Original Message"),
		IssueCategory:        rec.Str("Issue Category"),
		Sentiment:            rec.Str("Sentiment"),
		Urgency:              rec.Str("Urgency"),
		Status:               defaultStr(rec.Str("Status"), models.CaseStatusNew),
		ContactReason:        rec.StrPtr("Contact Reason"),
		StoreCode:            rec.StrPtr("Store Code"),
		AssignedTo:           rec.StrPtr("Assigned To"),
		AIDraftReply:         rec.StrPtr("AI Draft Reply"),
		FinalReplySent:       rec.StrPtr("Final Reply Sent"),
		ResolutionType:       rec.StrPtr("Resolution Type"),
		ResolutionNotes:      rec.StrPtr("Resolution Notes"),
		CostToCompany:        rec.NumPtr("Cost to Company"),
		CustomerSatisfaction: rec.StrPtr("Customer Satisfaction"),
		InternalNotes:        rec.StrPtr("Internal Notes"),
		ResolvedAt:           rec.StrPtr("Resolved At"),
		FollowUpDate:         rec.StrPtr("Follow Up Date"),
		AISummary:            rec.StrPtr("AI Summary"),
		AISummaryGeneratedAt: rec.StrPtr("AI Summary Generated At"),
		CreatedAt:            rec.CreatedTime,
	}
}

func defaultStr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

type MessagesRepo struct {
	c *Client
}

func NewMessagesRepo(c *Client) *MessagesRepo {
	return &MessagesRepo{c: c}
}

func (r *MessagesRepo) ListByCaseID(ctx context.Context, caseID string) ([]*models.Message, error) {
	recs, err := r.c.Query(ctx, messagesTable, QueryOptions{
		Formula: Eq("Case ID", caseID),
		Sort:    []Sort{{Field: "Case ID", Direction: "asc"}},
	})
	if err != nil {
		return nil, err
	}
	out := make([]*models.Message, 0, len(recs))
	for i := range recs {
		rec := &recs[i]
		out = append(out, &models.Message{
			ID:              rec.ID,
			CaseID:          rec.Str("Case ID"),
			Direction:       rec.Str("Direction"),
			SenderType:      rec.Str("Sender Type"),
			StaffMember:     rec.StrPtr("Staff Member"),
			PersonaUsed:     rec.StrPtr("Persona Used"),
			MessageContent:  rec.Str("Message Content"),
			AIDraftOriginal: rec.StrPtr("AI Draft Original"),
			EditsMade:       rec.StrPtr("Edits Made"),
			ActionTaken:     rec.StrSlice("Action Taken"),
			CreatedAt:       rec.CreatedTime,
		})
	}
	return out, nil
}

type FeedbackRepo struct {
	c *Client
}

func NewFeedbackRepo(c *Client) *FeedbackRepo {
	return &FeedbackRepo{c: c}
}

func (r *FeedbackRepo) Create(ctx context.Context, fb *models.Feedback) (*models.Feedback, error) {
	fields := map[string]any{
		"Title":        fb.Title,
		"Type":         fb.Type,
		"Description":  fb.Description,
		"Submitted By": fb.SubmittedBy,
		"Status":       "New",
	}
	setPtr(fields, "Related Case ID", fb.RelatedCaseID)

	rec, err := r.c.Create(ctx, feedbackTable, fields)
	if err != nil {
		return nil, err
	}
	return mapFeedback(rec), nil
}

// List: status провалидирован вызывающей стороной, пустая строка — без фильтра.
func (r *FeedbackRepo) List(ctx context.Context, status string) ([]*models.Feedback, error) {
	opts := QueryOptions{
		Sort: []Sort{{Field: "Title", Direction: "desc"}},
	}
	if status != "" {
		opts.Formula = Eq("Status", status)
	}
	recs, err := r.c.Query(ctx, feedbackTable, opts)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Feedback, 0, len(recs))
	for i := range recs {
		out = append(out, mapFeedback(&recs[i]))
	}
	return out, nil
}

func mapFeedback(rec *Record) *models.Feedback {
	return &models.Feedback{
		ID:            rec.ID,
		Title:         rec.Str("Title"),
		Type:          rec.Str("Type"),
		Description:   rec.Str("Description"),
		RelatedCaseID: rec.StrPtr("Related Case ID"),
		SubmittedBy:   rec.Str("Submitted By"),
		Status:        defaultStr(rec.Str("Status"), "New"),
		Priority:      rec.StrPtr("Priority"),
		CreatedAt:     rec.CreatedTime,
	}
}
