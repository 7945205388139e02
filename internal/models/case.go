package models

import "time"

const (
	CaseStatusNew             = "New"
	CaseStatusInProgress      = "In Progress"
	CaseStatusPendingCustomer = "Pending Customer"
	CaseStatusPendingInternal = "Pending Internal"
	CaseStatusReplied         = "Replied"
	CaseStatusResolved        = "Resolved"
	CaseStatusEscalated       = "Escalated"
)

type Case struct {
	ID                   string     `json:"id"`
	PlatformOrderNumber  string     `json:"platformOrderNumber"`
	CustomerName         string     `json:"customerName"`
	CustomerEmail        string     `json:"customerEmail"`
	OriginalMessage      string     `json:"originalMessage"`
	IssueCategory        string     `json:"issueCategory,omitempty"`
	Sentiment            string     `json:"sentiment,omitempty"`
	Urgency              string     `json:"urgency,omitempty"`
	Status               string     `json:"status"`
	ContactReason        *string    `json:"contactReason,omitempty"`
	StoreCode            *string    `json:"storeCode,omitempty"`
	AssignedTo           *string    `json:"assignedTo,omitempty"`
	AIDraftReply         *string    `json:"aiDraftReply,omitempty"`
	FinalReplySent       *string    `json:"finalReplySent,omitempty"`
	ResolutionType       *string    `json:"resolutionType,omitempty"`
	ResolutionNotes      *string    `json:"resolutionNotes,omitempty"`
	CostToCompany        *float64   `json:"costToCompany,omitempty"`
	CustomerSatisfaction *string    `json:"customerSatisfaction,omitempty"`
	InternalNotes        *string    `json:"internalNotes,omitempty"`
	ResolvedAt           *string    `json:"resolvedAt,omitempty"`
	FollowUpDate         *string    `json:"followUpDate,omitempty"`
	AISummary            *string    `json:"aiSummary,omitempty"`
	AISummaryGeneratedAt *string    `json:"aiSummaryGeneratedAt,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
}

type CaseUpdate struct {
	PlatformOrderNumber  *string  `json:"platformOrderNumber,omitempty"`
	Status               *string  `json:"status,omitempty"`
	IssueCategory        *string  `json:"issueCategory,omitempty"`
	Sentiment            *string  `json:"sentiment,omitempty"`
	Urgency              *string  `json:"urgency,omitempty"`
	AIDraftReply         *string  `json:"aiDraftReply,omitempty"`
	FinalReplySent       *string  `json:"finalReplySent,omitempty"`
	ResolutionType       *string  `json:"resolutionType,omitempty"`
	ResolutionNotes      *string  `json:"resolutionNotes,omitempty"`
	CostToCompany        *float64 `json:"costToCompany,omitempty"`
	CustomerSatisfaction *string  `json:"customerSatisfaction,omitempty"`
	InternalNotes        *string  `json:"internalNotes,omitempty"`
	ResolvedAt           *string  `json:"resolvedAt,omitempty"`
	FollowUpDate         *string  `json:"followUpDate,omitempty"`
	AssignedTo           *string  `json:"assignedTo,omitempty"`
	AISummary            *string  `json:"aiSummary,omitempty"`
	AISummaryGeneratedAt *string  `json:"aiSummaryGeneratedAt,omitempty"`
}

type CaseCreateInput struct {
	PlatformOrderNumber string  `json:"platformOrderNumber"`
	CustomerName        string  `json:"customerName"`
	CustomerEmail       string  `json:"customerEmail"`
	OriginalMessage     string  `json:"originalMessage"`
	IssueCategory       string  `json:"issueCategory,omitempty"`
	Sentiment           string  `json:"sentiment,omitempty"`
	Urgency             string  `json:"urgency,omitempty"`
	Status              string  `json:"status,omitempty"`
	ContactReason       *string `json:"contactReason,omitempty"`
	StoreCode           *string `json:"storeCode,omitempty"`
}

type Message struct {
	ID              string    `json:"id"`
	CaseID          string    `json:"caseId"`
	Direction       string    `json:"direction"`
	SenderType      string    `json:"senderType"`
	StaffMember     *string   `json:"staffMember,omitempty"`
	PersonaUsed     *string   `json:"personaUsed,omitempty"`
	MessageContent  string    `json:"messageContent"`
	AIDraftOriginal *string   `json:"aiDraftOriginal,omitempty"`
	EditsMade       *string   `json:"editsMade,omitempty"`
	ActionTaken     []string  `json:"actionTaken,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

type Feedback struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Type          string    `json:"type"`
	Description   string    `json:"description"`
	RelatedCaseID *string   `json:"relatedCaseId,omitempty"`
	SubmittedBy   string    `json:"submittedBy"`
	Status        string    `json:"status"`
	Priority      *string   `json:"priority,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
