package messages

import "time"

// CaseUpdated уходит в топик после каждой мутации кейса. Потребители —
// аналитика и нотификации, доставка best-effort.
type CaseUpdated struct {
	CaseID              string    `json:"case_id"`
	PlatformOrderNumber string    `json:"platform_order_number,omitempty"`
	Status              string    `json:"status"`
	Action              string    `json:"action"` // created | updated
	ChangedAt           time.Time `json:"changed_at"`

	IssueCategory string  `json:"issue_category,omitempty"`
	Urgency       string  `json:"urgency,omitempty"`
	StoreCode     *string `json:"store_code,omitempty"`
}
