package advisor

import (
	"fmt"
	"strings"

	"github.com/BearBump/CaseDesk/internal/derive"
	"github.com/BearBump/CaseDesk/internal/models"
)

func triagePrompt(message string) string {
	return fmt.Sprintf(`You are a customer service triage assistant for an e-commerce company.
Classify the customer message below.

Respond with JSON only, no prose:
{"issueCategory": one of ["Shipping Delay","Damaged Item","Wrong Item","Missing Item","Return Request","Refund Request","Cancellation","Product Question","Other"],
"sentiment": one of ["Positive","Neutral","Frustrated","Angry"],
"urgency": one of ["Low","Medium","High"]}

Customer message:
"""
%s
"""`, message)
}

func summaryPrompt(c *models.Case, msgs []*models.Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are a customer service assistant. Summarize this support case for an agent who is seeing it for the first time.

Respond with JSON only, no prose:
{"summary": "2-3 sentence overview", "keyPoints": ["..."], "suggestedAction": "one concrete next step"}

Case:
- Order: %s
- Customer: %s
- Status: %s
- Category: %s
- Original message: %s
`, c.PlatformOrderNumber, c.CustomerName, c.Status, c.IssueCategory, c.OriginalMessage)

	if len(msgs) > 0 {
		b.WriteString("\nConversation so far:\n")
		for _, m := range msgs {
			fmt.Fprintf(&b, "- [%s] %s\n", m.Direction, m.MessageContent)
		}
	}
	return b.String()
}

type replyContext struct {
	Case     *models.Case
	Messages []*models.Message
	Order    *models.Order
	Facts    *derive.TrackingFacts
	Store    *models.Store
	Playbook *models.Playbook
}

func replyPrompt(rc replyContext) string {
	var b strings.Builder
	b.WriteString("You are drafting a reply to a customer on behalf of an e-commerce store.\n\n")

	if st := rc.Store; st != nil {
		b.WriteString("Write as this persona:\n")
		if st.PersonaName != nil {
			fmt.Fprintf(&b, "- Name: %s\n", *st.PersonaName)
		}
		if st.PersonaBackground != nil {
			fmt.Fprintf(&b, "- Background: %s\n", *st.PersonaBackground)
		}
		if st.PersonalityTraits != nil {
			fmt.Fprintf(&b, "- Personality: %s\n", *st.PersonalityTraits)
		}
		if st.WritingStyle != nil {
			fmt.Fprintf(&b, "- Writing style: %s\n", *st.WritingStyle)
		}
		if st.GreetingTemplate != nil {
			fmt.Fprintf(&b, "- Greeting: %s\n", *st.GreetingTemplate)
		}
		if st.SignoffTemplate != nil {
			fmt.Fprintf(&b, "- Sign-off: %s\n", *st.SignoffTemplate)
		}
		b.WriteString("\n")
	}

	c := rc.Case
	fmt.Fprintf(&b, "Case category: %s\nCustomer name: %s\nCustomer message:\n\"\"\"\n%s\n\"\"\"\n\n", c.IssueCategory, c.CustomerName, c.OriginalMessage)

	if o := rc.Order; o != nil {
		fmt.Fprintf(&b, "Order details:\n- Item: %s (qty %d)\n- Order date: %s\n- Order status: %s\n", o.ItemName, o.Quantity, o.OrderDate, o.Status)
		if rc.Facts != nil {
			f := rc.Facts
			// Покупателю показывается только канонический номер. Внутренний
			// номер перевозчика в текст письма попадать не должен.
			if f.CanonicalCustomerTrackingNumber != nil {
				fmt.Fprintf(&b, "- Tracking number (the ONLY one you may mention): %s\n", *f.CanonicalCustomerTrackingNumber)
			} else {
				b.WriteString("- No tracking number is available yet; do not promise one.\n")
			}
			if f.StatusText != nil {
				fmt.Fprintf(&b, "- Shipment status: %s\n", *f.StatusText)
			}
			if f.Stale {
				b.WriteString("- Tracking has not updated for several days.\n")
			}
		}
		b.WriteString("\n")
	}

	if pb := rc.Playbook; pb != nil {
		fmt.Fprintf(&b, "Internal playbook %q:\n", pb.ScenarioName)
		if pb.DecisionTree != nil {
			fmt.Fprintf(&b, "%s\n", *pb.DecisionTree)
		}
		if pb.ResponseTemplate != nil {
			fmt.Fprintf(&b, "Template to adapt:\n%s\n", *pb.ResponseTemplate)
		}
		b.WriteString("\n")
	}

	if len(rc.Messages) > 0 {
		b.WriteString("Conversation so far:\n")
		for _, m := range rc.Messages {
			fmt.Fprintf(&b, "- [%s] %s\n", m.Direction, m.MessageContent)
		}
		b.WriteString("\n")
	}

	b.WriteString("Write the reply email body only. No subject line, no JSON, no markdown.")
	return b.String()
}
