package mailer

import (
	"fmt"
	"html"
	"strings"

	"github.com/campusops/stockroom-backend/pkg/types"
)

// TemplateLine is one item row rendered into a notification email.
type TemplateLine struct {
	ItemName string
	Qty      int
	ItemType string
}

// RequestCreated is the confirmation sent to the requester on submission.
func RequestCreated(requestID, campusName string, lines []TemplateLine) Message {
	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString("<h1>Request Created</h1>")
	fmt.Fprintf(&b, "<p><strong>Your Request ID:</strong> %s</p>", html.EscapeString(requestID))
	fmt.Fprintf(&b, "<p><strong>Campus Name:</strong> %s</p>", html.EscapeString(campusName))
	b.WriteString("<p><strong>Status:</strong> Pending</p>")
	writeItemList(&b, lines, false)
	b.WriteString("</body></html>")

	return Message{
		Subject: "Your request has been created",
		HTML:    b.String(),
	}
}

// RequestApproved is sent after issuance completes.
func RequestApproved(requestID, campusName string, approvedOn types.Date, lines []TemplateLine) Message {
	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString("<h1>Request Issued</h1>")
	fmt.Fprintf(&b, "<p><strong>ID:</strong> %s</p>", html.EscapeString(requestID))
	fmt.Fprintf(&b, "<p><strong>Campus:</strong> %s</p>", html.EscapeString(campusName))
	b.WriteString("<p><strong>Status:</strong> Approved</p>")
	fmt.Fprintf(&b, "<p><strong>Date of Approval:</strong> %s</p>", approvedOn)
	writeItemList(&b, lines, true)
	b.WriteString("</body></html>")

	return Message{
		Subject: "Your Request has been Approved",
		HTML:    b.String(),
	}
}

// RequestRejected is sent after rejection, echoing the stated reason.
func RequestRejected(requestID, campusName string, requestedOn types.Date, reason string) Message {
	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString("<h1>Request Rejected</h1>")
	fmt.Fprintf(&b, "<p>Request ID: %s</p>", html.EscapeString(requestID))
	fmt.Fprintf(&b, "<p>Campus Name: %s</p>", html.EscapeString(campusName))
	fmt.Fprintf(&b, "<p>Date of Request: %s</p>", requestedOn)
	b.WriteString("<p>Status: Rejected</p>")
	fmt.Fprintf(&b, "<p>Reason: %s</p>", html.EscapeString(reason))
	b.WriteString("</body></html>")

	return Message{
		Subject: "Your Request has been Rejected",
		HTML:    b.String(),
	}
}

func writeItemList(b *strings.Builder, lines []TemplateLine, withType bool) {
	b.WriteString("<h2>Items</h2><ul>")
	for _, line := range lines {
		if withType {
			fmt.Fprintf(b, "<li>%s: %d (%s)</li>",
				html.EscapeString(line.ItemName), line.Qty, html.EscapeString(line.ItemType))
			continue
		}
		fmt.Fprintf(b, "<li>%s: %d</li>", html.EscapeString(line.ItemName), line.Qty)
	}
	b.WriteString("</ul>")
}
