// Package notifications defines the storefront's outgoing notifications.
package notifications

import (
	"fmt"

	"github.com/shashiranjanraj/launchpad/pkg/notification"
)

// OrderConfirmed is sent after a successful checkout: an email to the buyer
// and a Slack ping to the demo channel.
type OrderConfirmed struct {
	OrderID    string
	UserName   string
	TotalCents int
	ItemCount  int
}

func (n *OrderConfirmed) Via() []string { return []string{"mail", "slack"} }

func (n *OrderConfirmed) ToMail() notification.MailData {
	return notification.MailData{
		Subject: fmt.Sprintf("Order %s confirmed", n.OrderID),
		Body: fmt.Sprintf(
			"<h1>Thanks, %s!</h1><p>Your order of %d item(s) came to %s.</p>",
			n.UserName, n.ItemCount, formatCents(n.TotalCents)),
	}
}

func (n *OrderConfirmed) ToSlack() notification.SlackData {
	return notification.SlackData{
		Text: fmt.Sprintf("New order %s: %d item(s), %s", n.OrderID, n.ItemCount, formatCents(n.TotalCents)),
		Attachments: []notification.SlackAttachment{
			{Color: "good", Title: "Checkout", Footer: "launchpad storefront"},
		},
	}
}

func formatCents(cents int) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
