package notifications

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderConfirmedFormatting(t *testing.T) {
	n := &OrderConfirmed{
		OrderID:    "order_42",
		UserName:   "Demo User",
		TotalCents: 63996,
		ItemCount:  4,
	}

	assert.Equal(t, []string{"mail", "slack"}, n.Via())

	mail := n.ToMail()
	assert.Equal(t, "Order order_42 confirmed", mail.Subject)
	assert.Contains(t, mail.Body, "Demo User")
	assert.Contains(t, mail.Body, "$639.96")

	slack := n.ToSlack()
	assert.Contains(t, slack.Text, "order_42")
	assert.Contains(t, slack.Text, "4 item(s)")
}

func TestFormatCentsPadsPennies(t *testing.T) {
	assert.Equal(t, "$0.05", formatCents(5))
	assert.Equal(t, "$1.00", formatCents(100))
	assert.Equal(t, "$199.99", formatCents(19999))
}
