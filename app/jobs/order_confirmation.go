// Package jobs defines the background jobs the storefront queues.
package jobs

import (
	"github.com/shashiranjanraj/launchpad/app/notifications"
	"github.com/shashiranjanraj/launchpad/pkg/logger"
	"github.com/shashiranjanraj/launchpad/pkg/notification"
	"github.com/shashiranjanraj/launchpad/pkg/queue"
)

// OrderConfirmationJob delivers the order-confirmation notification off the
// request path. Notify is captured at dispatch time from the user's
// preferences, so the job doesn't need store access.
type OrderConfirmationJob struct {
	OrderID    string `json:"orderId"`
	UserID     string `json:"userId"`
	UserName   string `json:"userName"`
	Email      string `json:"email"`
	TotalCents int    `json:"totalCents"`
	ItemCount  int    `json:"itemCount"`
	Notify     bool   `json:"notify"`
}

// Register makes the job type deserializable by the queue workers.
// Call once at boot.
func Register() {
	queue.Register("*jobs.OrderConfirmationJob", func() queue.Job {
		return &OrderConfirmationJob{}
	})
}

func (j *OrderConfirmationJob) Handle() error {
	if !j.Notify {
		logger.Info("order confirmation skipped, notifications off",
			"order_id", j.OrderID, "user_id", j.UserID)
		return nil
	}

	errs := notification.Send(j.Email, &notifications.OrderConfirmed{
		OrderID:    j.OrderID,
		UserName:   j.UserName,
		TotalCents: j.TotalCents,
		ItemCount:  j.ItemCount,
	})
	if len(errs) > 0 {
		// Channels fail independently; the job succeeds if any channel went out.
		if len(errs) == len((&notifications.OrderConfirmed{}).Via()) {
			return errs[0]
		}
	}
	return nil
}
