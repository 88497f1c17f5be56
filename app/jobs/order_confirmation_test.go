package jobs

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisteredNameMatchesDispatchedType(t *testing.T) {
	// The queue serializes jobs under fmt.Sprintf("%T", job); the name used
	// in Register must match or workers can never deserialize the job.
	job := &OrderConfirmationJob{}
	assert.Equal(t, "*jobs.OrderConfirmationJob", fmt.Sprintf("%T", job))
}

func TestHandleSkipsWhenNotificationsOff(t *testing.T) {
	job := &OrderConfirmationJob{
		OrderID: "order_1",
		UserID:  "demo_user",
		Notify:  false,
	}
	assert.NoError(t, job.Handle())
}

func TestJobSurvivesJSONRoundTrip(t *testing.T) {
	in := &OrderConfirmationJob{
		OrderID:    "order_7",
		UserID:     "demo_user",
		UserName:   "Demo User",
		Email:      "demo@example.com",
		TotalCents: 12345,
		ItemCount:  2,
		Notify:     true,
	}

	raw, err := json.Marshal(in)
	require.NoError(t, err)

	var out OrderConfirmationJob
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, *in, out)
}
