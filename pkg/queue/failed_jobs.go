package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shashiranjanraj/launchpad/pkg/storage"
)

// FailedJobRecord is the JSON document written to the failed-jobs directory
// on the storage disk.
type FailedJobRecord struct {
	JobType  string    `json:"jobType"`
	Payload  string    `json:"payload"`
	Error    string    `json:"error"`
	Attempts int       `json:"attempts"`
	FailedAt time.Time `json:"failedAt"`
}

// failedJobDir is where exhausted jobs land on the storage disk, one JSON
// file per failure, so they can be inspected and replayed by hand.
const failedJobDir = "queue/failed"

// persistToDisk controls whether failures are also written to storage.
// Enabled via PersistFailedJobs() once storage.Connect() has run.
var persistToDisk bool

// PersistFailedJobs turns on storage-disk persistence for exhausted jobs.
// Call once at boot, after storage.Connect():
//
//	queue.PersistFailedJobs()
func PersistFailedJobs() { persistToDisk = true }

// persistFailed records a job that exhausted its retries: always appended to
// the in-memory slice, and mirrored to the storage disk when enabled.
func (m *Manager) persistFailed(job Job, typeName string, lastErr error, attempts int) {
	now := time.Now()

	m.mu.Lock()
	m.failed = append(m.failed, FailedJob{
		Job: job, Err: lastErr, FailedAt: now, Attempts: attempts,
	})
	m.mu.Unlock()

	if !persistToDisk {
		return
	}

	payload, err := json.Marshal(job)
	if err != nil {
		payload = []byte(fmt.Sprintf(`{"error": "could not marshal: %v"}`, err))
	}

	record := FailedJobRecord{
		JobType:  typeName,
		Payload:  string(payload),
		Error:    lastErr.Error(),
		Attempts: attempts,
		FailedAt: now,
	}

	raw, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return
	}

	path := fmt.Sprintf("%s/%d.json", failedJobDir, now.UnixNano())
	if err := storage.Put(path, raw); err != nil {
		// Non-fatal — the in-memory slice still has it.
		fmt.Printf("queue: persist failed job %s: %v\n", typeName, err)
	}
}
