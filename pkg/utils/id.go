package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GenerateRunID generates a run ID with a timestamp prefix
func GenerateRunID() string {
	timestamp := time.Now().Format("20060102-150405")
	return fmt.Sprintf("run-%s-%s", timestamp, uuid.NewString()[:8])
}

// GenerateTrialID generates the ID of one trial within a run
func GenerateTrialID(runID string, index int) string {
	return fmt.Sprintf("%s-trial-%d", runID, index)
}
