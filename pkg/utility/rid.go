package utility

import "github.com/google/uuid"

// RunID identifies one forecasting run across logs and exports.
type RunID = uuid.UUID

func NewRunID() RunID {
	return uuid.Must(uuid.NewV7())
}
