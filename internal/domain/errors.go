package domain

import "errors"

var (
	// ErrAlreadyProcessed indicates the transaction signature was applied before
	ErrAlreadyProcessed = errors.New("signature already processed")
	// ErrUnknownEvent indicates a log line named an event outside the known set
	ErrUnknownEvent = errors.New("unknown event")
	// ErrMalformedEvent indicates an event payload that failed validation
	ErrMalformedEvent = errors.New("malformed event")
	// ErrNotFound indicates the referenced entity is not in the projection
	ErrNotFound = errors.New("not found")
	// ErrInvalidImageChoice indicates an image choice outside 0..3 and the reject-all sentinel
	ErrInvalidImageChoice = errors.New("invalid image choice")
	// ErrImageCountMismatch indicates a generation result whose image count does not match the prompts
	ErrImageCountMismatch = errors.New("image count does not match prompt count")
	// ErrCheckpointRegression indicates an attempt to move the sync checkpoint backwards
	ErrCheckpointRegression = errors.New("checkpoint slot regression")
)
