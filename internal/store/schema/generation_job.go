package schema

import (
	"time"
)

// GenerationJobStatus represents the terminal state of a parked job
type GenerationJobStatus string

const (
	// GenerationJobStatusParked means retries were exhausted and the job
	// waits for manual inspection
	GenerationJobStatusParked GenerationJobStatus = "parked"
)

// GenerationJob represents the generation_jobs table - image-generation
// jobs that exhausted their retries. Healthy jobs live only in the
// queue; a row here means an operator needs to look.
type GenerationJob struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// JobID is the queue-assigned job identifier
	JobID string `gorm:"column:job_id;not null;type:text;uniqueIndex:idx_generation_jobs_job_id"`
	// IdeaKey is the idea the job generates images for
	IdeaKey string `gorm:"column:idea_key;not null;type:text;index:idx_generation_jobs_idea_key"`
	// Prompt is the generation prompt
	Prompt string `gorm:"column:prompt;not null;type:text"`
	// Provider names the compute network the job targeted
	Provider string `gorm:"column:provider;type:text"`
	// Attempts is the number of deliveries consumed before parking
	Attempts int `gorm:"column:attempts;not null"`
	// Status is the terminal state of the job
	Status GenerationJobStatus `gorm:"column:status;not null;type:text"`
	// LastError is the failure that exhausted the final attempt
	LastError string `gorm:"column:last_error;type:text"`
	// CreatedAt is the timestamp when the job was parked
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the GenerationJob model
func (GenerationJob) TableName() string {
	return "generation_jobs"
}
