package jobs

import (
	"errors"
	"time"
)

var ErrJobNotFound = errors.New("job not found")

type Job struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Department  string    `json:"department"`
	Location    string    `json:"location"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type JobFields struct {
	Title       string
	Department  string
	Location    string
	Type        string
	Description string
}
