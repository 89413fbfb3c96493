package model

import "time"

// Submission is a payload received on the save endpoint.
type Submission struct {
	ID        string         `json:"id"`
	Payload   GroupedPayload `json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
}

// SubmissionSummary is the listing view of a submission.
type SubmissionSummary struct {
	ID        string    `json:"id"`
	Columns   int       `json:"columns"`
	CreatedAt time.Time `json:"created_at"`
}

// SaveResponse is returned by the save endpoint on success.
type SaveResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
	Columns int    `json:"columns"`
}
