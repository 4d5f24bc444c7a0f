package reviewsim

import "time"

// Config holds configuration for the review simulation.
type Config struct {
	BaseURL          string        // Base URL of the service
	NumMentors       int           // Number of mentors to simulate
	ReviewsPerMentor int           // Maximum reviews generated per mentor
	TopN             int           // Number of top entries to fetch
	Workers          int           // Number of concurrent workers
	Timeout          time.Duration // HTTP request timeout
	OutputFile       string        // Output file for generated reviews
	LogFile          string        // Log file for simulation output
	Verbose          bool          // Enable verbose logging
}

// Review represents a review to be submitted.
type Review struct {
	ReviewID      string `json:"review_id"`
	MentorID      string `json:"mentor_id"`
	ReviewerID    string `json:"reviewer_id"`
	Friendliness  int    `json:"friendliness"`
	Knowledge     int    `json:"knowledge"`
	Communication int    `json:"communication"`
	Comment       string `json:"comment,omitempty"`
	TS            string `json:"ts"`
}

// Entry represents a top-mentors listing entry.
type Entry struct {
	Rank         int     `json:"rank"`
	MentorID     string  `json:"mentor_id"`
	Rating       float64 `json:"rating"`
	TotalReviews int     `json:"total_reviews"`
	Level        int     `json:"level"`
	LevelTitle   string  `json:"level_title"`
}

// Reputation mirrors the published profile returned by the service.
type Reputation struct {
	MentorID     string   `json:"mentor_id"`
	Rating       float64  `json:"rating"`
	TotalReviews int      `json:"total_reviews"`
	Level        int      `json:"level"`
	LevelTitle   string   `json:"level_title"`
	Badges       []string `json:"badges"`
	Version      int64    `json:"version"`
}

// AckResponse represents the response from review submission.
type AckResponse struct {
	Status    string `json:"status"`
	ReviewID  string `json:"review_id"`
	Duplicate bool   `json:"duplicate"`
}

// Stats holds simulation statistics.
type Stats struct {
	ReviewsGenerated     int
	ReviewsSubmitted     int
	ReviewsSuccessful    int
	ReviewsDuplicate     int
	ReviewsFailed        int
	ReputationsRetrieved int
	TopEntries           int
	StartTime            time.Time
	EndTime              time.Time
	Duration             time.Duration
}
