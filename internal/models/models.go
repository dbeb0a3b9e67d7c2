package models

import "time"

// Comment represents one piece of user feedback collected from a platform
type Comment struct {
	User       string           `json:"user"`
	Avatar     string           `json:"avatar"`
	Game       string           `json:"game"`
	Platform   string           `json:"platform"` // "Steam", "RedBook", "Bilibili", etc.
	PublishAt  time.Time        `json:"publish_at"`
	Rating     int              `json:"rating"` // 0-5 stars
	Content    string           `json:"content"`
	TagDetails ThemeAnnotations `json:"tag_details"`
}

// ThemeAnnotation groups the tags found in a comment under one theme
type ThemeAnnotation struct {
	Theme string          `json:"theme"` // "ux", "story", "risk"
	Tags  []TagAnnotation `json:"tags"`
}

// TagAnnotation is a single tag attached to a comment
type TagAnnotation struct {
	Name    string  `json:"name"`
	Metrics Metrics `json:"metrics"`
}

// Metrics holds the sentiment attributes of a tag.
// The label is informational and may disagree with the score.
type Metrics struct {
	SentimentScore float64  `json:"sentiment_score"` // 0-1
	SentimentLabel string   `json:"sentiment_label"` // "Positive", "Negative", "Mixed", "Neutral"
	Keywords       []string `json:"keywords"`
}

// SummaryRow is one row of the dashboard overview table
type SummaryRow struct {
	ID             int      `json:"id"`
	Game           string   `json:"game"`
	Platform       string   `json:"platform"`
	Status         string   `json:"status"`
	TotalBuzz      int      `json:"total_buzz"`
	SentimentScore float64  `json:"sentiment_score"`
	EmergingIssues int      `json:"emerging_issues"`
	TopTags        []string `json:"top_tags"`
	Review         string   `json:"review"`
}

// TagInsight describes how a tag performs for a game
type TagInsight struct {
	TagName        string  `json:"tag_name"`
	TagDescription string  `json:"tag_description"`
	SentimentScore float64 `json:"sentiment_score"`
	SentimentLabel string  `json:"sentiment_label"`
	Volume         int     `json:"volume"`
	Trend          float64 `json:"trend"`
	TGI            float64 `json:"tgi"`
	SampleComment  string  `json:"sample_comment"`
}

// TagBreakdown is the per-game tag tree shown in the dashboard drawer
type TagBreakdown struct {
	ID         int    `json:"id"`
	Game       string `json:"game"`
	TagDetails struct {
		UX    []TagInsight `json:"ux"`
		Story []TagInsight `json:"story"`
		Risk  []TagInsight `json:"risk"`
	} `json:"tag_details"`
}

// TimeWindow is an inclusive date range in YYYY-MM-DD form. Empty bounds mean all time.
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// TaskDetail describes what an auto tagging task does
type TaskDetail struct {
	Theme            string     `json:"theme"`
	TagName          string     `json:"tag_name"`
	ProcessingMode   string     `json:"processing_mode"` // "complete", "tagOnly", "simulation"
	Schedule         string     `json:"schedule"`
	AffectedContents int        `json:"affected_contents"`
	TimeWindow       TimeWindow `json:"time_window"`
}

// Task represents an auto tagging task in the review queue
type Task struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Submitter string     `json:"submitter"`
	Reviewer  string     `json:"reviewer"`
	Status    string     `json:"status"` // "pending", "running", "completed", "rejected", "paused"
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Details   TaskDetail `json:"details"`
}

// User is the signed-in dashboard user
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}
