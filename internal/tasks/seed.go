package tasks

import (
	"time"

	"github.com/artefact/buzz-dashboard/internal/models"
)

const (
	mockSubmitter = "example@artefact.com"
	mockReviewer  = "jiaoliang.chen@artefact.com"
)

func at(value string) time.Time {
	t, err := time.Parse("2006-01-02T15:04:05", value)
	if err != nil {
		panic(err)
	}
	return t
}

// MockTasks returns the tasks the review queue starts with
func MockTasks() []models.Task {
	return []models.Task{
		{
			ID:        1,
			Name:      "#BalanceIssues - Rainbow Six Siege",
			Submitter: mockSubmitter,
			Reviewer:  mockReviewer,
			Status:    StatusCompleted,
			CreatedAt: at("2023-03-25T12:00:00"),
			UpdatedAt: at("2023-03-26T15:30:00"),
			Details: models.TaskDetail{
				Theme:            "ux",
				TagName:          "#BalanceIssues",
				ProcessingMode:   "complete",
				Schedule:         "One-time",
				AffectedContents: 128,
				TimeWindow:       models.TimeWindow{Start: "2023-02-01", End: "2023-03-01"},
			},
		},
		{
			ID:        2,
			Name:      "#Matchmaking - Rainbow Six Siege",
			Submitter: mockSubmitter,
			Reviewer:  mockReviewer,
			Status:    StatusRunning,
			CreatedAt: at("2023-03-27T09:15:00"),
			UpdatedAt: at("2023-03-27T09:15:00"),
			Details: models.TaskDetail{
				Theme:            "ux",
				TagName:          "#MatchmakingTime",
				ProcessingMode:   "tagOnly",
				Schedule:         "Daily",
				AffectedContents: 78,
				TimeWindow:       models.TimeWindow{Start: "2023-03-01", End: "2023-03-27"},
			},
		},
		{
			ID:        3,
			Name:      "#Background - Assassin's Creed",
			Submitter: mockSubmitter,
			Reviewer:  mockReviewer,
			Status:    StatusPending,
			CreatedAt: at("2023-03-28T11:45:00"),
			UpdatedAt: at("2023-03-28T11:45:00"),
			Details: models.TaskDetail{
				Theme:          "story",
				TagName:        "#StoryDepth",
				ProcessingMode: "simulation",
				Schedule:       "One-time",
				TimeWindow:     models.TimeWindow{Start: "2023-01-01", End: "2023-03-15"},
			},
		},
		{
			ID:        4,
			Name:      "#ControlIssues - Assassin's Creed",
			Submitter: mockSubmitter,
			Reviewer:  mockReviewer,
			Status:    StatusRejected,
			CreatedAt: at("2023-03-20T14:30:00"),
			UpdatedAt: at("2023-03-22T10:15:00"),
			Details: models.TaskDetail{
				Theme:          "ux",
				TagName:        "#ControlScheme",
				ProcessingMode: "complete",
				Schedule:       "Weekly",
				TimeWindow:     models.TimeWindow{Start: "2023-02-15", End: "2023-03-15"},
			},
		},
		{
			ID:        5,
			Name:      "#DifficultyBalance - Rainbow Six Siege",
			Submitter: mockSubmitter,
			Reviewer:  mockReviewer,
			Status:    StatusPaused,
			CreatedAt: at("2023-03-18T08:45:00"),
			UpdatedAt: at("2023-03-23T16:20:00"),
			Details: models.TaskDetail{
				Theme:            "gameplay",
				TagName:          "#DifficultyBalance",
				ProcessingMode:   "complete",
				Schedule:         "Daily",
				AffectedContents: 45,
				TimeWindow:       models.TimeWindow{Start: "2023-03-01", End: "2023-03-18"},
			},
		},
	}
}
