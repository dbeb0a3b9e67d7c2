package tagging

import (
	"errors"
	"fmt"
	"time"

	"github.com/artefact/buzz-dashboard/internal/models"
)

var (
	ErrNotReady          = errors.New("task name and submitter are required on the review step")
	ErrInvalidTimeWindow = errors.New("invalid time window")
	ErrUnknownOption     = errors.New("unknown option")
)

// Step is a page of the auto tagging wizard
type Step int

const (
	ContentSelection Step = iota + 1
	TagConfiguration
	ProcessingMode
	ExecutionSchedule
	ReviewAndSubmit
)

const (
	firstStep = ContentSelection
	lastStep  = ReviewAndSubmit
)

func (s Step) String() string {
	switch s {
	case ContentSelection:
		return "Content Selection"
	case TagConfiguration:
		return "Tag Configuration"
	case ProcessingMode:
		return "Processing Mode"
	case ExecutionSchedule:
		return "Execution Schedule"
	case ReviewAndSubmit:
		return "Review & Submit"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

const (
	defaultTagName       = "#BalanceIssues"
	defaultTagDefinition = "Refers to user feedback that highlights perceived imbalances in the game's mechanics, characters, weapons, or systems.\n" +
		"These comments often express frustration over unfair advantages, overpowered elements, or broken gameplay loops."
	dateLayout = "2006-01-02"
)

// Selection picks the content a task runs over
type Selection struct {
	TimeWindow   models.TimeWindow `json:"time_window"`
	Theme        string            `json:"theme"`
	ExistingTags []string          `json:"existing_tags"`
	Conditions   []Condition       `json:"metrics_conditions"`
}

// TagConfig describes the tag a task applies
type TagConfig struct {
	Theme         string   `json:"theme"`
	TagName       string   `json:"tag_name"`
	TagDefinition string   `json:"tag_definition"`
	Metrics       []string `json:"metrics"`
}

// Schedule is when a task runs. Only the field matching Type is in effect.
type Schedule struct {
	Type      string `json:"type"`      // "immediate", "periodic", "trigger", "special"
	Frequency string `json:"frequency"` // periodic: "daily", "weekly", "monthly"
	Trigger   string `json:"trigger"`   // trigger: "dataUpdate", "threshold"
	Special   string `json:"special"`   // special: "campaign", "postRelease"
}

// Draft is the state of an auto tagging task being configured. Drafts are values:
// Reduce returns a new draft and never modifies the one it was given.
type Draft struct {
	Step           Step      `json:"step"`
	TaskName       string    `json:"task_name"`
	Submitter      string    `json:"submitter"`
	Selection      Selection `json:"selection"`
	TagConfig      TagConfig `json:"tag_config"`
	ProcessingMode string    `json:"processing_mode"` // "complete", "tagOnly", "simulation"
	Schedule       Schedule  `json:"schedule"`
}

// NewDraft returns a draft with the wizard defaults
func NewDraft() Draft {
	return Draft{
		Step: firstStep,
		Selection: Selection{
			ExistingTags: []string{},
			Conditions:   []Condition{},
		},
		TagConfig: TagConfig{
			TagName:       defaultTagName,
			TagDefinition: defaultTagDefinition,
			Metrics:       []string{},
		},
		ProcessingMode: "complete",
		Schedule: Schedule{
			Type:      "immediate",
			Frequency: "daily",
			Trigger:   "dataUpdate",
			Special:   "campaign",
		},
	}
}

// IsAllTime reports whether the selection covers all content regardless of date
func (d Draft) IsAllTime() bool {
	return d.Selection.TimeWindow.Start == "" && d.Selection.TimeWindow.End == ""
}

// CanSubmit reports whether the draft may be submitted
func (d Draft) CanSubmit() bool {
	return d.Step == lastStep && d.TaskName != "" && d.Submitter != ""
}

// Receipt confirms a submitted task
type Receipt struct {
	TaskName    string    `json:"task_name"`
	Submitter   string    `json:"submitter"`
	SubmittedAt time.Time `json:"submitted_at"`
	Message     string    `json:"message"`
	Description string    `json:"description"`
	Review      Review    `json:"review"`
}

// Submit hands the task off and returns a fresh draft. Nothing is executed or stored.
func Submit(d Draft, now time.Time) (Receipt, Draft, error) {
	if !d.CanSubmit() {
		return Receipt{}, d, ErrNotReady
	}

	receipt := Receipt{
		TaskName:    d.TaskName,
		Submitter:   d.Submitter,
		SubmittedAt: now,
		Message:     "Task created successfully!",
		Description: fmt.Sprintf("%s has been submitted for approval.", d.TaskName),
		Review:      BuildReview(d, now),
	}

	return receipt, NewDraft(), nil
}

// clone copies the slices so an action can modify the result freely
func (d Draft) clone() Draft {
	d.Selection.ExistingTags = append([]string{}, d.Selection.ExistingTags...)
	d.Selection.Conditions = append([]Condition{}, d.Selection.Conditions...)
	d.TagConfig.Metrics = append([]string{}, d.TagConfig.Metrics...)
	return d
}

func parseWindow(w models.TimeWindow) error {
	if w.Start == "" && w.End == "" {
		return nil
	}

	start, err := time.Parse(dateLayout, w.Start)
	if err != nil {
		return fmt.Errorf("%w: start %q is not YYYY-MM-DD", ErrInvalidTimeWindow, w.Start)
	}
	end, err := time.Parse(dateLayout, w.End)
	if err != nil {
		return fmt.Errorf("%w: end %q is not YYYY-MM-DD", ErrInvalidTimeWindow, w.End)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end %s is before start %s", ErrInvalidTimeWindow, w.End, w.Start)
	}
	return nil
}
