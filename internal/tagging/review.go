package tagging

import (
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Periodic tasks fire at 09:00 in the location of the reference time.
var frequencySpecs = map[string]string{
	"daily":   "0 9 * * *",
	"weekly":  "0 9 * * MON",
	"monthly": "0 9 1 * *",
}

// Review is the summary shown on the last wizard step
type Review struct {
	TimeRange         string     `json:"time_range"`
	Theme             string     `json:"theme"`
	SelectedTags      string     `json:"selected_tags"`
	MetricsCriteria   string     `json:"metrics_criteria"`
	TagName           string     `json:"tag_name"`
	AssociatedMetrics string     `json:"associated_metrics"`
	ProcessingMode    string     `json:"processing_mode"`
	Schedule          string     `json:"schedule"`
	CronSpec          string     `json:"cron_spec,omitempty"`
	NextRun           *time.Time `json:"next_run,omitempty"`
	Submitter         string     `json:"submitter"`
	CanSubmit         bool       `json:"can_submit"`
}

// ScheduleLabel is the human-readable form of a schedule
func ScheduleLabel(s Schedule) string {
	var l string
	var ok bool
	switch s.Type {
	case "immediate":
		return "One-time"
	case "periodic":
		l, ok = label(frequencyOptions, s.Frequency)
	case "trigger":
		l, ok = label(triggerOptions, s.Trigger)
	case "special":
		l, ok = label(specialOptions, s.Special)
	}
	if !ok {
		return s.Type
	}
	return l
}

// CronSpec returns the standard cron expression for a periodic schedule
func CronSpec(s Schedule) (string, bool) {
	if s.Type != "periodic" {
		return "", false
	}
	spec, ok := frequencySpecs[s.Frequency]
	return spec, ok
}

// NextRun returns when a periodic schedule would next fire after now
func NextRun(s Schedule, now time.Time) (time.Time, bool) {
	spec, ok := CronSpec(s)
	if !ok {
		return time.Time{}, false
	}

	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return time.Time{}, false
	}
	return schedule.Next(now), true
}

// BuildReview summarises a draft
func BuildReview(d Draft, now time.Time) Review {
	review := Review{
		TimeRange:         orDefault(d.Selection.TimeWindow.Start, "Not set") + " to " + orDefault(d.Selection.TimeWindow.End, "Not set"),
		Theme:             "Not selected",
		SelectedTags:      "None",
		MetricsCriteria:   "None",
		TagName:           orDefault(d.TagConfig.TagName, "Not set"),
		AssociatedMetrics: "None",
		ProcessingMode:    d.ProcessingMode,
		Schedule:          ScheduleLabel(d.Schedule),
		Submitter:         orDefault(d.Submitter, "Not provided"),
		CanSubmit:         d.CanSubmit(),
	}

	if l, ok := label(themeOptions, d.Selection.Theme); ok {
		review.Theme = l
	}

	if len(d.Selection.ExistingTags) > 0 {
		tags := make([]string, 0, len(d.Selection.ExistingTags))
		for _, t := range d.Selection.ExistingTags {
			tags = append(tags, labelOr(existingTagOptions, t))
		}
		review.SelectedTags = strings.Join(tags, ", ")
	}

	if len(d.Selection.Conditions) > 0 {
		conditions := make([]string, 0, len(d.Selection.Conditions))
		for _, c := range d.Selection.Conditions {
			conditions = append(conditions, c.Display)
		}
		review.MetricsCriteria = strings.Join(conditions, ", ")
	}

	if len(d.TagConfig.Metrics) > 0 {
		metrics := make([]string, 0, len(d.TagConfig.Metrics))
		for _, id := range d.TagConfig.Metrics {
			if m, ok := LookupMetric(id); ok {
				metrics = append(metrics, m.Label)
			} else {
				metrics = append(metrics, id)
			}
		}
		review.AssociatedMetrics = strings.Join(metrics, ", ")
	}

	if l, ok := label(processingModeOptions, d.ProcessingMode); ok {
		review.ProcessingMode = l
	}

	if spec, ok := CronSpec(d.Schedule); ok {
		review.CronSpec = spec
		if next, ok := NextRun(d.Schedule, now); ok {
			review.NextRun = &next
		}
	}

	return review
}

func labelOr(options []Option, value string) string {
	if l, ok := label(options, value); ok {
		return l
	}
	return value
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
