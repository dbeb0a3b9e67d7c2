package tagging

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/artefact/buzz-dashboard/internal/models"
)

// ErrUnknownAction is returned when a draft action type is not recognised
var ErrUnknownAction = errors.New("unknown draft action")

// Action is a change to a draft, applied with Reduce
type Action interface {
	apply(d Draft, now time.Time) (Draft, error)
}

type (
	Next     struct{}
	Previous struct{}

	SetAllTime            struct{ Enabled bool }
	SetTimeWindow         struct{ Start, End string }
	SetSelectionTheme     struct{ Value string }
	AddExistingTag        struct{ Value string }
	RemoveExistingTag     struct{ Value string }
	AddMetricCondition    struct{ MetricID, Operator, Value string }
	RemoveMetricCondition struct{ ID string }

	SetTagTheme      struct{ Value string }
	SetTagName       struct{ Value string }
	SetTagDefinition struct{ Value string }
	ToggleTagMetric  struct{ Value string }

	SetProcessingMode struct{ Value string }
	SetSchedule       struct{ Type, Frequency, Trigger, Special string }

	SetTaskName  struct{ Value string }
	SetSubmitter struct{ Value string }
)

// Reduce returns the draft produced by applying action to d. On error d is returned unchanged.
func Reduce(d Draft, action Action, now time.Time) (Draft, error) {
	next, err := action.apply(d.clone(), now)
	if err != nil {
		return d, err
	}
	return next, nil
}

func (Next) apply(d Draft, _ time.Time) (Draft, error) {
	if d.Step < lastStep {
		d.Step++
	}
	return d, nil
}

func (Previous) apply(d Draft, _ time.Time) (Draft, error) {
	if d.Step > firstStep {
		d.Step--
	}
	return d, nil
}

// Leaving all time seeds the window with the last month.
func (a SetAllTime) apply(d Draft, now time.Time) (Draft, error) {
	if a.Enabled {
		d.Selection.TimeWindow = models.TimeWindow{}
		return d, nil
	}
	if d.IsAllTime() {
		d.Selection.TimeWindow = models.TimeWindow{
			Start: now.AddDate(0, -1, 0).Format(dateLayout),
			End:   now.Format(dateLayout),
		}
	}
	return d, nil
}

func (a SetTimeWindow) apply(d Draft, _ time.Time) (Draft, error) {
	window := models.TimeWindow{Start: a.Start, End: a.End}
	if err := parseWindow(window); err != nil {
		return d, err
	}
	d.Selection.TimeWindow = window
	return d, nil
}

func (a SetSelectionTheme) apply(d Draft, _ time.Time) (Draft, error) {
	if a.Value != "" && !known(themeOptions, a.Value) {
		return d, fmt.Errorf("%w: theme %q", ErrUnknownOption, a.Value)
	}
	d.Selection.Theme = a.Value
	return d, nil
}

func (a AddExistingTag) apply(d Draft, _ time.Time) (Draft, error) {
	if !known(existingTagOptions, a.Value) {
		return d, fmt.Errorf("%w: tag %q", ErrUnknownOption, a.Value)
	}
	for _, t := range d.Selection.ExistingTags {
		if t == a.Value {
			return d, nil
		}
	}
	d.Selection.ExistingTags = append(d.Selection.ExistingTags, a.Value)
	return d, nil
}

func (a RemoveExistingTag) apply(d Draft, _ time.Time) (Draft, error) {
	d.Selection.ExistingTags = removeString(d.Selection.ExistingTags, a.Value)
	return d, nil
}

func (a AddMetricCondition) apply(d Draft, _ time.Time) (Draft, error) {
	conditions, _, err := AddCondition(d.Selection.Conditions, a.MetricID, a.Operator, a.Value)
	if err != nil {
		return d, err
	}
	d.Selection.Conditions = conditions
	return d, nil
}

func (a RemoveMetricCondition) apply(d Draft, _ time.Time) (Draft, error) {
	d.Selection.Conditions = RemoveCondition(d.Selection.Conditions, a.ID)
	return d, nil
}

func (a SetTagTheme) apply(d Draft, _ time.Time) (Draft, error) {
	if a.Value != "" && !known(themeOptions, a.Value) {
		return d, fmt.Errorf("%w: theme %q", ErrUnknownOption, a.Value)
	}
	d.TagConfig.Theme = a.Value
	return d, nil
}

func (a SetTagName) apply(d Draft, _ time.Time) (Draft, error) {
	d.TagConfig.TagName = a.Value
	return d, nil
}

func (a SetTagDefinition) apply(d Draft, _ time.Time) (Draft, error) {
	d.TagConfig.TagDefinition = a.Value
	return d, nil
}

func (a ToggleTagMetric) apply(d Draft, _ time.Time) (Draft, error) {
	if _, ok := LookupMetric(a.Value); !ok {
		return d, fmt.Errorf("%w: %q", ErrUnknownMetric, a.Value)
	}
	for _, m := range d.TagConfig.Metrics {
		if m == a.Value {
			d.TagConfig.Metrics = removeString(d.TagConfig.Metrics, a.Value)
			return d, nil
		}
	}
	d.TagConfig.Metrics = append(d.TagConfig.Metrics, a.Value)
	return d, nil
}

func (a SetProcessingMode) apply(d Draft, _ time.Time) (Draft, error) {
	if !known(processingModeOptions, a.Value) {
		return d, fmt.Errorf("%w: processing mode %q", ErrUnknownOption, a.Value)
	}
	d.ProcessingMode = a.Value
	return d, nil
}

// Empty fields keep their current value, so switching tabs keeps each tab's choice.
func (a SetSchedule) apply(d Draft, _ time.Time) (Draft, error) {
	fields := []struct {
		value   string
		options []Option
		target  *string
		name    string
	}{
		{a.Type, scheduleTypeOptions, &d.Schedule.Type, "schedule type"},
		{a.Frequency, frequencyOptions, &d.Schedule.Frequency, "frequency"},
		{a.Trigger, triggerOptions, &d.Schedule.Trigger, "trigger"},
		{a.Special, specialOptions, &d.Schedule.Special, "special period"},
	}

	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if !known(f.options, f.value) {
			return d, fmt.Errorf("%w: %s %q", ErrUnknownOption, f.name, f.value)
		}
		*f.target = f.value
	}
	return d, nil
}

func (a SetTaskName) apply(d Draft, _ time.Time) (Draft, error) {
	d.TaskName = a.Value
	return d, nil
}

func (a SetSubmitter) apply(d Draft, _ time.Time) (Draft, error) {
	d.Submitter = a.Value
	return d, nil
}

// ActionRequest is the wire form of a draft action
type ActionRequest struct {
	Type      string `json:"type"`
	Value     string `json:"value,omitempty"`
	Enabled   bool   `json:"enabled,omitempty"`
	Start     string `json:"start,omitempty"`
	End       string `json:"end,omitempty"`
	MetricID  string `json:"metric_id,omitempty"`
	Operator  string `json:"operator,omitempty"`
	ID        string `json:"id,omitempty"`
	Frequency string `json:"frequency,omitempty"`
	Trigger   string `json:"trigger,omitempty"`
	Special   string `json:"special,omitempty"`
}

// ParseAction turns a wire action into an Action
func ParseAction(req ActionRequest) (Action, error) {
	switch strings.ToLower(req.Type) {
	case "next":
		return Next{}, nil
	case "previous":
		return Previous{}, nil
	case "set_all_time":
		return SetAllTime{Enabled: req.Enabled}, nil
	case "set_time_window":
		return SetTimeWindow{Start: req.Start, End: req.End}, nil
	case "set_selection_theme":
		return SetSelectionTheme{Value: req.Value}, nil
	case "add_existing_tag":
		return AddExistingTag{Value: req.Value}, nil
	case "remove_existing_tag":
		return RemoveExistingTag{Value: req.Value}, nil
	case "add_condition":
		return AddMetricCondition{MetricID: req.MetricID, Operator: req.Operator, Value: req.Value}, nil
	case "remove_condition":
		return RemoveMetricCondition{ID: req.ID}, nil
	case "set_tag_theme":
		return SetTagTheme{Value: req.Value}, nil
	case "set_tag_name":
		return SetTagName{Value: req.Value}, nil
	case "set_tag_definition":
		return SetTagDefinition{Value: req.Value}, nil
	case "toggle_tag_metric":
		return ToggleTagMetric{Value: req.Value}, nil
	case "set_processing_mode":
		return SetProcessingMode{Value: req.Value}, nil
	case "set_schedule":
		return SetSchedule{Type: req.Value, Frequency: req.Frequency, Trigger: req.Trigger, Special: req.Special}, nil
	case "set_task_name":
		return SetTaskName{Value: req.Value}, nil
	case "set_submitter":
		return SetSubmitter{Value: req.Value}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, req.Type)
	}
}

func removeString(values []string, target string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != target {
			out = append(out, v)
		}
	}
	return out
}
