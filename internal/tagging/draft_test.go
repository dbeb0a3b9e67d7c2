package tagging

import (
	"testing"
	"time"

	"github.com/artefact/buzz-dashboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 30, 12, 0, 0, 0, time.UTC)

func reduceAll(t *testing.T, d Draft, actions ...Action) Draft {
	t.Helper()
	for _, a := range actions {
		var err error
		d, err = Reduce(d, a, testNow)
		require.NoError(t, err, "%T", a)
	}
	return d
}

func TestNewDraft_Defaults(t *testing.T) {
	d := NewDraft()

	assert.Equal(t, ContentSelection, d.Step)
	assert.Equal(t, "#BalanceIssues", d.TagConfig.TagName)
	assert.Contains(t, d.TagConfig.TagDefinition, "perceived imbalances")
	assert.Equal(t, "complete", d.ProcessingMode)
	assert.Equal(t, Schedule{Type: "immediate", Frequency: "daily", Trigger: "dataUpdate", Special: "campaign"}, d.Schedule)
	assert.True(t, d.IsAllTime())
	assert.False(t, d.CanSubmit())
}

func TestReduce_StepBoundaries(t *testing.T) {
	d := NewDraft()

	d = reduceAll(t, d, Previous{})
	assert.Equal(t, ContentSelection, d.Step, "previous at step 1 stays at step 1")

	d = reduceAll(t, d, Next{}, Next{}, Next{}, Next{})
	assert.Equal(t, ReviewAndSubmit, d.Step)

	d = reduceAll(t, d, Next{})
	assert.Equal(t, ReviewAndSubmit, d.Step, "next at step 5 stays at step 5")

	d = reduceAll(t, d, Previous{})
	assert.Equal(t, ExecutionSchedule, d.Step)
}

func TestStep_String(t *testing.T) {
	assert.Equal(t, "Content Selection", ContentSelection.String())
	assert.Equal(t, "Review & Submit", ReviewAndSubmit.String())
	assert.Equal(t, "Step(9)", Step(9).String())
}

func TestReduce_AllTimeToggle(t *testing.T) {
	// One month before March 30 normalises to March 2
	d := reduceAll(t, NewDraft(), SetAllTime{Enabled: false})
	assert.Equal(t, models.TimeWindow{Start: "2025-03-02", End: "2025-03-30"}, d.Selection.TimeWindow)
	assert.False(t, d.IsAllTime())

	d = reduceAll(t, d, SetTimeWindow{Start: "2025-01-01", End: "2025-01-31"})
	d = reduceAll(t, d, SetAllTime{Enabled: false})
	assert.Equal(t, "2025-01-01", d.Selection.TimeWindow.Start, "custom window is kept")

	d = reduceAll(t, d, SetAllTime{Enabled: true})
	assert.True(t, d.IsAllTime())
}

func TestReduce_TimeWindowValidation(t *testing.T) {
	d := NewDraft()

	_, err := Reduce(d, SetTimeWindow{Start: "2025-03-01", End: "2025-02-01"}, testNow)
	assert.ErrorIs(t, err, ErrInvalidTimeWindow)

	_, err = Reduce(d, SetTimeWindow{Start: "03/01/2025", End: "2025-04-01"}, testNow)
	assert.ErrorIs(t, err, ErrInvalidTimeWindow)

	next, err := Reduce(d, SetTimeWindow{}, testNow)
	require.NoError(t, err)
	assert.True(t, next.IsAllTime())
}

func TestReduce_Selection(t *testing.T) {
	d := reduceAll(t, NewDraft(),
		SetSelectionTheme{Value: "risk"},
		AddExistingTag{Value: "serverLag"},
		AddExistingTag{Value: "questBugs"},
		AddExistingTag{Value: "serverLag"},
	)
	assert.Equal(t, "risk", d.Selection.Theme)
	assert.Equal(t, []string{"serverLag", "questBugs"}, d.Selection.ExistingTags)

	d = reduceAll(t, d, RemoveExistingTag{Value: "serverLag"}, RemoveExistingTag{Value: "absent"})
	assert.Equal(t, []string{"questBugs"}, d.Selection.ExistingTags)

	_, err := Reduce(d, AddExistingTag{Value: "#NotInCatalog"}, testNow)
	assert.ErrorIs(t, err, ErrUnknownOption)

	_, err = Reduce(d, SetSelectionTheme{Value: "music"}, testNow)
	assert.ErrorIs(t, err, ErrUnknownOption)
}

func TestReduce_Conditions(t *testing.T) {
	d := reduceAll(t, NewDraft(),
		AddMetricCondition{MetricID: "sentiment_score", Operator: "gt", Value: "0.7"},
		AddMetricCondition{MetricID: "keywords", Operator: "contains", Value: "lag"},
	)
	require.Len(t, d.Selection.Conditions, 2)
	assert.Equal(t, "Sentiment Score > 0.7", d.Selection.Conditions[0].Display)

	failed, err := Reduce(d, AddMetricCondition{MetricID: "sentiment_score", Operator: "gt"}, testNow)
	assert.ErrorIs(t, err, ErrIncompleteCondition)
	assert.Equal(t, d, failed, "failed action leaves the draft unchanged")

	removed := reduceAll(t, d, RemoveMetricCondition{ID: d.Selection.Conditions[0].ID})
	require.Len(t, removed.Selection.Conditions, 1)
	assert.Equal(t, d.Selection.Conditions[1], removed.Selection.Conditions[0])
	assert.Len(t, d.Selection.Conditions, 2, "previous draft is untouched")
}

func TestReduce_DoesNotShareSlices(t *testing.T) {
	base := reduceAll(t, NewDraft(), AddExistingTag{Value: "serverLag"}, ToggleTagMetric{Value: "keywords"})

	a := reduceAll(t, base, AddExistingTag{Value: "questBugs"})
	b := reduceAll(t, base, AddExistingTag{Value: "balanceIssues"})

	assert.Equal(t, []string{"serverLag"}, base.Selection.ExistingTags)
	assert.Equal(t, []string{"serverLag", "questBugs"}, a.Selection.ExistingTags)
	assert.Equal(t, []string{"serverLag", "balanceIssues"}, b.Selection.ExistingTags)
}

func TestReduce_TagConfig(t *testing.T) {
	d := reduceAll(t, NewDraft(),
		SetTagTheme{Value: "ux"},
		SetTagName{Value: "#MatchmakingTime"},
		SetTagDefinition{Value: "Time spent waiting for a match"},
		ToggleTagMetric{Value: "sentiment_score"},
		ToggleTagMetric{Value: "keywords"},
		ToggleTagMetric{Value: "sentiment_score"},
	)

	assert.Equal(t, TagConfig{
		Theme:         "ux",
		TagName:       "#MatchmakingTime",
		TagDefinition: "Time spent waiting for a match",
		Metrics:       []string{"keywords"},
	}, d.TagConfig)

	_, err := Reduce(d, ToggleTagMetric{Value: "likes"}, testNow)
	assert.ErrorIs(t, err, ErrUnknownMetric)
}

func TestReduce_ProcessingModeAndSchedule(t *testing.T) {
	d := reduceAll(t, NewDraft(),
		SetProcessingMode{Value: "simulation"},
		SetSchedule{Type: "periodic", Frequency: "weekly"},
		SetSchedule{Type: "trigger", Trigger: "threshold"},
	)

	assert.Equal(t, "simulation", d.ProcessingMode)
	assert.Equal(t, Schedule{Type: "trigger", Frequency: "weekly", Trigger: "threshold", Special: "campaign"}, d.Schedule)

	_, err := Reduce(d, SetProcessingMode{Value: "turbo"}, testNow)
	assert.ErrorIs(t, err, ErrUnknownOption)

	_, err = Reduce(d, SetSchedule{Frequency: "hourly"}, testNow)
	assert.ErrorIs(t, err, ErrUnknownOption)
}

func TestSubmit(t *testing.T) {
	d := reduceAll(t, NewDraft(), Next{}, Next{}, Next{}, Next{}, SetTaskName{Value: "#ServerLag - Siege"})

	_, same, err := Submit(d, testNow)
	assert.ErrorIs(t, err, ErrNotReady, "submitter missing")
	assert.Equal(t, d, same)

	d = reduceAll(t, d, SetSubmitter{Value: "example@artefact.com"})
	assert.True(t, d.CanSubmit())

	receipt, reset, err := Submit(d, testNow)
	require.NoError(t, err)
	assert.Equal(t, "Task created successfully!", receipt.Message)
	assert.Equal(t, "#ServerLag - Siege has been submitted for approval.", receipt.Description)
	assert.Equal(t, NewDraft(), reset)
}

func TestSubmit_OnlyOnReviewStep(t *testing.T) {
	d := reduceAll(t, NewDraft(), SetTaskName{Value: "Task"}, SetSubmitter{Value: "me"})
	assert.False(t, d.CanSubmit())

	_, _, err := Submit(d, testNow)
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		req      ActionRequest
		expected Action
	}{
		{ActionRequest{Type: "next"}, Next{}},
		{ActionRequest{Type: "PREVIOUS"}, Previous{}},
		{ActionRequest{Type: "set_all_time", Enabled: true}, SetAllTime{Enabled: true}},
		{ActionRequest{Type: "set_time_window", Start: "2025-01-01", End: "2025-02-01"}, SetTimeWindow{Start: "2025-01-01", End: "2025-02-01"}},
		{ActionRequest{Type: "add_condition", MetricID: "keywords", Operator: "eq", Value: "x"}, AddMetricCondition{MetricID: "keywords", Operator: "eq", Value: "x"}},
		{ActionRequest{Type: "remove_condition", ID: "condition-1"}, RemoveMetricCondition{ID: "condition-1"}},
		{ActionRequest{Type: "set_schedule", Value: "special", Special: "postRelease"}, SetSchedule{Type: "special", Special: "postRelease"}},
		{ActionRequest{Type: "set_submitter", Value: "me"}, SetSubmitter{Value: "me"}},
	}

	for _, tt := range tests {
		t.Run(tt.req.Type, func(t *testing.T) {
			action, err := ParseAction(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, action)
		})
	}

	_, err := ParseAction(ActionRequest{Type: "launch"})
	assert.ErrorIs(t, err, ErrUnknownAction)
}
