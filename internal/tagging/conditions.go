package tagging

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

var (
	ErrIncompleteCondition = errors.New("please select a metric, operator, and value")
	ErrUnknownMetric       = errors.New("unknown metric")
	ErrUnsupportedOperator = errors.New("operator not supported for metric")
	ErrInvalidValue        = errors.New("invalid condition value")
)

// MetricType decides which operators a metric offers
type MetricType string

const (
	NumberMetric MetricType = "number"
	TextMetric   MetricType = "text"
	SelectMetric MetricType = "select"
)

// Metric is a content attribute a condition can compare against
type Metric struct {
	ID      string     `json:"id"`
	Label   string     `json:"label"`
	Type    MetricType `json:"type"`
	Options []string   `json:"options,omitempty"`
}

// Operator is a comparison offered for a metric type
type Operator struct {
	Value  string `json:"value"`
	Symbol string `json:"symbol"`
}

var metricCatalog = []Metric{
	{ID: "sentiment_score", Label: "Sentiment Score", Type: NumberMetric},
	{ID: "sentiment_label", Label: "Sentiment Label", Type: SelectMetric, Options: []string{"Positive", "Neutral", "Negative"}},
	{ID: "keywords", Label: "Keywords", Type: TextMetric},
	{ID: "engagement_rate", Label: "Engagement Rate", Type: NumberMetric},
}

var operatorSymbols = map[string]string{
	"eq":           "=",
	"neq":          "≠",
	"gt":           ">",
	"gte":          "≥",
	"lt":           "<",
	"lte":          "≤",
	"contains":     "contains",
	"not_contains": "doesn't contain",
	"starts_with":  "starts with",
	"ends_with":    "ends with",
}

var operatorsByType = map[MetricType][]string{
	NumberMetric: {"eq", "neq", "gt", "gte", "lt", "lte"},
	TextMetric:   {"eq", "neq", "contains", "not_contains", "starts_with", "ends_with"},
	SelectMetric: {"eq", "neq"},
}

// Condition is a metric comparison in the content selection step.
// Conditions are collected but never evaluated.
type Condition struct {
	ID         string `json:"id"`
	MetricID   string `json:"metric_id"`
	MetricName string `json:"metric_name"`
	Operator   string `json:"operator"`
	Value      string `json:"value"`
	Display    string `json:"display"`
}

// newConditionID is swapped in tests
var newConditionID = func() string {
	return "condition-" + uuid.NewString()
}

// Metrics returns the metric catalog
func Metrics() []Metric {
	out := make([]Metric, len(metricCatalog))
	for i, m := range metricCatalog {
		m.Options = append([]string(nil), m.Options...)
		out[i] = m
	}
	return out
}

// LookupMetric finds a metric by ID
func LookupMetric(id string) (Metric, bool) {
	for _, m := range metricCatalog {
		if m.ID == id {
			return m, true
		}
	}
	return Metric{}, false
}

// OperatorsFor returns the operators offered for a metric
func OperatorsFor(metricID string) ([]Operator, error) {
	metric, ok := LookupMetric(metricID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, metricID)
	}

	values := operatorsByType[metric.Type]
	ops := make([]Operator, 0, len(values))
	for _, v := range values {
		ops = append(ops, Operator{Value: v, Symbol: OperatorSymbol(v)})
	}
	return ops, nil
}

// OperatorSymbol returns the display form of an operator, or the operator itself when unknown
func OperatorSymbol(op string) string {
	if symbol, ok := operatorSymbols[op]; ok {
		return symbol
	}
	return op
}

// NewCondition validates the inputs and builds a condition with a fresh ID.
// It fails with ErrIncompleteCondition when any input is unset, ErrUnknownMetric for a metric
// outside the catalog, ErrUnsupportedOperator when the metric type does not offer the operator,
// and ErrInvalidValue when a number metric gets a value that does not parse as a number.
// "0" is a valid value. Select metrics accept any value.
func NewCondition(metricID, operator, value string) (Condition, error) {
	if metricID == "" || operator == "" || value == "" {
		return Condition{}, ErrIncompleteCondition
	}

	metric, ok := LookupMetric(metricID)
	if !ok {
		return Condition{}, fmt.Errorf("%w: %q", ErrUnknownMetric, metricID)
	}

	if !supports(metric.Type, operator) {
		return Condition{}, fmt.Errorf("%w: %s %s", ErrUnsupportedOperator, metric.Label, operator)
	}

	if metric.Type == NumberMetric {
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return Condition{}, fmt.Errorf("%w: %s expects a number, got %q", ErrInvalidValue, metric.Label, value)
		}
	}

	return Condition{
		ID:         newConditionID(),
		MetricID:   metric.ID,
		MetricName: metric.Label,
		Operator:   operator,
		Value:      value,
		Display:    fmt.Sprintf("%s %s %s", metric.Label, OperatorSymbol(operator), value),
	}, nil
}

// AddCondition returns a new list with the condition appended. conditions is not modified.
func AddCondition(conditions []Condition, metricID, operator, value string) ([]Condition, Condition, error) {
	condition, err := NewCondition(metricID, operator, value)
	if err != nil {
		return conditions, Condition{}, err
	}

	out := make([]Condition, 0, len(conditions)+1)
	out = append(out, conditions...)
	out = append(out, condition)
	return out, condition, nil
}

// RemoveCondition returns a new list without the condition with id. Removing an absent id is a no-op.
func RemoveCondition(conditions []Condition, id string) []Condition {
	out := make([]Condition, 0, len(conditions))
	for _, c := range conditions {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

func supports(t MetricType, operator string) bool {
	for _, op := range operatorsByType[t] {
		if op == operator {
			return true
		}
	}
	return false
}
