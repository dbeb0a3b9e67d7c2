package library

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ErrUnknownAction is returned when a criteria action type is not recognised
var ErrUnknownAction = errors.New("unknown criteria action")

// Criteria is the current filter selection of the data library
type Criteria struct {
	Search    string `json:"search"`
	Game      string `json:"game"`
	Platform  string `json:"platform"`
	Theme     string `json:"theme"`
	Tag       string `json:"tag"`
	Sentiment string `json:"sentiment"`
	DateRange string `json:"date_range"` // "all", "7days", "30days", "90days"
}

// DefaultCriteria returns criteria with every filter disabled
func DefaultCriteria() Criteria {
	return Criteria{
		Game:      All,
		Platform:  All,
		Theme:     All,
		Tag:       All,
		Sentiment: All,
		DateRange: All,
	}
}

// CriteriaFromQuery builds criteria from URL query parameters. Missing parameters default to "all".
// Values are taken as given; catalog corrections only happen through Reduce.
func CriteriaFromQuery(q url.Values) Criteria {
	c := DefaultCriteria()
	c.Search = q.Get("search")
	c.Game = queryOrAll(q, "game")
	c.Platform = queryOrAll(q, "platform")
	c.Theme = queryOrAll(q, "theme")
	c.Tag = queryOrAll(q, "tag")
	c.Sentiment = queryOrAll(q, "sentiment")
	c.DateRange = queryOrAll(q, "date_range")
	return c
}

func queryOrAll(q url.Values, key string) string {
	if v := q.Get(key); v != "" {
		return v
	}
	return All
}

// Cutoff returns the earliest publish time admitted by the date range.
// ok is false when the range does not restrict dates.
func (c Criteria) Cutoff(now time.Time) (cutoff time.Time, ok bool) {
	days, ok := dateRangeDays[c.DateRange]
	if !ok {
		return time.Time{}, false
	}
	return now.AddDate(0, 0, -days), true
}

// ActiveFilter is a removable chip shown above the comment list
type ActiveFilter struct {
	Label string `json:"label"`
	Field string `json:"field"`
}

// ActiveFilters lists the filters currently restricting the comment list
func (c Criteria) ActiveFilters() []ActiveFilter {
	var filters []ActiveFilter

	if c.Game != "" && c.Game != All {
		filters = append(filters, ActiveFilter{Label: "Game: " + optionLabel(gameOptions, c.Game), Field: "game"})
	}
	if c.Platform != "" && c.Platform != All {
		filters = append(filters, ActiveFilter{Label: "Platform: " + optionLabel(platformOptions, c.Platform), Field: "platform"})
	}
	if c.Theme != "" && c.Theme != All {
		filters = append(filters, ActiveFilter{Label: "Theme: " + optionLabel(themeOptions, c.Theme), Field: "theme"})
	}
	if c.Tag != "" && c.Tag != All {
		filters = append(filters, ActiveFilter{Label: "Tag: " + optionLabel(AvailableTags(c.Theme), c.Tag), Field: "tag"})
	}
	if c.DateRange != "" && c.DateRange != All {
		filters = append(filters, ActiveFilter{Label: "Time: " + optionLabel(dateRangeOptions, c.DateRange), Field: "date_range"})
	}
	if c.Sentiment != "" && c.Sentiment != All {
		filters = append(filters, ActiveFilter{Label: "Sentiment: " + optionLabel(sentimentOptions, c.Sentiment), Field: "sentiment"})
	}
	if c.Search != "" {
		filters = append(filters, ActiveFilter{Label: "Search: " + c.Search, Field: "search"})
	}

	return filters
}

// HasActiveFilters reports whether any filter is restricting the list
func (c Criteria) HasActiveFilters() bool {
	return len(c.ActiveFilters()) > 0
}

// Action is a change to the criteria, applied with Reduce
type Action interface {
	apply(c Criteria) Criteria
}

type (
	SetSearch    struct{ Value string }
	SetGame      struct{ Value string }
	SetPlatform  struct{ Value string }
	SetTheme     struct{ Value string }
	SetTag       struct{ Value string }
	SetSentiment struct{ Value string }
	SetDateRange struct{ Value string }
	ClearFilters struct{}
)

func (a SetSearch) apply(c Criteria) Criteria    { c.Search = a.Value; return c }
func (a SetGame) apply(c Criteria) Criteria      { c.Game = orAll(a.Value); return c }
func (a SetPlatform) apply(c Criteria) Criteria  { c.Platform = orAll(a.Value); return c }
func (a SetSentiment) apply(c Criteria) Criteria { c.Sentiment = orAll(a.Value); return c }
func (a SetDateRange) apply(c Criteria) Criteria { c.DateRange = orAll(a.Value); return c }
func (ClearFilters) apply(Criteria) Criteria     { return DefaultCriteria() }

// A theme change drops a tag the new theme does not offer.
func (a SetTheme) apply(c Criteria) Criteria {
	c.Theme = orAll(a.Value)
	if !IsTagAvailable(c.Theme, c.Tag) {
		c.Tag = All
	}
	return c
}

// A tag outside the current theme's catalog, or any tag while the theme is all, falls back to all.
func (a SetTag) apply(c Criteria) Criteria {
	c.Tag = orAll(a.Value)
	if !IsTagAvailable(c.Theme, c.Tag) {
		c.Tag = All
	}
	return c
}

// Reduce returns the criteria produced by applying action to c. c is not modified.
func Reduce(c Criteria, action Action) Criteria {
	return action.apply(c)
}

// ParseAction turns a wire action ({"type": "set_theme", "value": "ux"}) into an Action
func ParseAction(kind, value string) (Action, error) {
	switch strings.ToLower(kind) {
	case "set_search":
		return SetSearch{Value: value}, nil
	case "set_game":
		return SetGame{Value: value}, nil
	case "set_platform":
		return SetPlatform{Value: value}, nil
	case "set_theme":
		return SetTheme{Value: value}, nil
	case "set_tag":
		return SetTag{Value: value}, nil
	case "set_sentiment":
		return SetSentiment{Value: value}, nil
	case "set_date_range":
		return SetDateRange{Value: value}, nil
	case "clear_filters":
		return ClearFilters{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, kind)
	}
}

func orAll(v string) string {
	if v == "" {
		return All
	}
	return v
}
