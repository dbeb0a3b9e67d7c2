package library

// All is the sentinel value that disables a filter
const All = "all"

// Option is a selectable value in the filter bar
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var allTags = Option{Value: All, Label: "All Tags"}

var gameOptions = []Option{
	{Value: All, Label: "All Games"},
	{Value: "Tom Clancy's Rainbow Six Siege", Label: "Rainbow Six Siege"},
	{Value: "Watch Dogs: Legion", Label: "Watch Dogs: Legion"},
	{Value: "Assassin's Creed Valhalla", Label: "Assassin's Creed Valhalla"},
}

var platformOptions = []Option{
	{Value: All, Label: "All Platforms"},
	{Value: "Steam", Label: "Steam"},
	{Value: "RedBook", Label: "RedBook"},
	{Value: "Bilibili", Label: "Bilibili"},
}

var themeOptions = []Option{
	{Value: All, Label: "All Themes"},
	{Value: "story", Label: "Story"},
	{Value: "ux", Label: "User Experience"},
	{Value: "risk", Label: "Risk"},
}

var tagOptionsByTheme = map[string][]Option{
	"story": {
		allTags,
		{Value: "#OperatorBackground", Label: "Operator Background"},
		{Value: "#LoreExpansion", Label: "Lore Expansion"},
		{Value: "#MissionVariety", Label: "Mission Variety"},
		{Value: "#EventNarratives", Label: "Event Narratives"},
		{Value: "#WorldBuilding", Label: "World Building"},
		{Value: "#VillainQuality", Label: "Villain Quality"},
		{Value: "#ContentRepetition", Label: "Content Repetition"},
		{Value: "#StoryPacing", Label: "Story Pacing"},
	},
	"ux": {
		allTags,
		{Value: "#HitRegistration", Label: "Hit Registration"},
		{Value: "#MatchmakingTime", Label: "Matchmaking Time"},
		{Value: "#WeaponFeel", Label: "Weapon Feel"},
		{Value: "#OpenWorldNavigation", Label: "Open World Navigation"},
		{Value: "#WorldDesign", Label: "World Design"},
		{Value: "#CraftingSystem", Label: "Crafting System"},
		{Value: "#MenuDesign", Label: "Menu Design"},
		{Value: "#UIClarity", Label: "UI Clarity"},
	},
	"risk": {
		allTags,
		{Value: "#BalanceIssues", Label: "Balance Issues"},
		{Value: "#Cheaters", Label: "Cheaters"},
		{Value: "#TechnicalDebt", Label: "Technical Debt"},
		{Value: "#QuestBugs", Label: "Quest Bugs"},
		{Value: "#AIGlitches", Label: "AI Glitches"},
		{Value: "#SaveCorruption", Label: "Save Corruption"},
		{Value: "#ServerIssues", Label: "Server Issues"},
		{Value: "#FrameRateIssues", Label: "Frame Rate Issues"},
	},
}

var dateRangeOptions = []Option{
	{Value: All, Label: "All Time"},
	{Value: "7days", Label: "Last 7 Days"},
	{Value: "30days", Label: "Last 30 Days"},
	{Value: "90days", Label: "Last 90 Days"},
}

var dateRangeDays = map[string]int{
	"7days":  7,
	"30days": 30,
	"90days": 90,
}

var sentimentOptions = []Option{
	{Value: All, Label: "All Sentiments"},
	{Value: "Positive", Label: "Positive"},
	{Value: "Negative", Label: "Negative"},
	{Value: "Mixed", Label: "Mixed"},
	{Value: "Neutral", Label: "Neutral"},
}

// FilterOptions is everything the filter bar needs to render its selects
type FilterOptions struct {
	Games      []Option `json:"games"`
	Platforms  []Option `json:"platforms"`
	Themes     []Option `json:"themes"`
	Tags       []Option `json:"tags"`
	DateRanges []Option `json:"date_ranges"`
	Sentiments []Option `json:"sentiments"`
}

// AvailableTags returns the tag options for a theme.
// "all" and unknown themes only offer the "all" sentinel.
func AvailableTags(theme string) []Option {
	tags, ok := tagOptionsByTheme[theme]
	if theme == All || !ok {
		return []Option{allTags}
	}
	return copyOptions(tags)
}

// IsTagAvailable reports whether tag can be selected under theme
func IsTagAvailable(theme, tag string) bool {
	for _, opt := range AvailableTags(theme) {
		if opt.Value == tag {
			return true
		}
	}
	return false
}

// Options returns the filter bar catalog with tags resolved for theme
func Options(theme string) FilterOptions {
	return FilterOptions{
		Games:      copyOptions(gameOptions),
		Platforms:  copyOptions(platformOptions),
		Themes:     copyOptions(themeOptions),
		Tags:       AvailableTags(theme),
		DateRanges: copyOptions(dateRangeOptions),
		Sentiments: copyOptions(sentimentOptions),
	}
}

// optionLabel falls back to the raw value for values outside the catalog
func optionLabel(options []Option, value string) string {
	for _, opt := range options {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}

func copyOptions(options []Option) []Option {
	out := make([]Option, len(options))
	copy(out, options)
	return out
}
