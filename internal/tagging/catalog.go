package tagging

// Option is a selectable wizard value
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var themeOptions = []Option{
	{Value: "ux", Label: "User Experience (UX)"},
	{Value: "gameplay", Label: "Gameplay"},
	{Value: "story", Label: "Story & Narrative"},
	{Value: "risk", Label: "Risk Issues"},
}

var existingTagOptions = []Option{
	{Value: "balanceIssues", Label: "#BalanceIssues"},
	{Value: "matchmakingTime", Label: "#MatchmakingTime"},
	{Value: "serverLag", Label: "#ServerLag"},
	{Value: "operatorBackground", Label: "#OperatorBackground"},
	{Value: "questBugs", Label: "#QuestBugs"},
}

var processingModeOptions = []Option{
	{Value: "complete", Label: "Complete Processing"},
	{Value: "tagOnly", Label: "Tag Only"},
	{Value: "simulation", Label: "Simulation"},
}

var scheduleTypeOptions = []Option{
	{Value: "immediate", Label: "Immediate"},
	{Value: "periodic", Label: "Periodic"},
	{Value: "trigger", Label: "Trigger-based"},
	{Value: "special", Label: "Special Period"},
}

var frequencyOptions = []Option{
	{Value: "daily", Label: "Daily"},
	{Value: "weekly", Label: "Weekly"},
	{Value: "monthly", Label: "Monthly"},
}

var triggerOptions = []Option{
	{Value: "dataUpdate", Label: "On Data Update"},
	{Value: "threshold", Label: "On Threshold"},
}

var specialOptions = []Option{
	{Value: "campaign", Label: "Campaign Period"},
	{Value: "postRelease", Label: "Post-Release Period"},
}

// Catalog is every option the wizard offers
type Catalog struct {
	Themes          []Option `json:"themes"`
	ExistingTags    []Option `json:"existing_tags"`
	Metrics         []Metric `json:"metrics"`
	ProcessingModes []Option `json:"processing_modes"`
	ScheduleTypes   []Option `json:"schedule_types"`
	Frequencies     []Option `json:"frequencies"`
	Triggers        []Option `json:"triggers"`
	SpecialPeriods  []Option `json:"special_periods"`
}

// WizardCatalog returns the wizard option catalog
func WizardCatalog() Catalog {
	return Catalog{
		Themes:          append([]Option(nil), themeOptions...),
		ExistingTags:    append([]Option(nil), existingTagOptions...),
		Metrics:         Metrics(),
		ProcessingModes: append([]Option(nil), processingModeOptions...),
		ScheduleTypes:   append([]Option(nil), scheduleTypeOptions...),
		Frequencies:     append([]Option(nil), frequencyOptions...),
		Triggers:        append([]Option(nil), triggerOptions...),
		SpecialPeriods:  append([]Option(nil), specialOptions...),
	}
}

func label(options []Option, value string) (string, bool) {
	for _, opt := range options {
		if opt.Value == value {
			return opt.Label, true
		}
	}
	return "", false
}

func known(options []Option, value string) bool {
	_, ok := label(options, value)
	return ok
}
