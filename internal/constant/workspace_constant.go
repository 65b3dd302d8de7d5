package constant

// Insight generation categories accepted by the insights endpoint.
const (
	InsightComprehensive  = "comprehensive"
	InsightTakeaways      = "takeaways"
	InsightExamples       = "examples"
	InsightContradictions = "contradictions"
)

// InsightTypes is the closed set a submission is validated against.
var InsightTypes = []string{
	InsightComprehensive,
	InsightTakeaways,
	InsightExamples,
	InsightContradictions,
}

// Audio overview categories accepted by the audio-overview endpoint.
const (
	AudioOverview = "overview"
	AudioPodcast  = "podcast"
)

// AudioTypes is the closed set a submission is validated against.
var AudioTypes = []string{
	AudioOverview,
	AudioPodcast,
}

// Structural markers identifying the floating panel roots. A pointer press
// whose marker chain contains neither closes the contextual-action panel.
const (
	MarkerContextualPanel = "show-options-button"
	MarkerSearchPanel     = "connect-dots-button"
)

// Panel kinds owned by the widget session store.
const (
	PanelSearch     = "search"
	PanelContextual = "contextual"
	PanelInsight    = "insight"
	PanelAudio      = "audio"
)
