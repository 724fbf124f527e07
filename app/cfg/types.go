package cfg

type Cfg struct {
	// Storage
	DBPath string

	// Application configuration
	ChannelsDir  string
	Port         string
	WorkerCount  int
	FetchTimeout int

	// Enrichment collaborator
	EnrichEndpoint    string
	EnrichModel       string
	EnrichAPIKey      string
	EnrichConcurrency int
	EnrichRate        float64
	EnrichTimeout     int
	MaxArticleChars   int

	// One-shot ingestion
	Channel    string
	CatalogURL string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
