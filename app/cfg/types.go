package cfg

type Cfg struct {
	// Hosted data service
	DataServiceURL string
	DataServiceKey string

	// Application configuration
	Port              string
	BaseUrl           string
	WorkerCount       int
	RefreshInterval   int
	BoardTickInterval int
	APIAccessKey      string
	PinnedSlug        string

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
