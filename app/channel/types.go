package channel

const TypeOPML = "opml"

type Config struct {
	Name       string         // Derived from filename (without .yml extension)
	Title      string         `yaml:"title"`
	Type       string         `yaml:"type"`
	CatalogURL string         `yaml:"catalog_url"`
	Settings   ConfigSettings `yaml:"settings"`
}

type ConfigSettings struct {
	Enabled bool `yaml:"enabled"`
	Timeout int  `yaml:"timeout"` // seconds
}
