package content

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed site.yml
var siteYML []byte

// Contact is a static site contact entry, searchable alongside the dynamic
// sections.
type Contact struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
	Href  string `json:"href" yaml:"href"`
}

// Site is the static site configuration compiled into the binary.
type Site struct {
	PresentationArticleID string    `yaml:"presentation_article_id"`
	Contacts              []Contact `yaml:"contacts"`
}

// LoadSite parses the embedded site configuration.
func LoadSite() (Site, error) {
	var site Site
	if err := yaml.Unmarshal(siteYML, &site); err != nil {
		return Site{}, fmt.Errorf("parsing site configuration: %w", err)
	}
	return site, nil
}
