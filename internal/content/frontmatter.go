package content

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FrontMatter is the YAML header of a markdown page.
type FrontMatter struct {
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Platforms   []string       `yaml:"platforms"`
	Order       int            `yaml:"order"`
	UpdatedAt   string         `yaml:"updated_at"`
	SEO         FrontMatterSEO `yaml:"seo"`
}

// FrontMatterSEO holds optional head overrides.
type FrontMatterSEO struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	OGImage     string `yaml:"og_image"`
}

// ParseFrontMatter splits a markdown document into its YAML header and body.
// Documents without a leading "---" fence have an empty header.
func ParseFrontMatter(data []byte) (FrontMatter, string, error) {
	fm, body := splitFrontMatter(string(data))
	front := FrontMatter{}
	if strings.TrimSpace(fm) == "" {
		return front, body, nil
	}
	if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
		return FrontMatter{}, "", fmt.Errorf("content: parse front matter: %w", err)
	}
	front.Title = strings.TrimSpace(front.Title)
	front.Description = strings.TrimSpace(front.Description)
	platforms := front.Platforms[:0]
	for _, p := range front.Platforms {
		if p = strings.TrimSpace(p); p != "" {
			platforms = append(platforms, p)
		}
	}
	front.Platforms = platforms
	return front, body, nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006/01/02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
