package config

import "fmt"

// Template 帖子模板，只决定四个文案字段的默认值。
type Template struct {
	Key         string
	Headline    string
	Subheadline string
	Body        string
	CTA         string
}

var templates = []Template{
	{
		Key:         "announcement",
		Headline:    "Big News!",
		Subheadline: "Glid is launching in 2026",
		Body:        `The app that turns "anyone free?" into game time.`,
		CTA:         "Join the waitlist at glid-app.com",
	},
	{
		Key:         "feature",
		Headline:    "Find Games Near You",
		Subheadline: "Real-time sports sessions on your map",
		Body:        "Tennis at the park. Basketball downtown. Pickleball at noon.",
		CTA:         "Coming soon",
	},
	{
		Key:      "quote",
		Headline: `"Stop Planning, Just Play"`,
		Body:     "Finding people to play with shouldn't be harder than the game itself.",
		CTA:      "glid-app.com",
	},
	{
		Key:         "stats",
		Headline:    "2 Ratings",
		Subheadline: "Zero Guesswork",
		Body:        "Match Score for skill. Vibes Score for reliability. Every game counts.",
		CTA:         "Learn more at glid-app.com",
	},
	{
		Key:         "cta",
		Headline:    "Ready to Play?",
		Subheadline: "Join the waitlist",
		Body:        "Be first on the field when Glid launches in your city.",
		CTA:         "glid-app.com",
	},
}

// DefaultTemplate 会话开始时使用的模板。
const DefaultTemplate = "announcement"

// Templates 返回全部模板（按展示顺序）。
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// LookupTemplate 按键名查找模板。
func LookupTemplate(key string) (Template, error) {
	for _, t := range templates {
		if t.Key == key {
			return t, nil
		}
	}
	return Template{}, fmt.Errorf("未知的模板：%s", key)
}
