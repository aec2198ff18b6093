package models

import "time"

// Topic is a bilingual exploration subject with deeper follow-up prompts
type Topic struct {
	ID              int      `json:"id" yaml:"id"`
	TitleEN         string   `json:"title_en" yaml:"title_en"`
	TitleZH         string   `json:"title_zh" yaml:"title_zh"`
	DescriptionEN   string   `json:"description_en" yaml:"description_en"`
	DescriptionZH   string   `json:"description_zh" yaml:"description_zh"`
	DeeperPromptsEN []string `json:"deeperPrompts_en" yaml:"deeperPrompts_en"`
	DeeperPromptsZH []string `json:"deeperPrompts_zh" yaml:"deeperPrompts_zh"`
}

// TopicSummary is the listing projection of a topic (prompts omitted)
type TopicSummary struct {
	ID            int    `json:"id"`
	TitleEN       string `json:"title_en"`
	TitleZH       string `json:"title_zh"`
	DescriptionEN string `json:"description_en"`
	DescriptionZH string `json:"description_zh"`
}

// Summary projects the topic to its listing fields
func (t *Topic) Summary() TopicSummary {
	return TopicSummary{
		ID:            t.ID,
		TitleEN:       t.TitleEN,
		TitleZH:       t.TitleZH,
		DescriptionEN: t.DescriptionEN,
		DescriptionZH: t.DescriptionZH,
	}
}

// Prompts returns the deeper-prompt sequence for a language ("en" or "zh")
func (t *Topic) Prompts(lang string) []string {
	if lang == "zh" {
		return t.DeeperPromptsZH
	}
	return t.DeeperPromptsEN
}

// User represents a registered player. The password hash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"displayName"`
	Points       int       `json:"points"`
	Badges       []string  `json:"badges"`
	CreatedAt    time.Time `json:"created_at"`
}

// Clone returns a deep copy so callers cannot mutate store-internal state
func (u *User) Clone() *User {
	c := *u
	c.Badges = append([]string(nil), u.Badges...)
	if c.Badges == nil {
		c.Badges = []string{}
	}
	return &c
}

// RewardResult is the outcome of a points/badge mutation
type RewardResult struct {
	Points int      `json:"points"`
	Badges []string `json:"badges"`
}
