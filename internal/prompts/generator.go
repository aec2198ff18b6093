package prompts

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/cedricworldwide/CuriosityQuest/internal/topics"
)

// ErrNoPrompts is returned when a topic has no prompts in either language
var ErrNoPrompts = errors.New("no prompts available for topic")

// Generator picks a pseudo-random deeper prompt for a topic. It stands in
// for a real LLM call; each invocation may return a different prompt.
type Generator struct {
	catalog *topics.Catalog

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a generator over the topic catalog. A nil rng gets
// a time-seeded source; tests inject a fixed-seed one to pin selection.
func NewGenerator(catalog *topics.Catalog, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{catalog: catalog, rng: rng}
}

// Generate resolves the topic and returns one prompt chosen uniformly from
// the requested language's sequence. Languages are restricted to en/zh
// with en the default. When the requested language has no prompts the
// other language is used as a fallback; when both are empty the topic is
// treated as having nothing to offer and ErrNoPrompts is returned.
func (g *Generator) Generate(topicID int, lang string) (string, error) {
	topic, err := g.catalog.Get(topicID)
	if err != nil {
		return "", err
	}

	if lang != "zh" {
		lang = "en"
	}

	pool := topic.Prompts(lang)
	if len(pool) == 0 {
		if lang == "zh" {
			pool = topic.Prompts("en")
		} else {
			pool = topic.Prompts("zh")
		}
	}
	if len(pool) == 0 {
		return "", ErrNoPrompts
	}

	g.mu.Lock()
	idx := g.rng.Intn(len(pool))
	g.mu.Unlock()

	return pool[idx], nil
}
