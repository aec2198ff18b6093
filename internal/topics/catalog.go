package topics

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cedricworldwide/CuriosityQuest/internal/models"
)

// ErrTopicNotFound is returned when no topic has the requested id
var ErrTopicNotFound = errors.New("topic not found")

// Catalog serves the bilingual topic document. The backing file is
// re-read and re-parsed on every call; there is no caching or
// invalidation, so edits to the file are visible immediately.
type Catalog struct {
	path string
}

// NewCatalog creates a catalog backed by a JSON or YAML document
func NewCatalog(path string) *Catalog {
	return &Catalog{path: path}
}

// load reads and parses the full topic document
func (c *Catalog) load() ([]models.Topic, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read topic catalog: %w", err)
	}

	var topics []models.Topic
	switch strings.ToLower(filepath.Ext(c.path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &topics); err != nil {
			return nil, fmt.Errorf("failed to parse topic YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &topics); err != nil {
			return nil, fmt.Errorf("failed to parse topic JSON: %w", err)
		}
	}

	return topics, nil
}

// List returns all topics projected to their summary fields
func (c *Catalog) List() ([]models.TopicSummary, error) {
	topics, err := c.load()
	if err != nil {
		return nil, err
	}

	summaries := make([]models.TopicSummary, 0, len(topics))
	for i := range topics {
		summaries = append(summaries, topics[i].Summary())
	}
	return summaries, nil
}

// Get returns the full topic record including both prompt sequences.
// Lookup is a linear scan; the id is the only stable identifier.
func (c *Catalog) Get(id int) (*models.Topic, error) {
	topics, err := c.load()
	if err != nil {
		return nil, err
	}

	for i := range topics {
		if topics[i].ID == id {
			return &topics[i], nil
		}
	}
	return nil, ErrTopicNotFound
}
