package topics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const testTopicsJSON = `[
  {
    "id": 1,
    "title_en": "Why is the sky blue?",
    "title_zh": "天空为什么是蓝色的？",
    "description_en": "Scattering of sunlight.",
    "description_zh": "阳光的散射。",
    "deeperPrompts_en": ["Why isn't it violet?", "What about Mars?"],
    "deeperPrompts_zh": ["为什么不是紫色？", "火星呢？"]
  },
  {
    "id": 2,
    "title_en": "What is a black hole?",
    "title_zh": "什么是黑洞？",
    "description_en": "Gravity from which light cannot escape.",
    "description_zh": "连光都无法逃脱的引力。",
    "deeperPrompts_en": ["What is at the center?"],
    "deeperPrompts_zh": ["中心是什么？"]
  }
]`

func writeCatalog(t *testing.T, name, content string) *Catalog {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write catalog file: %v", err)
	}
	return NewCatalog(path)
}

func TestListProjectsSummaries(t *testing.T) {
	c := writeCatalog(t, "topics.json", testTopicsJSON)

	summaries, err := c.List()
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(summaries))
	}
	if summaries[0].ID != 1 || summaries[0].TitleEN != "Why is the sky blue?" {
		t.Errorf("unexpected first summary: %+v", summaries[0])
	}
	if summaries[1].TitleZH != "什么是黑洞？" {
		t.Errorf("unexpected second summary: %+v", summaries[1])
	}
}

func TestGetReturnsFullRecord(t *testing.T) {
	c := writeCatalog(t, "topics.json", testTopicsJSON)

	topic, err := c.Get(1)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if len(topic.DeeperPromptsEN) != 2 || len(topic.DeeperPromptsZH) != 2 {
		t.Errorf("expected both prompt sequences, got en=%v zh=%v", topic.DeeperPromptsEN, topic.DeeperPromptsZH)
	}
}

func TestGetUnknownID(t *testing.T) {
	c := writeCatalog(t, "topics.json", testTopicsJSON)

	if _, err := c.Get(99); !errors.Is(err, ErrTopicNotFound) {
		t.Fatalf("expected ErrTopicNotFound, got %v", err)
	}
}

func TestLoadYAMLCatalog(t *testing.T) {
	yamlDoc := `
- id: 1
  title_en: Why is the sky blue?
  title_zh: 天空为什么是蓝色的？
  description_en: Scattering of sunlight.
  description_zh: 阳光的散射。
  deeperPrompts_en:
    - Why isn't it violet?
  deeperPrompts_zh:
    - 为什么不是紫色？
`
	c := writeCatalog(t, "topics.yaml", yamlDoc)

	topic, err := c.Get(1)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if topic.TitleEN != "Why is the sky blue?" {
		t.Errorf("unexpected title: %q", topic.TitleEN)
	}
	if len(topic.DeeperPromptsEN) != 1 {
		t.Errorf("unexpected prompts: %v", topic.DeeperPromptsEN)
	}
}

func TestMissingFile(t *testing.T) {
	c := NewCatalog(filepath.Join(t.TempDir(), "missing.json"))
	if _, err := c.List(); err == nil {
		t.Fatal("expected error for missing catalog file")
	}
}

func TestEditsVisibleWithoutRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topics.json")
	if err := os.WriteFile(path, []byte(testTopicsJSON), 0o644); err != nil {
		t.Fatalf("failed to write catalog file: %v", err)
	}
	c := NewCatalog(path)

	if _, err := c.Get(3); !errors.Is(err, ErrTopicNotFound) {
		t.Fatalf("expected ErrTopicNotFound before edit, got %v", err)
	}

	extended := testTopicsJSON[:len(testTopicsJSON)-1] + `,
  {"id": 3, "title_en": "New", "title_zh": "新", "description_en": "d", "description_zh": "描述",
   "deeperPrompts_en": ["p"], "deeperPrompts_zh": ["提示"]}
]`
	if err := os.WriteFile(path, []byte(extended), 0o644); err != nil {
		t.Fatalf("failed to rewrite catalog file: %v", err)
	}

	// The catalog re-reads the document on every call
	if _, err := c.Get(3); err != nil {
		t.Fatalf("expected new topic to be visible, got %v", err)
	}
}
