// Package seed loads reference data (question types, sources and tags) from
// a YAML file and upserts it.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/biocomp/qbank-backend/internal/logger"
	"github.com/rs/zerolog"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON []byte

var schema = gojsonschema.NewBytesLoader(schemaJSON)

// File is the decoded seed document.
type File struct {
	QuestionTypes []string `yaml:"question_types"`
	Sources       []string `yaml:"sources"`
	Tags          []string `yaml:"tags"`
}

// SchemaError lists every violation found in a seed document.
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	return "seed file does not match schema: " + strings.Join(e.Problems, "; ")
}

// Parse decodes YAML and validates it against the embedded schema before
// mapping it onto File.
func Parse(data []byte) (*File, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode seed yaml: %w", err)
	}

	result, err := gojsonschema.Validate(schema, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validate seed: %w", err)
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, re := range result.Errors() {
			problems = append(problems, re.String())
		}
		return nil, &SchemaError{Problems: problems}
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode seed yaml: %w", err)
	}
	f.QuestionTypes = trimAll(f.QuestionTypes)
	f.Sources = trimAll(f.Sources)
	f.Tags = trimAll(f.Tags)
	return &f, nil
}

func trimAll(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// NamedStore upserts a row by its unique name.
type NamedStore interface {
	EnsureNamed(ctx context.Context, name string) (int, error)
}

// Result counts the rows ensured per table.
type Result struct {
	QuestionTypes int
	Sources       int
	Tags          int
}

// Seeder applies a File. Reapplying the same file is a no-op.
type Seeder struct {
	types   NamedStore
	sources NamedStore
	tags    NamedStore
	log     zerolog.Logger
}

func NewSeeder(types, sources, tags NamedStore, log zerolog.Logger) *Seeder {
	return &Seeder{
		types:   types,
		sources: sources,
		tags:    tags,
		log:     logger.Component(log, "seeder"),
	}
}

// Apply stops at the first failing row.
func (s *Seeder) Apply(ctx context.Context, f *File) (Result, error) {
	var res Result
	var err error

	if res.QuestionTypes, err = s.ensure(ctx, "question_type", s.types, f.QuestionTypes); err != nil {
		return res, err
	}
	if res.Sources, err = s.ensure(ctx, "source", s.sources, f.Sources); err != nil {
		return res, err
	}
	if res.Tags, err = s.ensure(ctx, "tag", s.tags, f.Tags); err != nil {
		return res, err
	}
	return res, nil
}

func (s *Seeder) ensure(ctx context.Context, kind string, store NamedStore, names []string) (int, error) {
	for i, name := range names {
		id, err := store.EnsureNamed(ctx, name)
		if err != nil {
			return i, fmt.Errorf("ensure %s %q: %w", kind, name, err)
		}
		s.log.Debug().Str("kind", kind).Str("name", name).Int("id", id).Msg("Seeded")
	}
	return len(names), nil
}
