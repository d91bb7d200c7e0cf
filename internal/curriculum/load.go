package curriculum

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// EnvPath names the environment variable that points at a curriculum file.
const EnvPath = "SABI_CURRICULUM"

// ErrInvalid is returned for curriculum data that fails validation.
var ErrInvalid = errors.New("invalid curriculum")

//go:embed data/unit.json data/unit.schema.json
var dataFS embed.FS

const schemaURL = "sabi://unit.schema.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func unitSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		raw, err := dataFS.ReadFile("data/unit.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("read schema: %w", err)
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// Default returns the built-in unit.
func Default() (*Unit, error) {
	raw, err := dataFS.ReadFile("data/unit.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded unit: %w", err)
	}
	return Parse(raw)
}

// Load reads a unit from path, or the built-in unit when path is empty.
func Load(path string) (*Unit, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read curriculum: %w", err)
	}
	u, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return u, nil
}

// Parse validates raw JSON against the unit schema and decodes it.
func Parse(raw []byte) (*Unit, error) {
	sch, err := unitSchema()
	if err != nil {
		return nil, fmt.Errorf("compile unit schema: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	var u Unit
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := Validate(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Validate performs the checks a schema cannot express. It returns a
// combined error describing every problem found, or nil.
func Validate(u *Unit) error {
	var errs []string

	for i, l := range u.Lessons {
		if len(l.Steps()) == 0 {
			errs = append(errs, fmt.Sprintf("lesson %d %q has no steps", i, l.Title))
		}
		for j, ex := range l.Exercises {
			if !slices.Contains(ex.Options, ex.Answer) {
				errs = append(errs, fmt.Sprintf("lesson %d exercise %d: answer %q not among options", i, j, ex.Answer))
			}
		}
		for j, g := range l.FillInGaps {
			if !slices.Contains(g.Options, g.Answer) {
				errs = append(errs, fmt.Sprintf("lesson %d fill-in-gap %d: answer %q not among options", i, j, g.Answer))
			}
		}
		for j, a := range l.Assessments {
			seen := make(map[string]bool, len(a.Pairs))
			for _, p := range a.Pairs {
				if seen[p.Word] {
					errs = append(errs, fmt.Sprintf("lesson %d assessment %d: duplicate word %q", i, j, p.Word))
				}
				seen[p.Word] = true
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  %s", ErrInvalid, strings.Join(errs, "\n  "))
	}
	return nil
}
