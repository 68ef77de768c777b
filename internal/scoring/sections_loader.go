package scoring

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// sectionsSpec is the YAML shape of a sections override file.
type sectionsSpec struct {
	Version string              `yaml:"version"`
	Actions []actionSectionSpec `yaml:"actions"`
}

type actionSectionSpec struct {
	Action   string   `yaml:"action"`
	Sections []string `yaml:"sections"`
}

// LoadSectionMap reads a YAML sections file and returns a SectionMap
// overlaying the built-in action mapping. Action names are normalized
// the same way lookups are.
func LoadSectionMap(path string) (SectionMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sections file %s: %w", path, err)
	}

	var spec sectionsSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse sections file %s: %w", path, err)
	}
	if err := validateSectionsSpec(&spec); err != nil {
		return nil, fmt.Errorf("invalid sections file %s: %w", path, err)
	}

	m := make(SectionMap, len(spec.Actions))
	for _, a := range spec.Actions {
		labels := make([]string, 0, len(a.Sections))
		for _, s := range a.Sections {
			labels = append(labels, strings.TrimSpace(s))
		}
		m[NormalizeActionType(a.Action)] = labels
	}
	return m, nil
}

func validateSectionsSpec(spec *sectionsSpec) error {
	if len(spec.Actions) == 0 {
		return fmt.Errorf("actions is required")
	}

	seen := make(map[string]struct{}, len(spec.Actions))
	for _, a := range spec.Actions {
		action := NormalizeActionType(strings.TrimSpace(a.Action))
		if action == "" {
			return fmt.Errorf("action name is required")
		}
		if _, exists := seen[action]; exists {
			return fmt.Errorf("duplicate action: %s", action)
		}
		seen[action] = struct{}{}

		if len(a.Sections) == 0 {
			return fmt.Errorf("action %s has no sections", action)
		}
		for _, s := range a.Sections {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("action %s has an empty section label", action)
			}
		}
	}
	return nil
}
