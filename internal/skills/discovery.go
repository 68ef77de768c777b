package skills

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Skill is a discovered skill: a SKILL.md file whose markdown body
// contributes instructions to the system prompt.
type Skill struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	FilePath    string `json:"file_path" yaml:"-"`
	Content     string `json:"-" yaml:"-"` // markdown body after frontmatter
}

type skillFrontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// ParseSkillMD parses a SKILL.md file into a Skill.
func ParseSkillMD(path string) (*Skill, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	front, body, err := splitFrontmatter(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	var fm skillFrontmatter
	if err := yaml.Unmarshal([]byte(front), &fm); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter in %s: %w", path, err)
	}
	if strings.TrimSpace(fm.Name) == "" {
		fm.Name = filepath.Base(filepath.Dir(path))
	}

	return &Skill{
		Name:        fm.Name,
		Description: fm.Description,
		FilePath:    path,
		Content:     strings.TrimSpace(body),
	}, nil
}

// splitFrontmatter separates a leading "---" YAML block from the
// markdown body. A file without frontmatter is all body.
func splitFrontmatter(content string) (front, body string, err error) {
	trimmed := strings.TrimLeft(content, "\uFEFF\n\r")
	if !strings.HasPrefix(trimmed, "---") {
		return "", content, nil
	}

	rest := trimmed[len("---"):]
	idx := strings.Index(rest, "\n---")
	if idx == -1 {
		return "", "", fmt.Errorf("unterminated frontmatter")
	}

	front = rest[:idx]
	body = rest[idx+len("\n---"):]
	if nl := strings.Index(body, "\n"); nl >= 0 {
		body = body[nl+1:]
	} else {
		body = ""
	}
	return front, body, nil
}

// Discover walks the given directories for <dir>/<skill>/SKILL.md files,
// skipping disabled skill names.
func Discover(dirs []string, disabled []string) ([]Skill, error) {
	disabledSet := make(map[string]struct{}, len(disabled))
	for _, name := range disabled {
		disabledSet[strings.TrimSpace(name)] = struct{}{}
	}

	var skills []Skill
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to list %s: %w", dir, err)
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			path := filepath.Join(dir, entry.Name(), "SKILL.md")
			if _, err := os.Stat(path); err != nil {
				continue
			}

			skill, err := ParseSkillMD(path)
			if err != nil {
				return nil, err
			}
			if _, off := disabledSet[skill.Name]; off {
				continue
			}
			skills = append(skills, *skill)
		}
	}
	return skills, nil
}

// Instructions joins the discovered skills' bodies into the
// skills_instructions text consumed by prompt assembly.
func Instructions(skills []Skill) string {
	var parts []string
	for _, skill := range skills {
		if skill.Content != "" {
			parts = append(parts, skill.Content)
		}
	}
	return strings.Join(parts, "\n")
}
