package asset

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	SkillFileName  = "SKILL.md"
	ReadmeFileName = "README.md"
)

var (
	titlePattern       = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	descriptionPattern = regexp.MustCompile(`(?m)^#.+\n+([^#\n].+)`)
)

// SkillFrontmatter is the optional YAML header of a SKILL.md file.
type SkillFrontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// SkillDoc is a parsed SKILL.md document.
type SkillDoc struct {
	Title       string // first "# " heading, empty when absent
	Description string // first line of the first paragraph after a heading
	Content     string // the whole raw file
	Frontmatter SkillFrontmatter
}

// ParseSkillDoc extracts the title, description and frontmatter from raw
// SKILL.md content. Frontmatter that fails to parse is ignored.
func ParseSkillDoc(content string) SkillDoc {
	doc := SkillDoc{Content: content}
	if m := titlePattern.FindStringSubmatch(content); m != nil {
		doc.Title = strings.TrimSpace(m[1])
	}
	if m := descriptionPattern.FindStringSubmatch(content); m != nil {
		doc.Description = strings.TrimSpace(m[1])
	}
	if fm, ok := parseFrontmatter(content); ok {
		doc.Frontmatter = fm
	}
	return doc
}

// ReadSkillDoc reads and parses SKILL.md from a skill directory.
func ReadSkillDoc(dir string) (SkillDoc, error) {
	path := filepath.Join(dir, SkillFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return SkillDoc{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseSkillDoc(string(data)), nil
}

// parseFrontmatter reads a YAML block delimited by "---" lines at the top of
// content. It reports false when there is no block or it does not parse.
func parseFrontmatter(content string) (SkillFrontmatter, bool) {
	scanner := bufio.NewScanner(strings.NewReader(content))

	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "---" {
		return SkillFrontmatter{}, false
	}

	var block strings.Builder
	closed := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "---" {
			closed = true
			break
		}
		block.WriteString(line)
		block.WriteString("\n")
	}
	if !closed || scanner.Err() != nil {
		return SkillFrontmatter{}, false
	}

	var fm SkillFrontmatter
	if err := yaml.Unmarshal([]byte(block.String()), &fm); err != nil {
		return SkillFrontmatter{}, false
	}
	return fm, true
}
