package asset

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseSkillDoc(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantTitle string
		wantDesc  string
	}{
		{
			name:      "title and description",
			content:   "# Example\n\nDoes X.\n",
			wantTitle: "Example",
			wantDesc:  "Does X.",
		},
		{
			name:      "multi-line paragraph keeps first line",
			content:   "# PDF Tools\n\nFill PDF forms.\nAlso merges files.\n",
			wantTitle: "PDF Tools",
			wantDesc:  "Fill PDF forms.",
		},
		{
			name:      "heading followed by heading",
			content:   "# Title\n## Usage\n",
			wantTitle: "Title",
			wantDesc:  "",
		},
		{
			name:      "no heading",
			content:   "just text\n",
			wantTitle: "",
			wantDesc:  "",
		},
		{
			name:      "frontmatter before heading",
			content:   "---\nname: fm\ndescription: From frontmatter\n---\n# Heading\n\nBody line.\n",
			wantTitle: "Heading",
			wantDesc:  "Body line.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := ParseSkillDoc(tt.content)
			if doc.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", doc.Title, tt.wantTitle)
			}
			if doc.Description != tt.wantDesc {
				t.Errorf("Description = %q, want %q", doc.Description, tt.wantDesc)
			}
			if doc.Content != tt.content {
				t.Error("Content should be the raw input")
			}
		})
	}
}

func TestParseSkillDoc_Frontmatter(t *testing.T) {
	doc := ParseSkillDoc("---\nname: pdf\ndescription: Fill forms\n---\n# PDF\n")
	if doc.Frontmatter.Name != "pdf" {
		t.Errorf("Frontmatter.Name = %q, want %q", doc.Frontmatter.Name, "pdf")
	}
	if doc.Frontmatter.Description != "Fill forms" {
		t.Errorf("Frontmatter.Description = %q, want %q", doc.Frontmatter.Description, "Fill forms")
	}
}

func TestParseSkillDoc_BrokenFrontmatterIgnored(t *testing.T) {
	tests := []string{
		"---\nname: [unclosed\n---\n# T\n",
		"---\nname: never closed\n# T\n",
	}
	for _, content := range tests {
		doc := ParseSkillDoc(content)
		if doc.Frontmatter != (SkillFrontmatter{}) {
			t.Errorf("expected empty frontmatter for %q, got %+v", content, doc.Frontmatter)
		}
		if doc.Title != "T" {
			t.Errorf("Title = %q, want %q", doc.Title, "T")
		}
	}
}

func TestReadSkillDoc(t *testing.T) {
	dir := t.TempDir()
	if _, err := ReadSkillDoc(dir); err == nil {
		t.Error("ReadSkillDoc() should fail without SKILL.md")
	}

	if err := os.WriteFile(filepath.Join(dir, SkillFileName), []byte("# Hello\n\nWorld\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := ReadSkillDoc(dir)
	if err != nil {
		t.Fatalf("ReadSkillDoc() error: %v", err)
	}
	if doc.Title != "Hello" || doc.Description != "World" {
		t.Errorf("ReadSkillDoc() = %+v", doc)
	}
}
