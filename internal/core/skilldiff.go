package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/barysiuk/claudesync/internal/core/asset"
)

const skillPreviewLength = 500

// SkillDiff renders the change to a skill's SKILL.md. Without previous content
// the skill is treated as new and a preview of its first characters is shown.
func SkillDiff(skillPath string, previous string) (string, error) {
	data, err := os.ReadFile(filepath.Join(skillPath, asset.SkillFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return "[SKILL.md not found]", nil
		}
		return "", fmt.Errorf("reading skill: %w", err)
	}
	current := string(data)

	if previous == "" {
		return "[New skill]\n\n" + skillPreview(current), nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(previous),
		B:        difflib.SplitLines(current),
		FromFile: "a/" + asset.SkillFileName,
		ToFile:   "b/" + asset.SkillFileName,
		Context:  3,
	})
	if err != nil {
		return "", fmt.Errorf("diffing skill: %w", err)
	}
	return diff, nil
}

// skillPreview returns the first characters of content, marked when cut.
func skillPreview(content string) string {
	runes := []rune(content)
	if len(runes) <= skillPreviewLength {
		return content
	}
	return string(runes[:skillPreviewLength]) + "..."
}

// BackedUpSkill returns the SKILL.md content of a skill as captured in a
// backup, or "" when the backup does not hold it.
func BackedUpSkill(record BackupRecord, skillName string) string {
	data, err := os.ReadFile(filepath.Join(record.Path, backupCodeDir, "skills", skillName, asset.SkillFileName))
	if err != nil {
		return ""
	}
	return string(data)
}
