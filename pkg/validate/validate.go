// Package validate checks skill directories against the SKILL.md contract:
// the file must exist at the directory root, carry YAML frontmatter, and the
// frontmatter must declare a hyphen-case name and a non-empty description.
// A validation pass reports every violated rule, not just the first.
package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/freshtechbro/skillstack/pkg/skills"
)

// MaxDescriptionLength is the length above which a description draws a warning.
const MaxDescriptionLength = 1024

// Violation identifies a single violated rule
type Violation struct {
	Rule    string
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Rule, v.Message)
}

// Result holds the outcome of validating one skill directory
type Result struct {
	Dir      string
	Errors   []Violation
	Warnings []Violation
}

// OK reports whether the directory passed validation. Warnings do not fail
// a validation pass.
func (r *Result) OK() bool {
	return len(r.Errors) == 0
}

// Err aggregates all error-level violations into a single error, or returns
// nil when validation passed.
func (r *Result) Err() error {
	if r.OK() {
		return nil
	}

	var merr *multierror.Error
	for _, v := range r.Errors {
		merr = multierror.Append(merr, errors.New(v.String()))
	}
	return errors.Wrapf(merr.ErrorOrNil(), "skill validation failed for %s", r.Dir)
}

func (r *Result) addError(rule, format string, args ...interface{}) {
	r.Errors = append(r.Errors, Violation{Rule: rule, Message: fmt.Sprintf(format, args...)})
}

func (r *Result) addWarning(rule, format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, Violation{Rule: rule, Message: fmt.Sprintf(format, args...)})
}

// SkillDir validates a single skill directory and returns the full list of
// violated rules. The pass is read-only and idempotent.
func SkillDir(dir string) *Result {
	result := &Result{Dir: dir}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		result.addError("skill-dir", "not a directory: %s", dir)
		return result
	}

	skillPath := filepath.Join(dir, skills.SkillFileName)
	content, err := os.ReadFile(skillPath)
	if err != nil {
		result.addError("skill-md", "%s not found in %s", skills.SkillFileName, dir)
		return result
	}

	metaData, err := skills.ParseFrontmatter(content)
	if err != nil {
		result.addError("frontmatter", "missing or malformed YAML frontmatter: %v", err)
		return result
	}

	name, _ := metaData["name"].(string)
	description, _ := metaData["description"].(string)

	if name == "" {
		result.addError("name", "frontmatter field 'name' is required")
	} else if !skills.ValidName(name) {
		result.addError("name-format", "name %q must match ^[a-z0-9-]{1,%d}$", name, skills.MaxNameLength)
	} else if name != filepath.Base(dir) {
		result.addWarning("name-mismatch", "name %q differs from directory name %q", name, filepath.Base(dir))
	}

	if description == "" {
		result.addError("description", "frontmatter field 'description' is required")
	} else if len(description) > MaxDescriptionLength {
		result.addWarning("description-length", "description is %d characters (over %d, may be truncated)", len(description), MaxDescriptionLength)
	}

	checkStrayArchives(dir, result)

	return result
}

// checkStrayArchives warns about .zip files inside the skill tree. These are
// excluded at packaging time, so their presence is usually a leftover.
func checkStrayArchives(dir string, result *Result) {
	_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if strings.HasSuffix(info.Name(), ".zip") {
			relPath, relErr := filepath.Rel(dir, path)
			if relErr != nil {
				relPath = path
			}
			result.addWarning("stray-archive", "found %s (zip files are excluded from packages)", relPath)
		}
		return nil
	})
}
