// Package packager turns a validated skill directory into a distributable
// zip archive. SKILL.md always lands at the archive root, nested zip files
// and OS junk are excluded, and output is deterministic so packaging the
// same tree twice yields byte-equal archives.
package packager

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"

	"github.com/freshtechbro/skillstack/pkg/skills"
	"github.com/freshtechbro/skillstack/pkg/validate"
)

// DefaultExcludes are glob patterns excluded from every package.
var DefaultExcludes = []string{
	"**/*.zip",
	"**/.DS_Store",
}

// Packager builds skill archives
type Packager struct {
	outputDir string
	excludes  []string
}

// Option configures a Packager
type Option func(*Packager)

// WithOutputDir sets the directory archives are written to
func WithOutputDir(dir string) Option {
	return func(p *Packager) {
		p.outputDir = dir
	}
}

// WithExcludes adds extra exclusion glob patterns on top of the defaults
func WithExcludes(patterns ...string) Option {
	return func(p *Packager) {
		p.excludes = append(p.excludes, patterns...)
	}
}

// New creates a Packager writing to the current directory by default
func New(opts ...Option) *Packager {
	p := &Packager{
		outputDir: ".",
		excludes:  append([]string{}, DefaultExcludes...),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Package validates dir and, on success, writes <name>.zip to the output
// directory where <name> is the skill name from frontmatter. On validation
// failure no output is written. Returns the archive path.
func (p *Packager) Package(dir string) (string, error) {
	result := validate.SkillDir(dir)
	if !result.OK() {
		return "", result.Err()
	}

	skill, err := skills.Load(dir)
	if err != nil {
		return "", errors.Wrap(err, "failed to load skill")
	}

	entries, err := p.collectEntries(dir)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		return "", errors.Wrap(err, "failed to create output directory")
	}

	archivePath := filepath.Join(p.outputDir, skill.Name+".zip")
	if err := p.writeArchive(archivePath, dir, entries); err != nil {
		os.Remove(archivePath)
		return "", err
	}

	return archivePath, nil
}

// collectEntries walks the skill tree and returns the slash-separated
// relative paths to include, sorted for deterministic output.
func (p *Packager) collectEntries(dir string) ([]string, error) {
	var entries []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if p.excluded(relPath) {
			return nil
		}

		entries = append(entries, relPath)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to walk skill directory")
	}

	sort.Strings(entries)
	return entries, nil
}

func (p *Packager) excluded(relPath string) bool {
	for _, pattern := range p.excludes {
		if ok, err := doublestar.Match(pattern, relPath); err == nil && ok {
			return true
		}
	}
	return false
}

// writeArchive writes the entries to a zip file. Timestamps are zeroed and
// modes fixed so repeated runs over the same tree are byte-equal.
func (p *Packager) writeArchive(archivePath, dir string, entries []string) error {
	out, err := os.Create(archivePath)
	if err != nil {
		return errors.Wrap(err, "failed to create archive")
	}
	defer out.Close()

	zw := zip.NewWriter(out)

	for _, entry := range entries {
		header := &zip.FileHeader{
			Name:   entry,
			Method: zip.Deflate,
		}
		header.SetMode(0o644)

		w, err := zw.CreateHeader(header)
		if err != nil {
			return errors.Wrapf(err, "failed to add %s", entry)
		}

		f, err := os.Open(filepath.Join(dir, filepath.FromSlash(entry)))
		if err != nil {
			return errors.Wrapf(err, "failed to open %s", entry)
		}

		if _, err := io.Copy(w, f); err != nil {
			f.Close()
			return errors.Wrapf(err, "failed to write %s", entry)
		}
		f.Close()
	}

	return errors.Wrap(zw.Close(), "failed to finalize archive")
}
