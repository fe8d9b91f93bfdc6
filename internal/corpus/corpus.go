// Package corpus locates and reads the prompt-template corpus.
//
// A corpus is assembled from configured files and doublestar globs,
// concatenated in configuration order. When nothing matches, the built-in
// corpus is used unless it has been disabled. Missing or unreadable files are
// never fatal: the worst case is an empty corpus, which sends every request
// down the fallback prompt path.
package corpus

import (
	_ "embed"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

//go:embed default_prompts.md
var defaultCorpus string

// EmbeddedName is reported as the file name of the built-in corpus.
const EmbeddedName = "<embedded>"

// Default returns the built-in corpus text.
func Default() string {
	return defaultCorpus
}

// Corpus is the assembled corpus text and where it came from.
type Corpus struct {
	Text  string
	Files []string
}

// Embedded reports whether the text is the built-in corpus.
func (c Corpus) Embedded() bool {
	return len(c.Files) == 1 && c.Files[0] == EmbeddedName
}

// Source describes where to read the corpus from.
type Source struct {
	// Root is the directory relative patterns resolve against.
	Root string
	// Patterns are file paths or doublestar globs.
	Patterns []string
	// DisableEmbedded turns off the built-in fallback.
	DisableEmbedded bool

	logger *zap.Logger
}

// NewSource returns a Source. A nil logger disables logging.
func NewSource(root string, patterns []string, disableEmbedded bool, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{
		Root:            root,
		Patterns:        slices.Clone(patterns),
		DisableEmbedded: disableEmbedded,
		logger:          logger,
	}
}

// Files expands the patterns into the matching regular files. Files are
// ordered by pattern, then lexically within a pattern, and each file appears
// once.
func (s *Source) Files() []string {
	var files []string
	seen := make(map[string]bool)

	for _, pattern := range s.Patterns {
		abs := s.resolve(pattern)
		matches, err := doublestar.FilepathGlob(abs, doublestar.WithFilesOnly())
		if err != nil {
			s.logger.Warn("Invalid corpus pattern", zap.String("pattern", pattern), zap.Error(err))
			continue
		}
		if len(matches) == 0 {
			s.logger.Debug("Corpus pattern matched nothing", zap.String("pattern", pattern))
			continue
		}

		slices.Sort(matches)
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}

	return files
}

// Load reads and concatenates the corpus. It never fails; unreadable files
// are logged and skipped.
func (s *Source) Load() Corpus {
	var parts []string
	var read []string

	for _, path := range s.Files() {
		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("Failed to read corpus file", zap.String("path", path), zap.Error(err))
			continue
		}
		parts = append(parts, string(data))
		read = append(read, path)
	}

	if len(read) == 0 {
		if s.DisableEmbedded {
			s.logger.Warn("No corpus files found and embedded corpus disabled", zap.Strings("patterns", s.Patterns))
			return Corpus{}
		}
		s.logger.Debug("Using embedded corpus")
		return Corpus{Text: defaultCorpus, Files: []string{EmbeddedName}}
	}

	s.logger.Debug("Loaded corpus", zap.Strings("files", read))
	return Corpus{Text: strings.Join(parts, "\n\n"), Files: read}
}

// WatchDirs returns the existing directories whose changes can affect the
// corpus: the static base directory of every pattern, and every directory
// beneath it for recursive patterns.
func (s *Source) WatchDirs() []string {
	var dirs []string
	seen := make(map[string]bool)
	add := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	for _, pattern := range s.Patterns {
		abs := s.resolve(pattern)
		base, rest := doublestar.SplitPattern(filepath.ToSlash(abs))
		base = filepath.FromSlash(base)
		if rest == "" || !hasMeta(abs) {
			base = filepath.Dir(abs)
		}

		info, err := os.Stat(base)
		if err != nil || !info.IsDir() {
			continue
		}
		add(base)

		if strings.Contains(rest, "**") {
			_ = filepath.WalkDir(base, func(path string, d os.DirEntry, err error) error {
				if err != nil {
					return nil
				}
				if d.IsDir() && path != base {
					add(path)
				}
				return nil
			})
		}
	}

	return dirs
}

// Matches reports whether path is selected by any pattern.
func (s *Source) Matches(path string) bool {
	path = filepath.ToSlash(path)
	for _, pattern := range s.Patterns {
		ok, err := doublestar.Match(filepath.ToSlash(s.resolve(pattern)), path)
		if err == nil && ok {
			return true
		}
	}
	return false
}

func (s *Source) resolve(pattern string) string {
	if filepath.IsAbs(pattern) || s.Root == "" {
		return filepath.Clean(pattern)
	}
	return filepath.Join(s.Root, pattern)
}

func hasMeta(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}
