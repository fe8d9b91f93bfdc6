// Package template parses prompt-template corpora and selects the template
// that best matches a classified request.
//
// A corpus is a Markdown document. Each "## " section whose header names a
// command (for example "## SRE Implement Prompts") holds one template with
// Examples, Prompt, and Tags subsections. Subsections may be written as
// "### Examples" headers or as "**Examples:**" bold labels.
package template

import (
	"regexp"
	"strings"
)

// Template is one parsed corpus section. Templates are created fresh on
// every parse and never mutated afterwards.
type Template struct {
	Command  string   `json:"command" yaml:"command"`
	Examples []string `json:"examples" yaml:"examples"`
	Tags     []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Body     string   `json:"body" yaml:"body"`
}

const sectionMarker = "## "

// headerGrammars are tried in order; the first capture supplies the command.
var headerGrammars = []*regexp.Regexp{
	regexp.MustCompile(`(?i)SRE (\w+) Prompts?`),
	regexp.MustCompile(`(?i)Prompt Templates? for (\w+)`),
	regexp.MustCompile(`(?i)LLM (\w+) Instructions?`),
}

type subsection int

const (
	subsectionNone subsection = iota
	subsectionExamples
	subsectionPrompt
	subsectionTags
)

// subsectionHeaders recognizes both header styles for each subsection.
var subsectionHeaders = []struct {
	state   subsection
	pattern *regexp.Regexp
}{
	{subsectionExamples, regexp.MustCompile(`(?i)^(#{3,}\s*examples?\s*:?|\*\*examples?:?\*\*:?)\s*$`)},
	{subsectionPrompt, regexp.MustCompile(`(?i)^(#{3,}\s*prompt\s*:?|\*\*prompt:?\*\*:?)\s*$`)},
	{subsectionTags, regexp.MustCompile(`(?i)^(#{3,}\s*tags?\s*:?|\*\*tags?:?\*\*:?)\s*$`)},
}

// Parse splits corpus into templates in document order. It never fails:
// sections without a recognized header, without examples, or without a
// prompt body are dropped, so an empty or malformed corpus yields nil.
func Parse(corpus string) []Template {
	var templates []Template
	for _, section := range splitSections(corpus) {
		if tpl, ok := parseSection(section); ok {
			templates = append(templates, tpl)
		}
	}
	return templates
}

// splitSections returns the lines of each top-level section, header line
// first. Text before the first section header is discarded.
func splitSections(corpus string) [][]string {
	var sections [][]string
	var current []string

	for _, line := range strings.Split(strings.ReplaceAll(corpus, "\r\n", "\n"), "\n") {
		if strings.HasPrefix(line, sectionMarker) {
			if current != nil {
				sections = append(sections, current)
			}
			current = []string{line}
			continue
		}
		if current != nil {
			current = append(current, line)
		}
	}
	if current != nil {
		sections = append(sections, current)
	}
	return sections
}

func parseSection(lines []string) (Template, bool) {
	command, ok := commandFromHeader(lines[0])
	if !ok {
		return Template{}, false
	}

	tpl := Template{Command: command}
	var body []string
	seenTags := make(map[string]bool)
	state := subsectionNone

	for _, raw := range lines[1:] {
		line := strings.TrimSpace(raw)
		if next, isHeader := subsectionFor(line); isHeader {
			state = next
			continue
		}
		// Headings inside a prompt body belong to the body; anywhere else an
		// unrecognized heading ends the current subsection.
		if state != subsectionPrompt && strings.HasPrefix(line, "#") {
			state = subsectionNone
			continue
		}

		switch state {
		case subsectionExamples:
			if item, ok := bulletItem(line); ok {
				tpl.Examples = append(tpl.Examples, item)
			}
		case subsectionPrompt:
			if line != "" {
				body = append(body, strings.TrimRight(raw, " \t"))
			}
		case subsectionTags:
			if item, ok := bulletItem(line); ok {
				key := strings.ToLower(item)
				if !seenTags[key] {
					seenTags[key] = true
					tpl.Tags = append(tpl.Tags, item)
				}
			}
		}
	}

	tpl.Body = strings.Join(body, "\n")
	if len(tpl.Examples) == 0 || strings.TrimSpace(tpl.Body) == "" {
		return Template{}, false
	}
	return tpl, true
}

func commandFromHeader(header string) (string, bool) {
	title := strings.TrimSpace(strings.TrimPrefix(header, sectionMarker))
	for _, grammar := range headerGrammars {
		if m := grammar.FindStringSubmatch(title); m != nil {
			return strings.ToLower(m[1]), true
		}
	}
	return "", false
}

// subsectionFor reports whether line is a subsection header and which state
// it selects.
func subsectionFor(line string) (subsection, bool) {
	for _, h := range subsectionHeaders {
		if h.pattern.MatchString(line) {
			return h.state, true
		}
	}
	return subsectionNone, false
}

func bulletItem(line string) (string, bool) {
	for _, marker := range []string{"- ", "* ", "+ "} {
		if rest, ok := strings.CutPrefix(line, marker); ok {
			item := strings.TrimSpace(rest)
			return item, item != ""
		}
	}
	return "", false
}
