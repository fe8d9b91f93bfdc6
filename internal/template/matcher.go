package template

import (
	"strings"

	"go.uber.org/zap"

	"github.com/sardesh/srebuddy/internal/task"
)

const (
	// MatchThreshold is the score a template must exceed to be selected.
	MatchThreshold = 0.3

	// TagBonus is added for every tag found in the request text. The bonus is
	// not normalized, so templates with few examples and many matching tags
	// can score above 1.0.
	TagBonus = 0.5
)

// Score breaks down how a template scored against a request.
type Score struct {
	// Coverage holds the per-example coverage scores in example order.
	Coverage []float64
	// TagBonus is the summed bonus for matching tags.
	TagBonus float64
	// Total is (sum of Coverage + TagBonus) / number of examples.
	Total float64
}

// ExampleScore is the average per-example coverage, without tag bonuses.
func (s Score) ExampleScore() float64 {
	if len(s.Coverage) == 0 {
		return 0
	}
	var sum float64
	for _, c := range s.Coverage {
		sum += c
	}
	return sum / float64(len(s.Coverage))
}

// Matcher selects templates for classified requests.
type Matcher struct {
	logger *zap.Logger
}

// NewMatcher returns a Matcher. A nil logger disables logging.
func NewMatcher(logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{logger: logger}
}

// Select returns the best template for d among the corpus templates whose
// command equals command (case-insensitive), together with its score. It
// returns nil when no candidate scores above MatchThreshold. Ties go to the
// template that appears first in the corpus.
func (m *Matcher) Select(corpus []Template, d task.Descriptor, command string) (*Template, Score) {
	command = strings.TrimSpace(command)
	text := d.MatchText()

	var best *Template
	var bestScore Score
	candidates := 0

	for i := range corpus {
		if !strings.EqualFold(corpus[i].Command, command) {
			continue
		}
		candidates++

		score := ScoreTemplate(corpus[i], text)
		m.logger.Debug("scored template",
			zap.String("command", command),
			zap.Int("index", i),
			zap.Float64("score", score.Total),
			zap.Float64("tag_bonus", score.TagBonus))

		if best == nil || score.Total > bestScore.Total {
			best = &corpus[i]
			bestScore = score
		}
	}

	if best == nil || bestScore.Total <= MatchThreshold {
		m.logger.Debug("no template above threshold",
			zap.String("command", command),
			zap.Int("candidates", candidates),
			zap.Float64("best_score", bestScore.Total))
		return nil, bestScore
	}

	if bestScore.Total > 1.0 {
		m.logger.Debug("template score exceeds 1.0 from tag bonuses",
			zap.String("command", command),
			zap.Float64("score", bestScore.Total))
	}

	selected := *best
	return &selected, bestScore
}

// Select is a convenience wrapper around a non-logging Matcher.
func Select(corpus []Template, d task.Descriptor, command string) (*Template, Score) {
	return NewMatcher(nil).Select(corpus, d, command)
}

// ScoreTemplate scores tpl against the request text.
func ScoreTemplate(tpl Template, text string) Score {
	taskTokens := tokenSet(text)
	lowerText := strings.ToLower(text)

	var score Score
	var sum float64
	for _, example := range tpl.Examples {
		c := Coverage(tokenSet(example), taskTokens)
		score.Coverage = append(score.Coverage, c)
		sum += c
	}

	for _, tag := range tpl.Tags {
		if tag != "" && strings.Contains(lowerText, strings.ToLower(tag)) {
			score.TagBonus += TagBonus
		}
	}

	if n := len(tpl.Examples); n > 0 {
		score.Total = (sum + score.TagBonus) / float64(n)
	}
	return score
}

// Coverage counts the example tokens that contain, or are contained in, some
// task token, divided by the larger of the two token set sizes.
func Coverage(exampleTokens, taskTokens []string) float64 {
	denominator := max(len(exampleTokens), len(taskTokens))
	if denominator == 0 {
		return 0
	}

	matched := 0
	for _, et := range exampleTokens {
		for _, tt := range taskTokens {
			if strings.Contains(et, tt) || strings.Contains(tt, et) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(denominator)
}

// tokenSet lowercases s, splits it on whitespace, and drops duplicates while
// keeping first-seen order.
func tokenSet(s string) []string {
	fields := strings.Fields(strings.ToLower(s))
	seen := make(map[string]bool, len(fields))
	tokens := fields[:0]
	for _, f := range fields {
		if !seen[f] {
			seen[f] = true
			tokens = append(tokens, f)
		}
	}
	return tokens
}
