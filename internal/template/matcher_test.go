package template

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sardesh/srebuddy/internal/task"
)

func TestCoverage(t *testing.T) {
	tests := []struct {
		name     string
		example  string
		request  string
		expected float64
	}{
		{"identical", "deploy nginx", "deploy nginx", 1.0},
		{"no overlap", "restart redis", "deploy nginx", 0},
		{"larger example set", "deploy redis cache cluster", "deploy nginx", 0.25},
		{"larger task set", "deploy", "deploy nginx to staging", 0.25},
		{"example contains task token", "kubernetes", "kube", 1.0},
		{"task contains example token", "kube", "kubernetes", 1.0},
		{"case insensitive", "Deploy NGINX", "deploy nginx", 1.0},
		{"duplicates collapse", "deploy deploy nginx", "deploy nginx", 1.0},
		{"empty example", "", "deploy nginx", 0},
		{"both empty", "", "", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Coverage(tokenSet(tc.example), tokenSet(tc.request))
			assert.InDelta(t, tc.expected, got, 1e-9)
		})
	}
}

func TestSelect_IdenticalExampleBeatsPartialOverlap(t *testing.T) {
	d := task.Parse("deploy nginx")
	corpus := []Template{
		{Command: "deploy", Examples: []string{"deploy nginx ingress controller"}, Body: "partial"},
		{Command: "deploy", Examples: []string{"deploy nginx"}, Body: "exact"},
	}

	tpl, score := Select(corpus, d, "deploy")
	require.NotNil(t, tpl)
	assert.Equal(t, "exact", tpl.Body)
	assert.InDelta(t, 1.0, score.Total, 1e-9)
	assert.InDelta(t, 1.0, score.ExampleScore(), 1e-9)

	partial := ScoreTemplate(corpus[0], d.MatchText())
	assert.Greater(t, partial.Total, MatchThreshold)
	assert.Less(t, partial.Total, score.Total)
}

func TestSelect_NeverCrossesCommands(t *testing.T) {
	d := task.Parse("monitor prometheus targets")
	corpus := []Template{
		{Command: "monitor", Examples: []string{"monitor prometheus targets"}, Body: "monitor"},
		{Command: "implement", Examples: []string{"implement prometheus"}, Body: "implement"},
	}

	tpl, _ := Select(corpus, d, "deploy")
	assert.Nil(t, tpl)

	for _, command := range []string{"monitor", "implement", "MONITOR"} {
		tpl, _ := Select(corpus, d, command)
		if tpl != nil {
			assert.Equal(t, strings.ToLower(command), tpl.Command)
		}
	}
}

func TestSelect_CommandCaseInsensitive(t *testing.T) {
	d := task.Parse("implement dynatrace in production")
	corpus := []Template{
		{Command: "Implement", Examples: []string{"implement dynatrace in production"}, Body: "dynatrace"},
	}

	for _, command := range []string{"implement", "IMPLEMENT", " Implement "} {
		tpl, score := Select(corpus, d, command)
		require.NotNil(t, tpl, command)
		assert.Equal(t, "dynatrace", tpl.Body)
		assert.Greater(t, score.Total, MatchThreshold)
	}
}

func TestSelect_Threshold(t *testing.T) {
	d := task.Parse("deploy nginx")

	t.Run("below threshold returns nil", func(t *testing.T) {
		corpus := []Template{{Command: "deploy", Examples: []string{"deploy redis cache cluster"}, Body: "b"}}
		tpl, score := Select(corpus, d, "deploy")
		assert.Nil(t, tpl)
		assert.InDelta(t, 0.25, score.Total, 1e-9)
	})

	t.Run("score equal to threshold returns nil", func(t *testing.T) {
		// 3 of 10 example tokens overlap the request.
		corpus := []Template{{Command: "deploy", Examples: []string{"deploy nginx now a b c f h j k"}, Body: "b"}}
		tpl, score := Select(corpus, task.Descriptor{RawInput: "deploy nginx now", Target: "nginx"}, "deploy")
		assert.InDelta(t, 0.3, score.Total, 1e-9)
		assert.Nil(t, tpl)
	})

	t.Run("empty corpus returns nil", func(t *testing.T) {
		tpl, _ := Select(nil, d, "deploy")
		assert.Nil(t, tpl)
	})
}

func TestSelect_TiesGoToEarliest(t *testing.T) {
	d := task.Parse("deploy nginx")
	corpus := []Template{
		{Command: "deploy", Examples: []string{"deploy nginx"}, Body: "first"},
		{Command: "deploy", Examples: []string{"deploy nginx"}, Body: "second"},
	}

	tpl, _ := Select(corpus, d, "deploy")
	require.NotNil(t, tpl)
	assert.Equal(t, "first", tpl.Body)
}

func TestSelect_TagBonusCanExceedOne(t *testing.T) {
	d := task.Parse("deploy nginx to staging")
	corpus := []Template{{
		Command:  "deploy",
		Examples: []string{"deploy nginx to staging"},
		Tags:     []string{"NGINX", "staging", "kafka"},
		Body:     "b",
	}}

	tpl, score := Select(corpus, d, "deploy")
	require.NotNil(t, tpl)
	assert.InDelta(t, 1.0, score.TagBonus, 1e-9)
	assert.InDelta(t, 2.0, score.Total, 1e-9)
	assert.InDelta(t, 1.0, score.ExampleScore(), 1e-9)
}

func TestSelect_TagBonusRescuesWeakExamples(t *testing.T) {
	d := task.Parse("deploy nginx")
	corpus := []Template{{
		Command:  "deploy",
		Examples: []string{"roll out the web tier"},
		Tags:     []string{"nginx"},
		Body:     "b",
	}}

	tpl, score := Select(corpus, d, "deploy")
	require.NotNil(t, tpl)
	assert.InDelta(t, 0.0, score.ExampleScore(), 1e-9)
	assert.InDelta(t, 0.5, score.Total, 1e-9)

	// The same bonus spread over two examples falls below the threshold.
	corpus[0].Examples = append(corpus[0].Examples, "ship a new release")
	tpl, score = Select(corpus, d, "deploy")
	assert.Nil(t, tpl)
	assert.InDelta(t, 0.25, score.Total, 1e-9)
}

func TestSelect_ReturnsCopy(t *testing.T) {
	d := task.Parse("deploy nginx")
	corpus := []Template{{Command: "deploy", Examples: []string{"deploy nginx"}, Body: "original"}}

	tpl, _ := Select(corpus, d, "deploy")
	require.NotNil(t, tpl)
	tpl.Body = "changed"
	assert.Equal(t, "original", corpus[0].Body)
}

func TestMatcher_LogsScores(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	m := NewMatcher(zap.New(core))

	corpus := []Template{
		{Command: "deploy", Examples: []string{"deploy nginx"}, Body: "b"},
		{Command: "monitor", Examples: []string{"monitor nginx"}, Body: "b"},
	}
	m.Select(corpus, task.Parse("deploy nginx"), "deploy")

	scored := logs.FilterMessage("scored template").All()
	require.Len(t, scored, 1)
	assert.Equal(t, "deploy", scored[0].ContextMap()["command"])
	assert.InDelta(t, 1.0, scored[0].ContextMap()["score"], 1e-9)
}
