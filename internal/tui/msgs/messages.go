// Package msgs defines shared message types for TUI view transitions.
package msgs

import "github.com/sardesh/srebuddy/internal/pipeline"

// View transition messages

// GoToHomeMsg signals transition to the home view.
type GoToHomeMsg struct{}

// SubmitRequestMsg is sent when the user submits a request from the home view.
type SubmitRequestMsg struct {
	Input string
	// Command is the selected template command. Empty means derive it from
	// the request.
	Command string
}

// ResultMsg carries the outcome of running a request.
type ResultMsg struct {
	Result *pipeline.Result
	Err    error
}

// CorpusChangedMsg reports the template corpus after it was (re)loaded.
type CorpusChangedMsg struct {
	Templates int
	Files     []string
}

// CopiedMsg reports the outcome of copying the prompt to the clipboard.
type CopiedMsg struct {
	Err error
}
