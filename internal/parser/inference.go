package parser

import "github.com/hbowie/NotenikLib-sub002/internal/note"

// inferState is the assembler's running guess at a note's dialect.
// The tentative states can still be refined; the others are committed.
type inferState int

const (
	stateUnknown inferState = iota
	statePlain
	stateMarkdown
	stateLabeled      // tentative: label lines seen, no blank line yet
	stateLabeledBlank // tentative: exactly one field, then a blank line
	stateMultiMarkdown
	stateYAML
	stateNotenik
)

var stateNames = map[inferState]string{
	stateUnknown:       "unknown",
	statePlain:         "plain",
	stateMarkdown:      "markdown",
	stateLabeled:       "labeled",
	stateLabeledBlank:  "labeled-blank",
	stateMultiMarkdown: "multimarkdown",
	stateYAML:          "yaml",
	stateNotenik:       "notenik",
}

func (s inferState) String() string {
	return stateNames[s]
}

// inferEvent is a piece of structural evidence.
type inferEvent int

const (
	evDelimiter inferEvent = iota
	evHeading
	evLabel
	evBodyLabel
	evProse
	evBlankAfterOne
	evBlankAfterMany
)

// transitions lists every legal refinement. Missing entries leave the
// state unchanged, so committed states absorb all further evidence.
var transitions = map[inferState]map[inferEvent]inferState{
	stateUnknown: {
		evDelimiter: stateYAML,
		evHeading:   stateMarkdown,
		evLabel:     stateLabeled,
		evBodyLabel: stateNotenik,
		evProse:     statePlain,
	},
	stateLabeled: {
		evLabel:          stateLabeled,
		evBodyLabel:      stateNotenik,
		evProse:          stateMarkdown,
		evBlankAfterOne:  stateLabeledBlank,
		evBlankAfterMany: stateMultiMarkdown,
	},
	stateLabeledBlank: {
		evLabel:     stateNotenik,
		evBodyLabel: stateNotenik,
		evProse:     stateMultiMarkdown,
	},
}

// finalDialect maps each state to the dialect reported at end of input.
var finalDialect = map[inferState]note.Dialect{
	stateUnknown:       note.PlainText,
	statePlain:         note.PlainText,
	stateMarkdown:      note.Markdown,
	stateLabeled:       note.Notenik,
	stateLabeledBlank:  note.MultiMarkdown,
	stateMultiMarkdown: note.MultiMarkdown,
	stateYAML:          note.YAML,
	stateNotenik:       note.Notenik,
}

type inference struct {
	state inferState
}

// observe applies ev and returns the resulting state.
func (in *inference) observe(ev inferEvent) inferState {
	if next, ok := transitions[in.state][ev]; ok {
		in.state = next
	}
	return in.state
}

// tentative reports whether further evidence may still change the state.
func (in *inference) tentative() bool {
	_, ok := transitions[in.state]
	return ok
}

func (in *inference) dialect() note.Dialect {
	return finalDialect[in.state]
}
