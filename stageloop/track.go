package stageloop

import (
	"github.com/martinemde/stagecoach/chatmodel"
)

// Stage identifies which workflow stage a track belongs to.
type Stage string

const (
	StageDeliberation Stage = "deliberation"
	StageExecution    Stage = "execution"
)

// Track is an ordered, append-only sequence of turns scoped to one stage.
// Its first turn is always the shared base instruction. Tracks never merge;
// memory isolation between stages is structural, not convention.
type Track struct {
	stage Stage
	turns []chatmodel.Turn
}

// NewTrack creates a track seeded with the base system instruction.
func NewTrack(stage Stage, base string) *Track {
	return &Track{
		stage: stage,
		turns: []chatmodel.Turn{chatmodel.SystemTurn(base)},
	}
}

// Stage returns the stage this track is scoped to.
func (t *Track) Stage() Stage { return t.stage }

// AppendSystem appends a system turn.
func (t *Track) AppendSystem(content string) {
	t.turns = append(t.turns, chatmodel.SystemTurn(content))
}

// AppendUser appends a user turn.
func (t *Track) AppendUser(content string) {
	t.turns = append(t.turns, chatmodel.UserTurn(content))
}

// AppendAssistant appends an assistant turn.
func (t *Track) AppendAssistant(content string) {
	t.turns = append(t.turns, chatmodel.AssistantTurn(content))
}

// Turns returns a copy of the track's turns.
func (t *Track) Turns() []chatmodel.Turn {
	out := make([]chatmodel.Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

// Len returns the number of turns in the track.
func (t *Track) Len() int { return len(t.turns) }

// First returns the track's first turn, the base instruction.
func (t *Track) First() chatmodel.Turn { return t.turns[0] }

// Last returns the most recently appended turn.
func (t *Track) Last() chatmodel.Turn { return t.turns[len(t.turns)-1] }
