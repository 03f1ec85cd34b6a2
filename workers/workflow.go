package workers

import (
	"time"

	"go.temporal.io/sdk/workflow"
)

// IndexSubjectState carries an indexing run through its activities, so
// a replayed workflow skips the steps that already completed.
type IndexSubjectState struct {
	Subject   string   `json:"subject"`
	SourceURI string   `json:"sourceUri"`
	Markdown  string   `json:"markdown"`
	ChunkIDs  []string `json:"chunkIds"`
	Embedded  bool     `json:"embedded"`
}

// IndexSubjectWorkflow ingests one markdown document into a subject's
// index: ensure search indexes, persist section chunks, embed them.
func IndexSubjectWorkflow(ctx workflow.Context, state IndexSubjectState) (IndexSubjectState, error) {
	activityOpts := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute * 10,
	}
	ctx = workflow.WithActivityOptions(ctx, activityOpts)

	err := workflow.ExecuteActivity(ctx, (*Activities).EnsureSubjectIndexes, state.Subject).Get(ctx, nil)
	if err != nil {
		return state, err
	}

	if len(state.ChunkIDs) == 0 {
		err = workflow.ExecuteActivity(ctx, (*Activities).SaveChunks,
			state.Subject, state.SourceURI, []byte(state.Markdown)).Get(ctx, &state.ChunkIDs)
		if err != nil {
			return state, err
		}
	}

	if !state.Embedded && len(state.ChunkIDs) > 0 {
		err = workflow.ExecuteActivity(ctx, (*Activities).EmbedChunks,
			state.Subject, state.ChunkIDs).Get(ctx, nil)
		if err != nil {
			return state, err
		}
		state.Embedded = true
	}

	return state, nil
}
