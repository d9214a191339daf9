package interfaces

import "context"

// PipelineService runs the full analysis pipeline for one inbound message.
type PipelineService interface {
	// HandleMessage processes a single chat message end to end. It never
	// returns an error: every failure mode ends in a message (or a logged
	// delivery failure) for the originating chat.
	HandleMessage(ctx context.Context, chatID int64, prompt string)
}
