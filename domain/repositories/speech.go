package repositories

import (
	"context"
	"iter"
)

// ChunkKind discriminates what a streamed speech chunk carries.
type ChunkKind int

const (
	// ChunkEmpty is a chunk with no usable content. Skipped during aggregation.
	ChunkEmpty ChunkKind = iota
	// ChunkAudio carries raw audio bytes tagged with a MIME type.
	ChunkAudio
	// ChunkText carries an informational text note from the provider.
	ChunkText
)

// SpeechChunk is one unit of a streamed synthesis response. Exactly one of
// the payload fields is meaningful, selected by Kind.
type SpeechChunk struct {
	Kind     ChunkKind
	Data     []byte
	MIMEType string
	Text     string
}

// SpeechSynthesizer abstracts a streaming text-to-speech provider.
type SpeechSynthesizer interface {
	// StreamSpeech issues a synthesis request and returns the provider's
	// chunk sequence. The sequence is single-shot and must be consumed
	// front to back; a non-nil error value terminates it.
	StreamSpeech(ctx context.Context, text string) iter.Seq2[SpeechChunk, error]
	// Voice reports the fixed voice the synthesizer is bound to.
	Voice() string
}
