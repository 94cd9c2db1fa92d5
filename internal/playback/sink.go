package playback

// Sink is the audio output capability a queue plays through. Exactly one
// item drives the sink at a time; the queue owns start/stop/release.
type Sink interface {
	// Play starts playback of audio and returns a channel that closes
	// when the sink reports the utterance finished. The signal can be
	// lost (a stalled client, a dropped connection); the queue's
	// watchdog covers that case.
	Play(audio []byte) (<-chan struct{}, error)
	// Stop halts whatever is currently playing.
	Stop()
	// Release frees the resources behind the last played utterance.
	Release()
}

// NopSink discards audio and completes immediately. It stands in while
// no listener is attached to a conversation.
type NopSink struct{}

// Play reports immediate completion.
func (NopSink) Play([]byte) (<-chan struct{}, error) {
	done := make(chan struct{})
	close(done)
	return done, nil
}

// Stop is a no-op.
func (NopSink) Stop() {}

// Release is a no-op.
func (NopSink) Release() {}
