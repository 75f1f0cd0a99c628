package speech

import "context"

// SpeechInput delivers incremental transcript text from a recognition stream.
// The channel closes when the stream stops, either by user action or because
// the recognizer gave up. The browser's Web Speech API is the usual producer;
// tests feed a plain channel.
type SpeechInput interface {
	Transcripts() <-chan string
}

// MediaPermissionSource reports whether camera/microphone permission has been
// granted. Recording must not start without it.
type MediaPermissionSource interface {
	Granted() bool
}

// TextToSpeech synthesizes spoken audio for arbitrary text, used to read
// interview questions aloud.
type TextToSpeech interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
