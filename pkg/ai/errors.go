package ai

// AIError wraps a failed call to the generative service.
type AIError struct {
	Message string
	Cause   error
}

func (e *AIError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AIError) Unwrap() error { return e.Cause }

// MalformedResponseError means the model's text could not be parsed as the
// expected JSON shape even after cleaning.
type MalformedResponseError struct {
	Raw   string
	Cause error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return "malformed AI response: " + e.Cause.Error()
	}
	return "malformed AI response"
}

func (e *MalformedResponseError) Unwrap() error { return e.Cause }

// GenerationFailure means the model answered but the result was unusable,
// for example an empty name after cleaning.
type GenerationFailure struct {
	Message string
}

func (e *GenerationFailure) Error() string { return e.Message }
