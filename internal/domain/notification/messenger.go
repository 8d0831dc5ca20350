package notification

import "context"

// Message is a composed push notification. Every Data value is a string, and
// the Priority field is mirrored into Data at dispatch time so the mobile
// client can route display.
type Message struct {
	Title    string
	Body     string
	Data     map[string]string
	Priority string
}

// DispatchResult is the per-send outcome of one multicast call. Ephemeral:
// logged, never persisted.
type DispatchResult struct {
	OwnerID      string
	SuccessCount int
	FailureCount int
	FailedTokens []string
}

// Messenger is the send port for batched push delivery. A whole-call failure
// is returned as an error and must be catchable without crashing the caller;
// per-token failures are reported inside the result.
type Messenger interface {
	SendMulticast(ctx context.Context, tokens []string, msg Message) (*DispatchResult, error)
}
