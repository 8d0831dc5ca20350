package notification

import (
	"context"
	"log"
	"strings"
)

// Outcome of a per-owner dispatch attempt.
type Outcome int

const (
	// OutcomeSkipped means the owner had no valid device tokens; the send
	// port was never invoked.
	OutcomeSkipped Outcome = iota
	// OutcomeSent means the multicast call completed; individual tokens may
	// still have failed.
	OutcomeSent
	// OutcomeFailed means the whole multicast call failed.
	OutcomeFailed
)

// Dispatcher fans one composed message out to all of an owner's devices in a
// single multicast call. Delivery failures are logged and absorbed here: one
// owner's failure must never abort processing of the others.
type Dispatcher struct {
	messenger Messenger
}

// NewDispatcher creates a new notification dispatcher
func NewDispatcher(messenger Messenger) *Dispatcher {
	return &Dispatcher{messenger: messenger}
}

// Dispatch filters and deduplicates the owner's tokens, stamps the priority
// into the data payload and sends one multicast. Owners with an empty
// effective token set are skipped before the send path is invoked.
func (d *Dispatcher) Dispatch(ctx context.Context, ownerID string, tokens []string, msg Message) Outcome {
	valid := NormalizeTokens(tokens)
	if len(valid) == 0 {
		log.Printf("No valid device tokens for user %s, skipping notification", ownerID)
		return OutcomeSkipped
	}

	data := make(map[string]string, len(msg.Data)+1)
	for k, v := range msg.Data {
		data[k] = v
	}
	if msg.Priority != "" {
		data["priority"] = msg.Priority
	}
	msg.Data = data

	result, err := d.messenger.SendMulticast(ctx, valid, msg)
	if err != nil {
		log.Printf("Error sending notification to user %s: %v", ownerID, err)
		return OutcomeFailed
	}

	result.OwnerID = ownerID
	log.Printf("Notification sent to user: %s, success: %d, failed: %d",
		ownerID, result.SuccessCount, result.FailureCount)
	if len(result.FailedTokens) > 0 {
		log.Printf("Failed tokens for user %s: %d of %d", ownerID, len(result.FailedTokens), len(valid))
	}

	return OutcomeSent
}

// NormalizeTokens removes blank and duplicate tokens, preserving order.
func NormalizeTokens(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	valid := make([]string, 0, len(tokens))
	for _, t := range tokens {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		valid = append(valid, t)
	}
	return valid
}
