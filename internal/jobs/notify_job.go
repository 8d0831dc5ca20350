package jobs

import (
	"context"
	"errors"
	"fmt"

	"duit/internal/domain/notification"
	"duit/internal/domain/user"
)

// notifyJob is the per-owner unit shared by the notification jobs: resolve
// the owner's device tokens, compose a message, dispatch it. Implements
// scheduler.Job.
type notifyJob struct {
	ownerID     string
	description string

	// Preloaded device tokens. When nil and a user repository is present,
	// the owner is resolved through it; a user preloaded without tokens is
	// simply skipped.
	tokens []string

	users      user.Repository
	dispatcher *notification.Dispatcher
	collector  *Collector

	// compose builds the message. ok=false skips the owner without error
	// (nothing to notify about this run).
	compose func(ctx context.Context) (msg notification.Message, ok bool, err error)
}

func (j *notifyJob) OwnerID() string     { return j.ownerID }
func (j *notifyJob) Description() string { return j.description }

func (j *notifyJob) Execute(ctx context.Context) error {
	tokens := j.tokens
	if tokens == nil && j.users != nil {
		owner, err := j.users.GetByID(ctx, j.ownerID)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				// Owner referenced by a record but absent from the user
				// collection; nothing to deliver to.
				j.collector.AddSkipped()
				return nil
			}
			j.collector.AddError()
			return fmt.Errorf("failed to load user %s: %w", j.ownerID, err)
		}
		tokens = owner.DeviceTokens
	}

	if len(notification.NormalizeTokens(tokens)) == 0 {
		j.collector.AddSkipped()
		return nil
	}

	msg, ok, err := j.compose(ctx)
	if err != nil {
		j.collector.AddError()
		return err
	}
	if !ok {
		j.collector.AddSkipped()
		return nil
	}

	switch j.dispatcher.Dispatch(ctx, j.ownerID, tokens, msg) {
	case notification.OutcomeSent:
		j.collector.AddSent()
	case notification.OutcomeSkipped:
		j.collector.AddSkipped()
	default:
		j.collector.AddError()
	}
	return nil
}
