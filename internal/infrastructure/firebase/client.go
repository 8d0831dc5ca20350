package firebase

import (
	"context"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"duit/internal/domain/notification"
)

const fcmBatchLimit = 500

// Client implements notification.Messenger using Firebase Cloud Messaging
type Client struct {
	msgClient *messaging.Client
}

// NewClient initializes a Firebase app and returns an FCM client.
// An empty credentialsFile falls back to application default credentials.
func NewClient(ctx context.Context, credentialsFile string) (*Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	msgClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase messaging client: %w", err)
	}

	return &Client{msgClient: msgClient}, nil
}

// SendMulticast sends a push notification to multiple device tokens.
// Automatically batches into chunks of 500 (Firebase API limit). Per-token
// failures are collected into the result; only a whole-call transport
// failure is returned as an error.
func (c *Client) SendMulticast(ctx context.Context, tokens []string, msg notification.Message) (*notification.DispatchResult, error) {
	result := &notification.DispatchResult{}
	if len(tokens) == 0 {
		return result, nil
	}

	for _, batch := range chunkTokens(tokens, fcmBatchLimit) {
		multicast := &messaging.MulticastMessage{
			Tokens: batch,
			Notification: &messaging.Notification{
				Title: msg.Title,
				Body:  msg.Body,
			},
			Data: msg.Data,
		}

		resp, err := c.msgClient.SendEachForMulticast(ctx, multicast)
		if err != nil {
			return nil, fmt.Errorf("failed to send FCM multicast: %w", err)
		}

		result.SuccessCount += resp.SuccessCount
		result.FailureCount += resp.FailureCount
		if resp.FailureCount > 0 {
			c.collectFailures(batch, resp, result)
		}
	}

	log.Printf("FCM multicast: %d success, %d failure", result.SuccessCount, result.FailureCount)
	return result, nil
}

func (c *Client) collectFailures(tokens []string, resp *messaging.BatchResponse, result *notification.DispatchResult) {
	for i, sendResp := range resp.Responses {
		if sendResp.Error == nil {
			continue
		}
		result.FailedTokens = append(result.FailedTokens, tokens[i])
		if messaging.IsUnregistered(sendResp.Error) || messaging.IsInvalidArgument(sendResp.Error) {
			log.Printf("Invalid FCM token at index %d: %v", i, sendResp.Error)
		} else {
			log.Printf("FCM send error at index %d: %v", i, sendResp.Error)
		}
	}
}

func chunkTokens(tokens []string, size int) [][]string {
	var chunks [][]string
	for i := 0; i < len(tokens); i += size {
		end := i + size
		if end > len(tokens) {
			end = len(tokens)
		}
		chunks = append(chunks, tokens[i:end])
	}
	return chunks
}
