package fcm

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

type (
	// Client wraps Firebase Cloud Messaging. It satisfies the push sender
	// interfaces of the feature services.
	Client struct {
		messagingClient *messaging.Client
		log             *zap.Logger
	}
)

func NewClient(ctx context.Context, credentialsFile string, log *zap.Logger) (*Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("initializing firebase app: %w", err)
	}

	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating messaging client: %w", err)
	}

	return &Client{
		messagingClient: messagingClient,
		log:             log,
	}, nil
}

// SendToTokens delivers one notification to every token. Tokens that fail are
// logged; the call only errors when the whole multicast fails.
func (c *Client) SendToTokens(ctx context.Context, tokens []string, title, body string) error {
	if len(tokens) == 0 {
		return nil
	}

	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
	}

	response, err := c.messagingClient.SendEachForMulticast(ctx, message)
	if err != nil {
		return fmt.Errorf("sending fcm multicast: %w", err)
	}

	if response.FailureCount > 0 {
		c.log.Warn("fcm multicast partially failed",
			zap.Int("success", response.SuccessCount),
			zap.Int("failure", response.FailureCount),
		)
	}

	return nil
}
