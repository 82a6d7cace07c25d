package devserver

import (
	"context"
	"fmt"
	"strings"
)

// Responder produces the bot reply for a chat message
type Responder interface {
	Reply(ctx context.Context, message string) (string, error)
}

// EchoResponder answers deterministically by quoting the message back
type EchoResponder struct{}

func (EchoResponder) Reply(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return fmt.Sprintf("You said: **%s**", strings.TrimSpace(message)), nil
}
