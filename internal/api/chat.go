package api

import (
	"context"
	"strings"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/aicms/internal/errors"
	"github.com/diogo/aicms/internal/models"
)

type chatRequest struct {
	Message string `json:"message"`
}

// SendChat posts the user text to the chat endpoint and returns the bot reply.
// The text is sent as typed; only blank text is rejected.
func (c *Client) SendChat(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", apierrors.ErrEmptyMessage
	}

	body, err := c.do(ctx, http.MethodPost, OpSendChat, models.PathChat, chatRequest{Message: text})
	if err != nil {
		return "", err
	}

	return parseChatReply(body, models.JoinURL(c.baseURL, models.PathChat))
}

// parseChatReply extracts the reply text from a chat response body
func parseChatReply(body []byte, endpoint string) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", parseErrorAt("response is not valid JSON", "", endpoint)
	}

	reply := gjson.GetBytes(body, PathReply)
	if !reply.Exists() {
		return "", parseErrorAt("reply field missing", PathReply, endpoint)
	}
	if reply.Type != gjson.String {
		return "", parseErrorAt("reply is not a string", PathReply, endpoint)
	}

	return reply.String(), nil
}

func parseErrorAt(message, path, endpoint string) *apierrors.ParseError {
	err := apierrors.NewParseError(message, path)
	err.Endpoint = endpoint
	return err
}
