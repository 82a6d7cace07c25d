package models

import (
	"strings"
	"time"
)

// Sender identifies who authored a chat message
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Valid reports whether s is one of the known senders
func (s Sender) Valid() bool {
	return s == SenderUser || s == SenderBot
}

// ChatMessage is one entry of the chat transcript.
// The JSON shape is the one persisted by the transcript stores.
type ChatMessage struct {
	ID     int64  `json:"id"`
	Text   string `json:"text"`
	Sender Sender `json:"sender"`
}

// IsUser reports whether the message was sent by the user
func (m ChatMessage) IsUser() bool {
	return m.Sender == SenderUser
}

// NewChatMessage creates a message stamped with the current time in milliseconds.
// The id is bumped past prev so two messages created in the same millisecond
// still get distinct, increasing ids. Invalid UTF-8 in text is replaced with
// U+FFFD, which is what a JSON round trip would turn it into.
func NewChatMessage(text string, sender Sender, prev []ChatMessage) ChatMessage {
	return newChatMessageAt(time.Now(), text, sender, prev)
}

func newChatMessageAt(now time.Time, text string, sender Sender, prev []ChatMessage) ChatMessage {
	id := now.UnixMilli()
	if n := len(prev); n > 0 && id <= prev[n-1].ID {
		id = prev[n-1].ID + 1
	}
	return ChatMessage{ID: id, Text: strings.ToValidUTF8(text, "\uFFFD"), Sender: sender}
}
