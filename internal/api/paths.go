// Package api provides the HTTP client for the AI CMS chat and content endpoints.
package api

// GJSON paths for extracting values from endpoint responses.
const (
	// PathReply holds the bot reply in a chat response
	PathReply = "message"

	// Content item fields
	PathCardID    = "id"
	PathCardTitle = "title"
	PathCardText  = "text"
)

// Operation names used in errors and log entries
const (
	OpSendChat      = "send chat"
	OpListContent   = "list content"
	OpCreateContent = "create content"
	OpUpdateContent = "update content"
	OpDeleteContent = "delete content"
)
