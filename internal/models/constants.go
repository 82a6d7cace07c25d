// Package models contains data types and constants for the AI CMS endpoints.
package models

import (
	"fmt"
	"strings"
)

// DefaultBaseURL is the origin serving both the chat and the content endpoints
const DefaultBaseURL = "https://nimbou-api.stylconmarketplace.com"

// Endpoint paths, relative to the base URL. The trailing slash is required by the server.
const (
	PathChat    = "/api/chat/"
	PathContent = "/api/content/"
)

// ContentItemPath returns the path of a single content item
func ContentItemPath(id int64) string {
	return fmt.Sprintf("%s%d/", PathContent, id)
}

// JoinURL joins a base URL and an endpoint path without doubling slashes
func JoinURL(baseURL, path string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// DefaultHeaders returns the headers sent with every request
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type":    "application/json",
		"Accept":          "application/json, text/plain, */*",
		"Accept-Language": "en-US,en;q=0.9",
		"User-Agent":      "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36",
	}
}
