package models

import "strings"

// ContentCard is a content item managed through the content grid.
// The id is assigned by the server.
type ContentCard struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// ContentInput is the body of create and update requests
type ContentInput struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Input returns the editable fields of the card
func (c ContentCard) Input() ContentInput {
	return ContentInput{Title: c.Title, Text: c.Text}
}

// Apply returns a copy of the card with the input fields applied; the id is kept
func (c ContentCard) Apply(in ContentInput) ContentCard {
	c.Title = in.Title
	c.Text = in.Text
	return c
}

// MissingField returns the name of the first required field left blank, or ""
func (in ContentInput) MissingField() string {
	if strings.TrimSpace(in.Title) == "" {
		return "title"
	}
	if strings.TrimSpace(in.Text) == "" {
		return "text"
	}
	return ""
}
