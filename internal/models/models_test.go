package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestContentItemPath(t *testing.T) {
	tests := []struct {
		id   int64
		want string
	}{
		{1, "/api/content/1/"},
		{42, "/api/content/42/"},
	}

	for _, tt := range tests {
		if got := ContentItemPath(tt.id); got != tt.want {
			t.Errorf("ContentItemPath(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestJoinURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		path string
		want string
	}{
		{"plain", "https://example.com", "/api/chat/", "https://example.com/api/chat/"},
		{"trailing slash on base", "https://example.com/", "/api/chat/", "https://example.com/api/chat/"},
		{"no leading slash on path", "https://example.com", "api/content/", "https://example.com/api/content/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JoinURL(tt.base, tt.path); got != tt.want {
				t.Errorf("JoinURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewChatMessage_IDsIncrease(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)

	first := newChatMessageAt(now, "hi", SenderUser, nil)
	if first.ID != now.UnixMilli() {
		t.Errorf("first.ID = %d, want %d", first.ID, now.UnixMilli())
	}

	// Same millisecond: the id must still move forward
	second := newChatMessageAt(now, "hello", SenderBot, []ChatMessage{first})
	if second.ID <= first.ID {
		t.Errorf("second.ID = %d, want > %d", second.ID, first.ID)
	}
	if second.Sender != SenderBot {
		t.Errorf("second.Sender = %q, want bot", second.Sender)
	}
}

func TestNewChatMessage_InvalidUTF8(t *testing.T) {
	msg := NewChatMessage("a\xffb", SenderBot, nil)
	if msg.Text != "a\uFFFDb" {
		t.Errorf("Text = %q, want invalid bytes replaced", msg.Text)
	}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var back ChatMessage
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back != msg {
		t.Errorf("round trip = %+v, want %+v", back, msg)
	}
}

func TestChatMessage_JSONShape(t *testing.T) {
	msg := ChatMessage{ID: 7, Text: "hi", Sender: SenderUser}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `{"id":7,"text":"hi","sender":"user"}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestSenderValid(t *testing.T) {
	if !SenderUser.Valid() || !SenderBot.Valid() {
		t.Error("user and bot should be valid senders")
	}
	if Sender("assistant").Valid() {
		t.Error("assistant should not be a valid sender")
	}
}

func TestContentCard_Apply(t *testing.T) {
	card := ContentCard{ID: 3, Title: "Old", Text: "old text"}
	updated := card.Apply(ContentInput{Title: "New", Text: "new text"})

	if updated.ID != 3 {
		t.Errorf("ID = %d, want 3", updated.ID)
	}
	if updated.Title != "New" || updated.Text != "new text" {
		t.Errorf("Apply() = %+v", updated)
	}
	if card.Title != "Old" {
		t.Error("Apply() must not modify the receiver")
	}
}

func TestContentInput_MissingField(t *testing.T) {
	tests := []struct {
		name  string
		input ContentInput
		want  string
	}{
		{"complete", ContentInput{Title: "T", Text: "X"}, ""},
		{"blank title", ContentInput{Title: "  ", Text: "X"}, "title"},
		{"blank text", ContentInput{Title: "T", Text: "\n"}, "text"},
		{"both blank", ContentInput{}, "title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.input.MissingField(); got != tt.want {
				t.Errorf("MissingField() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFetchStatus(t *testing.T) {
	if StatusForCount(0) != FetchLoadedEmpty {
		t.Error("StatusForCount(0) should be loaded-empty")
	}
	if StatusForCount(2) != FetchLoadedNonEmpty {
		t.Error("StatusForCount(2) should be loaded-nonempty")
	}
	if FetchLoading.Loaded() || FetchFailed.Loaded() {
		t.Error("loading and failed are not loaded states")
	}
	if FetchLoadedEmpty.String() != "loaded-empty" {
		t.Errorf("String() = %q", FetchLoadedEmpty.String())
	}
}
