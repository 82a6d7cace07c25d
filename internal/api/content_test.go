package api

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	apierrors "github.com/diogo/aicms/internal/errors"
	"github.com/diogo/aicms/internal/models"
)

func TestListContent(t *testing.T) {
	body := `[{"id":1,"title":"A","text":"alpha"},{"id":2,"title":"B","text":"beta","extra":true}]`
	mock := NewMockHttpClient([]byte(body), 200)
	client := newTestClient(t, mock)

	cards, err := client.ListContent(context.Background())
	if err != nil {
		t.Fatalf("ListContent() error: %v", err)
	}

	want := []models.ContentCard{{ID: 1, Title: "A", Text: "alpha"}, {ID: 2, Title: "B", Text: "beta"}}
	if len(cards) != len(want) {
		t.Fatalf("got %d cards, want %d", len(cards), len(want))
	}
	for i := range want {
		if cards[i] != want[i] {
			t.Errorf("cards[%d] = %+v, want %+v", i, cards[i], want[i])
		}
	}

	req := mock.LastRequest()
	if req.Method != "GET" || req.URL != "https://cms.test/api/content/" {
		t.Errorf("request = %s %s", req.Method, req.URL)
	}
}

func TestListContent_Empty(t *testing.T) {
	client := newTestClient(t, NewMockHttpClient([]byte(`[]`), 200))

	cards, err := client.ListContent(context.Background())
	if err != nil {
		t.Fatalf("ListContent() error: %v", err)
	}
	if cards == nil || len(cards) != 0 {
		t.Errorf("cards = %#v, want empty non-nil slice", cards)
	}
}

func TestListContent_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantPath string
	}{
		{"object", `{"results":[]}`, ""},
		{"invalid json", `[{`, ""},
		{"item without id", `[{"id":1,"title":"a","text":"b"},{"title":"x"}]`, "1.id"},
		{"string id", `[{"id":"7","title":"a","text":"b"}]`, "0.id"},
		{"scalar item", `[3]`, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, NewMockHttpClient([]byte(tt.body), 200))

			_, err := client.ListContent(context.Background())
			if !apierrors.IsParseError(err) {
				t.Fatalf("expected parse error, got %v", err)
			}
			var parseErr *apierrors.ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("errors.As failed for %v", err)
			}
			if parseErr.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", parseErr.Path, tt.wantPath)
			}
		})
	}
}

func TestCreateContent(t *testing.T) {
	mock := NewMockHttpClient([]byte(`{"id":9,"title":"T","text":"X"}`), 201)
	client := newTestClient(t, mock)

	card, err := client.CreateContent(context.Background(), models.ContentInput{Title: "T", Text: "X"})
	if err != nil {
		t.Fatalf("CreateContent() error: %v", err)
	}
	if card != (models.ContentCard{ID: 9, Title: "T", Text: "X"}) {
		t.Errorf("card = %+v", card)
	}

	req := mock.LastRequest()
	if req.Method != "POST" || req.URL != "https://cms.test/api/content/" {
		t.Errorf("request = %s %s", req.Method, req.URL)
	}
	var payload models.ContentInput
	if err := json.Unmarshal(req.Body, &payload); err != nil || payload.Title != "T" || payload.Text != "X" {
		t.Errorf("payload = %s", req.Body)
	}
}

func TestCreateContent_AckWithoutBody(t *testing.T) {
	client := newTestClient(t, NewMockHttpClient(nil, 204))

	card, err := client.CreateContent(context.Background(), models.ContentInput{Title: "T", Text: "X"})
	if err != nil {
		t.Fatalf("CreateContent() error: %v", err)
	}
	if card.ID != 0 || card.Title != "T" {
		t.Errorf("card = %+v", card)
	}
}

func TestCreateContent_RequiredFields(t *testing.T) {
	tests := []struct {
		name  string
		in    models.ContentInput
		field string
	}{
		{"no title", models.ContentInput{Text: "x"}, "title"},
		{"blank title", models.ContentInput{Title: "  ", Text: "x"}, "title"},
		{"no text", models.ContentInput{Title: "x"}, "text"},
		{"neither", models.ContentInput{}, "title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockHttpClient([]byte(`{}`), 201)
			client := newTestClient(t, mock)

			_, err := client.CreateContent(context.Background(), tt.in)
			if !apierrors.IsValidationError(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if err.(*apierrors.ValidationError).Field != tt.field {
				t.Errorf("Field = %s, want %s", err.(*apierrors.ValidationError).Field, tt.field)
			}
			if mock.RequestCount() != 0 {
				t.Error("no request should be sent on validation failure")
			}
		})
	}
}

func TestUpdateContent(t *testing.T) {
	mock := NewMockHttpClient([]byte(`{"id":4,"title":"new","text":"body"}`), 200)
	client := newTestClient(t, mock)

	card, err := client.UpdateContent(context.Background(), 4, models.ContentInput{Title: "new", Text: "body"})
	if err != nil {
		t.Fatalf("UpdateContent() error: %v", err)
	}
	if card != (models.ContentCard{ID: 4, Title: "new", Text: "body"}) {
		t.Errorf("card = %+v", card)
	}

	req := mock.LastRequest()
	if req.Method != "PATCH" || req.URL != "https://cms.test/api/content/4/" {
		t.Errorf("request = %s %s", req.Method, req.URL)
	}
}

func TestUpdateContent_AckFallsBackToInput(t *testing.T) {
	client := newTestClient(t, NewMockHttpClient([]byte(`{"status":"ok"}`), 200))

	card, err := client.UpdateContent(context.Background(), 4, models.ContentInput{Title: "a", Text: "b"})
	if err != nil {
		t.Fatalf("UpdateContent() error: %v", err)
	}
	if card != (models.ContentCard{ID: 4, Title: "a", Text: "b"}) {
		t.Errorf("card = %+v", card)
	}
}

func TestUpdateContent_NotFound(t *testing.T) {
	client := newTestClient(t, NewMockHttpClient([]byte(`{"detail":"Not found."}`), 404))

	_, err := client.UpdateContent(context.Background(), 99, models.ContentInput{Title: "a", Text: "b"})
	if apierrors.GetHTTPStatus(err) != 404 {
		t.Errorf("GetHTTPStatus() = %d, want 404 (err: %v)", apierrors.GetHTTPStatus(err), err)
	}
}

func TestDeleteContent(t *testing.T) {
	for _, status := range []int{200, 204} {
		mock := NewMockHttpClient(nil, status)
		client := newTestClient(t, mock)

		if err := client.DeleteContent(context.Background(), 3); err != nil {
			t.Errorf("DeleteContent() with %d error: %v", status, err)
		}
		req := mock.LastRequest()
		if req.Method != "DELETE" || req.URL != "https://cms.test/api/content/3/" {
			t.Errorf("request = %s %s", req.Method, req.URL)
		}
	}
}

func TestDeleteContent_ServerError(t *testing.T) {
	client := newTestClient(t, NewMockHttpClient([]byte("fail"), 503))

	err := client.DeleteContent(context.Background(), 3)
	if !apierrors.IsServerError(err) {
		t.Errorf("expected server error, got %v", err)
	}
}
