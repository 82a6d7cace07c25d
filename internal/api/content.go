package api

import (
	"bytes"
	"context"
	"strconv"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/aicms/internal/errors"
	"github.com/diogo/aicms/internal/models"
)

// ListContent fetches every content card
func (c *Client) ListContent(ctx context.Context) ([]models.ContentCard, error) {
	body, err := c.do(ctx, http.MethodGet, OpListContent, models.PathContent, nil)
	if err != nil {
		return nil, err
	}

	endpoint := models.JoinURL(c.baseURL, models.PathContent)
	if !gjson.ValidBytes(body) {
		return nil, parseErrorAt("response is not valid JSON", "", endpoint)
	}

	result := gjson.ParseBytes(body)
	if !result.IsArray() {
		return nil, parseErrorAt("expected an array of content items", "", endpoint)
	}

	items := result.Array()
	cards := make([]models.ContentCard, 0, len(items))
	for i, item := range items {
		card, err := parseCard(item, strconv.Itoa(i), endpoint)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	return cards, nil
}

// CreateContent creates a content item. The returned card is the one echoed by
// the server, or the input with a zero ID when the server sends no body.
func (c *Client) CreateContent(ctx context.Context, in models.ContentInput) (models.ContentCard, error) {
	if err := validateInput(in); err != nil {
		return models.ContentCard{}, err
	}

	body, err := c.do(ctx, http.MethodPost, OpCreateContent, models.PathContent, in)
	if err != nil {
		return models.ContentCard{}, err
	}

	return cardOrInput(body, 0, in, models.JoinURL(c.baseURL, models.PathContent))
}

// UpdateContent patches the title and text of the item with the given id
func (c *Client) UpdateContent(ctx context.Context, id int64, in models.ContentInput) (models.ContentCard, error) {
	if err := validateInput(in); err != nil {
		return models.ContentCard{}, err
	}

	path := models.ContentItemPath(id)
	body, err := c.do(ctx, http.MethodPatch, OpUpdateContent, path, in)
	if err != nil {
		return models.ContentCard{}, err
	}

	return cardOrInput(body, id, in, models.JoinURL(c.baseURL, path))
}

// DeleteContent removes the item with the given id. Any 2xx response is success.
func (c *Client) DeleteContent(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, OpDeleteContent, models.ContentItemPath(id), nil)
	return err
}

func validateInput(in models.ContentInput) error {
	if field := in.MissingField(); field != "" {
		return apierrors.NewRequiredFieldError(field)
	}
	return nil
}

// parseCard reads one content item; path locates it in the response for errors
func parseCard(item gjson.Result, path, endpoint string) (models.ContentCard, error) {
	if !item.IsObject() {
		return models.ContentCard{}, parseErrorAt("content item is not an object", path, endpoint)
	}

	id := item.Get(PathCardID)
	if id.Type != gjson.Number {
		idPath := PathCardID
		if path != "" {
			idPath = path + "." + PathCardID
		}
		return models.ContentCard{}, parseErrorAt("content item has no numeric id", idPath, endpoint)
	}

	return models.ContentCard{
		ID:    id.Int(),
		Title: item.Get(PathCardTitle).String(),
		Text:  item.Get(PathCardText).String(),
	}, nil
}

// cardOrInput parses a mutation response, falling back to the submitted values
// when the server acknowledges without echoing the item
func cardOrInput(body []byte, id int64, in models.ContentInput, endpoint string) (models.ContentCard, error) {
	fallback := models.ContentCard{ID: id}.Apply(in)

	if len(bytes.TrimSpace(body)) == 0 {
		return fallback, nil
	}
	if !gjson.ValidBytes(body) {
		return models.ContentCard{}, parseErrorAt("response is not valid JSON", "", endpoint)
	}

	result := gjson.ParseBytes(body)
	if !result.IsObject() || !result.Get(PathCardID).Exists() {
		return fallback, nil
	}
	return parseCard(result, "", endpoint)
}
