package api

import (
	"context"
	"sync"

	"github.com/diogo/aicms/internal/models"
)

// UpdateCall records one UpdateContent invocation
type UpdateCall struct {
	ID    int64
	Input models.ContentInput
}

// MockClient is a mock implementation of ClientInterface for testing
type MockClient struct {
	// Mock return values
	ChatReply   string
	ChatErr     error
	Cards       []models.ContentCard
	ListErr     error
	CreateVal   models.ContentCard
	CreateErr   error
	UpdateVal   *models.ContentCard
	UpdateErr   error
	DeleteErr   error
	IsClosedVal bool

	// Call counters/recorders
	mu          sync.Mutex
	ChatCalls   []string
	ListCalls   int
	CreateCalls []models.ContentInput
	UpdateCalls []UpdateCall
	DeleteCalls []int64
	CloseCalled bool
}

// Ensure MockClient implements ClientInterface
var _ ClientInterface = (*MockClient)(nil)

func (m *MockClient) SendChat(ctx context.Context, text string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ChatCalls = append(m.ChatCalls, text)
	if m.ChatErr != nil {
		return "", m.ChatErr
	}
	return m.ChatReply, nil
}

func (m *MockClient) ListContent(ctx context.Context) ([]models.ContentCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	cards := make([]models.ContentCard, len(m.Cards))
	copy(cards, m.Cards)
	return cards, nil
}

func (m *MockClient) CreateContent(ctx context.Context, in models.ContentInput) (models.ContentCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = append(m.CreateCalls, in)
	if m.CreateErr != nil {
		return models.ContentCard{}, m.CreateErr
	}
	return m.CreateVal, nil
}

func (m *MockClient) UpdateContent(ctx context.Context, id int64, in models.ContentInput) (models.ContentCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls = append(m.UpdateCalls, UpdateCall{ID: id, Input: in})
	if m.UpdateErr != nil {
		return models.ContentCard{}, m.UpdateErr
	}
	if m.UpdateVal != nil {
		return *m.UpdateVal, nil
	}
	return models.ContentCard{ID: id}.Apply(in), nil
}

func (m *MockClient) DeleteContent(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, id)
	return m.DeleteErr
}

func (m *MockClient) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalled = true
}

func (m *MockClient) IsClosed() bool {
	return m.IsClosedVal
}

// TotalRequests returns the number of calls that would have hit the network
func (m *MockClient) TotalRequests() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ChatCalls) + m.ListCalls + len(m.CreateCalls) + len(m.UpdateCalls) + len(m.DeleteCalls)
}
