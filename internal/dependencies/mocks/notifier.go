package mocks

import (
	"context"
	"sync"

	"github.com/pocketarcade/pocketarcade/internal/model"
	"github.com/pocketarcade/pocketarcade/internal/services/notify"
)

// Notification is one message captured by MockNotifier
type Notification struct {
	Recipient model.PlayerID
	Content   string
}

// MockNotifier records notifications for assertions. FailFor makes
// delivery to specific recipients return an error.
type MockNotifier struct {
	mu      sync.Mutex
	Sent    []Notification
	FailFor map[model.PlayerID]error
}

var _ notify.Notifier = (*MockNotifier)(nil)

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{FailFor: make(map[model.PlayerID]error)}
}

func (n *MockNotifier) Notify(_ context.Context, recipient model.PlayerID, content string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if err, ok := n.FailFor[recipient]; ok {
		return err
	}
	n.Sent = append(n.Sent, Notification{Recipient: recipient, Content: content})
	return nil
}

// SentTo returns the contents delivered to one recipient
func (n *MockNotifier) SentTo(recipient model.PlayerID) []string {
	n.mu.Lock()
	defer n.mu.Unlock()

	var contents []string
	for _, sent := range n.Sent {
		if sent.Recipient == recipient {
			contents = append(contents, sent.Content)
		}
	}
	return contents
}
