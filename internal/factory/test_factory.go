package factory

import (
	"time"

	"github.com/pocketarcade/pocketarcade/internal/dependencies/mocks"
	"github.com/pocketarcade/pocketarcade/internal/games"
	"github.com/pocketarcade/pocketarcade/internal/services/identity"
	"github.com/pocketarcade/pocketarcade/internal/storage/memory"
	"github.com/pocketarcade/pocketarcade/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	MockClock    *mocks.MockClock
	MockRandom   *mocks.MockRandom
	MockNotifier *mocks.MockNotifier
	Store        *memory.Storage
}

// NewTestApp creates an App configured for testing with mocked
// dependencies, in-memory storage, and self-play enabled
func NewTestApp() *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockNotifier := mocks.NewMockNotifier()
	store := memory.New(mockClock)

	deps := games.Deps{
		Store:         store,
		Notifier:      mockNotifier,
		Resolver:      identity.NewStoreResolver(store),
		Clock:         mockClock,
		Random:        mockRandom,
		Logger:        testutil.NopLogger(),
		AllowSelfPlay: true,
		IdleThreshold: 30 * time.Minute,
	}

	return &TestApp{
		App:          newWithDependencies(deps, 10),
		MockClock:    mockClock,
		MockRandom:   mockRandom,
		MockNotifier: mockNotifier,
		Store:        store,
	}
}
