package handlers_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/eventlane/apiserver/internal/server"
	"github.com/eventlane/apiserver/internal/services"
	"github.com/eventlane/apiserver/internal/store"
	"github.com/eventlane/apiserver/types"
)

// fakeUserRepo backs the auth routes with an in-memory users table.
type fakeUserRepo struct {
	byUID  map[string]types.User
	nextID int
	err    error
}

func (f *fakeUserRepo) GetByFirebaseUID(ctx context.Context, uid string) (types.User, error) {
	if f.err != nil {
		return types.User{}, f.err
	}
	user, ok := f.byUID[uid]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	if f.err != nil {
		return types.User{}, f.err
	}
	if _, ok := f.byUID[user.FirebaseUID]; ok {
		return types.User{}, store.ErrDuplicate
	}
	user.ID = f.nextID
	f.nextID++
	f.byUID[user.FirebaseUID] = user
	return user, nil
}

// fakeEventRepo backs the event routes with an in-memory events table,
// listing in (date, time) order like the SQL does.
type fakeEventRepo struct {
	byID   map[int]types.Event
	nextID int
	err    error
}

func (f *fakeEventRepo) ListByUser(ctx context.Context, userID int) ([]types.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	events := make([]types.Event, 0)
	for _, event := range f.byID {
		if event.UserID == userID {
			events = append(events, event)
		}
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return events[i].Time < events[j].Time
	})
	return events, nil
}

func (f *fakeEventRepo) Get(ctx context.Context, id int) (types.Event, error) {
	if f.err != nil {
		return types.Event{}, f.err
	}
	event, ok := f.byID[id]
	if !ok {
		return types.Event{}, store.ErrNotFound
	}
	return event, nil
}

func (f *fakeEventRepo) Create(ctx context.Context, event types.Event) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	event.ID = f.nextID
	f.nextID++
	f.byID[event.ID] = event
	return event.ID, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, event types.Event) error {
	if f.err != nil {
		return f.err
	}
	stored, ok := f.byID[event.ID]
	if !ok {
		return store.ErrNotFound
	}
	event.UserID = stored.UserID
	f.byID[event.ID] = event
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id int) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type testEnv struct {
	router    http.Handler
	userRepo  *fakeUserRepo
	eventRepo *fakeEventRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	userRepo := &fakeUserRepo{byUID: map[string]types.User{}, nextID: 1}
	eventRepo := &fakeEventRepo{byID: map[int]types.Event{}, nextID: 1}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := server.NewRouter(
		services.NewUserService(userRepo),
		services.NewEventService(eventRepo),
		logger,
	)
	return &testEnv{router: router, userRepo: userRepo, eventRepo: eventRepo}
}

func (e *testEnv) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}
