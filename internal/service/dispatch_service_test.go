package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"adminboard-be/internal/dto"
	"adminboard-be/internal/entity"
	"adminboard-be/internal/model"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	noopLogger
	mu      sync.Mutex
	entries []recordedEntry
}

type recordedEntry struct {
	message string
	details map[string]interface{}
}

func (l *recordingLogger) Info(module, message string, details map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, recordedEntry{message: message, details: details})
}

func (l *recordingLogger) snapshot() []recordedEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]recordedEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *recordingLogger) waitFor(t *testing.T, n int) []recordedEntry {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if got := l.snapshot(); len(got) >= n {
			return got
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d dispatch decisions, got %d", n, len(l.snapshot()))
	return nil
}

type fakeUserRepo struct {
	users []*model.User
}

func (f *fakeUserRepo) FindByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	for _, u := range f.users {
		if u.ExternalID == externalID {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context, limit, offset int) ([]*model.User, error) {
	if offset >= len(f.users) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.users) {
		end = len(f.users)
	}
	return f.users[offset:end], nil
}

func (f *fakeUserRepo) Save(ctx context.Context, user *model.User) error { return nil }

func (f *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func startDispatch(t *testing.T, prefs *fakePreferenceRepo, users *fakeUserRepo) (IDispatchQueue, *recordingLogger) {
	t.Helper()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { pubSub.Close() })

	logRec := &recordingLogger{}
	factory := &fakeFactory{uow: &fakeUow{preferences: prefs, users: users}}

	svc := NewDispatchService(pubSub, "DISPATCH_TEST", factory, logRec)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, svc.Consume(ctx))

	return NewDispatchQueue("DISPATCH_TEST", pubSub), logRec
}

func TestDispatchTargetedDecisions(t *testing.T) {
	prefs := newFakePreferenceRepo()
	prefs.records["auth0|optout"] = func() *entity.PreferenceRecord {
		r := entity.DefaultPreferenceRecord("auth0|optout")
		r.Categories.Marketing = false
		return r
	}()
	prefs.records["auth0|digest"] = func() *entity.PreferenceRecord {
		r := entity.DefaultPreferenceRecord("auth0|digest")
		r.Frequency = entity.FrequencyDaily
		return r
	}()

	queue, logRec := startDispatch(t, prefs, &fakeUserRepo{})
	ctx := context.Background()
	notificationID := uuid.New()

	for _, recipient := range []string{"auth0|fresh", "auth0|optout", "auth0|digest"} {
		require.NoError(t, queue.Enqueue(ctx, dto.DispatchNotificationMessage{
			NotificationId: notificationID,
			RecipientId:    recipient,
			Category:       "marketing",
			QueuedAt:       time.Now(),
		}))
	}

	entries := logRec.waitFor(t, 3)
	byUser := make(map[string]recordedEntry)
	for _, e := range entries {
		byUser[e.details["user_id"].(string)] = e
	}

	assert.Equal(t, "Dispatch due now", byUser["auth0|fresh"].message)

	assert.Equal(t, "Dispatch suppressed by category preference", byUser["auth0|optout"].message)
	_, hasRetry := byUser["auth0|optout"].details["next_eligible_at"]
	assert.False(t, hasRetry, "category suppression carries no retry time")

	assert.Equal(t, "Dispatch deferred", byUser["auth0|digest"].message)
	assert.Contains(t, byUser["auth0|digest"].details, "next_eligible_at")
}

func TestDispatchBroadcastExpansion(t *testing.T) {
	users := &fakeUserRepo{users: []*model.User{
		{ExternalID: "auth0|u1"},
		{ExternalID: "auth0|u2"},
		{ExternalID: "auth0|u3"},
	}}

	queue, logRec := startDispatch(t, newFakePreferenceRepo(), users)

	require.NoError(t, queue.Enqueue(context.Background(), dto.DispatchNotificationMessage{
		NotificationId: uuid.New(),
		RecipientId:    "",
		Category:       "system",
		QueuedAt:       time.Now(),
	}))

	entries := logRec.waitFor(t, 3)
	seen := make(map[string]bool)
	for _, e := range entries {
		seen[e.details["user_id"].(string)] = true
	}
	for _, id := range []string{"auth0|u1", "auth0|u2", "auth0|u3"} {
		assert.True(t, seen[id], "broadcast must reach %s", id)
	}
}
