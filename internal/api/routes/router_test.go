package routes_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/classpulse/backend/internal/adapters/security"
	"github.com/classpulse/backend/internal/api/handlers"
	"github.com/classpulse/backend/internal/api/routes"
	"github.com/classpulse/backend/internal/application/services"
	"github.com/classpulse/backend/internal/domain/entities"
	"github.com/classpulse/backend/internal/domain/repositories"
	"github.com/classpulse/backend/internal/infrastructure/observability"
	apperrors "github.com/classpulse/backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"golang.org/x/crypto/bcrypt"
)

// memoryStore backs every repository with slices, enough to drive the routes.
type memoryStore struct {
	mu       sync.Mutex
	clock    time.Time
	users    []*entities.User
	feedback []*entities.Feedback
	reviews  []*entities.Review
	messages []*entities.Message
}

func (s *memoryStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *memoryStore) Ping(ctx context.Context) error { return nil }

type memoryUsers struct{ *memoryStore }

func (r memoryUsers) Create(ctx context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == strings.ToLower(user.Email) {
			return apperrors.NewConflictError("Email already registered")
		}
	}
	user.ID = uuid.NewString()
	user.Email = strings.ToLower(user.Email)
	user.CreatedAt = r.tick()
	r.users = append(r.users, user)
	return nil
}

func (r memoryUsers) GetByID(ctx context.Context, id string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.NewNotFoundError("User not found")
}

func (r memoryUsers) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return nil, apperrors.NewNotFoundError("User not found")
}

func (r memoryUsers) GetByIDs(ctx context.Context, ids []string) ([]*entities.User, error) {
	var out []*entities.User
	for _, id := range ids {
		if u, err := r.GetByID(ctx, id); err == nil {
			out = append(out, u)
		}
	}
	return out, nil
}

type memoryFeedback struct{ *memoryStore }

func (r memoryFeedback) Create(ctx context.Context, fb *entities.Feedback) error {
	if err := fb.Validate(); err != nil {
		return apperrors.WrapValidationError(err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	fb.ID = uuid.NewString()
	fb.CreatedAt = r.tick()
	r.feedback = append(r.feedback, fb)
	return nil
}

func (r memoryFeedback) List(ctx context.Context, filter repositories.FeedbackFilter) repositories.Seq[*entities.Feedback] {
	r.mu.Lock()
	items := append([]*entities.Feedback(nil), r.feedback...)
	r.mu.Unlock()
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return sliceSeq(items)
}

func (r memoryFeedback) CountByMood(ctx context.Context, since time.Time) (map[entities.Mood]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[entities.Mood]int64{}
	for _, fb := range r.feedback {
		if !fb.CreatedAt.Before(since) {
			counts[fb.Mood]++
		}
	}
	return counts, nil
}

type memoryReviews struct{ *memoryStore }

func (r memoryReviews) Create(ctx context.Context, review *entities.Review) error {
	if err := review.Validate(); err != nil {
		return apperrors.WrapValidationError(err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	review.ID = uuid.NewString()
	review.Date = r.tick()
	r.reviews = append(r.reviews, review)
	return nil
}

func (r memoryReviews) List(ctx context.Context, dir repositories.SortDirection) repositories.Seq[*entities.Review] {
	r.mu.Lock()
	items := append([]*entities.Review(nil), r.reviews...)
	r.mu.Unlock()
	sort.Slice(items, func(i, j int) bool { return items[i].Date.After(items[j].Date) })
	return sliceSeq(items)
}

type memoryMessages struct{ *memoryStore }

func (r memoryMessages) Create(ctx context.Context, m *entities.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = uuid.NewString()
	m.Date = r.tick()
	r.messages = append(r.messages, m)
	return nil
}

func (r memoryMessages) ListForUser(ctx context.Context, userID string, dir repositories.SortDirection) repositories.Seq[*entities.Message] {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []*entities.Message
	for _, m := range r.messages {
		if m.FromID == userID || m.ToID == userID {
			items = append(items, m)
		}
	}
	return sliceSeq(items)
}

func sliceSeq[T any](items []T) repositories.Seq[T] {
	return func(yield func(T, error) bool) {
		for _, item := range items {
			if !yield(item, nil) {
				return
			}
		}
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	server, _ := newTestServerWithStore(t, nil)
	return server
}

func newTestServerWithStore(t *testing.T, metrics *observability.Metrics) (*httptest.Server, *memoryStore) {
	t.Helper()

	store := &memoryStore{clock: time.Now().UTC().Add(-time.Hour)}
	users := memoryUsers{store}

	router := routes.NewRouter(
		handlers.NewSystemHandler(store),
		handlers.NewAuthHandler(services.NewUserService(users, security.NewBcryptHasher(bcrypt.MinCost))),
		handlers.NewFeedbackHandler(services.NewFeedbackService(memoryFeedback{store}, users, nil)),
		handlers.NewReviewHandler(services.NewReviewService(memoryReviews{store}, users)),
		handlers.NewMessageHandler(services.NewMessageService(memoryMessages{store}, users)),
		metrics,
	)

	server := httptest.NewServer(router.SetupRoutes())
	t.Cleanup(server.Close)
	return server, store
}

func postJSON(t *testing.T, server *httptest.Server, path, body string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := http.Post(server.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func getJSON(t *testing.T, server *httptest.Server, path string, out interface{}) int {
	t.Helper()
	resp, err := http.Get(server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

func TestRouter_FeedbackFlow(t *testing.T) {
	server := newTestServer(t)

	status, body := postJSON(t, server, "/api/signup", `{"name":"Ada","email":"ada@school.org","password":"p1"}`)
	require.Equal(t, http.StatusOK, status)
	studentID := body["userId"].(string)

	status, body = postJSON(t, server, "/api/signup", `{"name":"Mr T","email":"t@school.org","password":"p2","isTeacher":true}`)
	require.Equal(t, http.StatusOK, status)
	teacherID := body["userId"].(string)

	status, body = postJSON(t, server, "/api/signup", `{"name":"Ada","email":"ada@school.org","password":"p1"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Email already registered", body["error"])

	status, body = postJSON(t, server, "/api/login", `{"email":"ada@school.org","password":"wrong"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid password", body["error"])

	status, body = postJSON(t, server, "/api/login", `{"email":"ada@school.org","password":"p1"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["user"].(map[string]interface{})["isTeacher"])

	status, _ = postJSON(t, server, "/api/feedback", `{"userId":"`+studentID+`","mood":"Fine"}`)
	require.Equal(t, http.StatusOK, status)
	status, _ = postJSON(t, server, "/api/feedback", `{"userId":"`+teacherID+`","mood":"Stressed","note":"marking"}`)
	require.Equal(t, http.StatusOK, status)

	status, body = postJSON(t, server, "/api/feedback", `{"userId":"ghost","mood":"Fine"}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User not found", body["error"])

	var entries []entities.FeedbackEntry
	require.Equal(t, http.StatusOK, getJSON(t, server, "/api/feedback", &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, entities.RoleTeacher, entries[0].Role)
	assert.Equal(t, "Mr T", entries[0].User.Name)
	assert.Equal(t, "t@school.org", entries[0].User.Email)
	assert.Equal(t, entities.RoleStudent, entries[1].Role)

	var stats map[string]int
	require.Equal(t, http.StatusOK, getJSON(t, server, "/api/stats", &stats))
	assert.Equal(t, map[string]int{"Fine": 1, "Tired": 0, "Stressed": 1}, stats)
}

func TestRouter_ReviewsAndMessages(t *testing.T) {
	server := newTestServer(t)

	_, body := postJSON(t, server, "/api/signup", `{"name":"Ada","email":"ada@school.org","password":"p1"}`)
	ada := body["userId"].(string)

	status, _ := postJSON(t, server, "/api/review", `{"userId":"`+ada+`","rating":5}`)
	require.Equal(t, http.StatusOK, status)
	status, body = postJSON(t, server, "/api/review", `{"userId":"`+ada+`","rating":0}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, body["error"])

	var reviews []entities.ReviewEntry
	require.Equal(t, http.StatusOK, getJSON(t, server, "/api/reviews", &reviews))
	require.Len(t, reviews, 1)
	assert.Equal(t, "Ada", reviews[0].User.Name)
	assert.Empty(t, reviews[0].User.Email)

	status, _ = postJSON(t, server, "/api/message", `{"fromId":"`+ada+`","toId":"nobody","text":"hi"}`)
	require.Equal(t, http.StatusOK, status)

	var messages []entities.MessageEntry
	require.Equal(t, http.StatusOK, getJSON(t, server, "/api/messages/"+ada, &messages))
	require.Len(t, messages, 1)
	assert.Equal(t, "Ada", messages[0].From.Name)
	assert.Nil(t, messages[0].To)
	assert.False(t, messages[0].Read)
}

func TestRouter_RootAndHealth(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health map[string]string
	assert.Equal(t, http.StatusOK, getJSON(t, server, "/health", &health))
	assert.Equal(t, "ok", health["status"])

	resp, err = http.Get(server.URL + "/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_StatsCoverTrailingWeek(t *testing.T) {
	server, store := newTestServerWithStore(t, nil)

	now := time.Now().UTC()
	store.mu.Lock()
	store.feedback = append(store.feedback,
		&entities.Feedback{ID: "old", Role: entities.RoleStudent, Mood: entities.MoodTired, CreatedAt: now.Add(-8 * 24 * time.Hour)},
		&entities.Feedback{ID: "recent", Role: entities.RoleStudent, Mood: entities.MoodFine, CreatedAt: now.Add(-24 * time.Hour)},
	)
	store.mu.Unlock()

	var stats map[string]int
	require.Equal(t, http.StatusOK, getJSON(t, server, "/api/stats", &stats))
	assert.Equal(t, map[string]int{"Fine": 1, "Tired": 0, "Stressed": 0}, stats)
}

func TestRouter_MetricsUseRoutePattern(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	metrics, err := observability.InitMetrics()
	require.NoError(t, err)
	server, _ := newTestServerWithStore(t, metrics)

	for _, id := range []string{"u1", "u2", "u3"} {
		var messages []entities.MessageEntry
		require.Equal(t, http.StatusOK, getJSON(t, server, "/api/messages/"+id, &messages))
	}
	resp, err := http.Get(server.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	counts := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "http.server.request.count" {
				continue
			}
			for _, dp := range m.Data.(metricdata.Sum[int64]).DataPoints {
				route, ok := dp.Attributes.Value("http.route")
				require.True(t, ok)
				counts[route.AsString()] += dp.Value
			}
		}
	}
	assert.Equal(t, map[string]int64{
		"GET /api/messages/{userId}": 3,
		"GET unmatched":              1,
	}, counts)
}
