package routes

import (
	"net/http"

	"github.com/classpulse/backend/internal/api/handlers"
	"github.com/classpulse/backend/internal/api/middleware"
	"github.com/classpulse/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	systemHandler   *handlers.SystemHandler
	authHandler     *handlers.AuthHandler
	feedbackHandler *handlers.FeedbackHandler
	reviewHandler   *handlers.ReviewHandler
	messageHandler  *handlers.MessageHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	systemHandler *handlers.SystemHandler,
	authHandler *handlers.AuthHandler,
	feedbackHandler *handlers.FeedbackHandler,
	reviewHandler *handlers.ReviewHandler,
	messageHandler *handlers.MessageHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		systemHandler:   systemHandler,
		authHandler:     authHandler,
		feedbackHandler: feedbackHandler,
		reviewHandler:   reviewHandler,
		messageHandler:  messageHandler,
		metrics:         metrics,
	}
}

// SetupRoutes registers all routes and returns the handler chain
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /{$}", r.systemHandler.Root)
	r.mux.HandleFunc("GET /health", r.systemHandler.Health)

	// Accounts
	r.mux.HandleFunc("POST /api/signup", r.authHandler.Signup)
	r.mux.HandleFunc("POST /api/login", r.authHandler.Login)

	// Mood feedback
	r.mux.HandleFunc("POST /api/feedback", r.feedbackHandler.SubmitFeedback)
	r.mux.HandleFunc("GET /api/feedback", r.feedbackHandler.ListFeedback)
	r.mux.HandleFunc("GET /api/stats", r.feedbackHandler.GetStats)

	// Reviews
	r.mux.HandleFunc("POST /api/review", r.reviewHandler.AddReview)
	r.mux.HandleFunc("GET /api/reviews", r.reviewHandler.ListReviews)

	// Messages
	r.mux.HandleFunc("POST /api/message", r.messageHandler.SendMessage)
	r.mux.HandleFunc("GET /api/messages/{userId}", r.messageHandler.ListMessages)

	handler := middleware.RecordRoute(r.mux)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.Compression(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
