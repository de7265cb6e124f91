package main

import (
	"context"
	"os"

	"github.com/classpulse/backend/internal/adapters/database"
	"github.com/classpulse/backend/internal/adapters/security"
	"github.com/classpulse/backend/internal/application/services"
	"github.com/classpulse/backend/internal/domain/entities"
	"github.com/classpulse/backend/internal/infrastructure/clients/mongo"
	"github.com/classpulse/backend/internal/infrastructure/observability"
	"github.com/classpulse/backend/pkg/config"
	apperrors "github.com/classpulse/backend/pkg/errors"
	"github.com/rs/zerolog/log"
)

const demoPassword = "password123"

var demoUsers = []services.SignupInput{
	{Name: "Amara Obi", Email: "amara@northfield.edu", School: "Northfield High"},
	{Name: "Leo Park", Email: "leo@northfield.edu", School: "Northfield High"},
	{Name: "Sofia Reyes", Email: "sofia@riverside.edu", School: "Riverside Academy"},
	{Name: "Ms. Grant", Email: "grant@northfield.edu", School: "Northfield High", IsTeacher: true},
}

var demoFeedback = []struct {
	user int
	mood entities.Mood
	note string
}{
	{0, entities.MoodFine, "Good week overall"},
	{1, entities.MoodTired, "Too many late nights studying"},
	{2, entities.MoodStressed, "Exams next week"},
	{3, entities.MoodTired, "Marking backlog"},
	{0, entities.MoodStressed, ""},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	observability.InitLogger("school-feedback-seed", cfg.Env, cfg.LogLevel)

	ctx := context.Background()
	client, err := mongo.NewClient(ctx, &cfg.Mongo, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer client.Close(ctx)

	if os.Getenv("RESET_DB") == "true" {
		log.Warn().Str("database", cfg.Mongo.Database).Msg("RESET_DB=true detected, dropping database before seeding")
		if err := client.Drop(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to drop database")
		}
	}
	if err := client.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to create indexes")
	}

	userRepo := database.NewUserAdapter(client)
	userService := services.NewUserService(userRepo, security.NewBcryptHasher(cfg.Security.BcryptCost))
	feedbackService := services.NewFeedbackService(database.NewFeedbackAdapter(client), userRepo, nil)
	reviewService := services.NewReviewService(database.NewReviewAdapter(client), userRepo)
	messageService := services.NewMessageService(database.NewMessageAdapter(client), userRepo)

	ids := make([]string, len(demoUsers))
	for i, in := range demoUsers {
		in.Password = demoPassword
		user, err := userService.Signup(ctx, in)
		if apperrors.IsType(err, apperrors.ErrorTypeConflict) {
			existing, lookupErr := userRepo.GetByEmail(ctx, in.Email)
			if lookupErr != nil {
				log.Fatal().Err(lookupErr).Str("email", in.Email).Msg("Failed to look up existing user")
			}
			ids[i] = existing.ID
			log.Info().Str("email", in.Email).Msg("User already exists, skipping")
			continue
		}
		if err != nil {
			log.Fatal().Err(err).Str("email", in.Email).Msg("Failed to create user")
		}
		ids[i] = user.ID
		log.Info().Str("email", in.Email).Str("id", user.ID).Msg("Created user")
	}

	for _, fb := range demoFeedback {
		if _, err := feedbackService.Submit(ctx, services.SubmitFeedbackInput{UserID: ids[fb.user], Mood: fb.mood, Note: fb.note}); err != nil {
			log.Fatal().Err(err).Msg("Failed to submit feedback")
		}
	}

	for i, rating := range []int{5, 4, 3} {
		if _, err := reviewService.Add(ctx, services.AddReviewInput{UserID: ids[i], Rating: rating, Comment: "Check-ins help"}); err != nil {
			log.Fatal().Err(err).Msg("Failed to add review")
		}
	}

	messages := []services.SendMessageInput{
		{FromID: ids[3], ToID: ids[2], Text: "Let me know if you want to talk about the exams."},
		{FromID: ids[2], ToID: ids[3], Text: "Thanks, could we meet on Thursday?"},
	}
	for _, m := range messages {
		if _, err := messageService.Send(ctx, m); err != nil {
			log.Fatal().Err(err).Msg("Failed to send message")
		}
	}

	log.Info().
		Int("users", len(ids)).
		Int("feedback", len(demoFeedback)).
		Int("messages", len(messages)).
		Msg("Seeding complete")
}
