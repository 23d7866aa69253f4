package routes

import (
	"github.com/gmfurlan/bolao-backend/handlers"
	"github.com/gmfurlan/bolao-backend/middleware"
	"github.com/gmfurlan/bolao-backend/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	teamHandler *handlers.TeamHandler,
	groupHandler *handlers.GroupHandler,
	matchHandler *handlers.MatchHandler,
	predictionHandler *handlers.PredictionHandler,
	rankingHandler *handlers.RankingHandler,
	tournamentHandler *handlers.TournamentHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticator(jwtSecret)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	// Public reads
	router.Get("/teams", teamHandler.List)
	router.Get("/teams/{teamID}", teamHandler.Get)
	router.Get("/groups", groupHandler.List)
	router.Get("/groups/{groupID}", groupHandler.Get)
	router.Get("/groups/{groupID}/result", groupHandler.GetClassification)
	router.Get("/matches", matchHandler.List)
	router.Get("/matches/{matchID}", matchHandler.Get)
	router.Get("/tournament/result", tournamentHandler.GetFinalResult)
	router.Get("/ranking", rankingHandler.GetRanking)

	// Authenticated players submit predictions
	router.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Post("/predictions/match", predictionHandler.SubmitMatchPrediction)
		r.Post("/predictions/group", predictionHandler.SubmitGroupPrediction)
		r.Post("/predictions/final", predictionHandler.SubmitFinalPrediction)
		r.Get("/predictions/mine", predictionHandler.GetMyPredictions)
	})

	// Admin CRUD and result entry (result entry triggers rescoring)
	router.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Use(adminOnly)

		r.Post("/teams", teamHandler.Create)
		r.Put("/teams/{teamID}", teamHandler.Update)
		r.Delete("/teams/{teamID}", teamHandler.Delete)
		r.Post("/teams/{teamID}/flag", teamHandler.UploadFlag)

		r.Post("/groups", groupHandler.Create)
		r.Put("/groups/{groupID}", groupHandler.Update)
		r.Delete("/groups/{groupID}", groupHandler.Delete)
		r.Put("/groups/{groupID}/result", groupHandler.SaveClassification)

		r.Post("/matches", matchHandler.Create)
		r.Put("/matches/{matchID}", matchHandler.Update)
		r.Delete("/matches/{matchID}", matchHandler.Delete)
		r.Put("/matches/{matchID}/result", matchHandler.SaveResult)

		r.Put("/tournament/result", tournamentHandler.SaveFinalResult)
	})
}
