package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/torneos/esports-api/handlers"
	"github.com/torneos/esports-api/middleware"
	"github.com/torneos/esports-api/models"
)

// SetupRoutes mounts every endpoint on the router. Read endpoints for the
// public site stay open; everything that mutates state sits behind the
// authenticator plus a role gate.
func SetupRoutes(
	router *chi.Mux,
	authenticator *middleware.Authenticator,
	authHandler *handlers.AuthHandler,
	adminHandler *handlers.AdminHandler,
	gameHandler *handlers.GameHandler,
	registrationHandler *handlers.RegistrationHandler,
	tournamentHandler *handlers.TournamentHandler,
	matchHandler *handlers.MatchHandler,
	transmissionHandler *handlers.TransmissionHandler,
	mediaHandler *handlers.MediaHandler,
	contactHandler *handlers.ContactHandler,
	matchFeedHandler *handlers.MatchFeedHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Post("/auth/signup", authHandler.SignUp)
	router.Post("/auth/login", authHandler.Login)
	router.Post("/auth/admin/login", authHandler.AdminLogin)

	router.Route("/games", func(r chi.Router) {
		r.Get("/", gameHandler.List)
		r.Get("/{id}", gameHandler.Get)
		r.Get("/{gameID}/teams", registrationHandler.ListTeamsByGame)
		r.Get("/{gameID}/tournaments", tournamentHandler.ListByGame)

		r.Group(func(r chi.Router) {
			r.Use(authenticator.Authenticate)
			r.Use(middleware.Authorize(models.RoleAdmin, models.RoleSuperadmin))

			r.Patch("/{id}", gameHandler.PartialUpdate)
			r.Get("/{gameID}/inscriptions", registrationHandler.ListInscriptionsByGame)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticator.Authenticate)
			r.Use(middleware.Authorize(models.RoleSuperadmin))

			r.Post("/", gameHandler.Create)
			r.Put("/{id}/active", gameHandler.SetActive)
			r.Delete("/{id}", gameHandler.Delete)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/{id}", registrationHandler.GetTeam)

		r.Group(func(r chi.Router) {
			r.Use(authenticator.Authenticate)

			r.Post("/", registrationHandler.RegisterTeam)
			r.Post("/{id}/players", registrationHandler.AddRosterMember)
			r.Delete("/{id}/players/{userID}", registrationHandler.RemoveRosterMember)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticator.Authenticate)
			r.Use(middleware.Authorize(models.RoleAdmin, models.RoleSuperadmin))

			r.Put("/{id}/status", registrationHandler.UpdateTeamStatus)
		})
	})

	router.Route("/inscriptions", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authenticator.Authenticate)

			r.Post("/", registrationHandler.RegisterIndividual)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticator.Authenticate)
			r.Use(middleware.Authorize(models.RoleAdmin, models.RoleSuperadmin))

			r.Put("/{id}/status", registrationHandler.UpdateInscriptionStatus)
		})
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.List)
		r.Get("/{id}", tournamentHandler.Get)
		r.Get("/{tournamentID}/matches", matchHandler.ListByTournament)

		r.Group(func(r chi.Router) {
			r.Use(authenticator.Authenticate)
			r.Use(middleware.Authorize(models.RoleAdmin, models.RoleSuperadmin))

			r.Post("/", tournamentHandler.Create)
			r.Put("/{id}", tournamentHandler.Update)
			r.Delete("/{id}", tournamentHandler.Delete)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/{id}", matchHandler.Get)
		r.Get("/{id}/participants", matchHandler.ListParticipants)
		r.Get("/{matchID}/transmissions", transmissionHandler.ListByMatch)
		r.Get("/{id}/feed", matchFeedHandler.Subscribe)

		r.Group(func(r chi.Router) {
			r.Use(authenticator.Authenticate)
			r.Use(middleware.Authorize(models.RoleAdmin, models.RoleSuperadmin))

			r.Post("/", matchHandler.Create)
			r.Put("/{id}", matchHandler.Update)
			r.Delete("/{id}", matchHandler.Delete)
			r.Post("/{id}/participants", matchHandler.AttachParticipant)
			r.Delete("/participants/{participantID}", matchHandler.DetachParticipant)
		})
	})

	router.Route("/transmissions", func(r chi.Router) {
		r.Use(authenticator.Authenticate)
		r.Use(middleware.Authorize(models.RoleAdmin, models.RoleSuperadmin))

		r.Post("/", transmissionHandler.Create)
		r.Put("/{id}", transmissionHandler.Update)
		r.Delete("/{id}", transmissionHandler.Delete)
	})

	router.Route("/media", func(r chi.Router) {
		r.Get("/", mediaHandler.List)

		r.Group(func(r chi.Router) {
			r.Use(authenticator.Authenticate)
			r.Use(middleware.Authorize(models.RoleAdmin, models.RoleSuperadmin))

			r.Post("/", mediaHandler.Upload)
			r.Delete("/{id}", mediaHandler.Delete)
		})
	})

	router.Route("/contacts", func(r chi.Router) {
		r.Get("/", contactHandler.List)

		r.Group(func(r chi.Router) {
			r.Use(authenticator.Authenticate)
			r.Use(middleware.Authorize(models.RoleAdmin, models.RoleSuperadmin))

			r.Post("/", contactHandler.Create)
			r.Put("/{id}", contactHandler.Update)
			r.Delete("/{id}", contactHandler.Delete)
		})
	})

	router.Route("/admins", func(r chi.Router) {
		r.Use(authenticator.Authenticate)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authorize(models.RoleAdmin, models.RoleSuperadmin))

			r.Put("/password", adminHandler.ChangePassword)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authorize(models.RoleSuperadmin))

			r.Get("/", adminHandler.List)
			r.Post("/", adminHandler.Create)
			r.Delete("/{id}", adminHandler.Delete)
			r.Put("/{id}/password", adminHandler.ResetPassword)
			r.Post("/{id}/games/{gameID}", adminHandler.LinkGame)
			r.Delete("/{id}/games/{gameID}", adminHandler.UnlinkGame)
		})
	})
}
