package handlers

import (
	"StudyHub/internal/config"
	"StudyHub/internal/middleware"
	"StudyHub/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// Services — сервисы, которые нужны хендлерам.
type Services struct {
	Users     *service.UserService
	Subjects  *service.SubjectService
	Cards     *service.CardService
	Checklist *service.ChecklistService
	Sessions  *service.SessionService
	Shares    *service.ShareService
	Analytics *service.AnalyticsService
}

// NewHandler разводящий для хендлеров
func NewHandler(
	services Services,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Encoding"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(services.Users, logger, config)
	subjectHandler := NewSubjectHandler(services.Subjects, logger)
	cardHandler := NewCardHandler(services.Cards, logger)
	itemHandler := NewItemHandler(services.Checklist, logger)
	sessionHandler := NewSessionHandler(services.Sessions, logger)
	shareHandler := NewShareHandler(services.Shares, logger)
	analyticsHandler := NewAnalyticsHandler(services.Analytics, logger)

	// User routes
	r.Post("/api/user/register", userHandler.Register)
	r.Post("/api/user/login", userHandler.Login)
	r.Post("/api/user/logout", userHandler.Logout)
	r.Post("/api/user/test", userHandler.Status)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser)

		r.Get("/api/dashboard", analyticsHandler.Dashboard)
		r.Get("/api/analytics", analyticsHandler.Overview)

		r.Route("/api/subjects", func(r chi.Router) {
			r.Get("/", subjectHandler.List)
			r.Post("/", subjectHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", subjectHandler.Detail)
				r.Put("/", subjectHandler.Update)
				r.Delete("/", subjectHandler.Delete)
				r.Get("/study", subjectHandler.StudyDeck)

				r.Post("/cards", cardHandler.Create)
				r.Put("/cards/{cardId}", cardHandler.Update)
				r.Delete("/cards/{cardId}", cardHandler.Delete)

				r.Post("/items", itemHandler.Create)
				r.Put("/items/{itemId}", itemHandler.Update)
				r.Delete("/items/{itemId}", itemHandler.Delete)
				r.Post("/items/{itemId}/practice", itemHandler.Practice)
				r.Post("/checklist", itemHandler.LogPractice)

				r.Get("/sessions", sessionHandler.List)
				r.Post("/sessions", sessionHandler.Record)

				r.Get("/share", shareHandler.List)
				r.Post("/share", shareHandler.Share)
				r.Delete("/share", shareHandler.Unshare)
			})
		})
	})

	return &Handler{Router: r}
}
