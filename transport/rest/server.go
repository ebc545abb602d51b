package rest

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires every endpoint; exposed separately so tests can serve the
// router through httptest.
func NewRouter(handlers Handlers) *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(10 * time.Second))

	router.Get("/ping", handlers.PingHandler)

	router.Route("/api", func(r chi.Router) {
		r.Route("/rooms", func(r chi.Router) {
			r.Post("/", handlers.CreateRoomHandler)
			r.Get("/", handlers.ListRoomsHandler)

			r.Route("/{roomID}", func(r chi.Router) {
				r.Post("/join", handlers.JoinRoomHandler)
				r.Post("/move", handlers.MoveHandler)
				r.Get("/state", handlers.StateHandler)
				r.Get("/hint", handlers.HintHandler)
			})
		})

		r.Get("/results/{roomID}", handlers.ResultHandler)

		r.Route("/ai", func(r chi.Router) {
			r.Post("/gomoku", handlers.GomokuOracleHandler)
			r.Post("/linkup", handlers.LinkUpOracleHandler)
		})
	})

	return router
}

func Start(port string, handlers Handlers) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      NewRouter(handlers),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
