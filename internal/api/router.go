package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/nebulavault/server/internal/api/handlers"
	"github.com/nebulavault/server/internal/api/middleware"
	"github.com/nebulavault/server/internal/config"
	"github.com/rs/cors"
)

func SetupRouter() http.Handler {
	mainMux := http.NewServeMux()
	c := cors.New(config.Envs.CorsConfig)

	// ---------- PUBLIC ROUTES ----------
	mainMux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	mainMux.HandleFunc("GET /{$}", handlers.Index)
	mainMux.HandleFunc("POST /login", handlers.Login)
	mainMux.HandleFunc("POST /register", handlers.Register)

	// ---------- SESSION ROUTES ----------
	sessionMux := http.NewServeMux()

	sessionMux.HandleFunc("GET /logout", handlers.Logout)
	sessionMux.HandleFunc("GET /dashboard", handlers.Dashboard)
	sessionMux.HandleFunc("POST /profile", handlers.ChangePassword)

	sessionMux.HandleFunc("GET /threads", handlers.ListThreads)
	sessionMux.HandleFunc("GET /thread/{id}", handlers.GetThread)
	sessionMux.HandleFunc("POST /thread/{id}", handlers.AddReply)
	sessionMux.HandleFunc("POST /create_thread", handlers.CreateThread)
	sessionMux.HandleFunc("POST /edit_thread/{id}", handlers.EditThread)
	sessionMux.HandleFunc("GET /delete_thread/{id}", handlers.DeleteThread)
	sessionMux.HandleFunc("GET /delete_reply/{id}", handlers.DeleteReply)

	sessionMux.HandleFunc("GET /htb", handlers.ListMachines)
	sessionMux.HandleFunc("POST /add_htb", handlers.AddMachine)
	sessionMux.HandleFunc("POST /edit_htb/{id}", handlers.EditMachine)
	sessionMux.HandleFunc("GET /delete_htb/{id}", handlers.DeleteMachine)

	protected := middleware.Auth(sessionMux)
	for _, prefix := range []string{
		"/logout", "/dashboard", "/profile",
		"/threads", "/thread/", "/create_thread",
		"/edit_thread/", "/delete_thread/", "/delete_reply/",
		"/htb", "/add_htb", "/edit_htb/", "/delete_htb/",
	} {
		mainMux.Handle(prefix, protected)
	}

	log.Println("Router initialized")
	handler := c.Handler(mainMux)
	handler = middleware.Logger(handler)
	return handler
}
