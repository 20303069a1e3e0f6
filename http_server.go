package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/gobwas/ws"
)

type HTTPHandler struct {
	Relay *Relay
}

func NewHTTPServer(relay *Relay, staticDir string) http.Handler {
	httpHandler := HTTPHandler{relay}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET"},
		AllowCredentials: false,
	}))
	r.Use(middleware.RealIP)
	r.Use(httprate.Limit(60, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP, httprate.KeyByEndpoint)))
	r.Use(middleware.Heartbeat("/ping"))

	r.Get("/ws", httpHandler.websocket())
	r.Get("/room/{roomCode}", httpHandler.getRoomStatus())
	if staticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(staticDir)))
	}
	return r
}

func (h HTTPHandler) websocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, _, _, err := ws.UpgradeHTTP(r, w)
		if err != nil {
			LogErrorWhileUpgradingHTTP(err)
			return
		}
		go h.Relay.ServeConn(conn)
	}
}

// getRoomStatus lets a join screen pre-validate a code before sending
// joinRoom over the socket.
func (h HTTPHandler) getRoomStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomCode := chi.URLParam(r, "roomCode")
		exists, open := h.Relay.RoomStatus(roomCode)
		if !exists {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		encoded, _ := json.Marshal(map[string]bool{"open": open})
		w.Write(encoded)
	}
}
