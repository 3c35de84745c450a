package server

import (
	"encoding/json"
	"net/http"
	_ "net/http/pprof" // Profiling

	"github.com/vinnie291/StarDraft/internal/version"
	"github.com/vinnie291/StarDraft/pkg/logger"
)

// Server - HTTP-обвязка вокруг менеджера комнат
type Server struct {
	Mgr  *Manager
	Port string
}

func New(mgr *Manager, port string) *Server {
	return &Server{
		Mgr:  mgr,
		Port: port,
	}
}

// Handler собирает роуты на переданном mux
func (s *Server) Handler(mux *http.ServeMux) *http.ServeMux {
	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))

	debugHandler := NewDebugHandler(s.Mgr)
	debugHandler.RegisterRoutes(mux)

	return mux
}

// Run запускает HTTP сервер
func (s *Server) Run() error {
	mux := s.Handler(http.DefaultServeMux)

	logger.Log.Infof("⚔️  StarDraft relay server running on :%s", s.Port)
	return http.ListenAndServe(":"+s.Port, mux)
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// handleWS обрабатывает подключение по WebSocket
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Error("Upgrade error:", err)
		return
	}

	client := NewClient(s.Mgr, conn)

	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(version.Info())
}
