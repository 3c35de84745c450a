package server

import (
	"encoding/json"
	"net/http"
)

// DebugHandler предоставляет доступ к внутреннему состоянию реле
type DebugHandler struct {
	Mgr *Manager
}

func NewDebugHandler(m *Manager) *DebugHandler {
	return &DebugHandler{Mgr: m}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/rooms", h.handleListRooms)
}

// /debug/rooms - список активных комнат и их состояние
func (h *DebugHandler) handleListRooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Mgr.Snapshot())
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
