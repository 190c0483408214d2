package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/renato145/interactive-class/internal/app"
	"github.com/renato145/interactive-class/internal/domain"
)

// RoomsHandler is the thin REST surface over the registry: create, delete and
// list rooms. It never broadcasts; connected clients learn about a deleted
// room when their next operation fails.
type RoomsHandler struct {
	registry *app.Registry
}

func NewRoomsHandler(registry *app.Registry) *RoomsHandler {
	return &RoomsHandler{registry: registry}
}

// Register mounts the admin routes on the router.
func (h *RoomsHandler) Register(router *mux.Router) {
	router.HandleFunc("/cups/create_room", h.CreateRoom).Methods(http.MethodPost)
	router.HandleFunc("/cups/{room}", h.DeleteRoom).Methods(http.MethodDelete)
	router.HandleFunc("/cups", h.ListRooms).Methods(http.MethodGet)
}

type createRoomRequest struct {
	NewRoom string `json:"new_room"`
}

type roomsResponse struct {
	Rooms []string `json:"rooms"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func (h *RoomsHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NewRoom == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "missing new_room"})
		return
	}
	if err := h.registry.CreateRoom(req.NewRoom); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, roomsResponse{Rooms: h.registry.ListRooms()})
}

func (h *RoomsHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["room"]
	if err := h.registry.DeleteRoom(name); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrRoomNotFound) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, errorResponse{Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, roomsResponse{Rooms: h.registry.ListRooms()})
}

func (h *RoomsHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, roomsResponse{Rooms: h.registry.ListRooms()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}
