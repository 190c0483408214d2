package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gorilla/mux"

	"github.com/renato145/interactive-class/internal/app"
)

func newAdminServer(t *testing.T) (*httptest.Server, *app.Registry) {
	t.Helper()
	registry := app.NewRegistry()
	router := mux.NewRouter()
	NewRoomsHandler(registry).Register(router)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, registry
}

func TestCreateListDeleteRooms(t *testing.T) {
	server, _ := newAdminServer(t)

	resp, err := http.Post(server.URL+"/cups/create_room", "application/json",
		bytes.NewBufferString(`{"new_room": "math"}`))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Duplicate name is rejected.
	resp, err = http.Post(server.URL+"/cups/create_room", "application/json",
		bytes.NewBufferString(`{"new_room": "math"}`))
	if err != nil {
		t.Fatalf("create duplicate: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp, err = http.Get(server.URL + "/cups")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	defer resp.Body.Close()
	var listed roomsResponse
	if err := json.NewDecoder(resp.Body).Decode(&listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if want := []string{"math"}; !reflect.DeepEqual(listed.Rooms, want) {
		t.Fatalf("expected %v, got %v", want, listed.Rooms)
	}

	req, _ := http.NewRequest(http.MethodDelete, server.URL+"/cups/math", nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	req, _ = http.NewRequest(http.MethodDelete, server.URL+"/cups/math", nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete again: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for missing room, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestCreateRoomRequiresName(t *testing.T) {
	server, _ := newAdminServer(t)

	resp, err := http.Post(server.URL+"/cups/create_room", "application/json",
		bytes.NewBufferString(`{}`))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
