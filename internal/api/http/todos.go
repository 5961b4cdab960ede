package http

import (
	"encoding/json"
	"net/http"

	"github.com/pocketlist/pocketlist/internal/api/service"
	"github.com/pocketlist/pocketlist/pkg/httpx"
)

// TodoHandler exposes owner-scoped todo CRUD. All routes sit behind
// AuthnMiddleware, so the identity is always present.
type TodoHandler struct {
	Todos *service.TodoService
}

func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	var req createTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	todo, err := h.Todos.Create(r.Context(), identity.ID, req.Title, req.Description)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toTodoResponse(todo))
}

func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	todos, err := h.Todos.List(r.Context(), identity.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]todoResponse, 0, len(todos))
	for _, t := range todos {
		out = append(out, toTodoResponse(t))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	todo, err := h.Todos.Get(r.Context(), identity.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTodoResponse(todo))
}

func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	var req updateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	todo, err := h.Todos.Update(r.Context(), identity.ID, r.PathValue("id"), service.TodoUpdate{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTodoResponse(todo))
}

func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	if err := h.Todos.Delete(r.Context(), identity.ID, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "Todo deleted successfully"})
}
