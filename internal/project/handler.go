package project

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/inamate/scenekit/internal/auth"
	"github.com/inamate/scenekit/internal/collab"
)

type Handler struct {
	service    *Service
	hub        *collab.Hub
	playground string
}

// NewHandler serves project metadata from service and scene contents from
// hub. Requests without a projectId route variable address the playground
// scene, which needs no membership.
func NewHandler(service *Service, hub *collab.Hub, playground string) *Handler {
	return &Handler{service: service, hub: hub, playground: playground}
}

type createRequest struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type inviteRequest struct {
	Email string `json:"email"`
}

type hitResponse struct {
	ShapeID  int      `json:"shapeId"`
	Hovering []string `json:"hovering"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	project, err := h.service.Create(r.Context(), req.Name, userID, req.Width, req.Height)
	if err != nil {
		slog.Error("create project failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	h.hub.Scene(project.ID)

	writeJSON(w, http.StatusCreated, project)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	projectID := mux.Vars(r)["projectId"]

	project, err := h.service.Get(r.Context(), projectID, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, project)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	projects, err := h.service.List(r.Context(), userID)
	if err != nil {
		slog.Error("list projects failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, projects)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	projectID := mux.Vars(r)["projectId"]

	if err := h.service.Delete(r.Context(), projectID, userID); err != nil {
		handleServiceError(w, err)
		return
	}
	h.hub.DropScene(projectID)

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Invite(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	projectID := mux.Vars(r)["projectId"]

	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email is required"})
		return
	}

	if err := h.service.InviteByEmail(r.Context(), projectID, userID, req.Email); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "invited"})
}

func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	projectID := mux.Vars(r)["projectId"]

	members, err := h.service.ListMembers(r.Context(), projectID, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, members)
}

func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	projectID := mux.Vars(r)["projectId"]
	targetUserID := mux.Vars(r)["userId"]

	if err := h.service.RemoveMember(r.Context(), projectID, userID, targetUserID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Draw returns the scene's draw list in stacking order.
func (h *Handler) Draw(w http.ResponseWriter, r *http.Request) {
	sceneID, ok := h.sceneFor(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.hub.Scene(sceneID).Sync())
}

// Hit reports the topmost shape under ?x=&y= and who is hovering it.
func (h *Handler) Hit(w http.ResponseWriter, r *http.Request) {
	sceneID, ok := h.sceneFor(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	x, errX := strconv.ParseFloat(q.Get("x"), 64)
	y, errY := strconv.ParseFloat(q.Get("y"), 64)
	if errX != nil || errY != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "x and y must be numbers"})
		return
	}

	resp := hitResponse{ShapeID: h.hub.Scene(sceneID).HitTest(x, y), Hovering: []string{}}
	if resp.ShapeID != 0 {
		if users := h.hub.HoveringOver(sceneID, resp.ShapeID); users != nil {
			resp.Hovering = users
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// BoundingBox returns the union box of shapes carrying any ?tag= value.
func (h *Handler) BoundingBox(w http.ResponseWriter, r *http.Request) {
	sceneID, ok := h.sceneFor(w, r)
	if !ok {
		return
	}
	tags := r.URL.Query()["tag"]
	if len(tags) == 0 {
		tags = []string{"all"}
	}
	writeJSON(w, http.StatusOK, h.hub.Scene(sceneID).Bounds(tags))
}

// SubmitOperation applies one operation and broadcasts it to the room.
func (h *Handler) SubmitOperation(w http.ResponseWriter, r *http.Request) {
	sceneID, ok := h.sceneFor(w, r)
	if !ok {
		return
	}

	var op collab.Operation
	if err := json.NewDecoder(r.Body).Decode(&op); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		userID = "anonymous"
	}

	ack, err := h.hub.Submit(sceneID, userID, "", op)
	if err != nil {
		reason := collab.NackReason(err)
		writeJSON(w, opStatus(reason), map[string]string{
			"error":       err.Error(),
			"reason":      reason,
			"operationId": ack.OperationID,
		})
		return
	}

	writeJSON(w, http.StatusOK, ack)
}

// sceneFor resolves the request's scene and checks the caller may use it.
func (h *Handler) sceneFor(w http.ResponseWriter, r *http.Request) (string, bool) {
	projectID, ok := mux.Vars(r)["projectId"]
	if !ok || projectID == h.playground {
		return h.playground, true
	}
	if err := h.service.CheckMembership(r.Context(), projectID, auth.UserIDFromContext(r.Context())); err != nil {
		handleServiceError(w, err)
		return "", false
	}
	return projectID, true
}

func opStatus(reason string) int {
	switch reason {
	case "not_found":
		return http.StatusNotFound
	case "duplicate", "scene_full":
		return http.StatusConflict
	}
	return http.StatusBadRequest
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, auth.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
	case errors.Is(err, ErrForbidden):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
	case errors.Is(err, ErrNotMember):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "not a project member"})
	case errors.Is(err, ErrOwner):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "cannot remove project owner"})
	default:
		slog.Error("service error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
