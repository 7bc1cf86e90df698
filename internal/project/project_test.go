package project

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/scenekit/internal/auth"
	"github.com/inamate/scenekit/internal/collab"
	"github.com/inamate/scenekit/internal/engine"
)

type fakeUsers map[string]auth.User

func (f fakeUsers) GetUser(_ context.Context, id string) (*auth.User, error) {
	u, ok := f[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	return &u, nil
}

func (f fakeUsers) GetUserByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, u := range f {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func TestServiceMembership(t *testing.T) {
	users := fakeUsers{
		"user_a": {ID: "user_a", Email: "a@x.io", DisplayName: "A"},
		"user_b": {ID: "user_b", Email: "b@x.io", DisplayName: "B"},
	}
	s := NewService(users)
	ctx := context.Background()

	p, err := s.Create(ctx, "Board", "user_a", 0, 0)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p.ID, "scene_"))
	assert.Equal(t, 800, p.Width)
	assert.Equal(t, 600, p.Height)

	_, err = s.Get(ctx, p.ID, "user_b")
	assert.ErrorIs(t, err, ErrNotMember)
	_, err = s.Get(ctx, "scene_missing", "user_a")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.InviteByEmail(ctx, p.ID, "user_b", "b@x.io"), ErrForbidden)
	assert.ErrorIs(t, s.InviteByEmail(ctx, p.ID, "user_a", "nobody@x.io"), auth.ErrUserNotFound)
	require.NoError(t, s.InviteByEmail(ctx, p.ID, "user_a", "b@x.io"))
	require.NoError(t, s.CheckMembership(ctx, p.ID, "user_b"))

	listed, err := s.List(ctx, "user_b")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, p.ID, listed[0].ID)

	members, err := s.ListMembers(ctx, p.ID, "user_b")
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, Member{UserID: "user_a", Role: RoleOwner, DisplayName: "A", Email: "a@x.io"}, members[0])
	assert.Equal(t, RoleEditor, members[1].Role)

	assert.ErrorIs(t, s.RemoveMember(ctx, p.ID, "user_a", "user_a"), ErrOwner)
	assert.ErrorIs(t, s.RemoveMember(ctx, p.ID, "user_b", "user_a"), ErrForbidden)
	require.NoError(t, s.RemoveMember(ctx, p.ID, "user_a", "user_b"))
	assert.ErrorIs(t, s.CheckMembership(ctx, p.ID, "user_b"), ErrNotMember)

	assert.ErrorIs(t, s.Delete(ctx, p.ID, "user_b"), ErrForbidden)
	require.NoError(t, s.Delete(ctx, p.ID, "user_a"))
	assert.ErrorIs(t, s.Delete(ctx, p.ID, "user_a"), ErrNotFound)
}

type testServer struct {
	router *mux.Router
	auth   *auth.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	authSvc := auth.NewService("secret")
	hub := collab.NewHub(2)
	h := NewHandler(NewService(authSvc), hub, "scene_playground")

	r := mux.NewRouter()
	r.HandleFunc("/playground/draw", h.Draw).Methods("GET")
	r.HandleFunc("/playground/ops", h.SubmitOperation).Methods("POST")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(authSvc.AuthMiddleware)
	api.HandleFunc("/projects", h.Create).Methods("POST")
	api.HandleFunc("/projects", h.List).Methods("GET")
	api.HandleFunc("/projects/{projectId}", h.Get).Methods("GET")
	api.HandleFunc("/projects/{projectId}", h.Delete).Methods("DELETE")
	api.HandleFunc("/projects/{projectId}/draw", h.Draw).Methods("GET")
	api.HandleFunc("/projects/{projectId}/hit", h.Hit).Methods("GET")
	api.HandleFunc("/projects/{projectId}/bbox", h.BoundingBox).Methods("GET")
	api.HandleFunc("/projects/{projectId}/ops", h.SubmitOperation).Methods("POST")

	return &testServer{router: r, auth: authSvc}
}

func (ts *testServer) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

const rectOp = `{"type":"shape.create","shape":{"kind":"rectangle","points":[{"x":0,"y":0},{"x":100,"y":50}]}}`

func TestSceneEndpoints(t *testing.T) {
	ts := newTestServer(t)
	owner, err := ts.auth.Register(context.Background(), "o@x.io", "password", "Owner")
	require.NoError(t, err)
	outsider, err := ts.auth.Register(context.Background(), "z@x.io", "password", "Outsider")
	require.NoError(t, err)

	rec := ts.do(t, http.MethodPost, "/api/projects", owner.Token, `{"name":"Board"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var p Project
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))
	base := "/api/projects/" + p.ID

	rec = ts.do(t, http.MethodPost, base+"/ops", owner.Token, rectOp)
	require.Equal(t, http.StatusOK, rec.Code)
	var ack collab.OperationAckPayload
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&ack))
	assert.Equal(t, 1, ack.ShapeID)
	assert.Equal(t, int64(1), ack.ServerSeq)

	rec = ts.do(t, http.MethodPost, base+"/ops", owner.Token, rectOp)
	assert.Equal(t, http.StatusConflict, rec.Code, "identical geometry")
	rec = ts.do(t, http.MethodPost, base+"/ops", owner.Token, `{"type":"shape.delete","shapeId":9}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = ts.do(t, http.MethodPost, base+"/ops", owner.Token, `{"type":"shape.spin"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodGet, base+"/draw", owner.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var sync collab.SceneSyncPayload
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&sync))
	assert.Len(t, sync.Commands, 1)

	rec = ts.do(t, http.MethodGet, base+"/hit?x=10&y=10", owner.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var hit hitResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&hit))
	assert.Equal(t, 1, hit.ShapeID)
	assert.Empty(t, hit.Hovering)

	rec = ts.do(t, http.MethodGet, base+"/hit?x=abc&y=10", owner.Token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodGet, base+"/bbox?tag=rectangle", owner.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var box engine.Bounds
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&box))
	assert.Equal(t, engine.Bounds{X: 0, Y: 0, Width: 100, Height: 50}, box)

	rec = ts.do(t, http.MethodGet, base+"/bbox?tag=nothing", owner.Token, "")
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&box))
	assert.True(t, box.Empty)

	rec = ts.do(t, http.MethodGet, base+"/draw", outsider.Token, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = ts.do(t, http.MethodGet, base+"/draw", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodDelete, base, outsider.Token, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = ts.do(t, http.MethodDelete, base, owner.Token, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = ts.do(t, http.MethodGet, base, owner.Token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPlaygroundIsPublic(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/playground/ops", "", rectOp)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPost, "/playground/ops", "",
		`{"type":"shape.create","shape":{"kind":"ellipse","points":[{"x":0,"y":0},{"x":10,"y":10}]}}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPost, "/playground/ops", "",
		`{"type":"shape.create","shape":{"kind":"ellipse","points":[{"x":0,"y":0},{"x":20,"y":20}]}}`)
	assert.Equal(t, http.StatusConflict, rec.Code, "playground holds two shapes in this test")

	rec = ts.do(t, http.MethodGet, "/playground/draw", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var sync collab.SceneSyncPayload
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&sync))
	assert.Len(t, sync.Commands, 2)
	assert.Equal(t, int64(2), sync.ServerSeq)
}
