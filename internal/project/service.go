package project

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/inamate/scenekit/internal/auth"
	"github.com/inamate/scenekit/internal/typeid"
)

var (
	ErrNotFound  = errors.New("project not found")
	ErrForbidden = errors.New("forbidden")
	ErrNotMember = errors.New("not a project member")
	ErrOwner     = errors.New("cannot remove project owner")
)

const (
	RoleOwner  = "owner"
	RoleEditor = "editor"
)

// Users resolves account details for membership listings and invites.
type Users interface {
	GetUser(ctx context.Context, userID string) (*auth.User, error)
	GetUserByEmail(ctx context.Context, email string) (*auth.User, error)
}

// Project is a named shared scene. Its ID doubles as the scene id the
// collaboration hub keys rooms by.
type Project struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	OwnerID   string `json:"ownerId"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type Member struct {
	UserID      string `json:"userId"`
	Role        string `json:"role"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

type record struct {
	Project
	members map[string]string // userID -> role
}

type Service struct {
	mu       sync.RWMutex
	projects map[string]*record
	users    Users
	now      func() time.Time
}

func NewService(users Users) *Service {
	return &Service{
		projects: make(map[string]*record),
		users:    users,
		now:      time.Now,
	}
}

func (s *Service) Create(ctx context.Context, name, ownerID string, width, height int) (*Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 600
	}

	stamp := s.now().UTC().Format(time.RFC3339)
	rec := &record{
		Project: Project{
			ID:        typeid.NewSceneID(),
			Name:      name,
			OwnerID:   ownerID,
			Width:     width,
			Height:    height,
			CreatedAt: stamp,
			UpdatedAt: stamp,
		},
		members: map[string]string{ownerID: RoleOwner},
	}

	s.mu.Lock()
	s.projects[rec.ID] = rec
	s.mu.Unlock()

	p := rec.Project
	return &p, nil
}

func (s *Service) Get(ctx context.Context, projectID, userID string) (*Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, err := s.memberRecord(projectID, userID)
	if err != nil {
		return nil, err
	}
	p := rec.Project
	return &p, nil
}

// List returns the projects userID belongs to, oldest first.
func (s *Service) List(ctx context.Context, userID string) ([]Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	projects := make([]Project, 0)
	for _, rec := range s.projects {
		if _, ok := rec.members[userID]; ok {
			projects = append(projects, rec.Project)
		}
	}
	slices.SortFunc(projects, func(a, b Project) int {
		if c := cmp.Compare(a.CreatedAt, b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return projects, nil
}

func (s *Service) Delete(ctx context.Context, projectID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.projects[projectID]
	if !ok {
		return ErrNotFound
	}
	if rec.OwnerID != userID {
		return ErrForbidden
	}
	delete(s.projects, projectID)
	return nil
}

func (s *Service) InviteByEmail(ctx context.Context, projectID, ownerID, inviteeEmail string) error {
	invitee, err := s.users.GetUserByEmail(ctx, inviteeEmail)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.projects[projectID]
	if !ok {
		return ErrNotFound
	}
	if rec.OwnerID != ownerID {
		return ErrForbidden
	}
	if _, already := rec.members[invitee.ID]; !already {
		rec.members[invitee.ID] = RoleEditor
		rec.UpdatedAt = s.now().UTC().Format(time.RFC3339)
	}
	return nil
}

func (s *Service) ListMembers(ctx context.Context, projectID, userID string) ([]Member, error) {
	s.mu.RLock()
	rec, err := s.memberRecord(projectID, userID)
	if err != nil {
		s.mu.RUnlock()
		return nil, err
	}
	roles := make(map[string]string, len(rec.members))
	for id, role := range rec.members {
		roles[id] = role
	}
	s.mu.RUnlock()

	members := make([]Member, 0, len(roles))
	for id, role := range roles {
		m := Member{UserID: id, Role: role}
		if u, err := s.users.GetUser(ctx, id); err == nil {
			m.DisplayName = u.DisplayName
			m.Email = u.Email
		}
		members = append(members, m)
	}
	slices.SortFunc(members, func(a, b Member) int {
		if a.Role != b.Role {
			if a.Role == RoleOwner {
				return -1
			}
			if b.Role == RoleOwner {
				return 1
			}
		}
		return cmp.Compare(a.UserID, b.UserID)
	})
	return members, nil
}

func (s *Service) RemoveMember(ctx context.Context, projectID, ownerID, targetUserID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.projects[projectID]
	if !ok {
		return ErrNotFound
	}
	if rec.OwnerID != ownerID {
		return ErrForbidden
	}
	if targetUserID == ownerID {
		return ErrOwner
	}
	if _, ok := rec.members[targetUserID]; !ok {
		return ErrNotMember
	}
	delete(rec.members, targetUserID)
	return nil
}

// CheckMembership reports whether userID may open projectID's scene.
func (s *Service) CheckMembership(ctx context.Context, projectID, userID string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, err := s.memberRecord(projectID, userID)
	return err
}

func (s *Service) memberRecord(projectID, userID string) (*record, error) {
	rec, ok := s.projects[projectID]
	if !ok {
		return nil, ErrNotFound
	}
	if _, ok := rec.members[userID]; !ok {
		return nil, ErrNotMember
	}
	return rec, nil
}
