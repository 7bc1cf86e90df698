package collab

import (
	"slices"
	"sync"
)

type PresenceManager struct {
	mu        sync.RWMutex
	presences map[string]*PresencePayload // userID -> presence
}

func NewPresenceManager() *PresenceManager {
	return &PresenceManager{
		presences: make(map[string]*PresencePayload),
	}
}

// Update stores a copy of p for the user.
func (pm *PresenceManager) Update(userID string, p *PresencePayload) {
	stored := *p
	stored.Selection = slices.Clone(p.Selection)

	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.presences[userID] = &stored
}

func (pm *PresenceManager) Remove(userID string) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	delete(pm.presences, userID)
}

func (pm *PresenceManager) GetAll() map[string]*PresencePayload {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	result := make(map[string]*PresencePayload, len(pm.presences))
	for k, v := range pm.presences {
		result[k] = v
	}
	return result
}

// HoveringOver returns the users whose cursor was last over shapeID.
func (pm *PresenceManager) HoveringOver(shapeID int) []string {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	var users []string
	for userID, p := range pm.presences {
		if shapeID != 0 && p.Hover == shapeID {
			users = append(users, userID)
		}
	}
	slices.Sort(users)
	return users
}

func (pm *PresenceManager) StateMessage() *Message {
	return newMessage(TypePresenceState, "", PresenceStatePayload{Presences: pm.GetAll()})
}
