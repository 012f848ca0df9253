package domain

import (
	"strings"
	"time"
)

// ViewerRole - роль пользователя, который смотрит список.
type ViewerRole string

const (
	RoleUser    ViewerRole = "user"
	RoleManager ViewerRole = "manager"
	RoleAdmin   ViewerRole = "admin"
)

// ParseViewerRole возвращает user для пустой или неизвестной роли.
func ParseViewerRole(raw string) ViewerRole {
	switch ViewerRole(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleManager:
		return RoleManager
	default:
		return RoleUser
	}
}

// Restricted - данные для такой роли бэкенд уже отфильтровал сам.
func (r ViewerRole) Restricted() bool {
	return r == RoleUser
}

// Session - явное состояние одного рабочего места: все, что пайплайн читает и пишет.
type Session struct {
	ID     string
	UserID string
	Role   ViewerRole

	Listings   []Listing
	FetchError string

	CustomerID      string
	CustomerName    string
	CustomerFilters FilterSet
	TopFilters      FilterSet

	SortMode   SortMode
	SortCycles map[SortFamily]int

	BriefingChecks BriefingChecks
	Briefing       BriefingState
	Overlay        EditOverlay

	View ListingView

	CreatedAt time.Time
	TouchedAt time.Time
}

func NewSession(id, userID string, role ViewerRole, now time.Time) *Session {
	return &Session{
		ID:              id,
		UserID:          userID,
		Role:            role,
		CustomerFilters: FilterSet{},
		TopFilters:      FilterSet{},
		SortMode:        InitialSortMode,
		SortCycles:      NewSortPositions(),
		BriefingChecks:  DefaultBriefingChecks(),
		Briefing:        BriefingState{Statuses: map[ListingID]BriefingStatus{}},
		Overlay:         EditOverlay{},
		CreatedAt:       now,
		TouchedAt:       now,
	}
}

// Listing ищет объявление рабочего набора по id.
func (s *Session) Listing(id ListingID) (Listing, bool) {
	for _, l := range s.Listings {
		if l.ID == id {
			return l, true
		}
	}
	return Listing{}, false
}

// SessionSnapshot - то, что видит клиент API после операции над сессией.
type SessionSnapshot struct {
	ID              string
	UserID          string
	Role            ViewerRole
	CustomerID      string
	CustomerName    string
	CustomerFilters FilterSet
	TopFilters      FilterSet
	BriefingChecks  BriefingChecks
	SortMode        SortMode
	View            ListingView
}

func (s *Session) Snapshot() SessionSnapshot {
	checks := make(BriefingChecks, len(s.BriefingChecks))
	for st, on := range s.BriefingChecks {
		checks[st] = on
	}
	return SessionSnapshot{
		ID:              s.ID,
		UserID:          s.UserID,
		Role:            s.Role,
		CustomerID:      s.CustomerID,
		CustomerName:    s.CustomerName,
		CustomerFilters: s.CustomerFilters.Clone(),
		TopFilters:      s.TopFilters.Clone(),
		BriefingChecks:  checks,
		SortMode:        s.SortMode,
		View:            s.View,
	}
}

// FilterUpdate - новое состояние верхней панели фильтров.
// Checks == nil оставляет чекбоксы брифинга как есть.
type FilterUpdate struct {
	Top    FilterSet
	Checks BriefingChecks
}
