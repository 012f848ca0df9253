package domain

import (
	"fmt"
	"time"
)

// BriefingStatus - статус показа объекта клиенту.
type BriefingStatus string

const (
	BriefingNormal    BriefingStatus = "normal"
	BriefingPending   BriefingStatus = "pending"
	BriefingCompleted BriefingStatus = "completed"
	BriefingOnHold    BriefingStatus = "onhold"
)

// BriefingCycleOrder - порядок переключения статусов.
var BriefingCycleOrder = []BriefingStatus{
	BriefingNormal, BriefingPending, BriefingCompleted, BriefingOnHold,
}

func (s BriefingStatus) Valid() bool {
	switch s {
	case BriefingNormal, BriefingPending, BriefingCompleted, BriefingOnHold:
		return true
	}
	return false
}

// Next возвращает следующий статус в цикле. Неизвестный статус считается normal.
func (s BriefingStatus) Next() BriefingStatus {
	for i, st := range BriefingCycleOrder {
		if st == s {
			return BriefingCycleOrder[(i+1)%len(BriefingCycleOrder)]
		}
	}
	return BriefingPending
}

func ParseBriefingStatus(raw string) (BriefingStatus, error) {
	s := BriefingStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidBriefingStatus, raw)
	}
	return s, nil
}

// BriefingStorageKey - ключ, под которым хранится карта статусов клиента.
func BriefingStorageKey(customerID string) string {
	return "briefing_" + customerID
}

// BriefingState - статусы брифинга активного клиента.
// В Statuses никогда не лежит normal: отсутствие записи и есть normal.
type BriefingState struct {
	CustomerID string
	Statuses   map[ListingID]BriefingStatus
}

func (s *BriefingState) Active() bool {
	return s != nil && s.CustomerID != ""
}

// Status возвращает normal, если клиент не выбран.
func (s *BriefingState) Status(id ListingID) BriefingStatus {
	if !s.Active() {
		return BriefingNormal
	}
	if st, ok := s.Statuses[id]; ok {
		return st
	}
	return BriefingNormal
}

// BriefingChecks - состояние четырех чекбоксов фильтра брифинга.
type BriefingChecks map[BriefingStatus]bool

func DefaultBriefingChecks() BriefingChecks {
	return BriefingChecks{
		BriefingNormal:    true,
		BriefingPending:   true,
		BriefingCompleted: true,
		BriefingOnHold:    true,
	}
}

// Checked возвращает отмеченные статусы в порядке цикла.
func (c BriefingChecks) Checked() []BriefingStatus {
	var out []BriefingStatus
	for _, st := range BriefingCycleOrder {
		if c[st] {
			out = append(out, st)
		}
	}
	return out
}

// BriefingStatusChanged - событие об изменении статуса, уходит в брокер.
type BriefingStatusChanged struct {
	CustomerID string         `json:"customer_id"`
	ListingID  ListingID      `json:"listing_id"`
	Previous   BriefingStatus `json:"previous"`
	Status     BriefingStatus `json:"status"`
	UserID     string         `json:"user_id"`
	ChangedAt  time.Time      `json:"changed_at"`
}
