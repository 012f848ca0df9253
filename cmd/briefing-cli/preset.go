package main

import (
	"briefing-service/internal/core/domain"
	"briefing-service/internal/core/filter"
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"
)

// Preset - сохраненное состояние рабочего места: фильтры, клиент, брифинг и сортировка.
//
//	filters:  {region: 역삼, deposit: "0-5000"}
//	customer: {id: "42", filter: {region: "강남구 전체", deposit: "5000"}}
//	briefing: {statuses: {"17": pending}, checks: [pending, onhold]}
//	sort: [deposit, deposit]
type Preset struct {
	Filters  map[string]string `yaml:"filters"`
	Customer *PresetCustomer   `yaml:"customer"`
	Briefing PresetBriefing    `yaml:"briefing"`
	// кнопки сортировки, нажатые по порядку
	Sort []string `yaml:"sort"`
}

type PresetCustomer struct {
	ID     string            `yaml:"id"`
	Name   string            `yaml:"name"`
	Filter map[string]string `yaml:"filter"`
}

type PresetBriefing struct {
	Statuses map[string]string `yaml:"statuses"`
	Checks   []string          `yaml:"checks"`
}

func loadPreset(path string) (*Preset, error) {
	if path == "" {
		return &Preset{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset: %w", err)
	}
	var p Preset
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("parse preset %s: %w", path, err)
	}
	return &p, nil
}

// apply переносит пресет в сессию. Неизвестные ключи фильтров и статусы - ошибка.
func (p *Preset) apply(sess *domain.Session) error {
	for k, v := range p.Filters {
		key := domain.FilterKey(k)
		if !domain.IsFilterKey(key) {
			return fmt.Errorf("%w: %s", domain.ErrInvalidFilterKey, k)
		}
		sess.TopFilters[key] = v
	}

	if p.Customer != nil {
		id := p.Customer.ID
		if id == "" {
			id = "preset"
		}
		sess.CustomerID = id
		sess.CustomerName = p.Customer.Name
		sess.CustomerFilters = filter.NormalizeCustomerFilter(p.Customer.Filter)
		sess.Briefing.CustomerID = id
		for listingID, raw := range p.Briefing.Statuses {
			st, err := domain.ParseBriefingStatus(strings.ToLower(raw))
			if err != nil {
				return err
			}
			if st != domain.BriefingNormal {
				sess.Briefing.Statuses[domain.ListingID(listingID)] = st
			}
		}
	}

	if len(p.Briefing.Checks) > 0 {
		checks := domain.BriefingChecks{}
		for _, raw := range p.Briefing.Checks {
			st, err := domain.ParseBriefingStatus(strings.ToLower(raw))
			if err != nil {
				return err
			}
			checks[st] = true
		}
		sess.BriefingChecks = checks
	}
	return nil
}

// loadListings читает дамп: массив объявлений или страницу {"items": [...]}.
func loadListings(path string) ([]domain.Listing, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read listings: %w", err)
	}
	raw = bytes.TrimSpace(raw)

	var listings []domain.Listing
	if len(raw) > 0 && raw[0] == '{' {
		var page struct {
			Items []domain.Listing `json:"items"`
		}
		if err := sonic.Unmarshal(raw, &page); err != nil {
			return nil, fmt.Errorf("parse listings page: %w", err)
		}
		listings = page.Items
	} else if err := sonic.Unmarshal(raw, &listings); err != nil {
		return nil, fmt.Errorf("parse listings: %w", err)
	}
	return listings, nil
}
