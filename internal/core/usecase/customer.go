package usecase

import (
	"briefing-service/internal/contextkeys"
	"briefing-service/internal/contracts"
	"briefing-service/internal/core/briefing"
	"briefing-service/internal/core/domain"
	"briefing-service/internal/core/filter"
	"briefing-service/internal/core/pipeline"
	"briefing-service/internal/core/port"
	"context"
	"fmt"
)

type SelectCustomerUseCase struct {
	repo      port.SessionRepositoryPort
	customers port.CustomerSourcePort
	storage   port.BriefingStoragePort
	notifier  port.ViewNotifierPort
	metrics   port.MetricsPort
}

func NewSelectCustomerUseCase(
	repo port.SessionRepositoryPort,
	customers port.CustomerSourcePort,
	storage port.BriefingStoragePort,
	notifier port.ViewNotifierPort,
	metrics port.MetricsPort,
) *SelectCustomerUseCase {
	return &SelectCustomerUseCase{
		repo:      repo,
		customers: customers,
		storage:   storage,
		notifier:  notifier,
		metrics:   metrics,
	}
}

func (uc *SelectCustomerUseCase) Execute(ctx context.Context, sessionID, customerID string) (domain.SessionSnapshot, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "SelectCustomer",
		"session_id":  sessionID,
		"customer_id": customerID,
	})

	ucLogger.Info("Use case started", nil)

	if customerID == "" {
		return domain.SessionSnapshot{}, fmt.Errorf("%w: empty id", domain.ErrCustomerNotFound)
	}

	var snapshot domain.SessionSnapshot
	err := updateOwned(ctx, uc.repo, sessionID, func(sess *domain.Session) error {
		// Шаг 1: Запись клиента из бэкенда
		customer, err := uc.customers.GetCustomer(ctx, sess.UserID, customerID)
		if err != nil {
			ucLogger.Error("Failed to get customer", err, nil)
			return fmt.Errorf("failed to get customer: %w", err)
		}

		// Шаг 2: Сохраненный фильтр клиента, при его отсутствии - старые колонки
		sess.CustomerID = customer.ID
		sess.CustomerName = customer.Name
		sess.CustomerFilters = customerFilters(customer, ucLogger)

		// Шаг 3: Статусы брифинга этого клиента. Правки таблицы брифинга относятся к прежнему клиенту.
		briefing.NewStore(uc.storage, uc.metrics, &sess.Briefing).Load(ctx, customer.ID)
		sess.Overlay = domain.EditOverlay{}

		runPipeline(ctx, sess, pipeline.Refresh, viewRefreshed, uc.notifier, uc.metrics)
		snapshot = sess.Snapshot()
		return nil
	})
	if err != nil {
		return domain.SessionSnapshot{}, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"customer_filters": len(snapshot.CustomerFilters),
		"filtered":         snapshot.View.Filtered,
	})
	return snapshot, nil
}

func customerFilters(c *domain.Customer, logger port.LoggerPort) domain.FilterSet {
	data, err := contracts.DecodeCustomerFilter(c.FilterData)
	if err != nil {
		logger.Warn("Customer filter_data is invalid, using legacy columns", port.Fields{"error": err.Error()})
	}
	// старые колонки читаются только когда filter_data нет или он не разобрался
	if data == nil {
		data = filter.LegacyFilterData(*c)
	}
	return filter.NormalizeCustomerFilter(data)
}

type ClearCustomerUseCase struct {
	repo     port.SessionRepositoryPort
	storage  port.BriefingStoragePort
	notifier port.ViewNotifierPort
	metrics  port.MetricsPort
}

func NewClearCustomerUseCase(
	repo port.SessionRepositoryPort,
	storage port.BriefingStoragePort,
	notifier port.ViewNotifierPort,
	metrics port.MetricsPort,
) *ClearCustomerUseCase {
	return &ClearCustomerUseCase{repo: repo, storage: storage, notifier: notifier, metrics: metrics}
}

// Execute снимает клиента: фильтр клиента, статусы брифинга и чекбоксы сбрасываются.
func (uc *ClearCustomerUseCase) Execute(ctx context.Context, sessionID string) (domain.SessionSnapshot, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "ClearCustomer",
		"session_id": sessionID,
	})

	ucLogger.Info("Use case started", nil)

	var snapshot domain.SessionSnapshot
	err := updateOwned(ctx, uc.repo, sessionID, func(sess *domain.Session) error {
		sess.CustomerID = ""
		sess.CustomerName = ""
		sess.CustomerFilters = domain.FilterSet{}
		sess.BriefingChecks = domain.DefaultBriefingChecks()
		sess.Overlay = domain.EditOverlay{}
		briefing.NewStore(uc.storage, uc.metrics, &sess.Briefing).Load(ctx, "")

		runPipeline(ctx, sess, pipeline.Refresh, viewRefreshed, uc.notifier, uc.metrics)
		snapshot = sess.Snapshot()
		return nil
	})
	if err != nil {
		return domain.SessionSnapshot{}, err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return snapshot, nil
}
