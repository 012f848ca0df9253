package port

import "time"

// MetricsPort - счетчики сервиса. Реализация по умолчанию ничего не делает.
type MetricsPort interface {
	ObservePipelineRun(kind string, duration time.Duration, total, filtered int)
	BriefingStatusChanged(status string)
	StorageFailure(operation string)
	FetchFailure(source string)
	PublishFailure(event string)
	SessionsActive(count int)
}
