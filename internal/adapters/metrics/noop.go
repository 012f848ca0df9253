package metrics

import "time"

// NoopMetrics используется, когда метрики выключены.
type NoopMetrics struct{}

func (NoopMetrics) ObservePipelineRun(string, time.Duration, int, int) {}
func (NoopMetrics) BriefingStatusChanged(string)                       {}
func (NoopMetrics) StorageFailure(string)                              {}
func (NoopMetrics) FetchFailure(string)                                {}
func (NoopMetrics) PublishFailure(string)                              {}
func (NoopMetrics) SessionsActive(int)                                 {}
