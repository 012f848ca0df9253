package constants

const ServiceName = "briefing-service"

// Обменник и ключи маршрутизации
const (
	BriefingExchange        = "briefing_events"
	BriefingExchangeType    = "topic"
	RoutingKeyStatusChanged = "briefing.status.changed"
)

// Заголовки событий
const (
	HeaderTraceID      = "x-trace-id"
	HeaderEventType    = "event-type"
	HeaderEventVersion = "event-version"
)

const (
	EventBriefingStatusChanged = "BriefingStatusChangedEvent"
	EventVersionV1             = "1.0.0"
)

// Префикс ключей хранилища статусов брифинга в Redis.
const RedisKeyPrefix = "briefing-service:"
