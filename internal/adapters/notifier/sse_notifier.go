package notifier

import (
	"briefing-service/internal/contextkeys"
	"briefing-service/internal/core/port"
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// ClientChannel - поток SSE-сообщений одного подключения.
type ClientChannel chan []byte

type eventWithContext struct {
	ctx   context.Context
	event port.ViewEvent
}

// SSENotifier рассылает события пересборки вида подписчикам сессии.
type SSENotifier struct {
	// ключ - ID сессии, у одной сессии может быть несколько вкладок
	clients map[string][]ClientChannel
	mu      sync.RWMutex

	eventChan chan eventWithContext
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once

	logger port.LoggerPort
}

func NewSSENotifier(baseLogger port.LoggerPort) *SSENotifier {
	n := &SSENotifier{
		clients:   make(map[string][]ClientChannel),
		eventChan: make(chan eventWithContext, 100),
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
		logger:    baseLogger.WithFields(port.Fields{"component": "SSENotifier"}),
	}
	go n.dispatcher()
	return n
}

func (n *SSENotifier) dispatcher() {
	defer close(n.stopped)
	n.logger.Debug("Notifier dispatcher started.", nil)
	for {
		select {
		case <-n.done:
			n.logger.Debug("Notifier dispatcher stopped.", nil)
			return
		case pkg := <-n.eventChan:
			n.dispatch(pkg.ctx, pkg.event)
		}
	}
}

func (n *SSENotifier) dispatch(ctx context.Context, event port.ViewEvent) {
	eventLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "SSENotifier.dispatcher",
		"event_type": event.Type,
		"session_id": event.SessionID,
	})

	data, err := json.Marshal(event)
	if err != nil {
		eventLogger.Error("Failed to marshal event", err, nil)
		return
	}
	msg := []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", event.Type, data))

	n.mu.RLock()
	defer n.mu.RUnlock()

	channels, found := n.clients[event.SessionID]
	if !found {
		eventLogger.Debug("No subscribers for session, event dropped.", nil)
		return
	}
	for _, ch := range channels {
		select {
		case ch <- msg:
		default:
			eventLogger.Warn("Client channel is full, skipping.", nil)
		}
	}
}

// Notify не блокирует вызывающего: при полном буфере событие теряется.
func (n *SSENotifier) Notify(ctx context.Context, event port.ViewEvent) {
	select {
	case <-n.done:
		return
	default:
	}
	select {
	case n.eventChan <- eventWithContext{ctx: ctx, event: event}:
	default:
		contextkeys.LoggerFromContext(ctx).Warn("Notifier buffer is full, event dropped.", port.Fields{
			"component":  "SSENotifier",
			"session_id": event.SessionID,
		})
	}
}

// AddClient подписывает новое SSE-подключение на события сессии.
func (n *SSENotifier) AddClient(sessionID string) ClientChannel {
	n.mu.Lock()
	defer n.mu.Unlock()

	ch := make(ClientChannel, 100)
	n.clients[sessionID] = append(n.clients[sessionID], ch)
	n.logger.Info("Client connected", port.Fields{
		"session_id":  sessionID,
		"connections": len(n.clients[sessionID]),
	})
	return ch
}

func (n *SSENotifier) RemoveClient(sessionID string, ch ClientChannel) {
	n.mu.Lock()
	defer n.mu.Unlock()

	channels, found := n.clients[sessionID]
	if !found {
		return
	}
	rest := make([]ClientChannel, 0, len(channels))
	for _, c := range channels {
		if c != ch {
			rest = append(rest, c)
		}
	}
	if len(rest) == 0 {
		delete(n.clients, sessionID)
		n.logger.Debug("Last client disconnected, session removed.", port.Fields{"session_id": sessionID})
		return
	}
	n.clients[sessionID] = rest
}

// Clients - число подключений сессии.
func (n *SSENotifier) Clients(sessionID string) int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.clients[sessionID])
}

// Close останавливает диспетчер. Повторный вызов безопасен.
func (n *SSENotifier) Close() {
	n.closeOnce.Do(func() {
		close(n.done)
		<-n.stopped
	})
}
