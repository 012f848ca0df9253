package notifier

import (
	"briefing-service/internal/contextkeys"
	"briefing-service/internal/core/domain"
	"briefing-service/internal/core/port"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestNotifier(t *testing.T) *SSENotifier {
	n := NewSSENotifier(contextkeys.LoggerFromContext(context.Background()))
	t.Cleanup(n.Close)
	return n
}

func receive(t *testing.T, ch ClientChannel) string {
	t.Helper()
	select {
	case msg := <-ch:
		return string(msg)
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
		return ""
	}
}

func TestNotifyDeliversToSessionClients(t *testing.T) {
	n := newTestNotifier(t)
	first := n.AddClient("s1")
	second := n.AddClient("s1")
	other := n.AddClient("s2")

	n.Notify(context.Background(), port.ViewEvent{
		Type:      "view.refreshed",
		SessionID: "s1",
		Total:     5,
		Filtered:  3,
		Loaded:    10,
		SortMode:  domain.SortLatest,
	})

	msg := receive(t, first)
	assert.True(t, strings.HasPrefix(msg, "event: view.refreshed\ndata: {"), msg)
	assert.Contains(t, msg, `"filtered":3`)
	assert.True(t, strings.HasSuffix(msg, "\n\n"))
	assert.Equal(t, msg, receive(t, second))

	select {
	case <-other:
		t.Fatal("event leaked to another session")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRemoveClient(t *testing.T) {
	n := newTestNotifier(t)
	a := n.AddClient("s1")
	b := n.AddClient("s1")
	require.Equal(t, 2, n.Clients("s1"))

	n.RemoveClient("s1", a)
	assert.Equal(t, 1, n.Clients("s1"))
	n.RemoveClient("s1", b)
	assert.Equal(t, 0, n.Clients("s1"))
	n.RemoveClient("missing", b)
}

func TestNotifyAfterCloseIsIgnored(t *testing.T) {
	n := NewSSENotifier(contextkeys.LoggerFromContext(context.Background()))
	n.Close()
	n.Close()

	assert.NotPanics(t, func() {
		n.Notify(context.Background(), port.ViewEvent{SessionID: "s1"})
	})
}
