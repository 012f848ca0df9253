package rabbitmq_producer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublisherConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     PublisherConfig
		wantErr bool
	}{
		{"default exchange", PublisherConfig{}, false},
		{"declare topic", PublisherConfig{ExchangeName: "briefing", ExchangeType: "topic", DeclareExchangeIfMissing: true}, false},
		{"existing exchange without type", PublisherConfig{ExchangeName: "briefing"}, false},
		{"declare without type", PublisherConfig{ExchangeName: "briefing", DeclareExchangeIfMissing: true}, true},
		{"declare without name", PublisherConfig{ExchangeType: "topic", DeclareExchangeIfMissing: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
