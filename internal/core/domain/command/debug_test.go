package command

import (
	"gadgetbot/internal/core/domain"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebug_Respond_SendsDebugInfo(t *testing.T) {
	ms := &MockTextSender{}
	limiter := &MockLimiter{calls: 7}
	scheduler := &MockScheduler{}
	debugCmd := NewDebug(ms, limiter, scheduler, "/debug")

	err := debugCmd.Respond(t.Context(), time.Second, &domain.Message{ID: 123, ChatID: 456})
	require.NoError(t, err)

	for _, want := range []string{"uptime:", "allocated mem:", "heap:", "goroutines:", "pending reminders: 0",
		"generations today: 7/1000", "compiled with go"} {
		assert.True(t, strings.Contains(ms.Message, want), "missing %q in %q", want, ms.Message)
	}
}
