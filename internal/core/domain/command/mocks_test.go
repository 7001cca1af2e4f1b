package command

import (
	"context"
	"gadgetbot/internal/core/domain"
	"gadgetbot/internal/core/service"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
)

type MockTextSender struct {
	mu       sync.Mutex
	err      error
	Message  string
	Messages []string
}

func (m *MockTextSender) SendMessageReply(_ context.Context, _ *domain.Message, message string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Message = message
	m.Messages = append(m.Messages, message)
	return 0, m.err
}

func (m *MockTextSender) NotifyAndReturnError(_ context.Context, err error, _ *domain.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Message = err.Error()
	if m.err != nil {
		return m.err
	}
	return err
}

func (m *MockTextSender) SendChatAction(_ context.Context, _ int64, _ domain.Action) {}

func (m *MockTextSender) Last() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Message
}

type MockImageSender struct {
	name   string
	file   []byte
	called bool
	err    error
}

func (m *MockImageSender) SendImageFileReply(_ context.Context, _ *domain.Message, name string, file []byte) error {
	m.name = name
	m.file = file
	m.called = true
	return m.err
}

type MockAuthorizer struct {
	deny bool
}

func (m *MockAuthorizer) IsAuthorized(_ context.Context, _ *domain.Message) bool {
	return !m.deny
}

type scheduled struct {
	delay time.Duration
	fire  func(ctx context.Context)
}

type MockScheduler struct {
	err       error
	scheduled []scheduled
}

func (m *MockScheduler) Schedule(delay time.Duration, fire func(ctx context.Context)) (uuid.UUID, error) {
	if m.err != nil {
		return uuid.Nil, m.err
	}
	m.scheduled = append(m.scheduled, scheduled{delay: delay, fire: fire})
	return uuid.Must(uuid.NewV4()), nil
}

func (m *MockScheduler) Pending() int {
	return len(m.scheduled)
}

type MockLimiter struct {
	exhausted bool
	calls     int
}

func (m *MockLimiter) Do(ctx context.Context, action func(ctx context.Context) (string, error)) (string, error) {
	if m.exhausted {
		return service.DailyLimitReached, nil
	}
	m.calls++
	return action(ctx)
}

func (m *MockLimiter) Usage() service.Usage {
	return service.Usage{CallsToday: m.calls, DailyLimit: 1000}
}

func fixed(n int) func(int) int {
	return func(int) int { return n }
}
