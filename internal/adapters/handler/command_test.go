package handler

import (
	"context"
	"errors"
	"gadgetbot/internal/core/port"
	"gadgetbot/internal/core/service"
	"testing"
	"time"

	"gadgetbot/internal/core/domain"

	"github.com/go-telegram/bot/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRegistry struct {
	mock.Mock
	cmd port.Command
}

func (m *MockRegistry) Get(cmd string) (port.Command, error) {
	args := m.Called(cmd)
	return m.cmd, args.Error(1)
}

func (m *MockRegistry) Register(handler port.Command) {
	m.cmd = handler
	m.Called(handler)
}

func (m *MockRegistry) ListCommands() []string {
	m.Called()
	return []string{"foo", "bar"}
}

type MockCmdHandler struct{ mock.Mock }

func (m *MockCmdHandler) Respond(ctx context.Context, timeout time.Duration, msg *domain.Message) error {
	args := m.Called(ctx, timeout, msg)
	return args.Error(0)
}

func (m *MockCmdHandler) GetCommand() string {
	m.Called()
	return ""
}

func (m *MockCmdHandler) Usage() string {
	return ""
}

func makeUpdate(txt string) *models.Update {
	return &models.Update{
		Message: &models.Message{
			ID:   1,
			Text: txt,
			Chat: models.Chat{ID: 100},
			From: &models.User{ID: 200, Username: "bob", FirstName: "bob"},
		},
	}
}

func TestCommandHandler_Handle(t *testing.T) {
	type testcase struct {
		name       string
		update     *models.Update
		mockSetup  func(r *MockRegistry, ch *MockCmdHandler)
		wantCalled bool
		wantMsg    *domain.Message
	}

	tests := []testcase{
		{
			name:       "no message in update",
			update:     &models.Update{},
			mockSetup:  func(_ *MockRegistry, _ *MockCmdHandler) {},
			wantCalled: false,
		},
		{
			name:   "unknown command",
			update: makeUpdate("/unknown"),
			mockSetup: func(r *MockRegistry, _ *MockCmdHandler) {
				r.On("Get", "/unknown").Return(nil, errors.New("no handler"))
			},
			wantCalled: false,
		},
		{
			name:   "known command, Respond called successfully",
			update: makeUpdate("/Joke@gadget_bot please"),
			mockSetup: func(r *MockRegistry, ch *MockCmdHandler) {
				r.On("Get", "/joke").Return(ch, nil)
				ch.On("Respond", mock.Anything, 3*time.Second,
					mock.AnythingOfType("*domain.Message")).Return(nil)
			},
			wantCalled: true,
			wantMsg: &domain.Message{
				ID:       1,
				ChatID:   100,
				Username: "@bob",
				Text:     "/Joke@gadget_bot please",
			},
		},
		{
			name:   "known command, Respond returns error",
			update: makeUpdate("/fail"),
			mockSetup: func(r *MockRegistry, ch *MockCmdHandler) {
				r.On("Get", "/fail").Return(ch, nil)
				ch.On("Respond", mock.Anything, mock.Anything,
					mock.AnythingOfType("*domain.Message")).Return(errors.New("fail"))
			},
			wantCalled: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reg := new(MockRegistry)
			handler := new(MockCmdHandler)
			reg.cmd = handler
			tc.mockSetup(reg, handler)

			ch := NewCommand(reg, 3*time.Second, service.NewMetrics(prometheus.NewRegistry()))
			ch.Handle(t.Context(), nil, tc.update)
			ch.Wait()

			reg.AssertExpectations(t)
			if tc.wantCalled {
				if tc.wantMsg != nil {
					handler.AssertCalled(t, "Respond",
						mock.Anything,
						mock.Anything,
						mock.MatchedBy(func(msg *domain.Message) bool {
							return assert.ObjectsAreEqual(tc.wantMsg, msg)
						}),
					)
				} else {
					handler.AssertCalled(t, "Respond",
						mock.Anything,
						mock.Anything,
						mock.AnythingOfType("*domain.Message"),
					)
				}
			} else {
				assert.Empty(t, handler.Calls)
			}
		})
	}
}

func Test_getUserNameOrFirstName(t *testing.T) {
	tests := []struct {
		name     string
		user     *models.User
		expected string
	}{
		{
			name:     "username present",
			user:     &models.User{Username: "alice", FirstName: "Alice"},
			expected: "@alice",
		},
		{
			name:     "empty username, fallback to first name",
			user:     &models.User{Username: "", FirstName: "Bob"},
			expected: "Bob",
		},
		{
			name:     "no sender",
			user:     nil,
			expected: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, getUserNameOrFirstName(tc.user))
		})
	}
}

func TestCommandHandler_HandleRecoversPanic(t *testing.T) {
	reg := new(MockRegistry)
	handler := new(MockCmdHandler)
	reg.cmd = handler

	reg.On("Get", "/boom").Return(handler, nil)
	handler.On("Respond", mock.Anything, mock.Anything, mock.AnythingOfType("*domain.Message")).
		Panic("index out of range")

	ch := NewCommand(reg, time.Second, service.NewMetrics(prometheus.NewRegistry()))
	ch.Handle(t.Context(), nil, makeUpdate("/boom"))
	ch.Wait()

	handler.AssertCalled(t, "Respond", mock.Anything, mock.Anything, mock.AnythingOfType("*domain.Message"))

	err := ch.respond(t.Context(), handler, &domain.Message{Text: "/boom"})
	require.ErrorIs(t, err, ErrHandlerPanicked)
}
