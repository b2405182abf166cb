package mocks

import (
	"context"

	"github.com/anonto42/socialfeed/backend/internal/events"
	"github.com/stretchr/testify/mock"
)

type Publisher struct {
	mock.Mock
}

func (m *Publisher) Publish(ctx context.Context, ev events.Event) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *Publisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
