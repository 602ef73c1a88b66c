package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.convislabs.com/registration/core"
	"go.convislabs.com/registration/db/models"
)

func newEventContext(t *testing.T) core.Context {
	t.Helper()

	ctx, err := core.NewContext(nil, core.NewLogger(nil), core.ContextWithEvents(core.GetEvents()...))
	require.NoError(t, err)

	return ctx
}

func TestFireUserCreatedEvent(t *testing.T) {
	ctx := newEventContext(t)

	var received *models.User
	Listen[*UserCreatedEvent](ctx, EVENT_USER_CREATED, func(evt *UserCreatedEvent) error {
		received = evt.User()
		return nil
	})

	user := &models.User{Email: "new@example.com"}
	require.NoError(t, FireUserCreatedEvent(ctx, user))

	require.NotNil(t, received)
	assert.Equal(t, "new@example.com", received.Email)
}

func TestFireUserActivatedEvent(t *testing.T) {
	ctx := newEventContext(t)

	var received *models.User
	Listen[*UserActivatedEvent](ctx, EVENT_USER_ACTIVATED, func(evt *UserActivatedEvent) error {
		received = evt.User()
		return nil
	})

	user := &models.User{Email: "active@example.com", Verified: true}
	require.NoError(t, FireUserActivatedEvent(ctx, user))

	require.NotNil(t, received)
	assert.True(t, received.Verified)
}

func TestFireUnknownEvent(t *testing.T) {
	ctx, err := core.NewContext(nil, core.NewLogger(nil))
	require.NoError(t, err)

	err = Fire[*UserCreatedEvent](ctx, "does.not.exist", nil)
	require.Error(t, err)
}
