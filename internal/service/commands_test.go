package service

import (
	"alcyxob/trainer-dashboard/internal/events"
	"alcyxob/trainer-dashboard/internal/render"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommands_InformationalActions(t *testing.T) {
	env := newTestEnv(t)
	cmds := NewCommands(env.bus, nil)

	res, err := cmds.Run(context.Background(), "nutrition.add", nil)
	require.NoError(t, err)
	assert.Equal(t, "info", res.Notice.Level)
	assert.Contains(t, res.Notice.Text, "Nutrition plans")
	assert.Equal(t, []events.Kind{events.KindNotice}, env.kinds.all())

	assert.Equal(t, []string{"help", "nutrition.add", "payment.add"}, cmds.Actions())
}

func TestCommands_UnknownAction(t *testing.T) {
	env := newTestEnv(t)
	_, err := NewCommands(env.bus, nil).Run(context.Background(), "eval", nil)
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestCommands_CalendarActions(t *testing.T) {
	env := newTestEnv(t)
	vc := NewViewController(env.clients, env.workouts, env.builder, env.bus, NavigateByView)
	cmds := NewCommands(env.bus, vc)
	ctx := context.Background()

	res, err := cmds.Run(ctx, "calendar.next", nil)
	require.NoError(t, err)
	assert.Equal(t, "June 2024", res.Notice.Text)

	res, err = cmds.Run(ctx, "calendar.view", map[string]string{"view": "day"})
	require.NoError(t, err)
	snap, ok := res.Data.(render.Snapshot)
	require.True(t, ok)
	assert.Equal(t, "2024-06-26", snap.Anchor)

	_, err = cmds.Run(ctx, "calendar.view", map[string]string{"view": "decade"})
	assert.ErrorIs(t, err, ErrInvalidGranularity)

	assert.Contains(t, cmds.Actions(), "calendar.today")
}
