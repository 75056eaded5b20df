package service

import (
	"alcyxob/trainer-dashboard/internal/domain"
	"alcyxob/trainer-dashboard/internal/events"
	"alcyxob/trainer-dashboard/internal/render"
	"context"
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownAction = errors.New("unknown action")

// CommandResult is what an action reports back to the caller.
type CommandResult struct {
	Notice events.Notice `json:"notice"`
	Data   any           `json:"data,omitempty"`
}

// CommandFunc handles one action id.
type CommandFunc func(ctx context.Context, args map[string]string) (*CommandResult, error)

// Commands dispatches quick actions and calendar controls by id.
type Commands struct {
	handlers map[string]CommandFunc
	bus      *events.Bus
}

// NewCommands registers the built-in actions. vc may be nil, in which case
// only the informational actions are available.
func NewCommands(bus *events.Bus, vc *ViewController) *Commands {
	c := &Commands{handlers: make(map[string]CommandFunc), bus: bus}
	c.Register("help", notice("If you have any questions, please contact the administrator"))
	c.Register("nutrition.add", notice("Nutrition plans are in development"))
	c.Register("payment.add", notice("Payment tracking is in development"))

	if vc != nil {
		c.Register("calendar.next", calendarAction(vc.Next))
		c.Register("calendar.prev", calendarAction(vc.Prev))
		c.Register("calendar.today", calendarAction(vc.Today))
		c.Register("calendar.view", func(ctx context.Context, args map[string]string) (*CommandResult, error) {
			snap, err := vc.SetView(ctx, domain.Granularity(args["view"]))
			if err != nil {
				return nil, err
			}
			return &CommandResult{Notice: events.Notice{Level: "info", Text: snap.Grid.Title}, Data: snap}, nil
		})
	}
	return c
}

// Register adds or replaces the handler for an action id.
func (c *Commands) Register(action string, fn CommandFunc) {
	c.handlers[action] = fn
}

// Actions lists the registered action ids alphabetically.
func (c *Commands) Actions() []string {
	ids := make([]string, 0, len(c.handlers))
	for id := range c.handlers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Run executes an action and publishes its notice.
func (c *Commands) Run(ctx context.Context, action string, args map[string]string) (*CommandResult, error) {
	fn, ok := c.handlers[action]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	res, err := fn(ctx, args)
	if err != nil {
		return nil, err
	}
	if res.Notice.Text != "" {
		c.bus.Publish(res.Notice)
	}
	return res, nil
}

func notice(text string) CommandFunc {
	return func(context.Context, map[string]string) (*CommandResult, error) {
		return &CommandResult{Notice: events.Notice{Level: "info", Text: text}}, nil
	}
}

func calendarAction(op func(context.Context) (render.Snapshot, error)) CommandFunc {
	return func(ctx context.Context, _ map[string]string) (*CommandResult, error) {
		snap, err := op(ctx)
		if err != nil {
			return nil, err
		}
		return &CommandResult{Notice: events.Notice{Level: "info", Text: snap.Grid.Title}, Data: snap}, nil
	}
}
