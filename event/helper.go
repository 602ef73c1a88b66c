package event

import (
	"fmt"

	"github.com/gookit/event"
	"go.convislabs.com/registration/core"
)

// Helper function to get and check an event
func getEvent(ctx core.Context, eventName string) (core.Eventer, error) {
	evt, ok := ctx.Event().GetEvent(eventName)
	if !ok {
		return nil, fmt.Errorf("event %s not found", eventName)
	}

	return evt.(core.Eventer), nil
}

// Helper function to assert event type
func assertEventType[T core.Eventer](evt core.Eventer, eventName string) (T, error) {
	typedEvt, ok := evt.(T)
	if !ok {
		return *new(T), fmt.Errorf("event %s is not of expected type", eventName)
	}
	return typedEvt, nil
}

func Fire[T core.Eventer](ctx core.Context, eventName string, setup func(evt T) error) error {
	evt, err := getEvent(ctx, eventName)
	if err != nil {
		return err
	}

	typedEvt, err := assertEventType[T](evt, eventName)
	if err != nil {
		return err
	}

	if setup != nil {
		if err = setup(typedEvt); err != nil {
			return err
		}
	}

	return ctx.Event().FireEvent(typedEvt)
}

func Listen[T core.Eventer](ctx core.Context, eventName string, handler func(evt T) error) {
	ctx.Event().On(eventName, event.ListenerFunc(func(e event.Event) error {
		typedEvt, err := assertEventType[T](e.(core.Eventer), eventName)
		if err != nil {
			return err
		}

		return handler(typedEvt)
	}))
}
