package core

import (
	"fmt"
	"sync"
)

type ServiceFactory func() (Service, []ContextBuilderOption, error)

type Service interface {
	ID() string
}

type ServiceInfo struct {
	ID      string
	Factory ServiceFactory
	Depends []string
}

var (
	services   = make(map[string]ServiceInfo)
	servicesMu sync.RWMutex
)

func RegisterService(service ServiceInfo) {
	if service.ID == "" {
		panic("service ID must not be empty")
	}

	if service.Factory == nil {
		panic("service factory must not be nil")
	}

	servicesMu.Lock()
	defer servicesMu.Unlock()

	if _, ok := services[service.ID]; ok {
		panic("service already registered: " + service.ID)
	}

	services[service.ID] = service
}

// GetServices returns all registered services in dependency order: a
// service always appears after everything it depends on.
func GetServices() []ServiceInfo {
	servicesMu.RLock()
	defer servicesMu.RUnlock()

	ordered := make([]ServiceInfo, 0, len(services))
	state := make(map[string]int)

	var visit func(id string) error
	visit = func(id string) error {
		switch state[id] {
		case 1:
			return fmt.Errorf("service dependency cycle involving %s", id)
		case 2:
			return nil
		}

		svc, ok := services[id]
		if !ok {
			return fmt.Errorf("unknown service dependency: %s", id)
		}

		state[id] = 1
		for _, dep := range svc.Depends {
			if err := visit(dep); err != nil {
				return err
			}
		}
		state[id] = 2

		ordered = append(ordered, svc)
		return nil
	}

	for id := range services {
		if err := visit(id); err != nil {
			panic(err)
		}
	}

	return ordered
}

func GetService[T any](ctx Context, id string) T {
	svc := ctx.Service(id)
	if svc == nil {
		var zero T
		return zero
	}

	return svc.(T)
}
