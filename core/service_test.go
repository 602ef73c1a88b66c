package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type testService struct {
	id string
}

func (s *testService) ID() string {
	return s.id
}

func newTestFactory(id string) ServiceFactory {
	return func() (Service, []ContextBuilderOption, error) {
		return &testService{id: id}, nil, nil
	}
}

func TestGetServicesDependencyOrder(t *testing.T) {
	RegisterService(ServiceInfo{ID: "svctest.leaf", Factory: newTestFactory("svctest.leaf")})
	RegisterService(ServiceInfo{ID: "svctest.mid", Factory: newTestFactory("svctest.mid"), Depends: []string{"svctest.leaf"}})
	RegisterService(ServiceInfo{ID: "svctest.top", Factory: newTestFactory("svctest.top"), Depends: []string{"svctest.mid"}})

	positions := make(map[string]int)
	for i, svc := range GetServices() {
		positions[svc.ID] = i
	}

	require.Less(t, positions["svctest.leaf"], positions["svctest.mid"])
	require.Less(t, positions["svctest.mid"], positions["svctest.top"])
}

func TestRegisterServiceDuplicatePanics(t *testing.T) {
	RegisterService(ServiceInfo{ID: "svctest.dup", Factory: newTestFactory("svctest.dup")})

	require.Panics(t, func() {
		RegisterService(ServiceInfo{ID: "svctest.dup", Factory: newTestFactory("svctest.dup")})
	})
}

func TestRegisterServiceEmptyIDPanics(t *testing.T) {
	require.Panics(t, func() {
		RegisterService(ServiceInfo{Factory: newTestFactory("")})
	})
}
