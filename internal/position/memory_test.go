package position

import (
	"context"
	"strings"
	"sync"

	"github.com/SergeyParamoshkin/admin/client"
)

type call struct {
	Method string
	Arg    string
	Create client.CreatePositionRequest
	Update client.UpdatePositionRequest
}

// memoryAPI keeps positions in insertion order and records every call.
type memoryAPI struct {
	mu        sync.Mutex
	positions []client.ServerPosition
	calls     []call
	fail      map[string]error
}

func newMemoryAPI(positions ...client.ServerPosition) *memoryAPI {
	return &memoryAPI{positions: positions, fail: map[string]error{}}
}

func (m *memoryAPI) record(c call) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, c)

	return m.fail[c.Method]
}

func (m *memoryAPI) methods() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.calls))
	for _, c := range m.calls {
		out = append(out, c.Method)
	}

	return out
}

func (m *memoryAPI) last(method string) call {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := len(m.calls) - 1; i >= 0; i-- {
		if m.calls[i].Method == method {
			return m.calls[i]
		}
	}

	return call{}
}

func (m *memoryAPI) ListPositions(_ context.Context, department string) ([]client.ServerPosition, error) {
	if err := m.record(call{Method: "ListPositions", Arg: department}); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var out []client.ServerPosition
	for _, p := range m.positions {
		if department == "" || p.Department == department {
			out = append(out, p)
		}
	}

	return out, nil
}

func (m *memoryAPI) SearchPositions(_ context.Context, query string) ([]client.ServerPosition, error) {
	if err := m.record(call{Method: "SearchPositions", Arg: query}); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var out []client.ServerPosition
	for _, p := range m.positions {
		if strings.Contains(strings.ToLower(p.Title), strings.ToLower(query)) {
			out = append(out, p)
		}
	}

	return out, nil
}

func (m *memoryAPI) GetPosition(_ context.Context, id string) (*client.ServerPosition, error) {
	if err := m.record(call{Method: "GetPosition", Arg: id}); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.positions {
		if p.ID == id {
			out := p

			return &out, nil
		}
	}

	return nil, &client.APIError{StatusCode: 404}
}

func (m *memoryAPI) CreatePosition(_ context.Context, data client.CreatePositionRequest) (*client.ServerPosition, error) {
	if err := m.record(call{Method: "CreatePosition", Create: data}); err != nil {
		return nil, err
	}

	return &client.ServerPosition{ID: "new", Title: data.Title}, nil
}

func (m *memoryAPI) UpdatePosition(_ context.Context, id string, data client.UpdatePositionRequest) (*client.ServerPosition, error) {
	if err := m.record(call{Method: "UpdatePosition", Arg: id, Update: data}); err != nil {
		return nil, err
	}

	return &client.ServerPosition{ID: id}, nil
}

func (m *memoryAPI) DeletePosition(_ context.Context, id string) error {
	return m.record(call{Method: "DeletePosition", Arg: id})
}
