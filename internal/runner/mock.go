package runner

import (
	"context"
	"fmt"
	"os"
)

// MockCall records one invocation against the mock runner.
type MockCall struct {
	Method string
	Args   []any
}

// Mock records calls and serves canned outputs for tests.
type Mock struct {
	Calls        []MockCall
	RunOutputs   map[string]string
	RunErrors    map[string]error
	Files        map[string][]byte
	WriteErrors  map[string]error
	RemoveErrors map[string]error
}

func NewMock() *Mock {
	return &Mock{
		RunOutputs:   make(map[string]string),
		RunErrors:    make(map[string]error),
		Files:        make(map[string][]byte),
		WriteErrors:  make(map[string]error),
		RemoveErrors: make(map[string]error),
	}
}

func (m *Mock) Run(_ context.Context, cmd string) (string, error) {
	m.Calls = append(m.Calls, MockCall{Method: "Run", Args: []any{cmd}})
	if err, ok := m.RunErrors[cmd]; ok {
		return "", err
	}
	return m.RunOutputs[cmd], nil
}

func (m *Mock) WriteFile(_ context.Context, path string, content []byte, mode os.FileMode) error {
	m.Calls = append(m.Calls, MockCall{Method: "WriteFile", Args: []any{path, content, mode}})
	if err, ok := m.WriteErrors[path]; ok {
		return err
	}
	m.Files[path] = content
	return nil
}

func (m *Mock) ReadFile(_ context.Context, path string) ([]byte, error) {
	m.Calls = append(m.Calls, MockCall{Method: "ReadFile", Args: []any{path}})
	if data, ok := m.Files[path]; ok {
		return data, nil
	}
	return nil, fmt.Errorf("file not found: %s", path)
}

func (m *Mock) Remove(_ context.Context, path string) error {
	m.Calls = append(m.Calls, MockCall{Method: "Remove", Args: []any{path}})
	if err, ok := m.RemoveErrors[path]; ok {
		return err
	}
	if _, ok := m.Files[path]; !ok {
		return fmt.Errorf("file not found: %s", path)
	}
	delete(m.Files, path)
	return nil
}

// CommandsRun returns the shell commands issued so far, in order.
func (m *Mock) CommandsRun() []string {
	var cmds []string
	for _, c := range m.Calls {
		if c.Method == "Run" {
			cmds = append(cmds, c.Args[0].(string))
		}
	}
	return cmds
}
