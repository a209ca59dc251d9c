// Package testutil provides test helpers for comptool (e.g. MockTool).
package testutil

import (
	"context"

	"github.com/skosovsky/comptool"
)

// MockTool is a configurable Tool implementation for tests.
type MockTool struct {
	NameVal   string
	DescVal   string
	ParamsVal map[string]any
	InvokeFn  func(ctx context.Context, args map[string]any) (any, error)
}

// Name returns the tool name.
func (m *MockTool) Name() string {
	if m.NameVal != "" {
		return m.NameVal
	}
	return "mock"
}

// Description returns the tool description.
func (m *MockTool) Description() string {
	return m.DescVal
}

// Parameters returns the parameters schema (or empty map).
func (m *MockTool) Parameters() map[string]any {
	if m.ParamsVal != nil {
		return m.ParamsVal
	}
	return map[string]any{}
}

// Invoke runs InvokeFn if set, otherwise returns (nil, nil).
func (m *MockTool) Invoke(ctx context.Context, args map[string]any) (any, error) {
	if m.InvokeFn != nil {
		return m.InvokeFn(ctx, args)
	}
	return nil, nil
}

// Ensure MockTool implements Tool.
var _ comptool.Tool = (*MockTool)(nil)
