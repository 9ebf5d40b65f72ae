package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
)

// MockCall is one request built through a MockGenerator.
type MockCall struct {
	Path   string
	Args   []any
	Method string
	Header http.Header
	Query  Parameter
	Body   Body
}

// MockGenerator hands out clients that record what they were asked to send
// and answer with Respond instead of going to the network.
type MockGenerator struct {
	Respond func(ctx context.Context, call MockCall) (*Response, error)

	mu    sync.Mutex
	calls []MockCall
}

func (g *MockGenerator) New(path string, args ...any) Client {
	return &mockClient{
		generator: g,
		call:      MockCall{Path: path, Args: args, Header: make(http.Header)},
	}
}

func (g *MockGenerator) Calls() []MockCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]MockCall(nil), g.calls...)
}

type mockClient struct {
	generator *MockGenerator
	call      MockCall
}

func (c *mockClient) Header(name, value string) Client {
	c.call.Header.Set(name, value)
	return c
}

func (c *mockClient) Query(query Parameter) Client {
	c.call.Query = query
	return c
}

func (c *mockClient) Body(body Body) Client {
	c.call.Body = body
	return c
}

func (c *mockClient) POST(ctx context.Context, opts ...Opt) (*Response, error) {
	return c.send(ctx, http.MethodPost, opts...)
}

func (c *mockClient) GET(ctx context.Context, opts ...Opt) (*Response, error) {
	return c.send(ctx, http.MethodGet, opts...)
}

func (c *mockClient) send(ctx context.Context, method string, opts ...Opt) (*Response, error) {
	c.call.Method = method
	req := &http.Request{Method: method, Header: c.call.Header}
	for _, opt := range opts {
		opt.Do(req)
	}

	c.generator.mu.Lock()
	c.generator.calls = append(c.generator.calls, c.call)
	c.generator.mu.Unlock()

	if c.generator.Respond == nil {
		return nil, errors.New("mock generator has no response")
	}

	return c.generator.Respond(ctx, c.call)
}
