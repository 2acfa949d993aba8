package ivy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// Shared test types and handles used across test files.

// mustSet fails the test if registration fails.
func mustSet(t *testing.T, r *Registry, typ *Type, opts ...Option) {
	t.Helper()
	require.NoError(t, r.Set(typ, opts...), "Set(%s)", typ)
}

// mustResolve fails the test if resolution fails or yields the wrong type.
func mustResolve[T any](t *testing.T, r *Registry, id Identifier) T {
	t.Helper()
	v, err := Get[T](r, id)
	require.NoError(t, err, "Get(%s)", id)
	return v
}

type testLogger struct{ Prefix string }
type testConfig struct{ DSN string }

type testDatabase struct {
	Config *testConfig
	Logger *testLogger
}

type testUserRepo struct {
	DB     *testDatabase `ivy:"db"`
	Logger *testLogger   `ivy:"logger"`
}

type testService interface {
	Name() string
}

type testUserService struct {
	Repo   *testUserRepo
	Logger *testLogger
}

func (s *testUserService) Name() string { return "user" }

func newTestLogger() *testLogger { return &testLogger{Prefix: "app"} }
func newTestConfig() *testConfig { return &testConfig{DSN: "postgres://localhost"} }

func newTestDatabase(cfg *testConfig, log *testLogger) *testDatabase {
	return &testDatabase{Config: cfg, Logger: log}
}

func newTestUserService(repo *testUserRepo, log *testLogger) *testUserService {
	return &testUserService{Repo: repo, Logger: log}
}

// A, B and C model the classic three-class wiring: B gets an A property,
// C gets an A and a B through its constructor.
type testA struct{ Value string }

type testB struct {
	A *testA
}

type testC struct {
	A *testA
	B *testB
}

func newTestC(a *testA, b *testB) *testC { return &testC{A: a, B: b} }

type testCircA struct{ B *testCircB }
type testCircB struct{ C *testCircC }
type testCircC struct{ A *testCircA }

func newTestCircA(b *testCircB) *testCircA { return &testCircA{B: b} }
func newTestCircB(c *testCircC) *testCircB { return &testCircB{C: c} }
func newTestCircC(a *testCircA) *testCircC { return &testCircC{A: a} }

// testClosable is a singleton that implements io.Closer for shutdown tests.
type testClosable struct {
	Name   string
	Closed bool
	Order  *[]string // shared slice to record close order
}

func (c *testClosable) Close() error {
	c.Closed = true
	if c.Order != nil {
		*c.Order = append(*c.Order, c.Name)
	}
	return nil
}

// testFailCloser implements io.Closer but returns an error.
type testFailCloser struct{}

func (f *testFailCloser) Close() error {
	return errors.New("close failed")
}
