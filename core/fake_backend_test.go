package core

import (
	"context"
	"sync"

	"github.com/tartavull/alacritty/schema"
)

type fakeSession struct {
	title   string
	kind    schema.TabKind
	raw     [][]byte
	ops     []Operation
	urls    []string
	reloads int
	closed  bool
}

func (f *fakeSession) Title() string { return f.title }

type fakeConn struct {
	mu     sync.Mutex
	sent   [][]byte
	closed bool
}

func (c *fakeConn) Send(ctx context.Context, frame []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	buf := make([]byte, len(frame))
	copy(buf, frame)
	c.sent = append(c.sent, buf)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

type fakeBackend struct {
	mu       sync.Mutex
	spawned  []*fakeSession
	conns    []*fakeConn
	pushes   []func(frame []byte)
	spawnErr error
}

func (b *fakeBackend) Spawn(ctx context.Context, kind schema.TabKind, hints schema.SpawnHints) (SessionHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.spawnErr != nil {
		return nil, b.spawnErr
	}
	sess := &fakeSession{kind: kind, title: "session"}
	b.spawned = append(b.spawned, sess)
	return sess, nil
}

func (b *fakeBackend) Execute(ctx context.Context, handle SessionHandle, op Operation) error {
	handle.(*fakeSession).ops = append(handle.(*fakeSession).ops, op)
	return nil
}

func (b *fakeBackend) WriteRaw(ctx context.Context, handle SessionHandle, data []byte) error {
	buf := make([]byte, len(data))
	copy(buf, data)
	handle.(*fakeSession).raw = append(handle.(*fakeSession).raw, buf)
	return nil
}

func (b *fakeBackend) Navigate(ctx context.Context, handle SessionHandle, url string) error {
	handle.(*fakeSession).urls = append(handle.(*fakeSession).urls, url)
	return nil
}

func (b *fakeBackend) Reload(ctx context.Context, handle SessionHandle) error {
	handle.(*fakeSession).reloads++
	return nil
}

func (b *fakeBackend) ShowInspector(ctx context.Context, handle SessionHandle) error {
	return nil
}

func (b *fakeBackend) DebugAttach(ctx context.Context, handle SessionHandle, push func(frame []byte)) (DebugConn, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	conn := &fakeConn{}
	b.conns = append(b.conns, conn)
	b.pushes = append(b.pushes, push)
	return conn, nil
}

func (b *fakeBackend) Close(ctx context.Context, handle SessionHandle) error {
	handle.(*fakeSession).closed = true
	return nil
}

func newTestService(t interface{ Cleanup(func()) }, backend SessionBackend) Service {
	svc := NewService(schema.ServiceConfig{InspectorIdleTimeout: -1}, ServiceDeps{Backend: backend})
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}
