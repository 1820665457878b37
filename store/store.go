// Package store holds the live simulator parameters the panel edits.
//
// Every key has a fixed numeric kind declared once at startup. Reads of an
// undeclared key return zero and writes to one are dropped; the editing core
// has no error channel.
package store

import (
	"sort"
	"sync"

	"omnistuff-go/errcode"
	"omnistuff-go/types"
)

// Store is the key-addressed value store targets edit through.
type Store interface {
	Int(key string) int
	SetInt(key string, v int)
	Float(key string) float64
	SetFloat(key string, v float64)
}

type cell struct {
	kind types.ValueKind
	i    int
	f    float64
}

func (c *cell) write(w types.ValueWrite) {
	switch c.kind {
	case types.KindInt:
		if w.Kind == types.KindFloat {
			c.i = int(w.Float) // truncates toward zero
		} else {
			c.i = w.Int
		}
	default:
		if w.Kind == types.KindInt {
			c.f = float64(w.Int)
		} else {
			c.f = w.Float
		}
	}
}

func (c *cell) snapshot(key string) types.ValueWrite {
	return types.ValueWrite{Key: key, Kind: c.kind, Int: c.i, Float: c.f}
}

// Memory is an in-process Store. Reads and writes are mutex-guarded so a
// link goroutine may apply simulator updates between panel ticks.
type Memory struct {
	mu      sync.Mutex
	cells   map[string]*cell
	onWrite func(types.ValueWrite)
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{cells: map[string]*cell{}}
}

// Declare registers key with its kind and initial value (taken from the
// field matching kind).
func (m *Memory) Declare(key string, kind types.ValueKind, initial float64) error {
	if key == "" {
		return errcode.New(errcode.InvalidParams, "store.declare", "empty key")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cells[key]; ok {
		return errcode.New(errcode.DuplicateKey, "store.declare", key)
	}
	c := &cell{kind: kind}
	c.write(types.ValueWrite{Kind: types.KindFloat, Float: initial})
	m.cells[key] = c
	return nil
}

// OnWrite installs a hook called after every local Set*. The hook runs
// outside the store lock with the value as stored.
func (m *Memory) OnWrite(fn func(types.ValueWrite)) {
	m.mu.Lock()
	m.onWrite = fn
	m.mu.Unlock()
}

// Keys returns the declared keys in lexical order.
func (m *Memory) Keys() []string {
	m.mu.Lock()
	out := make([]string, 0, len(m.cells))
	for k := range m.cells {
		out = append(out, k)
	}
	m.mu.Unlock()
	sort.Strings(out)
	return out
}

// Kind reports the declared kind of key.
func (m *Memory) Kind(key string) (types.ValueKind, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cells[key]
	if !ok {
		return 0, false
	}
	return c.kind, true
}

// Snapshot returns the stored value of key.
func (m *Memory) Snapshot(key string) (types.ValueWrite, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cells[key]
	if !ok {
		return types.ValueWrite{}, false
	}
	return c.snapshot(key), true
}

func (m *Memory) Int(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cells[key]
	if !ok {
		return 0
	}
	if c.kind == types.KindFloat {
		return int(c.f)
	}
	return c.i
}

func (m *Memory) Float(key string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cells[key]
	if !ok {
		return 0
	}
	if c.kind == types.KindInt {
		return float64(c.i)
	}
	return c.f
}

func (m *Memory) SetInt(key string, v int) {
	m.set(types.ValueWrite{Key: key, Kind: types.KindInt, Int: v})
}

func (m *Memory) SetFloat(key string, v float64) {
	m.set(types.ValueWrite{Key: key, Kind: types.KindFloat, Float: v})
}

func (m *Memory) set(w types.ValueWrite) {
	m.mu.Lock()
	c, ok := m.cells[w.Key]
	if !ok {
		m.mu.Unlock()
		return
	}
	c.write(w)
	stored := c.snapshot(w.Key)
	hook := m.onWrite
	m.mu.Unlock()
	if hook != nil {
		hook(stored)
	}
}

// Apply stores a value reported by the simulator. It does not call the
// OnWrite hook, so remote updates are never echoed back.
func (m *Memory) Apply(w types.ValueWrite) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cells[w.Key]
	if !ok {
		return errcode.New(errcode.UnknownKey, "store.apply", w.Key)
	}
	c.write(w)
	return nil
}
