package store

import (
	"context"
	"testing"
	"time"

	"omnistuff-go/bus"
	"omnistuff-go/errcode"
	"omnistuff-go/types"
)

const (
	keyNav  = "sim/cockpit2/radios/actuators/nav1_frequency_hz"
	keyHdg  = "sim/cockpit2/autopilot/heading_dial_deg_mag_pilot"
	keyNone = "sim/nowhere"
)

func newTestMemory(t *testing.T) *Memory {
	t.Helper()
	m := NewMemory()
	if err := m.Declare(keyNav, types.KindInt, 10800); err != nil {
		t.Fatalf("declare nav: %v", err)
	}
	if err := m.Declare(keyHdg, types.KindFloat, 90.5); err != nil {
		t.Fatalf("declare hdg: %v", err)
	}
	return m
}

func TestMemory_DeclareErrors(t *testing.T) {
	m := newTestMemory(t)
	if err := m.Declare(keyNav, types.KindInt, 0); errcode.Of(err) != errcode.DuplicateKey {
		t.Fatalf("duplicate declare: got %v", err)
	}
	if err := m.Declare("", types.KindInt, 0); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("empty key: got %v", err)
	}
}

func TestMemory_KindIsRespectedOnWrite(t *testing.T) {
	m := newTestMemory(t)

	m.SetFloat(keyNav, 11802.9)
	if got := m.Int(keyNav); got != 11802 {
		t.Fatalf("float write to int key: got %d want 11802 (truncated)", got)
	}
	m.SetFloat(keyNav, -3.7)
	if got := m.Int(keyNav); got != -3 {
		t.Fatalf("negative truncation: got %d want -3", got)
	}

	m.SetInt(keyHdg, 270)
	if got := m.Float(keyHdg); got != 270 {
		t.Fatalf("int write to float key: got %v", got)
	}
	m.SetFloat(keyHdg, 12.25)
	if got := m.Int(keyHdg); got != 12 {
		t.Fatalf("int read of float key: got %d", got)
	}
	if k, ok := m.Kind(keyHdg); !ok || k != types.KindFloat {
		t.Fatalf("Kind(hdg)=%v,%v", k, ok)
	}
}

func TestMemory_UnknownKeys(t *testing.T) {
	m := newTestMemory(t)
	m.SetInt(keyNone, 5)
	if m.Int(keyNone) != 0 || m.Float(keyNone) != 0 {
		t.Fatal("unknown key must read as zero")
	}
	if _, ok := m.Snapshot(keyNone); ok {
		t.Fatal("unknown key must not be snapshotted")
	}
	if err := m.Apply(types.ValueWrite{Key: keyNone}); errcode.Of(err) != errcode.UnknownKey {
		t.Fatalf("Apply unknown: %v", err)
	}
	keys := m.Keys()
	if len(keys) != 2 || keys[0] != keyHdg || keys[1] != keyNav {
		t.Fatalf("Keys()=%v", keys)
	}
}

func TestMemory_OnWriteNotCalledForApply(t *testing.T) {
	m := newTestMemory(t)
	var writes []types.ValueWrite
	m.OnWrite(func(w types.ValueWrite) { writes = append(writes, w) })

	m.SetInt(keyNav, 10805)
	if err := m.Apply(types.ValueWrite{Key: keyNav, Kind: types.KindInt, Int: 11000}); err != nil {
		t.Fatal(err)
	}
	if len(writes) != 1 || writes[0].Int != 10805 || writes[0].Kind != types.KindInt {
		t.Fatalf("unexpected hook calls: %+v", writes)
	}
	if m.Int(keyNav) != 11000 {
		t.Fatalf("Apply not stored: %d", m.Int(keyNav))
	}
}

func TestLink_PublishesWritesAndAppliesValues(t *testing.T) {
	b := bus.NewBus(8)
	conn := b.NewConnection("store")
	peer := b.NewConnection("peer")

	m := newTestMemory(t)
	l := Attach(m, conn)

	writes := peer.Subscribe(bus.T("sim", "write", bus.SingleLevel))
	cmds := peer.Subscribe(TopicCommand())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	m.SetInt(keyNav, 10905)
	select {
	case msg := <-writes.Channel():
		w := msg.Payload.(types.ValueWrite)
		if !msg.Topic.Equal(TopicWrite(keyNav)) || w.Int != 10905 {
			t.Fatalf("unexpected write message %v %+v", msg.Topic, w)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timeout waiting for write")
	}

	l.Command("sim/flight_controls/landing_gear_down")
	select {
	case msg := <-cmds.Channel():
		if c := msg.Payload.(types.Command); c.Name != "sim/flight_controls/landing_gear_down" {
			t.Fatalf("unexpected command %+v", c)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timeout waiting for command")
	}

	peer.Publish(peer.NewMessage(TopicValue(keyHdg), types.ValueWrite{Kind: types.KindFloat, Float: 181.25}, false))

	deadline := time.Now().Add(300 * time.Millisecond)
	for m.Float(keyHdg) != 181.25 {
		if time.Now().After(deadline) {
			t.Fatalf("value not applied, got %v", m.Float(keyHdg))
		}
		time.Sleep(5 * time.Millisecond)
	}
	select {
	case msg := <-writes.Channel():
		t.Fatalf("remote value echoed as write: %v", msg.Topic)
	case <-time.After(40 * time.Millisecond):
	}
}

func TestLink_ValuesBeforeRunAreKept(t *testing.T) {
	b := bus.NewBus(8)
	conn := b.NewConnection("store")
	peer := b.NewConnection("peer")

	m := newTestMemory(t)
	l := Attach(m, conn)
	l.Announce()
	// The simulator answers the announcement before Run is scheduled.
	peer.Publish(peer.NewMessage(TopicValue(keyNav), types.ValueWrite{Kind: types.KindInt, Int: 11370}, false))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	deadline := time.Now().Add(300 * time.Millisecond)
	for m.Int(keyNav) != 11370 {
		if time.Now().After(deadline) {
			t.Fatalf("early value lost, got %v", m.Int(keyNav))
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestLink_AnnounceIsRetained(t *testing.T) {
	b := bus.NewBus(4)
	conn := b.NewConnection("store")
	m := newTestMemory(t)
	Attach(m, conn).Announce()

	sub := b.NewConnection("late").Subscribe(TopicKeys())
	select {
	case msg := <-sub.Channel():
		keys, ok := msg.Payload.([]string)
		if !ok || len(keys) != 2 || keys[0] != keyHdg || keys[1] != keyNav {
			t.Fatalf("announced %#v", msg.Payload)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("no retained key list")
	}
}
