package config

import (
	"context"
	"testing"
	"time"

	"omnistuff-go/bus"
	"omnistuff-go/errcode"
	"omnistuff-go/types"
)

func TestConfig_PublishEmbedded_RetainedPerService(t *testing.T) {
	b := bus.NewBus(16)
	conn := b.NewConnection("test-config")
	svc := NewConfigService()

	ctx := context.WithValue(context.Background(), CtxBoardKey, "pico")
	svc.Start(ctx, conn)

	sub := conn.Subscribe(bus.T(configPrefix, bus.MultiLevel))

	got := map[string]any{}
	deadline := time.Now().Add(600 * time.Millisecond)
	for len(got) < 4 && time.Now().Before(deadline) {
		select {
		case m := <-sub.Channel():
			if m.Topic.At(0) != configPrefix || !m.Retained {
				t.Fatalf("unexpected message %v retained=%v", m.Topic, m.Retained)
			}
			got[m.Topic.At(1)] = m.Payload
		case <-time.After(10 * time.Millisecond):
		}
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 retained messages, got %d (%v)", len(got), got)
	}

	p, ok := got["panel"].(types.PanelConfig)
	if !ok {
		t.Fatalf("panel payload type %T", got["panel"])
	}
	if p.TicksPerDetent != 4 || p.RefreshUs != 35525 || p.InitialPanel != 1 {
		t.Fatalf("panel config %+v", p)
	}
	s, ok := got["simlink"].(types.SimlinkConfig)
	if !ok || s.Transport != "uart" || s.UART == nil || s.UART.Baud != 115200 {
		t.Fatalf("simlink config %#v", got["simlink"])
	}
	if g, ok := got["gear"].(types.GearConfig); !ok || !g.Enabled {
		t.Fatalf("gear config %#v", got["gear"])
	}
	if h, ok := got["heartbeat"].(types.HeartbeatConfig); !ok || h.IntervalMs <= 0 {
		t.Fatalf("heartbeat config %#v", got["heartbeat"])
	}
}

func TestConfig_PublishConfig_MissingBoard(t *testing.T) {
	b := bus.NewBus(4)
	conn := b.NewConnection("test-missing-board")
	svc := NewConfigService()

	err := svc.publishConfig(context.Background(), conn)
	if errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("expected invalid_params, got %v", err)
	}
}

func TestConfig_PublishConfig_NoConfigFound(t *testing.T) {
	oldLookup := BoardLookup
	BoardLookup = func(string) (Board, bool) { return Board{}, false }
	t.Cleanup(func() { BoardLookup = oldLookup })

	b := bus.NewBus(4)
	conn := b.NewConnection("test-no-config")
	svc := NewConfigService()

	ctx := context.WithValue(context.Background(), CtxBoardKey, "unknown-board")
	if err := svc.publishConfig(ctx, conn); errcode.Of(err) != errcode.UnknownBoard {
		t.Fatalf("expected unknown_board, got %v", err)
	}
}

func TestResolve_OverrideAndDefaultName(t *testing.T) {
	oldLookup := BoardLookup
	BoardLookup = func(name string) (Board, bool) {
		b := boardPico
		b.Name = ""
		b.Panel.TicksPerDetent = 2
		return b, name == "bench"
	}
	t.Cleanup(func() { BoardLookup = oldLookup })

	b, err := Resolve(context.WithValue(context.Background(), CtxBoardKey, "bench"))
	if err != nil {
		t.Fatal(err)
	}
	if b.Name != "bench" || b.Panel.TicksPerDetent != 2 {
		t.Fatalf("resolved %s tpd=%d", b.Name, b.Panel.TicksPerDetent)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Board)
		ok     bool
	}{
		{"pico", func(*Board) {}, true},
		{"zero ticks per detent", func(b *Board) { b.Panel.TicksPerDetent = 0 }, false},
		{"zero loop interval", func(b *Board) { b.Panel.LoopIntervalMs = 0 }, false},
		{"zero refresh", func(b *Board) { b.Panel.RefreshUs = 0 }, false},
		{"negative debounce", func(b *Board) { b.Panel.DebounceMs = -1 }, false},
		{"tiny lcd", func(b *Board) { b.Panel.LCD.Cols = 8 }, false},
		{"no transport", func(b *Board) { b.Simlink.Transport = "" }, false},
		{"uart without params", func(b *Board) { b.Simlink.UART = nil }, false},
		{"custom transport without uart", func(b *Board) {
			b.Simlink.Transport = "tcp"
			b.Simlink.UART = nil
		}, true},
		{"inverted backoff", func(b *Board) { b.Simlink.BackoffMaxMs = 1 }, false},
	}
	for _, tc := range cases {
		b := boardPico
		tc.mutate(&b)
		err := b.Validate()
		if (err == nil) != tc.ok {
			t.Errorf("%s: Validate()=%v want ok=%v", tc.name, err, tc.ok)
		}
		if err != nil && errcode.Of(err) != errcode.InvalidConfig {
			t.Errorf("%s: code %q", tc.name, errcode.Of(err))
		}
	}
	for name, b := range embeddedBoards {
		if err := b.Validate(); err != nil {
			t.Errorf("embedded board %s: %v", name, err)
		}
	}
}
