package simlink

import (
	"bufio"
	"context"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"omnistuff-go/bus"
	"omnistuff-go/errcode"
	"omnistuff-go/store"
	"omnistuff-go/types"
)

// peer is the simulator side of a net.Pipe link.
type peer struct {
	conn  net.Conn
	lines chan string
}

func newPeer(c net.Conn) *peer {
	p := &peer{conn: c, lines: make(chan string, 64)}
	go func() {
		sc := bufio.NewScanner(c)
		for sc.Scan() {
			p.lines <- sc.Text()
		}
		close(p.lines)
	}()
	return p
}

func (p *peer) send(t *testing.T, line string) {
	t.Helper()
	if _, err := io.WriteString(p.conn, line+"\n"); err != nil {
		t.Fatalf("peer write: %v", err)
	}
}

func (p *peer) expect(t *testing.T, want string) {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		select {
		case got, ok := <-p.lines:
			if !ok {
				t.Fatalf("peer closed waiting for %q", want)
			}
			if got == verbPing && want != verbPing {
				continue
			}
			if got != want {
				t.Fatalf("peer got %q, want %q", got, want)
			}
			return
		case <-deadline:
			t.Fatalf("timeout waiting for %q", want)
		}
	}
}

// pipeDial installs a UARTDial that hands each new link's far end to the test.
func pipeDial(t *testing.T) <-chan *peer {
	t.Helper()
	prev := UARTDial
	t.Cleanup(func() { UARTDial = prev })
	peers := make(chan *peer, 4)
	UARTDial = func(context.Context, types.UARTParams) (io.ReadWriteCloser, error) {
		local, remote := net.Pipe()
		select {
		case peers <- newPeer(remote):
		default:
			_ = remote.Close()
		}
		return local, nil
	}
	return peers
}

func uartConfig(pingMs int) types.SimlinkConfig {
	return types.SimlinkConfig{
		Transport:    "uart",
		UART:         &types.UARTParams{Bus: "uart0", Baud: 115200},
		BackoffMinMs: 20,
		BackoffMaxMs: 40,
		PingMs:       pingMs,
	}
}

func TestSimlink_SyncsValuesAndReconnects(t *testing.T) {
	b := bus.NewBus(32)
	conn := b.NewConnection("simlink_test")
	peers := pipeDial(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Start(ctx, conn)

	stateSub := conn.Subscribe(TopicState)
	defer conn.Unsubscribe(stateSub)
	expectState(t, stateSub, types.LevelIdle, "awaiting_config")

	conn.Publish(conn.NewMessage(store.TopicKeys(), []string{"a/b", "c d"}, true))
	conn.Publish(conn.NewMessage(topicConfig, uartConfig(0), true))
	expectState(t, stateSub, types.LevelUp, "link_established")

	p := nextPeer(t, peers)
	p.expect(t, "sub a/b")
	p.expect(t, `sub "c d"`)

	conn.Publish(conn.NewMessage(store.TopicWrite("a/b"), types.ValueWrite{Key: "a/b", Kind: types.KindInt, Int: 42}, false))
	p.expect(t, "set a/b 42")
	conn.Publish(conn.NewMessage(store.TopicCommand(), types.Command{Name: "sim/flight_controls/landing_gear_up"}, false))
	p.expect(t, "cmd sim/flight_controls/landing_gear_up")

	enabled := conn.Subscribe(store.TopicEnabled())
	values := conn.Subscribe(bus.T("sim", "value", bus.SingleLevel))
	p.send(t, "enabled 1")
	if e := nextPayload(t, enabled).(types.SimEnabled); !e.Enabled {
		t.Fatal("expected enabled")
	}
	p.send(t, "not a verb")
	p.send(t, `val "c d" 12.5`)
	v := nextPayload(t, values).(types.ValueWrite)
	if v.Key != "c d" || v.Kind != types.KindFloat || v.Float != 12.5 {
		t.Fatalf("value %+v", v)
	}

	_ = p.conn.Close()
	expectState(t, stateSub, types.LevelDegraded, "link_lost_retrying")
	if e := nextPayload(t, enabled).(types.SimEnabled); e.Enabled {
		t.Fatal("expected disabled after link loss")
	}

	expectState(t, stateSub, types.LevelUp, "link_established")
	p2 := nextPeer(t, peers)
	p2.expect(t, "sub a/b")
	p2.expect(t, `sub "c d"`)
}

func TestSimlink_PingTimeoutDropsLink(t *testing.T) {
	b := bus.NewBus(16)
	conn := b.NewConnection("simlink_ping")
	peers := pipeDial(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Start(ctx, conn)

	stateSub := conn.Subscribe(TopicState)
	defer conn.Unsubscribe(stateSub)
	expectState(t, stateSub, types.LevelIdle, "awaiting_config")

	conn.Publish(conn.NewMessage(topicConfig, uartConfig(10), false))
	expectState(t, stateSub, types.LevelUp, "link_established")

	p := nextPeer(t, peers)
	select {
	case got := <-p.lines:
		if got != "ping" {
			t.Fatalf("expected ping, got %q", got)
		}
	case <-time.After(time.Second):
		t.Fatal("no ping")
	}

	st := expectState(t, stateSub, types.LevelDegraded, "link_lost_retrying")
	if !strings.Contains(st.Error, string(errcode.Timeout)) {
		t.Fatalf("expected timeout error, got %q", st.Error)
	}
}

func TestSimlink_DialFailureBacksOff(t *testing.T) {
	prev := UARTDial
	UARTDial = nil
	t.Cleanup(func() { UARTDial = prev })

	b := bus.NewBus(8)
	conn := b.NewConnection("simlink_nodial")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Start(ctx, conn)

	stateSub := conn.Subscribe(TopicState)
	defer conn.Unsubscribe(stateSub)
	expectState(t, stateSub, types.LevelIdle, "awaiting_config")

	conn.Publish(conn.NewMessage(topicConfig, uartConfig(0), false))
	st := expectState(t, stateSub, types.LevelDegraded, "dial_failed_retrying")
	if !strings.Contains(st.Error, string(errcode.NotDialable)) || !strings.Contains(st.Error, "retry in 20ms") {
		t.Fatalf("error %q", st.Error)
	}
}

func TestSimlink_UnknownTransportYieldsErrorState(t *testing.T) {
	b := bus.NewBus(8)
	conn := b.NewConnection("simlink_bad")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Start(ctx, conn)

	stateSub := conn.Subscribe(TopicState)
	defer conn.Unsubscribe(stateSub)
	expectState(t, stateSub, types.LevelIdle, "awaiting_config")

	conn.Publish(conn.NewMessage(topicConfig, `{"transport":"bogus"}`, false))
	st := expectState(t, stateSub, types.LevelError, "transport_init_failed")
	if !strings.Contains(st.Error, string(errcode.UnknownTransport)) {
		t.Fatalf("error %q", st.Error)
	}

	conn.Publish(conn.NewMessage(topicConfig, 42, false))
	expectState(t, stateSub, types.LevelError, "config_decode_failed")
}

func TestDecodeConfig(t *testing.T) {
	cfg, err := decodeConfig(`{"transport":"uart","uart":{"bus":"uart1","baud":9600,"tx":4,"rx":5,"parity":"even"},"ping_ms":500}`)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UART == nil || cfg.UART.Baud != 9600 || cfg.UART.Parity != types.ParityEven || cfg.PingMs != 500 {
		t.Fatalf("decoded %+v", cfg)
	}
	cfg, err = decodeConfig(map[string]any{"transport": "uart", "backoff_max_ms": 1000})
	if err != nil || cfg.BackoffMaxMs != 1000 {
		t.Fatalf("map decode %+v %v", cfg, err)
	}
	if _, err := decodeConfig([]byte("{")); errcode.Of(err) != errcode.InvalidConfig {
		t.Fatalf("expected invalid_config, got %v", err)
	}
	if _, err := decodeConfig((*types.SimlinkConfig)(nil)); err == nil {
		t.Fatal("nil pointer accepted")
	}
}

func TestBackoffSeq(t *testing.T) {
	next := backoffSeq(10*time.Millisecond, 35*time.Millisecond)
	want := []time.Duration{10, 20, 35, 35}
	for i, w := range want {
		if got := next(); got != w*time.Millisecond {
			t.Fatalf("step %d: %v want %v", i, got, w*time.Millisecond)
		}
	}
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func nextPeer(t *testing.T, peers <-chan *peer) *peer {
	t.Helper()
	select {
	case p := <-peers:
		return p
	case <-time.After(time.Second):
		t.Fatal("no link dialled")
		return nil
	}
}

func nextPayload(t *testing.T, sub *bus.Subscription) any {
	t.Helper()
	select {
	case m := <-sub.Channel():
		return m.Payload
	case <-time.After(time.Second):
		t.Fatalf("timeout waiting on %v", sub.Topic())
		return nil
	}
}

func expectState(t *testing.T, sub *bus.Subscription, level types.Level, status string) types.LinkState {
	t.Helper()
	st, ok := nextPayload(t, sub).(types.LinkState)
	if !ok {
		t.Fatal("state payload is not a LinkState")
	}
	if st.Level != level || st.Status != status {
		t.Fatalf("state level=%q status=%q, want level=%q status=%q (err=%q)", st.Level, st.Status, level, status, st.Error)
	}
	return st
}
