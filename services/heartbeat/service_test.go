package heartbeat

import (
	"context"
	"testing"
	"time"

	"omnistuff-go/bus"
	"omnistuff-go/types"
)

func TestHeartbeat_ReportsLinkAndSimState(t *testing.T) {
	b := bus.NewBus(16)
	conn := b.NewConnection("heartbeat_test")

	conn.Publish(conn.NewMessage(topicConfigHeartbeat, types.HeartbeatConfig{IntervalMs: 10}, true))
	conn.Publish(conn.NewMessage(topicLinkState, types.LinkState{Level: types.LevelUp}, true))
	conn.Publish(conn.NewMessage(topicSimEnabled, types.SimEnabled{Enabled: true}, true))

	sub := conn.Subscribe(Topic)
	defer conn.Unsubscribe(sub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var s Service
	if err := s.Start(ctx, conn); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(time.Second)
	for {
		select {
		case m := <-sub.Channel():
			hb := m.Payload.(types.Heartbeat)
			if hb.Link == types.LevelUp && hb.SimEnabled {
				if hb.UptimeMs < 0 {
					t.Fatalf("uptime %d", hb.UptimeMs)
				}
				return
			}
		case <-deadline:
			t.Fatal("no heartbeat reflecting the retained state")
		}
	}
}
