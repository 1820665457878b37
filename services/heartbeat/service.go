package heartbeat

import (
	"context"
	"time"

	"omnistuff-go/bus"
	"omnistuff-go/types"
)

var (
	topicConfigHeartbeat = bus.T("config", "heartbeat")
	topicLinkState       = bus.T("simlink", "state")
	topicSimEnabled      = bus.T("sim", "enabled")

	// Topic carries one types.Heartbeat per tick.
	Topic = bus.T("heartbeat")
)

const defaultInterval = time.Second

type Service struct {
	start   time.Time
	link    types.Level
	enabled bool
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfigHeartbeat)
	defer conn.Unsubscribe(cfgSub)
	linkSub := conn.Subscribe(topicLinkState)
	defer conn.Unsubscribe(linkSub)
	simSub := conn.Subscribe(topicSimEnabled)
	defer conn.Unsubscribe(simSub)

	s.start = time.Now()
	s.link = types.LevelIdle

	tick := time.NewTicker(defaultInterval)
	defer tick.Stop()

	// loop until context is cancelled, respond to tick and state changes
	for {
		select {
		case <-ctx.Done():
			println("[heartbeat] stopping")
			return
		case <-tick.C:
			hb := types.Heartbeat{
				UptimeMs:   time.Since(s.start).Milliseconds(),
				Link:       s.link,
				SimEnabled: s.enabled,
			}
			println("[heartbeat] up", hb.UptimeMs, "ms link:", string(hb.Link), "sim:", hb.SimEnabled)
			conn.Publish(conn.NewMessage(Topic, hb, false))
		case msg := <-cfgSub.Channel():
			if c, ok := msg.Payload.(types.HeartbeatConfig); ok && c.IntervalMs > 0 {
				tick.Reset(time.Duration(c.IntervalMs) * time.Millisecond)
				println("[heartbeat] interval set to", c.IntervalMs, "ms")
			}
		case msg := <-linkSub.Channel():
			if st, ok := msg.Payload.(types.LinkState); ok {
				s.link = st.Level
			}
		case msg := <-simSub.Channel():
			if e, ok := msg.Payload.(types.SimEnabled); ok {
				s.enabled = e.Enabled
			}
		}
	}
}

// Start the heartbeat service.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go s.serviceLoop(ctx, conn)
	return nil
}
