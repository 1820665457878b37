package store

import (
	"context"

	"omnistuff-go/bus"
	"omnistuff-go/types"
)

// Topic helpers.
func TopicWrite(key string) bus.Topic { return bus.T("sim", "write", key) }
func TopicValue(key string) bus.Topic { return bus.T("sim", "value", key) }
func TopicCommand() bus.Topic         { return bus.T("sim", "command") }
func TopicEnabled() bus.Topic         { return bus.T("sim", "enabled") }
func TopicKeys() bus.Topic            { return bus.T("sim", "keys") }

// Link connects a Memory to the bus: local writes are published on
// sim/write/<key>, simulator values arriving on sim/value/<key> are applied.
type Link struct {
	mem    *Memory
	conn   *bus.Connection
	values *bus.Subscription
}

// Attach installs the write publisher on mem and subscribes to simulator
// values, so values sent in reply to Announce queue until Run drains them.
func Attach(mem *Memory, conn *bus.Connection) *Link {
	l := &Link{
		mem:    mem,
		conn:   conn,
		values: conn.Subscribe(bus.T("sim", "value", bus.SingleLevel)),
	}
	mem.OnWrite(func(w types.ValueWrite) {
		conn.Publish(conn.NewMessage(TopicWrite(w.Key), w, false))
	})
	return l
}

// Announce publishes the declared keys, retained, so the simulator link
// can subscribe to each of them whenever it (re)connects.
func (l *Link) Announce() {
	l.conn.Publish(l.conn.NewMessage(TopicKeys(), l.mem.Keys(), true))
}

// Command asks the simulator to fire a one-shot command.
func (l *Link) Command(name string) {
	l.conn.Publish(l.conn.NewMessage(TopicCommand(), types.Command{Name: name}, false))
}

// Run applies simulator values until ctx is cancelled.
func (l *Link) Run(ctx context.Context) {
	defer l.conn.Unsubscribe(l.values)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-l.values.Channel():
			if !ok {
				return
			}
			w, ok := msg.Payload.(types.ValueWrite)
			if !ok {
				continue
			}
			if w.Key == "" {
				w.Key = msg.Topic.At(2)
			}
			if err := l.mem.Apply(w); err != nil {
				println("[store] drop value:", err.Error())
			}
		}
	}
}
