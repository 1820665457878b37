// Package simlink carries simulator values over a line protocol to the
// flight simulator host and mirrors them onto the bus.
package simlink

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"omnistuff-go/bus"
	"omnistuff-go/errcode"
	"omnistuff-go/store"
	"omnistuff-go/types"
	"omnistuff-go/x/timex"
)

// Topics owned by the link.
var (
	TopicState  = bus.T("simlink", "state")
	topicConfig = bus.T("config", "simlink")
)

// missedPings is how many ping periods of silence drop the link.
const missedPings = 3

// Start runs the link service until ctx is cancelled. It waits for a
// config on "config/simlink" and (re)opens the link on every new one.
func Start(ctx context.Context, conn *bus.Connection) {
	s := &Service{conn: conn}
	s.run(ctx)
}

type Service struct {
	conn *bus.Connection

	mu     sync.Mutex
	curRun context.CancelFunc
}

func (s *Service) run(ctx context.Context) {
	cfgSub := s.conn.Subscribe(topicConfig)
	defer s.conn.Unsubscribe(cfgSub)

	s.publishState(types.LevelIdle, "awaiting_config", nil)

	for {
		select {
		case <-ctx.Done():
			s.stopCurrent()
			s.publishState(types.LevelStopped, "context_done", nil)
			return
		case msg, ok := <-cfgSub.Channel():
			if !ok {
				s.publishState(types.LevelError, "config_subscription_closed", nil)
				return
			}
			cfg, err := decodeConfig(msg.Payload)
			if err != nil {
				s.publishState(types.LevelError, "config_decode_failed", err)
				continue
			}
			s.reconfigure(ctx, cfg)
		}
	}
}

func (s *Service) stopCurrent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.curRun != nil {
		s.curRun()
		s.curRun = nil
	}
}

func (s *Service) reconfigure(parent context.Context, cfg types.SimlinkConfig) {
	s.mu.Lock()
	if s.curRun != nil {
		s.curRun()
		s.curRun = nil
	}
	ctx, cancel := context.WithCancel(parent)
	s.curRun = cancel
	s.mu.Unlock()

	go s.runLink(ctx, cfg)
}

// -----------------------------------------------------------------------------
// Link supervision
// -----------------------------------------------------------------------------

func (s *Service) runLink(ctx context.Context, cfg types.SimlinkConfig) {
	tr, err := newTransport(cfg)
	if err != nil {
		s.publishState(types.LevelError, "transport_init_failed", err)
		return
	}

	backoff := backoffSeq(ms(cfg.BackoffMinMs), ms(cfg.BackoffMaxMs))
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		rwc, err := tr.Open(ctx)
		if err != nil {
			delay := backoff()
			s.publishState(types.LevelDegraded, "dial_failed_retrying", retryErr(err, delay))
			if !sleep(ctx, delay) {
				return
			}
			continue
		}

		println("[simlink] link up over", tr.String())
		s.publishState(types.LevelUp, "link_established", nil)
		err = s.handleLink(ctx, rwc, cfg)
		_ = rwc.Close()
		s.publishEnabled(false)
		if err == nil {
			return
		}
		delay := backoff()
		println("[simlink] link lost:", err.Error())
		s.publishState(types.LevelDegraded, "link_lost_retrying", retryErr(err, delay))
		if !sleep(ctx, delay) {
			return
		}
	}
}

// handleLink owns one connected link. It returns nil only when ctx ends.
func (s *Service) handleLink(ctx context.Context, rwc io.ReadWriteCloser, cfg types.SimlinkConfig) error {
	writes := s.conn.Subscribe(bus.T("sim", "write", bus.SingleLevel))
	defer s.conn.Unsubscribe(writes)
	cmds := s.conn.Subscribe(store.TopicCommand())
	defer s.conn.Unsubscribe(cmds)
	keys := s.conn.Subscribe(store.TopicKeys())
	defer s.conn.Unsubscribe(keys)

	var lastRx atomic.Int64
	lastRx.Store(timex.NowMs())
	errCh := make(chan error, 1)
	go s.readLoop(rwc, &lastRx, errCh)

	var ping <-chan time.Time
	if cfg.PingMs > 0 {
		t := time.NewTicker(ms(cfg.PingMs))
		defer t.Stop()
		ping = t.C
	}

	subscribed := map[string]bool{}
	send := func(line string) error {
		if _, err := io.WriteString(rwc, line); err != nil {
			return errcode.Wrap(errcode.LinkClosed, "simlink.write", err)
		}
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errCh:
			return err
		case msg := <-keys.Channel():
			list, _ := msg.Payload.([]string)
			for _, k := range list {
				if subscribed[k] {
					continue
				}
				if err := send(lineSub(k)); err != nil {
					return err
				}
				subscribed[k] = true
			}
		case msg := <-writes.Channel():
			w, ok := msg.Payload.(types.ValueWrite)
			if !ok {
				continue
			}
			if err := send(lineSet(w)); err != nil {
				return err
			}
		case msg := <-cmds.Channel():
			c, ok := msg.Payload.(types.Command)
			if !ok || c.Name == "" {
				continue
			}
			if err := send(lineCmd(c.Name)); err != nil {
				return err
			}
		case <-ping:
			silent := timex.NowMs() - lastRx.Load()
			if silent > int64(missedPings*cfg.PingMs) {
				return errcode.New(errcode.Timeout, "simlink.ping", "host silent")
			}
			if err := send(linePing()); err != nil {
				return err
			}
		}
	}
}

// readLoop decodes host lines onto the bus until the link fails.
func (s *Service) readLoop(r io.Reader, lastRx *atomic.Int64, errCh chan<- error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64), maxLine)
	for sc.Scan() {
		lastRx.Store(timex.NowMs())
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		f, err := ParseLine(line)
		if err != nil {
			println("[simlink] drop line:", err.Error())
			continue
		}
		switch f.Verb {
		case verbVal:
			s.conn.Publish(s.conn.NewMessage(store.TopicValue(f.Value.Key), f.Value, false))
		case verbEnabled:
			s.publishEnabled(f.Enabled)
		}
	}
	err := sc.Err()
	if err == nil {
		err = io.EOF
	}
	errCh <- errcode.Wrap(errcode.LinkClosed, "simlink.read", err)
}

// -----------------------------------------------------------------------------
// Utilities
// -----------------------------------------------------------------------------

// decodeConfig accepts the typed config from the config service, or JSON.
func decodeConfig(p any) (types.SimlinkConfig, error) {
	const op = "simlink.config"
	var cfg types.SimlinkConfig
	switch v := p.(type) {
	case types.SimlinkConfig:
		return v, nil
	case *types.SimlinkConfig:
		if v == nil {
			return cfg, errcode.New(errcode.InvalidConfig, op, "nil config")
		}
		return *v, nil
	case []byte:
		return cfg, errcode.Wrap(errcode.InvalidConfig, op, json.Unmarshal(v, &cfg))
	case string:
		return cfg, errcode.Wrap(errcode.InvalidConfig, op, json.Unmarshal([]byte(v), &cfg))
	case map[string]any:
		b, err := json.Marshal(v)
		if err != nil {
			return cfg, errcode.Wrap(errcode.InvalidConfig, op, err)
		}
		return cfg, errcode.Wrap(errcode.InvalidConfig, op, json.Unmarshal(b, &cfg))
	default:
		return cfg, errcode.New(errcode.InvalidConfig, op, "unsupported payload type")
	}
}

func (s *Service) publishState(level types.Level, status string, err error) {
	st := types.LinkState{Level: level, Status: status, TSms: timex.NowMs()}
	if err != nil {
		st.Error = err.Error()
	}
	s.conn.Publish(s.conn.NewMessage(TopicState, st, true))
}

func (s *Service) publishEnabled(on bool) {
	s.conn.Publish(s.conn.NewMessage(store.TopicEnabled(), types.SimEnabled{Enabled: on}, true))
}

type retryError struct {
	err   error
	delay time.Duration
}

func (e retryError) Error() string { return e.err.Error() + " (retry in " + e.delay.String() + ")" }
func (e retryError) Unwrap() error { return e.err }

func retryErr(err error, delay time.Duration) error { return retryError{err: err, delay: delay} }

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func backoffSeq(min, max time.Duration) func() time.Duration {
	if min <= 0 {
		min = 100 * time.Millisecond
	}
	if max < min {
		max = min
	}
	cur := min
	return func() time.Duration {
		d := cur
		cur *= 2
		if cur > max {
			cur = max
		}
		return d
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
