package config

import (
	"context"

	"omnistuff-go/bus"
	"omnistuff-go/errcode"
	"omnistuff-go/types"
	"omnistuff-go/x/strx"
)

const (
	serviceName  = "config"
	configPrefix = "config"
)

type ctxKey string

// CtxBoardKey carries the board name in the context given to Start.
const CtxBoardKey ctxKey = "board"

// Board is the full configuration of one hardware build.
type Board struct {
	Name      string                `json:"name" yaml:"name"`
	Panel     types.PanelConfig     `json:"panel" yaml:"panel"`
	Simlink   types.SimlinkConfig   `json:"simlink" yaml:"simlink"`
	Gear      types.GearConfig      `json:"gear" yaml:"gear"`
	Heartbeat types.HeartbeatConfig `json:"heartbeat" yaml:"heartbeat"`
}

// BoardLookup allows overriding how boards are resolved.
var BoardLookup = func(name string) (Board, bool) {
	b, ok := embeddedBoards[name]
	return b, ok
}

// Validate checks the values the services cannot run without.
func (b Board) Validate() error {
	const op = "config.validate"
	p := b.Panel
	switch {
	case p.TicksPerDetent < 1:
		return errcode.New(errcode.InvalidConfig, op, "ticks_per_detent < 1")
	case p.LoopIntervalMs < 1:
		return errcode.New(errcode.InvalidConfig, op, "loop_interval_ms < 1")
	case p.RefreshUs < 1:
		return errcode.New(errcode.InvalidConfig, op, "refresh_us < 1")
	case p.DebounceMs < 0:
		return errcode.New(errcode.InvalidConfig, op, "debounce_ms < 0")
	case p.LCD.Cols < 16 || p.LCD.Rows < 2:
		return errcode.New(errcode.InvalidConfig, op, "lcd smaller than 16x2")
	}
	s := b.Simlink
	if s.Transport == "" {
		return errcode.New(errcode.InvalidConfig, op, "simlink transport missing")
	}
	if s.Transport == "uart" && (s.UART == nil || s.UART.Baud == 0) {
		return errcode.New(errcode.InvalidConfig, op, "simlink uart needs a baud rate")
	}
	if s.BackoffMaxMs < s.BackoffMinMs {
		return errcode.New(errcode.InvalidConfig, op, "backoff_max_ms < backoff_min_ms")
	}
	if b.Heartbeat.IntervalMs < 0 {
		return errcode.New(errcode.InvalidConfig, op, "heartbeat interval < 0")
	}
	return nil
}

// Resolve looks up and validates the board named in ctx.
func Resolve(ctx context.Context) (Board, error) {
	name, _ := ctx.Value(CtxBoardKey).(string)
	if name == "" {
		return Board{}, errcode.New(errcode.InvalidParams, "config.resolve", "missing board name in context")
	}
	b, ok := BoardLookup(name)
	if !ok {
		return Board{}, errcode.New(errcode.UnknownBoard, "config.resolve", name)
	}
	b.Name = strx.Coalesce(b.Name, name)
	if err := b.Validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}

// -----------------------------------------------------------------------------
// Config Service
// -----------------------------------------------------------------------------

type ConfigService struct {
	Name string
}

func NewConfigService() *ConfigService {
	return &ConfigService{Name: serviceName}
}

// Topic returns the retained topic for one service's config.
func Topic(service string) bus.Topic { return bus.T(configPrefix, service) }

// publishConfig resolves the board and publishes one retained message per service.
func (s *ConfigService) publishConfig(ctx context.Context, conn *bus.Connection) error {
	b, err := Resolve(ctx)
	if err != nil {
		return err
	}
	conn.Publish(conn.NewMessage(Topic("panel"), b.Panel, true))
	conn.Publish(conn.NewMessage(Topic("simlink"), b.Simlink, true))
	conn.Publish(conn.NewMessage(Topic("gear"), b.Gear, true))
	conn.Publish(conn.NewMessage(Topic("heartbeat"), b.Heartbeat, true))
	println("[config] published board", b.Name)
	return nil
}

// Start launches the config publisher in a goroutine.
func (s *ConfigService) Start(ctx context.Context, conn *bus.Connection) {
	go func() {
		if err := s.publishConfig(ctx, conn); err != nil {
			println("[config] error:", err.Error())
		}
	}()
}
