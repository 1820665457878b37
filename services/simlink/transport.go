package simlink

import (
	"context"
	"io"
	"sync"

	"omnistuff-go/errcode"
	"omnistuff-go/types"
)

// Transport is a pluggable link dialler.
type Transport interface {
	Open(ctx context.Context) (io.ReadWriteCloser, error)
	String() string
}

type transportFactory func(types.SimlinkConfig) (Transport, error)

var (
	regMu    sync.RWMutex
	registry = map[string]transportFactory{}
)

// RegisterTransport allows other packages to add transports (eg. "tcp" on
// a desktop build).
func RegisterTransport(name string, f transportFactory) {
	regMu.Lock()
	defer regMu.Unlock()
	registry[name] = f
}

func newTransport(cfg types.SimlinkConfig) (Transport, error) {
	regMu.RLock()
	f, ok := registry[cfg.Transport]
	regMu.RUnlock()
	if ok {
		return f(cfg)
	}
	switch cfg.Transport {
	case "uart":
		return newUARTTransport(cfg)
	default:
		return nil, errcode.New(errcode.UnknownTransport, "simlink.transport", cfg.Transport)
	}
}

// UARTDial is injected by platform code. It must open and return an
// io.ReadWriteCloser over the configured UART.
var UARTDial func(ctx context.Context, u types.UARTParams) (io.ReadWriteCloser, error)

type uartTransport struct {
	params types.UARTParams
}

func newUARTTransport(cfg types.SimlinkConfig) (Transport, error) {
	if cfg.UART == nil {
		return nil, errcode.New(errcode.InvalidConfig, "simlink.transport", "uart transport requires uart params")
	}
	return &uartTransport{params: *cfg.UART}, nil
}

func (u *uartTransport) Open(ctx context.Context) (io.ReadWriteCloser, error) {
	if UARTDial == nil {
		return nil, errcode.New(errcode.NotDialable, "simlink.open", "UARTDial not set")
	}
	return UARTDial(ctx, u.params)
}

func (u *uartTransport) String() string { return "uart" }
