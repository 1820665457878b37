//go:build rp2040

package main

import (
	"context"
	"io"
	"machine"

	"github.com/jangala-dev/tinygo-uartx/uartx"

	"omnistuff-go/errcode"
	"omnistuff-go/services/simlink"
	"omnistuff-go/types"
)

func init() { simlink.UARTDial = dialUART }

func dialUART(ctx context.Context, p types.UARTParams) (io.ReadWriteCloser, error) {
	var hw *uartx.UART
	switch p.Bus {
	case "uart0":
		hw = uartx.UART0
	case "uart1":
		hw = uartx.UART1
	default:
		return nil, errcode.New(errcode.InvalidConfig, "uart.dial", "unknown bus "+p.Bus)
	}
	if err := hw.Configure(uartx.UARTConfig{
		BaudRate: p.Baud,
		TX:       machine.Pin(p.TX),
		RX:       machine.Pin(p.RX),
	}); err != nil {
		return nil, errcode.Wrap(errcode.NotDialable, "uart.dial", err)
	}
	data, stop := p.DataBits, p.StopBits
	if data == 0 {
		data = 8
	}
	if stop == 0 {
		stop = 1
	}
	if err := hw.SetFormat(data, stop, parity(p.Parity)); err != nil {
		return nil, errcode.Wrap(errcode.InvalidConfig, "uart.dial", err)
	}
	rctx, cancel := context.WithCancel(ctx)
	return &uartConn{u: hw, ctx: rctx, cancel: cancel}, nil
}

func parity(p types.Parity) uartx.UARTParity {
	switch p {
	case types.ParityEven:
		return uartx.ParityEven
	case types.ParityOdd:
		return uartx.ParityOdd
	default:
		return uartx.ParityNone
	}
}

// uartConn adapts a shared UART to one link session. Close ends pending
// reads; the peripheral itself stays configured for the next dial.
type uartConn struct {
	u      *uartx.UART
	ctx    context.Context
	cancel context.CancelFunc
}

func (c *uartConn) Read(b []byte) (int, error) {
	n, err := c.u.RecvSomeContext(c.ctx, b)
	if err != nil && c.ctx.Err() != nil {
		return n, io.EOF
	}
	return n, err
}

func (c *uartConn) Write(b []byte) (int, error) {
	if c.ctx.Err() != nil {
		return 0, io.ErrClosedPipe
	}
	return c.u.Write(b)
}

func (c *uartConn) Close() error {
	c.cancel()
	return nil
}
