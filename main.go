package main

import (
	"context"
	"time"

	"omnistuff-go/bus"
	"omnistuff-go/services/config"
	"omnistuff-go/services/heartbeat"
	"omnistuff-go/services/panel"
	"omnistuff-go/services/simlink"
)

// board selects the embedded configuration.
const board = "pico"

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("[main] boot, board", board)

	ctx := context.WithValue(context.Background(), config.CtxBoardKey, board)
	b := bus.NewBus(8)

	config.NewConfigService().Start(ctx, b.NewConnection("config"))
	go simlink.Start(ctx, b.NewConnection("simlink"))

	hb := &heartbeat.Service{}
	if err := hb.Start(ctx, b.NewConnection("heartbeat")); err != nil {
		println("[main] heartbeat:", err.Error())
	}

	if err := panel.Run(ctx, b.NewConnection("panel")); err != nil {
		println("[main] panel stopped:", err.Error())
	}
	// Keep the link and heartbeat alive for diagnostics.
	select {}
}
