package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"LetsGetSketchy/internal/board"
	"LetsGetSketchy/internal/config"
	padnet "LetsGetSketchy/internal/net"
	"LetsGetSketchy/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML settings file")
	serve := flag.Bool("serve", false, "run the headless remote pad instead of the window")
	addr := flag.String("addr", "", "remote pad listen address (overrides the settings file)")
	find := flag.Bool("find", false, "list remote pads on the local network and exit")
	flag.Parse()

	if *find {
		runFind()
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	if *addr != "" {
		cfg.Remote.Addr = *addr
	}

	b, _, err := board.FromConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to create board: %v", err)
	}

	if *serve {
		if err := runHost(cfg, b); err != nil {
			log.Fatalf("Remote pad stopped: %v", err)
		}
		return
	}
	log.Println("Starting sketchpad window")
	ui.RunApp(cfg, b)
}

func runHost(cfg config.Config, b *board.Board) error {
	log.Println("Starting as HOST")
	port, err := padnet.Port(cfg.Remote.Addr)
	if err != nil {
		return err
	}

	if cfg.Remote.Advertise {
		mdnsServer, err := padnet.Advertise(port)
		if err != nil {
			log.Printf("[HOST] mDNS advertisement disabled: %v", err)
		} else {
			defer mdnsServer.Shutdown()
		}
	}

	if ip, err := padnet.GetOutgoingIP(); err == nil {
		log.Printf("[HOST] share this link: %s", padnet.PadURL(ip, port))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return padnet.NewServer(b).ListenAndServe(ctx, cfg.Remote.Addr)
}

func runFind() {
	pads, err := padnet.Browse(2 * time.Second)
	if err != nil {
		log.Printf("Lookup failed: %v", err)
	}
	if len(pads) == 0 {
		fmt.Println("no remote pads found")
		return
	}
	for _, p := range pads {
		fmt.Println(p)
	}
}
