package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"mini-rss/internal/config"
	"mini-rss/internal/master"
	"mini-rss/internal/server"
)

func main() {
	confPath := flag.String("conf", "", "Archivo JSON de configuracion (opcional)")
	port := flag.Int("port", 19990, "Puerto del coordinador")
	flag.Parse()

	conf := config.New()
	if *confPath != "" {
		var err error
		if conf, err = config.Load(*confPath); err != nil {
			log.Fatal(err)
		}
	}
	conf.Set(config.RpcServerPort, strconv.Itoa(*port))

	timeout := time.Duration(conf.GetInt64(config.ServerHeartbeatTimeout, config.ServerHeartbeatTimeoutDefaultValue)) * time.Millisecond
	coordinator := master.NewCoordinator(timeout)

	srv, err := server.NewServer(conf, "Coordinator", coordinator.Handler())
	if err != nil {
		log.Fatal(err)
	}
	if err := srv.Start(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go coordinator.ControlLoop(ctx, timeout/2)

	<-ctx.Done()
	log.Println("[Coordinator] Apagando...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Printf("[Coordinator] Error al detener: %v", err)
	}
}
