package main

import (
	"context"
	"flag"
	"log"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"mini-rss/internal/config"
	"mini-rss/internal/rpc"
	"mini-rss/internal/server"
	"mini-rss/internal/worker"
)

// Se ejecuta el shuffle server
func main() {
	confPath := flag.String("conf", "", "Archivo JSON de configuracion (opcional)")
	port := flag.Int("port", 19999, "Puerto del shuffle server")
	host := flag.String("host", "localhost", "Host anunciado al coordinador")
	coordinator := flag.String("coordinator", "", "host:port del coordinador (por defecto rss.coordinator.address)")
	flag.Parse()

	conf := config.New()
	if *confPath != "" {
		var err error
		if conf, err = config.Load(*confPath); err != nil {
			log.Fatal(err)
		}
	}
	conf.Set(config.RpcServerPort, strconv.Itoa(*port))
	if *coordinator != "" {
		conf.Set(config.CoordinatorAddress, *coordinator)
	}

	shuffleServer := worker.NewShuffleServer("", *host, *port)
	srv, err := server.NewServer(conf, "ShuffleServer", shuffleServer.Handler())
	if err != nil {
		log.Fatal(err)
	}
	if err := srv.Start(); err != nil {
		log.Fatal(err)
	}
	// Con -port 0 el puerto real se conoce despues de arrancar.
	if _, p, err := net.SplitHostPort(srv.Addr()); err == nil {
		shuffleServer.Port, _ = strconv.Atoi(p)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	interval := time.Duration(conf.GetInt64(config.ServerHeartbeatInterval, config.ServerHeartbeatIntervalDefaultValue)) * time.Millisecond
	coordinatorAddr := conf.GetString(config.CoordinatorAddress, config.CoordinatorAddressDefaultValue)
	go shuffleServer.HeartbeatLoop(ctx, rpc.NewClient(interval), coordinatorAddr, interval)

	<-ctx.Done()
	log.Printf("[ShuffleServer %s] Apagando...", shuffleServer.ID)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Printf("[ShuffleServer %s] Error al detener: %v", shuffleServer.ID, err)
	}
}
