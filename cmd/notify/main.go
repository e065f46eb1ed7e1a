package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Mouzitoto/restohub-2-sub000/internal/notifier"
	"github.com/Mouzitoto/restohub-2-sub000/internal/worker"
	"github.com/Mouzitoto/restohub-2-sub000/pkg/config"
	"github.com/Mouzitoto/restohub-2-sub000/pkg/mq"
	"github.com/Mouzitoto/restohub-2-sub000/pkg/obs"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.LoadNotify()
	if err != nil {
		log.Fatal(err)
	}

	shutdown := obs.InitTracer("booking-notify")
	defer shutdown(context.Background())

	var cons *mq.Consumer
	for {
		cons, err = mq.NewConsumer(cfg.RabbitURL, cfg.BookingExchange, cfg.NotifyQueue, []string{"booking.*"}, cfg.Prefetch)
		if err != nil {
			log.Printf("[notify] connect failed: %v; retry in 2s", err)
			time.Sleep(2 * time.Second)
			continue
		}
		break
	}
	defer cons.Close()

	w := worker.NewConsumer(cons, notifier.NewConsole())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := w.Run(ctx); err != nil {
			log.Printf("[notify] run error: %v", err)
		}
	}()
	log.Printf("[notify] started. queue=%s exchange=%s", cfg.NotifyQueue, cfg.BookingExchange)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	cancel()
	time.Sleep(200 * time.Millisecond)
}
