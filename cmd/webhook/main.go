package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Mouzitoto/restohub-2-sub000/internal/dedup"
	"github.com/Mouzitoto/restohub-2-sub000/internal/metrics"
	"github.com/Mouzitoto/restohub-2-sub000/internal/notify"
	"github.com/Mouzitoto/restohub-2-sub000/internal/provider"
	"github.com/Mouzitoto/restohub-2-sub000/internal/repository"
	"github.com/Mouzitoto/restohub-2-sub000/internal/webhook"
	"github.com/Mouzitoto/restohub-2-sub000/pkg/config"
	"github.com/Mouzitoto/restohub-2-sub000/pkg/db"
	"github.com/Mouzitoto/restohub-2-sub000/pkg/obs"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.LoadWebhook()
	if err != nil {
		log.Fatal(err)
	}

	shutdown := obs.InitTracer("booking-webhook")
	defer shutdown(context.Background())

	gdb := db.Open(cfg.PGBookingDSN)
	dir := &webhook.RepoDirectory{
		Restaurants: repository.NewRestaurantRepo(gdb),
		Clients:     repository.NewClientRepo(gdb),
		Bookings:    repository.NewBookingRepo(gdb),
		Users:       repository.NewUserRepo(gdb),
	}

	rdb := dedup.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := dedup.Ping(context.Background(), rdb); err != nil {
		log.Printf("[webhook] redis unreachable, dedup degrades to pass-through: %v", err)
	}
	store := dedup.NewStore(rdb, time.Duration(cfg.DedupTTLMin)*time.Minute)

	providers := map[string]provider.MessageProvider{}
	if cfg.MetaPhoneID != "" {
		providers["meta"] = provider.NewMetaGraph(cfg.MetaGraphBase, cfg.MetaPhoneID, cfg.MetaAccessToken)
	}
	if cfg.ChatAPIBase != "" {
		providers["chatapi"] = provider.NewChatAPI(cfg.ChatAPIBase, cfg.ChatAPIToken)
	}
	if cfg.RestFormBase != "" {
		providers["restform"] = provider.NewRestForm(cfg.RestFormBase, cfg.RestFormAPIKey)
	}
	send := notify.NewDispatcher(providers, notify.NewTranslator())

	api := webhook.NewClient(cfg.BookingAPIBase)
	m := metrics.New()
	router := webhook.NewRouter(api, dir, send, store, cfg.VerifyToken, m)

	r := gin.Default()
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.Register(r)

	log.Println("[webhook] listening on", cfg.WebhookHTTPAddr)
	log.Fatal(r.Run(cfg.WebhookHTTPAddr))
}
