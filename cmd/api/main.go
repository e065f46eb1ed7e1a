package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Mouzitoto/restohub-2-sub000/internal/metrics"
	"github.com/Mouzitoto/restohub-2-sub000/internal/repository"
	"github.com/Mouzitoto/restohub-2-sub000/internal/service"
	"github.com/Mouzitoto/restohub-2-sub000/internal/transport/rest"
	"github.com/Mouzitoto/restohub-2-sub000/pkg/config"
	"github.com/Mouzitoto/restohub-2-sub000/pkg/db"
	"github.com/Mouzitoto/restohub-2-sub000/pkg/mq"
	"github.com/Mouzitoto/restohub-2-sub000/pkg/obs"
)

func must[T any](v T, err error) T {
	if err != nil {
		log.Fatal(err)
	}
	return v
}

func main() {
	_ = godotenv.Load()
	cfg := must(config.LoadAPI())

	shutdown := obs.InitTracer("booking-api")
	defer shutdown(context.Background())

	gdb := db.Open(cfg.PGBookingDSN)
	bookings := repository.NewBookingRepo(gdb)
	must(0, bookings.Migrate())
	statuses := repository.NewStatusRepo(gdb)
	must(0, statuses.Seed(context.Background()))
	restaurants := repository.NewRestaurantRepo(gdb)
	users := repository.NewUserRepo(gdb)

	pub := must(mq.NewPublisher(cfg.RabbitURL, cfg.BookingExchange))
	defer pub.Close()

	m := metrics.New()
	bookingSvc := service.NewBookingSvc(bookings, restaurants, users, pub)
	userSvc := service.NewUserSvc(users, time.Duration(cfg.JWTExpireMin)*time.Minute)

	r := gin.Default()
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	ah := rest.NewAuthHandler(userSvc)
	bh := rest.NewBookingHandler(bookingSvc, m)
	sh := rest.NewStatusHandler(statuses)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/register", ah.Register)
		v1.POST("/auth/login", ah.Login)

		v1.POST("/bookings", bh.Create)
		v1.GET("/bookings", bh.List)
		v1.GET("/bookings/:id", bh.Get)

		// called by the webhook service on behalf of clients and managers
		v1.POST("/bookings/:id/confirm", bh.Confirm)
		v1.POST("/bookings/:id/status", bh.SetStatus)

		v1.POST("/bookings/:id/cancel", bh.Cancel)

		v1.GET("/statuses", sh.List)
		admin := v1.Group("/statuses")
		admin.Use(rest.JWTAuth(), rest.RequireRole("ADMIN"))
		admin.DELETE("/:code", sh.Delete)
	}

	log.Println("[api] listening on", cfg.APIHTTPAddr)
	log.Fatal(r.Run(cfg.APIHTTPAddr))
}
