package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nj-ramadhan/barakah-be/internal/campaign"
	"github.com/nj-ramadhan/barakah-be/internal/cart"
	"github.com/nj-ramadhan/barakah-be/internal/config"
	"github.com/nj-ramadhan/barakah-be/internal/course"
	"github.com/nj-ramadhan/barakah-be/internal/db"
	"github.com/nj-ramadhan/barakah-be/internal/donation"
	"github.com/nj-ramadhan/barakah-be/internal/httpx"
	"github.com/nj-ramadhan/barakah-be/internal/logger"
	"github.com/nj-ramadhan/barakah-be/internal/middleware"
	"github.com/nj-ramadhan/barakah-be/internal/order"
	"github.com/nj-ramadhan/barakah-be/internal/payment"
	"github.com/nj-ramadhan/barakah-be/internal/poll"
	"github.com/nj-ramadhan/barakah-be/internal/product"
	"github.com/nj-ramadhan/barakah-be/internal/redisx"
	"github.com/nj-ramadhan/barakah-be/internal/user"
	"github.com/nj-ramadhan/barakah-be/internal/wishlist"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Repositories
	userRepo := user.NewRepository(database)
	campaignRepo := campaign.NewRepository(database)
	donationRepo := donation.NewRepository(database)
	productRepo := product.NewRepository(database)
	cartRepo := cart.NewRepository(database)
	wishlistRepo := wishlist.NewRepository(database)
	orderRepo := order.NewRepository(database)
	courseRepo := course.NewRepository(database)
	paymentRepo := payment.NewRepository(database)
	offsetRepo := payment.NewOffsetRepository(database)

	// Services
	userSvc := user.NewService(userRepo)
	campaignSvc := campaign.NewService(campaignRepo)
	proofStore := donation.NewDiskProofStore(cfg.ProofUploadDir)
	donationSvc := donation.NewService(donationRepo, campaignSvc, proofStore, cfg.AdminWhatsApp)
	productSvc := product.NewService(productRepo)
	cartSvc := cart.NewService(cartRepo, productRepo)
	orderSvc := order.NewService(orderRepo)
	courseSvc := course.NewService(courseRepo)

	gateway := payment.NewMidtransGateway(cfg.MidtransServerKey, cfg.MidtransSandbox)
	paymentSvc := payment.NewService(paymentRepo, gateway, offsetRepo, donationRepo, campaignSvc, orderSvc, rdb)

	// Background sweeper keeps pending payments converging even when
	// the gateway's notifications get lost.
	sweeper := poll.NewPoller(poll.DefaultInterval, paymentSvc.SweepPending)
	kicker := poll.NewDebouncer(poll.DefaultDebounce, sweeper.Kick)

	// Handlers
	userHandler := user.NewHandler(userSvc)
	campaignHandler := campaign.NewHandler(campaignSvc)
	donationHandler := donation.NewHandler(donationSvc)
	productHandler := product.NewHandler(productSvc)
	cartHandler := cart.NewHandler(cartSvc)
	wishlistHandler := wishlist.NewHandler(wishlistRepo)
	orderHandler := order.NewHandler(orderSvc)
	courseHandler := course.NewHandler(courseSvc)
	paymentHandler := payment.NewHandler(paymentSvc)
	paymentHandler.OnNotification = kicker.Trigger

	router := chi.NewRouter()
	router.Use(logger.RequestIDMiddleware)
	router.Use(logger.LoggingMiddleware)
	router.Use(middleware.RateLimitMiddleware)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Route("/api", func(api chi.Router) {
		api.Group(func(api chi.Router) {
			api.Use(middleware.CSRFMiddleware)

			api.Route("/auth", userHandler.RegisterAuthRoutes)

			api.Route("/campaigns", func(r chi.Router) {
				campaignHandler.RegisterRoutes(r)
				r.Group(func(r chi.Router) {
					r.Use(middleware.OptionalAuth)
					donationHandler.RegisterPublicRoutes(r)
				})
			})

			api.Route("/donations", func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				donationHandler.RegisterPrivateRoutes(r)
			})

			api.Route("/products", productHandler.RegisterRoutes)

			api.Route("/carts", func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				cartHandler.RegisterRoutes(r)
			})

			api.Route("/wishlists", func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				wishlistHandler.RegisterRoutes(r)
			})

			api.Route("/orders", func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				orderHandler.RegisterRoutes(r)
			})

			api.Route("/courses", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.OptionalAuth)
					courseHandler.RegisterPublicRoutes(r)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAuth)
					courseHandler.RegisterPrivateRoutes(r)
				})
			})

			api.Route("/profiles", func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				userHandler.RegisterProfileRoutes(r)
			})
		})

		api.Route("/payments", func(r chi.Router) {
			// The gateway's server-to-server notification carries no
			// browser cookie; its sha512 signature authenticates it,
			// so it stays outside the CSRF check.
			paymentHandler.RegisterWebhookRoutes(r)

			r.Group(func(r chi.Router) {
				r.Use(middleware.CSRFMiddleware)
				r.Group(func(r chi.Router) {
					r.Use(middleware.OptionalAuth)
					paymentHandler.RegisterPublicRoutes(r)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAuth)
					paymentHandler.RegisterPrivateRoutes(r)
				})
			})
		})
	})

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sweeper.Start(ctx)

	go func() {
		logger.L().Info("HTTP server listening", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.L().Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)

	kicker.Stop()
	sweeper.Stop()
}
