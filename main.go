package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gymDeskAPI/config"
	"gymDeskAPI/handlers"
	"gymDeskAPI/middleware"
	"gymDeskAPI/migrations"
	"gymDeskAPI/services"

	_ "net/http/pprof"
)

func newLogger(env string) *slog.Logger {
	level := slog.LevelInfo
	if env == "dev" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	log := newLogger(cfg.Env)

	if err := migrations.Up(cfg.DatabaseURL); err != nil {
		log.Error("migrations failed", "err", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to parse database URL", "err", err)
		os.Exit(1)
	}

	poolConfig.MaxConns = cfg.DB.MaxConns
	poolConfig.MinConns = cfg.DB.MinConns
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	dbPool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Error("failed to create connection pool", "err", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := dbPool.Ping(ctx); err != nil {
		log.Error("failed to ping database", "err", err)
		os.Exit(1)
	}
	log.Info("database connected")

	middleware.InitAuth(cfg.JWTSecret)
	middleware.InitPrometheus()
	services.InitMetrics()

	memberService := services.NewMemberService(dbPool, log)
	planService := services.NewPlanService(dbPool, log)
	subscriptionService := services.NewSubscriptionService(dbPool, log)
	attendanceService := services.NewAttendanceService(dbPool, log)
	productService := services.NewProductService(dbPool, log)
	saleService := services.NewSaleService(dbPool, log)
	dashboardService := services.NewDashboardService(dbPool, log)

	memberHandler := handlers.NewMemberHandler(memberService, log)
	planHandler := handlers.NewPlanHandler(planService, log)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService, log)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService, log)
	productHandler := handlers.NewProductHandler(productService, log)
	saleHandler := handlers.NewSaleHandler(saleService, log)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, log)

	r := mux.NewRouter()

	go middleware.CleanupVisitors()

	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))
	r.PathPrefix("/debug/pprof/").Handler(middleware.PprofSecurityMiddleware(http.DefaultServeMux))

	// Dashboard bundle
	assetsDir := "./assets"
	fs := http.FileServer(http.Dir(assetsDir))
	r.PathPrefix("/assets/").Handler(http.StripPrefix("/assets/", fs))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := dbPool.Ping(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unhealthy", "error": "database connection failed"}`))
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "gymDesk-api"}`))
	}).Methods("GET")

	// -------------------------------------------------------------------------
	// API V1 SUBROUTER (all routes require a staff session)
	// -------------------------------------------------------------------------
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.AuthMiddleware)

	api.HandleFunc("/attendance/check-in", attendanceHandler.CheckIn).Methods("POST")
	api.HandleFunc("/attendance/check-out", attendanceHandler.CheckOut).Methods("POST")
	api.HandleFunc("/attendance/logs", attendanceHandler.Logs).Methods("GET")

	api.HandleFunc("/members", memberHandler.List).Methods("GET")
	api.HandleFunc("/members", memberHandler.Create).Methods("POST")
	api.HandleFunc("/members/{id}", memberHandler.Get).Methods("GET")
	api.HandleFunc("/members/{id}", memberHandler.Update).Methods("PUT")
	api.HandleFunc("/members/{id}", memberHandler.Delete).Methods("DELETE")
	api.HandleFunc("/members/{id}/subscriptions", subscriptionHandler.ListForMember).Methods("GET")
	api.HandleFunc("/members/{id}/subscriptions", subscriptionHandler.Assign).Methods("POST")
	api.HandleFunc("/subscriptions/{id}/cancel", subscriptionHandler.Cancel).Methods("POST")

	api.HandleFunc("/membership-plans", planHandler.List).Methods("GET")
	api.HandleFunc("/membership-plans", planHandler.Create).Methods("POST")
	api.HandleFunc("/membership-plans/{id}", planHandler.Get).Methods("GET")
	api.HandleFunc("/membership-plans/{id}", planHandler.Update).Methods("PUT")
	api.HandleFunc("/membership-plans/{id}", planHandler.Delete).Methods("DELETE")

	api.HandleFunc("/products", productHandler.List).Methods("GET")
	api.HandleFunc("/products", productHandler.Create).Methods("POST")
	api.HandleFunc("/products/{id}", productHandler.Get).Methods("GET")
	api.HandleFunc("/products/{id}", productHandler.Update).Methods("PUT")
	api.HandleFunc("/products/{id}", productHandler.Delete).Methods("DELETE")

	api.HandleFunc("/sales", saleHandler.List).Methods("GET")
	api.HandleFunc("/sales", saleHandler.Create).Methods("POST")

	api.HandleFunc("/dashboard/summary", dashboardHandler.Summary).Methods("GET")

	// CORS configuration
	corsHandler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{"*"}),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Pprof-Secret"}),
		gorillaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorillaHandlers.AllowCredentials(),
	)

	server := http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("starting server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sig := <-sigChan
	log.Info("got signal", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", "err", err)
	}

	log.Info("server shutdown complete")
}
