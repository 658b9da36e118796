package main

import (
	"chat-server/auth"
	"chat-server/dispatch"
	"chat-server/errors"
	"chat-server/infrastructure/ws"
	"chat-server/internal"
	"chat-server/moderation"
	"chat-server/repositories"
	"chat-server/runtime"
	"chat-server/runtime/workers"
	"chat-server/services"
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mama165/sdk-go/logs"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

const welcome = "Welcome to the chat server API"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run wires every component and owns the server lifecycle, so deferred cleanups
// run before the process exits.
func run() error {
	// 1. Configuration & Logger
	config, err := loadConfig(os.Args[1:])
	if err != nil {
		return err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := repositories.OpenBadger(config.BadgerFilepath, config.BadgerInMemory)
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()
	store := repositories.NewStore(db, log)
	userRepository := repositories.NewUserRepository(store)
	roomRepository := repositories.NewRoomRepository(store)
	messageRepository := repositories.NewMessageRepository(store, log)

	// 3. Moderation
	moderator, err := prepareModeration(log, config)
	if err != nil {
		return err
	}

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Background workers
	membershipSync := workers.NewMembershipSync(log, userRepository,
		config.MembershipQueueSize, config.MembershipRetryInterval, config.MembershipMaxAttempts)
	registry := runtime.NewRegistry()
	capacityMonitor := workers.NewCapacityMonitor(log, config.MetricInterval, config.LowCapacityThreshold,
		workers.Gauge{Name: "Membership queue", Sample: membershipSync.Backlog},
		workers.Gauge{Name: "Online sessions", Sample: func() (int, int) { return registry.Len(), 0 }},
	)
	supervisor := workers.NewSupervisor(log, config.RestartInterval)
	supervisor.Add(membershipSync, capacityMonitor)
	supervisorDone := make(chan struct{})
	go func() {
		defer close(supervisorDone)
		supervisor.Run(ctx)
	}()

	// 6. Services & dispatch
	router := dispatch.NewRouter(log, registry, config.SinkTimeout)
	rooms := services.NewRoomService(log, roomRepository, userRepository, membershipSync, config.RoomListConcurrency)
	profiles := services.NewProfileService(log, userRepository)
	messages := services.NewMessageService(log, roomRepository, messageRepository, moderator, config.MaxContentLength)
	dispatcher := dispatch.NewDispatcher(log, rooms, messages, profiles, router, dispatch.NewReporter(log, router))

	gatekeeper := ws.NewGatekeeper(log, auth.NewJWTVerifier([]byte(config.JWTSecret), config.JWTIssuer), config.HandshakeTimeout)
	wsHandler := ws.NewHandler(log, gatekeeper, registry, dispatcher, profiles, ws.HandlerConfig{
		FrontendOrigins: config.FrontendOrigins(),
		DevMode:         config.DevMode,
		WriteTimeout:    config.SinkTimeout,
	})

	// 7. HTTP Server Setup
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, welcome)
	})
	mux.HandleFunc("GET /api", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, welcome)
	})
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "ok")
	})
	mux.Handle("GET /ws", wsHandler)
	if config.DevMode {
		mux.Handle("GET /debug/store", internal.InspectHandler(log, store))
	}

	server := &http.Server{
		Addr:              config.Address(),
		Handler:           mux,
		ReadHeaderTimeout: config.HandshakeTimeout,
		// Connections inherit the signal context so open websockets close on shutdown
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errChan := make(chan error, 2)
	go func() {
		log.Info("Starting HTTP server", "address", server.Addr, "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 8. Optional gRPC health endpoint
	var grpcServer *grpc.Server
	var healthServer *health.Server
	if config.GRPCHealthPort > 0 {
		address := fmt.Sprintf("%s:%d", config.Host, config.GRPCHealthPort)
		listener, err := net.Listen("tcp", address)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", address, err)
		}
		grpcServer = grpc.NewServer()
		healthServer = health.NewServer()
		grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
		healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
		go func() {
			log.Info("Starting gRPC health server", "address", address)
			if err := grpcServer.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				errChan <- fmt.Errorf("gRPC server error: %w", err)
			}
		}()
	}

	// 9. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err = <-errChan:
		log.Error("Server failed", "error", err)
	}

	// 10. Final Cleanup
	if healthServer != nil {
		healthServer.Shutdown()
		grpcServer.GracefulStop()
	}
	// Canceling the base context closes the open websockets
	stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Warn("HTTP server shutdown incomplete", "error", shutdownErr)
	}
	if waitErr := wsHandler.Wait(shutdownCtx); waitErr != nil {
		log.Warn("WebSocket connections still open at shutdown", "error", waitErr)
	}
	supervisor.Stop()
	<-supervisorDone
	log.Info("Program stopped cleanly")

	return err
}

// prepareModeration loads the dictionaries when a directory is configured.
// Without one, messages are stored as sent.
func prepareModeration(log *slog.Logger, config internal.Config) (*moderation.Moderator, error) {
	if config.CensoredWordsDir == "" {
		log.Info("Moderation disabled, no dictionary directory configured")
		return nil, nil
	}
	charReplacement, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return nil, err
	}
	data, err := runtime.NewCensoredLoader(os.DirFS(config.CensoredWordsDir)).LoadAll(".")
	if err != nil {
		return nil, fmt.Errorf("loading censored words: %w", err)
	}
	log.Info("Moderation enabled", "languages", data.Languages, "words", len(data.Words))
	return moderation.NewModerator(data.Words, charReplacement, log)
}
