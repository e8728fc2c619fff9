package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"careercompass/internal/ai"
	"careercompass/internal/knowledge"
	"careercompass/internal/observability"
)

const shutdownGrace = 30 * time.Second

// Start brings up observability, the knowledge base, and the HTTP listener,
// then blocks until a shutdown signal or a listener error.
func (s *Server) Start() error {
	obsConfig := observability.GetObservabilityConfig(s.AppConfig, s.Version)
	om, err := observability.NewObservabilityManager(obsConfig, s.AppConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := om.Shutdown(ctx); err != nil {
			s.Logger.LogError(err, "Failed to shutdown observability")
		}
	}()

	if err := s.initializeKnowledgeBase(om); err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", s.Host, s.Port),
		Handler:      om.HTTPMiddleware()(s.setupRoutes(om)),
		ReadTimeout:  s.ReadTimeout,
		WriteTimeout: s.WriteTimeout,
		IdleTimeout:  s.IdleTimeout,
	}

	if err := s.configureTLS(httpServer); err != nil {
		return err
	}

	s.displayServerInfo()

	return s.run(httpServer)
}

// initializeKnowledgeBase loads the retrieval knowledge base and, when
// configured, starts watching its directory for changes. A knowledge base
// that fails to load leaves chat running without retrieval context.
func (s *Server) initializeKnowledgeBase(om *observability.ObservabilityManager) error {
	kbConfig := s.AppConfig.Knowledge
	if !kbConfig.Enabled {
		s.Logger.Info("Knowledge base disabled")
		return nil
	}

	var embedder knowledge.Embedder
	augmentConfig := s.AppConfig.GetAugmentConfig()
	if embedService, err := ai.NewService(&augmentConfig, "embed", kbConfig.EmbedModel, s.Logger); err == nil {
		embedder = embedService
	} else {
		s.Logger.Warn("Embedding service unavailable, knowledge base will use keyword search",
			"error", err.Error())
	}

	base := knowledge.NewBase(kbConfig.Path, kbConfig.TopK, embedder, s.Logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := base.Reload(ctx); err != nil {
		s.Logger.Warn("Failed to load knowledge base, chat will run without retrieval",
			"path", kbConfig.Path,
			"error", err.Error())
		return nil
	}

	s.Knowledge = base
	s.recordKnowledgeMetrics(om, true)

	if kbConfig.Watch {
		return s.startKnowledgeWatcher(om)
	}

	return nil
}

// startKnowledgeWatcher starts the file watcher that reloads the knowledge
// base when documents change on disk.
func (s *Server) startKnowledgeWatcher(om *observability.ObservabilityManager) error {
	kbConfig := s.AppConfig.Knowledge

	watcher := knowledge.NewWatcher(kbConfig.Path, kbConfig.WatchDebounce, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		if err := s.Knowledge.Reload(ctx); err != nil {
			s.Logger.LogError(err, "Failed to reload knowledge base")
			s.recordKnowledgeMetrics(om, false)
			return
		}
		s.recordKnowledgeMetrics(om, true)
	}, s.Logger)

	if err := watcher.Start(); err != nil {
		return fmt.Errorf("failed to start knowledge watcher: %w", err)
	}
	s.knowledgeWatcher = watcher

	return nil
}

// recordKnowledgeMetrics records a knowledge base reload and document count
func (s *Server) recordKnowledgeMetrics(om *observability.ObservabilityManager, success bool) {
	ctx := context.Background()
	metrics := om.GetMetrics()
	metrics.RecordBusinessMetric(ctx, "knowledge_reload", success, om)
	if s.Knowledge != nil {
		metrics.RecordKnowledgeDocuments(ctx, int64(s.Knowledge.Count()), om)
	}
}

// run serves until SIGINT/SIGTERM arrives or the listener fails, then drains
// in-flight requests.
func (s *Server) run(server *http.Server) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.Logger.Info("Starting HTTP server",
			"address", server.Addr,
			"tls_enabled", server.TLSConfig != nil)

		if err := s.listen(server); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server failed to start: %w", err)
	case sig := <-quit:
		s.Logger.Info("Received shutdown signal, starting graceful shutdown",
			"signal", sig.String())
		return s.shutdown(server)
	}
}

func (s *Server) listen(server *http.Server) error {
	if server.TLSConfig == nil {
		return server.ListenAndServe()
	}
	// With inline certificate content the certificates are already loaded in
	// the TLS config, so ListenAndServeTLS gets empty paths.
	if s.TLSConfig.CertContent != "" || s.TLSConfig.KeyContent != "" {
		return server.ListenAndServeTLS("", "")
	}
	return server.ListenAndServeTLS(s.TLSConfig.CertFile, s.TLSConfig.KeyFile)
}

// shutdown stops the knowledge watcher and rate limiter, then drains the HTTP
// server within the grace period.
func (s *Server) shutdown(server *http.Server) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if s.knowledgeWatcher != nil {
		if err := s.knowledgeWatcher.Stop(); err != nil {
			s.Logger.LogError(err, "Failed to stop knowledge watcher")
		}
	}

	if s.RateLimiter != nil {
		s.RateLimiter.Close()
		s.Logger.Info("Rate limiter cleaned up")
	}

	s.Logger.Info("Shutting down HTTP server...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		s.Logger.LogError(err, "Failed to shutdown server gracefully, forcing close")
		return server.Close()
	}

	s.Logger.Info("Server shutdown completed successfully")
	return nil
}
