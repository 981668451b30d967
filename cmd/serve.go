package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/call-coach/internal/config"
	"github.com/sells-group/call-coach/internal/model"
	"github.com/sells-group/call-coach/internal/pipeline"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP analysis server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		runner, cleanup, err := newRunner(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(runner, cfg.Server),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(context.Background())
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// newRouter wires the analysis endpoints with CORS, rate limiting and
// panic recovery that preserves the JSON error envelope.
func newRouter(runner *pipeline.Runner, serverCfg config.ServerConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(recoverEnvelope)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: serverCfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	limiter := rate.NewLimiter(rate.Limit(serverCfg.RateLimitRPS), serverCfg.RateLimitBurst)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	r.With(rateLimit(limiter)).Post("/analyze-call", handleAnalyze(runner))

	return r
}

type analyzeRequest struct {
	CallID        string  `json:"call_id"`
	Transcript    *string `json:"transcript"`
	SentimentHint string  `json:"sentiment_hint"`
}

type analyzeResponse struct {
	CallID string        `json:"call_id"`
	Report *model.Report `json:"report"`
}

type errorBody struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	CallID string    `json:"call_id"`
	Error  errorBody `json:"error"`
}

func handleAnalyze(runner *pipeline.Runner) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body analyzeRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, body.CallID, "ValidationError", "invalid request body")
			return
		}

		callID := body.CallID
		if callID == "" {
			callID = uuid.New().String()
		}

		// An empty transcript is analyzable; a missing field is not.
		if body.Transcript == nil {
			writeError(w, http.StatusBadRequest, callID, "ValidationError", "missing 'transcript' in payload")
			return
		}

		var (
			report *model.Report
			err    error
		)
		if body.SentimentHint != "" {
			report, err = runner.RunWithHint(req.Context(), *body.Transcript, body.SentimentHint)
		} else {
			report, err = runner.Run(req.Context(), *body.Transcript)
		}
		if err != nil {
			zap.L().Error("analysis failed", zap.String("call_id", callID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, callID, "PipelineError", err.Error())
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(analyzeResponse{CallID: callID, Report: report})
	}
}

func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if !limiter.Allow() {
				writeError(w, http.StatusTooManyRequests, "", "RateLimited", "too many requests")
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}

// recoverEnvelope converts handler panics into the JSON error envelope
// so the API never returns a malformed body.
func recoverEnvelope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				zap.L().Error("panic in handler", zap.Any("panic", rec))
				writeError(w, http.StatusInternalServerError, "", "InternalError", fmt.Sprintf("%v", rec))
			}
		}()
		next.ServeHTTP(w, req)
	})
}

func writeError(w http.ResponseWriter, status int, callID, errType, msg string) {
	if callID == "" {
		callID = "unknown"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorEnvelope{
		CallID: callID,
		Error:  errorBody{Type: errType, Message: msg},
	})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
