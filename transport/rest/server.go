package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/schema"
	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/minesweeper-backend/internal/config"
	"github.com/rocketscienceinc/minesweeper-backend/internal/entity"
	"github.com/rocketscienceinc/minesweeper-backend/internal/usecase"
	"github.com/rocketscienceinc/minesweeper-backend/transport/middleware"
)

const shutdownTimeout = 5 * time.Second

type gameSession interface {
	StartNewGame(ctx context.Context, config entity.GameConfig) (*usecase.SetupResult, error)
	Reveal(ctx context.Context, row, col int) (*usecase.RevealResult, error)
	Flag(ctx context.Context, row, col int) (*usecase.FlagResult, error)
	Board(ctx context.Context) (*usecase.BoardResult, error)
	Snapshot(ctx context.Context) *usecase.EvaluationSnapshot
}

type Server struct {
	logger   *slog.Logger
	session  gameSession
	decoder  *schema.Decoder
	defaults config.Game
	baseline config.Baseline
}

func New(logger *slog.Logger, session gameSession, defaults config.Game, baseline config.Baseline) *Server {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return &Server{
		logger:   logger.With("component", "rest"),
		session:  session,
		decoder:  decoder,
		defaults: defaults,
		baseline: baseline,
	}
}

// Handler - returns the routes wrapped in logging and CORS.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ping", NewPingHandler().PingHandler)
	mux.HandleFunc("POST /game/setup", that.handleSetup)
	mux.HandleFunc("POST /game/reveal", that.handleReveal)
	mux.HandleFunc("POST /game/flag", that.handleFlag)
	mux.HandleFunc("GET /game/board", that.handleBoard)
	mux.HandleFunc("GET /game/evaluate", that.handleEvaluate)
	mux.HandleFunc("GET /baseline", that.handleBaseline)

	return middleware.Wrap(mux, middleware.Logging(that.logger), middleware.Cors())
}

// Start - serves HTTP on port until ctx is canceled, then shuts down gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: time.Minute,
		IdleTimeout:  30 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}

		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx) //nolint: contextcheck // parent is already done
	})

	return group.Wait()
}
