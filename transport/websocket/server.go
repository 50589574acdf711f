package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/minesweeper-backend/internal/config"
	"github.com/rocketscienceinc/minesweeper-backend/internal/entity"
	"github.com/rocketscienceinc/minesweeper-backend/internal/usecase"
	"github.com/rocketscienceinc/minesweeper-backend/transport/middleware"
)

const shutdownTimeout = 5 * time.Second

var errUnknownAction = errors.New("unknown action")

type gameSession interface {
	StartNewGame(ctx context.Context, config entity.GameConfig) (*usecase.SetupResult, error)
	Reveal(ctx context.Context, row, col int) (*usecase.RevealResult, error)
	Flag(ctx context.Context, row, col int) (*usecase.FlagResult, error)
	Board(ctx context.Context) (*usecase.BoardResult, error)
	Snapshot(ctx context.Context) *usecase.EvaluationSnapshot
}

// handler turns a request payload into the result sent back to the client.
// A rejected action returns both its result and the error.
type handler func(ctx context.Context, payload json.RawMessage) (any, error)

type Server struct {
	logger   *slog.Logger
	session  gameSession
	defaults config.Game
	upgrader websocket.Upgrader

	handlers map[string]handler
}

func New(logger *slog.Logger, session gameSession, defaults config.Game) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		session:  session,
		defaults: defaults,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	server.handlers = map[string]handler{
		entity.EventSetup:  server.handleSetup,
		entity.EventReveal: server.handleReveal,
		entity.EventFlag:   server.handleFlag,
		actionBoard:        server.handleBoard,
		actionEvaluate:     server.handleEvaluate,
	}

	return server
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.upgradeToWebSocket)

	return middleware.Wrap(mux, middleware.Logging(that.logger))
}

// Start - starts WebSocket server and stops it when ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	// no ReadTimeout: its deadline would stay on hijacked connections
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
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

// upgradeToWebSocket - upgrades the connection and serves its messages.
func (that *Server) upgradeToWebSocket(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	log.Info("WebSocket connection established", "remoteAddr", req.RemoteAddr)

	if err = that.handleMessages(req.Context(), conn); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Debug("failed to unmarshal message", "error", err)

			if err = sendMessage(conn, actionError, ResponsePayload{Error: "malformed message"}); err != nil {
				return err
			}

			continue
		}

		if err = sendMessage(conn, message.Action, that.dispatch(ctx, &message)); err != nil {
			return err
		}
	}
}

func (that *Server) dispatch(ctx context.Context, message *Message) ResponsePayload {
	handle, ok := that.handlers[message.Action]
	if !ok {
		that.logger.Debug("unknown action", "action", message.Action)
		return ResponsePayload{Error: fmt.Sprintf("%s: %q", errUnknownAction, message.Action)}
	}

	result, err := handle(ctx, message.Payload)
	if err != nil {
		return ResponsePayload{Result: result, Error: err.Error()}
	}

	return ResponsePayload{Result: result}
}
