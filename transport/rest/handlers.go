package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rocketscienceinc/minesweeper-backend/internal/apperror"
	"github.com/rocketscienceinc/minesweeper-backend/internal/entity"
	"github.com/rocketscienceinc/minesweeper-backend/internal/simulator"
	"github.com/rocketscienceinc/minesweeper-backend/internal/usecase"
)

// defaultBaselineSeed keeps baseline numbers reproducible when no seed is asked for.
const defaultBaselineSeed = 42

type setupParams struct {
	Rows     int    `schema:"rows"`
	Cols     int    `schema:"cols"`
	NumMines int    `schema:"num_mines"`
	Seed     *int64 `schema:"random_seed"`
}

type positionParams struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

type baselineParams struct {
	Rows       int     `schema:"rows"`
	Cols       int     `schema:"cols"`
	NumMines   int     `schema:"num_mines"`
	Runs       int     `schema:"runs"`
	Percentile float64 `schema:"percentile"`
	Seed       int64   `schema:"seed"`
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (that *Server) handleSetup(w http.ResponseWriter, r *http.Request) {
	params := setupParams{
		Rows:     that.defaults.Rows,
		Cols:     that.defaults.Cols,
		NumMines: that.defaults.NumMines,
	}

	if err := that.decoder.Decode(&params, r.URL.Query()); err != nil {
		that.badRequest(w, err)
		return
	}

	result, err := that.session.StartNewGame(r.Context(), entity.GameConfig{
		Rows:     params.Rows,
		Cols:     params.Cols,
		NumMines: params.NumMines,
		Seed:     params.Seed,
	})
	that.respond(w, result, err)
}

func (that *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	var params positionParams
	if err := that.decoder.Decode(&params, r.URL.Query()); err != nil {
		that.badRequest(w, err)
		return
	}

	result, err := that.session.Reveal(r.Context(), params.Row, params.Col)
	that.respond(w, result, err)
}

func (that *Server) handleFlag(w http.ResponseWriter, r *http.Request) {
	var params positionParams
	if err := that.decoder.Decode(&params, r.URL.Query()); err != nil {
		that.badRequest(w, err)
		return
	}

	result, err := that.session.Flag(r.Context(), params.Row, params.Col)
	that.respond(w, result, err)
}

func (that *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	result, err := that.session.Board(r.Context())
	that.respond(w, result, err)
}

func (that *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	that.respond(w, that.session.Snapshot(r.Context()), nil)
}

func (that *Server) handleBaseline(w http.ResponseWriter, r *http.Request) {
	params := baselineParams{
		Rows:       that.defaults.Rows,
		Cols:       that.defaults.Cols,
		NumMines:   that.defaults.NumMines,
		Runs:       that.baseline.DefaultRuns,
		Percentile: simulator.DefaultPercentile,
		Seed:       defaultBaselineSeed,
	}

	if err := that.decoder.Decode(&params, r.URL.Query()); err != nil {
		that.badRequest(w, err)
		return
	}

	if params.Runs > that.baseline.MaxRuns {
		err := fmt.Errorf("%w: at most %d runs allowed, got %d",
			apperror.ErrInvalidConfiguration, that.baseline.MaxRuns, params.Runs)
		that.respond(w, errorResponse{Status: usecase.StatusOf(err), Message: err.Error()}, err)
		return
	}

	board := entity.GameConfig{Rows: params.Rows, Cols: params.Cols, NumMines: params.NumMines}
	if err := board.ValidateWithin(that.defaults.MaxCells); err != nil {
		that.respond(w, errorResponse{Status: usecase.StatusOf(err), Message: err.Error()}, err)
		return
	}

	summary, err := simulator.Run(r.Context(), simulator.Params(params))
	if err != nil {
		that.respond(w, errorResponse{Status: usecase.StatusOf(err), Message: err.Error()}, err)
		return
	}

	that.respond(w, summary, nil)
}

func (that *Server) badRequest(w http.ResponseWriter, err error) {
	that.writeJSON(w, http.StatusBadRequest, errorResponse{
		Status:  usecase.StatusError,
		Message: fmt.Sprintf("malformed query: %v", err),
	})
}

// respond writes body with the status code matching err. Rejected actions
// still carry their structured result.
func (that *Server) respond(w http.ResponseWriter, body any, err error) {
	that.writeJSON(w, httpStatus(err), body)
}

// writeJSON encodes body before sending the header, so an unencodable body
// turns into a 500 instead of an empty success.
func (that *Server) writeJSON(w http.ResponseWriter, code int, body any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		that.logger.Error("failed to encode response", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if _, err := buf.WriteTo(w); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func httpStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, apperror.ErrInvalidConfiguration),
		errors.Is(err, apperror.ErrOutOfBounds),
		errors.Is(err, apperror.ErrInvalidPercentile):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrInvalidTarget),
		errors.Is(err, apperror.ErrGameOver):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrNoActiveGame):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
