package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type GameUseCase interface {
	NewGame(ctx context.Context, mode, difficulty string, computerMark entity.Mark) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error)
	Restart(ctx context.Context, gameID string) (*entity.Game, error)
	DeleteGame(ctx context.Context, gameID string) error
	GetScores(ctx context.Context, gameID string) (*entity.Scoreboard, error)

	History(ctx context.Context, limit int) ([]*entity.MatchRecord, error)
	SuggestMove(ctx context.Context, board entity.Board, side entity.Mark, difficulty string, seed *uint64) (int, error)
}

// selectMoveRequest keeps the board as a slice so a board of the wrong size
// is rejected instead of being cut or padded to nine cells.
type selectMoveRequest struct {
	Board      []entity.Mark `json:"board" binding:"required,len=9,dive,cell"`
	Side       entity.Mark   `json:"side" binding:"required,side"`
	Difficulty string        `json:"difficulty" binding:"required,difficulty"`
	Seed       *uint64       `json:"seed"`
}

func (that *selectMoveRequest) board() entity.Board {
	var board entity.Board
	copy(board[:], that.Board)

	return board
}

type selectMoveResponse struct {
	Cell int `json:"cell"`
}

type createGameRequest struct {
	Mode         string      `json:"mode" binding:"required,oneof=pvp pvc"`
	Difficulty   string      `json:"difficulty" binding:"omitempty,difficulty"`
	ComputerMark entity.Mark `json:"computer_mark" binding:"omitempty,side"`
}

type turnRequest struct {
	Cell *int `json:"cell" binding:"required,min=0,max=8"`
}

type historyQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1"`
}

type Handlers struct {
	logger  *slog.Logger
	useCase GameUseCase
}

func NewHandlers(logger *slog.Logger, useCase GameUseCase) *Handlers {
	return &Handlers{
		logger:  logger.With("component", "rest"),
		useCase: useCase,
	}
}

// SelectMove answers a stateless engine request.
func (that *Handlers) SelectMove(c *gin.Context) {
	var req selectMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	cell, err := that.useCase.SuggestMove(c.Request.Context(), req.board(), req.Side, req.Difficulty, req.Seed)
	if err != nil {
		that.fail(c, "SelectMove", err)
		return
	}

	SuccessResponse(c, http.StatusOK, selectMoveResponse{Cell: cell})
}

func (that *Handlers) CreateGame(c *gin.Context) {
	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	game, err := that.useCase.NewGame(c.Request.Context(), req.Mode, req.Difficulty, req.ComputerMark)
	if err != nil {
		that.fail(c, "CreateGame", err)
		return
	}

	SuccessResponse(c, http.StatusCreated, game)
}

func (that *Handlers) GetGame(c *gin.Context) {
	game, err := that.useCase.GetGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		that.fail(c, "GetGame", err)
		return
	}

	SuccessResponse(c, http.StatusOK, game)
}

func (that *Handlers) MakeTurn(c *gin.Context) {
	var req turnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	game, err := that.useCase.MakeTurn(c.Request.Context(), c.Param("id"), *req.Cell)
	if err != nil {
		that.fail(c, "MakeTurn", err)
		return
	}

	SuccessResponse(c, http.StatusOK, game)
}

func (that *Handlers) Restart(c *gin.Context) {
	game, err := that.useCase.Restart(c.Request.Context(), c.Param("id"))
	if err != nil {
		that.fail(c, "Restart", err)
		return
	}

	SuccessResponse(c, http.StatusOK, game)
}

func (that *Handlers) DeleteGame(c *gin.Context) {
	gameID := c.Param("id")
	if err := that.useCase.DeleteGame(c.Request.Context(), gameID); err != nil {
		that.fail(c, "DeleteGame", err)
		return
	}

	SuccessResponse(c, http.StatusOK, gin.H{"id": gameID})
}

func (that *Handlers) GetScores(c *gin.Context) {
	scores, err := that.useCase.GetScores(c.Request.Context(), c.Param("id"))
	if err != nil {
		that.fail(c, "GetScores", err)
		return
	}

	SuccessResponse(c, http.StatusOK, scores)
}

func (that *Handlers) History(c *gin.Context) {
	var query historyQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	matches, err := that.useCase.History(c.Request.Context(), query.Limit)
	if err != nil {
		that.fail(c, "History", err)
		return
	}

	SuccessResponse(c, http.StatusOK, matches)
}

func (that *Handlers) fail(c *gin.Context, method string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		ErrorResponse(c, status, http.StatusText(status))
		return
	}

	ErrorResponse(c, status, err.Error())
}
