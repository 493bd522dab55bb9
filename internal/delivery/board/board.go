package board

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"resty_chess/internal/bootstrap"
	"resty_chess/internal/delivery/ws"
	"resty_chess/internal/domain/board"
	"resty_chess/internal/domain/journal"
	errs "resty_chess/internal/errors"
	"resty_chess/internal/httpresponse"
	boarduc "resty_chess/internal/usecase/board"
	"resty_chess/internal/utils"
)

type MoveRequest struct {
	FromSquare string `json:"from_square"`
	ToSquare   string `json:"to_square"`
}

type RemovePieceRequest struct {
	Square string `json:"square"`
}

type MoveResponse struct {
	Board         map[string]*board.Piece `json:"board"`
	FromSquare    string                  `json:"from_square"`
	ToSquare      string                  `json:"to_square"`
	MovedPiece    board.Piece             `json:"moved_piece"`
	CapturedPiece *board.Piece            `json:"captured_piece"`
	FEN           string                  `json:"fen"`
	Turn          board.Color             `json:"turn"`
}

type RemoveResponse struct {
	Board         map[string]*board.Piece `json:"board"`
	RemovedSquare string                  `json:"removed_square"`
	RemovedPiece  board.Piece             `json:"removed_piece"`
	FEN           string                  `json:"fen"`
	Turn          board.Color             `json:"turn"`
}

type HistoryResponse struct {
	Entries []journal.Entry `json:"entries"`
}

type BoardHandler struct {
	cfg     bootstrap.Config
	log     *zap.SugaredLogger
	boardUC *boarduc.BoardUseCase
	hub     *ws.Hub
}

func NewBoardHandler(cfg bootstrap.Config, log *zap.SugaredLogger, boardUC *boarduc.BoardUseCase, hub *ws.Hub) *BoardHandler {
	return &BoardHandler{
		cfg:     cfg,
		log:     log,
		boardUC: boardUC,
		hub:     hub,
	}
}

func (h *BoardHandler) Routes(r chi.Router) {
	r.Get("/", h.HandleRoot)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/board", h.HandleGetBoard)
		r.Post("/move", h.HandleMove)
		r.Post("/remove", h.HandleRemove)
		r.Get("/history", h.HandleHistory)
		if h.hub != nil {
			r.Get("/ws", h.HandleWS)
		}
	})
}

func (h *BoardHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	httpresponse.WriteResponseWithStatus(h.log, w, http.StatusOK,
		httpresponse.MessageResponse{Message: "Resty Chess API is running"})
}

func (h *BoardHandler) HandleGetBoard(w http.ResponseWriter, r *http.Request) {
	h.log.Info("Getting board state")
	httpresponse.WriteResponseWithStatus(h.log, w, http.StatusOK, h.boardUC.GetState(r.Context()))
}

func (h *BoardHandler) HandleMove(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Errorf("HandleMove: %v", err)
		httpresponse.WriteError(h.log, w, http.StatusUnprocessableEntity, httpresponse.MALFORMEDJSON_errorDesc+": "+err.Error())
		return
	}
	if detail, ok := validateSquares("from_square", req.FromSquare, "to_square", req.ToSquare); !ok {
		h.log.Errorf("HandleMove: %s", detail)
		httpresponse.WriteError(h.log, w, http.StatusUnprocessableEntity, detail)
		return
	}

	h.log.Infof("Move request: %s to %s", req.FromSquare, req.ToSquare)

	res, err := h.boardUC.Move(r.Context(), req.FromSquare, req.ToSquare)
	if err != nil {
		h.writeUseCaseError(w, "Move", err)
		return
	}

	httpresponse.WriteResponseWithStatus(h.log, w, http.StatusOK, MoveResponse{
		Board:         res.Snapshot.Board,
		FromSquare:    req.FromSquare,
		ToSquare:      req.ToSquare,
		MovedPiece:    res.Moved,
		CapturedPiece: res.Captured,
		FEN:           res.Snapshot.FEN,
		Turn:          res.Snapshot.Turn,
	})
}

func (h *BoardHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	var req RemovePieceRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Errorf("HandleRemove: %v", err)
		httpresponse.WriteError(h.log, w, http.StatusUnprocessableEntity, httpresponse.MALFORMEDJSON_errorDesc+": "+err.Error())
		return
	}
	if detail, ok := validateSquares("square", req.Square); !ok {
		h.log.Errorf("HandleRemove: %s", detail)
		httpresponse.WriteError(h.log, w, http.StatusUnprocessableEntity, detail)
		return
	}

	h.log.Infof("Remove piece request at square: %s", req.Square)

	res, err := h.boardUC.Remove(r.Context(), req.Square)
	if err != nil {
		h.writeUseCaseError(w, "Remove", err)
		return
	}

	httpresponse.WriteResponseWithStatus(h.log, w, http.StatusOK, RemoveResponse{
		Board:         res.Snapshot.Board,
		RemovedSquare: req.Square,
		RemovedPiece:  res.Removed,
		FEN:           res.Snapshot.FEN,
		Turn:          res.Snapshot.Turn,
	})
}

func (h *BoardHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			httpresponse.WriteError(h.log, w, http.StatusUnprocessableEntity, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	entries, err := h.boardUC.History(r.Context(), limit)
	if err != nil {
		h.log.Errorf("HandleHistory: %v", err)
		httpresponse.WriteError(h.log, w, http.StatusInternalServerError, errs.ErrInternal.Error())
		return
	}

	httpresponse.WriteResponseWithStatus(h.log, w, http.StatusOK, HistoryResponse{Entries: entries})
}

func (h *BoardHandler) HandleWS(w http.ResponseWriter, r *http.Request) {
	h.hub.ServeWS(w, r, h.boardUC)
}

func (h *BoardHandler) writeUseCaseError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, errs.ErrInvalidMove) {
		h.log.Errorf("%s error: %v", op, err)
		httpresponse.WriteError(h.log, w, http.StatusBadRequest, err.Error())
		return
	}
	h.log.Errorf("%s: internal error: %v", op, err)
	httpresponse.WriteError(h.log, w, http.StatusInternalServerError, errs.ErrInternal.Error())
}

// validateSquares takes field name / value pairs.
func validateSquares(fieldsAndValues ...string) (string, bool) {
	for i := 0; i+1 < len(fieldsAndValues); i += 2 {
		field, value := fieldsAndValues[i], fieldsAndValues[i+1]
		if value == "" {
			return field + " is required", false
		}
		if !utils.IsSquareName(value) {
			return field + " must match ^[a-h][1-8]$, got " + strconv.Quote(value), false
		}
	}
	return "", true
}
