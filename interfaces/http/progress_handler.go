package http

import (
	"net/http"
	"strconv"

	"streamhaven/domain/model"
	"streamhaven/infrastructure/logger"
	"streamhaven/interfaces/middleware"
	"streamhaven/usecase"

	"github.com/gin-gonic/gin"
)

type IProgressHandler interface {
	RecordProgress(ctx *gin.Context)
	GetProgress(ctx *gin.Context)
	ListRecent(ctx *gin.Context)
}

type ProgressHandler struct {
	progressUsecase usecase.IWatchProgressUsecase
}

func NewProgressHandler(progressUsecase usecase.IWatchProgressUsecase) IProgressHandler {
	return &ProgressHandler{progressUsecase: progressUsecase}
}

type progressRequest struct {
	EpisodeID       string `json:"episodeId"`
	ProgressSeconds int    `json:"progressSeconds"`
	Completed       bool   `json:"completed"`
}

func (h *ProgressHandler) RecordProgress(ctx *gin.Context) {
	viewerID := ctx.GetString(middleware.ViewerIDKey)
	if viewerID == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"reason": usecase.CodeUnauthenticated})
		return
	}
	var req progressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"reason": usecase.CodeInvalidInput, "message": "invalid request body"})
		return
	}

	rec, err := h.progressUsecase.Record(ctx.Request.Context(), viewerID, req.EpisodeID, req.ProgressSeconds, req.Completed)
	if err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"viewer_id":  viewerID,
			"episode_id": req.EpisodeID,
			"error":      err.Error(),
		}).Warn("progress report rejected")
		writeAuthzError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"record": rec})
}

func (h *ProgressHandler) GetProgress(ctx *gin.Context) {
	viewerID := ctx.GetString(middleware.ViewerIDKey)
	episodeID := ctx.Param("episodeId")

	rec, err := h.progressUsecase.Get(ctx.Request.Context(), viewerID, episodeID)
	if err != nil {
		writeAuthzError(ctx, err)
		return
	}
	if rec == nil {
		// Never watched: the player starts from zero.
		ctx.JSON(http.StatusOK, gin.H{"record": model.WatchProgressRecord{ViewerID: viewerID, EpisodeID: episodeID}})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"record": rec})
}

func (h *ProgressHandler) ListRecent(ctx *gin.Context) {
	viewerID := ctx.GetString(middleware.ViewerIDKey)

	limit := 0
	if v := ctx.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	entries, err := h.progressUsecase.ListRecent(ctx.Request.Context(), viewerID, limit)
	if err != nil {
		writeAuthzError(ctx, err)
		return
	}
	if entries == nil {
		entries = []model.ContinueWatchingEntry{}
	}
	ctx.JSON(http.StatusOK, gin.H{"items": entries})
}
