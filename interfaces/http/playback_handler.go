package http

import (
	"net/http"

	"streamhaven/infrastructure/logger"
	"streamhaven/interfaces/middleware"
	"streamhaven/usecase"

	"github.com/gin-gonic/gin"
)

type IPlaybackHandler interface {
	GetPlaybackGrant(ctx *gin.Context)
}

type PlaybackHandler struct {
	playbackUsecase usecase.IPlayback
}

func NewPlaybackHandler(playbackUsecase usecase.IPlayback) IPlaybackHandler {
	return &PlaybackHandler{playbackUsecase: playbackUsecase}
}

func (h *PlaybackHandler) GetPlaybackGrant(ctx *gin.Context) {
	episodeID := ctx.Param("episodeId")
	viewerID := ctx.GetString(middleware.ViewerIDKey)

	grant, err := h.playbackUsecase.Authorize(ctx.Request.Context(), viewerID, episodeID)
	if err != nil {
		writeAuthzError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, grant)
}

// writeAuthzError maps reason codes onto HTTP statuses. Policy denials carry
// their code verbatim; INTERNAL stays a 500 so an outage never reads as a
// paywall.
func writeAuthzError(ctx *gin.Context, err error) {
	code := usecase.AuthzCodeOf(err)
	status := http.StatusInternalServerError
	switch code {
	case usecase.CodeUnauthenticated:
		status = http.StatusUnauthorized
	case usecase.CodeForbiddenNotSubscribed:
		status = http.StatusForbidden
	case usecase.CodeNotFound:
		status = http.StatusNotFound
	case usecase.CodeAssetUnavailable:
		status = http.StatusServiceUnavailable
	case usecase.CodeInvalidInput:
		status = http.StatusBadRequest
	case usecase.CodeInternal:
		logger.GetLogger().WithField("error", err.Error()).Error("request failed on collaborator error")
		ctx.JSON(http.StatusInternalServerError, gin.H{"reason": code})
		return
	}
	ctx.JSON(status, gin.H{"reason": code, "message": err.Error()})
}
