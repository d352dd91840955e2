package http

import (
	"net/http"

	"streamhaven/interfaces/middleware"
	"streamhaven/usecase"

	"github.com/gin-gonic/gin"
)

type IListingHandler interface {
	ListSeriesEpisodes(ctx *gin.Context)
}

type ListingHandler struct {
	listingUsecase usecase.IListing
}

func NewListingHandler(listingUsecase usecase.IListing) IListingHandler {
	return &ListingHandler{listingUsecase: listingUsecase}
}

// ListSeriesEpisodes returns a series' episodes annotated with the lock
// badge. The badge is advisory; selecting an episode still goes through
// playback authorization.
func (h *ListingHandler) ListSeriesEpisodes(ctx *gin.Context) {
	seriesID := ctx.Param("seriesId")
	viewerID := ctx.GetString(middleware.ViewerIDKey)

	episodes, err := h.listingUsecase.AnnotateSeries(ctx.Request.Context(), viewerID, seriesID)
	if err != nil {
		writeAuthzError(ctx, err)
		return
	}
	if episodes == nil {
		episodes = []usecase.AnnotatedEpisode{}
	}
	ctx.JSON(http.StatusOK, gin.H{"series_id": seriesID, "episodes": episodes})
}
