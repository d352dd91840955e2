package server

import (
	"net/http"
	"time"

	"streamhaven/domain/repository"
	httpHandler "streamhaven/interfaces/http"
	"streamhaven/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitiateRouter(
	playbackHandler httpHandler.IPlaybackHandler,
	progressHandler httpHandler.IProgressHandler,
	listingHandler httpHandler.IListingHandler,
	streamHandler httpHandler.IStreamHandler,
	viewerRepository repository.IViewer,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://streamhaven.tv", "https://admin.streamhaven.tv", "http://localhost:4200", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Browsing and playback authorization accept anonymous requests; the
	// entitlement rule decides what anonymous viewers can actually watch.
	api := router.Group("api")
	api.Use(middleware.OptionalAuth(viewerRepository))

	api.GET("/series/:seriesId/episodes", listingHandler.ListSeriesEpisodes)
	api.GET("/episodes/:episodeId/playback-grant", playbackHandler.GetPlaybackGrant)

	// Watch progress is per-viewer state and requires a principal.
	authed := router.Group("api")
	authed.Use(middleware.Auth(viewerRepository))

	authed.POST("/watch-progress", progressHandler.RecordProgress)
	authed.GET("/watch-progress/recent", progressHandler.ListRecent)
	authed.GET("/watch-progress/:episodeId", progressHandler.GetProgress)

	// Storage edge: signature and expiry checks only, no session required.
	// The signed URL itself is the credential. Wildcard route because storage
	// keys are slash-separated paths.
	router.GET("/stream/*storageKey", streamHandler.ServeStream)

	return router
}
