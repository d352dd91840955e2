package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"streamhaven/infrastructure/signer"

	"github.com/gin-gonic/gin"
)

type IStreamHandler interface {
	ServeStream(ctx *gin.Context)
}

// StreamHandler is the storage edge: it verifies the exp/sig pair minted by
// playback authorization before the asset origin is reached. An expired or
// tampered URL dies here regardless of what the client claims.
type StreamHandler struct {
	urlSigner   signer.IURLSigner
	assetOrigin string
	now         func() time.Time
}

func NewStreamHandler(urlSigner signer.IURLSigner, assetOrigin string) IStreamHandler {
	return &StreamHandler{urlSigner: urlSigner, assetOrigin: assetOrigin, now: time.Now}
}

func (h *StreamHandler) ServeStream(ctx *gin.Context) {
	// Wildcard params carry the leading slash.
	storageKey := strings.TrimPrefix(ctx.Param("storageKey"), "/")
	exp := ctx.Query("exp")
	sig := ctx.Query("sig")
	if storageKey == "" || exp == "" || sig == "" {
		ctx.JSON(http.StatusForbidden, gin.H{"reason": "invalid_signature"})
		return
	}

	if err := h.urlSigner.Verify(storageKey, exp, sig, h.now()); err != nil {
		reason := "invalid_signature"
		if err == signer.ErrExpiredGrant {
			reason = "grant_expired"
		}
		ctx.JSON(http.StatusForbidden, gin.H{"reason": reason})
		return
	}

	target := url.URL{Path: "/" + storageKey}
	ctx.Redirect(http.StatusFound, fmt.Sprintf("%s%s", h.assetOrigin, target.EscapedPath()))
}
