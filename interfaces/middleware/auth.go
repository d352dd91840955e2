package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"streamhaven/domain/dto"
	"streamhaven/domain/model"
	"streamhaven/domain/repository"
)

// ViewerIDKey is where middleware stores the authenticated principal's id.
// Absent key means anonymous request.
const ViewerIDKey = "viewer_id"

// Auth requires a valid token for an active viewer account.
func Auth(viewerRepository repository.IViewer) gin.HandlerFunc {
	var res dto.Res
	res.ResponseCode = "401"
	res.ResponseMessage = "Unauthorized"

	return func(ctx *gin.Context) {
		viewerID, ok := resolvePrincipal(ctx, viewerRepository)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, res)
			return
		}
		ctx.Set(ViewerIDKey, viewerID)
		ctx.Next()
	}
}

// OptionalAuth resolves a principal when a valid token is presented and
// otherwise lets the request through as anonymous. Suspended and banned
// accounts fall through to anonymous too: for entitlement purposes they do
// not exist, even with a valid token.
func OptionalAuth(viewerRepository repository.IViewer) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if viewerID, ok := resolvePrincipal(ctx, viewerRepository); ok {
			ctx.Set(ViewerIDKey, viewerID)
		}
		ctx.Next()
	}
}

func resolvePrincipal(ctx *gin.Context, viewerRepository repository.IViewer) (string, bool) {
	authorization := ctx.Request.Header.Get("Authorization")
	if authorization == "" {
		return "", false
	}
	auth := strings.Split(authorization, "Bearer ")
	if len(auth) != 2 {
		return "", false
	}
	secretKey := os.Getenv("SECRET_KEY")
	claims, token, err := getClaim(auth[1], secretKey)
	if err != nil || !token.Valid {
		logTokenProblem(err)
		return "", false
	}

	viewer, err := viewerRepository.GetByUserName(ctx.Request.Context(), claims.UserName)
	if err != nil {
		return "", false
	}
	if !viewer.CanAuthenticate() {
		return "", false
	}
	return viewer.ID, true
}

func logTokenProblem(err error) {
	var ve *jwt.ValidationError
	if errors.As(err, &ve) {
		if ve.Errors&jwt.ValidationErrorMalformed != 0 {
			fmt.Println("That's not even a token")
		} else if ve.Errors&(jwt.ValidationErrorExpired|jwt.ValidationErrorNotValidYet) != 0 {
			// Token is either expired or not active yet
			fmt.Println("Timing is everything")
		}
	}
}

func getClaim(tokenString, secretKey string) (model.ViewerClaims, *jwt.Token, error) {
	var claims model.ViewerClaims
	token, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		},
	)
	if token == nil {
		return claims, &jwt.Token{}, err
	}
	return claims, token, err
}
