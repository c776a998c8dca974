package translate

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"

	"polydoc.ai/translate-api-gateway/app/domain/auth"
	"polydoc.ai/translate-api-gateway/app/domain/ratelimit"
	"polydoc.ai/translate-api-gateway/app/domain/translation"
	"polydoc.ai/translate-api-gateway/app/interfaces/http/requests"
	"polydoc.ai/translate-api-gateway/app/interfaces/http/responses"
	"polydoc.ai/translate-api-gateway/config/environment_variables"
)

type TranslateRoute struct {
	authService *auth.AuthService
	relay       *translation.Relay
	limiter     ratelimit.Limiter
}

func NewTranslateRoute(authService *auth.AuthService, relay *translation.Relay, limiter ratelimit.Limiter) *TranslateRoute {
	return &TranslateRoute{
		authService: authService,
		relay:       relay,
		limiter:     limiter,
	}
}

func (translateRoute *TranslateRoute) RegisterRouter(router gin.IRouter) {
	envs := environment_variables.EnvironmentVariables
	router.POST("/translate-stream",
		ratelimit.Middleware(
			translateRoute.limiter,
			"translate",
			envs.TRANSLATE_RATE_LIMIT,
			time.Duration(envs.TRANSLATE_RATE_WINDOW_SECONDS)*time.Second,
		),
		translateRoute.authService.RequireAuth(),
		translateRoute.TranslateStream,
	)
}

// @Summary Stream a translation
// @Description Streams the translation of the posted content as server-sent events. Each event carries one text fragment; exactly one terminal event has isDone=true, carrying either the full cached text, nothing, or an error. Results are cached per user; force bypasses the cache read.
// @Tags Translation
// @Security BearerAuth
// @Accept json
// @Produce text/event-stream
// @Failure 400 {object} responses.ErrorResponse "Missing content or target language"
// @Failure 401 {object} responses.ErrorResponse "Missing, invalid or expired token"
// @Failure 429 {object} responses.ErrorResponse "Rate limit exceeded"
// @Router /translate-stream [post]
func (translateRoute *TranslateRoute) TranslateStream(reqCtx *gin.Context) {
	var request requests.TranslateRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil || request.Content == "" || request.TargetLanguage == "" {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "6f8d2a91-4c07-4e53-b8a6-0d19e7c34f52",
			Error: "content and targetLanguage are required",
		})
		return
	}

	reqCtx.Header("Content-Type", "text/event-stream")
	reqCtx.Header("Cache-Control", "no-cache")
	reqCtx.Header("Connection", "keep-alive")

	relayRequest := translation.Request{
		Username:            reqCtx.GetString(auth.ContextUsername),
		Content:             request.Content,
		TargetLanguage:      request.TargetLanguage,
		EncryptedCredential: reqCtx.GetString(auth.ContextEncryptedCredential),
		Force:               request.Force,
	}

	emit := func(chunk translation.Chunk) error {
		if err := sse.Encode(reqCtx.Writer, sse.Event{Data: chunk}); err != nil {
			return err
		}
		reqCtx.Writer.Flush()
		return nil
	}

	translateRoute.relay.Run(reqCtx.Request.Context(), relayRequest, emit)
}
