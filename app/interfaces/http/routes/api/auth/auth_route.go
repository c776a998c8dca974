package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domainauth "polydoc.ai/translate-api-gateway/app/domain/auth"
	"polydoc.ai/translate-api-gateway/app/domain/ratelimit"
	"polydoc.ai/translate-api-gateway/app/domain/vault"
	"polydoc.ai/translate-api-gateway/app/interfaces/http/requests"
	"polydoc.ai/translate-api-gateway/app/interfaces/http/responses"
	"polydoc.ai/translate-api-gateway/app/utils/logger"
	"polydoc.ai/translate-api-gateway/config/environment_variables"
)

type AuthRoute struct {
	authService *domainauth.AuthService
	limiter     ratelimit.Limiter
}

func NewAuthRoute(authService *domainauth.AuthService, limiter ratelimit.Limiter) *AuthRoute {
	return &AuthRoute{
		authService: authService,
		limiter:     limiter,
	}
}

func (authRoute *AuthRoute) RegisterRouter(router gin.IRouter) {
	envs := environment_variables.EnvironmentVariables
	authRouter := router.Group("/auth")
	authRouter.POST("/login",
		ratelimit.Middleware(
			authRoute.limiter,
			"login",
			envs.LOGIN_RATE_LIMIT,
			time.Duration(envs.LOGIN_RATE_WINDOW_SECONDS)*time.Second,
		),
		authRoute.Login,
	)
	authRouter.POST("/logout", authRoute.Logout)
	authRouter.GET("/me", authRoute.authService.RequireAuth(), authRoute.GetMe)
}

type LoginResponse struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	ExpiresIn int    `json:"expiresIn"`
}

type GetMeResponse struct {
	Username string `json:"username"`
}

// @Summary Log in
// @Description Verifies a roster identity and issues a session token. The optional upstream credential is encrypted into the session; without one the session translates in demo mode.
// @Tags Authentication
// @Accept json
// @Produce json
// @Success 200 {object} LoginResponse "Session issued"
// @Failure 400 {object} responses.ErrorResponse "Malformed body or upstream credential"
// @Failure 401 {object} responses.ErrorResponse "Invalid credentials"
// @Failure 429 {object} responses.ErrorResponse "Too many active users or login attempts"
// @Router /auth/login [post]
func (authRoute *AuthRoute) Login(reqCtx *gin.Context) {
	var request requests.LoginRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "4b6e0c7a-92d5-47f1-8a3b-d61e59c0f827",
			Error: "malformed request body",
		})
		return
	}

	result, err := authRoute.authService.Login(
		reqCtx.Request.Context(),
		request.Username,
		request.Password,
		request.UpstreamCredential,
		reqCtx.ClientIP(),
	)
	if err != nil {
		authRoute.abortLogin(reqCtx, err)
		return
	}

	reqCtx.JSON(http.StatusOK, LoginResponse{
		Token:     result.Token,
		Username:  result.Username,
		ExpiresIn: int(result.TTL.Seconds()),
	})
}

// abortLogin maps a login failure to its status. Every credential failure
// collapses to the same 401 body.
func (authRoute *AuthRoute) abortLogin(reqCtx *gin.Context, err error) {
	switch {
	case errors.Is(err, domainauth.ErrInvalidUpstreamCredential):
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "a9c1e3d7-5f20-4b86-9d42-7e8b30c6f1a5",
			Error: err.Error(),
		})
	case errors.Is(err, domainauth.ErrTooManyActiveSessions):
		reqCtx.AbortWithStatusJSON(http.StatusTooManyRequests, responses.ErrorResponse{
			Code:  "f2d84a1c-6e93-4b07-8c5f-19e7d2a06b43",
			Error: err.Error(),
		})
	case errors.Is(err, vault.ErrMissingSecret):
		logger.GetLogger().Errorf("login rejected: %v", err)
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "c7f91b04-3da8-42e6-b1c9-58a0d64e2f37",
			Error: "server is not configured",
		})
	case errors.Is(err, domainauth.ErrInvalidCredentials):
		reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
			Code:  "2e6a8c40-97b1-4f5d-a3e8-c04d71b9f562",
			Error: "invalid credentials",
		})
	default:
		logger.GetLogger().Errorf("login failed: %v", err)
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "0d3b7f92-48ae-4c61-95d0-6f2e81c4a7b9",
			Error: "login failed",
		})
	}
}

// @Summary Log out
// @Description Revokes the bearer session. Succeeds even when the token is already gone; with stateless tokens revocation is a no-op.
// @Tags Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} responses.OkResponse
// @Router /auth/logout [post]
func (authRoute *AuthRoute) Logout(reqCtx *gin.Context) {
	if token, ok := requests.GetTokenFromBearer(reqCtx); ok {
		authRoute.authService.Logout(reqCtx.Request.Context(), token)
	}
	reqCtx.JSON(http.StatusOK, responses.OkResponse{Ok: true})
}

// @Summary Who am I
// @Description Resolves the bearer session to its username.
// @Tags Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} GetMeResponse
// @Failure 401 {object} responses.ErrorResponse "Missing, invalid or expired token"
// @Router /auth/me [get]
func (authRoute *AuthRoute) GetMe(reqCtx *gin.Context) {
	reqCtx.JSON(http.StatusOK, GetMeResponse{
		Username: reqCtx.GetString(domainauth.ContextUsername),
	})
}
