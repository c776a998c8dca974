package requests

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// GetTokenFromBearer extracts the bearer token from the Authorization
// header. The second return is false when the header is absent or not a
// bearer scheme.
func GetTokenFromBearer(reqCtx *gin.Context) (string, bool) {
	authHeader := reqCtx.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// LoginRequest is the POST /auth/login body. UpstreamCredential may be empty;
// the session then runs in demo mode.
type LoginRequest struct {
	Username           string `json:"username"`
	Password           string `json:"password"`
	UpstreamCredential string `json:"upstreamCredential"`
}

// TranslateRequest is the POST /translate-stream body. Force bypasses the
// cache read but still overwrites the entry afterwards.
type TranslateRequest struct {
	Content        string `json:"content"`
	TargetLanguage string `json:"targetLanguage"`
	Force          bool   `json:"force"`
}
