package system

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"polydoc.ai/translate-api-gateway/app/domain/translation"
	"polydoc.ai/translate-api-gateway/app/interfaces/http/responses"
	"polydoc.ai/translate-api-gateway/config"
)

type SystemRoute struct {
	cache *translation.Cache
}

func NewSystemRoute(cache *translation.Cache) *SystemRoute {
	return &SystemRoute{cache: cache}
}

func (systemRoute *SystemRoute) RegisterRouter(router gin.IRouter) {
	router.GET("/cache-status", systemRoute.GetCacheStatus)
	router.DELETE("/cache", systemRoute.ClearCache)
	router.GET("/version", systemRoute.GetVersion)
}

type CacheStatusResponse struct {
	CacheSize int    `json:"cacheSize"`
	Timestamp string `json:"timestamp"`
}

type VersionResponse struct {
	Version string `json:"version"`
}

// @Summary Cache status
// @Tags System
// @Produce json
// @Success 200 {object} CacheStatusResponse
// @Router /cache-status [get]
func (systemRoute *SystemRoute) GetCacheStatus(reqCtx *gin.Context) {
	reqCtx.JSON(http.StatusOK, CacheStatusResponse{
		CacheSize: systemRoute.cache.Size(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// @Summary Clear the translation cache
// @Tags System
// @Produce json
// @Success 200 {object} responses.OkResponse
// @Router /cache [delete]
func (systemRoute *SystemRoute) ClearCache(reqCtx *gin.Context) {
	systemRoute.cache.Clear()
	reqCtx.JSON(http.StatusOK, responses.OkResponse{Ok: true})
}

// @Summary Build version
// @Tags System
// @Produce json
// @Success 200 {object} VersionResponse
// @Router /version [get]
func (systemRoute *SystemRoute) GetVersion(reqCtx *gin.Context) {
	reqCtx.JSON(http.StatusOK, VersionResponse{Version: config.Version})
}
