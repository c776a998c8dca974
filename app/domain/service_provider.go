package domain

import (
	"github.com/google/wire"

	"polydoc.ai/translate-api-gateway/app/domain/auth"
	"polydoc.ai/translate-api-gateway/app/domain/maintenance"
	"polydoc.ai/translate-api-gateway/app/domain/ratelimit"
	"polydoc.ai/translate-api-gateway/app/domain/session"
	"polydoc.ai/translate-api-gateway/app/domain/translation"
	"polydoc.ai/translate-api-gateway/app/domain/vault"
)

var ServiceProvider = wire.NewSet(
	vault.New,
	session.NewStore,
	auth.NewAuthService,
	ratelimit.NewLimiter,
	translation.NewCache,
	translation.NewRelay,
	maintenance.NewService,
)
