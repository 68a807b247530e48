package app

import (
	"encoding/base64"
	"log/slog"

	"github.com/flicknest/flicknest/pkg/jwtx"
)

// Dev-only fallback secrets. They let the service boot without
// configuration during local development; InitKeyring warns loudly when
// they are in effect. The IdP secret never falls back: absence fails
// closed.
const (
	fallbackAppSecret     = "fallback-secret-change-in-production"
	fallbackRefreshSecret = "refresh-secret-change-in-production"
)

// InitKeyring builds the immutable keyring from configuration. Secrets are
// loaded once here and never reloaded or logged.
//
// The IdP transmits its signing secret pre-encoded, so the configured
// value is base64-decoded first; if that fails, the raw bytes of the
// string are used as-is. This dual path matches what the provider
// actually sends rather than what its docs promise.
func InitKeyring(cfg Config, logger *slog.Logger) *jwtx.Keyring {
	var idp *jwtx.Codec
	if cfg.IdPSecret != "" {
		secret, err := base64.StdEncoding.DecodeString(cfg.IdPSecret)
		if err != nil {
			logger.Warn("IdP secret is not valid base64, using raw bytes")
			secret = []byte(cfg.IdPSecret)
		}
		idp = jwtx.NewCodec(secret, cfg.Leeway)
		logger.Info("identity-provider token verification enabled")
	} else {
		logger.Warn("AUTH_IDP_JWT_SECRET not set - identity-provider tokens will be rejected")
	}

	appSecret := cfg.AppSecret
	if appSecret == "" {
		logger.Warn("AUTH_APP_JWT_SECRET not set - using fallback secret (NOT FOR PRODUCTION)")
		appSecret = fallbackAppSecret
	}

	refreshSecret := cfg.RefreshSecret
	if refreshSecret == "" {
		logger.Warn("AUTH_REFRESH_JWT_SECRET not set - using fallback secret (NOT FOR PRODUCTION)")
		refreshSecret = fallbackRefreshSecret
	}

	return &jwtx.Keyring{
		IdP:        idp,
		Access:     jwtx.NewCodec([]byte(appSecret), cfg.Leeway),
		Refresh:    jwtx.NewCodec([]byte(refreshSecret), cfg.Leeway),
		AccessTTL:  cfg.AccessTTL,
		RefreshTTL: cfg.RefreshTTL,
		Leeway:     cfg.Leeway,
	}
}
