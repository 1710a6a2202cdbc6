// internal/config/constants.go
package config

import "time"

const (
	AppName    = "yanindayim"
	AppVersion = "1.0.0"
)

const (
	DefaultServerPort         = ":8080"
	DefaultLogLevel           = "info"
	DefaultSessionCookieName  = "yanindayim_session"
	DefaultSessionMaxAge      = 86400 * 7 // one week, in seconds
	DefaultAITextModel        = "gemini-flash-latest"
	DefaultAITimeout          = 20 * time.Second
	DefaultGeneratedDir       = "static/generated"
	DefaultMaxTrustedContacts = 3
	DefaultSearchLimit        = 10
	DefaultHomeGuideLimit     = 6
)
