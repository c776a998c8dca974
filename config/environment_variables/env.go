package environment_variables

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

type EnvironmentVariable struct {
	APP_PORT int

	// SERVER_SECRET keys both credential encryption and stateless token
	// signing. Every crypto operation fails without it.
	SERVER_SECRET string

	// AUTH_USERS is the fixed login roster, "username:secret" pairs. A
	// secret starting with $2 is treated as a bcrypt hash, anything else
	// as a plaintext password (degraded dev mode).
	AUTH_USERS []string

	SESSION_TTL_SECONDS int
	MAX_ACTIVE_SESSIONS int

	// REDIS_URL switches the session store and rate limiter to their
	// shared-store backends. Empty means stateless tokens and the
	// per-process limiter fallback.
	REDIS_URL      string
	REDIS_PASSWORD string
	REDIS_DB       string

	LOGIN_RATE_LIMIT              int
	LOGIN_RATE_WINDOW_SECONDS     int
	TRANSLATE_RATE_LIMIT          int
	TRANSLATE_RATE_WINDOW_SECONDS int

	PROVIDER_BASE_URL string
	PROVIDER_MODEL    string

	SMTP_HOST         string
	SMTP_PORT         string
	SMTP_USERNAME     string
	SMTP_PASSWORD     string
	NOTIFY_EMAIL_FROM string
	NOTIFY_EMAIL_TO   string

	ALLOWED_CORS_HOSTS []string
}

func (ev *EnvironmentVariable) LoadFromEnv() {
	v := reflect.ValueOf(ev).Elem()
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		envKey := field.Name
		envValue := os.Getenv(envKey)
		if envValue == "" {
			fmt.Printf("Missing SYSENV: %s\n", envKey)
			continue
		}
		switch v.Field(i).Kind() {
		case reflect.String:
			v.Field(i).SetString(envValue)
		case reflect.Int:
			if n, err := strconv.Atoi(envValue); err == nil {
				v.Field(i).SetInt(int64(n))
			} else {
				fmt.Printf("Invalid SYSENV %s: %q is not an integer\n", envKey, envValue)
			}
		case reflect.Slice:
			parts := strings.Split(envValue, ",")
			items := make([]string, 0, len(parts))
			for _, p := range parts {
				if p = strings.TrimSpace(p); p != "" {
					items = append(items, p)
				}
			}
			v.Field(i).Set(reflect.ValueOf(items))
		}
	}
}

// Singleton
var EnvironmentVariables = EnvironmentVariable{
	APP_PORT:                      8080,
	SESSION_TTL_SECONDS:           86400,
	MAX_ACTIVE_SESSIONS:           2,
	LOGIN_RATE_LIMIT:              10,
	LOGIN_RATE_WINDOW_SECONDS:     60,
	TRANSLATE_RATE_LIMIT:          20,
	TRANSLATE_RATE_WINDOW_SECONDS: 60,
	PROVIDER_BASE_URL:             "https://api.openai.com/v1",
	PROVIDER_MODEL:                "gpt-4o-mini",
	SMTP_PORT:                     "587",
}
