package emailservice

import (
	"fmt"
	"net"
	"net/smtp"
	"time"

	"polydoc.ai/translate-api-gateway/app/utils/logger"
	"polydoc.ai/translate-api-gateway/config/environment_variables"
)

// SendEmail delivers a plain-text message through the configured SMTP relay.
// Returns nil without sending when SMTP is not configured.
func SendEmail(to string, subject string, body string) error {
	envs := environment_variables.EnvironmentVariables
	if envs.SMTP_HOST == "" || to == "" {
		return nil
	}
	auth := smtp.PlainAuth(
		"", envs.SMTP_USERNAME, envs.SMTP_PASSWORD, envs.SMTP_HOST,
	)
	from := envs.NOTIFY_EMAIL_FROM
	if from == "" {
		from = envs.SMTP_USERNAME
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", from, to, subject, body)
	addr := net.JoinHostPort(envs.SMTP_HOST, envs.SMTP_PORT)
	return smtp.SendMail(addr, auth, from, []string{to}, []byte(msg))
}

// DispatchLoginNotification sends the login event e-mail on its own
// goroutine. It never blocks the caller and never surfaces a failure; a
// delivery problem is only logged.
func DispatchLoginNotification(username string, clientIP string) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.GetLogger().Errorf("login notification panicked: %v", r)
			}
		}()
		subject := fmt.Sprintf("translate-gateway login: %s", username)
		body := fmt.Sprintf(
			"User %s logged in at %s from %s.",
			username, time.Now().UTC().Format(time.RFC3339), clientIP,
		)
		if err := SendEmail(environment_variables.EnvironmentVariables.NOTIFY_EMAIL_TO, subject, body); err != nil {
			logger.GetLogger().Warnf("login notification failed: %v", err)
		}
	}()
}
