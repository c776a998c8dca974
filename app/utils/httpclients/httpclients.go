package httpclients

import (
	"resty.dev/v3"

	"polydoc.ai/translate-api-gateway/app/utils/logger"
)

// NewClient builds a named resty client with the shared defaults. Streaming
// callers disable response parsing per request, so no client-level timeout is
// set on the response body read.
func NewClient(name string) *resty.Client {
	client := resty.New()
	client.SetHeader("User-Agent", "translate-api-gateway")
	client.SetTimeout(0)
	client.AddResponseMiddleware(func(c *resty.Client, res *resty.Response) error {
		logger.GetLogger().WithFields(map[string]interface{}{
			"client":  name,
			"status":  res.StatusCode(),
			"url":     res.Request.URL,
			"latency": res.Duration().String(),
		}).Debug("upstream request")
		return nil
	})
	return client
}
