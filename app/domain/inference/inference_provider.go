// Package inference defines the boundary to the external streaming
// text-generation provider. The relay consumes fragments through this
// contract only, so tests can script a provider without network I/O.
package inference

import "context"

// FragmentStream yields translated text fragments in arrival order.
// Recv returns io.EOF when the provider completed normally and any other
// error when the stream failed mid-flight.
type FragmentStream interface {
	Recv() (string, error)
	Close() error
}

// TranslationProvider opens a streaming translation call. The API key is the
// caller's decrypted upstream credential; it must not be retained beyond the
// call.
type TranslationProvider interface {
	StreamTranslation(ctx context.Context, apiKey string, content string, targetLanguage string) (FragmentStream, error)
}
