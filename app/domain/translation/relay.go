package translation

import (
	"context"
	"io"
	"strings"
	"time"

	"polydoc.ai/translate-api-gateway/app/domain/inference"
	"polydoc.ai/translate-api-gateway/app/domain/vault"
	"polydoc.ai/translate-api-gateway/app/utils/logger"
)

// State names one position in the per-request relay machine:
//
//	Start -> {CacheHit, NoCredential, Upstream} -> Streaming -> Done | Failed
//
// Run returns the terminal state so tests can assert transitions without
// real network I/O.
type State int

const (
	StateStart State = iota
	StateCacheHit
	StateNoCredential
	StateUpstream
	StateStreaming
	StateDone
	StateFailed
)

// Chunk is one server-pushed event. Exactly one chunk per request carries
// Done=true; an Error is only ever carried by that terminal chunk.
type Chunk struct {
	Content string `json:"content"`
	Error   string `json:"error,omitempty"`
	Done    bool   `json:"isDone"`
}

// Request is one relay invocation, bound to the authenticated user.
type Request struct {
	Username            string
	Content             string
	TargetLanguage      string
	EncryptedCredential string
	Force               bool
}

// EmitFunc forwards one chunk to the caller. An error means the caller is
// gone; the relay stops consuming and writes nothing to the cache.
type EmitFunc func(Chunk) error

const (
	demoChunkSize  = 48
	demoChunkPause = 80 * time.Millisecond
)

// demoMessage is the deterministic response used when the session carries no
// usable upstream credential. It never involves the provider and never fails.
const demoMessage = "This is a demonstration translation. No upstream API credential is " +
	"configured for your session, so the gateway is streaming this fixed text instead of " +
	"calling the translation provider. Log in again with a valid credential to translate " +
	"real documents."

// Relay orchestrates one translation request: cache lookup, provider call or
// demo generation, chunk forwarding, and the final cache commit.
type Relay struct {
	cache    *Cache
	vault    *vault.Vault
	provider inference.TranslationProvider
}

func NewRelay(cache *Cache, credentialVault *vault.Vault, provider inference.TranslationProvider) *Relay {
	return &Relay{
		cache:    cache,
		vault:    credentialVault,
		provider: provider,
	}
}

// Run drives the request to a terminal state. Chunks are forwarded in
// arrival order with no buffering; the accumulator is committed to the cache
// only when the stream completes, never on failure or cancellation.
func (r *Relay) Run(ctx context.Context, req Request, emit EmitFunc) State {
	if !req.Force {
		if text, ok := r.cache.Get(req.Username, req.Content, req.TargetLanguage); ok {
			// Single terminal chunk carrying the full cached text.
			if err := emit(Chunk{Content: text, Done: true}); err != nil {
				return StateFailed
			}
			return StateCacheHit
		}
	}

	apiKey := r.usableCredential(req.EncryptedCredential)
	if apiKey == "" {
		return r.runDemo(ctx, req, emit)
	}
	return r.runUpstream(ctx, req, apiKey, emit)
}

// usableCredential decrypts the session credential and applies the basic
// format check. Anything short of a well-formed provider key routes the
// request to demo mode.
func (r *Relay) usableCredential(encrypted string) string {
	if encrypted == "" {
		return ""
	}
	plaintext, err := r.vault.Decrypt(encrypted)
	if err != nil {
		logger.GetLogger().Warnf("session credential unusable: %v", err)
		return ""
	}
	if !strings.HasPrefix(plaintext, "sk-") {
		return ""
	}
	return plaintext
}

// runDemo streams the fixed message in bounded chunks with short pauses,
// simulating the provider's pacing, then caches it like any other result.
func (r *Relay) runDemo(ctx context.Context, req Request, emit EmitFunc) State {
	for offset := 0; offset < len(demoMessage); offset += demoChunkSize {
		end := offset + demoChunkSize
		if end > len(demoMessage) {
			end = len(demoMessage)
		}
		select {
		case <-ctx.Done():
			return StateFailed
		case <-time.After(demoChunkPause):
		}
		if err := emit(Chunk{Content: demoMessage[offset:end]}); err != nil {
			return StateFailed
		}
	}
	if err := emit(Chunk{Done: true}); err != nil {
		return StateFailed
	}
	r.cache.Put(req.Username, req.Content, req.TargetLanguage, demoMessage)
	return StateDone
}

// runUpstream opens the provider stream and forwards fragments until the
// provider completes or fails. A failure after streaming began can only be
// reported in-band, as the error-bearing terminal chunk.
func (r *Relay) runUpstream(ctx context.Context, req Request, apiKey string, emit EmitFunc) State {
	stream, err := r.provider.StreamTranslation(ctx, apiKey, req.Content, req.TargetLanguage)
	if err != nil {
		logger.GetLogger().Warnf("provider stream setup failed: %v", err)
		if emitErr := emit(Chunk{Error: "translation provider unavailable", Done: true}); emitErr != nil {
			return StateFailed
		}
		return StateFailed
	}
	defer stream.Close()

	var accumulator strings.Builder
	for {
		select {
		case <-ctx.Done():
			// Caller disconnected: stop consuming, cache nothing.
			return StateFailed
		default:
		}

		fragment, err := stream.Recv()
		if err == io.EOF {
			if emitErr := emit(Chunk{Done: true}); emitErr != nil {
				return StateFailed
			}
			r.cache.Put(req.Username, req.Content, req.TargetLanguage, accumulator.String())
			return StateDone
		}
		if err != nil {
			logger.GetLogger().Warnf("provider stream failed mid-flight: %v", err)
			if emitErr := emit(Chunk{Error: "translation stream interrupted", Done: true}); emitErr != nil {
				return StateFailed
			}
			// A retry must not observe the partial accumulator.
			return StateFailed
		}
		if fragment == "" {
			continue
		}
		accumulator.WriteString(fragment)
		if err := emit(Chunk{Content: fragment}); err != nil {
			return StateFailed
		}
	}
}
