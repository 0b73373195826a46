package security

import (
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbind/pkg/httpbind"
)

// Resolver derives the caller's identity from a request. Requests without
// credentials resolve to an anonymous identity; invalid credentials are an
// error.
type Resolver interface {
	Resolve(r *http.Request) (Identity, error)
}

type ResolverFunc func(r *http.Request) (Identity, error)

func (f ResolverFunc) Resolve(r *http.Request) (Identity, error) { return f(r) }

// TokenResolver maps opaque bearer tokens to identities.
type TokenResolver struct {
	mu     sync.RWMutex
	tokens map[string]Identity
}

var _ Resolver = (*TokenResolver)(nil)

func NewTokenResolver(tokens map[string]Identity) *TokenResolver {
	r := &TokenResolver{tokens: make(map[string]Identity, len(tokens))}
	for token, id := range tokens {
		r.tokens[token] = id
	}
	return r
}

// Register adds or replaces the identity for token.
func (t *TokenResolver) Register(token string, id Identity) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.tokens == nil {
		t.tokens = make(map[string]Identity)
	}
	t.tokens[token] = id
}

func (t *TokenResolver) Resolve(r *http.Request) (Identity, error) {
	token, ok := BearerToken(r)
	if !ok {
		return AnonymousIdentity(), nil
	}
	t.mu.RLock()
	id, found := t.tokens[token]
	t.mu.RUnlock()
	if !found {
		return nil, ErrUnauthenticated
	}
	return id, nil
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	scheme, token, found := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// Authenticated rejects anonymous callers with 401 and stores the resolved
// identity in the request context for next.
func Authenticated(resolver Resolver, next http.Handler, fns ...httpbind.OptionFn) http.Handler {
	opts := httpbind.NewOptions(fns...)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if resolver == nil {
			httpbind.WriteError(w, r, ErrUnauthenticated, opts)
			return
		}
		id, err := resolver.Resolve(r)
		if err != nil {
			httpbind.WriteError(w, r, err, opts)
			return
		}
		if id == nil || id.Anonymous() {
			httpbind.WriteError(w, r, ErrUnauthenticated, opts)
			return
		}
		opts.Logger.Debug("identity resolved", zap.String("principal", id.Principal()))
		next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), id)))
	})
}
