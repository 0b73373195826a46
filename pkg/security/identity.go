package security

import (
	"context"
	"slices"
	"strings"
)

// Permission names a protected resource and, optionally, the actions being
// requested on it.
type Permission struct {
	Name    string   `json:"name" mapstructure:"name" yaml:"name"`
	Actions []string `json:"actions,omitempty" mapstructure:"actions" yaml:"actions,omitempty"`
}

func NewPermission(name string, actions ...string) Permission {
	return Permission{Name: strings.TrimSpace(name), Actions: actions}
}

func (p Permission) String() string {
	if len(p.Actions) == 0 {
		return p.Name
	}
	return p.Name + "#" + strings.Join(p.Actions, ",")
}

// Implies reports whether a grant of p covers the requested permission. A
// grant without actions covers every action on the same name.
func (p Permission) Implies(requested Permission) bool {
	if p.Name != requested.Name {
		return false
	}
	if len(p.Actions) == 0 {
		return true
	}
	for _, action := range requested.Actions {
		if !slices.Contains(p.Actions, action) {
			return false
		}
	}
	return len(requested.Actions) > 0
}

// Identity is the authenticated caller as seen by resource handlers.
type Identity interface {
	Principal() string
	Anonymous() bool
	Attribute(name string) (any, bool)
	CheckPermission(ctx context.Context, permission Permission) (bool, error)
}

// StaticIdentity is an Identity backed by a fixed grant list.
type StaticIdentity struct {
	principal  string
	granted    []Permission
	attributes map[string]any
}

var _ Identity = (*StaticIdentity)(nil)

type IdentityOption func(*StaticIdentity)

// WithPermissions grants the listed permissions.
func WithPermissions(perms ...Permission) IdentityOption {
	return func(id *StaticIdentity) {
		id.granted = append(id.granted, perms...)
	}
}

// WithAttribute attaches an attribute such as the resolved resource
// permissions.
func WithAttribute(name string, value any) IdentityOption {
	return func(id *StaticIdentity) {
		if id.attributes == nil {
			id.attributes = make(map[string]any)
		}
		id.attributes[name] = value
	}
}

func NewIdentity(principal string, opts ...IdentityOption) *StaticIdentity {
	id := &StaticIdentity{principal: strings.TrimSpace(principal)}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(id)
	}
	return id
}

// AnonymousIdentity returns an identity with no principal, grants, or
// attributes.
func AnonymousIdentity() *StaticIdentity {
	return &StaticIdentity{}
}

func (s *StaticIdentity) Principal() string {
	if s == nil {
		return ""
	}
	return s.principal
}

func (s *StaticIdentity) Anonymous() bool {
	return s == nil || s.principal == ""
}

func (s *StaticIdentity) Attribute(name string) (any, bool) {
	if s == nil {
		return nil, false
	}
	value, ok := s.attributes[name]
	return value, ok
}

func (s *StaticIdentity) CheckPermission(ctx context.Context, permission Permission) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if s.Anonymous() {
		return false, nil
	}
	for _, grant := range s.granted {
		if grant.Implies(permission) {
			return true, nil
		}
	}
	return false, nil
}

type identityKey struct{}

// ContextWithIdentity stores id for downstream handlers.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the identity stored by Authenticated.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok && id != nil
}
