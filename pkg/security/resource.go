package security

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbind/pkg/httpbind"
)

// AttributePermissions is the identity attribute holding the resource
// permissions granted by the authorization server.
const AttributePermissions = "permissions"

// ResourcePermission is one granted resource with its scopes, in the shape
// authorization servers return for entitlement requests.
type ResourcePermission struct {
	ResourceID   string   `json:"rsid,omitempty" mapstructure:"rsid" yaml:"rsid,omitempty"`
	ResourceName string   `json:"rsname" mapstructure:"rsname" yaml:"rsname"`
	Scopes       []string `json:"scopes,omitempty" mapstructure:"scopes" yaml:"scopes,omitempty"`
}

// PermissionsHandler serves GET requests with the caller's attribute as JSON
// once permission is granted. It expects Authenticated to have stored an
// identity; without one it answers 401, and a denied check answers 403.
func PermissionsHandler(permission Permission, attribute string, fns ...httpbind.OptionFn) http.Handler {
	opts := httpbind.NewOptions(fns...)
	if attribute == "" {
		attribute = AttributePermissions
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		id, ok := FromContext(r.Context())
		if !ok || id.Anonymous() {
			httpbind.WriteError(w, r, ErrUnauthenticated, opts)
			return
		}
		if err := Require(r.Context(), id, permission); err != nil {
			opts.Logger.Info("permission denied",
				zap.String("principal", id.Principal()),
				zap.String("permission", permission.String()),
				zap.Error(err),
			)
			httpbind.WriteError(w, r, err, opts)
			return
		}

		value, _ := id.Attribute(attribute)
		httpbind.WriteJSON(w, http.StatusOK, value)
	})
}
