package security

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Decision is the outcome of an asynchronous permission check.
type Decision struct {
	Permission Permission
	Granted    bool
	Err        error
}

// CheckPermissionAsync starts the check in its own goroutine and returns a
// channel that receives exactly one Decision and is then closed. Cancelling
// ctx yields a Decision carrying ctx.Err().
func CheckPermissionAsync(ctx context.Context, id Identity, permission Permission) <-chan Decision {
	out := make(chan Decision, 1)
	go func() {
		defer close(out)
		if id == nil {
			out <- Decision{Permission: permission, Err: ErrUnauthenticated}
			return
		}
		granted, err := id.CheckPermission(ctx, permission)
		out <- Decision{Permission: permission, Granted: granted && err == nil, Err: err}
	}()
	return out
}

// Await blocks until the decision arrives or ctx is done.
func Await(ctx context.Context, decisions <-chan Decision) Decision {
	select {
	case <-ctx.Done():
		return Decision{Err: ctx.Err()}
	case d, ok := <-decisions:
		if !ok {
			return Decision{Err: context.Canceled}
		}
		return d
	}
}

// Require converts a permission check into an error: nil when granted, a
// *ForbiddenError when denied, or the check's own error.
func Require(ctx context.Context, id Identity, permission Permission) error {
	d := Await(ctx, CheckPermissionAsync(ctx, id, permission))
	if d.Err != nil {
		return d.Err
	}
	if !d.Granted {
		return &ForbiddenError{Principal: id.Principal(), Permission: permission}
	}
	return nil
}

// CheckAll evaluates every permission concurrently and returns the first
// denial or error. Remaining checks are cancelled once one fails.
func CheckAll(ctx context.Context, id Identity, permissions ...Permission) error {
	group, groupCtx := errgroup.WithContext(ctx)
	for _, permission := range permissions {
		permission := permission
		group.Go(func() error {
			return Require(groupCtx, id, permission)
		})
	}
	return group.Wait()
}
