// Package binding materialises declared request parameters from decoded form,
// query, and header fields.
//
// The binder distinguishes three states for every declared parameter: the
// field never appeared (binds to null), the field appeared without any value
// (rejected for every kind), and the field appeared with values (coerced to
// the declared kind). An explicit empty string is a valid String but cannot be
// coerced into any other kind.
//
// Two entry points share the same rules. Bind returns positional Values for
// direct-style handlers, while BindTargets assigns into caller-owned variables
// for bean-style aggregation. Binding is all-or-nothing: when any parameter
// fails, nothing is assigned and a *BindError describing every failure is
// returned.
package binding
