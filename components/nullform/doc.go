// Package nullform serves the null-form resource: two POST endpoints that bind
// a string and an integer form parameter, one through a bean aggregate and one
// through direct arguments, and echo them back as "formString,formInteger".
//
// Absent fields render as "null". A field sent without a value, or an
// explicitly empty integer, rejects the request with 400 before the handler
// body runs. Both endpoints apply the same rules and return identical
// responses for the same input.
package nullform
