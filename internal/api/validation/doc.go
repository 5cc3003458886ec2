// Package validation checks raw request input against the path, query and
// body schemas of a contract.
//
// Path and query values arrive as text and are coerced to the schema's field
// types before constraints are checked. Bodies are decoded as JSON. Every
// declared part is validated on every call, so a single Report lists all the
// invalid fields of the request.
package validation
