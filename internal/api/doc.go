// Package api holds the resource modules of the scheduling API. Each
// module declares its contracts, binds them to business functions over the
// store repositories and lists the routes that are public.
package api
