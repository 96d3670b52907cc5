// Package types holds the wire-level data model shared between the
// session store, the vendor providers, and the HTTP handlers: the three
// session entry variants, the normalized weather payload, and the
// request/response shapes of the proxy endpoints.
package types
