// Package http implements the HTTP handlers of the support stats web
// service. Handlers stay thin: they parse and validate the request,
// call the service layer, and render the response. All business logic
// lives in internal/services; all error bodies follow RFC 7807 via
// internal/errors.
//
// # Request flow
//
//	HTTP Request → Chi Router → Middleware → Handler → Service
//	                                             ↓
//	HTTP Response ← render.JSON / ProblemDetails ┘
package http
