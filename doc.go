// Package userdir implements a small user-directory service: users and
// their account tiers live in a relational store, callers authenticate
// with email/password and receive a signed, time-limited access token.
//
// Auth gate:
//   - TokenRequired validates the bearer token and re-fetches the user
//     behind the claim from storage. Role information embedded in a
//     token is never trusted; the tier is resolved per request.
//   - AccountTypeRequired gates a route on the resolved tier. Both
//     middleware short-circuit with 401; existing clients expect 401
//     even where 403 would be conventional.
//
// Storage:
//   - The bun repository is injected where needed, opened at process
//     start and closed at shutdown. There is no process-wide store
//     singleton, so tests run against isolated in-memory instances.
package userdir
