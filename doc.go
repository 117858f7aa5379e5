// Package gradeauth implements the client-side authentication core for the
// grading platform API: token decoding, scoped token storage, session state
// with change broadcasts, the login/registration client, and route guards.
//
// Token handling:
//   - TokenCodec decodes the payload segment of a JWT without verifying its
//     signature. The platform client trusts the transport and the issuing
//     server; malformed or expired tokens simply collapse to "not
//     authenticated" and never surface to the UI layer.
//   - TokenStore owns the raw token string across two storage scopes,
//     session-only and persistent. At most one scope holds a token at a
//     time; saving to one scope clears the other.
//
// Session state:
//   - SessionState caches the latest authentication check and re-derives it
//     from storage on demand. Observers subscribe to transition events;
//     polls that resolve to the cached value emit nothing.
//
// Route protection:
//   - RouteGuard consults SessionState and redirects unauthenticated
//     navigation to the login route, remembering the rejected route in a
//     cookie. middleware/fiberguard provides the same behavior for Fiber
//     applications.
package gradeauth
