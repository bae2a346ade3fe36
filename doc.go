// Package apiauth is a pluggable authentication and session core for HTTP
// APIs. It decides per request whether the caller is an authenticated
// identity and manages the credentials and opaque session tokens behind
// that decision.
//
// Strategies:
//   - Strategy is the polymorphic entry point: a path authorization gate
//     plus current-identity resolution over an abstract Request. Concrete
//     strategies are NullAuth (fails closed), BasicAuth (HTTP Basic
//     credentials), SessionAuth (opaque cookie tokens), SessionExpAuth
//     (expiring tokens), and SessionDBAuth (persisted session records).
//     Each variant wraps the one beneath it, so expiration and persistence
//     layer onto the base behavior without an inheritance chain.
//
// Session stores:
//   - SessionStore maps opaque tokens to user ids. MemorySessionStore is a
//     mutex-guarded map, ExpiringSessionStore adds lazy expiration over an
//     injectable clock, and DBSessionStore persists sessions via Bun with
//     per-token revocation.
//
// Accounts:
//   - Accounts handles registration (with a storage-level uniqueness
//     guarantee on email), login validation, logout, and the single-use
//     password-reset token flow.
//
// Failure modes that would reveal why authentication failed (unknown
// email, wrong password, unknown or expired token) collapse into a single
// unauthenticated result at the strategy surface. Only business-rule
// violations (duplicate registration, reset issuance for an unknown email)
// and storage faults surface as distinct errors.
package apiauth
