// Package auth provides credential hashing, token issuance/verification,
// and the HTTP middleware that protects task routes.
//
// Passwords are hashed with bcrypt (per-call random salt, configurable
// cost). Identity tokens are stateless HS256 JWTs signed with a
// process-wide secret: verification is purely a function of the token
// bytes and the secret, so there is no session table and no early
// revocation. That tradeoff is deliberate.
//
// Auth is implemented as HTTP middleware, keeping it decoupled from the
// business services. The middleware resolves the token subject to a stored
// user (password hash stripped) and injects it into the request context.
package auth
