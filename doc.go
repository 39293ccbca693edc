// Package auth implements the authentication subsystem shared by the
// marketplace storefront and the vendor dashboard: password hashing,
// stateless signed session tokens, the per-request session guard that
// resolves bearer tokens to live user records, and the repositories and
// HTTP surface that tie them together.
//
// Tokens are self-contained and never persisted server side. Validity is
// determined entirely by signature and expiry, so the guard re-fetches
// the user record on every request and trusts its live status over the
// claims snapshot carried in the token.
package auth
