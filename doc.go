// Package auth implements the identity and access core of the hotel
// management service: user registration, credential verification, signed
// bearer-token issuance, and administrative role management.
//
// Claims assembly:
//   - ClaimsAssembler builds the ordered claim set embedded in every issued
//     token: identity claims (id, sub, email), a fresh token id and issue
//     timestamp, the user's direct claims, and one role claim per assigned
//     role followed by that role's attached claims. Roles that no longer
//     resolve in the store are skipped.
//
// Token issuance:
//   - TokenService signs assembled claim sets with HMAC-SHA256 and a shared
//     secret, producing compact JWTs that expire one day after issuance. The
//     same service validates inbound tokens (signature, expiry, structure).
//
// Storage:
//   - CredentialStore and RoleStore are narrow capability interfaces backed
//     by Bun repositories. Uniqueness of emails and role names is enforced by
//     the storage layer, which is the authoritative guard against duplicate
//     registration races.
package auth
