// Package titulacion implements the backend core of the Sistema de Gestión
// de Titulación: the user directory, password hashing, JWT issuance and
// verification, and the request gate protecting the API.
//
// Authentication flow:
//   - Credentials are verified by a UsuarioProvider backed by the Usuarios
//     repository. Unknown emails and wrong passwords collapse into the same
//     ErrInvalidCredentials so responses never reveal account existence.
//   - On success the Auther mints an HS256 JWT carrying the numeric user id,
//     institutional email, and role. Tokens are stateless; verification is
//     signature + expiry only and never consults the directory.
//   - Protected routes sit behind the jwtware middleware, which extracts the
//     bearer token, validates it, and attaches the decoded claims to the
//     request context before the handler runs.
//
// The HTTP surface is declared in http_controller.go; dependencies are
// constructed and wired explicitly in cmd/server.
package titulacion
