// Package schemadef declares the entities of the Passwords API.
//
// The declarations are input for passwordsgen and are only visible under
// the passwordsgen build tag; nothing imports this package. Each struct
// carries a //passwords:entity directive naming its endpoint and, where
// the server supports them, a //passwords:details directive listing the
// detail-level flags. Field tags in the pw key select which generated
// types a field belongs to.
package schemadef
