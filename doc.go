// Package passwords is a typed client for the Nextcloud Passwords app API.
//
// A Client owns one session. Login opens it with a user name and an app
// password; Refresh keeps it alive while the server's keepalive interval
// has not elapsed and logs in again once it has. Session returns the state
// needed to Resume later without asking for credentials again:
//
//	c, err := passwords.New("https://cloud.example.com")
//	if err != nil {
//		return err
//	}
//	if err := c.Login(ctx, "alice", appPassword); err != nil {
//		return err
//	}
//	defer c.Disconnect(ctx)
//
//	folders, err := c.Folders().List(ctx, passwords.FolderDetails{})
//
// Every entity (Folder, Password, Tag, Share) comes with a record type, a
// versioned sub-record holding the fields tracked across revisions, create
// and update builders, search criteria and detail-level selectors. These
// are generated by passwordsgen from the schema in internal/schemadef.
//
// All errors returned by the client are *Error values; KindOf classifies
// them and IsEndpointError extracts the error object sent by the server.
package passwords

//go:generate go run ./cmd/passwordsgen gen --package passwords --out . ./internal/schemadef
