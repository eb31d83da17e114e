package passwords

// Color is a tag color as sent by the server, usually a hex string like "#3c8dbc".
type Color string
