package entity

// Credential is the in-memory representation of an authenticated session: the
// opaque bearer token plus the identity it was issued for. At most one is live
// at a time and the session service is its only writer.
type Credential struct {
	Token    string
	Identity string
}
