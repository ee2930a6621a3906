package contract

import "advocate-portal-client/internal/entity"

// DocumentCache holds the most recently fetched document collection. The
// collection is only ever replaced wholesale or purged, never patched.
type DocumentCache interface {
	Replace(docs []entity.Document)
	// All returns the cached collection and whether one has been stored since
	// the last purge.
	All() ([]entity.Document, bool)
	Purge()
}
