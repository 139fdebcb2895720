package ids

import "github.com/oklog/ulid/v2"

// New mints the sortable identifiers used for holiday rows, stored image
// names and request ids. Account ids are UUIDs issued by the auth package
// and do not come from here.
func New() string {
	return ulid.Make().String()
}
