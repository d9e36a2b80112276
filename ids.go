package rxcore

import "github.com/oklog/ulid/v2"

// NewID returns a lexically sortable unique id used to tag subscriptions in
// trace logs.
func NewID() string {
	return ulid.Make().String()
}
