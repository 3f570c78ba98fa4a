package ids

import "github.com/segmentio/ksuid"

// New returns a k-sortable unique id. All persisted rows use these so that
// default ordering by id tracks insertion order.
func New() string {
	return ksuid.New().String()
}
