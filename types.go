package depot

import "github.com/fueldepot/depot/internal/store"

// Public type aliases for the store types used by the Browser API.

type Store = store.Store
type Version = store.Version
type DocblockRecord = store.DocblockRecord
