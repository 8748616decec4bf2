package reporting

// StoreAll is the sentinel store id meaning "no store filtering".
const StoreAll = "all"

// StoreFilter is the resolved inclusion predicate for a requested store list.
// The zero value matches every store.
type StoreFilter struct {
	stores []string
}

// ResolveStoreFilter maps a requested store-id list to a concrete filter.
// A nil or empty list, or any list containing the "all" sentinel, matches
// everything.
func ResolveStoreFilter(stores []string) StoreFilter {
	if len(stores) == 0 {
		return StoreFilter{}
	}
	for _, s := range stores {
		if s == StoreAll {
			return StoreFilter{}
		}
	}

	out := make([]string, len(stores))
	copy(out, stores)
	return StoreFilter{stores: out}
}

// All reports whether the filter matches every store.
func (f StoreFilter) All() bool {
	return len(f.stores) == 0
}

// Stores returns the explicit inclusion set, nil when unfiltered.
func (f StoreFilter) Stores() []string {
	return f.stores
}

// Matches reports whether the given store id passes the filter.
func (f StoreFilter) Matches(storeID string) bool {
	if f.All() {
		return true
	}
	for _, s := range f.stores {
		if s == storeID {
			return true
		}
	}
	return false
}
