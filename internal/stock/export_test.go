package stock

// SetPageSize changes the RecordStore page size and returns a func that
// restores it.
func SetPageSize(n int) (restore func()) {
	prev := pageSize
	pageSize = n
	return func() { pageSize = prev }
}

// Pending reports how many yielded records the store still holds.
func (s *RecordStore) Pending() int {
	return len(s.loaded)
}
