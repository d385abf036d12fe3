package wiki

// ValidateTitle rejects the one input constraint the store enforces outside
// of storage-level invariants: an article's title must never be empty.
func ValidateTitle(title string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	return nil
}
