package presets

// DefaultNames returns the built-in quick-add expense names.
func DefaultNames() []string {
	return []string{
		"RENT",
		"ELECTRICITY",
		"WATER",
		"INTERNET",
		"GROCERIES",
		"TRANSPORTATION",
		"SAVINGS",
	}
}
