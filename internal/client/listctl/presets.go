package listctl

// NewsConfig is the news archive: filters search, tier and category.
func NewsConfig(size int) Config {
	return Config{Size: size, Fallback: "Failed to load news. Please try again."}
}

// ReportsConfig is the report archive: filters search and tag.
func ReportsConfig(size int) Config {
	return Config{Size: size, Fallback: "Failed to load reports. Please try again."}
}

// CardsConfig is the public intelligence feed. It filters by company, tier,
// category, industry, date_filter and search, sorted newest first unless
// sort_by says otherwise.
func CardsConfig(size int) Config {
	return Config{
		Size:     size,
		Defaults: map[string]string{"sort_by": "newest"},
		Fallback: "Failed to load intelligence. Please try again.",
	}
}

// AdminCardsConfig is the back office card table, which adds the status
// filter to CardsConfig.
func AdminCardsConfig(size int) Config {
	cfg := CardsConfig(size)
	cfg.Fallback = "Failed to load cards. Please try again."
	return cfg
}
