package entity

// SessionEntry captures one open tab for session persistence. An empty
// URL means the tab was on the home page; restoring such an entry opens a
// home tab, not a navigation to an empty URL.
type SessionEntry struct {
	URL     string `json:"url"`
	Private bool   `json:"private"`
}

// SnapshotTabs serializes every open tab, in tab order, into session
// entries. This is the shape written wholesale to the session store at
// shutdown.
func SnapshotTabs(tabs *TabList) []SessionEntry {
	if tabs == nil {
		return []SessionEntry{}
	}

	entries := make([]SessionEntry, 0, len(tabs.Tabs))
	for _, tab := range tabs.Tabs {
		url := tab.URL
		if tab.IsHome() {
			url = ""
		}
		entries = append(entries, SessionEntry{
			URL:     url,
			Private: tab.Private,
		})
	}
	return entries
}

// IDGenerator is a function that generates unique tab IDs.
type IDGenerator func() string
