package domain

// Stats summarizes the loaded knowledge base.
type Stats struct {
	TotalNodes     int            `json:"totalNodes"`
	TriggerNodes   int            `json:"triggerNodes"`
	WebhookNodes   int            `json:"webhookNodes"`
	AITools        int            `json:"aiTools"`
	VersionedNodes int            `json:"versionedNodes"`
	ByPackage      map[string]int `json:"byPackage"`
	ByCategory     map[string]int `json:"byCategory"`
	Templates      int            `json:"templates"`
	FTSEnabled     bool           `json:"ftsEnabled"`
}
