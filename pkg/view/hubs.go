package view

type HubSummary struct {
	Name    string   `json:"name"`
	Title   string   `json:"title"`
	Path    string   `json:"path"`
	Actions []string `json:"actions"`
}

type BulkOutcome struct {
	Action    string            `json:"action"`
	Succeeded int               `json:"succeeded"`
	Failed    map[string]string `json:"failed,omitempty"`
	Message   string            `json:"message"`
}
