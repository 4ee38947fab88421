package entity

// CatalogItem is the host game's store entry a search targets. Only the data
// the pipeline reads is modeled; the full vehicle definition stays external.
type CatalogItem struct {
	Ref        string      `json:"ref"`
	Name       string      `json:"name"`
	Brand      string      `json:"brand,omitempty"`
	Category   string      `json:"category,omitempty"`
	StorePrice int64       `json:"store_price"`
	OptionSets []OptionSet `json:"option_sets,omitempty"`
}

// OptionSet is one configurable class of the item (tires, attachments, cab
// trim). Classes flagged unsafe are load-bearing for the physical simulation
// and must never be randomized by the listing factory.
type OptionSet struct {
	Class             string   `json:"class"`
	Choices           []string `json:"choices"`
	UnsafeToRandomize bool     `json:"unsafe_to_randomize,omitempty"`
}
