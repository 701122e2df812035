package models

// Filter is a named, UI-selectable predicate over ride attributes.
// The semantic effect of a filter is a pure function of the ride;
// filters compose by logical AND.
type Filter struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}
