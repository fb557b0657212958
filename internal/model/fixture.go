package model

// Fixture is a saved snapshot of the dashboard data. It can stand in for
// the built-in demo set.
type Fixture struct {
	Countries []Country          `json:"countries"`
	Slots     map[string]Summary `json:"slots"`
}
