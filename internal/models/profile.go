package models

// WeeklyProfile describes one weekly playbook pattern and how to trade it.
type WeeklyProfile struct {
	Name         string `json:"name"`
	Probability  string `json:"probability"`
	Expectation  string `json:"expectation"`
	Action       string `json:"action"`
	Invalidation string `json:"invalidation"`
}
