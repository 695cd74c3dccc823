package domain

type Statistics struct {
	Employees    int `json:"employees"`
	Medicines    int `json:"medicines"`
	ExpiringSoon int `json:"expiring_soon"`
	WindowDays   int `json:"window_days"`
}
