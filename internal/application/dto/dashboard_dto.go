package dto

// DashboardResponse totales mostrados en el panel principal.
type DashboardResponse struct {
	Items      int `json:"items"`
	ItemTypes  int `json:"item_types"`
	Units      int `json:"units"`
	Categories int `json:"categories"`
	Warehouses int `json:"warehouses"`
	Users      int `json:"users"`
}
