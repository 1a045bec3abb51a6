package dto

// QRResponse PNG de QR generado para un item.
type QRResponse struct {
	ItemID string `json:"item_id"`
	Code   string `json:"code"`
	Path   string `json:"path"`
	URL    string `json:"url"`
}

// QRListResponse QR generados para todos los items.
type QRListResponse struct {
	Items []QRResponse `json:"items"`
}

// LabelPDFResponse hoja de etiquetas generada.
type LabelPDFResponse struct {
	Path   string `json:"path"`
	URL    string `json:"url"`
	Labels int    `json:"labels"`
}
