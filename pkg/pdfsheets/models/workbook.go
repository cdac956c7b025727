package models

// OutputUnit represents one workbook file and the sheets it holds.
type OutputUnit struct {
	// FileName is the workbook file name (no path).
	FileName string `json:"file_name"`
	// Sheets lists the sheets in write order.
	Sheets []Sheet `json:"sheets"`
}
