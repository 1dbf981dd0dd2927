package domain

// BranchCoordinate é a localização de uma filial para o mapa
type BranchCoordinate struct {
	BranchName string  `json:"branch_name"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}
