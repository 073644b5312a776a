package dto

type GraphResponse struct {
	ThresholdKm float64             `json:"threshold_km"`
	Origin      string              `json:"origin"`
	Nodes       int                 `json:"nodes"`
	Edges       int                 `json:"edges"`
	Adjacency   map[string][]string `json:"adjacency"`
}
