package dto

type PathResponse struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	Strategy string   `json:"strategy"`
	Found    bool     `json:"found"`
	Path     []string `json:"path"`
	Steps    int      `json:"steps"`
	Summary  string   `json:"summary"`
}

type BatchPathRequest struct {
	From     string   `json:"from"`
	Strategy string   `json:"strategy"`
	To       []string `json:"to"`
}

type BatchPathResponse struct {
	Results []PathResponse `json:"results"`
}
