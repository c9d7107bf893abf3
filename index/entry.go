package index

// KELEntry is one structured record of a verified KEL event.
type KELEntry struct {
	Said            string `json:"said"`
	Type            string `json:"type"`
	AID             string `json:"aid"`
	Sn              int    `json:"sn"`
	PublicKeys      []string `json:"publicKeys"`
	VerifiedIndices []int  `json:"verifiedIndices"`
	Valid           bool   `json:"valid"`
}

// TELEntry is one structured record of a verified TEL event.
type TELEntry struct {
	Said            string `json:"said"`
	Type            string `json:"type"`
	Registry        string `json:"registry"`
	PublicKeys      []string `json:"publicKeys"`
	VerifiedIndices []int  `json:"verifiedIndices"`
	Valid           bool   `json:"valid"`
}
