package dto

// ClientRequest body para POST/PUT /api/clients.
type ClientRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Status    string `json:"status,omitempty"` // A | I; vacío = A
	IDType    string `json:"id_type"`          // C | R | P
	IDNumber  string `json:"id_number"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	Address   string `json:"address"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Status    string `json:"status"`
	IDType    string `json:"id_type"`
	IDNumber  string `json:"id_number"`
}
