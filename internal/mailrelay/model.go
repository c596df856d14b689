package mailrelay

// MembershipRequest is the payload of the membership function. The type
// fields are optional.
type MembershipRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	Birthdate      string `json:"birthdate"`
	Message        string `json:"message"`
	MembershipType string `json:"membershipType,omitempty"`
	ApplicantType  string `json:"applicantType,omitempty"`
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Response is the body of every function answer.
type Response struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
