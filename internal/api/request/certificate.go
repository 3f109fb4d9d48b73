package request

// IssueCertificate holds the request body for anchoring a certificate.
type IssueCertificate struct {
	CertificateID string `json:"certificate_id" validate:"required,min=1,max=255"`
	RecipientName string `json:"name" validate:"required,min=1,max=255"`
	Email         string `json:"email" validate:"required,email"`
	Mobile        string `json:"mobile" validate:"required,min=5,max=20"`
	EventID       string `json:"event_id" validate:"required,min=1,max=255"`
	URL           string `json:"certificate_url" validate:"required,url"`
	IssueDate     string `json:"issue_date" validate:"required"`
}

// RevokeCertificate holds the request body for revoking an anchored
// certificate.
type RevokeCertificate struct {
	CertificateID string `json:"certificate_id" validate:"required,min=1,max=255"`
	Reason        string `json:"reason" validate:"required,min=1,max=500"`
}
