package model

// DashboardStats aggregates counts for the admin dashboard.
type DashboardStats struct {
	TotalCertificates   int64      `json:"total_certificates"`
	IssuedCertificates  int64      `json:"issued_certificates"`
	RevokedCertificates int64      `json:"revoked_certificates"`
	Managers            int64      `json:"managers"`
	RecentActivity      []AuditLog `json:"recent_activity"`
}
