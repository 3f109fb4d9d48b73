package core

import (
	"github.com/rs/zerolog"
)

type Services struct {
	User         *UserService
	Audit        *AuditService
	Certificate  *CertificateService
	Verification *VerificationService
	Revocation   *RevocationService
	Manager      *ManagerService
	Dashboard    *DashboardService
	APIKey       *APIKeyService
}

func NewServices(db DB, l Ledger, ex Explorer, logger zerolog.Logger) *Services {
	users := NewUserService(db)
	audit := NewAuditService(db, logger)

	return &Services{
		User:         users,
		Audit:        audit,
		Certificate:  NewCertificateService(db, l, ex, users, audit, logger),
		Verification: NewVerificationService(db, l, ex),
		Revocation:   NewRevocationService(db, l, ex, audit, logger),
		Manager:      NewManagerService(db, l, ex, users, audit, logger),
		Dashboard:    NewDashboardService(db, audit),
		APIKey:       NewAPIKeyService(db),
	}
}
