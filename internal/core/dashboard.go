package core

import (
	"context"
	"fmt"

	"github.com/inovuslabs/certanchor/internal/model"
)

// DashboardService queries aggregate stats from the record store.
type DashboardService struct {
	db    DB
	audit *AuditService
}

func NewDashboardService(db DB, audit *AuditService) *DashboardService {
	return &DashboardService{db: db, audit: audit}
}

func (s *DashboardService) Stats(ctx context.Context) (*model.DashboardStats, error) {
	var stats model.DashboardStats

	err := s.db.QueryRow(ctx,
		`SELECT count(*),
		        count(*) FILTER (WHERE status = $1),
		        count(*) FILTER (WHERE status = $2)
		 FROM certificates`,
		model.CertStatusIssued, model.CertStatusRevoked,
	).Scan(&stats.TotalCertificates, &stats.IssuedCertificates, &stats.RevokedCertificates)
	if err != nil {
		return nil, fmt.Errorf("count certificates: %w", err)
	}

	err = s.db.QueryRow(ctx,
		`SELECT count(*) FROM users WHERE role = $1 AND address IS NOT NULL`,
		model.RoleIssuer,
	).Scan(&stats.Managers)
	if err != nil {
		return nil, fmt.Errorf("count managers: %w", err)
	}

	recent, err := s.audit.Recent(ctx, 10)
	if err != nil {
		return nil, err
	}
	stats.RecentActivity = recent

	return &stats, nil
}
