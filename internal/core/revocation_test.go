package core

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/inovuslabs/certanchor/internal/model"
)

func newRevocationService(db *mockDB, l *mockLedger) *RevocationService {
	audit := NewAuditService(db, zerolog.Nop())
	return NewRevocationService(db, l, &mockExplorer{}, audit, zerolog.Nop())
}

func issuedCertRow(hash string) *mockRow {
	return &mockRow{scanFunc: func(dest ...any) error {
		*(dest[0].(*string)) = "row-1"
		*(dest[1].(*string)) = hash
		*(dest[2].(*string)) = model.CertStatusIssued
		return nil
	}}
}

func TestRevoke_Success(t *testing.T) {
	db := &mockDB{}
	l := &mockLedger{}
	tx := &mockTx{}
	svc := newRevocationService(db, l)

	db.On("QueryRow", mock.Anything, sqlContains("FROM certificates"), mock.Anything).Return(issuedCertRow("0xhash"))
	db.On("Begin", mock.Anything).Return(tx, nil)
	db.On("Exec", mock.Anything, sqlContains("INSERT INTO audit_logs"), mock.Anything).Return(pgconn.CommandTag{}, nil)

	tx.On("Exec", mock.Anything, sqlContains("UPDATE certificates"), mock.Anything).Return(pgconn.NewCommandTag("UPDATE 1"), nil)
	tx.On("Exec", mock.Anything, sqlContains("INSERT INTO revoked_certificates"), mock.Anything).Return(pgconn.CommandTag{}, nil)
	tx.On("Commit", mock.Anything).Return(nil)

	l.On("HasManagerRole", mock.Anything, "0x1111111111111111111111111111111111111111").Return(true, nil)
	l.On("RevokeHash", mock.Anything, "0xhash").Return("0xtx2", nil)

	res, err := svc.Revoke(context.Background(), "CERT-001", "duplicate entry", issuerUser())
	require.NoError(t, err)
	assert.Equal(t, "0xhash", res.Hash)
	assert.Equal(t, "0xtx2", res.TxHash)
	assert.Equal(t, "https://explorer.test/tx/0xtx2", res.ExplorerURL)

	db.AssertExpectations(t)
	tx.AssertExpectations(t)
	l.AssertExpectations(t)
}

func TestRevoke_NotFound(t *testing.T) {
	db := &mockDB{}
	l := &mockLedger{}
	svc := newRevocationService(db, l)

	db.On("QueryRow", mock.Anything, sqlContains("FROM certificates"), mock.Anything).Return(noRows())

	_, err := svc.Revoke(context.Background(), "CERT-404", "bad cert", issuerUser())
	require.ErrorIs(t, err, ErrNotFound)
	l.AssertNotCalled(t, "RevokeHash", mock.Anything, mock.Anything)
}

func TestRevoke_AlreadyRevoked(t *testing.T) {
	db := &mockDB{}
	l := &mockLedger{}
	svc := newRevocationService(db, l)

	revokedRow := &mockRow{scanFunc: func(dest ...any) error {
		*(dest[0].(*string)) = "row-1"
		*(dest[1].(*string)) = "0xhash"
		*(dest[2].(*string)) = model.CertStatusRevoked
		return nil
	}}
	db.On("QueryRow", mock.Anything, sqlContains("FROM certificates"), mock.Anything).Return(revokedRow)

	_, err := svc.Revoke(context.Background(), "CERT-001", "again", issuerUser())
	require.ErrorIs(t, err, ErrAlreadyRevoked)
	l.AssertNotCalled(t, "RevokeHash", mock.Anything, mock.Anything)
}

func TestRevoke_ReasonLength(t *testing.T) {
	svc := newRevocationService(&mockDB{}, &mockLedger{})

	_, err := svc.Revoke(context.Background(), "CERT-001", "   ", issuerUser())
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Revoke(context.Background(), "CERT-001", strings.Repeat("x", 501), issuerUser())
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRevoke_ActorWithoutRole(t *testing.T) {
	db := &mockDB{}
	l := &mockLedger{}
	svc := newRevocationService(db, l)

	db.On("QueryRow", mock.Anything, sqlContains("FROM certificates"), mock.Anything).Return(issuedCertRow("0xhash"))
	l.On("HasManagerRole", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)

	_, err := svc.Revoke(context.Background(), "CERT-001", "reason", issuerUser())
	require.ErrorIs(t, err, ErrUnauthorized)
	l.AssertNotCalled(t, "RevokeHash", mock.Anything, mock.Anything)
}

func TestRevoke_RacingDuplicateRevokeFailsWithoutSecondRecord(t *testing.T) {
	db := &mockDB{}
	l := &mockLedger{}
	tx := &mockTx{}
	svc := newRevocationService(db, l)

	db.On("QueryRow", mock.Anything, sqlContains("FROM certificates"), mock.Anything).Return(issuedCertRow("0xhash"))
	db.On("Begin", mock.Anything).Return(tx, nil)

	// A concurrent revoke flipped the status after our read: zero rows update.
	tx.On("Exec", mock.Anything, sqlContains("UPDATE certificates"), mock.Anything).Return(pgconn.NewCommandTag("UPDATE 0"), nil)

	l.On("HasManagerRole", mock.Anything, mock.AnythingOfType("string")).Return(true, nil)
	l.On("RevokeHash", mock.Anything, "0xhash").Return("0xtx2", nil)

	_, err := svc.Revoke(context.Background(), "CERT-001", "reason", issuerUser())
	require.ErrorIs(t, err, ErrAlreadyRevoked)

	tx.AssertNotCalled(t, "Exec", mock.Anything, sqlContains("INSERT INTO revoked_certificates"), mock.Anything)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}
