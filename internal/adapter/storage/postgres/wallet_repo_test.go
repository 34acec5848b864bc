package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"casino-wallet/internal/core/domain"
	"casino-wallet/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zerologNop() zerolog.Logger { return zerolog.Nop() }

func newTestWallet(ownerRef string) *domain.Wallet {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Wallet{
		ID:              uuid.New(),
		OwnerRef:        ownerRef,
		Address:         "0x71C7656EC7ab88b098defB751B7401B5f6d8976F",
		EncryptedSecret: "base64-envelope",
		Balance:         decimal.RequireFromString("100.5"),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func walletColumnNames() []string {
	return []string{"id", "owner_ref", "address", "encrypted_secret", "balance", "created_at", "updated_at"}
}

func walletRow(w *domain.Wallet) *pgxmock.Rows {
	return pgxmock.NewRows(walletColumnNames()).AddRow(
		w.ID, w.OwnerRef, w.Address, w.EncryptedSecret,
		w.Balance.String(), w.CreatedAt, w.UpdatedAt,
	)
}

func beginMockTx(t *testing.T, mock pgxmock.PgxPoolIface) pgx.Tx {
	t.Helper()
	mock.ExpectBegin()
	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)
	return tx
}

func TestWalletRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	w := newTestWallet("u1")
	tx := beginMockTx(t, mock)

	mock.ExpectExec("INSERT INTO wallets").
		WithArgs(w.ID, w.OwnerRef, w.Address, w.EncryptedSecret, "100.5", w.CreatedAt, w.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, repo.Create(context.Background(), tx, w))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_Create_DuplicateOwner(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	w := newTestWallet("u1")
	tx := beginMockTx(t, mock)

	mock.ExpectExec("INSERT INTO wallets").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "wallets_owner_ref_key"})

	err = repo.Create(context.Background(), tx, w)
	require.Error(t, err)
	assert.ErrorIs(t, err, ports.ErrConflict)
	assert.Contains(t, err.Error(), "wallets_owner_ref_key")
}

func TestWalletRepo_Create_OtherError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	tx := beginMockTx(t, mock)

	mock.ExpectExec("INSERT INTO wallets").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))

	err = repo.Create(context.Background(), tx, newTestWallet("u1"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrConflict)
	assert.Contains(t, err.Error(), "insert wallet")
}

func TestWalletRepo_GetByOwnerRef(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	w := newTestWallet("u1")

	mock.ExpectQuery("SELECT .+ FROM wallets WHERE owner_ref").
		WithArgs("u1").
		WillReturnRows(walletRow(w))

	result, err := repo.GetByOwnerRef(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, w.ID, result.ID)
	assert.Equal(t, w.Address, result.Address)
	assert.True(t, w.Balance.Equal(result.Balance))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_GetByOwnerRef_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM wallets WHERE owner_ref").
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	result, err := repo.GetByOwnerRef(context.Background(), "ghost")
	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestWalletRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	w := newTestWallet("u1")

	mock.ExpectQuery("SELECT .+ FROM wallets WHERE id").
		WithArgs(w.ID).
		WillReturnRows(walletRow(w))

	result, err := repo.GetByID(context.Background(), w.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "u1", result.OwnerRef)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_GetByID_BadBalance(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	w := newTestWallet("u1")

	mock.ExpectQuery("SELECT .+ FROM wallets WHERE id").
		WithArgs(w.ID).
		WillReturnRows(pgxmock.NewRows(walletColumnNames()).AddRow(
			w.ID, w.OwnerRef, w.Address, w.EncryptedSecret, "NaN-ish", w.CreatedAt, w.UpdatedAt))

	_, err = repo.GetByID(context.Background(), w.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse balance")
}

func TestWalletRepo_GetByIDForUpdate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	w := newTestWallet("u1")
	tx := beginMockTx(t, mock)

	mock.ExpectQuery("SELECT .+ FROM wallets WHERE id .+ FOR UPDATE").
		WithArgs(w.ID).
		WillReturnRows(walletRow(w))

	result, err := repo.GetByIDForUpdate(context.Background(), tx, w.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, w.ID, result.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_UpdateBalance(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	walletID := uuid.New()
	tx := beginMockTx(t, mock)

	mock.ExpectExec("UPDATE wallets SET balance").
		WithArgs("140.000000001", walletID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.UpdateBalance(context.Background(), tx, walletID, decimal.RequireFromString("140.000000001"))
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_UpdateBalance_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	walletID := uuid.New()
	tx := beginMockTx(t, mock)

	mock.ExpectExec("UPDATE wallets SET balance").
		WithArgs("5", walletID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.UpdateBalance(context.Background(), tx, walletID, decimal.NewFromInt(5))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wallet not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_UpdateBalance_RejectsNegative(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	tx := beginMockTx(t, mock)

	err = repo.UpdateBalance(context.Background(), tx, uuid.New(), decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrNegativeBalance)
	assert.NoError(t, mock.ExpectationsWereMet(), "no statement is sent")
}
