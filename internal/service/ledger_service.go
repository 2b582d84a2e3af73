package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wallet-core/config"
	"wallet-core/internal/core/domain"
	"wallet-core/internal/core/ports"
	"wallet-core/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LedgerServiceImpl implements ports.LedgerService with pessimistic row
// locking. Business-rule failures are definitive; only serialization-class
// store faults are retried, up to the configured budget.
type LedgerServiceImpl struct {
	walletRepo    ports.WalletRepository
	ledgerRepo    ports.LedgerRepository
	feeSvc        ports.FeeService
	fraudSvc      ports.FraudService
	walletSvc     ports.WalletService
	allocator     ports.IdentifierAllocator
	transferCache ports.TransferCache
	transactor    ports.DBTransactor
	audit         ports.AuditSink
	cfg           config.LedgerConfig
	log           zerolog.Logger

	sleep func(d time.Duration)
}

// NewLedgerService creates a new LedgerServiceImpl.
func NewLedgerService(
	walletRepo ports.WalletRepository,
	ledgerRepo ports.LedgerRepository,
	feeSvc ports.FeeService,
	fraudSvc ports.FraudService,
	walletSvc ports.WalletService,
	allocator ports.IdentifierAllocator,
	transferCache ports.TransferCache,
	transactor ports.DBTransactor,
	audit ports.AuditSink,
	cfg config.LedgerConfig,
	log zerolog.Logger,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		walletRepo:    walletRepo,
		ledgerRepo:    ledgerRepo,
		feeSvc:        feeSvc,
		fraudSvc:      fraudSvc,
		walletSvc:     walletSvc,
		allocator:     allocator,
		transferCache: transferCache,
		transactor:    transactor,
		audit:         audit,
		cfg:           cfg,
		log:           log,
		sleep:         time.Sleep,
	}
}

// Deposit credits a wallet with the net amount after fees.
func (s *LedgerServiceImpl) Deposit(ctx context.Context, req ports.DepositRequest) (*ports.OperationResult, error) {
	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	var result *ports.OperationResult
	err := s.withRetry(ctx, "deposit", func() error {
		dbTx, err := s.transactor.Begin(ctx)
		if err != nil {
			return apperror.ErrTransientStore(fmt.Errorf("begin tx: %w", err))
		}
		defer dbTx.Rollback(ctx) //nolint:errcheck

		wallet, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, req.WalletID)
		if err != nil {
			return s.storeError("lock wallet", err)
		}
		if wallet == nil {
			return apperror.ErrNotFound("wallet")
		}
		if wallet.IsBlocked() {
			return apperror.ErrWalletBlocked()
		}

		fee, err := s.feeSvc.Resolve(ctx, domain.OperationDeposit, wallet.Currency, req.Amount)
		if err != nil {
			return err
		}
		net := req.Amount - fee
		if net < 0 {
			return apperror.ErrFeeExceedsAmount()
		}

		now := time.Now().UTC()
		newBalance := wallet.Balance + net
		if err := s.walletRepo.UpdateBalances(ctx, dbTx, wallet.ID, newBalance, wallet.TotalReceived+net, wallet.TotalSent, now); err != nil {
			return s.storeError("update balances", err)
		}

		entry := &domain.LedgerEntry{
			ID:            uuid.New(),
			WalletID:      wallet.ID,
			OwnerID:       wallet.OwnerID,
			Kind:          domain.EntryKindDeposit,
			Amount:        net,
			Currency:      wallet.Currency,
			BalanceBefore: wallet.Balance,
			BalanceAfter:  newBalance,
			Status:        domain.EntryStatusCompleted,
			Metadata:      withMethod(req.Metadata, req.Method, fee),
			CreatedAt:     now,
		}
		if err := s.ledgerRepo.Create(ctx, dbTx, entry); err != nil {
			return s.storeError("create deposit entry", err)
		}

		if err := dbTx.Commit(ctx); err != nil {
			return apperror.ErrTransientStore(fmt.Errorf("commit tx: %w", err))
		}

		result = &ports.OperationResult{
			EntryID:   entry.ID,
			NetAmount: net,
			Fee:       fee,
			Balance:   newBalance,
		}
		s.postProcess(ctx, wallet, domain.AuditActionDeposit, entry.ID, req.Amount, domain.OperationDeposit)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("wallet_id", req.WalletID.String()).
		Int64("amount", req.Amount).
		Int64("fee", result.Fee).
		Int64("balance", result.Balance).
		Msg("deposit completed")
	return result, nil
}

// Withdraw debits a wallet by amount plus fee.
func (s *LedgerServiceImpl) Withdraw(ctx context.Context, req ports.WithdrawRequest) (*ports.OperationResult, error) {
	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	var result *ports.OperationResult
	err := s.withRetry(ctx, "withdraw", func() error {
		dbTx, err := s.transactor.Begin(ctx)
		if err != nil {
			return apperror.ErrTransientStore(fmt.Errorf("begin tx: %w", err))
		}
		defer dbTx.Rollback(ctx) //nolint:errcheck

		wallet, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, req.WalletID)
		if err != nil {
			return s.storeError("lock wallet", err)
		}
		if wallet == nil {
			return apperror.ErrNotFound("wallet")
		}
		if wallet.IsBlocked() {
			return apperror.ErrWalletBlocked()
		}

		fee, err := s.feeSvc.Resolve(ctx, domain.OperationWithdraw, wallet.Currency, req.Amount)
		if err != nil {
			return err
		}
		total := req.Amount + fee
		if wallet.Balance < total {
			return apperror.ErrInsufficientFunds()
		}

		now := time.Now().UTC()
		newBalance := wallet.Balance - total
		if err := s.walletRepo.UpdateBalances(ctx, dbTx, wallet.ID, newBalance, wallet.TotalReceived, wallet.TotalSent+total, now); err != nil {
			return s.storeError("update balances", err)
		}

		entry := &domain.LedgerEntry{
			ID:            uuid.New(),
			WalletID:      wallet.ID,
			OwnerID:       wallet.OwnerID,
			Kind:          domain.EntryKindWithdraw,
			Amount:        total,
			Currency:      wallet.Currency,
			BalanceBefore: wallet.Balance,
			BalanceAfter:  newBalance,
			Status:        domain.EntryStatusCompleted,
			Metadata:      withMethod(req.Metadata, req.Method, fee),
			CreatedAt:     now,
		}
		if err := s.ledgerRepo.Create(ctx, dbTx, entry); err != nil {
			return s.storeError("create withdraw entry", err)
		}

		if err := dbTx.Commit(ctx); err != nil {
			return apperror.ErrTransientStore(fmt.Errorf("commit tx: %w", err))
		}

		result = &ports.OperationResult{
			EntryID:   entry.ID,
			NetAmount: req.Amount,
			Fee:       fee,
			Balance:   newBalance,
		}
		s.postProcess(ctx, wallet, domain.AuditActionWithdraw, entry.ID, req.Amount, domain.OperationWithdraw)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("wallet_id", req.WalletID.String()).
		Int64("amount", req.Amount).
		Int64("fee", result.Fee).
		Int64("balance", result.Balance).
		Msg("withdrawal completed")
	return result, nil
}

// Transfer moves money between two wallets in one database transaction:
// both balance updates and both ledger entries commit together or not at
// all. The receiver wallet is created lazily in the sender's currency.
func (s *LedgerServiceImpl) Transfer(ctx context.Context, req ports.TransferRequest) (*ports.TransferResult, error) {
	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	// Fast-path replay check.
	if req.Reference != "" {
		cached, err := s.transferCache.Get(ctx, req.Reference)
		if err != nil {
			s.log.Warn().Err(err).Str("reference", req.Reference).Msg("transfer cache check failed, falling through")
		}
		if cached != nil {
			result := &ports.TransferResult{}
			if err := json.Unmarshal(cached, result); err != nil {
				return nil, apperror.InternalError(fmt.Errorf("unmarshal cached transfer: %w", err))
			}
			return result, nil
		}
	}

	sender, err := s.walletRepo.GetByID(ctx, req.SenderWalletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get sender wallet: %w", err))
	}
	if sender == nil {
		return nil, apperror.ErrNotFound("sender wallet")
	}

	// Advisory precheck on the unlocked row. A transfer doomed to fail the
	// sender checks should not create a receiver wallet or burn a public
	// identifier. The locked re-check inside the transaction stays
	// authoritative.
	if sender.IsBlocked() {
		return nil, apperror.ErrWalletBlocked()
	}
	if sender.Balance < req.Amount {
		return nil, apperror.ErrInsufficientFunds()
	}

	receiver, err := s.walletSvc.EnsureWallet(ctx, req.ReceiverOwnerID, sender.Currency)
	if err != nil {
		return nil, err
	}
	if receiver.ID == sender.ID {
		return nil, apperror.ErrSelfTransfer()
	}

	publicID, err := s.allocator.Allocate(ctx, domain.ScopeTransactions, &sender.OwnerID)
	if err != nil {
		return nil, err
	}

	var result *ports.TransferResult
	err = s.withRetry(ctx, "transfer", func() error {
		dbTx, txErr := s.transactor.Begin(ctx)
		if txErr != nil {
			return apperror.ErrTransientStore(fmt.Errorf("begin tx: %w", txErr))
		}
		defer dbTx.Rollback(ctx) //nolint:errcheck

		// Lock both rows in a stable order to avoid lock cycles between
		// concurrent opposing transfers.
		firstID, secondID := sender.ID, receiver.ID
		if bytes.Compare(secondID[:], firstID[:]) < 0 {
			firstID, secondID = secondID, firstID
		}
		first, lockErr := s.walletRepo.GetByIDForUpdate(ctx, dbTx, firstID)
		if lockErr != nil {
			return s.storeError("lock first wallet", lockErr)
		}
		second, lockErr := s.walletRepo.GetByIDForUpdate(ctx, dbTx, secondID)
		if lockErr != nil {
			return s.storeError("lock second wallet", lockErr)
		}
		if first == nil || second == nil {
			return apperror.ErrNotFound("wallet")
		}

		src, dst := first, second
		if src.ID != sender.ID {
			src, dst = second, first
		}
		if src.IsBlocked() || dst.IsBlocked() {
			return apperror.ErrWalletBlocked()
		}

		fee, feeErr := s.feeSvc.Resolve(ctx, domain.OperationTransfer, src.Currency, req.Amount)
		if feeErr != nil {
			return feeErr
		}
		total := req.Amount + fee
		if src.Balance < total {
			return apperror.ErrInsufficientFunds()
		}

		now := time.Now().UTC()
		srcBalance := src.Balance - total
		dstBalance := dst.Balance + req.Amount

		if err := s.walletRepo.UpdateBalances(ctx, dbTx, src.ID, srcBalance, src.TotalReceived, src.TotalSent+total, now); err != nil {
			return s.storeError("update sender balances", err)
		}
		if err := s.walletRepo.UpdateBalances(ctx, dbTx, dst.ID, dstBalance, dst.TotalReceived+req.Amount, dst.TotalSent, now); err != nil {
			return s.storeError("update receiver balances", err)
		}

		var reference *string
		if req.Reference != "" {
			reference = &req.Reference
		}
		metadata := req.Metadata
		if req.Description != "" {
			metadata = withKey(metadata, "description", req.Description)
		}

		sent := &domain.LedgerEntry{
			ID:                   uuid.New(),
			PublicID:             &publicID.Value,
			WalletID:             src.ID,
			OwnerID:              src.OwnerID,
			Kind:                 domain.EntryKindTransferSent,
			Amount:               total,
			Currency:             src.Currency,
			BalanceBefore:        src.Balance,
			BalanceAfter:         srcBalance,
			CounterpartyWalletID: &dst.ID,
			Reference:            reference,
			Status:               domain.EntryStatusCompleted,
			Metadata:             metadata,
			CreatedAt:            now,
		}
		if err := s.ledgerRepo.Create(ctx, dbTx, sent); err != nil {
			if errors.Is(err, ports.ErrConflict) {
				return apperror.ErrDuplicateTransfer()
			}
			return s.storeError("create sent entry", err)
		}

		received := &domain.LedgerEntry{
			ID:                   uuid.New(),
			PublicID:             &publicID.Value,
			WalletID:             dst.ID,
			OwnerID:              dst.OwnerID,
			Kind:                 domain.EntryKindTransferReceived,
			Amount:               req.Amount,
			Currency:             dst.Currency,
			BalanceBefore:        dst.Balance,
			BalanceAfter:         dstBalance,
			CounterpartyWalletID: &src.ID,
			Status:               domain.EntryStatusCompleted,
			Metadata:             metadata,
			CreatedAt:            now,
		}
		if err := s.ledgerRepo.Create(ctx, dbTx, received); err != nil {
			return s.storeError("create received entry", err)
		}

		if err := dbTx.Commit(ctx); err != nil {
			return apperror.ErrTransientStore(fmt.Errorf("commit tx: %w", err))
		}

		result = &ports.TransferResult{
			PublicID:        publicID.Value,
			SenderWalletID:  src.ID,
			ReceiverWallet:  dst.ID,
			Amount:          req.Amount,
			Fee:             fee,
			SenderBalance:   srcBalance,
			ReceiverBalance: dstBalance,
		}
		s.postProcess(ctx, src, domain.AuditActionTransfer, sent.ID, req.Amount, domain.OperationTransfer)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if req.Reference != "" {
		resultJSON, marshalErr := json.Marshal(result)
		if marshalErr == nil {
			if cacheErr := s.transferCache.Set(ctx, req.Reference, resultJSON, s.cfg.TransferCacheTTL); cacheErr != nil {
				s.log.Warn().Err(cacheErr).Str("reference", req.Reference).Msg("failed to cache transfer result")
			}
		}
	}

	s.log.Info().
		Str("public_id", result.PublicID).
		Str("sender_wallet_id", result.SenderWalletID.String()).
		Str("receiver_wallet_id", result.ReceiverWallet.String()).
		Int64("amount", result.Amount).
		Int64("fee", result.Fee).
		Msg("transfer completed")
	return result, nil
}

// withRetry runs fn, retrying only transient store faults with a short
// linear backoff. Business-rule errors abort immediately.
func (s *LedgerServiceImpl) withRetry(ctx context.Context, op string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= s.cfg.TxRetryAttempts; attempt++ {
		if attempt > 1 {
			s.sleep(time.Duration(attempt-1) * 25 * time.Millisecond)
		}
		err = fn()
		if err == nil {
			return nil
		}
		if !apperror.IsTransient(err) {
			return err
		}
		s.log.Warn().Err(err).
			Str("op", op).
			Int("attempt", attempt).
			Msg("transient store fault, retrying")
		if ctxErr := ctx.Err(); ctxErr != nil {
			return apperror.InternalError(fmt.Errorf("%s aborted: %w", op, ctxErr))
		}
	}
	return err
}

// storeError classifies a repository error: serialization-class faults
// become retryable, everything else is terminal.
func (s *LedgerServiceImpl) storeError(op string, err error) error {
	if errors.Is(err, ports.ErrSerialization) {
		return apperror.ErrTransientStore(fmt.Errorf("%s: %w", op, err))
	}
	return apperror.InternalError(fmt.Errorf("%s: %w", op, err))
}

// postProcess runs after a committed operation: best-effort audit trail
// and fraud heuristics. Neither can fail the already-committed operation.
func (s *LedgerServiceImpl) postProcess(ctx context.Context, wallet *domain.Wallet, action domain.AuditAction, entryID uuid.UUID, amount int64, kind domain.OperationKind) {
	details, _ := json.Marshal(map[string]int64{"amount": amount})
	s.audit.Record(ctx, &domain.AuditRecord{
		ID:           uuid.New(),
		OwnerID:      &wallet.OwnerID,
		Action:       action,
		ResourceType: "ledger_entry",
		ResourceID:   entryID.String(),
		Details:      string(details),
		Actor:        "system",
		CreatedAt:    time.Now().UTC(),
	})

	assessment, err := s.fraudSvc.Evaluate(ctx, ports.FraudInput{
		OwnerID:  wallet.OwnerID,
		WalletID: wallet.ID,
		Amount:   amount,
		Kind:     kind,
	})
	if err != nil {
		s.log.Warn().Err(err).Str("wallet_id", wallet.ID.String()).Msg("fraud evaluation failed")
		return
	}
	if assessment != nil && assessment.ShouldBlock {
		s.log.Warn().
			Str("wallet_id", wallet.ID.String()).
			Str("severity", string(assessment.Severity)).
			Strs("flags", assessment.Flags).
			Msg("fraud heuristics recommend blocking wallet")
	}
}

// withMethod copies req metadata and annotates method and fee.
func withMethod(metadata map[string]string, method string, fee int64) map[string]string {
	out := make(map[string]string, len(metadata)+2)
	for k, v := range metadata {
		out[k] = v
	}
	if method != "" {
		out["method"] = method
	}
	out["fee"] = fmt.Sprintf("%d", fee)
	return out
}

// withKey copies metadata and sets one key.
func withKey(metadata map[string]string, key, value string) map[string]string {
	out := make(map[string]string, len(metadata)+1)
	for k, v := range metadata {
		out[k] = v
	}
	out[key] = value
	return out
}
