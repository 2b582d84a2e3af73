package dto

// EnsureWalletRequest is the request body for wallet creation.
type EnsureWalletRequest struct {
	OwnerID  string `json:"owner_id" binding:"required,uuid"`
	Currency string `json:"currency" binding:"required,len=3,uppercase"`
}

// SetWalletStatusRequest is the request body for a status transition.
type SetWalletStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=ACTIVE BLOCKED"`
	Reason string `json:"reason" binding:"required,max=255"`
	Actor  string `json:"actor" binding:"required,max=100"`
}

// DepositRequest is the request body for a deposit.
type DepositRequest struct {
	Amount   int64             `json:"amount" binding:"required,gt=0"`
	Method   string            `json:"method" binding:"required,max=50"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// WithdrawRequest is the request body for a withdrawal.
type WithdrawRequest struct {
	Amount   int64             `json:"amount" binding:"required,gt=0"`
	Method   string            `json:"method" binding:"required,max=50"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// TransferRequest is the request body for a wallet-to-wallet transfer.
type TransferRequest struct {
	SenderWalletID  string            `json:"sender_wallet_id" binding:"required,uuid"`
	ReceiverOwnerID string            `json:"receiver_owner_id" binding:"required,uuid"`
	Amount          int64             `json:"amount" binding:"required,gt=0"`
	Description     string            `json:"description" binding:"max=255"`
	Reference       string            `json:"reference" binding:"omitempty,safe_reference,max=100"`
	Metadata        map[string]string `json:"metadata,omitempty"`
}

// ConvertRequest is the request body for a currency conversion.
type ConvertRequest struct {
	Amount int64  `json:"amount" binding:"required,gte=0"`
	From   string `json:"from" binding:"required,len=3,uppercase"`
	To     string `json:"to" binding:"required,len=3,uppercase"`
}

// WalletResponse is the response body for wallet queries.
type WalletResponse struct {
	ID                string  `json:"id"`
	OwnerID           string  `json:"owner_id"`
	PublicID          string  `json:"public_id"`
	Balance           int64   `json:"balance"`
	Currency          string  `json:"currency"`
	Status            string  `json:"status"`
	TotalReceived     int64   `json:"total_received"`
	TotalSent         int64   `json:"total_sent"`
	BlockedReason     *string `json:"blocked_reason,omitempty"`
	LastTransactionAt *string `json:"last_transaction_at,omitempty"`
	CreatedAt         string  `json:"created_at"`
}

// EntryResponse is the response body for ledger entries.
type EntryResponse struct {
	ID                   string            `json:"id"`
	PublicID             *string           `json:"public_id,omitempty"`
	WalletID             string            `json:"wallet_id"`
	Kind                 string            `json:"kind"`
	Amount               int64             `json:"amount"`
	Currency             string            `json:"currency"`
	BalanceBefore        int64             `json:"balance_before"`
	BalanceAfter         int64             `json:"balance_after"`
	CounterpartyWalletID *string           `json:"counterparty_wallet_id,omitempty"`
	Reference            *string           `json:"reference,omitempty"`
	Status               string            `json:"status"`
	Metadata             map[string]string `json:"metadata,omitempty"`
	CreatedAt            string            `json:"created_at"`
}

// OperationResponse is the response body for deposit and withdrawal results.
type OperationResponse struct {
	EntryID   string `json:"entry_id"`
	NetAmount int64  `json:"net_amount"`
	Fee       int64  `json:"fee"`
	Balance   int64  `json:"balance"`
}

// TransferResponse is the response body for transfer results.
type TransferResponse struct {
	PublicID         string `json:"public_id"`
	SenderWalletID   string `json:"sender_wallet_id"`
	ReceiverWalletID string `json:"receiver_wallet_id"`
	Amount           int64  `json:"amount"`
	Fee              int64  `json:"fee"`
	SenderBalance    int64  `json:"sender_balance"`
	ReceiverBalance  int64  `json:"receiver_balance"`
}

// ConvertResponse is the response body for currency conversions.
type ConvertResponse struct {
	Amount          int64   `json:"amount"`
	ConvertedAmount int64   `json:"converted_amount"`
	FromCurrency    string  `json:"from_currency"`
	ToCurrency      string  `json:"to_currency"`
	Rate            float64 `json:"rate"`
}

// OwnerStatsResponse is the response body for owner wallet statistics.
type OwnerStatsResponse struct {
	WalletCount         int              `json:"wallet_count"`
	BalancesByCurrency  map[string]int64 `json:"balances_by_currency"`
	TransactionCount30d int64            `json:"transaction_count_30d"`
	LastTransactionAt   *string          `json:"last_transaction_at,omitempty"`
}
