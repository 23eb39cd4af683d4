/*
Package distributorconst contains constants shared by the Distributor contract
and the code working with it off-chain.
*/
package distributorconst

const (
	// ConfigKey is a storage key of the serialized contract configuration.
	ConfigKey = "config"
	// RecordKey is a storage key of the serialized bucket totals.
	RecordKey = "record"
)

// Deposit split in percents of the deposited amount. Shares are computed
// with truncating integer division, the remainder is not attributed to any
// bucket.
const (
	BurnPercent        = 85
	JackpotPercent     = 10
	DevelopmentPercent = 5

	PercentBase = 100
)

// Values of the action parameter of Payout notification.
const (
	ActionDistribute = "distribute"
	ActionWithdraw   = "withdraw"
)

// Notification names.
const (
	PayoutEvent               = "Payout"
	DepositEvent              = "Deposit"
	DepositAmountChangedEvent = "DepositAmountChanged"
	ControllerChangedEvent    = "ControllerChanged"
)

// Exception messages thrown by the contract.
const (
	// ErrUnauthorized is thrown when a controller-only method is invoked
	// without the controller witness.
	ErrUnauthorized = "caller is not the controller"
	// ErrInvalidAmount is thrown when an attached payment differs from the
	// configured deposit amount or a negative amount is passed.
	ErrInvalidAmount = "invalid amount"
	// ErrInvalidIdentity is thrown when an identity is not a 20-byte non-zero
	// script hash.
	ErrInvalidIdentity = "invalid identity"
	// ErrInsufficientBalance is thrown when a withdrawal exceeds the jackpot.
	ErrInsufficientBalance = "insufficient jackpot balance"
	// ErrInvalidAsset is thrown when a payment comes from a token other than
	// the configured one.
	ErrInvalidAsset = "asset is not accepted"
	// ErrTransferFailed is thrown when the asset contract rejects a transfer.
	ErrTransferFailed = "failed to transfer funds"
)
