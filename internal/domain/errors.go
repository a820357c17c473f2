package domain

import "errors"

var (
	ErrValidationRejected        = errors.New("event rejected by admission checks")
	ErrDuplicateCommissionPeriod = errors.New("commission already posted for period")
	ErrInconsistentLedgerRead    = errors.New("inconsistent ledger read")
	ErrUnknownOwnerTier          = errors.New("unknown owner tier")
	ErrSiteNotFound              = errors.New("site not found")
	ErrSiteAlreadyExists         = errors.New("site already exists")
	ErrRelationshipNotFound      = errors.New("referral relationship not found")
)
