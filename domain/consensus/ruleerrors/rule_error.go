package ruleerrors

import (
	"fmt"

	"github.com/kaspanet/ledgercore/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// These constants are used to identify a specific RuleError.
var (
	// ErrInvalidTransaction indicates a transaction breaks a ledger rule,
	// for example by spending more than its inputs or by a malformed coinbase.
	ErrInvalidTransaction = newRuleError("ErrInvalidTransaction")

	// ErrInvalidBlock indicates a block can't be appended to the chain,
	// for example because it doesn't point to the current tip.
	ErrInvalidBlock = newRuleError("ErrInvalidBlock")

	// ErrInvalidBlockHeader indicates a malformed block header or a
	// header whose timestamp doesn't follow its predecessor's.
	ErrInvalidBlockHeader = newRuleError("ErrInvalidBlockHeader")

	// ErrInvalidTransactionInput indicates an input referencing an output that
	// doesn't exist, was already spent, or is spent twice in the same block.
	ErrInvalidTransactionInput = newRuleError("ErrInvalidTransactionInput")

	// ErrInvalidTransactionOutput indicates an output value out of range.
	ErrInvalidTransactionOutput = newRuleError("ErrInvalidTransactionOutput")

	// ErrInvalidMerkleRoot indicates the calculated merkle root does not match
	// the expected value.
	ErrInvalidMerkleRoot = newRuleError("ErrInvalidMerkleRoot")

	// ErrInvalidHash indicates that the block's hash doesn't satisfy its target.
	ErrInvalidHash = newRuleError("ErrInvalidHash")

	// ErrInvalidSignature indicates an input signature that doesn't verify against
	// the owner of the output it spends.
	ErrInvalidSignature = newRuleError("ErrInvalidSignature")

	// ErrInvalidPublicKey indicates bytes that don't encode a public key.
	ErrInvalidPublicKey = newRuleError("ErrInvalidPublicKey")

	// ErrInvalidPrivateKey indicates bytes that don't encode a private key.
	ErrInvalidPrivateKey = newRuleError("ErrInvalidPrivateKey")
)

// RuleError identifies a rule violation. It is used to indicate that
// processing of a block or transaction failed due to one of the many validation
// rules. The caller can use type assertions to determine if a failure was
// specifically due to a rule violation.
type RuleError struct {
	message string
	inner   error
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	if e.inner != nil {
		return e.message + ": " + e.inner.Error()
	}
	return e.message
}

// Unwrap satisfies the errors.Unwrap interface
func (e RuleError) Unwrap() error {
	return e.inner
}

// Cause satisfies the github.com/pkg/errors.Cause interface
func (e RuleError) Cause() error {
	return e.inner
}

func newRuleError(message string) RuleError {
	return RuleError{message: message, inner: nil}
}

// IsRuleError returns whether err is, or wraps, a RuleError
func IsRuleError(err error) bool {
	return errors.As(err, &RuleError{})
}

// ErrMissingTxOut indicates a transaction output referenced by an input
// either does not exist or has already been spent.
type ErrMissingTxOut struct {
	MissingOutpoints []*externalapi.DomainOutpoint
}

func (e ErrMissingTxOut) Error() string {
	return fmt.Sprintf("missing the following outpoint: %v", e.MissingOutpoints)
}

// NewErrMissingTxOut Creates a new ErrMissingTxOut error wrapped in a RuleError
func NewErrMissingTxOut(missingOutpoints []*externalapi.DomainOutpoint) error {
	return errors.WithStack(RuleError{
		message: ErrInvalidTransactionInput.message,
		inner:   ErrMissingTxOut{missingOutpoints},
	})
}

// Is makes every RuleError that carries the same message match its sentinel
// under errors.Is, regardless of the inner error.
func (e RuleError) Is(target error) bool {
	targetRuleError, ok := target.(RuleError)
	if !ok {
		return false
	}
	return targetRuleError.inner == nil && targetRuleError.message == e.message
}
