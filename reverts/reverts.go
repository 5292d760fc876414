// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
)

// Kind groups revert codes by the reason an action was refused.
type Kind uint8

const (
	KindPreconditionState Kind = iota + 1
	KindPreconditionValue
	KindIdentity
	KindEnvironment
)

func (k Kind) String() string {
	switch k {
	case KindPreconditionState:
		return "PreconditionState"
	case KindPreconditionValue:
		return "PreconditionValue"
	case KindIdentity:
		return "Identity"
	case KindEnvironment:
		return "Environment"
	default:
		return "Unknown"
	}
}

// Code is the enumerable identifier of a revert.
type Code uint8

const (
	CodeAlreadyStaked Code = iota + 1
	CodeNotStaked
	CodeLocked
	CodeAlreadyUnlockable
	CodeAlreadyClaimed
	CodeAlreadyInitialized
	CodeDoesNotExist
	CodeNotInitialized
	CodeNotSupported

	CodeAmountNotEnough
	CodeDurationTooShort
	CodeDurationTooLong
	CodeDecreased
	CodeOverflow

	CodeInvalidStakeAccount
	CodeInvalidMint

	CodeClockUnavailable
	CodeSettlementFailed
)

var codeInfo = map[Code]struct {
	name string
	kind Kind
}{
	CodeAlreadyStaked:      {"AlreadyStaked", KindPreconditionState},
	CodeNotStaked:          {"NotStaked", KindPreconditionState},
	CodeLocked:             {"Locked", KindPreconditionState},
	CodeAlreadyUnlockable:  {"AlreadyUnlockable", KindPreconditionState},
	CodeAlreadyClaimed:     {"AlreadyClaimed", KindPreconditionState},
	CodeAlreadyInitialized: {"AlreadyInitialized", KindPreconditionState},
	CodeDoesNotExist:       {"DoesNotExist", KindPreconditionState},
	CodeNotInitialized:     {"NotInitialized", KindPreconditionState},
	CodeNotSupported:       {"NotSupported", KindPreconditionState},

	CodeAmountNotEnough:  {"AmountNotEnough", KindPreconditionValue},
	CodeDurationTooShort: {"DurationTooShort", KindPreconditionValue},
	CodeDurationTooLong:  {"DurationTooLong", KindPreconditionValue},
	CodeDecreased:        {"Decreased", KindPreconditionValue},
	CodeOverflow:         {"Overflow", KindPreconditionValue},

	CodeInvalidStakeAccount: {"InvalidStakeAccount", KindIdentity},
	CodeInvalidMint:         {"InvalidMint", KindIdentity},

	CodeClockUnavailable: {"ClockUnavailable", KindEnvironment},
	CodeSettlementFailed: {"SettlementFailed", KindEnvironment},
}

func (c Code) String() string {
	if info, ok := codeInfo[c]; ok {
		return info.name
	}
	return "Unknown"
}

// Kind returns the group the code belongs to.
func (c Code) Kind() Kind {
	return codeInfo[c].kind
}

// Sentinel reverts, one per code.
var (
	ErrAlreadyStaked      = New(CodeAlreadyStaked, "This stake is already staked.")
	ErrNotStaked          = New(CodeNotStaked, "Not staked.")
	ErrLocked             = New(CodeLocked, "This stake is still locked.")
	ErrAlreadyUnlockable  = New(CodeAlreadyUnlockable, "This locked period has ended.")
	ErrAlreadyClaimed     = New(CodeAlreadyClaimed, "This stake is already claimed.")
	ErrAlreadyInitialized = New(CodeAlreadyInitialized, "The vault is already initialized.")
	ErrDoesNotExist       = New(CodeDoesNotExist, "This stake account does not exist.")
	ErrNotInitialized     = New(CodeNotInitialized, "The vault is not initialized.")
	ErrNotSupported       = New(CodeNotSupported, "This action is not supported by the configured variant.")

	ErrAmountNotEnough  = New(CodeAmountNotEnough, "This amount is not enough.")
	ErrDurationTooShort = New(CodeDurationTooShort, "This stake duration is not long enough.")
	ErrDurationTooLong  = New(CodeDurationTooLong, "This stake duration is too long.")
	ErrDecreased        = New(CodeDecreased, "This stake is not allowed to decrease.")
	ErrOverflow         = New(CodeOverflow, "This amount overflows.")

	ErrInvalidStakeAccount = New(CodeInvalidStakeAccount, "This stake does not belong to the authority.")
	ErrInvalidMint         = New(CodeInvalidMint, "This mint is not accepted.")

	ErrClockUnavailable = New(CodeClockUnavailable, "The clock is unavailable.")
	ErrSettlementFailed = New(CodeSettlementFailed, "The settlement was rejected.")
)

type ErrRevert struct {
	code    Code
	message string
}

func New(code Code, message string) *ErrRevert {
	return &ErrRevert{
		code:    code,
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

func (e *ErrRevert) Code() Code {
	return e.code
}

func (e *ErrRevert) Kind() Kind {
	return e.code.Kind()
}

// Is matches reverts by code, so a revert rebuilt with another message still
// compares equal to its sentinel.
func (e *ErrRevert) Is(target error) bool {
	t, ok := target.(*ErrRevert)
	return ok && t.code == e.code
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// CodeOf extracts the revert code from err, or 0 if err carries none.
func CodeOf(err error) Code {
	var ve *ErrRevert
	if errors.As(err, &ve) {
		return ve.code
	}
	return 0
}

// Wrap attaches cause to a revert, keeping the revert's code.
func Wrap(revert *ErrRevert, cause error) error {
	return &wrapped{revert: revert, cause: cause}
}

type wrapped struct {
	revert *ErrRevert
	cause  error
}

func (w *wrapped) Error() string {
	return w.revert.message + ": " + w.cause.Error()
}

func (w *wrapped) Unwrap() []error {
	return []error{w.revert, w.cause}
}
