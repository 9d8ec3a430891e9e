// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyFinalised       = ProcessError("hasher is already finalised")
	ErrAlreadyInitialised     = ProcessError("already initialised")
	ErrAttemptsExhausted      = ProcessError("nonce search attempts exhausted")
	ErrBlockExists            = ExistsError("block already exists")
	ErrBlockNotFound          = NotFoundError("block not found")
	ErrConfigurationNotFound  = NotFoundError("configuration is not found")
	ErrInvalidAddressLength   = LengthError("invalid address length")
	ErrInvalidBlockLength     = LengthError("invalid block length")
	ErrInvalidCount           = InvalidError("invalid count")
	ErrInvalidDifficulty      = InvalidError("difficulty must be in the range 0..128")
	ErrInvalidGenesis         = InvalidError("genesis block must have a zero previous hash")
	ErrInvalidHex             = InvalidError("invalid hex string")
	ErrInvalidLength          = LengthError("invalid digest length")
	ErrInvalidLoggerChannel   = InvalidError("invalid logger channel")
	ErrInvalidProof           = InvalidError("block does not satisfy proof of work")
	ErrInvalidStructPointer   = InvalidError("invalid struct pointer")
	ErrMissingBroadcast       = InvalidError("missing broadcast endpoint")
	ErrNonceSpaceExhausted    = ProcessError("nonce space exhausted")
	ErrNotInitialised         = ProcessError("not initialised")
	ErrPreviousHashMismatch   = InvalidError("previous hash does not match chain tip")
	ErrPublisherClosed        = ProcessError("publisher is closed")
	ErrTransactionPackLength  = LengthError("invalid packed transaction length")
	ErrUnexpectedMessageTopic = InvalidError("unexpected message topic")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
