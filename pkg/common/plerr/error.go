// Copyright 2023 twistedlog
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package plerr carries the error taxonomy of the execution engine.
// Every failure surfaced by the storage and executor layers is an
// *Error with a stable code, so callers dispatch on codes instead of
// matching message strings.
package plerr

import (
	"context"
	"fmt"
)

const (
	// Ok is never returned; it anchors the code space.
	Ok uint16 = 0

	// Group 1: internal errors
	ErrStart    uint16 = 20100
	ErrInternal uint16 = 20101
	ErrNYI      uint16 = 20102

	// Group 2: resource exhaustion
	ErrOOM              uint16 = 20200
	ErrCapacityExceeded uint16 = 20201

	// Group 3: contract breaches.  These indicate a planner or upstream
	// logic defect and are never retried.
	ErrContractViolation uint16 = 20300
	ErrIndexOutOfRange   uint16 = 20301
	ErrInvalidState      uint16 = 20302
	ErrInvalidInput      uint16 = 20303
	ErrBadConfig         uint16 = 20304

	// ErrEnd, the max value of the error code space.
	ErrEnd uint16 = 65535
)

type errorMsgItem struct {
	errorMsgOrFormat string
}

var errorMsgRefer = map[uint16]errorMsgItem{
	ErrInternal: {"internal error: %s"},
	ErrNYI:      {"%s is not yet implemented"},

	ErrOOM:              {"error: out of memory"},
	ErrCapacityExceeded: {"capacity exceeded: %s"},

	ErrContractViolation: {"contract violation: %s"},
	ErrIndexOutOfRange:   {"index out of range: %s %d, bound %d"},
	ErrInvalidState:      {"invalid state %s"},
	ErrInvalidInput:      {"invalid input: %s"},
	ErrBadConfig:         {"invalid configuration: %s"},
}

// Error is the only error type produced by this module.
type Error struct {
	code    uint16
	message string
}

func newError(ctx context.Context, code uint16, args ...any) *Error {
	var err *Error
	item, has := errorMsgRefer[code]
	if !has {
		panic(fmt.Errorf("not exist error code %d", code))
	}
	if len(args) == 0 {
		err = &Error{
			code:    code,
			message: item.errorMsgOrFormat,
		}
	} else {
		err = &Error{
			code:    code,
			message: fmt.Sprintf(item.errorMsgOrFormat, args...),
		}
	}
	_ = ctx
	return err
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) ErrorCode() uint16 {
	return e.code
}

func (e *Error) Succeeded() bool {
	return e.code < ErrStart
}

// IsErrCode reports whether e is an *Error carrying exactly rc.
func IsErrCode(e error, rc uint16) bool {
	if pe, ok := e.(*Error); ok {
		return pe.code == rc
	}
	return false
}

func NewInternalError(ctx context.Context, msg string, args ...any) *Error {
	return newError(ctx, ErrInternal, fmt.Sprintf(msg, args...))
}

func NewNYI(ctx context.Context, msg string, args ...any) *Error {
	return newError(ctx, ErrNYI, fmt.Sprintf(msg, args...))
}

func NewOOM(ctx context.Context) *Error {
	return newError(ctx, ErrOOM)
}

func NewCapacityExceeded(ctx context.Context, msg string, args ...any) *Error {
	return newError(ctx, ErrCapacityExceeded, fmt.Sprintf(msg, args...))
}

func NewContractViolation(ctx context.Context, msg string, args ...any) *Error {
	return newError(ctx, ErrContractViolation, fmt.Sprintf(msg, args...))
}

func NewIndexOutOfRange(ctx context.Context, what string, idx, bound int) *Error {
	return newError(ctx, ErrIndexOutOfRange, what, idx, bound)
}

func NewInvalidState(ctx context.Context, msg string, args ...any) *Error {
	return newError(ctx, ErrInvalidState, fmt.Sprintf(msg, args...))
}

func NewInvalidInput(ctx context.Context, msg string, args ...any) *Error {
	return newError(ctx, ErrInvalidInput, fmt.Sprintf(msg, args...))
}

func NewBadConfig(ctx context.Context, msg string, args ...any) *Error {
	return newError(ctx, ErrBadConfig, fmt.Sprintf(msg, args...))
}
