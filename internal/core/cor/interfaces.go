// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cor (Chain of Responsibility) runs workflows as an ordered sequence
// of commands sharing one Context. The recommendation notification workflow is
// built from it: decode the request, compute the recommendations, publish.
//
// Data flows between commands through two well known keys. A command reads
// CtxIn and writes CtxOut; the chain moves CtxOut to CtxIn before running the
// next command. A command stops the chain either by recording an error
// (failure, the triggering message is redelivered) or by halting the context
// (a normal early exit, the triggering message is acknowledged).
package cor

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// CtxIn and CtxOut are constant keys used to manage the primary data flow
// within a BaseChain.
const (
	// CtxIn is the default key for the primary input of a command.
	CtxIn = "__IN__"
	// CtxOut is the default key where a command places its primary output.
	CtxOut = "__OUT__"
)

// Context is the shared state of a single workflow execution.
type Context interface {
	// SetContext sets the Go context carrying cancellation and the active span.
	SetContext(context context.Context)

	// GetContext retrieves the Go context.
	GetContext() context.Context

	// Add stores a key-value pair in the context.
	Add(key string, value interface{}) Context

	// Get retrieves a value from the context by its key, or nil.
	Get(key string) interface{}

	// Remove deletes a key-value pair from the context.
	Remove(key string)

	// AddError records an error, keyed by the name of the command that produced it.
	AddError(key string, err error)

	// GetErrors returns every error recorded during the workflow.
	GetErrors() map[string]error

	// HasErrors reports whether any error has been recorded.
	HasErrors() bool

	// Halt stops the chain after the current command without marking the
	// execution as failed. The reason is kept for logging.
	Halt(reason string)

	// IsHalted reports whether Halt was called, and why.
	IsHalted() (bool, string)
}

// Executable is a simple interface for any object that has a core execution logic.
type Executable interface {
	Execute(context Context)
}

// Command is an atomic unit of work within a workflow.
type Command interface {
	Executable

	// GetName returns the unique name of the command, used for logging and telemetry.
	GetName() string

	// GetInputParam returns the key of the command's primary input.
	GetInputParam() string

	// GetOutputParam returns the key of the command's primary output.
	GetOutputParam() string

	// IsExecutable is the precondition checked before Execute.
	IsExecutable(context Context) bool

	GetTracer() trace.Tracer
	GetMeter() metric.Meter
	GetSuccessCounter() metric.Int64Counter
	GetErrorCounter() metric.Int64Counter
}

// Chain is a sequence of commands. It is itself a Command, so chains nest.
type Chain interface {
	Command

	// ContinueOnFailure makes the chain run the remaining commands after an error.
	ContinueOnFailure(bool) Chain

	// AddCommand appends a command to the execution sequence.
	AddCommand(command Command) Chain
}
