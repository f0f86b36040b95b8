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

package cor

import (
	"context"
)

// BaseContext is the default implementation of the Context interface. It is
// not safe for concurrent use; one workflow execution owns it.
type BaseContext struct {
	data         map[string]interface{} // Arbitrary key-value data.
	errors       map[string]error       // Errors keyed by the command name that produced them.
	halted       bool                   // Set by Halt.
	haltedReason string                 // The reason passed to Halt.
	context      context.Context        // Cancellation and request-scoped values such as the active span.
}

// NewBaseContext creates an empty context.
func NewBaseContext() Context {
	return &BaseContext{
		data:   make(map[string]interface{}),
		errors: make(map[string]error),
	}
}

// NewContextWithInput creates a context bound to ctx with in stored under CtxIn.
//
// Inputs:
//   - ctx: The Go context of the execution.
//   - in: The primary input of the first command.
//
// Outputs:
//   - Context: The ready to run context.
func NewContextWithInput(ctx context.Context, in interface{}) Context {
	c := NewBaseContext()
	c.SetContext(ctx)
	c.Add(CtxIn, in)
	return c
}

func (c *BaseContext) SetContext(context context.Context) {
	c.context = context
}

func (c *BaseContext) GetContext() context.Context {
	return c.context
}

func (c *BaseContext) Add(key string, value interface{}) Context {
	c.data[key] = value
	return c
}

func (c *BaseContext) Get(key string) interface{} {
	return c.data[key]
}

func (c *BaseContext) Remove(key string) {
	delete(c.data, key)
}

func (c *BaseContext) AddError(key string, err error) {
	c.errors[key] = err
}

func (c *BaseContext) GetErrors() map[string]error {
	return c.errors
}

func (c *BaseContext) HasErrors() bool {
	return len(c.errors) > 0
}

func (c *BaseContext) Halt(reason string) {
	c.halted = true
	c.haltedReason = reason
}

func (c *BaseContext) IsHalted() (bool, string) {
	return c.halted, c.haltedReason
}

// Value returns the value stored under key when it has type T.
func Value[T any](c Context, key string) (T, bool) {
	v, ok := c.Get(key).(T)
	return v, ok
}
