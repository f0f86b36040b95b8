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

package model

import "errors"

var (
	// ErrProfileNotFound is returned when a user id does not resolve to a profile.
	// It is distinct from an empty result: a known user with no matching movies
	// gets an empty list and no error.
	ErrProfileNotFound = errors.New("user profile not found")

	// ErrInvalidQuery is returned when a catalog search query is blank.
	ErrInvalidQuery = errors.New("search query cannot be empty")
)
