// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"

	dasherrors "github.com/sirseerhq/sirseer-dash/internal/errors"
	"github.com/sirseerhq/sirseer-dash/internal/giterror"
)

var inspector = giterror.NewErrorChainInspector(giterror.NewInspector())

// annotateAuth marks a credential rejection with ErrInvalidToken when a token
// was actually sent, so the message points at the token rather than the URL.
func annotateAuth(err error, authenticated bool) error {
	if err != nil && authenticated && inspector.IsAuthError(err) {
		return fmt.Errorf("%w: %w", dasherrors.ErrInvalidToken, err)
	}
	return err
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, dasherrors.ErrTransportFailed) {
		return 3 // Network errors
	}

	if errors.Is(err, dasherrors.ErrInvalidToken) || inspector.IsAuthError(err) {
		return 2 // Authentication/authorization errors
	}

	return 1 // General error
}
