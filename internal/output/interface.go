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

package output

// OutputWriter defines the interface for writing dashboard records.
type OutputWriter interface {
	// Write writes a single record to the output.
	Write(record interface{}) error

	// Close closes the underlying writer and releases any resources.
	Close() error
}

// WriteAll writes records in order and returns how many were written before
// the first failure.
func WriteAll[T any](w OutputWriter, records []T) (int, error) {
	for i, record := range records {
		if err := w.Write(record); err != nil {
			return i, err
		}
	}
	return len(records), nil
}
