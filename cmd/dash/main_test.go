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
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirseerhq/sirseer-dash/internal/dispatch"
	dasherrors "github.com/sirseerhq/sirseer-dash/internal/errors"
	"github.com/sirseerhq/sirseer-dash/test/testutil"
)

// execute runs the root command in an isolated environment: no config file
// is discovered and no token is inherited.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())
	t.Setenv("SIRSEER_DASH_TOKEN", "")
	t.Setenv("SIRSEER_DASH_URL", "")
	t.Setenv("SIRSEER_DASH_STYLE", "notty")

	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func dashboardBackend(t *testing.T) *testutil.MockServer {
	t.Helper()
	return testutil.NewBackendServer(t, &testutil.Backend{
		Issues: []map[string]interface{}{
			testutil.NewIssueBuilder(7).WithTitle("Crash on start").WithAuthor("alice").Build(),
			testutil.NewIssueBuilder(9).Build(),
		},
		PullRequests: []map[string]interface{}{
			testutil.NewPullRequestBuilder(12).WithTitle("Dark mode").WithAssignees("bob").WithReviewers("erin").Build(),
		},
		Answer: func(q string) string { return "The answer to " + q },
		Now:    func() time.Time { return time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC) },
	})
}

func TestIssuesCommand(t *testing.T) {
	server := dashboardBackend(t)

	stdout, _, err := execute(t, "--url", server.Endpoint(), "issues")
	testutil.AssertNoError(t, err)

	records := testutil.AssertNDJSONOutput(t, stdout, 2, "owner", "repo", "number", "title", "author")
	if len(records) == 2 {
		testutil.AssertEqual(t, records[0]["title"], "Crash on start")
		testutil.AssertEqual(t, records[0]["number"], float64(7))
	}
	testutil.AssertEqual(t, server.Requests(), 1)
}

func TestPullsCommand_OutputFileAndMetadata(t *testing.T) {
	server := dashboardBackend(t)
	outDir := t.TempDir()
	outputFile := filepath.Join(outDir, "pulls.ndjson")
	metaDir := filepath.Join(outDir, "meta")

	stdout, _, err := execute(t, "--url", server.Endpoint(), "--metadata-dir", metaDir, "pulls", "--output", outputFile)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, stdout, "")

	testutil.AssertFileExists(t, outputFile)
	data, err := os.ReadFile(outputFile)
	testutil.AssertNoError(t, err)
	records := testutil.AssertNDJSONOutput(t, string(data), 1, "assignees", "reviewers")
	if len(records) == 1 {
		testutil.AssertEqual(t, fmt.Sprint(records[0]["assignees"]), "[bob]")
	}

	meta := testutil.AssertMetadataFile(t, metaDir)
	testutil.AssertEqual(t, meta["command"], "pulls")
	testutil.AssertEqual(t, meta["endpoint"], server.Endpoint())
}

func TestAskCommand(t *testing.T) {
	server := dashboardBackend(t)

	stdout, _, err := execute(t, "--url", server.Endpoint(), "ask", "who", "reviews", "web?")
	testutil.AssertNoError(t, err)
	testutil.AssertContainsString(t, stdout, "The answer to who reviews web?")
}

func TestAskCommand_JSON(t *testing.T) {
	server := dashboardBackend(t)

	stdout, _, err := execute(t, "--url", server.Endpoint(), "ask", "--json", "What is X?")
	testutil.AssertNoError(t, err)

	records := testutil.AssertNDJSONOutput(t, stdout, 1, "query", "answer", "timestamp")
	if len(records) == 1 {
		testutil.AssertEqual(t, records[0]["answer"], "The answer to What is X?")
		testutil.AssertEqual(t, records[0]["timestamp"], "2026-01-02T15:04:00Z")
	}
}

func TestAskCommand_BlankQuestion(t *testing.T) {
	server := dashboardBackend(t)

	_, _, err := execute(t, "--url", server.Endpoint(), "ask", "   ")
	if !errors.Is(err, dasherrors.ErrEmptyQuestion) {
		t.Fatalf("err = %v, want ErrEmptyQuestion", err)
	}
	testutil.AssertEqual(t, server.Requests(), 0)
}

func TestAskCommand_FailurePrintsFormattedError(t *testing.T) {
	server := testutil.NewErrorServer(t, http.StatusBadGateway)

	_, stderr, err := execute(t, "--url", server.Endpoint(), "ask", "anyone there?")
	testutil.AssertErrorContains(t, err, "502 Bad Gateway")
	testutil.AssertContainsString(t, stderr, "An error occurred:")
	testutil.AssertEqual(t, mapErrorToExitCode(err), 1)
}

func TestAuthentication(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantErr    bool
		invalidTok bool
		wantExit   int
	}{
		{
			name:    "valid token",
			args:    []string{"--token", "secret"},
			wantErr: false,
		},
		{
			name:       "rejected token",
			args:       []string{"--token", "wrong"},
			wantErr:    true,
			invalidTok: true,
			wantExit:   2,
		},
		{
			name:     "no token",
			args:     nil,
			wantErr:  true,
			wantExit: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := testutil.NewBackendServer(t, &testutil.Backend{Token: "secret"})

			args := append([]string{"--url", server.Endpoint()}, tt.args...)
			_, _, err := execute(t, append(args, "issues")...)

			if !tt.wantErr {
				testutil.AssertNoError(t, err)
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			testutil.AssertEqual(t, errors.Is(err, dasherrors.ErrInvalidToken), tt.invalidTok)
			testutil.AssertEqual(t, dispatch.KindOf(err), dispatch.KindHTTPStatus)
			testutil.AssertEqual(t, mapErrorToExitCode(err), tt.wantExit)
		})
	}
}

func TestTokenFromEnvironmentVariableInConfig(t *testing.T) {
	server := testutil.NewBackendServer(t, &testutil.Backend{Token: "from-env"})
	cfgPath := testutil.WriteConfig(t, "identity:\n  token_env: DASH_TEST_TOKEN\n")
	t.Setenv("DASH_TEST_TOKEN", "from-env")

	_, _, err := execute(t, "--config", cfgPath, "--url", server.Endpoint(), "pulls")
	testutil.AssertNoError(t, err)
}

func TestURLFlagOverridesConfig(t *testing.T) {
	fromFile := dashboardBackend(t)
	fromFlag := dashboardBackend(t)
	cfgPath := testutil.WriteConfig(t, fmt.Sprintf("server:\n  url: %s\n", fromFile.Endpoint()))

	_, _, err := execute(t, "--config", cfgPath, "--url", fromFlag.Endpoint(), "issues")
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, fromFile.Requests(), 0)
	testutil.AssertEqual(t, fromFlag.Requests(), 1)

	_, _, err = execute(t, "--config", cfgPath, "issues")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, fromFile.Requests(), 1)
}

func TestTransportFailureExitCode(t *testing.T) {
	server := dashboardBackend(t)
	endpoint := server.Endpoint()
	server.Close()

	_, _, err := execute(t, "--url", endpoint, "issues")
	if !errors.Is(err, dasherrors.ErrTransportFailed) {
		t.Fatalf("err = %v, want ErrTransportFailed", err)
	}
	testutil.AssertEqual(t, mapErrorToExitCode(err), 3)
}

func TestAnnotateAuth(t *testing.T) {
	refused := &dispatch.Error{
		Kind:  dispatch.KindTransportFailed,
		Query: "issues",
		Err:   errors.New(`Post "http://127.0.0.1:4011/graphql": dial tcp 127.0.0.1:4011: connect: connection refused`),
	}
	unauthorized := &dispatch.Error{Kind: dispatch.KindHTTPStatus, Query: "issues", StatusCode: http.StatusUnauthorized}

	tests := []struct {
		name          string
		err           error
		authenticated bool
		wantInvalid   bool
		wantExit      int
	}{
		{"refused on port 4011", refused, true, false, 3},
		{"rejected token", unauthorized, true, true, 2},
		{"rejected without token", unauthorized, false, false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := annotateAuth(tt.err, tt.authenticated)
			if got := errors.Is(err, dasherrors.ErrInvalidToken); got != tt.wantInvalid {
				t.Errorf("errors.Is(ErrInvalidToken) = %v, want %v", got, tt.wantInvalid)
			}
			testutil.AssertEqual(t, mapErrorToExitCode(err), tt.wantExit)
		})
	}
}

func TestNoDataResponse(t *testing.T) {
	server := testutil.NewNoDataServer(t, "repository index is rebuilding")

	_, _, err := execute(t, "--url", server.Endpoint(), "pulls")
	if !errors.Is(err, dasherrors.ErrNoData) {
		t.Fatalf("err = %v, want ErrNoData", err)
	}
	testutil.AssertErrorContains(t, err, "repository index is rebuilding")
	testutil.AssertEqual(t, mapErrorToExitCode(err), 1)
}

func TestInvalidConfiguration(t *testing.T) {
	_, _, err := execute(t, "--url", "ftp://example.com/graphql", "issues")
	testutil.AssertErrorContains(t, err, "invalid configuration")
}

func TestUnknownArguments(t *testing.T) {
	_, _, err := execute(t, "issues", "extra")
	if err == nil || !strings.Contains(err.Error(), "unknown command") && !strings.Contains(err.Error(), "accepts 0 arg") {
		t.Errorf("err = %v, want argument error", err)
	}
}

func TestMapErrorToExitCode(t *testing.T) {
	httpErr := func(code int) error {
		return &dispatch.Error{Kind: dispatch.KindHTTPStatus, Query: "issues", StatusCode: code}
	}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"unauthorized", httpErr(http.StatusUnauthorized), 2},
		{"forbidden", httpErr(http.StatusForbidden), 2},
		{"server error", httpErr(http.StatusInternalServerError), 1},
		{"invalid token", fmt.Errorf("wrapped: %w", dasherrors.ErrInvalidToken), 2},
		{"transport", &dispatch.Error{Kind: dispatch.KindTransportFailed, Query: "qa-query", Err: dispatch.ErrNetworkUnreachable}, 3},
		{"auth message in no data", &dispatch.Error{Kind: dispatch.KindNoData, Query: "issues", Messages: []string{"Not authenticated"}}, 2},
		{"plain no data", &dispatch.Error{Kind: dispatch.KindNoData, Query: "issues"}, 1},
		{"empty question", dasherrors.ErrEmptyQuestion, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapErrorToExitCode(tt.err); got != tt.want {
				t.Errorf("mapErrorToExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Setenv("PWD", dir)
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatalf("restore working directory %s: %v", wd, err)
		}
	})
}
