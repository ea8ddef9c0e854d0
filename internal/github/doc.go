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

// Package github declares the dashboard's GraphQL query contracts and the
// domain types they decode into: open issues, open pull requests and answers
// from the repository Q&A endpoint.
//
// Each contract is a dispatch.Query value naming the wire document, the
// variables shape and the payload shape. Variables use the scalar types from
// shurcooL/graphql so they serialize exactly as the schema expects.
//
// Basic usage:
//
//	client := github.NewGraphQLClient(dispatch.NewClient(transport,
//	    dispatch.WithCredential(token)))
//	issues, err := client.FetchIssues(ctx)
//	if err != nil {
//	    // Handle error
//	}
//	for _, issue := range issues {
//	    fmt.Println(issue.Ref(), issue.Title)
//	}
package github
