// Package indexing submits site URLs to search engines: the Google Indexing
// API and IndexNow.
package indexing

import (
	"context"
)

// Publisher submits URLs to one search engine
type Publisher interface {
	Name() string
	// Publish returns one Result per URL, in input order.
	Publish(ctx context.Context, urls []string) []Result
}

// Result is the outcome of one URL at one provider
type Result struct {
	Provider string `json:"provider"`
	URL      string `json:"url"`
	OK       bool   `json:"ok"`
	Error    string `json:"error,omitempty"`
}

func batchResults(provider string, urls []string, err error) []Result {
	out := make([]Result, len(urls))
	for i, u := range urls {
		out[i] = Result{Provider: provider, URL: u, OK: err == nil}
		if err != nil {
			out[i].Error = err.Error()
		}
	}
	return out
}
