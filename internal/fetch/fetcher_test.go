// ABOUTME: Tests for the HTTP content fetcher
// ABOUTME: Covers page success, non-2xx, transport failure, and subresource error recording

package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			fmt.Fprint(w, `<html><head><title>Home</title>
				<meta name="description" content="welcome">
				<link rel="stylesheet" href="/style.css">
			</head></html>`)
		case "/style.css":
			fmt.Fprint(w, "body{}")
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := New(0, 0, nil)
	result, err := f.Fetch(context.Background(), srv.URL+"/")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, result.Status)
	assert.Equal(t, "Home", result.Title)
	assert.Equal(t, "welcome", result.Description)
	assert.Equal(t, Resource{Content: "body{}"}, result.Resources[srv.URL+"/style.css"])
}

func TestFetch_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	f := New(0, 0, nil)
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusGone, fetchErr.Status)
}

func TestFetch_TransportFailure(t *testing.T) {
	f := New(0, 0, nil)

	// Closed server: connection refused
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := f.Fetch(context.Background(), url)
	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Zero(t, fetchErr.Status)
}

func TestFetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	f := New(50*time.Millisecond, 50*time.Millisecond, nil)
	_, err := f.Fetch(context.Background(), srv.URL)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
}

func TestFetch_SubresourceFailureRecorded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			fmt.Fprint(w, `<html><body><img src="/missing.png"></body></html>`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := New(0, 0, nil)
	result, err := f.Fetch(context.Background(), srv.URL+"/")
	require.NoError(t, err)

	res := result.Resources[srv.URL+"/missing.png"]
	assert.Equal(t, "HTTP 404", res.Err)
	assert.Empty(t, res.Content)
}
