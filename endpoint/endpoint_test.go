// Copyright 2026 The moya Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package endpoint

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		e, err := New("http://test", "", nil)
		require.NoError(t, err)
		assert.Equal(t, "http://test", e.URL)
		assert.Equal(t, "GET", e.Method)
		require.NotNil(t, e.Sample)
		s := e.Sample()
		assert.Equal(t, 200, s.StatusCode)
		assert.Nil(t, s.Data)
		assert.NoError(t, s.Err)
	})
	t.Run("invalid method", func(t *testing.T) {
		_, err := New("http://test", "NOT VALID", nil)
		assert.Error(t, err)
	})
	t.Run("invalid URL", func(t *testing.T) {
		_, err := New("http://test\x7f", "GET", nil)
		assert.Error(t, err)
	})
	t.Run("empty port stripped", func(t *testing.T) {
		e, err := New("http://test:/x", "GET", nil)
		require.NoError(t, err)
		assert.Equal(t, "http://test/x", e.URL)
	})
}

func TestJoinURL(t *testing.T) {
	testCases := []struct {
		base, path, expected string
	}{
		{"http://test", "/foo/bar", "http://test/foo/bar"},
		{"http://test/", "/foo/bar", "http://test/foo/bar"},
		{"http://test", "foo/bar", "http://test/foo/bar"},
		{"http://test/", "foo/bar", "http://test/foo/bar"},
		{"http://test", "", "http://test"},
		{"http://test/", "", "http://test/"},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expected, JoinURL(testCase.base, testCase.path),
			"base=%q path=%q", testCase.base, testCase.path)
	}
}

func TestFromTarget(t *testing.T) {
	target := Static{
		URL:    "http://test/",
		Route:  "/foo/bar",
		Verb:   "POST",
		Params: map[string]interface{}{"k": "v"},
		Sample: []byte("sample"),
	}
	e, err := FromTarget(target)
	require.NoError(t, err)
	assert.Equal(t, "http://test/foo/bar", e.URL)
	assert.Equal(t, "POST", e.Method)
	assert.Equal(t, target.Params, e.Parameters)
	s := e.Sample()
	assert.Equal(t, 200, s.StatusCode)
	assert.Equal(t, []byte("sample"), s.Data)
}

func TestSampleFuncs(t *testing.T) {
	t.Run("network response", func(t *testing.T) {
		s := NetworkResponse(418, []byte("teapot"))()
		assert.Equal(t, 418, s.StatusCode)
		assert.Equal(t, []byte("teapot"), s.Data)
		assert.NoError(t, s.Err)
	})
	t.Run("network error", func(t *testing.T) {
		cause := errors.New("reset")
		s := NetworkError(cause)()
		assert.Same(t, cause, s.Err)
	})
}

func TestAddingHeaders(t *testing.T) {
	e, err := New("http://test", "GET", nil)
	require.NoError(t, err)
	e.Header.Set("Accept", "text/plain")

	e2 := e.AddingHeaders(map[string]string{
		"Accept":    "application/json",
		"X-Api-Key": "secret",
	})

	assert.Equal(t, "application/json", e2.Header.Get("Accept"))
	assert.Equal(t, "secret", e2.Header.Get("X-Api-Key"))
	// Receiver untouched.
	assert.Equal(t, "text/plain", e.Header.Get("Accept"))
	assert.Equal(t, "", e.Header.Get("X-Api-Key"))
}

func TestWithBody(t *testing.T) {
	e, err := New("http://test", "PUT", nil)
	require.NoError(t, err)

	t.Run("from string", func(t *testing.T) {
		e2, err := e.WithBody("ham")
		require.NoError(t, err)
		assert.Equal(t, []byte("ham"), e2.Body)
		// Receiver untouched.
		assert.Nil(t, e.Body)
	})
	t.Run("from reader", func(t *testing.T) {
		e2, err := e.WithBody(strings.NewReader("eggs"))
		require.NoError(t, err)
		assert.Equal(t, []byte("eggs"), e2.Body)
	})
	t.Run("bad type", func(t *testing.T) {
		_, err := e.WithBody(42)
		assert.Error(t, err)
	})
}

func TestToRequest(t *testing.T) {
	t.Run("nil context", func(t *testing.T) {
		e, err := New("http://test", "GET", nil)
		require.NoError(t, err)
		_, err = e.ToRequest(nil) //nolint:staticcheck // testing the nil contract
		assert.Error(t, err)
	})
	t.Run("query parameters", func(t *testing.T) {
		e, err := New("http://test/path", "GET", nil)
		require.NoError(t, err)
		e.Parameters = map[string]interface{}{"b": 2, "a": "one"}

		r, err := e.ToRequest(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "a=one&b=2", r.URL.RawQuery)
		assert.Nil(t, r.Body)
	})
	t.Run("json body", func(t *testing.T) {
		e, err := New("http://test/path", "POST", nil)
		require.NoError(t, err)
		e.Parameters = map[string]interface{}{"name": "ham"}

		r, err := e.ToRequest(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NotNil(t, r.Body)
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var v map[string]interface{}
		require.NoError(t, json.Unmarshal(b, &v))
		assert.Equal(t, map[string]interface{}{"name": "ham"}, v)
		assert.Equal(t, int64(len(b)), r.ContentLength)

		// GetBody must replay the same body.
		rc, err := r.GetBody()
		require.NoError(t, err)
		b2, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, b, b2)
	})
	t.Run("raw body", func(t *testing.T) {
		e, err := New("http://test/upload", "POST", nil)
		require.NoError(t, err)
		e, err = e.WithBody("raw payload")
		require.NoError(t, err)
		e.Parameters = map[string]interface{}{"v": 2}

		r, err := e.ToRequest(context.Background())
		require.NoError(t, err)
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, []byte("raw payload"), b)
		assert.Equal(t, int64(len(b)), r.ContentLength)
		// Parameters ride in the query string when a raw body is set,
		// and no Content-Type is assumed.
		assert.Equal(t, "v=2", r.URL.RawQuery)
		assert.Equal(t, "", r.Header.Get("Content-Type"))

		rc, err := r.GetBody()
		require.NoError(t, err)
		b2, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, b, b2)
	})
	t.Run("no parameters no body", func(t *testing.T) {
		e, err := New("http://test", "POST", nil)
		require.NoError(t, err)
		r, err := e.ToRequest(context.Background())
		require.NoError(t, err)
		assert.Nil(t, r.Body)
		assert.Equal(t, "", r.Header.Get("Content-Type"))
	})
	t.Run("does not mutate endpoint URL", func(t *testing.T) {
		e, err := New("http://test/path", "DELETE", nil)
		require.NoError(t, err)
		e.Parameters = map[string]interface{}{"k": "v"}
		_, err = e.ToRequest(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "http://test/path", e.URL)
	})
	t.Run("headers copied", func(t *testing.T) {
		e, err := New("http://test", "GET", nil)
		require.NoError(t, err)
		e.Header.Set("Accept", "text/plain")
		r, err := e.ToRequest(context.Background())
		require.NoError(t, err)
		r.Header.Set("Accept", "application/json")
		assert.Equal(t, "text/plain", e.Header.Get("Accept"))
	})
}
