package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// Nothing listens on port 1, so connections are refused right away.
const (
	refusedRedis = "redis://127.0.0.1:1/0"
	refusedMongo = "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=50&connectTimeoutMS=50"
)

func shortRetries(t *testing.T) {
	t.Helper()
	d := retryDelay
	retryDelay = time.Millisecond
	t.Cleanup(func() { retryDelay = d })
}

func TestNewRedisCache_BadURL(t *testing.T) {
	tests := []string{"", "http://localhost:6379", "redis://localhost:6379/notadb"}
	for _, url := range tests {
		t.Run(url, func(t *testing.T) {
			c, err := NewRedisCache(context.Background(), url)
			if err == nil {
				c.Close()
				t.Fatal("NewRedisCache() should fail")
			}
			if !strings.Contains(err.Error(), "parse redis url") {
				t.Errorf("error = %v, want parse failure", err)
			}
		})
	}
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	shortRetries(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := NewRedisCache(ctx, refusedRedis)
	if err == nil {
		c.Close()
		t.Fatal("NewRedisCache() should fail without a server")
	}
	if !errors.Is(err, ErrUnavailable) && !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
}

func TestNewMongoCache_BadURI(t *testing.T) {
	c, err := NewMongoCache(context.Background(), "postgres://localhost", "", "")
	if err == nil {
		c.Close()
		t.Fatal("NewMongoCache() should fail")
	}
	if !strings.Contains(err.Error(), "connect mongo") {
		t.Errorf("error = %v, want connect failure", err)
	}
}

func TestNewMongoCache_Unreachable(t *testing.T) {
	shortRetries(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := NewMongoCache(ctx, refusedMongo, "", "")
	if err == nil {
		c.Close()
		t.Fatal("NewMongoCache() should fail without a server")
	}
	if !errors.Is(err, ErrUnavailable) && !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
}

func TestOpen_RemoteErrors(t *testing.T) {
	shortRetries(t)
	tests := []struct {
		name string
		cfg  Config
	}{
		{"redis bad url", Config{Backend: BackendRedis, URL: "tcp://nowhere"}},
		{"redis unreachable", Config{Backend: BackendRedis, URL: refusedRedis}},
		{"mongo bad uri", Config{Backend: BackendMongo, URL: "nowhere"}},
		{"mongo unreachable", Config{Backend: BackendMongo, URL: refusedMongo, Database: "db", Collection: "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			c, err := Open(ctx, tt.cfg)
			if err == nil {
				c.Close()
				t.Fatal("Open() should fail")
			}
			if c != nil {
				t.Errorf("Open() = %v, want nil cache on error", c)
			}
		})
	}
}
