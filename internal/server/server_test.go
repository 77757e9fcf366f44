package server_test

import (
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/backoffice/internal/config"
	"github.com/JaimeStill/backoffice/internal/server"
	"github.com/JaimeStill/backoffice/pkg/lifecycle"
)

func serverConfig(port int) *config.ServerConfig {
	return &config.ServerConfig{
		Host:            "localhost",
		Port:            port,
		ReadTimeout:     "5s",
		WriteTimeout:    "5s",
		ShutdownTimeout: "5s",
	}
}

func TestServer_StartAndShutdown(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("backoffice"))
	})

	lc := lifecycle.New()
	sys := server.New(serverConfig(0), handler, slog.New(slog.DiscardHandler))
	if err := sys.Start(lc); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if strings.HasSuffix(sys.Addr(), ":0") {
		t.Fatalf("Addr() = %q, want bound port", sys.Addr())
	}

	url := "http://" + sys.Addr() + "/"
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s error = %v", url, err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "backoffice" {
		t.Errorf("body = %q", body)
	}

	if err := lc.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if _, err := http.Get(url); err == nil {
		t.Error("server still answering after shutdown")
	}
}

func TestServer_StartPortInUse(t *testing.T) {
	l, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer l.Close()

	port := l.Addr().(*net.TCPAddr).Port
	sys := server.New(serverConfig(port), http.NotFoundHandler(), slog.New(slog.DiscardHandler))
	if err := sys.Start(lifecycle.New()); err == nil {
		t.Fatal("Start() error = nil, want listen error")
	}
}
