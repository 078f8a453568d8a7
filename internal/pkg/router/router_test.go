package router

import (
	"testing"
)

func TestRouteInstallersImplementRouter(t *testing.T) {
	var routers = []Router{
		NewHttpRouter(),
		NewApiRouter(),
	}
	if len(routers) != 2 {
		t.Fatalf("expected 2 route installers, got %d", len(routers))
	}
}
