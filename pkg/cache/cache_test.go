package cache

import (
	"testing"

	"github.com/Jomachado2002/bluetec2-sub000/pkg/resolve"
)

func TestRequestKey_Stable(t *testing.T) {
	req := resolve.NewRequest()
	req.BrandName = []string{"Dell"}
	req.Specifications["memory"] = []string{"16GB"}
	req.Specifications["processor"] = []string{"i5"}

	a, err := RequestKey("filter", req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	b, _ := RequestKey("filter", req)
	if a != b {
		t.Errorf("Expected stable key but got %s and %s", a, b)
	}
}

func TestRequestKey_DistinguishesRequests(t *testing.T) {
	a, _ := RequestKey("filter", resolve.NewRequest())

	req := resolve.NewRequest()
	req.BrandName = []string{"HP"}
	b, _ := RequestKey("filter", req)

	if a == b {
		t.Error("Expected different requests to hash differently")
	}
}
