package main

import (
	"testing"

	"go.uber.org/fx"
)

func TestAppGraph(t *testing.T) {
	if err := fx.ValidateApp(append(options(), fx.NopLogger)...); err != nil {
		t.Fatalf("fx.ValidateApp() error = %v", err)
	}
}
