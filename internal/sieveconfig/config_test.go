package sieveconfig

import (
	"os"
	"testing"

	"github.com/oisee/simdprime/internal/smallprime"
)

func TestValidateDefaultsPass(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("Validate() on default config: %v", err)
	}
}

func TestDefaultTableSizeIsLargest(t *testing.T) {
	if DefaultTableSize() != smallprime.L {
		t.Fatalf("DefaultTableSize() = %v, want L", DefaultTableSize())
	}
}

func TestTableSizeFromEnvUnsetFallsBackToDefault(t *testing.T) {
	os.Unsetenv("PRIMES")
	sz, err := TableSizeFromEnv()
	if err != nil {
		t.Fatalf("TableSizeFromEnv: %v", err)
	}
	if sz != DefaultTableSize() {
		t.Fatalf("got %v, want default %v", sz, DefaultTableSize())
	}
}

func TestTableSizeFromEnvValidValue(t *testing.T) {
	t.Setenv("PRIMES", "576")
	sz, err := TableSizeFromEnv()
	if err != nil {
		t.Fatalf("TableSizeFromEnv: %v", err)
	}
	if sz != smallprime.S {
		t.Fatalf("got %v, want S", sz)
	}
}

func TestTableSizeFromEnvRejectsUnsupportedValue(t *testing.T) {
	t.Setenv("PRIMES", "1024")
	if _, err := TableSizeFromEnv(); err == nil {
		t.Fatal("expected error for unsupported PRIMES value")
	}
}

func TestTableSizeFromEnvRejectsGarbage(t *testing.T) {
	t.Setenv("PRIMES", "not-a-number")
	if _, err := TableSizeFromEnv(); err == nil {
		t.Fatal("expected error for non-numeric PRIMES value")
	}
}

func TestModeEnabled(t *testing.T) {
	if !ModeEnabled("plain") || !ModeEnabled("twin") || !ModeEnabled("safe") {
		t.Fatal("expected all three default modes enabled")
	}
	if ModeEnabled("fips186") {
		t.Fatal("fips186 is scaffolded but not a wired search mode")
	}
}
