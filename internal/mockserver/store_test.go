package mockserver

import (
	"errors"
	"testing"
	"time"
)

func TestCodeStore_IssueAndCheck(t *testing.T) {
	store := NewCodeStore(time.Minute, time.Minute)

	code, err := store.Issue("Ada@Uni.edu.ng")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if len(code) != codeDigits {
		t.Fatalf("code %q should have %d digits", code, codeDigits)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			t.Fatalf("code %q contains non-digit %q", code, r)
		}
	}

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	if store.Check("ada@uni.edu.ng", wrong) {
		t.Error("wrong code should not match")
	}
	if !store.Check(" ada@uni.edu.ng ", code) {
		t.Error("issued code should match, ignoring case and spaces in the address")
	}
	if store.Check("ada@uni.edu.ng", code) {
		t.Error("a code should only be usable once")
	}
}

func TestCodeStore_StoresHashes(t *testing.T) {
	store := NewCodeStore(time.Minute, time.Minute)
	code, err := store.Issue("ada@uni.edu.ng")
	if err != nil {
		t.Fatal(err)
	}

	v, found := store.codes.Get("ada@uni.edu.ng")
	if !found {
		t.Fatal("code should be stored")
	}
	if string(v.([]byte)) == code {
		t.Error("code must not be stored in clear text")
	}
}

func TestCodeStore_Cooldown(t *testing.T) {
	store := NewCodeStore(time.Minute, time.Hour)

	if _, err := store.Issue("ada@uni.edu.ng"); err != nil {
		t.Fatal(err)
	}
	_, err := store.Issue("ada@uni.edu.ng")

	var cooldown *CooldownError
	if !errors.As(err, &cooldown) {
		t.Fatalf("second Issue() error = %v, want *CooldownError", err)
	}
	if cooldown.Wait <= 0 || cooldown.Wait > time.Hour {
		t.Errorf("Wait = %v, want within the cooldown", cooldown.Wait)
	}

	if _, err := store.Issue("other@uni.edu.ng"); err != nil {
		t.Errorf("cooldown should be per address, got %v", err)
	}
}

func TestCodeStore_Expiry(t *testing.T) {
	store := NewCodeStore(20*time.Millisecond, time.Millisecond)

	code, err := store.Issue("ada@uni.edu.ng")
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(50 * time.Millisecond)

	if store.Check("ada@uni.edu.ng", code) {
		t.Error("expired code should not match")
	}
}
