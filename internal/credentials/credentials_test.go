package credentials

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/prn-tf/hearth/internal/domain"
)

func TestCheckPolicy(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Str0ng-Enough!Pass", false},
		{"minimum length", "Aa1!aaaaaaaa", false},
		{"empty", "", true},
		{"too short", "Aa1!short", true},
		{"no lowercase", "AA1!AAAAAAAAAA", true},
		{"no uppercase", "aa1!aaaaaaaaaa", true},
		{"no digit", "Aaa!aaaaaaaaaa", true},
		{"no symbol", "Aa1aaaaaaaaaaa", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPolicy(tt.password)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckPolicy(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, domain.ErrWeakPassword) {
				t.Errorf("CheckPolicy(%q) error = %v, want %v", tt.password, err, domain.ErrWeakPassword)
			}
		})
	}
}

func TestManager_HashAndVerify(t *testing.T) {
	m := NewManager(bcrypt.MinCost)
	const password = "Str0ng-Enough!Pass"

	hash, err := m.Hash(password)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == password || !strings.HasPrefix(hash, "$2") {
		t.Fatalf("Hash() = %q, want a bcrypt hash", hash)
	}

	ok, err := m.Verify(hash, password)
	if err != nil || !ok {
		t.Errorf("Verify(correct) = %v, %v, want true, nil", ok, err)
	}

	ok, err = m.Verify(hash, "Wr0ng-Password!!")
	if err != nil || ok {
		t.Errorf("Verify(wrong) = %v, %v, want false, nil", ok, err)
	}
}

func TestManager_HashRejectsNonString(t *testing.T) {
	m := NewManager(bcrypt.MinCost)
	for _, value := range []any{12345, true, nil, []string{"x"}} {
		if _, err := m.Hash(value); !errors.Is(err, domain.ErrTypeMismatch) {
			t.Errorf("Hash(%v) error = %v, want %v", value, err, domain.ErrTypeMismatch)
		}
	}
}

func TestManager_HashEnforcesPolicy(t *testing.T) {
	m := NewManager(bcrypt.MinCost)
	if _, err := m.Hash("weak"); !errors.Is(err, domain.ErrWeakPassword) {
		t.Errorf("Hash(weak) error = %v, want %v", err, domain.ErrWeakPassword)
	}
}

func TestManager_VerifyUnsetPassword(t *testing.T) {
	m := NewManager(bcrypt.MinCost)
	if _, err := m.Verify("", "anything"); !errors.Is(err, domain.ErrPasswordUnset) {
		t.Errorf("Verify(unset) error = %v, want %v", err, domain.ErrPasswordUnset)
	}
}

func TestNewManager_CostFallback(t *testing.T) {
	for _, cost := range []int{-1, 0, bcrypt.MaxCost + 1} {
		m := NewManager(cost)
		if m.cost != bcrypt.DefaultCost {
			t.Errorf("NewManager(%d).cost = %d, want %d", cost, m.cost, bcrypt.DefaultCost)
		}
	}
}
