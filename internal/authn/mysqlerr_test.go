package authn

import (
	"errors"
	"testing"

	mysqlerr "github.com/go-sql-driver/mysql"
)

func TestIsDuplicateKey_MatchesNumber1062(t *testing.T) {
	err := &mysqlerr.MySQLError{Number: 1062, Message: "Duplicate entry"}
	if !isDuplicateKey(err) {
		t.Fatalf("isDuplicateKey() = false, want true for error 1062")
	}
}

func TestIsDuplicateKey_IgnoresOtherMySQLErrors(t *testing.T) {
	err := &mysqlerr.MySQLError{Number: 1045, Message: "Access denied"}
	if isDuplicateKey(err) {
		t.Fatalf("isDuplicateKey() = true, want false for error 1045")
	}
}

func TestIsDuplicateKey_IgnoresNonMySQLErrors(t *testing.T) {
	if isDuplicateKey(errors.New("boom")) {
		t.Fatalf("isDuplicateKey() = true, want false for a non-MySQL error")
	}
}
