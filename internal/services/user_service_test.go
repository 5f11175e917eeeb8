package services

import (
	"testing"
	"time"

	"fintrack/internal/testutil"
)

func TestCreateUser(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("alice@example.com", "secret123", "Alice", "Smith")
		testutil.AssertNoError(t, err)

		if user.ID == 0 {
			t.Fatal("expected non-zero user ID")
		}
		if user.Email != "alice@example.com" {
			t.Errorf("expected email alice@example.com, got %s", user.Email)
		}
		if user.Password == "secret123" {
			t.Error("expected password to be hashed")
		}
		if !user.IsActive {
			t.Error("expected new user to be active")
		}
	})

	t.Run("lowercases_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("Bob@Example.COM", "secret123", "", "")
		testutil.AssertNoError(t, err)

		if user.Email != "bob@example.com" {
			t.Errorf("expected lowercased email, got %s", user.Email)
		}
	})

	t.Run("duplicate_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("carol@example.com", "secret123", "", "")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser("Carol@example.com", "other456", "", "")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("missing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("", "secret123", "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateUser("dave@example.com", "", "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestVerifyPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)

	user, err := svc.CreateUser("eve@example.com", "correct-horse", "", "")
	testutil.AssertNoError(t, err)

	if !svc.VerifyPassword(user, "correct-horse") {
		t.Error("expected correct password to verify")
	}
	if svc.VerifyPassword(user, "wrong-battery") {
		t.Error("expected wrong password to fail")
	}
}

func TestRecordLogin(t *testing.T) {
	t.Run("stamps_last_login", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db)

		if user.LastLoginAt != nil {
			t.Fatal("expected a fresh user to have no login time")
		}

		testutil.AssertNoError(t, svc.RecordLogin(user.ID))

		reloaded, err := svc.GetUserByID(user.ID)
		testutil.AssertNoError(t, err)
		if reloaded.LastLoginAt == nil {
			t.Fatal("expected last login time to be set")
		}
		if time.Since(*reloaded.LastLoginAt) > time.Minute {
			t.Errorf("expected a recent login time, got %v", *reloaded.LastLoginAt)
		}
	})

	t.Run("unknown_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		err := svc.RecordLogin(9999)
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestUpdatePassword(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("frank@example.com", "old-pass", "", "")
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.UpdatePassword(user.ID, "new-pass"))

		updated, err := svc.GetUserByID(user.ID)
		testutil.AssertNoError(t, err)

		if !svc.VerifyPassword(updated, "new-pass") {
			t.Error("expected new password to verify")
		}
		if svc.VerifyPassword(updated, "old-pass") {
			t.Error("expected old password to stop working")
		}
	})

	t.Run("unknown_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		err := svc.UpdatePassword(9999, "whatever")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})

	t.Run("empty_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		err := svc.UpdatePassword(1, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetUserByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		created, err := svc.CreateUser("grace@example.com", "secret123", "", "")
		testutil.AssertNoError(t, err)

		got, err := svc.GetUserByEmail("GRACE@example.com")
		testutil.AssertNoError(t, err)

		if got.ID != created.ID {
			t.Errorf("expected user %d, got %d", created.ID, got.ID)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.GetUserByEmail("nobody@example.com")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}
