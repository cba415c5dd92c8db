package auth

import (
	"context"
	"errors"
	"testing"

	"rently/internal/shared/config"
	"rently/internal/users"
)

type fakeAuthRepo struct {
	Repository
	emailExists bool
	bankInUse   bool
	created     *users.User
}

func (f *fakeAuthRepo) EmailExists(context.Context, string) (bool, error) {
	return f.emailExists, nil
}

func (f *fakeAuthRepo) BankAccountNumberExists(context.Context, string) (bool, error) {
	return f.bankInUse, nil
}

func (f *fakeAuthRepo) CreateUser(_ context.Context, user *users.User) error {
	f.created = user
	return nil
}

func registerRequest() *RegisterRequest {
	return &RegisterRequest{
		Name:              "Aina Binti Hassan",
		Email:             "aina@student.test",
		PhoneNumber:       "+60123400002",
		Password:          "password123",
		Category:          "STUDENT",
		BankName:          "Maybank",
		BankAccountNumber: "157023456789",
	}
}

func TestRegisterRejectsDuplicateBankAccount(t *testing.T) {
	repo := &fakeAuthRepo{bankInUse: true}
	service := NewService(repo, &config.Config{})

	_, err := service.Register(context.Background(), registerRequest())
	if !errors.Is(err, ErrBankAccountInUse) {
		t.Fatalf("expected ErrBankAccountInUse, got %v", err)
	}
	if repo.created != nil {
		t.Fatalf("user was created despite bank account conflict")
	}
}

func TestRegisterStoresBankDetails(t *testing.T) {
	repo := &fakeAuthRepo{}
	service := NewService(repo, &config.Config{})

	resp, err := service.Register(context.Background(), registerRequest())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if repo.created == nil {
		t.Fatal("expected user to be created")
	}
	if repo.created.BankName != "Maybank" || repo.created.BankAccountNumber != "157023456789" {
		t.Fatalf("expected bank details on user, got %q / %q", repo.created.BankName, repo.created.BankAccountNumber)
	}
	if resp.User.BankAccountNumber != "157023456789" {
		t.Fatalf("expected bank account number in response, got %q", resp.User.BankAccountNumber)
	}
}
