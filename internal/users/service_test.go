package users

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type fakeUserRepo struct {
	Repository
	byID map[uuid.UUID]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[uuid.UUID]*User{}}
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	snapshot := *user
	return &snapshot, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *User) error {
	snapshot := *user
	f.byID[user.ID] = &snapshot
	return nil
}

func (f *fakeUserRepo) BankAccountNumberExists(_ context.Context, number string, excludeID uuid.UUID) (bool, error) {
	for id, user := range f.byID {
		if id != excludeID && user.BankAccountNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func strptr(s string) *string { return &s }

func TestUpdateProfileSetsBankDetails(t *testing.T) {
	repo := newFakeUserRepo()
	owner := &User{
		ID:          uuid.New(),
		Name:        "Aina Binti Hassan",
		Email:       "aina@student.test",
		PhoneNumber: "+60123400002",
		Category:    CategoryStudent,
		Status:      StatusActive,
	}
	repo.byID[owner.ID] = owner
	service := NewService(repo)

	resp, err := service.UpdateProfile(context.Background(), owner.ID, &UpdateProfileRequest{
		BankName:          strptr("Maybank"),
		BankAccountNumber: strptr("157023456789"),
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if resp.BankName != "Maybank" || resp.BankAccountNumber != "157023456789" {
		t.Fatalf("expected bank details in response, got %q / %q", resp.BankName, resp.BankAccountNumber)
	}

	stored := repo.byID[owner.ID]
	if stored.BankName != "Maybank" || stored.BankAccountNumber != "157023456789" {
		t.Fatalf("expected bank details persisted, got %q / %q", stored.BankName, stored.BankAccountNumber)
	}
	if stored.Name != "Aina Binti Hassan" {
		t.Fatalf("unrelated field changed: %q", stored.Name)
	}
}

func TestUpdateProfileRejectsDuplicateBankAccount(t *testing.T) {
	repo := newFakeUserRepo()
	other := &User{ID: uuid.New(), BankAccountNumber: "157023456789"}
	owner := &User{ID: uuid.New(), Name: "Rahim Bin Abdullah"}
	repo.byID[other.ID] = other
	repo.byID[owner.ID] = owner
	service := NewService(repo)

	_, err := service.UpdateProfile(context.Background(), owner.ID, &UpdateProfileRequest{
		BankAccountNumber: strptr("157023456789"),
	})
	if !errors.Is(err, ErrBankAccountInUse) {
		t.Fatalf("expected ErrBankAccountInUse, got %v", err)
	}
	if repo.byID[owner.ID].BankAccountNumber != "" {
		t.Fatalf("bank account number was persisted despite conflict")
	}
}

func TestUpdateProfileKeepsOwnBankAccount(t *testing.T) {
	repo := newFakeUserRepo()
	owner := &User{ID: uuid.New(), BankName: "Maybank", BankAccountNumber: "157023456789"}
	repo.byID[owner.ID] = owner
	service := NewService(repo)

	// Re-submitting the same number must not conflict with itself.
	resp, err := service.UpdateProfile(context.Background(), owner.ID, &UpdateProfileRequest{
		BankAccountNumber: strptr("157023456789"),
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if resp.BankAccountNumber != "157023456789" {
		t.Fatalf("expected bank account number kept, got %q", resp.BankAccountNumber)
	}
}
