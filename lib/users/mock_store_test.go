package usershandler

import (
	usersstore "attachment-portal-backend/lib/users/store"
	"attachment-portal-backend/models"
	dbmodels "attachment-portal-backend/models/db"
	"fmt"
	"slices"
	"strings"
	"time"

	"gorm.io/gorm"
)

type fakeUsersStore struct {
	users   map[string]dbmodels.User
	seq     int
	reviews map[string]bool
}

func newFakeUsersStore(users ...dbmodels.User) *fakeUsersStore {
	store := &fakeUsersStore{users: map[string]dbmodels.User{}, reviews: map[string]bool{}}
	for _, user := range users {
		store.users[user.ID] = user
	}
	return store
}

func (f *fakeUsersStore) Create(rec dbmodels.User) (string, error) {
	f.seq++
	rec.ID = fmt.Sprintf("user-%d", f.seq)
	rec.Email = usersstore.NormalizeEmail(rec.Email)
	f.users[rec.ID] = rec
	return rec.ID, nil
}

func (f *fakeUsersStore) Update(userID string, updMap map[string]interface{}) error {
	rec, ok := f.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for key, value := range updMap {
		switch key {
		case "role":
			rec.Role = value.(models.UserRole)
		case "department":
			rec.Department = value.(string)
		case "subdepartment":
			rec.Subdepartment = value.(string)
		case "first_name":
			rec.FirstName = value.(string)
		case "last_name":
			rec.LastName = value.(string)
		case "phone_number":
			rec.PhoneNumber = value.(string)
		case "institution":
			rec.Institution = value.(string)
		case "course":
			rec.Course = value.(string)
		case "year_of_study":
			rec.YearOfStudy = value.(int)
		case "is_active":
			rec.IsActive = value.(bool)
		case "password":
			rec.Password = value.(string)
		default:
			return fmt.Errorf("unexpected column %v", key)
		}
	}
	f.users[userID] = rec
	return nil
}

func (f *fakeUsersStore) Delete(userID string) error {
	if _, ok := f.users[userID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if f.reviews[userID] {
		return gorm.ErrForeignKeyViolated
	}
	delete(f.users, userID)
	return nil
}

func (f *fakeUsersStore) GetByID(userID string) (*dbmodels.User, error) {
	rec, ok := f.users[userID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeUsersStore) FindByEmail(email string) (*dbmodels.User, error) {
	for _, rec := range f.users {
		if rec.Email == usersstore.NormalizeEmail(email) {
			return &rec, nil
		}
	}
	return nil, nil
}

func (f *fakeUsersStore) ExistByEmail(email string) (bool, error) {
	rec, err := f.FindByEmail(email)
	return rec != nil, err
}

func (f *fakeUsersStore) GetByResetCode(code string) (*dbmodels.User, error) {
	for _, rec := range f.users {
		if rec.ResetCode != "" && rec.ResetCode == code {
			return &rec, nil
		}
	}
	return nil, nil
}

func (f *fakeUsersStore) List(filter dbmodels.UserFilter) ([]dbmodels.User, int64, error) {
	list := []dbmodels.User{}
	for _, rec := range f.users {
		if len(filter.Roles) != 0 && !slices.Contains(filter.Roles, rec.Role) {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(rec.GetFullName()), strings.ToLower(filter.Search)) {
			continue
		}
		list = append(list, rec)
	}
	slices.SortFunc(list, func(a, b dbmodels.User) int {
		return strings.Compare(a.ID, b.ID)
	})
	return list, int64(len(list)), nil
}

func (f *fakeUsersStore) ListByScope(role models.UserRole, department, subdepartment string) ([]dbmodels.User, error) {
	list := []dbmodels.User{}
	for _, rec := range f.users {
		if rec.Role == role && rec.Department == department && rec.Subdepartment == subdepartment && rec.IsActive {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (f *fakeUsersStore) ClearExpiredResetCodes(now time.Time) (int64, error) {
	var count int64
	for id, rec := range f.users {
		if rec.ResetCode != "" && rec.ResetCodeUntil != nil && rec.ResetCodeUntil.Before(now) {
			rec.ResetCode = ""
			rec.ResetCodeUntil = nil
			f.users[id] = rec
			count++
		}
	}
	return count, nil
}
