package services

import (
	"context"
	"errors"
	"sync"

	"github.com/comla/comla/internal/app/models"
	"github.com/comla/comla/internal/app/models/dto"
	"github.com/comla/comla/internal/app/repositories"
)

// fakeUserStore is an in-memory UserStore for service tests.
type fakeUserStore struct {
	mu     sync.Mutex
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]*models.User{}, nextID: 1}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *models.User) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return 0, repositories.ErrEmailTaken
		}
	}
	id := f.nextID
	f.nextID++
	stored := *user
	stored.ID = id
	f.users[id] = &stored
	return id, nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserStore) UpdateFavorites(_ context.Context, userID int64, favorites []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Favorites = favorites
	return nil
}

// fakeCollegeStore is an in-memory CollegeStore. Setting failing makes every
// method return an error, simulating a database outage.
type fakeCollegeStore struct {
	mu       sync.Mutex
	colleges map[int64]*models.College
	nextID   int64
	failing  bool
}

func newFakeCollegeStore(colleges ...models.College) *fakeCollegeStore {
	f := &fakeCollegeStore{colleges: map[int64]*models.College{}, nextID: 1}
	for _, c := range colleges {
		stored := c
		if stored.ID == 0 {
			stored.ID = f.nextID
		}
		f.colleges[stored.ID] = &stored
		f.nextID = stored.ID + 1
	}
	return f
}

var errStoreDown = errors.New("store down")

func (f *fakeCollegeStore) GetAllColleges(_ context.Context) ([]models.College, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, errStoreDown
	}
	out := make([]models.College, 0, len(f.colleges))
	for id := int64(1); id < f.nextID; id++ {
		if c, ok := f.colleges[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCollegeStore) GetCollegeByID(_ context.Context, id int64) (*models.College, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, errStoreDown
	}
	c, ok := f.colleges[id]
	if !ok {
		return nil, repositories.ErrCollegeNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCollegeStore) SearchColleges(ctx context.Context, _ dto.SearchParams, offset uint64, limit int) ([]models.College, int64, error) {
	all, err := f.GetAllColleges(ctx)
	if err != nil {
		return nil, 0, err
	}
	total := int64(len(all))
	start := int(offset)
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (f *fakeCollegeStore) CreateCollege(_ context.Context, college *models.College) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return 0, errStoreDown
	}
	for _, c := range f.colleges {
		if c.Name == college.Name {
			return 0, repositories.ErrCollegeAlreadyExists
		}
	}
	id := f.nextID
	f.nextID++
	stored := *college
	stored.ID = id
	f.colleges[id] = &stored
	return id, nil
}

func (f *fakeCollegeStore) UpdateCollege(_ context.Context, college *models.College) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.colleges[college.ID]; !ok {
		return repositories.ErrCollegeNotFound
	}
	stored := *college
	f.colleges[college.ID] = &stored
	return nil
}

func (f *fakeCollegeStore) DeleteCollege(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.colleges[id]; !ok {
		return repositories.ErrCollegeNotFound
	}
	delete(f.colleges, id)
	return nil
}

// fakeApplicationStore is an in-memory ApplicationStore enforcing the
// one-application-per-college rule.
type fakeApplicationStore struct {
	mu     sync.Mutex
	apps   map[int64]*models.Application
	nextID int64
}

func newFakeApplicationStore() *fakeApplicationStore {
	return &fakeApplicationStore{apps: map[int64]*models.Application{}, nextID: 1}
}

func (f *fakeApplicationStore) CreateApplication(_ context.Context, app *models.Application) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.apps {
		if a.StudentID == app.StudentID && a.CollegeID == app.CollegeID {
			return 0, repositories.ErrApplicationExists
		}
	}
	id := f.nextID
	f.nextID++
	stored := *app
	stored.ID = id
	f.apps[id] = &stored
	return id, nil
}

func (f *fakeApplicationStore) GetApplicationByID(_ context.Context, id int64) (*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.apps[id]
	if !ok {
		return nil, repositories.ErrApplicationNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeApplicationStore) GetApplicationsByStudent(_ context.Context, studentID int64) ([]models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Application{}
	for _, a := range f.apps {
		if a.StudentID == studentID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeApplicationStore) GetApplicationsByCollege(_ context.Context, collegeID int64) ([]models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Application{}
	for _, a := range f.apps {
		if a.CollegeID == collegeID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeApplicationStore) UpdateStatus(_ context.Context, id int64, status models.ApplicationStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.apps[id]
	if !ok {
		return repositories.ErrApplicationNotFound
	}
	a.Status = status
	return nil
}

func (f *fakeApplicationStore) DeleteApplication(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.apps[id]; !ok {
		return repositories.ErrApplicationNotFound
	}
	delete(f.apps, id)
	return nil
}

// fakeEmailService records sent mail and can be set to fail.
type fakeEmailService struct {
	mu          sync.Mutex
	welcomes    []string
	statusMails []string
	fail        bool
}

func (f *fakeEmailService) SendWelcomeEmail(toEmail, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("smtp down")
	}
	f.welcomes = append(f.welcomes, toEmail)
	return nil
}

func (f *fakeEmailService) SendApplicationStatusEmail(toEmail, _, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("smtp down")
	}
	f.statusMails = append(f.statusMails, toEmail)
	return nil
}

// fakeSnapshot is an in-memory CollegeSnapshot.
type fakeSnapshot struct {
	mu       sync.Mutex
	colleges []models.College
	stored   bool
}

func (f *fakeSnapshot) Store(_ context.Context, colleges []models.College) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.colleges = colleges
	f.stored = true
}

func (f *fakeSnapshot) Load(_ context.Context) ([]models.College, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.stored {
		return nil, false
	}
	return f.colleges, true
}
