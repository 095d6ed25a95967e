package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/crucial707/timetrack/internal/models"
	"github.com/crucial707/timetrack/internal/repo"
)

// In-memory stores mirroring the Postgres repos closely enough for service
// tests: same sentinel errors, same scoping rules.

type memUsers struct {
	next  int
	users map[int]*models.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[int]*models.User{}}
}

func (m *memUsers) UsernameTaken(_ context.Context, v string) (bool, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Username, v) || strings.EqualFold(u.Email, v) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) Create(ctx context.Context, username, email, hash string) (*models.User, error) {
	if taken, _ := m.UsernameTaken(ctx, username); taken {
		return nil, repo.ErrDuplicate
	}
	m.next++
	u := &models.User{ID: m.next, Username: username, Email: email, PasswordHash: hash, IsActive: true, CreatedAt: time.Now()}
	m.users[u.ID] = u
	return u, nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Username, username) {
			c := *u
			return &c, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memUsers) GetByID(_ context.Context, id int) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	c := *u
	return &c, nil
}

type memProjects struct {
	next     int
	projects map[int]*models.Project
}

func newMemProjects() *memProjects {
	return &memProjects{projects: map[int]*models.Project{}}
}

func (m *memProjects) add(title string, deleted bool) *models.Project {
	m.next++
	p := &models.Project{ID: m.next, Title: title, IsDeleted: deleted, IsActive: true}
	m.projects[p.ID] = p
	return p
}

func (m *memProjects) List(context.Context) ([]models.Project, error) {
	out := make([]models.Project, 0)
	for _, p := range m.projects {
		if !p.IsDeleted {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memProjects) Create(ctx context.Context, title string) (*models.Project, error) {
	if taken, _ := m.TitleTaken(ctx, title, 0); taken {
		return nil, repo.ErrDuplicate
	}
	p := m.add(title, false)
	c := *p
	return &c, nil
}

func (m *memProjects) GetByID(_ context.Context, id int) (*models.Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (m *memProjects) Exists(_ context.Context, id int) (bool, error) {
	_, ok := m.projects[id]
	return ok, nil
}

func (m *memProjects) TitleTaken(_ context.Context, title string, excludeID int) (bool, error) {
	for _, p := range m.projects {
		if p.Title == title && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memProjects) Update(_ context.Context, id int, u repo.ProjectUpdate) (*models.Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.IsActive != nil {
		p.IsActive = *u.IsActive
	}
	c := *p
	return &c, nil
}

func (m *memProjects) SoftDelete(_ context.Context, id int) error {
	p, ok := m.projects[id]
	if !ok {
		return repo.ErrNotFound
	}
	p.IsDeleted = true
	return nil
}

type memEntries struct {
	next     int
	entries  map[int]*models.TimeEntry
	projects *memProjects
}

func newMemEntries(projects *memProjects) *memEntries {
	return &memEntries{entries: map[int]*models.TimeEntry{}, projects: projects}
}

func (m *memEntries) withTitle(e models.TimeEntry) *models.TimeEntry {
	if p, ok := m.projects.projects[e.ProjectID]; ok {
		e.ProjectTitle = p.Title
	}
	return &e
}

func (m *memEntries) Create(_ context.Context, e models.TimeEntry) (*models.TimeEntry, error) {
	if _, ok := m.projects.projects[e.ProjectID]; !ok {
		return nil, repo.ErrForeignKey
	}
	m.next++
	e.ID = m.next
	e.IsActive = true
	m.entries[e.ID] = &e
	return m.withTitle(e), nil
}

func (m *memEntries) GetForUser(_ context.Context, userID, id int) (*models.TimeEntry, error) {
	e, ok := m.entries[id]
	if !ok || e.UserID != userID {
		return nil, repo.ErrNotFound
	}
	return m.withTitle(*e), nil
}

func (m *memEntries) ListForUser(_ context.Context, userID int, f models.TimeEntryFilter) ([]models.TimeEntry, error) {
	day := func(t time.Time) string { return t.UTC().Format("2006-01-02") }
	out := make([]models.TimeEntry, 0)
	for _, e := range m.entries {
		if e.UserID != userID {
			continue
		}
		if f.StartDate != nil && day(e.DateWorked) < day(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && day(e.DateWorked) > day(*f.EndDate) {
			continue
		}
		if f.ProjectID != nil && e.ProjectID != *f.ProjectID {
			continue
		}
		out = append(out, *m.withTitle(*e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memEntries) UpdateForUser(_ context.Context, userID, id int, u repo.TimeEntryUpdate) (*models.TimeEntry, error) {
	e, ok := m.entries[id]
	if !ok || e.UserID != userID {
		return nil, repo.ErrNotFound
	}
	if u.ProjectID != nil {
		if _, ok := m.projects.projects[*u.ProjectID]; !ok {
			return nil, repo.ErrForeignKey
		}
		e.ProjectID = *u.ProjectID
	}
	if u.DateWorked != nil {
		e.DateWorked = *u.DateWorked
	}
	if u.WorkDescription != nil {
		e.WorkDescription = *u.WorkDescription
	}
	if u.Hours != nil {
		e.Hours = *u.Hours
	}
	return m.withTitle(*e), nil
}

func (m *memEntries) DeleteForUser(_ context.Context, userID, id int) error {
	e, ok := m.entries[id]
	if !ok || e.UserID != userID {
		return repo.ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

func ptr[T any](v T) *T { return &v }
