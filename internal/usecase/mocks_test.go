package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"talent-match/internal/domain/employee"
	"talent-match/internal/domain/project"
	"talent-match/internal/domain/skill"
	"talent-match/internal/repository"

	"github.com/google/uuid"
)

type mockEmployeeRepo struct {
	mu        sync.Mutex
	byID      map[uuid.UUID]employee.Employee
	createErr error
	getErr    error
}

func newMockEmployeeRepo(items ...employee.Employee) *mockEmployeeRepo {
	m := &mockEmployeeRepo{byID: map[uuid.UUID]employee.Employee{}}
	for _, e := range items {
		m.byID[e.ID] = e
	}
	return m
}

func (m *mockEmployeeRepo) CreateEmployee(_ context.Context, e employee.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.byID[e.ID] = e
	return nil
}

func (m *mockEmployeeRepo) GetEmployeeByID(_ context.Context, id uuid.UUID) (employee.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return employee.Employee{}, m.getErr
	}
	e, ok := m.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrNotFound
	}
	return e, nil
}

func (m *mockEmployeeRepo) GetEmployeeByEmail(_ context.Context, email string) (employee.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.byID {
		if e.Email == email {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrNotFound
}

func (m *mockEmployeeRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetEmployeeByEmail(ctx, email)
	return err == nil, nil
}

func (m *mockEmployeeRepo) UpdateEmployee(_ context.Context, e employee.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[e.ID] = e
	return nil
}

type mockSkillRepo struct {
	items     []skill.Skill
	err       error
	createErr error
}

func (m *mockSkillRepo) GetAllSkills(context.Context) ([]skill.Skill, error) {
	return m.items, m.err
}

func (m *mockSkillRepo) CreateSkill(_ context.Context, name, category string) (skill.Skill, error) {
	if m.createErr != nil {
		return skill.Skill{}, m.createErr
	}
	s := skill.Skill{ID: uuid.New(), Name: name, Category: strings.TrimSpace(category)}
	m.items = append(m.items, s)
	return s, nil
}

func (m *mockSkillRepo) SkillExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	for _, s := range m.items {
		if s.ID == id {
			return true, nil
		}
	}
	return false, nil
}

type mockEmployeeSkillRepo struct {
	items map[uuid.UUID]skill.EmployeeSkill
	err   error
}

func newMockEmployeeSkillRepo() *mockEmployeeSkillRepo {
	return &mockEmployeeSkillRepo{items: map[uuid.UUID]skill.EmployeeSkill{}}
}

func (m *mockEmployeeSkillRepo) FindByEmployeeID(_ context.Context, employeeID uuid.UUID) ([]skill.EmployeeSkill, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]skill.EmployeeSkill, 0)
	for _, es := range m.items {
		if es.EmployeeID == employeeID {
			out = append(out, es)
		}
	}
	return out, nil
}

func (m *mockEmployeeSkillRepo) Create(_ context.Context, es skill.EmployeeSkill) (skill.EmployeeSkill, error) {
	if m.err != nil {
		return skill.EmployeeSkill{}, m.err
	}
	for _, existing := range m.items {
		if existing.EmployeeID == es.EmployeeID && existing.SkillID == es.SkillID {
			return skill.EmployeeSkill{}, repository.ErrEmployeeSkillExists
		}
	}
	m.items[es.ID] = es
	return es, nil
}

func (m *mockEmployeeSkillRepo) Update(_ context.Context, es skill.EmployeeSkill) (skill.EmployeeSkill, error) {
	cur, ok := m.items[es.ID]
	if !ok || cur.EmployeeID != es.EmployeeID {
		return skill.EmployeeSkill{}, repository.ErrEmployeeSkillNotFound
	}
	cur.ProficiencyLevel = es.ProficiencyLevel
	cur.YearsExperience = es.YearsExperience
	m.items[es.ID] = cur
	return cur, nil
}

func (m *mockEmployeeSkillRepo) Delete(_ context.Context, id, employeeID uuid.UUID) error {
	cur, ok := m.items[id]
	if !ok {
		return repository.ErrEmployeeSkillNotFound
	}
	if cur.EmployeeID != employeeID {
		return repository.ErrEmployeeSkillForbidden
	}
	delete(m.items, id)
	return nil
}

type mockMatchingRepo struct {
	mu         sync.Mutex
	snapshot   repository.MatchingSnapshot
	version    string
	projectErr error
	versionErr error
	loadErr    error
	loads      int
	filters    []repository.PoolFilter

	// When gate is set, LoadSnapshot signals started and then waits for gate
	// or for its context to end.
	gate    chan struct{}
	started chan struct{}
}

func (m *mockMatchingRepo) GetProject(_ context.Context, id uuid.UUID) (repository.ProjectRecord, error) {
	if m.projectErr != nil {
		return repository.ProjectRecord{}, m.projectErr
	}
	if id != m.snapshot.Project.ID {
		return repository.ProjectRecord{}, repository.ErrProjectNotFound
	}
	return m.snapshot.Project, nil
}

func (m *mockMatchingRepo) DataVersion(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.version, m.versionErr
}

func (m *mockMatchingRepo) LoadSnapshot(ctx context.Context, _ uuid.UUID, filter repository.PoolFilter) (repository.MatchingSnapshot, error) {
	if m.gate != nil {
		m.started <- struct{}{}
		select {
		case <-m.gate:
		case <-ctx.Done():
			return repository.MatchingSnapshot{}, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	m.filters = append(m.filters, filter)
	if m.loadErr != nil {
		return repository.MatchingSnapshot{}, m.loadErr
	}
	snap := m.snapshot
	if filter.Department != "" {
		kept := make([]repository.CandidateRecord, 0)
		for _, c := range snap.Candidates {
			if c.Department == filter.Department {
				kept = append(kept, c)
			}
		}
		snap.Candidates = kept
	}
	return snap, nil
}

// memoryCache stores JSON the same way the Redis cache does.
type memoryCache struct {
	mu       sync.Mutex
	data     map[string][]byte
	patterns []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (c *memoryCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memoryCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *memoryCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.patterns = append(c.patterns, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

type recordingNotifier struct {
	mu        sync.Mutex
	changed   []string
	completed []uuid.UUID
}

func (n *recordingNotifier) DataChanged(_ uuid.UUID, reason string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changed = append(n.changed, reason)
}

func (n *recordingNotifier) MatchingCompleted(projectID uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.completed = append(n.completed, projectID)
}

type mockProjectRepo struct {
	mu       sync.Mutex
	projects map[uuid.UUID]project.Project
	err      error
	replaced int
}

func newMockProjectRepo(items ...project.Project) *mockProjectRepo {
	m := &mockProjectRepo{projects: map[uuid.UUID]project.Project{}}
	for _, p := range items {
		m.projects[p.ID] = p
	}
	return m
}

func (m *mockProjectRepo) ListProjects(_ context.Context, filter repository.ProjectFilter) ([]project.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]project.Project, 0)
	for _, p := range m.projects {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *mockProjectRepo) GetProject(_ context.Context, id uuid.UUID) (project.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return project.Project{}, m.err
	}
	p, ok := m.projects[id]
	if !ok {
		return project.Project{}, repository.ErrProjectNotFound
	}
	p.MemberCount = len(p.Members)
	return p, nil
}

func (m *mockProjectRepo) CreateProject(_ context.Context, p project.Project) (project.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return project.Project{}, m.err
	}
	m.projects[p.ID] = p
	return p, nil
}

func (m *mockProjectRepo) UpdateProject(_ context.Context, p project.Project, replace bool) (project.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.projects[p.ID]
	if !ok {
		return project.Project{}, repository.ErrProjectNotFound
	}
	if replace {
		m.replaced++
	} else {
		p.Requirements = cur.Requirements
	}
	p.Members = cur.Members
	m.projects[p.ID] = p
	return p, nil
}

func (m *mockProjectRepo) DeleteProject(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[id]; !ok {
		return repository.ErrProjectNotFound
	}
	delete(m.projects, id)
	return nil
}

func (m *mockProjectRepo) AddMember(_ context.Context, mem project.Member) (project.Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[mem.ProjectID]
	if !ok {
		return project.Member{}, repository.ErrProjectNotFound
	}
	for _, existing := range p.Members {
		if existing.EmployeeID == mem.EmployeeID {
			return project.Member{}, repository.ErrMemberExists
		}
	}
	p.Members = append(p.Members, mem)
	m.projects[p.ID] = p
	return mem, nil
}

func (m *mockProjectRepo) UpdateMember(_ context.Context, mem project.Member) (project.Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.projects[mem.ProjectID]
	for i := range p.Members {
		if p.Members[i].ID == mem.ID {
			p.Members[i] = mem
			return mem, nil
		}
	}
	return project.Member{}, repository.ErrMemberNotFound
}

func (m *mockProjectRepo) RemoveMember(_ context.Context, projectID, memberID uuid.UUID) (project.Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.projects[projectID]
	for i, mem := range p.Members {
		if mem.ID == memberID {
			p.Members = append(p.Members[:i], p.Members[i+1:]...)
			m.projects[projectID] = p
			return mem, nil
		}
	}
	return project.Member{}, repository.ErrMemberNotFound
}

type mockClientRepo struct {
	clients map[uuid.UUID]project.Client
	err     error
}

func newMockClientRepo() *mockClientRepo {
	return &mockClientRepo{clients: map[uuid.UUID]project.Client{}}
}

func (m *mockClientRepo) ListClients(_ context.Context, search string) ([]project.Client, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]project.Client, 0)
	for _, c := range m.clients {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(strings.TrimSpace(search))) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockClientRepo) GetClient(_ context.Context, id uuid.UUID) (project.Client, error) {
	c, ok := m.clients[id]
	if !ok {
		return project.Client{}, repository.ErrClientNotFound
	}
	return c, nil
}

func (m *mockClientRepo) CreateClient(_ context.Context, c project.Client) (project.Client, error) {
	if m.err != nil {
		return project.Client{}, m.err
	}
	m.clients[c.ID] = c
	return c, nil
}

func (m *mockClientRepo) UpdateClient(_ context.Context, c project.Client) (project.Client, error) {
	if _, ok := m.clients[c.ID]; !ok {
		return project.Client{}, repository.ErrClientNotFound
	}
	m.clients[c.ID] = c
	return c, nil
}

func (m *mockClientRepo) ClientNameExists(_ context.Context, name string, exclude uuid.UUID) (bool, error) {
	for id, c := range m.clients {
		if id != exclude && strings.EqualFold(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}
