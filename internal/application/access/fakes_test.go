package access_test

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/jash90/accounting-app-sub014/internal/domain/entity"
	"github.com/jash90/accounting-app-sub014/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia. Los borrados por empresa
// resuelven la empresa actual del titular contra el fake de usuarios, igual
// que el SQL real lo hace con un join a users.
// ──────────────────────────────────────────────────────────────────────────────

type fakeModuleRepo struct {
	modules map[string]*entity.Module // key: id
}

func newFakeModuleRepo(modules ...*entity.Module) *fakeModuleRepo {
	r := &fakeModuleRepo{modules: map[string]*entity.Module{}}
	for _, m := range modules {
		r.modules[m.ID] = m
	}
	return r
}

func (r *fakeModuleRepo) GetByID(_ context.Context, id string) (*entity.Module, error) {
	return r.modules[id], nil
}

func (r *fakeModuleRepo) GetBySlug(_ context.Context, slug string) (*entity.Module, error) {
	for _, m := range r.modules {
		if m.Slug == slug {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeModuleRepo) List(_ context.Context) ([]*entity.Module, error) {
	out := make([]*entity.Module, 0, len(r.modules))
	for _, m := range r.modules {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

type fakeCompanyRepo struct {
	companies map[string]*entity.Company // key: id
}

func newFakeCompanyRepo(companies ...*entity.Company) *fakeCompanyRepo {
	r := &fakeCompanyRepo{companies: map[string]*entity.Company{}}
	for _, c := range companies {
		r.companies[c.ID] = c
	}
	return r
}

func (r *fakeCompanyRepo) Create(c *entity.Company) error {
	r.companies[c.ID] = c
	return nil
}

func (r *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	return r.companies[id], nil
}

func (r *fakeCompanyRepo) GetByNIT(nit string) (*entity.Company, error) {
	for _, c := range r.companies {
		if c.NIT == nit {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	out := make([]*entity.Company, 0, len(r.companies))
	for _, c := range r.companies {
		out = append(out, c)
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[string]*entity.User // key: id
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*entity.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.CompanyID == companyID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateCompany(userID, companyID string) error {
	u := r.users[userID]
	if u == nil {
		return nil
	}
	u.CompanyID = companyID
	return nil
}

func pairKey(a, b string) string { return a + "|" + b }

type fakeGrantRepo struct {
	grants  map[string]*entity.CompanyModule // key: companyID|moduleID
	modules *fakeModuleRepo
	// failIsEnabled simula un fallo de infraestructura en el check de un par.
	failIsEnabled map[string]error
}

func newFakeGrantRepo(modules *fakeModuleRepo) *fakeGrantRepo {
	return &fakeGrantRepo{grants: map[string]*entity.CompanyModule{}, modules: modules, failIsEnabled: map[string]error{}}
}

func (r *fakeGrantRepo) Upsert(_ context.Context, grant *entity.CompanyModule) error {
	key := pairKey(grant.CompanyID, grant.ModuleID)
	if existing, ok := r.grants[key]; ok {
		existing.IsEnabled = grant.IsEnabled
		existing.UpdatedAt = grant.UpdatedAt
		grant.ID = existing.ID
		grant.CreatedAt = existing.CreatedAt
		return nil
	}
	cp := *grant
	r.grants[key] = &cp
	return nil
}

func (r *fakeGrantRepo) Get(_ context.Context, companyID, moduleID string) (*entity.CompanyModule, error) {
	return r.grants[pairKey(companyID, moduleID)], nil
}

func (r *fakeGrantRepo) IsEnabled(_ context.Context, companyID, moduleID string) (bool, error) {
	if err := r.failIsEnabled[pairKey(companyID, moduleID)]; err != nil {
		return false, err
	}
	g := r.grants[pairKey(companyID, moduleID)]
	return g != nil && g.IsEnabled, nil
}

func (r *fakeGrantRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.CompanyModuleGrant, error) {
	var out []*entity.CompanyModuleGrant
	for _, g := range r.grants {
		if g.CompanyID != companyID {
			continue
		}
		v := &entity.CompanyModuleGrant{CompanyModule: *g}
		if m := r.modules.modules[g.ModuleID]; m != nil {
			v.ModuleSlug = m.Slug
			v.ModuleName = m.Name
			v.ModuleIsActive = m.IsActive
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ModuleID < out[j].ModuleID })
	return out, nil
}

type fakePermRepo struct {
	perms     map[string]*entity.UserModulePermission // key: userID|moduleID
	users     *fakeUserRepo
	modules   *fakeModuleRepo
	companies *fakeCompanyRepo
	// failDeleteFor simula un fallo de storage al borrar un grupo concreto.
	failDeleteFor map[string]error
}

func newFakePermRepo(users *fakeUserRepo, modules *fakeModuleRepo, companies *fakeCompanyRepo) *fakePermRepo {
	return &fakePermRepo{
		perms:         map[string]*entity.UserModulePermission{},
		users:         users,
		modules:       modules,
		companies:     companies,
		failDeleteFor: map[string]error{},
	}
}

func (r *fakePermRepo) Upsert(_ context.Context, perm *entity.UserModulePermission) error {
	key := pairKey(perm.UserID, perm.ModuleID)
	if existing, ok := r.perms[key]; ok {
		existing.CanRead = perm.CanRead
		existing.CanWrite = perm.CanWrite
		existing.CanDelete = perm.CanDelete
		existing.GrantedByID = perm.GrantedByID
		existing.UpdatedAt = perm.UpdatedAt
		perm.ID = existing.ID
		perm.CreatedAt = existing.CreatedAt
		return nil
	}
	cp := *perm
	r.perms[key] = &cp
	return nil
}

func (r *fakePermRepo) Get(_ context.Context, userID, moduleID string) (*entity.UserModulePermission, error) {
	return r.perms[pairKey(userID, moduleID)], nil
}

func (r *fakePermRepo) Delete(_ context.Context, userID, moduleID string) (int64, error) {
	key := pairKey(userID, moduleID)
	if _, ok := r.perms[key]; !ok {
		return 0, nil
	}
	delete(r.perms, key)
	return 1, nil
}

func (r *fakePermRepo) ListByUser(_ context.Context, userID string) ([]*entity.UserModulePermissionView, error) {
	var out []*entity.UserModulePermissionView
	for _, p := range r.perms {
		if p.UserID != userID {
			continue
		}
		v := &entity.UserModulePermissionView{UserModulePermission: *p}
		if m := r.modules.modules[p.ModuleID]; m != nil {
			v.ModuleSlug = m.Slug
			v.ModuleName = m.Name
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ModuleSlug < out[j].ModuleSlug })
	return out, nil
}

func (r *fakePermRepo) DeleteByCompanyAndModule(_ context.Context, companyID, moduleID string) (int64, error) {
	if err := r.failDeleteFor[pairKey(companyID, moduleID)]; err != nil {
		return 0, err
	}
	var deleted int64
	for key, p := range r.perms {
		if p.ModuleID != moduleID {
			continue
		}
		u := r.users.users[p.UserID]
		if u == nil || u.CompanyID != companyID {
			continue
		}
		delete(r.perms, key)
		deleted++
	}
	return deleted, nil
}

func (r *fakePermRepo) ListGroups(_ context.Context) ([]*entity.PermissionGroup, error) {
	byPair := map[string]*entity.PermissionGroup{}
	for _, p := range r.perms {
		u := r.users.users[p.UserID]
		if u == nil {
			continue
		}
		key := pairKey(u.CompanyID, p.ModuleID)
		g, ok := byPair[key]
		if !ok {
			g = &entity.PermissionGroup{CompanyID: u.CompanyID, ModuleID: p.ModuleID}
			if c := r.companies.companies[u.CompanyID]; c != nil {
				g.CompanyName = c.Name
			}
			if m := r.modules.modules[p.ModuleID]; m != nil {
				g.ModuleSlug = m.Slug
				g.ModuleName = m.Name
				g.ModuleIsActive = m.IsActive
			}
			byPair[key] = g
		}
		g.Permissions++
	}
	out := make([]*entity.PermissionGroup, 0, len(byPair))
	for _, g := range byPair {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CompanyID != out[j].CompanyID {
			return out[i].CompanyID < out[j].CompanyID
		}
		return out[i].ModuleID < out[j].ModuleID
	})
	return out, nil
}

// fakeTxRunner emula la atomicidad de la transacción real: toma un snapshot
// de grants y permisos antes de ejecutar fn y lo restaura si fn falla.
type fakeTxRunner struct {
	grants *fakeGrantRepo
	perms  *fakePermRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	grantRepo repository.CompanyModuleRepository,
	permRepo repository.UserModulePermissionRepository,
) error) error {
	grantSnap := map[string]*entity.CompanyModule{}
	for k, v := range r.grants.grants {
		cp := *v
		grantSnap[k] = &cp
	}
	permSnap := map[string]*entity.UserModulePermission{}
	for k, v := range r.perms.perms {
		cp := *v
		permSnap[k] = &cp
	}
	if err := fn(r.grants, r.perms); err != nil {
		r.grants.grants = grantSnap
		r.perms.perms = permSnap
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Constructores de datos de prueba
// ──────────────────────────────────────────────────────────────────────────────

func testModule(slug string, active bool) *entity.Module {
	return &entity.Module{ID: uuid.New().String(), Slug: slug, Name: slug, IsActive: active}
}

func testCompany(name string) *entity.Company {
	return &entity.Company{ID: uuid.New().String(), Name: name, NIT: "nit-" + name, Status: "active"}
}

func testEmployee(company *entity.Company, email string) *entity.User {
	return &entity.User{
		ID:        uuid.New().String(),
		CompanyID: company.ID,
		Email:     email,
		Name:      email,
		Role:      entity.RoleEmployee,
		Status:    "active",
	}
}
