// Package apptest provee dobles en memoria de los puertos de persistencia para los tests
// de la capa de aplicación.
package apptest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/pos-core/internal/domain"
	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/domain/repository"
)

// Faults errores a inyectar en operaciones concretas.
type Faults struct {
	CreateUser error
	CreateRole error
	Assign     error
	Count      error
}

type userRole struct{ userID, roleID int64 }

type state struct {
	users      map[int64]entity.User
	roles      map[int64]entity.Role
	userRoles  map[userRole]struct{}
	stores     map[int64]entity.Store
	categories map[int64]entity.Category
	products   map[int64]entity.Product
	nextID     int64
}

func (s state) clone() state {
	c := state{
		users:      make(map[int64]entity.User, len(s.users)),
		roles:      make(map[int64]entity.Role, len(s.roles)),
		userRoles:  make(map[userRole]struct{}, len(s.userRoles)),
		stores:     make(map[int64]entity.Store, len(s.stores)),
		categories: make(map[int64]entity.Category, len(s.categories)),
		products:   make(map[int64]entity.Product, len(s.products)),
		nextID:     s.nextID,
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.roles {
		c.roles[k] = v
	}
	for k := range s.userRoles {
		c.userRoles[k] = struct{}{}
	}
	for k, v := range s.stores {
		c.stores[k] = v
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	return c
}

// Store base de datos en memoria. Cuenta las escrituras en Mutations.
type Store struct {
	mu        sync.Mutex
	st        state
	Faults    Faults
	Mutations int
}

// NewStore crea una base vacía.
func NewStore() *Store {
	return &Store{st: state{}.clone()}
}

func (s *Store) id() int64 {
	s.st.nextID++
	return s.st.nextID
}

func now() *time.Time {
	t := time.Now().UTC()
	return &t
}

// Users devuelve el puerto de usuarios.
func (s *Store) Users() repository.UserRepository { return &userRepo{s} }

// Roles devuelve el puerto de roles.
func (s *Store) Roles() repository.RoleRepository { return &roleRepo{s} }

// Stores devuelve el puerto de tiendas.
func (s *Store) Stores() repository.StoreRepository { return &storeRepo{s} }

// Categories devuelve el puerto de categorías.
func (s *Store) Categories() repository.CategoryRepository { return &categoryRepo{s} }

// Products devuelve el puerto de productos.
func (s *Store) Products() repository.ProductRepository { return &productRepo{s} }

// TxRunner simula una transacción: si fn falla se restaura el estado previo.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

// UserCount número de filas en users (activas o no).
func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.users)
}

// AssignmentCount número de filas en user_roles para el usuario.
func (s *Store) AssignmentCount(userID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k := range s.st.userRoles {
		if k.userID == userID {
			n++
		}
	}
	return n
}

// SeedUser inserta un usuario tal cual (tests).
func (s *Store) SeedUser(u entity.User) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		u.ID = s.id()
	}
	s.st.users[u.ID] = u
	return u.ID
}

// TxRunner doble de auth.TxRunner sobre Store.
type TxRunner struct {
	s *Store
}

func (t *TxRunner) Run(ctx context.Context, fn func(userRepo repository.UserRepository, roleRepo repository.RoleRepository) error) error {
	t.s.mu.Lock()
	snapshot := t.s.st.clone()
	mutations := t.s.Mutations
	t.s.mu.Unlock()

	if err := fn(t.s.Users(), t.s.Roles()); err != nil {
		t.s.mu.Lock()
		t.s.st = snapshot
		t.s.Mutations = mutations
		t.s.mu.Unlock()
		return err
	}
	return nil
}

type userRepo struct{ s *Store }

func (r *userRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Faults.CreateUser != nil {
		return r.s.Faults.CreateUser
	}
	for _, u := range r.s.st.users {
		if u.Username == user.Username {
			return domain.ErrDuplicateUsername
		}
	}
	user.ID = r.s.id()
	if user.Status == "" {
		user.Status = entity.StatusActive
	}
	user.CreatedAt = now()
	stored := *user
	stored.Roles = nil
	r.s.st.users[user.ID] = stored
	r.s.Mutations++
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.st.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.st.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *userRepo) Count(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Faults.Count != nil {
		return 0, r.s.Faults.Count
	}
	return int64(len(r.s.st.users)), nil
}

func (r *userRepo) ListActive(ctx context.Context) ([]*entity.User, error) {
	return r.list(func(u entity.User) bool { return u.Status.IsActive() }), nil
}

func (r *userRepo) ListActiveByStore(ctx context.Context, storeID int64) ([]*entity.User, error) {
	return r.list(func(u entity.User) bool {
		return u.Status.IsActive() && u.StoreID != nil && *u.StoreID == storeID
	}), nil
}

func (r *userRepo) list(keep func(entity.User) bool) []*entity.User {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.User, 0)
	for _, u := range r.s.st.users {
		if keep(u) {
			u := u
			out = append(out, &u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *userRepo) Update(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.st.users[user.ID]
	if !ok {
		return nil
	}
	u.RoleLabel, u.Email, u.StoreID = user.RoleLabel, user.Email, user.StoreID
	r.s.st.users[u.ID] = u
	r.s.Mutations++
	return nil
}

func (r *userRepo) SoftDelete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.st.users[id]
	if !ok {
		return nil
	}
	u.Status = entity.StatusInactive
	r.s.st.users[id] = u
	r.s.Mutations++
	return nil
}

type roleRepo struct{ s *Store }

func (r *roleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ro := range r.s.st.roles {
		if ro.Name == name {
			ro := ro
			return &ro, nil
		}
	}
	return nil, nil
}

func (r *roleRepo) Create(ctx context.Context, role *entity.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Faults.CreateRole != nil {
		return r.s.Faults.CreateRole
	}
	for _, ro := range r.s.st.roles {
		if ro.Name == role.Name {
			role.ID = ro.ID
			return nil
		}
	}
	role.ID = r.s.id()
	r.s.st.roles[role.ID] = *role
	r.s.Mutations++
	return nil
}

func (r *roleRepo) Assign(ctx context.Context, userID, roleID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Faults.Assign != nil {
		return r.s.Faults.Assign
	}
	key := userRole{userID, roleID}
	if _, ok := r.s.st.userRoles[key]; ok {
		return nil
	}
	r.s.st.userRoles[key] = struct{}{}
	r.s.Mutations++
	return nil
}

func (r *roleRepo) ListNamesByUser(ctx context.Context, userID int64) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	names := make([]string, 0)
	for k := range r.s.st.userRoles {
		if k.userID == userID {
			names = append(names, r.s.st.roles[k.roleID].Name)
		}
	}
	sort.Strings(names)
	return names, nil
}

type storeRepo struct{ s *Store }

func (r *storeRepo) Create(ctx context.Context, store *entity.Store) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	store.ID = r.s.id()
	store.Status = entity.StatusActive
	store.CreatedAt = now()
	r.s.st.stores[store.ID] = *store
	r.s.Mutations++
	return nil
}

func (r *storeRepo) GetByID(ctx context.Context, id int64) (*entity.Store, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.st.stores[id]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (r *storeRepo) ListActive(ctx context.Context) ([]*entity.Store, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Store, 0)
	for _, st := range r.s.st.stores {
		if st.Status.IsActive() {
			st := st
			out = append(out, &st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *storeRepo) Update(ctx context.Context, store *entity.Store) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.st.stores[store.ID]
	if !ok {
		return nil
	}
	st.Name, st.Code, st.Address = store.Name, store.Code, store.Address
	r.s.st.stores[st.ID] = st
	r.s.Mutations++
	return nil
}

func (r *storeRepo) SoftDelete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.st.stores[id]
	if !ok {
		return nil
	}
	st.Status = entity.StatusInactive
	r.s.st.stores[id] = st
	r.s.Mutations++
	return nil
}

type categoryRepo struct{ s *Store }

func (r *categoryRepo) Create(ctx context.Context, category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	category.ID = r.s.id()
	r.s.st.categories[category.ID] = *category
	r.s.Mutations++
	return nil
}

func (r *categoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Category, 0, len(r.s.st.categories))
	for _, c := range r.s.st.categories {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return strings.Compare(out[i].Name, out[j].Name) < 0 })
	return out, nil
}

func (r *categoryRepo) Update(ctx context.Context, category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.categories[category.ID]; !ok {
		return nil
	}
	r.s.st.categories[category.ID] = *category
	r.s.Mutations++
	return nil
}

func (r *categoryRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.st.categories, id)
	r.s.Mutations++
	return nil
}

type productRepo struct{ s *Store }

func (r *productRepo) Create(ctx context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	product.ID = r.s.id()
	product.Status = entity.StatusActive
	product.CreatedAt = now()
	r.s.st.products[product.ID] = *product
	r.s.Mutations++
	return nil
}

func (r *productRepo) view(p entity.Product) *entity.ProductView {
	v := &entity.ProductView{Product: p}
	if p.CategoryID != nil {
		if c, ok := r.s.st.categories[*p.CategoryID]; ok {
			name := c.Name
			v.CategoryName = &name
		}
	}
	return v
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*entity.ProductView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.st.products[id]
	if !ok {
		return nil, nil
	}
	return r.view(p), nil
}

func (r *productRepo) ListActive(ctx context.Context) ([]*entity.ProductView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.ProductView, 0)
	for _, p := range r.s.st.products {
		if p.Status.IsActive() {
			out = append(out, r.view(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *productRepo) Update(ctx context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.st.products[product.ID]
	if !ok {
		return nil
	}
	status, created := p.Status, p.CreatedAt
	p = *product
	p.Status, p.CreatedAt = status, created
	r.s.st.products[p.ID] = p
	r.s.Mutations++
	return nil
}

func (r *productRepo) SoftDelete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.st.products[id]
	if !ok {
		return nil
	}
	p.Status = entity.StatusInactive
	r.s.st.products[id] = p
	r.s.Mutations++
	return nil
}
