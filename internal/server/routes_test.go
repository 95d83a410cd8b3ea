package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"planets-api/internal/auth"
	"planets-api/internal/mail"
	"planets-api/internal/planet"
	"planets-api/internal/shared/errors"
	"planets-api/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fakePlanetRepo struct {
	planets map[int]*planet.Planet
	nextID  int
}

func newFakePlanetRepo(seed ...planet.Planet) *fakePlanetRepo {
	repo := &fakePlanetRepo{
		planets: make(map[int]*planet.Planet),
		nextID:  1,
	}
	for _, p := range seed {
		p := p
		p.PlanetID = repo.nextID
		repo.planets[p.PlanetID] = &p
		repo.nextID++
	}
	return repo
}

func (r *fakePlanetRepo) List(ctx context.Context) ([]planet.Planet, error) {
	var planets []planet.Planet
	for id := 1; id < r.nextID; id++ {
		if p, ok := r.planets[id]; ok {
			planets = append(planets, *p)
		}
	}
	return planets, nil
}

func (r *fakePlanetRepo) GetByID(ctx context.Context, id int) (*planet.Planet, error) {
	if p, ok := r.planets[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, errors.NotFoundf("planet %d not found", id)
}

func (r *fakePlanetRepo) GetByName(ctx context.Context, name string) (*planet.Planet, error) {
	for _, p := range r.planets {
		if p.PlanetName == name {
			copied := *p
			return &copied, nil
		}
	}
	return nil, errors.NotFoundf("planet %q not found", name)
}

func (r *fakePlanetRepo) Create(ctx context.Context, p *planet.Planet) (*planet.Planet, error) {
	created := *p
	created.PlanetID = r.nextID
	r.planets[created.PlanetID] = &created
	r.nextID++
	copied := created
	return &copied, nil
}

func (r *fakePlanetRepo) Update(ctx context.Context, p *planet.Planet) error {
	if _, ok := r.planets[p.PlanetID]; !ok {
		return errors.NotFoundf("planet %d not found", p.PlanetID)
	}
	copied := *p
	r.planets[p.PlanetID] = &copied
	return nil
}

type fakeUserRepo struct {
	users  map[int]*user.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[int]*user.User),
		nextID: 1,
	}
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int) (*user.User, error) {
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, errors.NotFoundf("user %d not found", id)
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, errors.NotFoundf("user %s not found", email)
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) (*user.User, error) {
	created := *u
	created.ID = r.nextID
	r.users[created.ID] = &created
	r.nextID++
	copied := created
	return &copied, nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return errors.NotFoundf("user %d not found", id)
	}
	u.PasswordHash = passwordHash
	return nil
}

type noopMailer struct{}

func (noopMailer) SendPasswordReset(context.Context, string, string, string) error { return nil }

var _ mail.Sender = noopMailer{}

func newTestRoutes(t *testing.T, seed ...planet.Planet) (*http.ServeMux, *fakePlanetRepo) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	planetRepo := newFakePlanetRepo(seed...)
	planetService := planet.NewService(planetRepo, logger)

	userService := user.NewService(newFakeUserRepo(), logger)

	issuer := auth.NewTokenIssuer(testSecret, time.Hour)
	authService := auth.NewService(userService, issuer, auth.NewMemoryTokenStore(), noopMailer{}, 30*time.Minute, "http://localhost:8080", logger)

	routes := NewRoutes(nil, planetService, userService, authService, issuer, logger)
	return routes.Setup(), planetRepo
}

func seededCatalog() []planet.Planet {
	return []planet.Planet{
		{PlanetName: "Mercury", PlanetType: "Class D", HomeStar: "Sol", Mass: 3.258e23, Radius: 1516, Distance: 35.98e6},
		{PlanetName: "Venus", PlanetType: "Class E", HomeStar: "Sol", Mass: 3.258e23, Radius: 2516, Distance: 35.98e6},
		{PlanetName: "Earth", PlanetType: "Class A", HomeStar: "Sol", Mass: 4.258e23, Radius: 3516, Distance: 45.98e6},
	}
}

func TestRoutes_SeededCatalog(t *testing.T) {
	mux, _ := newTestRoutes(t, seededCatalog()...)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/planets", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got []planet.Planet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "Mercury", got[0].PlanetName)
	assert.Equal(t, "Venus", got[1].PlanetName)
	assert.Equal(t, "Earth", got[2].PlanetName)
	assert.Equal(t, 3.258e23, got[0].Mass)
	assert.Equal(t, float64(1516), got[0].Radius)
	assert.Equal(t, 35.98e6, got[0].Distance)
}

func TestRoutes_CreateRequiresAuth(t *testing.T) {
	mux, repo := newTestRoutes(t)

	body := `{"planet_name":"Mars","planet_type":"Class K","home_star":"Sol","mass":6.39e23,"radius":3389,"distance":227.9e6}`
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/planets", strings.NewReader(body)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// The rejected planet must not be persisted
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/planets", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	planets, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, planets)
}

func TestRoutes_CreateWithToken(t *testing.T) {
	mux, _ := newTestRoutes(t)

	// Register and log in through the real routes
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/register",
		strings.NewReader(`{"first_name":"Aarav","last_name":"K","email":"aarav@yopmail.com","password":"password"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"aarav@yopmail.com","password":"password"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	body := `{"planet_name":"Mars","planet_type":"Class K","home_star":"Sol","mass":6.39e23,"radius":3389,"distance":227.9e6}`
	req := httptest.NewRequest(http.MethodPost, "/planets", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/planet/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got planet.Planet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Mars", got.PlanetName)
}

func TestRoutes_UpdateRequiresAuth(t *testing.T) {
	mux, repo := newTestRoutes(t, seededCatalog()...)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/planet/3", strings.NewReader(`{"mass":1}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	p, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 4.258e23, p.Mass)
}
