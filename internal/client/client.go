// Package client es el cliente Go de la API, usado por carecli.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	memcache "care-companion/internal/adapters/cache/memory"
	"care-companion/internal/domain/agenda"
	"care-companion/internal/domain/elders"
	"care-companion/internal/platform/httpclient"
	"care-companion/internal/platform/logger"
	"care-companion/internal/ports/cache"
)

type Options struct {
	Timeout time.Duration

	// Cache de la lista de familia; nil = cache en memoria.
	Cache    cache.Cache
	CacheTTL time.Duration
	Logger   logger.Logger
}

// Client guarda el token de la última sesión (signup o login).
type Client struct {
	http     *httpclient.Client
	cache    cache.Cache
	cacheTTL time.Duration
	log      logger.Logger

	mu      sync.RWMutex
	session Session
}

func New(baseURL string, opts Options) (*Client, error) {
	hc, err := httpclient.New(baseURL, opts.Timeout)
	if err != nil {
		return nil, err
	}
	c := opts.Cache
	if c == nil {
		c = memcache.New()
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Client{http: hc, cache: c, cacheTTL: ttl, log: log}, nil
}

// Session es la respuesta de signup/login.
type Session struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	Role    string `json:"role"`
	UserID  string `json:"userId"`
}

type SignupRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	MobileNumber string `json:"mobileNumber"`
}

type NewElder struct {
	Name         string               `json:"name"`
	Email        string               `json:"email"`
	Password     string               `json:"password"`
	Relationship string               `json:"relationship,omitempty"`
	HealthData   elders.HealthProfile `json:"healthData"`
}

// ElderUpdate: nil = no tocar.
type ElderUpdate struct {
	Name       *string             `json:"name,omitempty"`
	Email      *string             `json:"email,omitempty"`
	Password   *string             `json:"password,omitempty"`
	HealthData *elders.HealthPatch `json:"healthData,omitempty"`
}

type Elder struct {
	ID         string               `json:"id"`
	Name       string               `json:"name"`
	Email      string               `json:"email"`
	Role       string               `json:"role"`
	HealthData elders.HealthProfile `json:"healthData"`
	CreatedAt  time.Time            `json:"createdAt"`
	UpdatedAt  time.Time            `json:"updatedAt"`
}

type elderEnvelope struct {
	Message string `json:"message"`
	Elderly Elder  `json:"elderly"`
}

func (c *Client) Session() Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

func (c *Client) setSession(s Session) {
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
}

func (c *Client) token() string {
	return c.Session().Token
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) (Session, error) {
	var s Session
	if err := c.http.DoJSON(ctx, http.MethodPost, "/api/signup", "", req, &s); err != nil {
		return Session{}, err
	}
	c.setSession(s)
	return s, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var s Session
	in := map[string]string{"email": email, "password": password}
	if err := c.http.DoJSON(ctx, http.MethodPost, "/api/login", "", in, &s); err != nil {
		return Session{}, err
	}
	c.setSession(s)
	return s, nil
}

func (c *Client) CreateElder(ctx context.Context, in NewElder) (Elder, error) {
	var out elderEnvelope
	if err := c.http.DoJSON(ctx, http.MethodPost, "/api/create-elderly", c.token(), in, &out); err != nil {
		return Elder{}, err
	}
	c.invalidateFamily(ctx)
	return out.Elderly, nil
}

func (c *Client) UpdateElder(ctx context.Context, id string, in ElderUpdate) (Elder, error) {
	var out elderEnvelope
	if err := c.http.DoJSON(ctx, http.MethodPut, "/api/elderly/"+url.PathEscape(id), c.token(), in, &out); err != nil {
		return Elder{}, err
	}
	c.invalidateFamily(ctx)
	return out.Elderly, nil
}

func (c *Client) Elder(ctx context.Context, id string) (Elder, error) {
	var out Elder
	if err := c.http.DoJSON(ctx, http.MethodGet, "/api/elderly/"+url.PathEscape(id), c.token(), nil, &out); err != nil {
		return Elder{}, err
	}
	return out, nil
}

// FamilyMembers lee primero del cache local; CreateElder/UpdateElder lo invalidan.
func (c *Client) FamilyMembers(ctx context.Context) ([]elders.LinkedPerson, error) {
	key := c.familyKey()

	if raw, found, err := c.cache.Get(ctx, key); err == nil && found {
		var cached []elders.LinkedPerson
		if json.Unmarshal(raw, &cached) == nil {
			return cached, nil
		}
	} else if err != nil {
		c.log.Warn("family cache: get failed", map[string]any{"error": err.Error()})
	}

	var out []elders.LinkedPerson
	if err := c.http.DoJSON(ctx, http.MethodGet, "/api/family-members", c.token(), nil, &out); err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(out); err == nil {
		if err := c.cache.Set(ctx, key, raw, c.cacheTTL); err != nil {
			c.log.Warn("family cache: set failed", map[string]any{"error": err.Error()})
		}
	}
	return out, nil
}

func (c *Client) Medications(ctx context.Context) ([]elders.Medication, error) {
	var out []elders.Medication
	if err := c.http.DoJSON(ctx, http.MethodGet, "/api/medications", c.token(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Agenda del elderly autenticado. at zero = ahora en el servidor.
func (c *Client) Agenda(ctx context.Context, at time.Time, tz string) (agenda.Agenda, error) {
	return c.agenda(ctx, "/api/agenda", at, tz)
}

func (c *Client) ElderAgenda(ctx context.Context, id string, at time.Time, tz string) (agenda.Agenda, error) {
	return c.agenda(ctx, "/api/elderly/"+url.PathEscape(id)+"/agenda", at, tz)
}

func (c *Client) agenda(ctx context.Context, path string, at time.Time, tz string) (agenda.Agenda, error) {
	q := url.Values{}
	if !at.IsZero() {
		q.Set("at", at.Format(time.RFC3339))
	}
	if tz = strings.TrimSpace(tz); tz != "" {
		q.Set("tz", tz)
	}
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out agenda.Agenda
	if err := c.http.DoJSON(ctx, http.MethodGet, path, c.token(), nil, &out); err != nil {
		return agenda.Agenda{}, err
	}
	return out, nil
}

func (c *Client) familyKey() string {
	return fmt.Sprintf("client:family:%s", c.Session().UserID)
}

func (c *Client) invalidateFamily(ctx context.Context) {
	if err := c.cache.Delete(ctx, c.familyKey()); err != nil {
		c.log.Warn("family cache: invalidate failed", map[string]any{"error": err.Error()})
	}
}
