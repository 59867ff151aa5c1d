package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tiendalabs/supermercado/config"
	"github.com/tiendalabs/supermercado/internal/domain"
	"github.com/tiendalabs/supermercado/internal/storage"
	"github.com/tiendalabs/supermercado/internal/webserver"
	"github.com/tiendalabs/supermercado/pkg/common"
)

// memStore is an in-memory storage.Store used to exercise the full HTTP
// stack without a running mongod.
type memStore struct {
	mu     sync.Mutex
	colls  map[string]map[string]bson.M
	broken bool
}

var _ storage.Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{colls: map[string]map[string]bson.M{}}
}

func (s *memStore) collection(name string) map[string]bson.M {
	if s.colls[name] == nil {
		s.colls[name] = map[string]bson.M{}
	}
	return s.colls[name]
}

func toBsonM(v any) (bson.M, error) {
	b, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func decodeInto(src, dst any) error {
	b, err := bson.Marshal(src)
	if err != nil {
		return err
	}
	return bson.Unmarshal(b, dst)
}

func (s *memStore) Insert(_ context.Context, collection string, doc any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.broken {
		return "", errors.New("store unreachable")
	}
	m, err := toBsonM(doc)
	if err != nil {
		return "", err
	}
	oid := primitive.NewObjectID()
	m["_id"] = oid
	s.collection(collection)[oid.Hex()] = m
	return oid.Hex(), nil
}

func (s *memStore) FindByID(_ context.Context, collection, id string, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.broken {
		return errors.New("store unreachable")
	}
	m, okk := s.collection(collection)[id]
	if !okk {
		return storage.ErrNotFound
	}
	return decodeInto(m, out)
}

func (s *memStore) FindOne(_ context.Context, collection string, filter any, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.broken {
		return errors.New("store unreachable")
	}
	fm, err := toBsonM(filter)
	if err != nil {
		return err
	}
	for _, m := range s.collection(collection) {
		matched := true
		for k, v := range fm {
			if !reflect.DeepEqual(m[k], v) {
				matched = false
				break
			}
		}
		if matched {
			return decodeInto(m, out)
		}
	}
	return storage.ErrNotFound
}

func (s *memStore) FindAll(_ context.Context, collection string, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.broken {
		return errors.New("store unreachable")
	}
	outv := reflect.ValueOf(out).Elem()
	for _, m := range s.collection(collection) {
		ev := reflect.New(outv.Type().Elem())
		if err := decodeInto(m, ev.Interface()); err != nil {
			return err
		}
		outv.Set(reflect.Append(outv, ev.Elem()))
	}
	return nil
}

func (s *memStore) UpdateByID(_ context.Context, collection, id string, fields any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.broken {
		return errors.New("store unreachable")
	}
	m, okk := s.collection(collection)[id]
	if !okk {
		return storage.ErrNotFound
	}
	fm, err := toBsonM(fields)
	if err != nil {
		return err
	}
	for k, v := range fm {
		m[k] = v
	}
	return nil
}

func (s *memStore) DeleteByID(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.broken {
		return errors.New("store unreachable")
	}
	if _, okk := s.collection(collection)[id]; !okk {
		return storage.ErrNotFound
	}
	delete(s.collection(collection), id)
	return nil
}

func testConfig() *config.AppConfig {
	cfg := new(config.AppConfig)
	*cfg = *config.DefaultAppConfig
	cfg.Web.Secret = "test-secret"
	return cfg
}

// newTestServer wires a fresh web server and route table over a memStore.
func newTestServer(t *testing.T) (*webserver.WebServer, *memStore, *config.AppConfig) {
	t.Helper()
	cfg := testConfig()
	store := newMemStore()
	ws := webserver.Init(cfg, store)
	RegisterRoutes()
	return ws, store, cfg
}

func seedUser(t *testing.T, store *memStore, email, role string) domain.User {
	t.Helper()
	hash, err := common.HashPassword("password123")
	require.NoError(t, err)
	u := domain.User{Email: email, Password: hash, Role: role}
	id, err := store.Insert(context.Background(), domain.CollectionUsers, &u)
	require.NoError(t, err)
	u.ID, err = primitive.ObjectIDFromHex(id)
	require.NoError(t, err)
	return u
}

func tokenFor(t *testing.T, cfg *config.AppConfig, u domain.User) string {
	t.Helper()
	token, err := webserver.IssueToken(cfg, &u)
	require.NoError(t, err)
	return token
}

// doJSON drives one request through the full middleware chain.
func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
