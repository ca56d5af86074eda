package apitest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/simp-lee/waystar/internal/domain"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, method, url, token string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	defer resp.Body.Close()

	var env envelope
	json.NewDecoder(resp.Body).Decode(&env)
	return resp.StatusCode, env
}

func TestServer_RecordsAndReplies(t *testing.T) {
	s := NewServer(t)
	s.Data(http.MethodGet, "/api/city/all", []string{"Hangzhou"})
	s.Status(http.MethodDelete, "/api/x", http.StatusForbidden, "no")

	status, env := do(t, http.MethodGet, s.URL+"/api/city/all?q=1", "", nil)
	if status != http.StatusOK || env.Code != http.StatusOK || string(env.Data) != `["Hangzhou"]` {
		t.Errorf("GET = %d %+v", status, env)
	}

	status, _ = do(t, http.MethodDelete, s.URL+"/api/x", "", []int{1})
	if status != http.StatusForbidden {
		t.Errorf("DELETE status = %d; want 403", status)
	}

	status, env = do(t, http.MethodPost, s.URL+"/unregistered", "", nil)
	if status != http.StatusOK || env.Code != http.StatusOK {
		t.Errorf("default reply = %d %+v", status, env)
	}

	calls := s.Calls()
	if len(calls) != 3 {
		t.Fatalf("calls = %d; want 3", len(calls))
	}
	if calls[0].Query.Get("q") != "1" {
		t.Errorf("query = %v", calls[0].Query)
	}
	var ids []int
	if err := calls[1].Decode(&ids); err != nil || len(ids) != 1 {
		t.Errorf("Decode() = %v, %v", ids, err)
	}
	if s.Last().Path != "/unregistered" {
		t.Errorf("Last().Path = %q", s.Last().Path)
	}
}

func TestBackend_LoginAndCollections(t *testing.T) {
	b := NewBackend(t)
	id := b.AddUser("mia", "secret123", domain.UserInfo{Email: "mia@example.com"})
	b.SeedCollection(id, 3, 1)

	_, env := do(t, http.MethodPost, b.URL+"/api/user/login", "", map[string]string{"username": "mia", "password": "wrong"})
	if env.Code != http.StatusUnauthorized {
		t.Fatalf("bad password code = %d; want 401 in envelope", env.Code)
	}

	_, env = do(t, http.MethodPost, b.URL+"/api/user/login", "", map[string]string{"username": "mia", "password": "secret123"})
	var login domain.UserLogin
	json.Unmarshal(env.Data, &login)
	if env.Code != http.StatusOK || login.Token == "" || login.UserID != id {
		t.Fatalf("login = %+v", env)
	}

	_, env = do(t, http.MethodGet, b.URL+"/api/attraction/collection/ids", login.Token, nil)
	if string(env.Data) != "[1,3]" {
		t.Errorf("ids = %s; want [1,3]", env.Data)
	}

	do(t, http.MethodPost, b.URL+"/api/attraction/collection/7", login.Token, nil)
	do(t, http.MethodDelete, b.URL+"/api/attraction/collection/1", login.Token, nil)
	if got := b.Collection(id); len(got) != 2 || got[0] != 3 || got[1] != 7 {
		t.Errorf("Collection() = %v; want [3 7]", got)
	}

	do(t, http.MethodPost, b.URL+"/api/user/logout", login.Token, nil)
	status, env := do(t, http.MethodGet, b.URL+"/api/user/info", login.Token, nil)
	if status != http.StatusUnauthorized || env.Message == "" {
		t.Errorf("revoked token = %d %+v; want 401", status, env)
	}
}

func TestBackend_Auth(t *testing.T) {
	b := NewBackend(t)
	id := b.AddUser("leo", "pw", domain.UserInfo{})

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"expired", b.Token(id, "leo", -time.Minute), http.StatusUnauthorized},
		{"garbage", "abc.def.ghi", http.StatusUnauthorized},
		{"not issued", foreignToken(t, id), http.StatusUnauthorized},
		{"admin token", b.sign(id, "leo", roleAdmin, time.Minute), http.StatusUnauthorized},
		{"valid", b.Token(id, "leo", time.Minute), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := do(t, http.MethodGet, b.URL+"/api/user/info", tt.token, nil)
			if status != tt.want {
				t.Errorf("status = %d; want %d", status, tt.want)
			}
		})
	}
}

// foreignToken signs a well-formed token with the backend secret that the
// token service never issued.
func foreignToken(t *testing.T, id int64) string {
	t.Helper()
	claims := gojwt.RegisteredClaims{
		Subject:   strconv.FormatInt(id, 10),
		ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(tokenSecret))
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func TestBackend_LogoutRevokesInTokenService(t *testing.T) {
	b := NewBackend(t)
	id := b.AddUser("leo", "pw", domain.UserInfo{})
	token := b.Token(id, "leo", time.Minute)

	if status, _ := do(t, http.MethodPost, b.URL+"/api/user/logout", token, nil); status != http.StatusOK {
		t.Fatalf("logout status = %d; want 200", status)
	}
	if !b.tokens.IsTokenRevoked(token) {
		t.Error("token not revoked after logout")
	}
}

func TestBackend_FailNextAndBrowse(t *testing.T) {
	b := NewBackend(t)
	b.FailNext(http.MethodPost, "/api/browse/record", http.StatusInternalServerError, "boom")

	rec := domain.BrowseRecord{UserID: 1, AttractionID: 2, BrowseDuration: 5}
	status, _ := do(t, http.MethodPost, b.URL+"/api/browse/record", "", rec)
	if status != http.StatusInternalServerError {
		t.Fatalf("first status = %d; want 500", status)
	}
	status, env := do(t, http.MethodPost, b.URL+"/api/browse/record", "", rec)
	if status != http.StatusOK || env.Code != http.StatusOK {
		t.Fatalf("second = %d %+v", status, env)
	}

	_, env = do(t, http.MethodPost, b.URL+"/api/browse/record", "", domain.BrowseRecord{UserID: 1, AttractionID: 2})
	if env.Code != http.StatusBadRequest {
		t.Errorf("zero duration code = %d; want 400", env.Code)
	}

	if got := b.BrowseRecords(); len(got) != 1 || got[0] != rec {
		t.Errorf("BrowseRecords() = %+v", got)
	}
	if got := b.Hits(http.MethodPost, "/api/browse/record"); got != 3 {
		t.Errorf("Hits() = %d; want 3", got)
	}
}

func TestBackend_Register(t *testing.T) {
	b := NewBackend(t)
	b.AddUser("taken", "pw", domain.UserInfo{Email: "taken@example.com"})

	_, env := do(t, http.MethodGet, b.URL+"/api/user/check/username?username=taken", "", nil)
	if string(env.Data) != "false" {
		t.Errorf("check taken username = %s; want false", env.Data)
	}

	do(t, http.MethodPost, b.URL+"/api/email/sendCode", "", map[string]string{"email": "new@example.com"})
	code := b.Code("new@example.com")
	if code == "" {
		t.Fatal("no verification code recorded")
	}

	reg := map[string]string{
		"username":        "newbie",
		"password":        "secret1",
		"confirmPassword": "secret1",
		"email":           "new@example.com",
		"captcha":         "wrong",
	}
	_, env = do(t, http.MethodPost, b.URL+"/api/user/register", "", reg)
	if env.Code != http.StatusBadRequest {
		t.Errorf("wrong captcha code = %d; want 400", env.Code)
	}

	reg["captcha"] = code
	_, env = do(t, http.MethodPost, b.URL+"/api/user/register", "", reg)
	if env.Code != http.StatusOK {
		t.Fatalf("register = %+v", env)
	}
	_, env = do(t, http.MethodGet, b.URL+"/api/user/check/email?email=new@example.com", "", nil)
	if string(env.Data) != "false" {
		t.Errorf("check registered email = %s; want false", env.Data)
	}
}
