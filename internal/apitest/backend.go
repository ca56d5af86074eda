package apitest

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/simp-lee/jwt"
	"golang.org/x/crypto/bcrypt"

	"github.com/simp-lee/waystar/internal/domain"
	"github.com/simp-lee/waystar/internal/pkg"
)

const (
	DefaultAdminPrefix = "/api/admin"

	tokenSecret = "apitest-token-secret-at-least-32-bytes"

	roleUser  = "user"
	roleAdmin = "admin"
)

// tokenClaims is what the backend remembers about a token it issued.
type tokenClaims struct {
	UserID   int64
	Username string
	Role     string
}

type account struct {
	id          int64
	username    string
	hash        []byte
	info        domain.UserInfo
	permissions []string
}

type failure struct {
	status  int
	message string
}

// Backend is a stateful fake of the travel backend. It covers user
// registration and login, admin login, favorites, browse records and the
// public slideshow.
type Backend struct {
	*httptest.Server

	AdminPrefix string
	TokenTTL    time.Duration

	mu          sync.Mutex
	tokens      jwt.Service
	issued      map[string]tokenClaims
	nextID      int64
	users       map[string]*account
	admins      map[string]*account
	collections map[int64]map[int64]bool
	browse      []domain.BrowseRecord
	slideshows  []domain.Slideshow
	clicks      map[int64]int
	hits        map[string]int
	failNext    map[string]failure
	codes       map[string]string
	logger      *slog.Logger
}

// NewBackend starts a Backend that is closed when the test ends.
func NewBackend(t testing.TB) *Backend {
	t.Helper()
	tokens, err := jwt.New(tokenSecret)
	if err != nil {
		t.Fatalf("apitest: token service: %v", err)
	}
	t.Cleanup(tokens.Close)

	b := &Backend{
		AdminPrefix: DefaultAdminPrefix,
		TokenTTL:    time.Hour,
		tokens:      tokens,
		issued:      make(map[string]tokenClaims),
		logger:      slog.New(slog.DiscardHandler),
		users:       make(map[string]*account),
		admins:      make(map[string]*account),
		collections: make(map[int64]map[int64]bool),
		clicks:      make(map[int64]int),
		hits:        make(map[string]int),
		failNext:    make(map[string]failure),
		codes:       make(map[string]string),
	}
	b.Server = httptest.NewServer(b.routes())
	t.Cleanup(b.Close)
	return b
}

func (b *Backend) routes() *gin.Engine {
	r := gin.New()
	r.Use(requestID(), accessLog(b.logger), recovery(b.logger), b.intercept)

	user := r.Group("/api/user")
	user.POST("/register", b.register)
	user.POST("/login", b.userLogin)
	user.GET("/check/username", b.checkUsername)
	user.GET("/check/email", b.checkEmail)
	user.POST("/logout", b.requireRole(roleUser), b.logout)
	user.GET("/info", b.requireRole(roleUser), b.userInfo)

	attraction := r.Group("/api/attraction/collection", b.requireRole(roleUser))
	attraction.GET("/ids", b.collectionIDs)
	attraction.POST("/:id", b.collect)
	attraction.DELETE("/:id", b.uncollect)
	attraction.GET("/:id/status", b.collectionStatus)

	r.POST("/api/attraction/batch", b.attractionBatch)
	r.POST("/api/email/sendCode", b.sendCode)
	r.POST("/api/browse/record", b.recordBrowse)
	r.GET("/api/home/slideshow/list", b.slideshowList)
	r.POST("/api/home/slideshow/click/:id", b.slideshowClick)

	admin := r.Group(b.AdminPrefix)
	admin.POST("/login", b.adminLogin)
	admin.POST("/logout", b.requireRole(roleAdmin), b.logout)
	admin.GET("/permissions", b.requireRole(roleAdmin), b.adminPermissions)

	return r
}

// intercept counts hits and serves injected failures.
func (b *Backend) intercept(c *gin.Context) {
	key := c.Request.Method + " " + c.Request.URL.Path

	b.mu.Lock()
	b.hits[key]++
	f, ok := b.failNext[key]
	if ok {
		delete(b.failNext, key)
	}
	b.mu.Unlock()

	if ok {
		pkg.Abort(c, f.status, f.message)
		return
	}
	c.Next()
}

// AddUser registers a site user and returns its id.
func (b *Backend) AddUser(username, password string, info domain.UserInfo) int64 {
	return b.addAccount(b.users, username, password, info, nil)
}

// AddAdmin registers a dashboard admin with the given permission codes.
func (b *Backend) AddAdmin(username, password string, permissions ...string) int64 {
	return b.addAccount(b.admins, username, password, domain.UserInfo{}, permissions)
}

func (b *Backend) addAccount(into map[string]*account, username, password string, info domain.UserInfo, perms []string) int64 {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(fmt.Sprintf("apitest: hash password: %v", err))
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	info.UserID = b.nextID
	info.Username = username
	into[username] = &account{id: b.nextID, username: username, hash: hash, info: info, permissions: perms}
	return b.nextID
}

// Token issues a user token for id that expires after ttl. A non-positive
// ttl yields a token that has already expired.
func (b *Backend) Token(id int64, username string, ttl time.Duration) string {
	return b.sign(id, username, roleUser, ttl)
}

func (b *Backend) sign(id int64, username, role string, ttl time.Duration) string {
	var (
		token string
		err   error
	)
	if ttl > 0 {
		token, err = b.tokens.GenerateToken(strconv.FormatInt(id, 10), []string{role}, ttl)
	} else {
		token, err = expiredToken(id, ttl)
	}
	if err != nil {
		panic(fmt.Sprintf("apitest: sign token: %v", err))
	}

	b.mu.Lock()
	b.issued[token] = tokenClaims{UserID: id, Username: username, Role: role}
	b.mu.Unlock()
	return token
}

// expiredToken signs a token whose exp lies in the past. The token service
// refuses non-positive lifetimes.
func expiredToken(id int64, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := gojwt.RegisteredClaims{
		Subject:   strconv.FormatInt(id, 10),
		IssuedAt:  gojwt.NewNumericDate(now.Add(ttl - time.Minute)),
		ExpiresAt: gojwt.NewNumericDate(now.Add(ttl)),
	}
	return gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(tokenSecret))
}

// SeedCollection marks attractions as favorited by user id.
func (b *Backend) SeedCollection(userID int64, attractionIDs ...int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	set := b.collectionSet(userID)
	for _, id := range attractionIDs {
		set[id] = true
	}
}

// Collection returns the sorted favorite ids of a user.
func (b *Backend) Collection(userID int64) []int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return sortedIDs(b.collections[userID])
}

// BrowseRecords returns the browse reports received so far.
func (b *Backend) BrowseRecords() []domain.BrowseRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]domain.BrowseRecord(nil), b.browse...)
}

// SetSlideshows replaces the active slideshow list.
func (b *Backend) SetSlideshows(items ...domain.Slideshow) {
	b.mu.Lock()
	b.slideshows = items
	b.mu.Unlock()
}

// Clicks returns the click count recorded for a slideshow.
func (b *Backend) Clicks(id int64) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.clicks[id]
}

// FailNext makes the next request to method and path fail with status.
func (b *Backend) FailNext(method, path string, status int, message string) {
	b.mu.Lock()
	b.failNext[method+" "+path] = failure{status: status, message: message}
	b.mu.Unlock()
}

// Hits returns how many requests reached method and path.
func (b *Backend) Hits(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[method+" "+path]
}

func (b *Backend) collectionSet(userID int64) map[int64]bool {
	set, ok := b.collections[userID]
	if !ok {
		set = make(map[int64]bool)
		b.collections[userID] = set
	}
	return set
}

func sortedIDs(set map[int64]bool) []int64 {
	ids := make([]int64, 0, len(set))
	for id, ok := range set {
		if ok {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

const (
	claimsKey = "claims"
	tokenKey  = "token"
)

// requireRole rejects requests without a valid token for role, the same way
// the real interceptor does: HTTP 401 with a message.
func (b *Backend) requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || raw == "" {
			pkg.Abort(c, http.StatusUnauthorized, "未提供认证令牌")
			return
		}

		if b.tokens.IsTokenRevoked(raw) {
			pkg.Abort(c, http.StatusUnauthorized, "令牌已失效,请重新登录")
			return
		}

		b.mu.Lock()
		claims, issued := b.issued[raw]
		b.mu.Unlock()
		if _, err := b.tokens.ValidateToken(raw); err != nil || !issued || claims.Role != role {
			pkg.Abort(c, http.StatusUnauthorized, "令牌无效或已过期")
			return
		}

		c.Set(claimsKey, &claims)
		c.Set(tokenKey, raw)
		c.Next()
	}
}

func claimsFrom(c *gin.Context) *tokenClaims {
	v, _ := c.Get(claimsKey)
	claims, _ := v.(*tokenClaims)
	return claims
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (b *Backend) authenticate(accounts map[string]*account, req loginRequest) (*account, bool) {
	b.mu.Lock()
	acc, ok := accounts[req.Username]
	b.mu.Unlock()
	if !ok {
		return nil, false
	}
	if err := bcrypt.CompareHashAndPassword(acc.hash, []byte(req.Password)); err != nil {
		return nil, false
	}
	return acc, true
}

func (b *Backend) userLogin(c *gin.Context) {
	var req loginRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}
	acc, ok := b.authenticate(b.users, req)
	if !ok {
		pkg.Fail(c, http.StatusUnauthorized, "用户名或密码错误")
		return
	}

	token := b.sign(acc.id, acc.username, roleUser, b.TokenTTL)
	pkg.SuccessMessage(c, "登录成功", domain.UserLogin{
		Success:  true,
		Message:  "登录成功",
		UserID:   acc.id,
		Username: acc.username,
		Email:    acc.info.Email,
		Avatar:   acc.info.Avatar,
		FullName: acc.info.FullName,
		Token:    token,
	})
}

func (b *Backend) userInfo(c *gin.Context) {
	claims := claimsFrom(c)
	b.mu.Lock()
	acc, ok := b.users[claims.Username]
	b.mu.Unlock()
	if !ok {
		pkg.Fail(c, http.StatusUnauthorized, "用户不存在")
		return
	}
	info := acc.info
	info.UserID = acc.id
	info.Username = acc.username
	pkg.SuccessMessage(c, "获取成功", info)
}

type registerRequest struct {
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
	Email           string `json:"email" binding:"required"`
	Captcha         string `json:"captcha" binding:"required"`
}

func (b *Backend) register(c *gin.Context) {
	var req registerRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}
	if req.Password != req.ConfirmPassword {
		pkg.Fail(c, http.StatusBadRequest, "两次输入的密码不一致")
		return
	}
	b.mu.Lock()
	code := b.codes[req.Email]
	b.mu.Unlock()
	if code == "" || code != req.Captcha {
		pkg.Fail(c, http.StatusBadRequest, "验证码错误或已过期")
		return
	}
	if !b.usernameAvailable(req.Username) {
		pkg.Fail(c, http.StatusBadRequest, "用户名已存在")
		return
	}
	if !b.emailAvailable(req.Email) {
		pkg.Fail(c, http.StatusBadRequest, "邮箱已被注册")
		return
	}

	id := b.AddUser(req.Username, req.Password, domain.UserInfo{Email: req.Email})
	pkg.SuccessMessage(c, "注册成功", domain.UserLogin{
		Success:  true,
		Message:  "注册成功",
		UserID:   id,
		Username: req.Username,
		Email:    req.Email,
		Token:    b.sign(id, req.Username, roleUser, b.TokenTTL),
	})
}

func (b *Backend) usernameAvailable(username string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, taken := b.users[username]
	return !taken
}

func (b *Backend) emailAvailable(email string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, acc := range b.users {
		if strings.EqualFold(acc.info.Email, email) {
			return false
		}
	}
	return true
}

func (b *Backend) checkUsername(c *gin.Context) {
	ok := b.usernameAvailable(c.Query("username"))
	msg := "用户名可用"
	if !ok {
		msg = "用户名已存在"
	}
	pkg.SuccessMessage(c, msg, ok)
}

func (b *Backend) checkEmail(c *gin.Context) {
	ok := b.emailAvailable(c.Query("email"))
	msg := "邮箱可用"
	if !ok {
		msg = "邮箱已被使用"
	}
	pkg.SuccessMessage(c, msg, ok)
}

func (b *Backend) sendCode(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		pkg.Fail(c, http.StatusBadRequest, "邮箱格式不正确")
		return
	}
	b.mu.Lock()
	b.codes[req.Email] = fmt.Sprintf("%06d", len(b.codes)+100000)
	b.mu.Unlock()
	pkg.SuccessMessage(c, "验证码已发送,请查收邮件", nil)
}

// Code returns the last verification code sent to email.
func (b *Backend) Code(email string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.codes[email]
}

func (b *Backend) logout(c *gin.Context) {
	if err := b.tokens.RevokeToken(c.GetString(tokenKey)); err != nil {
		pkg.Abort(c, http.StatusInternalServerError, "登出失败")
		return
	}
	pkg.SuccessMessage(c, "登出成功", nil)
}

func (b *Backend) adminLogin(c *gin.Context) {
	var req loginRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}
	acc, ok := b.authenticate(b.admins, req)
	if !ok {
		pkg.Fail(c, http.StatusUnauthorized, "用户名或密码错误")
		return
	}

	pkg.SuccessMessage(c, "登录成功", domain.AdminSession{
		Token:       b.sign(acc.id, acc.username, roleAdmin, b.TokenTTL),
		TokenType:   "Bearer",
		AdminID:     acc.id,
		Username:    acc.username,
		FullName:    acc.username,
		Permissions: acc.permissions,
	})
}

func (b *Backend) adminPermissions(c *gin.Context) {
	claims := claimsFrom(c)
	b.mu.Lock()
	acc := b.admins[claims.Username]
	b.mu.Unlock()

	var perms []string
	if acc != nil {
		perms = acc.permissions
	}
	pkg.Success(c, gin.H{"permissions": perms})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		pkg.Fail(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func (b *Backend) collectionIDs(c *gin.Context) {
	claims := claimsFrom(c)
	pkg.SuccessMessage(c, "获取成功", b.Collection(claims.UserID))
}

func (b *Backend) collect(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	claims := claimsFrom(c)
	b.mu.Lock()
	b.collectionSet(claims.UserID)[id] = true
	b.mu.Unlock()

	collected := true
	pkg.SuccessMessage(c, "收藏成功", domain.CollectResult{Collected: &collected})
}

func (b *Backend) uncollect(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	claims := claimsFrom(c)
	b.mu.Lock()
	delete(b.collectionSet(claims.UserID), id)
	b.mu.Unlock()

	uncollected := true
	pkg.SuccessMessage(c, "取消收藏成功", domain.CollectResult{Uncollected: &uncollected})
}

func (b *Backend) collectionStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	claims := claimsFrom(c)
	b.mu.Lock()
	collected := b.collections[claims.UserID][id]
	b.mu.Unlock()

	pkg.Success(c, domain.CollectResult{Collected: &collected})
}

// attractionBatch answers with a generated card per requested id.
func (b *Backend) attractionBatch(c *gin.Context) {
	var ids []int64
	if err := c.ShouldBindJSON(&ids); err != nil {
		pkg.Fail(c, http.StatusBadRequest, "景点ID列表不能为空")
		return
	}
	cards := make([]domain.AttractionCard, 0, len(ids))
	for _, id := range ids {
		cards = append(cards, domain.AttractionCard{
			AttractionID: id,
			Name:         fmt.Sprintf("Attraction %d", id),
		})
	}
	pkg.SuccessMessage(c, "获取成功", cards)
}

func (b *Backend) recordBrowse(c *gin.Context) {
	var rec domain.BrowseRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		pkg.Fail(c, http.StatusInternalServerError, "浏览记录保存失败: "+err.Error())
		return
	}
	if err := pkg.Validate(&rec); err != nil {
		pkg.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	b.mu.Lock()
	b.browse = append(b.browse, rec)
	b.mu.Unlock()
	pkg.SuccessMessage(c, "浏览记录保存成功", nil)
}

func (b *Backend) slideshowList(c *gin.Context) {
	b.mu.Lock()
	items := append([]domain.Slideshow(nil), b.slideshows...)
	b.mu.Unlock()
	pkg.SuccessMessage(c, "获取成功", items)
}

func (b *Backend) slideshowClick(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	b.mu.Lock()
	b.clicks[id]++
	b.mu.Unlock()
	pkg.SuccessMessage(c, "记录成功", nil)
}
