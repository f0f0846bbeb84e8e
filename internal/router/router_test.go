package router

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/db"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBSeq atomic.Int64

// client drives the full engine like a browser, carrying session cookies
// between requests.
type client struct {
	t       *testing.T
	engine  *gin.Engine
	cookies []*http.Cookie
}

func newClient(t *testing.T) *client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:routertest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	cfg := &config.Config{
		SessionSecret: "test-secret",
		AdminIDs:      []uint{1, 2},
	}

	r := gin.New()
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("inkwell_session", store))
	r.HTMLRender = stubTemplates()
	RegisterRoutes(r, conn, cfg)

	return &client{t: t, engine: r}
}

// stubTemplates registers every view name the handlers render, with just
// enough output to assert on.
func stubTemplates() multitemplate.Renderer {
	r := multitemplate.NewRenderer()
	r.AddFromString("pages/home.html", "home")
	r.AddFromString("pages/portfolio.html", "portfolio")
	r.AddFromString("pages/sv.html", "sv:{{.Style}}:{{.Score}}")
	r.AddFromString("pages/about.html", "about")
	r.AddFromString("pages/contact.html", "contact:{{.Error}}{{.Success}}")
	r.AddFromString("blog/index.html",
		"{{if .CurrentUser}}user:{{.CurrentUser.Name}};{{end}}{{range .Posts}}{{.Title}};{{end}}")
	r.AddFromString("blog/show.html",
		"{{.Post.Title}}|{{range .Comments}}{{.User.Name}}:{{.Text}};{{end}}")
	r.AddFromString("blog/new.html", "new:{{.Error}}")
	r.AddFromString("blog/edit.html", "edit:{{.Fields.Title}}")
	r.AddFromString("auth/register.html", "register:{{.Error}}")
	r.AddFromString("auth/login.html", "login:{{.Error}}")
	r.AddFromString("error.html", "error:{{.Error}}")
	return r
}

func (c *client) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	c.t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	c.engine.ServeHTTP(w, req)

	if set := w.Result().Cookies(); len(set) > 0 {
		c.cookies = set
	}
	return w
}

func (c *client) register(email, name, password string) *httptest.ResponseRecorder {
	return c.do(http.MethodPost, "/register", url.Values{
		"email":    {email},
		"name":     {name},
		"password": {password},
	})
}

func (c *client) login(email, password string) *httptest.ResponseRecorder {
	return c.do(http.MethodPost, "/login", url.Values{
		"email":    {email},
		"password": {password},
	})
}

func (c *client) logout() {
	c.do(http.MethodGet, "/logout", nil)
}

func TestStaticPages(t *testing.T) {
	c := newClient(t)

	for path, want := range map[string]string{
		"/":          "home",
		"/portfolio": "portfolio",
		"/about":     "about",
	} {
		w := c.do(http.MethodGet, path, nil)
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), want) {
			t.Errorf("GET %s = %d %q", path, w.Code, w.Body.String())
		}
	}

	w := c.do(http.MethodGet, "/sv", nil)
	if !strings.Contains(w.Body.String(), "style.scc") || !strings.Contains(w.Body.String(), "0") {
		t.Errorf("sv page missing its fixed variables: %q", w.Body.String())
	}
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	c := newClient(t)

	w := c.register("a@x.com", "A", "pw1secret")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/main" {
		t.Fatalf("register = %d -> %q", w.Code, w.Header().Get("Location"))
	}

	// Session established: the blog index sees the viewer
	w = c.do(http.MethodGet, "/main", nil)
	if !strings.Contains(w.Body.String(), "user:A;") {
		t.Errorf("viewer not authenticated on /main: %q", w.Body.String())
	}

	c.logout()
	w = c.do(http.MethodGet, "/main", nil)
	if strings.Contains(w.Body.String(), "user:A;") {
		t.Errorf("viewer still authenticated after logout: %q", w.Body.String())
	}

	w = c.login("a@x.com", "pw1secret")
	if w.Code != http.StatusFound {
		t.Errorf("login = %d", w.Code)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	c := newClient(t)

	c.register("a@x.com", "A", "pw1secret")
	c.logout()

	w := c.register("a@x.com", "B", "pw2secret")
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate register = %d, want 409", w.Code)
	}
}

func TestLoginFailures(t *testing.T) {
	c := newClient(t)
	c.register("a@x.com", "A", "pw1secret")
	c.logout()

	if w := c.login("nobody@x.com", "pw1secret"); w.Code != http.StatusUnauthorized {
		t.Errorf("unknown email login = %d, want 401", w.Code)
	}
	if w := c.login("a@x.com", "wrong"); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password login = %d, want 401", w.Code)
	}
}

func TestAdminGate(t *testing.T) {
	c := newClient(t)

	// Anonymous
	if w := c.do(http.MethodGet, "/new-post", nil); w.Code != http.StatusForbidden {
		t.Errorf("anonymous /new-post = %d, want 403", w.Code)
	}

	// Burn ids 1 and 2 (the allow-list), then a third non-admin account
	c.register("admin@x.com", "Admin", "pw1secret")
	c.logout()
	c.register("second@x.com", "Second", "pw2secret")
	c.logout()
	c.register("user@x.com", "User", "pw3secret")

	if w := c.do(http.MethodGet, "/new-post", nil); w.Code != http.StatusForbidden {
		t.Errorf("non-admin /new-post = %d, want 403", w.Code)
	}
	if w := c.do(http.MethodPost, "/edit-post/1", url.Values{"title": {"X"}, "body": {"y"}}); w.Code != http.StatusForbidden {
		t.Errorf("non-admin edit = %d, want 403", w.Code)
	}
	if w := c.do(http.MethodGet, "/delete/1", nil); w.Code != http.StatusForbidden {
		t.Errorf("non-admin delete = %d, want 403", w.Code)
	}

	c.logout()
	c.login("admin@x.com", "pw1secret")
	if w := c.do(http.MethodGet, "/new-post", nil); w.Code != http.StatusOK {
		t.Errorf("admin /new-post = %d, want 200", w.Code)
	}
}

func TestPostLifecycle(t *testing.T) {
	c := newClient(t)
	c.register("admin@x.com", "Admin", "pw1secret")

	w := c.do(http.MethodPost, "/new-post", url.Values{
		"title":    {"First Post"},
		"subtitle": {"sub"},
		"body":     {"hello world"},
	})
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/post/1" {
		t.Fatalf("create = %d -> %q", w.Code, w.Header().Get("Location"))
	}

	w = c.do(http.MethodGet, "/main", nil)
	if !strings.Contains(w.Body.String(), "First Post;") {
		t.Errorf("new post not listed: %q", w.Body.String())
	}

	w = c.do(http.MethodPost, "/edit-post/1", url.Values{
		"title": {"Renamed"},
		"body":  {"edited"},
	})
	if w.Code != http.StatusFound {
		t.Fatalf("edit = %d", w.Code)
	}
	w = c.do(http.MethodGet, "/post/1", nil)
	if !strings.Contains(w.Body.String(), "Renamed") {
		t.Errorf("edit not applied: %q", w.Body.String())
	}

	w = c.do(http.MethodGet, "/delete/1", nil)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/main" {
		t.Fatalf("delete = %d -> %q", w.Code, w.Header().Get("Location"))
	}
	if w = c.do(http.MethodGet, "/post/1", nil); w.Code != http.StatusNotFound {
		t.Errorf("deleted post = %d, want 404", w.Code)
	}
}

func TestCommenting(t *testing.T) {
	c := newClient(t)
	c.register("admin@x.com", "Admin", "pw1secret")
	c.do(http.MethodPost, "/new-post", url.Values{
		"title": {"First Post"},
		"body":  {"hello world"},
	})
	c.logout()

	// Anonymous commenters are sent to the login page
	w := c.do(http.MethodPost, "/post/1", url.Values{"comment": {"anon"}})
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/login" {
		t.Errorf("anonymous comment = %d -> %q", w.Code, w.Header().Get("Location"))
	}
	w = c.do(http.MethodGet, "/post/1", nil)
	if strings.Contains(w.Body.String(), "anon") {
		t.Errorf("anonymous comment was stored: %q", w.Body.String())
	}

	c.register("reader@x.com", "Reader", "pw2secret")
	w = c.do(http.MethodPost, "/post/1", url.Values{"comment": {"nice one"}})
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/post/1" {
		t.Fatalf("comment = %d -> %q", w.Code, w.Header().Get("Location"))
	}

	w = c.do(http.MethodGet, "/post/1", nil)
	if !strings.Contains(w.Body.String(), "Reader:nice one;") {
		t.Errorf("comment not shown: %q", w.Body.String())
	}
}

func TestContactFormUnconfiguredRelay(t *testing.T) {
	c := newClient(t)

	w := c.do(http.MethodPost, "/contact.html", url.Values{
		"name":    {"Ann"},
		"email":   {"ann@x.com"},
		"message": {"hello"},
	})
	if w.Code != http.StatusBadGateway {
		t.Errorf("contact with no relay = %d, want 502", w.Code)
	}
}
