package handlers_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"smartpantry/internal/config"
	"smartpantry/internal/http/handlers"
	"smartpantry/internal/repos"
	"smartpantry/internal/services"
)

// newTestApp wires the app the same way main does, minus rate limiting.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))

	deps := handlers.NewDeps(db, config.Config{}, authSvc)
	authH := deps.AuthHandler

	app.Get("/login", authH.LoginForm)
	app.Post("/login", authH.Login)
	app.Get("/register", authH.RegisterForm)
	app.Post("/register", authH.Register)
	app.Post("/logout", authH.Logout)

	guard := handlers.RequireUser(authSvc)
	app.Get("/", guard, deps.PantryHandler.Dashboard)
	app.Get("/scan", guard, deps.PantryHandler.ScanPage)
	app.Post("/items", guard, deps.PantryHandler.Add)
	app.Post("/items/clear", guard, deps.PantryHandler.ClearAll)
	app.Post("/items/:id/delete", guard, deps.PantryHandler.Delete)
	app.Post("/items/:id/:action", guard, deps.PantryHandler.UpdateQuantity)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	return app, db
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// signUpAndLogin registers a user and returns (csrf, sid) cookies.
func signUpAndLogin(t *testing.T, app *fiber.App) (string, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/login", nil))
	if err != nil {
		t.Fatal(err)
	}
	csrfTok := extractCookie(resp, "csrf_")
	if csrfTok == "" {
		t.Fatal("csrf token missing")
	}

	form := func(vals url.Values) *http.Request {
		vals.Set("csrf", csrfTok)
		req := httptest.NewRequest("POST", "/register", strings.NewReader(vals.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
		return req
	}
	respReg, err := app.Test(form(url.Values{"username": {"sara"}, "password": {"correct-password"}}))
	if err != nil {
		t.Fatal(err)
	}
	if respReg.StatusCode != http.StatusFound {
		t.Fatalf("register expected redirect, got %d", respReg.StatusCode)
	}

	body := strings.NewReader("csrf=" + csrfTok + "&username=sara&password=correct-password")
	reqLogin := httptest.NewRequest("POST", "/login", body)
	reqLogin.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	reqLogin.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
	respLogin, err := app.Test(reqLogin)
	if err != nil {
		t.Fatal(err)
	}
	if respLogin.StatusCode != http.StatusFound {
		t.Fatalf("login expected redirect, got %d", respLogin.StatusCode)
	}
	sid := extractCookie(respLogin, "sid")
	if sid == "" {
		t.Fatal("sid cookie missing after login")
	}
	return csrfTok, sid
}

func authedForm(path, body, csrfTok, sid string) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader("csrf="+csrfTok+"&"+body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	return req
}

func TestDashboardRequiresLogin(t *testing.T) {
	app, _ := newTestApp(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect to login, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Fatalf("expected /login, got %s", loc)
	}
}

func TestMutationRejectedWithoutCSRF(t *testing.T) {
	app, _ := newTestApp(t)
	_, sid := signUpAndLogin(t, app)

	req := httptest.NewRequest("POST", "/items", strings.NewReader("name_primary=Milk&name_secondary=Milk"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("missing csrf token should be 403, got %d", resp.StatusCode)
	}
}

func TestAddItemAndSeeItOnDashboard(t *testing.T) {
	app, _ := newTestApp(t)
	csrfTok, sid := signUpAndLogin(t, app)

	resp, err := app.Test(authedForm("/items", "name_primary=Milk&name_secondary=حليب&quantity=1&min_quantity=2", csrfTok, sid))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("add expected redirect, got %d", resp.StatusCode)
	}

	reqDash := httptest.NewRequest("GET", "/", nil)
	reqDash.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	respDash, err := app.Test(reqDash)
	if err != nil {
		t.Fatal(err)
	}
	if respDash.StatusCode != http.StatusOK {
		t.Fatalf("dashboard expected 200, got %d", respDash.StatusCode)
	}
	body, _ := io.ReadAll(respDash.Body)
	s := string(body)
	if !strings.Contains(s, "Milk") {
		t.Fatal("added item missing from dashboard")
	}
	// qty 1 <= min 2, so it must be on the shopping list too
	if !strings.Contains(s, "Milk (1/2)") {
		t.Fatalf("item missing from shopping list; body=%s", s)
	}
}

func TestAddItemValidationFailure(t *testing.T) {
	app, db := newTestApp(t)
	csrfTok, sid := signUpAndLogin(t, app)

	resp, err := app.Test(authedForm("/items", "name_primary=%20%20&name_secondary=ok", csrfTok, sid))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("blank name should be 400, got %d", resp.StatusCode)
	}
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM items`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("failed add wrote %d rows", n)
	}
}

func TestQuantityButtonsAndDelete(t *testing.T) {
	app, db := newTestApp(t)
	csrfTok, sid := signUpAndLogin(t, app)

	if _, err := app.Test(authedForm("/items", "name_primary=Rice&name_secondary=Rice&quantity=0&min_quantity=1", csrfTok, sid)); err != nil {
		t.Fatal(err)
	}
	var id int64
	if err := db.Get(&id, `SELECT id FROM items LIMIT 1`); err != nil {
		t.Fatal(err)
	}
	itemPath := fmt.Sprintf("/items/%d/", id)

	// dec on zero stays zero
	if _, err := app.Test(authedForm(itemPath+"dec", "", csrfTok, sid)); err != nil {
		t.Fatal(err)
	}
	var qty int
	if err := db.Get(&qty, `SELECT quantity FROM items WHERE id=?`, id); err != nil {
		t.Fatal(err)
	}
	if qty != 0 {
		t.Fatalf("quantity went negative or moved: %d", qty)
	}

	// inc then delete
	if _, err := app.Test(authedForm(itemPath+"inc", "", csrfTok, sid)); err != nil {
		t.Fatal(err)
	}
	respDel, err := app.Test(authedForm(itemPath+"delete", "", csrfTok, sid))
	if err != nil {
		t.Fatal(err)
	}
	if respDel.StatusCode != http.StatusFound {
		t.Fatalf("delete expected redirect, got %d", respDel.StatusCode)
	}

	// delete again -> not found
	respGone, err := app.Test(authedForm(itemPath+"delete", "", csrfTok, sid))
	if err != nil {
		t.Fatal(err)
	}
	if respGone.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete expected 404, got %d", respGone.StatusCode)
	}
}

func TestHealthzIsPublic(t *testing.T) {
	app, _ := newTestApp(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/healthz", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"ok":true`) {
		t.Fatalf("unexpected health body: %s", body)
	}
}

func TestDashboardEscapesItemNames(t *testing.T) {
	app, db := newTestApp(t)
	_, sid := signUpAndLogin(t, app)

	if _, err := db.Exec(`INSERT INTO items(name_primary,name_secondary,quantity,min_quantity) VALUES('<script>alert(1)</script>','x',5,2)`); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	s := string(body)
	if strings.Contains(s, "<script>alert(1)</script>") {
		t.Fatal("found unescaped script tag in output")
	}
	if !strings.Contains(s, "&lt;script&gt;alert(1)&lt;/script&gt;") {
		t.Fatal("escaped item name not rendered")
	}
}
