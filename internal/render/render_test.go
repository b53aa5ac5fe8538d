package render

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"pressroom/internal/filter"
	"pressroom/internal/identity"
	"pressroom/internal/models"
	"pressroom/internal/paginate"
	"pressroom/internal/view"
)

// fakeCategories counts how often the public overview is fetched.
type fakeCategories struct {
	web      []models.CategoryWithPosts
	all      []models.Category
	webCalls int
	navCalls int
}

func (f *fakeCategories) All(context.Context) ([]models.Category, error) { return f.all, nil }

func (f *fakeCategories) WebCategories(context.Context) ([]models.CategoryWithPosts, error) {
	f.webCalls++
	return f.web, nil
}

func (f *fakeCategories) AllWeb(context.Context) ([]models.Category, error) {
	f.navCalls++
	out := make([]models.Category, 0, len(f.web))
	for _, c := range f.web {
		out = append(out, c.Category)
	}
	return out, nil
}

type fakeUsers []models.User

func (u fakeUsers) All(context.Context) ([]models.User, error) { return u, nil }

func newTestRenderer(t *testing.T, cats *fakeCategories, users fakeUsers) *Renderer {
	t.Helper()
	rn, err := New(view.NewAdminUserHelper(users), view.NewCategoryHelper(cats))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return rn
}

func signedIn(req *http.Request) *http.Request {
	return req.WithContext(identity.WithIdentity(req.Context(), identity.Identity{
		UserID: uuid.New(), Email: "admin@pressroom.local", DisplayName: "Editor Admin",
	}))
}

func TestNewParsesTemplates(t *testing.T) {
	rn := newTestRenderer(t, &fakeCategories{}, nil)

	for _, name := range []string{
		"admin/login", "admin/categories", "admin/category_form", "admin/users",
		"public/home", "public/category",
	} {
		if _, ok := rn.templates[name]; !ok {
			t.Errorf("expected template %q to be parsed", name)
		}
	}
	for _, layout := range []string{"admin/base", "public/base"} {
		if _, ok := rn.templates[layout]; ok {
			t.Errorf("layout %q should not be registered as a page", layout)
		}
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	rn := newTestRenderer(t, &fakeCategories{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	if _, err := rn.Render(req, "admin/missing", &PageData{}); err == nil {
		t.Fatal("expected error for unknown template")
	}

	rr := httptest.NewRecorder()
	rn.Page(rr, req, http.StatusOK, "admin/missing", nil)
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rr.Code)
	}
}

func TestHomeFetchesWebCategoriesOncePerRender(t *testing.T) {
	excerpt := "First words"
	cats := &fakeCategories{web: []models.CategoryWithPosts{{
		Category: models.Category{Name: "News", Slug: "news", Type: models.CategoryTypePost},
		Posts:    []models.Post{{Title: "Hello world", Excerpt: &excerpt, PublishedAt: time.Now()}},
	}}}
	rn := newTestRenderer(t, cats, nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	body, err := rn.Render(req, "public/home", &PageData{Title: "Home"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if cats.webCalls != 1 {
		t.Errorf("WebCategories fetched %d times in one render, want 1", cats.webCalls)
	}
	html := string(body)
	for _, want := range []string{`href="/category/news"`, "Hello world", "First words"} {
		if !strings.Contains(html, want) {
			t.Errorf("home page should contain %q", want)
		}
	}

	if _, err := rn.Render(req, "public/home", &PageData{Title: "Home"}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if cats.webCalls != 2 {
		t.Errorf("second render should fetch again: calls = %d, want 2", cats.webCalls)
	}
}

func TestCategoryPageRendersMarkdownAndPager(t *testing.T) {
	rn := newTestRenderer(t, &fakeCategories{web: []models.CategoryWithPosts{
		{Category: models.Category{Name: "Arts", Slug: "arts"}},
		{Category: models.Category{Name: "News", Slug: "news"}},
	}}, nil)
	req := httptest.NewRequest(http.MethodGet, "/category/news?page=2", nil)

	pager := &paginate.Paginator[models.Post]{
		Items:   []models.Post{{Title: "Older story", PublishedAt: time.Now()}},
		Page:    2,
		PerPage: 1,
		Total:   3,
	}
	body, err := rn.Render(req, "public/category", &PageData{
		Title: "News",
		Data: map[string]any{
			"Category": &models.Category{Name: "News", Slug: "news", Description: "All the **news**."},
			"Pager":    pager,
			"Path":     "/category/news",
		},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	html := string(body)
	for _, want := range []string{
		`<a href="/category/arts">Arts</a><a href="/category/news">News</a>`,
		"<strong>news</strong>",
		"Older story",
		`href="/category/news?page=1"`,
		`href="/category/news?page=3"`,
		`<a href="/category/arts">Arts</a>`,
		`<li class="current"><a href="/category/news">News</a>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("category page should contain %q", want)
		}
	}
}

func TestPublicNavSkipsPostListings(t *testing.T) {
	cats := &fakeCategories{web: []models.CategoryWithPosts{
		{Category: models.Category{Name: "Arts", Slug: "arts"}},
		{Category: models.Category{Name: "News", Slug: "news"}},
	}}
	rn := newTestRenderer(t, cats, nil)
	req := httptest.NewRequest(http.MethodGet, "/category/news", nil)

	_, err := rn.Render(req, "public/category", &PageData{
		Title: "News",
		Data: map[string]any{
			"Category": &models.Category{Name: "News", Slug: "news"},
			"Pager":    &paginate.Paginator[models.Post]{Page: 1, PerPage: 10},
			"Path":     "/category/news",
		},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if cats.webCalls != 0 {
		t.Errorf("category page loaded posts for every category %d times, want 0", cats.webCalls)
	}
	if cats.navCalls != 1 {
		t.Errorf("AllWeb called %d times in one render, want 1", cats.navCalls)
	}
}

func TestAdminLayoutShowsCurrentUser(t *testing.T) {
	rn := newTestRenderer(t, &fakeCategories{}, fakeUsers{
		{Email: "admin@pressroom.local", DisplayName: "Editor Admin"},
	})

	body, err := rn.Render(signedIn(httptest.NewRequest(http.MethodGet, "/admin/users", nil)), "admin/users",
		&PageData{Title: "Users", Section: "users"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := string(body)
	if !strings.Contains(html, "Sign out") || !strings.Contains(html, "Editor Admin") {
		t.Error("signed-in layout should show the user and a sign-out form")
	}
	if !strings.Contains(html, "admin@pressroom.local") || !strings.Contains(html, "never") {
		t.Error("users page should list the admin with no login yet")
	}

	body, err = rn.Render(httptest.NewRequest(http.MethodGet, "/admin/users", nil), "admin/users", &PageData{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(string(body), "Sign out") {
		t.Error("anonymous layout should not show a sign-out form")
	}
}

func TestCategoryFormShowsMessages(t *testing.T) {
	rn := newTestRenderer(t, &fakeCategories{all: []models.Category{{Name: "News", Slug: "news"}}}, nil)
	msgs := filter.Messages{}
	msgs.Add("name", "Value is required.")

	body, err := rn.Render(signedIn(httptest.NewRequest(http.MethodGet, "/admin/categories/new", nil)),
		"admin/category_form", &PageData{
			Title: "New category",
			Data: map[string]any{
				"Action": "/admin/categories",
				"Input":  filter.CategoryInput{Slug: "bad slug", Type: "page"},
				"Errors": msgs,
			},
		})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	html := string(body)
	for _, want := range []string{"Value is required.", `value="bad slug"`, `<option value="page" selected>`, "News (news)"} {
		if !strings.Contains(html, want) {
			t.Errorf("form should contain %q", want)
		}
	}
}

func TestHTMXRendersContentOnly(t *testing.T) {
	rn := newTestRenderer(t, &fakeCategories{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/admin/categories", nil)
	req.Header.Set("HX-Request", "true")

	body, err := rn.Render(req, "admin/categories", &PageData{
		Data: map[string]any{"Pager": &paginate.Paginator[models.Category]{Items: []models.Category{}, Page: 1, PerPage: 10}},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := string(body)
	if strings.Contains(html, "<html") {
		t.Error("HTMX response should not include the layout")
	}
	if !strings.Contains(html, "No categories yet.") {
		t.Error("HTMX response should include the page content")
	}
}

func TestPageWritesStatus(t *testing.T) {
	rn := newTestRenderer(t, &fakeCategories{}, nil)
	rr := httptest.NewRecorder()

	rn.Page(rr, httptest.NewRequest(http.MethodGet, "/admin/login", nil), http.StatusUnauthorized, "admin/login",
		&PageData{Data: map[string]any{"Error": "Invalid email or password.", "Email": "x@y.z"}})

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type: got %q", ct)
	}
	if !strings.Contains(rr.Body.String(), "Invalid email or password.") {
		t.Error("login page should show the error")
	}
}
