package pets

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Pet
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(_ context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(_ context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) ListByOwner(_ context.Context, ownerUserID string) ([]Pet, error) {
	out := []Pet{}
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *testRepo) ListPublic(_ context.Context, f ListFilter) ([]Pet, int, error) {
	all := []Pet{}
	for _, p := range r.byID {
		if !IsPublic(p) {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
			continue
		}
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := len(all)
	if f.Offset >= total {
		return []Pet{}, total, nil
	}
	end := f.Offset + f.Limit
	if end > total {
		end = total
	}
	return all[f.Offset:end], total, nil
}

type testOwners map[string]bool

func (o testOwners) Exists(_ context.Context, userID string) (bool, error) {
	return o[userID], nil
}

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo, testOwners{"owner-1": true, "other-1": true})
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	return svc, repo
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// -------------------------
// Tests
// -------------------------

func TestCreate_Defaults(t *testing.T) {
	svc, _ := newTestService()

	p, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "  Luna ", FunFacts: "sleeps all day"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Name != "Luna" || !p.Enabled || p.ID == "" || p.Image != "" {
		t.Fatalf("unexpected pet %+v", p)
	}
	if !p.CreatedAt.Equal(p.UpdatedAt) {
		t.Fatalf("expected created == updated on create")
	}
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	cases := []struct {
		name  string
		owner string
		in    CreateInput
		want  error
	}{
		{"missing owner", "", CreateInput{Name: "Luna", FunFacts: "x"}, ErrInvalidInput},
		{"blank name", "owner-1", CreateInput{Name: "  ", FunFacts: "x"}, ErrInvalidInput},
		{"name too long", "owner-1", CreateInput{Name: strings.Repeat("a", MaxNameLen+1), FunFacts: "x"}, ErrInvalidInput},
		{"missing fun facts", "owner-1", CreateInput{Name: "Luna"}, ErrInvalidInput},
		{"unknown owner", "ghost", CreateInput{Name: "Luna", FunFacts: "x"}, ErrOwnerNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tc.owner, tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCreate_Disabled(t *testing.T) {
	svc, _ := newTestService()
	p, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "Luna", FunFacts: "x", Enabled: boolPtr(false)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Enabled || IsPublic(p) {
		t.Fatalf("expected disabled pet")
	}
}

func TestOwnershipGuard(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, "owner-1", CreateInput{Name: "Luna", FunFacts: "x"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(ctx, p.ID, "other-1", UpdateInput{Name: strPtr("Mine")}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden update, got %v", err)
	}
	if _, err := svc.Toggle(ctx, p.ID, "other-1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden toggle, got %v", err)
	}
	if err := svc.Delete(ctx, p.ID, "other-1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden delete, got %v", err)
	}

	// 404 antes que 403
	if _, err := svc.Toggle(ctx, "missing", "other-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for missing pet, got %v", err)
	}
}

func TestUpdate_Partial(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, "owner-1", CreateInput{Name: "Luna", FunFacts: "x", Image: "https://img/luna.png"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, p.ID, "owner-1", UpdateInput{FunFacts: strPtr("loves boxes"), Image: strPtr("")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Luna" || updated.FunFacts != "loves boxes" || updated.Image != "" {
		t.Fatalf("unexpected update result %+v", updated)
	}
	if !updated.UpdatedAt.After(p.UpdatedAt) {
		t.Fatalf("expected updatedAt to move forward")
	}

	if _, err := svc.Update(ctx, p.ID, "owner-1", UpdateInput{Name: strPtr(" ")}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid name, got %v", err)
	}
}

func TestToggle_FlipsVisibility(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	p, _ := svc.Create(ctx, "owner-1", CreateInput{Name: "Luna", FunFacts: "x"})

	off, err := svc.Toggle(ctx, p.ID, "owner-1")
	if err != nil || off.Enabled {
		t.Fatalf("expected disabled after toggle, got %+v err=%v", off, err)
	}
	if repo.byID[p.ID].Enabled {
		t.Fatalf("expected toggle persisted")
	}

	// deshabilitada sigue existiendo para likes
	if err := svc.EnsureExists(ctx, p.ID); err != nil {
		t.Fatalf("disabled pet must still exist: %v", err)
	}

	on, err := svc.Toggle(ctx, p.ID, "owner-1")
	if err != nil || !on.Enabled {
		t.Fatalf("expected enabled after second toggle, got %+v err=%v", on, err)
	}
}

func TestEnsureExists(t *testing.T) {
	svc, _ := newTestService()
	if err := svc.EnsureExists(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p, _ := svc.Create(ctx, "owner-1", CreateInput{Name: "Luna", FunFacts: "x"})
	if err := svc.Delete(ctx, p.ID, "owner-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.EnsureExists(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected pet gone, got %v", err)
	}
}

func TestListPublic_PaginationAndSearch(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for _, name := range []string{"Luna", "Milo", "Lunita", "Rex", "Bolt"} {
		if _, err := svc.Create(ctx, "owner-1", CreateInput{Name: name, FunFacts: "x"}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	hidden, _ := svc.Create(ctx, "owner-1", CreateInput{Name: "Lunar Hidden", FunFacts: "x", Enabled: boolPtr(false)})

	page, err := svc.ListPublic(ctx, ListPublicInput{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 2 || page.Items[0].Name != "Bolt" {
		t.Fatalf("expected newest first page of 2, got %+v", page.Items)
	}
	want := Pagination{CurrentPage: 1, TotalPages: 3, TotalItems: 5, HasMore: true}
	if page.Pagination != want {
		t.Fatalf("expected %+v, got %+v", want, page.Pagination)
	}

	last, _ := svc.ListPublic(ctx, ListPublicInput{Page: 3, Limit: 2})
	if last.Pagination.HasMore || len(last.Items) != 1 {
		t.Fatalf("unexpected last page %+v", last)
	}

	found, _ := svc.ListPublic(ctx, ListPublicInput{Search: "LUN"})
	if found.Pagination.TotalItems != 2 {
		t.Fatalf("expected 2 matches for LUN, got %+v", found.Pagination)
	}
	for _, p := range found.Items {
		if p.ID == hidden.ID {
			t.Fatalf("disabled pet leaked into public search")
		}
	}

	// defaults
	def, _ := svc.ListPublic(ctx, ListPublicInput{Page: 0, Limit: 0})
	if def.Pagination.CurrentPage != 1 || len(def.Items) != 5 {
		t.Fatalf("unexpected defaults %+v", def.Pagination)
	}
}

func TestListPublic_Empty(t *testing.T) {
	svc, _ := newTestService()
	page, err := svc.ListPublic(context.Background(), ListPublicInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Items == nil || page.Pagination.TotalPages != 0 || page.Pagination.HasMore {
		t.Fatalf("unexpected empty page %+v", page)
	}
}

func TestAssertOwner(t *testing.T) {
	p := Pet{OwnerUserID: "owner-1"}
	if err := AssertOwner(p, "owner-1"); err != nil {
		t.Fatalf("owner must pass: %v", err)
	}
	if err := AssertOwner(p, ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("empty actor must be forbidden")
	}
}
