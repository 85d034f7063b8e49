package pages

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/promptdeck/promptdeck/pkg/models"
	"github.com/promptdeck/promptdeck/pkg/tags"
)

func newTestStore(t *testing.T, dir string) *tags.Store {
	t.Helper()
	store := tags.NewStore(filepath.Join(dir, "tags.json"))
	if err := store.Save(templateCollection()); err != nil {
		t.Fatalf("seeding store: %v", err)
	}
	return store
}

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	dir := t.TempDir()
	store := newTestStore(t, dir)
	return NewManager(filepath.Join(dir, "pages_data.json"), store), dir
}

func TestCreatePageBecomesCurrent(t *testing.T) {
	m, _ := newTestManager(t)

	page := m.CreatePage("first")
	if m.CurrentPage() != page {
		t.Error("created page is not current")
	}
	if page.ID != 1 {
		t.Errorf("first page id = %d, want 1", page.ID)
	}
	if m.NextID() != 2 {
		t.Errorf("next id = %d, want 2", m.NextID())
	}

	// Default name derives from the allocated id.
	second := m.CreatePage("")
	if second.Name != "Page 2" {
		t.Errorf("default name = %q", second.Name)
	}
}

func TestDeletePageFloor(t *testing.T) {
	m, _ := newTestManager(t)
	page := m.CreatePage("only")

	if m.DeletePage(page.ID) {
		t.Error("deleting the sole page succeeded")
	}
	if m.Len() != 1 {
		t.Errorf("page count = %d, want 1", m.Len())
	}
}

func TestDeleteCurrentFallsBack(t *testing.T) {
	m, _ := newTestManager(t)
	first := m.CreatePage("a")
	second := m.CreatePage("b")

	if !m.DeletePage(second.ID) {
		t.Fatal("delete failed")
	}
	if m.CurrentID() != first.ID {
		t.Errorf("current = %d, want fallback to %d", m.CurrentID(), first.ID)
	}

	if m.DeletePage(999) {
		t.Error("delete of unknown id succeeded")
	}
}

func TestMonotonicIDAllocation(t *testing.T) {
	m, _ := newTestManager(t)
	m.CreatePage("1")
	second := m.CreatePage("2")
	m.CreatePage("3")

	used := map[int]bool{1: true, 2: true, 3: true}
	m.DeletePage(second.ID)

	fresh := m.CreatePage("4")
	if used[fresh.ID] {
		t.Errorf("page id %d was reused", fresh.ID)
	}
	if fresh.ID != 4 {
		t.Errorf("new id = %d, want 4", fresh.ID)
	}
}

func TestClearAllResetsAllocation(t *testing.T) {
	m, _ := newTestManager(t)
	m.CreatePage("a")
	m.CreatePage("b")

	m.ClearAll()
	if m.Len() != 0 || m.CurrentID() != 0 || m.NextID() != 1 {
		t.Errorf("clear all left state: len=%d current=%d next=%d", m.Len(), m.CurrentID(), m.NextID())
	}

	// The shell creates a fresh default page right after.
	page := m.EnsureDefaultPage()
	if page == nil || m.Len() != 1 {
		t.Error("default page not created after clear")
	}
}

func TestRenamePage(t *testing.T) {
	m, _ := newTestManager(t)
	page := m.CreatePage("old")

	if !m.RenamePage(page.ID, "new") {
		t.Fatal("rename failed")
	}
	if page.Name != "new" {
		t.Errorf("name = %q", page.Name)
	}
	if m.RenamePage(999, "x") {
		t.Error("rename of unknown id succeeded")
	}
}

func TestSelectionIsolationAcrossPages(t *testing.T) {
	m, _ := newTestManager(t)
	a := m.CreatePage("A")
	b := m.CreatePage("B")

	if !a.TagManager().Toggle(models.TagTypeHead, "Style", "Masterpiece") {
		t.Fatal("toggle on page A failed")
	}
	if b.TagManager().IsSelected(models.TagTypeHead, "", "Masterpiece") {
		t.Error("selection leaked from page A to page B")
	}
}

func TestSwitchToOrdering(t *testing.T) {
	m, _ := newTestManager(t)
	a := m.CreatePage("A")
	b := m.CreatePage("B")

	bindA := &fakeBinding{input: "text on A"}
	bindB := &fakeBinding{}
	a.Bind(bindA)
	b.Bind(bindB)

	m.SwitchTo(a.ID)
	if m.CurrentID() != a.ID {
		t.Fatal("switch did not move current")
	}
	// Outgoing page saved before incoming restored, in strict sequence.
	if b.InputText != "" {
		t.Errorf("outgoing page text = %q", b.InputText)
	}
	wantA := []string{"show", "setInput", "render"}
	gotA := bindA.calls
	if len(gotA) < len(wantA) {
		t.Fatalf("incoming binding calls = %v", gotA)
	}
	for i, call := range wantA {
		if gotA[i] != call {
			t.Errorf("incoming call[%d] = %q, want %q (selection sync must precede render)", i, gotA[i], call)
		}
	}
	if len(bindB.calls) == 0 || bindB.calls[len(bindB.calls)-1] != "hide" {
		t.Errorf("outgoing binding calls = %v, want trailing hide", bindB.calls)
	}

	// Switching to an unknown id is a no-op.
	m.SwitchTo(999)
	if m.CurrentID() != a.ID {
		t.Error("switch to unknown id moved current")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore(t, dir)
	dataPath := filepath.Join(dir, "pages_data.json")

	m := NewManager(dataPath, store)
	a := m.CreatePage("A")
	a.InputText = "some input"
	a.LastTranslation = "a cat"
	a.TagManager().Toggle(models.TagTypeHead, "Style", "8K")
	b := m.CreatePage("B")
	m.SwitchTo(a.ID)
	if err := m.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	fresh := NewManager(dataPath, store)
	if fresh.Len() != 2 {
		t.Fatalf("reloaded %d pages, want 2", fresh.Len())
	}
	if fresh.CurrentID() != a.ID {
		t.Errorf("current = %d, want %d", fresh.CurrentID(), a.ID)
	}
	if fresh.NextID() != 3 {
		t.Errorf("next id = %d, want 3", fresh.NextID())
	}

	ra, ok := fresh.Page(a.ID)
	if !ok {
		t.Fatal("page A missing after reload")
	}
	if ra.Name != "A" || ra.InputText != "some input" || ra.LastTranslation != "a cat" {
		t.Errorf("page A fields changed: %+v", ra)
	}
	// Selection state round-trips through the selected flags themselves.
	if !ra.Tags[models.TagTypeHead]["Style"]["8K"].Selected {
		t.Error("selection lost in round trip")
	}
	if rb, _ := fresh.Page(b.ID); rb.Name != "B" {
		t.Errorf("page B name = %q", rb.Name)
	}
}

func TestReloadedRegistryReportsPersistedSelections(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore(t, dir)
	dataPath := filepath.Join(dir, "pages_data.json")

	m := NewManager(dataPath, store)
	page := m.CreatePage("A")
	page.TagManager().Toggle(models.TagTypeHead, "Style", "8K")
	page.LastTranslation = "a cat"
	page.RefreshOutput()
	if err := m.Save(); err != nil {
		t.Fatal(err)
	}

	// A fresh process reading the registry sees the selections the file
	// holds, and hands the clipboard the same text the saved output shows.
	fresh := NewManager(dataPath, store)
	reloaded := fresh.CurrentPage()
	tm := reloaded.TagManager()
	if !tm.IsSelected(models.TagTypeHead, "Style", "8K") {
		t.Error("persisted selection invisible after reload")
	}
	if got := tm.Statistics().SelectedTags; got != 1 {
		t.Errorf("selected count = %d, want 1", got)
	}
	if got, want := reloaded.ClipboardText(), "8k, a cat"; got != want {
		t.Errorf("clipboard text = %q, want %q", got, want)
	}
	if reloaded.OutputText != "8k, a cat" {
		t.Errorf("persisted output = %q", reloaded.OutputText)
	}

	// Only an explicit session start clears them.
	fresh.StartSession()
	if tm.IsSelected(models.TagTypeHead, "Style", "8K") {
		t.Error("session start kept the selection")
	}
}

func TestLoadCorruptFileFallsBackEmpty(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "pages_data.json")
	if err := os.WriteFile(dataPath, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewManager(dataPath, newTestStore(t, dir))
	if m.Len() != 0 {
		t.Errorf("corrupt file yielded %d pages", m.Len())
	}
	// The shell recovers by creating a default page.
	if m.EnsureDefaultPage() == nil {
		t.Error("no default page after corrupt load")
	}
}

func TestLoadStaleCurrentIDFallsBack(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore(t, dir)
	dataPath := filepath.Join(dir, "pages_data.json")

	// A registry whose persisted current id no longer exists.
	raw := `{
		"pages": [{"page_id": 2, "name": "B", "tags": {"head": {}, "tail": {}}}],
		"current_page_id": 99,
		"next_page_id": 3
	}`
	if err := os.WriteFile(dataPath, []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	fresh := NewManager(dataPath, store)
	if fresh.CurrentID() != 2 {
		t.Errorf("current = %d, want fallback to 2", fresh.CurrentID())
	}

	// A counter that fell behind existing ids must be bumped past them.
	raw = `{
		"pages": [{"page_id": 5, "name": "E", "tags": {"head": {}, "tail": {}}}],
		"current_page_id": 5,
		"next_page_id": 1
	}`
	if err := os.WriteFile(dataPath, []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}
	fresh = NewManager(dataPath, store)
	if fresh.NextID() != 6 {
		t.Errorf("next id = %d, want 6", fresh.NextID())
	}
}

func TestRemoveTagEverywhere(t *testing.T) {
	m, dir := newTestManager(t)
	a := m.CreatePage("A")
	b := m.CreatePage("B")

	// Attach an image to the copy on page A and confirm the cascade.
	imgPath := filepath.Join(dir, "ref.png")
	if err := os.WriteFile(imgPath, []byte("img"), 0644); err != nil {
		t.Fatal(err)
	}
	img := imgPath
	a.TagManager().Update(models.TagTypeHead, "Style", "Masterpiece", tags.TagUpdate{Image: &img})

	if !m.RemoveTagEverywhere(models.TagTypeHead, "Masterpiece") {
		t.Fatal("remove reported nothing deleted")
	}

	for _, page := range []*Page{a, b} {
		if _, ok := page.TagManager().Get(models.TagTypeHead, "Style", "Masterpiece"); ok {
			t.Errorf("tag survived on page %s", page.Name)
		}
	}
	store := tags.NewStore(filepath.Join(dir, "tags.json"))
	col, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := col[models.TagTypeHead]["Style"]["Masterpiece"]; ok {
		t.Error("tag survived in the template store")
	}
	if _, err := os.Stat(imgPath); !os.IsNotExist(err) {
		t.Error("associated image file not deleted")
	}

	if m.RemoveTagEverywhere(models.TagTypeHead, "Masterpiece") {
		t.Error("second removal reported success")
	}
}

func TestSyncTemplateChanges(t *testing.T) {
	m, dir := newTestManager(t)
	page := m.CreatePage("A")
	page.TagManager().Toggle(models.TagTypeHead, "Style", "8K")

	// An external writer adds a category to the template file.
	store := tags.NewStore(filepath.Join(dir, "tags.json"))
	col, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	col[models.TagTypeHead]["FromBrowser"] = models.Category{
		"Neon": {En: "neon glow"},
	}
	time.Sleep(10 * time.Millisecond)
	if err := store.Save(col); err != nil {
		t.Fatal(err)
	}

	if !m.SyncTemplateChanges() {
		t.Fatal("external change not detected")
	}
	tm := page.TagManager()
	if _, ok := tm.Get(models.TagTypeHead, "FromBrowser", "Neon"); !ok {
		t.Error("external tag not merged into page")
	}
	// Merge must not reset the existing selection.
	if !tm.IsSelected(models.TagTypeHead, "Style", "8K") {
		t.Error("merge re-import cleared an existing selection")
	}
}
