package tags

import (
	"reflect"
	"testing"

	"github.com/promptdeck/promptdeck/pkg/models"
)

func testCollection() models.TagCollection {
	return models.TagCollection{
		models.TagTypeHead: {
			"Lighting": models.Category{
				"Sunset":      {En: "sunset"},
				"Golden Hour": {En: "golden hour"},
			},
			"Style": models.Category{
				"Masterpiece": {En: "masterpiece"},
			},
		},
		models.TagTypeTail: {
			"Negative": models.Category{
				"Blurry": {En: "blurry, negative"},
			},
		},
	}
}

func newTestManager(t *testing.T) (*Manager, *models.TagCollection) {
	t.Helper()
	col := testCollection()
	return NewManager(1, &col), &col
}

func TestNewManagerRepairsInPlace(t *testing.T) {
	var col models.TagCollection
	m := NewManager(7, &col)
	if col == nil {
		t.Fatal("nil collection not initialized")
	}
	if col[models.TagTypeHead] == nil || col[models.TagTypeTail] == nil {
		t.Fatal("tag types missing after construction")
	}
	if m.PageID() != 7 {
		t.Errorf("PageID = %d, want 7", m.PageID())
	}

	// Partial collections are repaired without replacing existing maps.
	partial := models.TagCollection{models.TagTypeHead: {"Cat": models.Category{"A": {}}}}
	head := partial[models.TagTypeHead]
	NewManager(8, &partial)
	if partial[models.TagTypeTail] == nil {
		t.Error("missing tail map not added")
	}
	if !reflect.DeepEqual(partial[models.TagTypeHead], head) {
		t.Error("existing head map was replaced")
	}
}

func TestTogglePairing(t *testing.T) {
	m, _ := newTestManager(t)

	if !m.Toggle(models.TagTypeHead, "Lighting", "Sunset") {
		t.Fatal("toggle of existing tag failed")
	}
	if !m.IsSelected(models.TagTypeHead, "Lighting", "Sunset") {
		t.Error("tag not selected after toggle on")
	}
	attrs, _ := m.Get(models.TagTypeHead, "Lighting", "Sunset")
	if attrs.UsageCount != 1 {
		t.Errorf("usage count after select = %d, want 1", attrs.UsageCount)
	}

	if !m.Toggle(models.TagTypeHead, "Lighting", "Sunset") {
		t.Fatal("toggle off failed")
	}
	if m.IsSelected(models.TagTypeHead, "Lighting", "Sunset") {
		t.Error("tag still selected after toggle pair")
	}
	attrs, _ = m.Get(models.TagTypeHead, "Lighting", "Sunset")
	if attrs.UsageCount != 1 {
		t.Errorf("usage count after toggle pair = %d, want exactly 1", attrs.UsageCount)
	}
}

func TestToggleResolvesCategory(t *testing.T) {
	m, _ := newTestManager(t)

	// Empty category searches all categories of the type.
	if !m.Toggle(models.TagTypeHead, "", "Masterpiece") {
		t.Fatal("toggle without category failed")
	}
	if !m.IsSelected(models.TagTypeHead, "", "Masterpiece") {
		t.Error("IsSelected without category did not find tag")
	}
	if !m.IsSelected(models.TagTypeHead, "Style", "Masterpiece") {
		t.Error("tag not selected in its actual category")
	}
}

func TestToggleMissingTagIsNoOp(t *testing.T) {
	m, _ := newTestManager(t)
	before := m.Statistics()

	if m.Toggle(models.TagTypeHead, "Lighting", "nonexistent") {
		t.Error("toggle of missing tag reported success")
	}
	if m.Toggle(models.TagTypeHead, "", "nonexistent") {
		t.Error("toggle of missing tag (searched) reported success")
	}

	after := m.Statistics()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("statistics changed by failed toggle: %+v -> %+v", before, after)
	}
}

func TestAddDefaults(t *testing.T) {
	m, _ := newTestManager(t)

	if !m.Add(models.TagTypeTail, "NewCat", "夕阳", models.TagAttributes{}) {
		t.Fatal("add failed")
	}
	attrs, ok := m.Get(models.TagTypeTail, "NewCat", "夕阳")
	if !ok {
		t.Fatal("added tag not found")
	}
	if attrs.En != "夕阳" {
		t.Errorf("En default = %q, want tag name", attrs.En)
	}
	if attrs.Selected || attrs.UsageCount != 0 {
		t.Errorf("unexpected defaults: %+v", attrs)
	}

	// Overwrite is last-write-wins.
	if !m.Add(models.TagTypeTail, "NewCat", "夕阳", models.TagAttributes{En: "sunset"}) {
		t.Fatal("overwriting add failed")
	}
	attrs, _ = m.Get(models.TagTypeTail, "NewCat", "夕阳")
	if attrs.En != "sunset" {
		t.Errorf("En after overwrite = %q, want %q", attrs.En, "sunset")
	}

	if m.Add("sideways", "Cat", "x", models.TagAttributes{}) {
		t.Error("add accepted invalid tag type")
	}
	if m.Add(models.TagTypeHead, "", "x", models.TagAttributes{}) {
		t.Error("add accepted empty category")
	}
}

func TestRemoveDeletesEmptyCategory(t *testing.T) {
	m, col := newTestManager(t)

	if !m.Remove(models.TagTypeHead, "Style", "Masterpiece") {
		t.Fatal("remove failed")
	}
	if _, ok := (*col)[models.TagTypeHead]["Style"]; ok {
		t.Error("empty category not deleted")
	}
	if m.Remove(models.TagTypeHead, "Style", "Masterpiece") {
		t.Error("remove of missing tag reported success")
	}

	// Category with remaining tags survives.
	if !m.Remove(models.TagTypeHead, "Lighting", "Sunset") {
		t.Fatal("remove failed")
	}
	if _, ok := (*col)[models.TagTypeHead]["Lighting"]; !ok {
		t.Error("non-empty category was deleted")
	}
}

func TestUpdatePartial(t *testing.T) {
	m, _ := newTestManager(t)

	url := "https://example.com/ref"
	count := 9
	if !m.Update(models.TagTypeHead, "Lighting", "Sunset", TagUpdate{URL: &url, UsageCount: &count}) {
		t.Fatal("update failed")
	}
	attrs, _ := m.Get(models.TagTypeHead, "Lighting", "Sunset")
	if attrs.URL != url || attrs.UsageCount != 9 {
		t.Errorf("update not applied: %+v", attrs)
	}
	if attrs.En != "sunset" {
		t.Errorf("untouched field changed: En = %q", attrs.En)
	}

	if m.Update(models.TagTypeHead, "Lighting", "missing", TagUpdate{URL: &url}) {
		t.Error("update of missing tag reported success")
	}
}

func TestGetReturnsCopy(t *testing.T) {
	m, _ := newTestManager(t)

	attrs, ok := m.Get(models.TagTypeHead, "Lighting", "Sunset")
	if !ok {
		t.Fatal("get failed")
	}
	attrs.Selected = true
	attrs.En = "mutated"

	fresh, _ := m.Get(models.TagTypeHead, "Lighting", "Sunset")
	if fresh.Selected || fresh.En != "sunset" {
		t.Errorf("mutation of returned copy leaked: %+v", fresh)
	}
}

func TestClearSelections(t *testing.T) {
	m, _ := newTestManager(t)
	m.Toggle(models.TagTypeHead, "Lighting", "Sunset")
	m.Toggle(models.TagTypeTail, "Negative", "Blurry")

	m.ClearSelections(models.TagTypeHead)
	if m.IsSelected(models.TagTypeHead, "Lighting", "Sunset") {
		t.Error("head selection survived ClearSelections(head)")
	}
	if !m.IsSelected(models.TagTypeTail, "Negative", "Blurry") {
		t.Error("tail selection cleared by ClearSelections(head)")
	}

	m.ClearSelections("")
	if m.IsSelected(models.TagTypeTail, "Negative", "Blurry") {
		t.Error("tail selection survived ClearSelections of both types")
	}

	// Usage counts are untouched by clearing.
	attrs, _ := m.Get(models.TagTypeHead, "Lighting", "Sunset")
	if attrs.UsageCount != 1 {
		t.Errorf("usage count changed by clear: %d", attrs.UsageCount)
	}
}

func TestImportOverwriteAlwaysDeselects(t *testing.T) {
	m, _ := newTestManager(t)

	data := models.TagCollection{
		models.TagTypeHead: {
			"Lighting": models.Category{
				"Sunset": {En: "sunset", Selected: true, UsageCount: 4},
			},
		},
	}
	if !m.Import(data, false) {
		t.Fatal("import failed")
	}

	if m.IsSelected(models.TagTypeHead, "Lighting", "Sunset") {
		t.Error("imported tag selected despite source saying selected")
	}
	attrs, _ := m.Get(models.TagTypeHead, "Lighting", "Sunset")
	if attrs.UsageCount != 4 {
		t.Errorf("usage count not preserved from import: %d", attrs.UsageCount)
	}

	// Overwrite replaces everything, including the other type.
	if names := m.CategoryNames(models.TagTypeTail); len(names) != 0 {
		t.Errorf("tail categories survived overwrite import: %v", names)
	}
}

func TestImportMergePreservesUntouchedSelections(t *testing.T) {
	m, _ := newTestManager(t)
	m.Toggle(models.TagTypeHead, "Lighting", "Sunset")

	data := models.TagCollection{
		models.TagTypeHead: {
			"OtherCategory": models.Category{
				"B": {En: "b"},
			},
		},
	}
	if !m.Import(data, true) {
		t.Fatal("merge import failed")
	}

	if !m.IsSelected(models.TagTypeHead, "Lighting", "Sunset") {
		t.Error("selection of untouched category lost on merge")
	}
	if _, ok := m.Get(models.TagTypeHead, "OtherCategory", "B"); !ok {
		t.Error("merged category not inserted")
	}
}

func TestImportMergeResetsUsageCountToImportedValue(t *testing.T) {
	m, _ := newTestManager(t)
	m.Toggle(models.TagTypeHead, "Lighting", "Sunset") // usage 1
	m.Toggle(models.TagTypeHead, "Lighting", "Sunset")
	m.Toggle(models.TagTypeHead, "Lighting", "Sunset") // usage 2, selected

	data := models.TagCollection{
		models.TagTypeHead: {
			"Lighting": models.Category{
				"Sunset": {En: "sunset", Selected: true, UsageCount: 10},
			},
		},
	}
	if !m.Import(data, true) {
		t.Fatal("merge import failed")
	}

	attrs, _ := m.Get(models.TagTypeHead, "Lighting", "Sunset")
	if attrs.UsageCount != 10 {
		t.Errorf("usage count = %d, want the imported value 10 (reset, not summed)", attrs.UsageCount)
	}
	if attrs.Selected {
		t.Error("re-imported tag left selected")
	}

	// Sibling tags of a merged category are left alone.
	if _, ok := m.Get(models.TagTypeHead, "Lighting", "Golden Hour"); !ok {
		t.Error("sibling tag lost by category merge")
	}
}

func TestImportRejectsUnrecognizedData(t *testing.T) {
	m, _ := newTestManager(t)
	before := m.Export()

	if m.Import(nil, true) {
		t.Error("nil import reported success")
	}
	if m.Import(models.TagCollection{"bogus": {}}, false) {
		t.Error("structureless import reported success")
	}

	if !reflect.DeepEqual(before, m.Export()) {
		t.Error("failed import mutated state")
	}
}

func TestExportIsDeepCopy(t *testing.T) {
	m, _ := newTestManager(t)

	exported := m.Export()
	attrs := exported[models.TagTypeHead]["Lighting"]["Sunset"]
	attrs.Selected = true
	exported[models.TagTypeHead]["Lighting"]["Sunset"] = attrs

	if m.IsSelected(models.TagTypeHead, "Lighting", "Sunset") {
		t.Error("mutating export affected internal state")
	}
}

func TestStatistics(t *testing.T) {
	m, _ := newTestManager(t)
	m.Toggle(models.TagTypeHead, "Lighting", "Sunset")
	m.Toggle(models.TagTypeTail, "Negative", "Blurry")

	stats := m.Statistics()
	want := Statistics{
		TotalTags:    4,
		SelectedTags: 2,
		HeadTags:     3,
		TailTags:     1,
		HeadSelected: 1,
		TailSelected: 1,
		Categories:   map[string]int{models.TagTypeHead: 2, models.TagTypeTail: 1},
	}
	if !reflect.DeepEqual(stats, want) {
		t.Errorf("Statistics = %+v, want %+v", stats, want)
	}
}

func TestRestoreUIState(t *testing.T) {
	m, _ := newTestManager(t)
	m.Toggle(models.TagTypeHead, "Lighting", "Sunset")

	head, tail := m.RestoreUIState()
	if len(head) != 1 || head[0] != "sunset" {
		t.Errorf("head = %v, want [sunset]", head)
	}
	if len(tail) != 0 {
		t.Errorf("tail = %v, want empty", tail)
	}
}

func TestSelectionIsolationBetweenCollections(t *testing.T) {
	template := testCollection()

	colA := models.TagCollection{}
	colB := models.TagCollection{}
	a := NewManager(1, &colA)
	b := NewManager(2, &colB)
	if !a.Import(template, false) || !b.Import(template, false) {
		t.Fatal("seeding failed")
	}

	if !a.Toggle(models.TagTypeHead, "Lighting", "Sunset") {
		t.Fatal("toggle on page A failed")
	}
	if b.IsSelected(models.TagTypeHead, "Lighting", "Sunset") {
		t.Error("selection on page A leaked into page B")
	}
}
