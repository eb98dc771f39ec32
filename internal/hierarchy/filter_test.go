package hierarchy

import (
	"reflect"
	"testing"
)

func filterFixture(t *testing.T) *Aggregate {
	t.Helper()
	return buildAggregate(t, "Sheet1", []Row{
		makeRow(0, "10", "Math", "Algebra", "Linear Eq", ""),
		makeRow(1, "10", "Math", "Geometry", "Angles", ""),
		makeRow(2, "10", "Science", "Optics", "Lenses", ""),
	})
}

func TestFilter_EmptyTermReturnsSameTree(t *testing.T) {
	agg := filterFixture(t)
	if got := agg.Tree.Filter(""); got != agg.Tree {
		t.Error("expected empty term to return the original tree reference")
	}
}

func TestFilter_CaseInsensitiveSubstring(t *testing.T) {
	agg := filterFixture(t)
	view := agg.Tree.Filter("aLgEb")

	if len(view.Categories()) != 1 {
		t.Fatalf("expected 1 category in view, got %d", len(view.Categories()))
	}
	findNode(t, view, "Sheet1", "10", "Math", "Algebra")
	if view.Category("Sheet1").Child("10").Child("Science") != nil {
		t.Error("expected Science branch pruned")
	}
}

func TestFilter_MatchIncludesWholeSubtree(t *testing.T) {
	agg := filterFixture(t)
	view := agg.Tree.Filter("Math")

	math := findNode(t, view, "Sheet1", "10", "Math")
	if len(math.Children()) != 2 {
		t.Errorf("expected both chapters under matching Math node, got %d", len(math.Children()))
	}
	topic := findNode(t, view, "Sheet1", "10", "Math", "Algebra", "Linear Eq")
	if len(topic.Rows) != 1 {
		t.Errorf("expected topic rows carried into view, got %d", len(topic.Rows))
	}
}

func TestFilter_TopicLevelMatch(t *testing.T) {
	agg := filterFixture(t)
	view := agg.Tree.Filter("Lenses")

	findNode(t, view, "Sheet1", "10", "Science", "Optics", "Lenses")
	if view.Category("Sheet1").Child("10").Child("Math") != nil {
		t.Error("expected non-matching Math branch pruned")
	}
}

func TestFilter_NoMatchYieldsEmptyView(t *testing.T) {
	agg := filterFixture(t)
	view := agg.Tree.Filter("does-not-exist")
	if len(view.Categories()) != 0 {
		t.Errorf("expected empty view, got %d categories", len(view.Categories()))
	}
}

func TestFilter_DoesNotMutateTreeOrSelection(t *testing.T) {
	agg := filterFixture(t)

	topic := findNode(t, agg.Tree, "Sheet1", "10", "Math", "Algebra", "Linear Eq")
	if err := agg.Selection.SetNode(topic.ID, false); err != nil {
		t.Fatalf("SetNode: %v", err)
	}
	before := agg.Selection.States()
	nodesBefore := agg.Tree.Len()

	agg.Tree.Filter("science")
	agg.Tree.Filter("zzz")
	agg.Tree.Filter("")

	after := agg.Selection.States()
	if !reflect.DeepEqual(before, after) {
		t.Error("expected selection states unchanged by filtering")
	}
	if agg.Tree.Len() != nodesBefore {
		t.Errorf("expected node count unchanged, got %d != %d", agg.Tree.Len(), nodesBefore)
	}
	if err := sameShape(agg.Tree, agg.Tree.Filter("")); err != nil {
		t.Errorf("tree changed shape after filtering: %v", err)
	}
}

func TestFilter_ViewSharesNodeIDs(t *testing.T) {
	agg := filterFixture(t)
	view := agg.Tree.Filter("Algebra")

	orig := findNode(t, agg.Tree, "Sheet1", "10", "Math", "Algebra")
	copied := findNode(t, view, "Sheet1", "10", "Math", "Algebra")
	if orig.ID != copied.ID {
		t.Error("expected view nodes to keep original IDs")
	}
	if view.Node(orig.ID) == nil {
		t.Error("expected view index to resolve original IDs")
	}
}
