package strip

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func placement(id string, extra ...string) []string {
	block := []string{"q", "1 0 0 1 50 50 cm"}
	block = append(block, extra...)
	block = append(block, "/Im"+id+" Do", "Q")
	return block
}

func TestImagesRemovesOnlyTargetBlocks(t *testing.T) {
	var in []string
	in = append(in, placement("1")...)
	in = append(in, placement("2")...)
	in = append(in, placement("3")...)

	for _, strategy := range []Strategy{StrategyBlock, StrategyLineScan} {
		res := Images(stream(in...), []string{"2"}, Options{Strategy: strategy})
		if res.Blocks != 1 {
			t.Fatalf("strategy %d: expected 1 block, got %d", strategy, res.Blocks)
		}
		want := []string{"q", "1 0 0 1 50 50 cm", "/Im1 Do", "Q", "q", "Q", "q", "1 0 0 1 50 50 cm", "/Im3 Do", "Q"}
		if diff := cmp.Diff(want, lines(res.Stream)); diff != "" {
			t.Fatalf("strategy %d: retained lines mismatch (-want +got):\n%s", strategy, diff)
		}
	}
}

func TestImagesKeepsRestoreAndSave(t *testing.T) {
	in := stream(placement("7")...)
	res := Images(in, []string{"7"}, Options{})
	got := lines(res.Stream)
	// The save/restore pair must survive so the state stack stays balanced.
	want := []string{"q", "Q"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestImagesEmptyTargetsIsNoOp(t *testing.T) {
	in := stream(placement("7")...)
	before := string(in.Bytes())
	res := Images(in, nil, Options{})
	if string(res.Stream.Bytes()) != before || res.Blocks != 0 {
		t.Fatal("empty target set must leave the stream untouched")
	}
}

func TestImagesIdempotent(t *testing.T) {
	in := stream(placement("7")...)
	first := Images(in, []string{"7"}, Options{})
	second := Images(first.Stream, []string{"7"}, Options{})
	if second.Blocks != 0 || second.Removed != 0 {
		t.Fatalf("second pass must match nothing, got %+v", second)
	}
	if string(second.Stream.Bytes()) != string(first.Stream.Bytes()) {
		t.Fatal("second pass changed bytes")
	}
}

func TestImagesLineScanBoundSkips(t *testing.T) {
	var block []string
	block = append(block, "1 0 0 1 0 0 cm")
	for i := 0; i < 12; i++ {
		block = append(block, "0 0 5 5 re f")
	}
	block = append(block, "/Im7 Do", "Q")
	in := stream(block...)
	before := string(in.Bytes())

	res := Images(in, []string{"7"}, Options{Strategy: StrategyLineScan})
	if res.Blocks != 0 {
		t.Fatalf("oversized block must not be deleted, got %d blocks", res.Blocks)
	}
	if len(res.Skipped) != 1 {
		t.Fatalf("expected 1 skipped occurrence, got %d", len(res.Skipped))
	}
	sk := res.Skipped[0]
	if sk.Ref != "7" || sk.Bound != DefaultMaxBlockLines || sk.Span <= DefaultMaxBlockLines {
		t.Fatalf("unexpected bounds report: %+v", sk)
	}
	if !strings.Contains(sk.Error(), "/Im7") {
		t.Fatalf("bounds error should name the image: %s", sk.Error())
	}
	if string(res.Stream.Bytes()) != before {
		t.Fatal("skipped occurrence must leave the stream byte identical")
	}
}

func TestImagesLineScanCustomBound(t *testing.T) {
	var block []string
	block = append(block, "1 0 0 1 0 0 cm")
	for i := 0; i < 12; i++ {
		block = append(block, "0 0 5 5 re f")
	}
	block = append(block, "/Im7 Do", "Q")
	res := Images(stream(block...), []string{"7"}, Options{Strategy: StrategyLineScan, MaxBlockLines: 20})
	if res.Blocks != 1 || len(res.Skipped) != 0 {
		t.Fatalf("raised bound should allow deletion, got %+v", res)
	}
}

func TestImagesSharedBlockPreserved(t *testing.T) {
	// Two paints inside one transform/restore block, only one targeted:
	// deleting the block would take the other paint along, so the whole
	// block must survive byte for byte.
	in := []string{
		"q",
		"1 0 0 1 0 0 cm",
		"/Im1 Do",
		"/Im2 Do",
		"Q",
	}
	for _, strategy := range []Strategy{StrategyBlock, StrategyLineScan} {
		for _, targets := range [][]string{{"2"}, {"1"}} {
			s := stream(in...)
			before := string(s.Bytes())
			res := Images(s, targets, Options{Strategy: strategy})
			if res.Blocks != 0 || res.Removed != 0 {
				t.Fatalf("strategy %d targets %v: shared block deleted, got %+v", strategy, targets, res)
			}
			if string(res.Stream.Bytes()) != before {
				t.Fatalf("strategy %d targets %v: stream changed:\n%s", strategy, targets, res.Stream.Bytes())
			}
		}
	}
}

func TestImagesSharedBlockAllTargeted(t *testing.T) {
	// When every paint in the block is a target the block is still deletable.
	in := stream(
		"q",
		"1 0 0 1 0 0 cm",
		"/Im1 Do",
		"/Im2 Do",
		"Q",
	)
	res := Images(in, []string{"1", "2"}, Options{Strategy: StrategyBlock})
	want := []string{"q", "Q"}
	if diff := cmp.Diff(want, lines(res.Stream)); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestImagesForeignPaintInvalidatesAnchor(t *testing.T) {
	// After a foreign paint the open transform no longer bounds a deletable
	// block; a later target paint under the same transform is preserved too.
	in := stream(
		"1 0 0 1 0 0 cm",
		"/Im1 Do",
		"/Im2 Do",
		"/Im2 Do",
	)
	before := string(in.Bytes())
	res := Images(in, []string{"2"}, Options{Strategy: StrategyBlock})
	if res.Blocks != 0 || string(res.Stream.Bytes()) != before {
		t.Fatalf("paints sharing a contaminated block must be preserved, got %+v", res)
	}
}

func TestImagesBlockStrategyNeedsTransformAnchor(t *testing.T) {
	// A restore between the transform and the paint invalidates the anchor:
	// the paint belongs to a different block and must be preserved.
	in := stream(
		"q",
		"1 0 0 1 0 0 cm",
		"Q",
		"/Im7 Do",
	)
	before := string(in.Bytes())
	res := Images(in, []string{"7"}, Options{Strategy: StrategyBlock})
	if res.Blocks != 0 || string(res.Stream.Bytes()) != before {
		t.Fatalf("anchorless paint must be preserved, got %+v", res)
	}
}

func TestImagesBlockRunsToEOFWithoutRestore(t *testing.T) {
	in := stream(
		"(kept) Tj",
		"1 0 0 1 0 0 cm",
		"/Im7 Do",
		"0 0 1 1 re f",
	)
	res := Images(in, []string{"7"}, Options{Strategy: StrategyBlock})
	got := lines(res.Stream)
	if len(got) != 1 || got[0] != "(kept) Tj" {
		t.Fatalf("unterminated block should drop through EOF, got %v", got)
	}
}

func TestImagesPreservesIntermediateOperators(t *testing.T) {
	in := stream(
		"(before) Tj",
		"q",
		"0.5 0 0 0.5 100 200 cm",
		"/GS1 gs",
		"/Im9 Do",
		"Q",
		"(after) Tj",
	)
	res := Images(in, []string{"9"}, Options{})
	want := []string{"(before) Tj", "q", "Q", "(after) Tj"}
	if diff := cmp.Diff(want, lines(res.Stream)); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
