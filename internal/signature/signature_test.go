package signature_test

import (
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"sleuth/internal/imaging"
	"sleuth/internal/signature"
	"sleuth/internal/testsupport"
)

func newLoader(t *testing.T) *imaging.Loader {
	t.Helper()
	loader, err := imaging.NewLoader(8)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	return loader
}

func TestRegisterSortedAndDescribed(t *testing.T) {
	dir := t.TempDir()
	sizeB := testsupport.WritePNG(t, filepath.Join(dir, "b.png"), testsupport.Textured(32, 24, 2))
	testsupport.WriteJPEG(t, filepath.Join(dir, "a.jpg"), testsupport.Textured(40, 30, 1), 90)
	testsupport.WriteFile(t, filepath.Join(dir, "readme.txt"), 10)

	store, err := signature.Register(dir, newLoader(t), signature.Options{})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if got := store.IDs(); !slices.Equal(got, []string{"a.jpg", "b.png"}) {
		t.Fatalf("IDs = %v", got)
	}
	b, ok := store.Get("b.png")
	if !ok {
		t.Fatal("b.png missing")
	}
	want := signature.Signature{
		ID:        "b.png",
		Path:      filepath.Join(dir, "b.png"),
		ByteSize:  sizeB,
		Width:     32,
		Height:    24,
		ColorMode: "RGB",
		Format:    "PNG",
	}
	if b != want {
		t.Fatalf("signature = %+v, want %+v", b, want)
	}
}

func TestRegisterExtensionCaseSensitivity(t *testing.T) {
	dir := t.TempDir()
	testsupport.WritePNG(t, filepath.Join(dir, "lower.png"), testsupport.Textured(16, 16, 1))
	testsupport.WritePNG(t, filepath.Join(dir, "UPPER.PNG"), testsupport.Textured(16, 16, 2))

	strict, err := signature.Register(dir, newLoader(t), signature.Options{})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if strict.Len() != 1 {
		t.Fatalf("case-sensitive registration found %v", strict.IDs())
	}

	folded, err := signature.Register(dir, newLoader(t), signature.Options{FoldCase: true})
	if err != nil {
		t.Fatalf("Register folded: %v", err)
	}
	if folded.Len() != 2 {
		t.Fatalf("folded registration found %v", folded.IDs())
	}
}

func TestRegisterAbortsOnDecodeFailure(t *testing.T) {
	dir := t.TempDir()
	testsupport.WritePNG(t, filepath.Join(dir, "good.png"), testsupport.Textured(16, 16, 1))
	broken := filepath.Join(dir, "broken.jpg")
	testsupport.WriteFile(t, broken, 128)

	store, err := signature.Register(dir, newLoader(t), signature.Options{})
	if store != nil {
		t.Fatal("expected no store on decode failure")
	}
	var decodeErr *signature.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if decodeErr.Path != broken {
		t.Fatalf("DecodeError path = %q, want %q", decodeErr.Path, broken)
	}
	if decodeErr.Unwrap() == nil {
		t.Fatal("DecodeError should wrap the cause")
	}
}

func TestRegisterSkipsUndecodableWhenEnabled(t *testing.T) {
	dir := t.TempDir()
	testsupport.WritePNG(t, filepath.Join(dir, "good.png"), testsupport.Textured(16, 16, 1))
	testsupport.WriteFile(t, filepath.Join(dir, "broken.jpg"), 128)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	store, err := signature.Register(dir, newLoader(t), signature.Options{SkipUndecodable: true, Logger: logger})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if got := store.IDs(); !slices.Equal(got, []string{"good.png"}) {
		t.Fatalf("IDs = %v", got)
	}
	if !strings.Contains(buf.String(), `"event_type":"registration_skip"`) {
		t.Fatalf("expected registration_skip warning, got %s", buf.String())
	}
}

func TestRegisterEmptyAndMissingFolder(t *testing.T) {
	store, err := signature.Register(t.TempDir(), newLoader(t), signature.Options{})
	if err != nil {
		t.Fatalf("Register empty: %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d", store.Len())
	}
	if _, err := signature.Register(filepath.Join(t.TempDir(), "missing"), newLoader(t), signature.Options{}); err == nil {
		t.Fatal("expected error for missing folder")
	}
}

func TestNewStoreRejectsDuplicates(t *testing.T) {
	_, err := signature.NewStore(signature.Signature{ID: "a"}, signature.Signature{ID: "a"})
	if !errors.Is(err, signature.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if _, err := signature.NewStore(signature.Signature{Path: "x"}); err == nil {
		t.Fatal("expected error for empty id")
	}
}

func TestStoreAllReturnsCopy(t *testing.T) {
	store, err := signature.NewStore(
		signature.Signature{ID: "a", ByteSize: 10},
		signature.Signature{ID: "b", ByteSize: 5},
	)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	all := store.All()
	all[0].ID = "mutated"
	if got, _ := store.Get("a"); got.ID != "a" {
		t.Fatal("store mutated through All")
	}
	if store.TotalBytes() != 15 {
		t.Fatalf("TotalBytes = %d", store.TotalBytes())
	}
	var nilStore *signature.Store
	if nilStore.Len() != 0 || nilStore.All() != nil {
		t.Fatal("nil store should be empty")
	}
}
