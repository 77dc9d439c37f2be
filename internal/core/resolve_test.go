package core

import (
	"errors"
	"testing"
)

func testResolver(cwd, home string) Resolver {
	return Resolver{
		Getwd: func() (string, error) { return cwd, nil },
		Home:  StaticHome(home),
	}
}

func TestResolve(t *testing.T) {
	r := testResolver("/a/b", "/home/u")
	cases := []struct {
		target string
		want   string
	}{
		{".", "/a/b"},
		{"..", "/a"},
		{"../..", "/"},
		{"c", "/a/b/c"},
		{"./c/./d", "/a/b/c/d"},
		{"c/../d", "/a/b/d"},
		{"/", "/"},
		{"/x/y", "/x/y"},
		{"//x///y/", "/x/y"},
		{"/x/../y", "/y"},
		{"~", "/home/u"},
		{"~/docs", "/home/u/docs"},
		{"~/docs/../pics", "/home/u/pics"},
		{"~user", "/a/b/~user"},
	}
	for _, tc := range cases {
		got, err := r.Resolve(tc.target)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", tc.target, err)
		}
		if got != tc.want {
			t.Fatalf("Resolve(%q) = %q, want %q", tc.target, got, tc.want)
		}
	}
}

func TestResolveIsPure(t *testing.T) {
	r := testResolver("/srv/data", "/home/u")
	for _, target := range []string{".", "..", "x/y", "/etc", "a/../b"} {
		first, err1 := r.Resolve(target)
		second, err2 := r.Resolve(target)
		if first != second || !errors.Is(err1, err2) {
			t.Fatalf("Resolve(%q) not stable: %q/%v vs %q/%v", target, first, err1, second, err2)
		}
	}
}

func TestResolveDotReturnsCwd(t *testing.T) {
	for _, cwd := range []string{"/", "/a", "/a/b/c", "/with space"} {
		got, err := testResolver(cwd, "").Resolve(".")
		if err != nil || got != cwd {
			t.Fatalf("Resolve(.) from %q = %q, %v", cwd, got, err)
		}
	}
}

func TestResolveParentStopsAtRoot(t *testing.T) {
	cwd := "/a/b"
	for i := 0; i < 2; i++ {
		next, err := testResolver(cwd, "").Resolve("..")
		if err != nil {
			t.Fatalf("climb %d from %q: %v", i, cwd, err)
		}
		cwd = next
	}
	if cwd != "/" {
		t.Fatalf("expected root after two climbs, got %q", cwd)
	}
	if _, err := testResolver(cwd, "").Resolve(".."); !errors.Is(err, ErrAlreadyAtRoot) {
		t.Fatalf("expected ErrAlreadyAtRoot from root, got %v", err)
	}
	if _, err := testResolver("/a", "").Resolve("/../x"); !errors.Is(err, ErrAlreadyAtRoot) {
		t.Fatalf("expected ErrAlreadyAtRoot for absolute climb, got %v", err)
	}
	if _, err := testResolver("/a", "").Resolve("../../.."); !errors.Is(err, ErrAlreadyAtRoot) {
		t.Fatalf("expected ErrAlreadyAtRoot, got %v", err)
	}
}

func TestResolveHomeExpansion(t *testing.T) {
	r := testResolver("/a", "/home/u")
	viaTilde, err := r.Resolve("~/x")
	if err != nil {
		t.Fatalf("resolve ~/x: %v", err)
	}
	viaJoin, err := r.Resolve("/home/u/x")
	if err != nil {
		t.Fatalf("resolve joined: %v", err)
	}
	if viaTilde != viaJoin {
		t.Fatalf("~/x = %q, joined = %q", viaTilde, viaJoin)
	}

	noHome := testResolver("/a", "")
	for _, target := range []string{"~", "~/x"} {
		_, err := noHome.Resolve(target)
		if !errors.Is(err, ErrNoHomeDirectory) || !errors.Is(err, ErrNotFound) {
			t.Fatalf("Resolve(%q) without home: expected home error, got %v", target, err)
		}
	}
}

func TestResolveHomeIsNormalized(t *testing.T) {
	r := testResolver("/a", "/home/u/")
	for _, target := range []string{"~", "~/", "~/."} {
		got, err := r.Resolve(target)
		if err != nil || got != "/home/u" {
			t.Fatalf("Resolve(%q) with trailing-slash home = %q, %v", target, got, err)
		}
	}
	got, err := testResolver("/a", "//home//u/../v").Resolve("~")
	if err != nil || got != "/home/v" {
		t.Fatalf("home must be walked: %q, %v", got, err)
	}
}

func TestResolveCwdUnavailable(t *testing.T) {
	r := Resolver{
		Getwd: func() (string, error) { return "", errors.New("deleted") },
		Home:  StaticHome("/home/u"),
	}
	if _, err := r.Resolve("."); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for '.', got %v", err)
	}
	if _, err := r.Resolve("sub"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for relative path, got %v", err)
	}
	got, err := r.Resolve("/abs")
	if err != nil || got != "/abs" {
		t.Fatalf("absolute path must not need cwd: %q %v", got, err)
	}
}
