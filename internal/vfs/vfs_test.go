package vfs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"package.json", "package.json", false},
		{"/src/app/page.tsx", "src/app/page.tsx", false},
		{"src//lib/./utils.ts/", "src/lib/utils.ts", false},
		{"", "", true},
		{"/", "", true},
		{"./.", "", true},
		{"../etc/passwd", "", true},
		{"src/../../x", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Clean(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPath)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteAndRead(t *testing.T) {
	fs := New()
	require.NoError(t, fs.Write("src/app/page.tsx", "export default function Page() {}"))
	require.NoError(t, fs.Write("/README.md", "# app"))

	got, ok := fs.Read("/src/app/page.tsx")
	assert.True(t, ok)
	assert.Equal(t, "export default function Page() {}", got)

	_, ok = fs.Read("src/app")
	assert.False(t, ok)

	assert.True(t, fs.Exists("src"))
	assert.True(t, fs.Exists("src/app"))
	assert.True(t, fs.Exists("/"))
	assert.False(t, fs.Exists("lib"))

	assert.Equal(t, 2, fs.Len())
	assert.Equal(t, 2, fs.DirCount())
	assert.Equal(t, []string{"README.md", "src/app/page.tsx"}, fs.Paths())
}

func TestWriteOverwrites(t *testing.T) {
	fs := New()
	require.NoError(t, fs.Write("a.txt", "one"))
	require.NoError(t, fs.Write("/a.txt", "two"))

	got, _ := fs.Read("a.txt")
	assert.Equal(t, "two", got)
	assert.Equal(t, 1, fs.Len())
}

func TestWriteConflicts(t *testing.T) {
	fs := New()
	require.NoError(t, fs.Write("src/lib/db.ts", "x"))

	err := fs.Write("src/lib", "file over dir")
	assert.ErrorIs(t, err, ErrPathConflict)

	err = fs.Write("src/lib/db.ts/schema.ts", "dir under file")
	assert.ErrorIs(t, err, ErrPathConflict)

	err = fs.Write("../escape", "x")
	assert.ErrorIs(t, err, ErrInvalidPath)

	// Failed writes leave no trace.
	assert.Equal(t, []string{"src/lib/db.ts"}, fs.Paths())
	assert.False(t, fs.Exists("src/lib/db.ts/schema.ts"))
}

func TestFiles(t *testing.T) {
	fs := New()
	require.NoError(t, fs.Write("b", "2"))
	require.NoError(t, fs.Write("a", "1"))

	assert.Equal(t, []File{{Path: "a", Content: "1"}, {Path: "b", Content: "2"}}, fs.Files())
}

func TestWriteTo(t *testing.T) {
	fs := New()
	require.NoError(t, fs.Write("backend/app/main.py", "app = FastAPI()"))
	require.NoError(t, fs.Write(".gitignore", "node_modules"))

	dir := t.TempDir()
	require.NoError(t, fs.WriteTo(dir))

	data, err := os.ReadFile(filepath.Join(dir, "backend", "app", "main.py"))
	require.NoError(t, err)
	assert.Equal(t, "app = FastAPI()", string(data))

	data, err = os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, "node_modules", string(data))
}

func TestTreeShape(t *testing.T) {
	fs := New()
	for _, p := range []string{
		"package.json",
		"src/lib/utils.ts",
		"src/app/page.tsx",
		"src/app/api/chat/route.ts",
		".env.example",
		"README.md",
	} {
		require.NoError(t, fs.Write(p, p))
	}

	root := fs.Tree()
	assert.Equal(t, RootPath, root.Path)
	assert.Equal(t, TypeDirectory, root.Type)
	assert.Nil(t, root.Content)

	var names []string
	for _, c := range root.Children {
		names = append(names, c.Name)
	}
	// Directories first, then files alphabetically.
	assert.Equal(t, []string{"src", ".env.example", "README.md", "package.json"}, names)

	src := root.Children[0]
	assert.Equal(t, "/src", src.Path)
	require.Len(t, src.Children, 2)
	assert.Equal(t, "/src/app", src.Children[0].Path)
	assert.Equal(t, "/src/lib", src.Children[1].Path)

	app := src.Children[0]
	require.Len(t, app.Children, 2)
	assert.Equal(t, "api", app.Children[0].Name)
	assert.Equal(t, "page.tsx", app.Children[1].Name)

	route := Find(root, "src/app/api/chat/route.ts")
	require.NotNil(t, route)
	assert.Equal(t, TypeFile, route.Type)
	require.NotNil(t, route.Content)
	assert.Equal(t, "src/app/api/chat/route.ts", *route.Content)
	assert.Nil(t, route.Children)
}

func TestTreeInvariants(t *testing.T) {
	fs := New()
	paths := []string{"a/b/c.txt", "a/b/d.txt", "a/e.txt", "f.txt", "g/h/i/j.txt"}
	for _, p := range paths {
		require.NoError(t, fs.Write(p, ""))
	}

	root := fs.Tree()

	// One node per file plus one per directory plus the root.
	assert.Equal(t, fs.Len()+fs.DirCount()+1, CountNodes(root))

	seen := map[string]bool{}
	var check func(parent *Node)
	check = func(parent *Node) {
		for _, c := range parent.Children {
			assert.False(t, seen[c.Path], "duplicate path %s", c.Path)
			seen[c.Path] = true
			prefix := parent.Path
			if prefix != RootPath {
				prefix += "/"
			}
			assert.True(t, strings.HasPrefix(c.Path, prefix), "%s not under %s", c.Path, parent.Path)
			assert.Equal(t, prefix+c.Name, c.Path)
			check(c)
		}
	}
	check(root)

	for _, p := range paths {
		assert.True(t, seen["/"+p], p)
	}
}

func TestTreeIsFreshCopy(t *testing.T) {
	fs := New()
	require.NoError(t, fs.Write("a.txt", "x"))

	first := fs.Tree()
	*first.Children[0].Content = "mutated"

	got, _ := fs.Read("a.txt")
	assert.Equal(t, "x", got)
	assert.Equal(t, "x", *fs.Tree().Children[0].Content)
}

func TestEmptyTree(t *testing.T) {
	root := New().Tree()
	assert.Equal(t, RootPath, root.Path)
	assert.Empty(t, root.Children)
}

func TestFind(t *testing.T) {
	fs := New()
	require.NoError(t, fs.Write("backend/app/main.py", ""))

	assert.Equal(t, RootPath, fs.Find("/").Path)
	assert.Equal(t, "/backend/app", fs.Find("backend/app").Path)
	assert.Nil(t, fs.Find("frontend"))
	assert.Nil(t, fs.Find("backend/../etc"))
	assert.Nil(t, Find(nil, "x"))
}

func TestWalkSkip(t *testing.T) {
	fs := New()
	require.NoError(t, fs.Write("a/b.txt", ""))
	require.NoError(t, fs.Write("c.txt", ""))

	var visited []string
	Walk(fs.Tree(), func(n *Node) bool {
		visited = append(visited, n.Path)
		return n.Path != "/a"
	})
	assert.Equal(t, []string{"/", "/a", "/c.txt"}, visited)
}
