package vfs

import (
	"sort"
	"strings"
)

// RootPath is the path of the tree root.
const RootPath = "/"

// Tree materializes the recorded paths into a sorted node tree. Each call
// builds a fresh tree; callers may modify the result freely.
func (fs *FS) Tree() *Node {
	root := &Node{Name: "", Path: RootPath, Type: TypeDirectory, Children: []*Node{}}

	// Index every node by its normalized path so ancestors are created once.
	index := map[string]*Node{"": root}

	dirs := make([]string, 0, len(fs.dirs))
	for d := range fs.dirs {
		dirs = append(dirs, d)
	}
	// Shorter paths first guarantees parents exist before children.
	sort.Slice(dirs, func(i, j int) bool {
		if len(dirs[i]) != len(dirs[j]) {
			return len(dirs[i]) < len(dirs[j])
		}
		return dirs[i] < dirs[j]
	})
	for _, d := range dirs {
		parent, name := split(d)
		n := &Node{Name: name, Path: RootPath + d, Type: TypeDirectory, Children: []*Node{}}
		index[parent].Children = append(index[parent].Children, n)
		index[d] = n
	}

	for p, content := range fs.files {
		parent, name := split(p)
		c := content
		n := &Node{Name: name, Path: RootPath + p, Type: TypeFile, Content: &c}
		index[parent].Children = append(index[parent].Children, n)
	}

	sortTree(root)
	return root
}

func split(p string) (parent, name string) {
	i := strings.LastIndexByte(p, '/')
	if i < 0 {
		return "", p
	}
	return p[:i], p[i+1:]
}

// sortTree orders children directories first, then by name.
func sortTree(n *Node) {
	sort.Slice(n.Children, func(i, j int) bool {
		a, b := n.Children[i], n.Children[j]
		if a.IsDir() != b.IsDir() {
			return a.IsDir()
		}
		return a.Name < b.Name
	})
	for _, c := range n.Children {
		if c.IsDir() {
			sortTree(c)
		}
	}
}

// Find returns the node at path in the tree rooted at n, or nil.
func Find(n *Node, path string) *Node {
	if n == nil {
		return nil
	}
	p, err := Clean(path)
	if err != nil {
		if strings.Trim(path, "/") == "" {
			return n
		}
		return nil
	}

	cur := n
	for _, seg := range strings.Split(p, "/") {
		var next *Node
		for _, c := range cur.Children {
			if c.Name == seg {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// Walk visits n and its descendants depth-first in display order. Returning
// false from fn skips a directory's children.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// CountNodes returns the number of nodes under n, including n.
func CountNodes(n *Node) int {
	count := 0
	Walk(n, func(*Node) bool {
		count++
		return true
	})
	return count
}

// Find materializes the tree and returns the node at path, or nil.
func (fs *FS) Find(path string) *Node {
	return Find(fs.Tree(), path)
}
